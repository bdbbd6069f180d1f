package receipt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

// Common errors
var (
	ErrEmptyFile       = errors.New("receipt file is empty")
	ErrUnsupportedType = errors.New("unsupported receipt content type")
)

var supportedTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// Service handles receipt scanning: the image is archived in object storage
// and parsed into draft bill items.
type Service struct {
	storage *Storage
	parser  *Parser
}

// NewService creates a new receipt service with dependencies injected
func NewService(storage *Storage, parser *Parser) *Service {
	return &Service{storage: storage, parser: parser}
}

// Scan uploads the receipt and extracts its line items
func (s *Service) Scan(ctx context.Context, r io.Reader, contentType string) (*ScanResponse, error) {
	if !supportedTypes[contentType] {
		return nil, ErrUnsupportedType
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read receipt: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	uri, err := s.storage.Upload(ctx, bytes.NewReader(data), contentType)
	if err != nil {
		return nil, err
	}

	items, err := s.parser.Parse(ctx, data, contentType)
	if err != nil {
		return nil, err
	}

	return &ScanResponse{StorageURI: uri, Items: items}, nil
}
