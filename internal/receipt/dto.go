package receipt

import "github.com/shopspring/decimal"

// DraftItem is one line item extracted from a receipt image. It carries just
// enough to pre-fill a bill item; the split strategy is chosen by the user
// afterwards.
type DraftItem struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// ScanResponse is the result of scanning a receipt
type ScanResponse struct {
	StorageURI string      `json:"storage_uri"`
	Items      []DraftItem `json:"items"`
}
