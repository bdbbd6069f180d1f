package receipt

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sayantan-2/splitbill/pkg/response"
)

const maxReceiptSize = 10 << 20 // 10 MiB

// Handler handles HTTP requests for receipt scanning
type Handler struct {
	service *Service
}

// NewHandler creates a new receipt handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for receipt endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/scan", h.Scan)

	return r
}

// Scan handles POST /receipts/scan
// @Summary      Scan a receipt
// @Description  Upload a receipt image and get back draft bill items
// @Tags         receipts
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Receipt image or PDF"
// @Success      200 {object} response.APIResponse{data=ScanResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /receipts/scan [post]
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxReceiptSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "A file field is required")
		return
	}
	defer file.Close()

	result, err := h.service.Scan(r.Context(), file, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, ErrEmptyFile) || errors.Is(err, ErrUnsupportedType) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to scan receipt")
		return
	}

	response.JSON(w, http.StatusOK, result)
}
