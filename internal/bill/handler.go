package bill

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sayantan-2/splitbill/internal/bill/split"
	"github.com/sayantan-2/splitbill/pkg/middleware"
	"github.com/sayantan-2/splitbill/pkg/response"
)

// Handler handles HTTP requests for bill operations
type Handler struct {
	service *Service
}

// NewHandler creates a new bill handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for bill endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.ListMine)
	r.Get("/{id}", h.GetByID)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/finalize", h.Finalize)
	r.Get("/group/{groupId}", h.ListByGroup)

	return r
}

// Create handles POST /bills
// @Summary      Create a bill
// @Description  Create a draft bill; every item's split is resolved and reconciled before anything is stored
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        request body CreateBillRequest true "Bill creation request"
// @Success      201 {object} response.APIResponse{data=BillResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      422 {object} response.APIResponse
// @Router       /bills [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Title == "" || len(req.CurrencyCode) != 3 {
		response.BadRequest(w, "Title and a 3-letter currency code are required")
		return
	}

	bill, summary, err := h.service.Create(r.Context(), creatorID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to create bill")
		return
	}

	resp := bill.ToResponse()
	resp.Summary = summary.ToResponse()
	response.JSON(w, http.StatusCreated, resp)
}

// ListMine handles GET /bills
// @Summary      List my bills
// @Tags         bills
// @Produce      json
// @Param        page query int false "Page number"
// @Param        per_page query int false "Items per page"
// @Success      200 {object} response.APIResponse{data=[]BillResponse}
// @Router       /bills [get]
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	bills, total, err := h.service.ListByCreatorID(r.Context(), userID, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list bills")
		return
	}

	resp := make([]*BillResponse, len(bills))
	for i, b := range bills {
		resp[i] = b.ToResponse()
	}

	response.JSONWithMeta(w, http.StatusOK, resp, &response.Meta{
		Page:    page,
		PerPage: perPage,
		Total:   total,
	})
}

// GetByID handles GET /bills/{id}
// @Summary      Get a bill with its split summary
// @Tags         bills
// @Produce      json
// @Param        id path int true "Bill ID"
// @Success      200 {object} response.APIResponse{data=BillResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /bills/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid bill ID")
		return
	}

	bill, summary, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get bill")
		return
	}

	resp := bill.ToResponse()
	resp.Summary = summary.ToResponse()
	response.JSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /bills/{id}
// @Summary      Delete a draft bill
// @Tags         bills
// @Produce      json
// @Param        id path int true "Bill ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /bills/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid bill ID")
		return
	}

	if err := h.service.Delete(r.Context(), id, actorID); err != nil {
		h.writeError(w, err, "Failed to delete bill")
		return
	}

	response.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// Finalize handles POST /bills/{id}/finalize
// @Summary      Finalize a bill
// @Description  Freeze the bill and issue one payment request per participant who owes the creator
// @Tags         bills
// @Produce      json
// @Param        id path int true "Bill ID"
// @Success      200 {object} response.APIResponse{data=BillResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /bills/{id}/finalize [post]
func (h *Handler) Finalize(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid bill ID")
		return
	}

	bill, _, err := h.service.Finalize(r.Context(), id, actorID)
	if err != nil {
		h.writeError(w, err, "Failed to finalize bill")
		return
	}

	response.JSON(w, http.StatusOK, bill.ToResponse())
}

// ListByGroup handles GET /bills/group/{groupId}
// @Summary      List bills in a group
// @Tags         bills
// @Produce      json
// @Param        groupId path int true "Group ID"
// @Param        page query int false "Page number"
// @Param        per_page query int false "Items per page"
// @Success      200 {object} response.APIResponse{data=[]BillResponse}
// @Router       /bills/group/{groupId} [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(chi.URLParam(r, "groupId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	bills, total, err := h.service.ListByGroupID(r.Context(), groupID, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list bills")
		return
	}

	resp := make([]*BillResponse, len(bills))
	for i, b := range bills {
		resp[i] = b.ToResponse()
	}

	response.JSONWithMeta(w, http.StatusOK, resp, &response.Meta{
		Page:    page,
		PerPage: perPage,
		Total:   total,
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrBillNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotCreator):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrBillFinalized), errors.Is(err, ErrHasPaymentRequests):
		response.Conflict(w, err.Error())
	case errors.Is(err, ErrNoItems), errors.Is(err, ErrNotGroupMember):
		response.BadRequest(w, err.Error())
	case errors.Is(err, split.ErrInvalidStrategy),
		errors.Is(err, split.ErrStrategyMismatch),
		errors.Is(err, split.ErrNegativeAllocation),
		errors.Is(err, ErrTotalPriceMismatch):
		response.UnprocessableEntity(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
