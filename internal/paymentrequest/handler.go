package paymentrequest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sayantan-2/splitbill/pkg/middleware"
	"github.com/sayantan-2/splitbill/pkg/response"
)

// Handler handles HTTP requests for payment request operations
type Handler struct {
	service *Service
}

// NewHandler creates a new payment request handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for payment request endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Patch("/{id}", h.UpdateDetails)

	// State transitions
	r.Post("/{id}/accept", h.transition(EventAccept))
	r.Post("/{id}/reject", h.transition(EventReject))
	r.Post("/{id}/cancel", h.transition(EventCancel))
	r.Post("/{id}/pay", h.transition(EventMarkPaid))
	r.Post("/{id}/dispute", h.transition(EventDispute))

	return r
}

// Create handles POST /payment-requests
// @Summary      Request money from another user
// @Description  Create a payment request; the authenticated user becomes the payee
// @Tags         payment-requests
// @Accept       json
// @Produce      json
// @Param        request body CreateRequest true "Payment request creation"
// @Success      201 {object} response.APIResponse{data=Response}
// @Failure      400 {object} response.APIResponse
// @Router       /payment-requests [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	payeeID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	pr, err := h.service.Create(r.Context(), payeeID, &req)
	if err != nil {
		if errors.Is(err, ErrSamePayerPayee) || errors.Is(err, ErrNonPositiveAmount) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create payment request")
		return
	}

	response.JSON(w, http.StatusCreated, pr.ToResponse(payeeID))
}

// List handles GET /payment-requests
// @Summary      List payment requests
// @Description  List requests where the authenticated user is payer or payee
// @Tags         payment-requests
// @Produce      json
// @Param        page query int false "Page number"
// @Param        per_page query int false "Items per page"
// @Success      200 {object} response.APIResponse{data=[]Response}
// @Router       /payment-requests [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	requests, total, err := h.service.ListByUserID(r.Context(), userID, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list payment requests")
		return
	}

	resp := make([]*Response, len(requests))
	for i, pr := range requests {
		resp[i] = pr.ToResponse(userID)
	}

	response.JSONWithMeta(w, http.StatusOK, resp, &response.Meta{
		Page:    page,
		PerPage: perPage,
		Total:   total,
	})
}

// GetByID handles GET /payment-requests/{id}
// @Summary      Get a payment request
// @Description  Get a payment request with the viewer's contextual status label
// @Tags         payment-requests
// @Produce      json
// @Param        id path int true "Payment request ID"
// @Success      200 {object} response.APIResponse{data=Response}
// @Failure      404 {object} response.APIResponse
// @Router       /payment-requests/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	viewerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment request ID")
		return
	}

	pr, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get payment request")
		return
	}

	response.JSON(w, http.StatusOK, pr.ToResponse(viewerID))
}

// UpdateDetails handles PATCH /payment-requests/{id}
// @Summary      Update note or payment method
// @Description  Update non-status fields; allowed for either party while the request is not terminal
// @Tags         payment-requests
// @Accept       json
// @Produce      json
// @Param        id path int true "Payment request ID"
// @Param        request body UpdateDetailsRequest true "Fields to update"
// @Success      200 {object} response.APIResponse{data=Response}
// @Failure      403 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /payment-requests/{id} [patch]
func (h *Handler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment request ID")
		return
	}

	var req UpdateDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	pr, err := h.service.UpdateDetails(r.Context(), id, actorID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update payment request")
		return
	}

	response.JSON(w, http.StatusOK, pr.ToResponse(actorID))
}

// transition builds a handler for one state-machine event endpoint.
func (h *Handler) transition(event Event) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, ok := middleware.GetUserID(r.Context())
		if !ok {
			response.Unauthorized(w, "Authentication required")
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			response.BadRequest(w, "Invalid payment request ID")
			return
		}

		pr, err := h.service.Transition(r.Context(), id, event, actorID)
		if err != nil {
			h.writeError(w, err, "Failed to update payment request")
			return
		}

		response.JSON(w, http.StatusOK, pr.ToResponse(actorID))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrRequestNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrUnauthorized):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrIllegalTransition):
		response.Conflict(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
