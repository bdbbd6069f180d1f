package paymentrequest

import (
	"github.com/shopspring/decimal"
)

// CreateRequest represents the request to manually ask another user for money.
// The authenticated caller becomes the payee (the party who is owed).
type CreateRequest struct {
	PayerID      int64           `json:"payer_id" validate:"required"`
	Amount       decimal.Decimal `json:"amount" validate:"required"`
	CurrencyCode string          `json:"currency_code" validate:"required,len=3"`
	Description  *string         `json:"description,omitempty"`
}

// UpdateDetailsRequest updates non-status fields on a non-terminal request.
type UpdateDetailsRequest struct {
	Note          *string `json:"note,omitempty" validate:"omitempty,max=500"`
	PaymentMethod *string `json:"payment_method,omitempty" validate:"omitempty,max=100"`
}

// Response represents the response for a payment request. ContextualStatus
// carries the viewer-dependent label from Project and is only set when the
// response is rendered for one of the two participants.
type Response struct {
	ID               int64   `json:"id"`
	PayerID          int64   `json:"payer_id"`
	PayerUsername    string  `json:"payer_username,omitempty"`
	PayeeID          int64   `json:"payee_id"`
	PayeeUsername    string  `json:"payee_username,omitempty"`
	Amount           string  `json:"amount"`
	CurrencyCode     string  `json:"currency_code"`
	Description      *string `json:"description,omitempty"`
	Status           Status  `json:"status"`
	ContextualStatus string  `json:"contextual_status,omitempty"`
	Note             *string `json:"note,omitempty"`
	PaymentMethod    *string `json:"payment_method,omitempty"`
	BillID           *int64  `json:"bill_id,omitempty"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
	CompletedAt      *string `json:"completed_at,omitempty"`
}

const timeLayout = "2006-01-02T15:04:05Z"

// ToResponse converts a PaymentRequest to its DTO, projecting the contextual
// status for the given viewer when the viewer is payer or payee.
func (p *PaymentRequest) ToResponse(viewerID int64) *Response {
	resp := &Response{
		ID:            p.ID,
		PayerID:       p.PayerID,
		PayerUsername: p.PayerUsername,
		PayeeID:       p.PayeeID,
		PayeeUsername: p.PayeeUsername,
		Amount:        p.Amount.StringFixed(2),
		CurrencyCode:  p.CurrencyCode,
		Description:   p.Description,
		Status:        p.Status,
		Note:          p.Note,
		PaymentMethod: p.PaymentMethod,
		BillID:        p.BillID,
		CreatedAt:     p.CreatedAt.Format(timeLayout),
		UpdatedAt:     p.UpdatedAt.Format(timeLayout),
	}
	if p.CompletedAt != nil {
		s := p.CompletedAt.Format(timeLayout)
		resp.CompletedAt = &s
	}
	if role := p.RoleOf(viewerID); role == RolePayer || role == RolePayee {
		resp.ContextualStatus = Project(p.Status, role == RolePayee)
	}
	return resp
}
