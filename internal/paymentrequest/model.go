package paymentrequest

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a payment request
type Status string

const (
	StatusSent      Status = "SENT"
	StatusAccepted  Status = "ACCEPTED"
	StatusCompleted Status = "COMPLETED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
	StatusDisputed  Status = "DISPUTED"
)

// ParseStatus normalizes a status string. Legacy callers used "PENDING" for
// the initial state; it is accepted as an alias of SENT and never emitted.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusSent, "PENDING":
		return StatusSent, nil
	case StatusAccepted:
		return StatusAccepted, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusRejected:
		return StatusRejected, nil
	case StatusCancelled:
		return StatusCancelled, nil
	case StatusDisputed:
		return StatusDisputed, nil
	default:
		return "", fmt.Errorf("unknown payment request status %q", s)
	}
}

// Terminal reports whether no transition can ever leave this status.
// COMPLETED is not terminal: it still admits the single dispute edge.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusDisputed
}

// Role identifies which side of a payment request an actor occupies.
type Role int

const (
	// RoleNone means the actor is neither payer nor payee.
	RoleNone Role = iota
	// RolePayer is the party who owes and must pay.
	RolePayer
	// RolePayee is the party who is owed money.
	RolePayee
	// RoleEither marks transitions both parties may trigger.
	RoleEither
)

// PaymentRequest represents one payer→payee money obligation. It is created
// when a bill is finalized or when a user manually requests money, and it only
// ever changes status through Next's transition table. Cancellation is a
// terminal status, never a row deletion.
type PaymentRequest struct {
	ID            int64           `json:"id"`
	PayerID       int64           `json:"payer_id"`
	PayeeID       int64           `json:"payee_id"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currency_code"`
	Description   *string         `json:"description,omitempty"`
	Status        Status          `json:"status"`
	Note          *string         `json:"note,omitempty"`
	PaymentMethod *string         `json:"payment_method,omitempty"`
	BillID        *int64          `json:"bill_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`

	// Populated via JOIN
	PayerUsername string `json:"payer_username,omitempty"`
	PayeeUsername string `json:"payee_username,omitempty"`
}

// RoleOf returns the role the given actor occupies on this request.
func (p *PaymentRequest) RoleOf(actorID int64) Role {
	switch actorID {
	case p.PayerID:
		return RolePayer
	case p.PayeeID:
		return RolePayee
	default:
		return RoleNone
	}
}
