package bill

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sayantan-2/splitbill/internal/bill/split"
)

// Status represents the lifecycle of a bill
type Status string

const (
	// StatusDraft allows editing items; no payment requests exist yet.
	StatusDraft Status = "DRAFT"
	// StatusFinalized means payment requests were issued; items are frozen.
	StatusFinalized Status = "FINALIZED"
)

// Bill represents a shared bill to be split among participants
type Bill struct {
	ID           int64     `json:"id"`
	GroupID      *int64    `json:"group_id,omitempty"`
	CreatorID    int64     `json:"creator_id"`
	Title        string    `json:"title"`
	CurrencyCode string    `json:"currency_code"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`

	Items []*Item `json:"items,omitempty"`

	// Populated via JOIN
	CreatorUsername string `json:"creator_username,omitempty"`
}

// Item represents a single line item on a bill. Exactly one split strategy
// variant is populated per item; all items share the bill's currency.
type Item struct {
	ID                 int64           `json:"id"`
	BillID             int64           `json:"bill_id"`
	Name               string          `json:"name"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
	Quantity           decimal.Decimal `json:"quantity"`
	TotalPrice         decimal.Decimal `json:"totalPrice"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	TaxPercentage      decimal.Decimal `json:"taxPercentage"`
	Split              split.Spec      `json:"split"`
}
