package bill

import (
	"github.com/shopspring/decimal"

	"github.com/sayantan-2/splitbill/internal/bill/split"
)

// CreateBillRequest represents the request to create a bill with items
type CreateBillRequest struct {
	Title        string         `json:"title" validate:"required,min=1,max=255"`
	GroupID      *int64         `json:"group_id,omitempty"`
	CurrencyCode string         `json:"currency_code" validate:"required,len=3"`
	Items        []*ItemRequest `json:"items" validate:"required,min=1"`
}

// ItemRequest represents one bill item on creation. The split strategy fields
// are embedded so exactly one of splitEqually, splitByShares,
// splitByExactAmounts, splitByPercentages, splitByAdjustments appears inline.
type ItemRequest struct {
	Name               string          `json:"name" validate:"required,min=1,max=255"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
	Quantity           decimal.Decimal `json:"quantity"`
	TotalPrice         decimal.Decimal `json:"totalPrice"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	TaxPercentage      decimal.Decimal `json:"taxPercentage"`

	split.Spec
}

// ToItem converts an ItemRequest to the domain model
func (r *ItemRequest) ToItem() *Item {
	return &Item{
		Name:               r.Name,
		UnitPrice:          r.UnitPrice,
		Quantity:           r.Quantity,
		TotalPrice:         r.TotalPrice,
		DiscountPercentage: r.DiscountPercentage,
		TaxPercentage:      r.TaxPercentage,
		Split:              r.Spec,
	}
}

// ItemResponse represents one bill item in responses
type ItemResponse struct {
	ID                 int64      `json:"id"`
	Name               string     `json:"name"`
	UnitPrice          string     `json:"unitPrice"`
	Quantity           string     `json:"quantity"`
	TotalPrice         string     `json:"totalPrice"`
	DiscountPercentage string     `json:"discountPercentage"`
	TaxPercentage      string     `json:"taxPercentage"`
	Split              split.Spec `json:"split"`
}

// ItemShareResponse is one item's contribution within a participant summary
type ItemShareResponse struct {
	ItemName string `json:"itemName"`
	Share    string `json:"share"`
	Amount   string `json:"amount"`
}

// ParticipantSummaryResponse is one participant's aggregated position
type ParticipantSummaryResponse struct {
	ParticipantID int64               `json:"participant_id"`
	Subtotal      string              `json:"subtotal"`
	Tax           string              `json:"tax"`
	Total         string              `json:"total"`
	Items         []ItemShareResponse `json:"items"`
}

// SummaryResponse is the aggregated view of a bill
type SummaryResponse struct {
	Participants []ParticipantSummaryResponse `json:"participants"`
	Total        string                       `json:"total"`
}

// BillResponse represents the response for a bill
type BillResponse struct {
	ID              int64            `json:"id"`
	GroupID         *int64           `json:"group_id,omitempty"`
	CreatorID       int64            `json:"creator_id"`
	CreatorUsername string           `json:"creator_username,omitempty"`
	Title           string           `json:"title"`
	CurrencyCode    string           `json:"currency_code"`
	Status          Status           `json:"status"`
	CreatedAt       string           `json:"created_at"`
	Items           []*ItemResponse  `json:"items,omitempty"`
	Summary         *SummaryResponse `json:"summary,omitempty"`
}

const timeLayout = "2006-01-02T15:04:05Z"

// ToResponse converts a Bill model to a BillResponse DTO
func (b *Bill) ToResponse() *BillResponse {
	resp := &BillResponse{
		ID:              b.ID,
		GroupID:         b.GroupID,
		CreatorID:       b.CreatorID,
		CreatorUsername: b.CreatorUsername,
		Title:           b.Title,
		CurrencyCode:    b.CurrencyCode,
		Status:          b.Status,
		CreatedAt:       b.CreatedAt.Format(timeLayout),
	}
	for _, item := range b.Items {
		resp.Items = append(resp.Items, item.ToResponse())
	}
	return resp
}

// ToResponse converts an Item model to an ItemResponse DTO
func (i *Item) ToResponse() *ItemResponse {
	return &ItemResponse{
		ID:                 i.ID,
		Name:               i.Name,
		UnitPrice:          i.UnitPrice.StringFixed(2),
		Quantity:           i.Quantity.String(),
		TotalPrice:         i.TotalPrice.StringFixed(2),
		DiscountPercentage: i.DiscountPercentage.String(),
		TaxPercentage:      i.TaxPercentage.String(),
		Split:              i.Split,
	}
}

// ToResponse converts a Summary to its DTO
func (s *Summary) ToResponse() *SummaryResponse {
	resp := &SummaryResponse{Total: s.Total.StringFixed(2)}
	for _, ps := range s.Participants {
		pr := ParticipantSummaryResponse{
			ParticipantID: ps.ParticipantID,
			Subtotal:      ps.Subtotal.StringFixed(2),
			Tax:           ps.Tax.StringFixed(2),
			Total:         ps.Total.StringFixed(2),
		}
		for _, item := range ps.Items {
			pr.Items = append(pr.Items, ItemShareResponse{
				ItemName: item.ItemName,
				Share:    item.Share.Round(6).String(),
				Amount:   item.Amount.StringFixed(2),
			})
		}
		resp.Participants = append(resp.Participants, pr)
	}
	return resp
}
