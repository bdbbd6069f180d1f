package bill

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ItemShare records one item's contribution to a participant's summary.
type ItemShare struct {
	ItemName string          `json:"itemName"`
	Share    decimal.Decimal `json:"share"`
	Amount   decimal.Decimal `json:"amount"`
}

// ParticipantSummary is one participant's aggregated position on a bill.
type ParticipantSummary struct {
	ParticipantID int64           `json:"participant_id"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Items         []ItemShare     `json:"items"`
}

// Summary is the result of aggregating every item allocation on a bill.
type Summary struct {
	Participants []*ParticipantSummary `json:"participants"`
	Total        decimal.Decimal       `json:"total"`
}

// Summarize allocates every item and sums the allocations per participant.
// Item allocations are independent of each other; the running totals are
// accumulated in this single pass, so no locking is needed. The bill-wide
// total equals the sum of all participant totals by construction.
func Summarize(items []*Item) (*Summary, error) {
	byParticipant := make(map[int64]*ParticipantSummary)
	billTotal := decimal.Zero

	for _, item := range items {
		allocations, err := item.Allocate()
		if err != nil {
			return nil, err
		}

		for _, a := range allocations {
			ps, ok := byParticipant[a.ParticipantID]
			if !ok {
				ps = &ParticipantSummary{
					ParticipantID: a.ParticipantID,
					Subtotal:      decimal.Zero,
					Tax:           decimal.Zero,
					Total:         decimal.Zero,
				}
				byParticipant[a.ParticipantID] = ps
			}

			ps.Subtotal = ps.Subtotal.Add(a.Subtotal)
			ps.Tax = ps.Tax.Add(a.Tax)
			ps.Total = ps.Total.Add(a.Total)
			ps.Items = append(ps.Items, ItemShare{
				ItemName: item.Name,
				Share:    a.Fraction,
				Amount:   a.Total,
			})
			billTotal = billTotal.Add(a.Total)
		}
	}

	participants := make([]*ParticipantSummary, 0, len(byParticipant))
	for _, ps := range byParticipant {
		participants = append(participants, ps)
	}
	sort.Slice(participants, func(i, j int) bool {
		return participants[i].ParticipantID < participants[j].ParticipantID
	})

	return &Summary{Participants: participants, Total: billTotal}, nil
}
