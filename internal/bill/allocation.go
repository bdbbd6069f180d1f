package bill

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sayantan-2/splitbill/internal/bill/split"
	"github.com/sayantan-2/splitbill/internal/money"
)

// Common errors
var (
	// ErrTotalPriceMismatch means a stored item total does not match
	// unit price × quantity within one minor unit.
	ErrTotalPriceMismatch = errors.New("stored total price does not match unit price times quantity")
)

// Allocation is one participant's reconciled monetary share of one item.
type Allocation struct {
	ParticipantID int64           `json:"participant_id"`
	Fraction      decimal.Decimal `json:"fraction"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
}

// financials derives the item's discounted subtotal, tax and total, each
// rounded to the minor unit so the distributable totals are whole cents.
func (i *Item) financials() (subtotal, tax, total decimal.Decimal, err error) {
	zero := decimal.Zero
	if i.UnitPrice.IsNegative() || i.Quantity.IsNegative() {
		return zero, zero, zero, fmt.Errorf("%w: unit price %s, quantity %s",
			split.ErrNegativeAllocation, i.UnitPrice, i.Quantity)
	}
	if i.DiscountPercentage.IsNegative() || i.DiscountPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return zero, zero, zero, fmt.Errorf("%w: discount percentage %s out of range",
			split.ErrNegativeAllocation, i.DiscountPercentage)
	}
	if i.TaxPercentage.IsNegative() {
		return zero, zero, zero, fmt.Errorf("%w: tax percentage %s is negative",
			split.ErrNegativeAllocation, i.TaxPercentage)
	}

	gross := i.UnitPrice.Mul(i.Quantity)
	if !i.TotalPrice.IsZero() && !money.WithinMinorUnit(i.TotalPrice, gross) {
		return zero, zero, zero, fmt.Errorf("%w: stored %s, computed %s",
			ErrTotalPriceMismatch, i.TotalPrice, gross)
	}

	subtotal = money.Round(gross.Sub(gross.Mul(money.Percent(i.DiscountPercentage))))
	tax = money.Round(subtotal.Mul(money.Percent(i.TaxPercentage)))
	total = subtotal.Add(tax)
	return subtotal, tax, total, nil
}

// Allocate resolves the item's split strategy and distributes its cost so
// that the participant totals sum to the item total exactly. Subtotal shares
// are reconciled against the item subtotal the same way; a participant's tax
// share is the difference of the two.
//
// Allocate is deterministic: the residual left by rounding always lands on
// the participant with the largest weight (ties broken by smallest ID).
func (i *Item) Allocate() ([]Allocation, error) {
	subtotal, _, total, err := i.financials()
	if err != nil {
		return nil, err
	}

	portions, err := split.Resolve(&i.Split, total)
	if err != nil {
		return nil, err
	}

	weightSum := decimal.Zero
	for _, p := range portions {
		weightSum = weightSum.Add(p.Weight)
	}

	totals := distribute(total, portions, weightSum)
	subtotals := distribute(subtotal, portions, weightSum)

	allocations := make([]Allocation, len(portions))
	for idx, p := range portions {
		allocations[idx] = Allocation{
			ParticipantID: p.ParticipantID,
			Fraction:      p.Weight.Div(weightSum),
			Subtotal:      subtotals[idx],
			Tax:           totals[idx].Sub(subtotals[idx]),
			Total:         totals[idx],
		}
	}
	return allocations, nil
}

// distribute splits amount proportionally by weight, rounding every share to
// the minor unit. Whatever residual the rounding leaves is added to the first
// share, so the returned shares always sum to amount exactly. Portions are
// already ordered weight-descending, ID-ascending.
func distribute(amount decimal.Decimal, portions []split.Portion, weightSum decimal.Decimal) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(portions))
	allocated := decimal.Zero
	for i, p := range portions {
		shares[i] = money.Round(amount.Mul(p.Weight).Div(weightSum))
		allocated = allocated.Add(shares[i])
	}

	if residual := amount.Sub(allocated); !residual.IsZero() {
		shares[0] = shares[0].Add(residual)
	}
	return shares
}
