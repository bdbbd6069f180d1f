package bill

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sayantan-2/splitbill/internal/bill/split"
)

func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return v
}

func item(t *testing.T, unitPrice, quantity string, spec split.Spec) *Item {
	t.Helper()
	return &Item{
		Name:      "test item",
		UnitPrice: d(t, unitPrice),
		Quantity:  d(t, quantity),
		Split:     spec,
	}
}

func sumTotals(allocations []Allocation) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range allocations {
		sum = sum.Add(a.Total)
	}
	return sum
}

func TestAllocate_EqualTwoWays(t *testing.T) {
	i := item(t, "22.00", "1", split.Spec{Equal: []int64{1, 2}})

	allocations, err := i.Allocate()
	require.NoError(t, err)
	require.Len(t, allocations, 2)

	for _, a := range allocations {
		assert.True(t, a.Total.Equal(d(t, "11.00")), "total %s", a.Total)
		assert.True(t, a.Fraction.Equal(d(t, "0.5")))
	}
}

func TestAllocate_EqualThreeWaysNoResidual(t *testing.T) {
	i := item(t, "9.99", "3", split.Spec{Equal: []int64{1, 2, 3}})

	allocations, err := i.Allocate()
	require.NoError(t, err)
	require.Len(t, allocations, 3)

	for _, a := range allocations {
		assert.True(t, a.Total.Equal(d(t, "9.99")), "total %s", a.Total)
	}
}

func TestAllocate_ResidualGoesToSmallestID(t *testing.T) {
	i := item(t, "10.00", "1", split.Spec{Equal: []int64{3, 1, 2}})

	allocations, err := i.Allocate()
	require.NoError(t, err)
	require.Len(t, allocations, 3)

	// Equal weights: the tie-break puts participant 1 first, and the extra
	// cent lands there.
	assert.Equal(t, int64(1), allocations[0].ParticipantID)
	assert.True(t, allocations[0].Total.Equal(d(t, "3.34")))
	assert.True(t, allocations[1].Total.Equal(d(t, "3.33")))
	assert.True(t, allocations[2].Total.Equal(d(t, "3.33")))
	assert.True(t, sumTotals(allocations).Equal(d(t, "10.00")))
}

func TestAllocate_ResidualGoesToLargestWeight(t *testing.T) {
	i := item(t, "10.00", "1", split.Spec{Shares: []split.Share{
		{ParticipantID: 1, Weight: 1},
		{ParticipantID: 2, Weight: 2},
	}})

	allocations, err := i.Allocate()
	require.NoError(t, err)
	require.Len(t, allocations, 2)

	// 2/3 of 10.00 rounds to 6.67, 1/3 rounds to 3.33; no residual remains,
	// and the largest weight is listed first.
	assert.Equal(t, int64(2), allocations[0].ParticipantID)
	assert.True(t, allocations[0].Total.Equal(d(t, "6.67")))
	assert.True(t, allocations[1].Total.Equal(d(t, "3.33")))
	assert.True(t, sumTotals(allocations).Equal(d(t, "10.00")))
}

func TestAllocate_ExactAmountsPreserved(t *testing.T) {
	i := item(t, "10.00", "1", split.Spec{Exact: []split.Exact{
		{ParticipantID: 1, Amount: d(t, "3.33")},
		{ParticipantID: 2, Amount: d(t, "3.33")},
		{ParticipantID: 3, Amount: d(t, "3.34")},
	}})

	allocations, err := i.Allocate()
	require.NoError(t, err)
	require.Len(t, allocations, 3)

	got := map[int64]decimal.Decimal{}
	for _, a := range allocations {
		got[a.ParticipantID] = a.Total
	}
	assert.True(t, got[1].Equal(d(t, "3.33")))
	assert.True(t, got[2].Equal(d(t, "3.33")))
	assert.True(t, got[3].Equal(d(t, "3.34")))
}

func TestAllocate_TaxSplitsProportionally(t *testing.T) {
	i := item(t, "10.00", "2", split.Spec{Equal: []int64{1, 2}})
	i.TaxPercentage = d(t, "10")

	allocations, err := i.Allocate()
	require.NoError(t, err)
	require.Len(t, allocations, 2)

	for _, a := range allocations {
		assert.True(t, a.Subtotal.Equal(d(t, "10.00")), "subtotal %s", a.Subtotal)
		assert.True(t, a.Tax.Equal(d(t, "1.00")), "tax %s", a.Tax)
		assert.True(t, a.Total.Equal(d(t, "11.00")), "total %s", a.Total)
	}
}

func TestAllocate_DiscountThenTax(t *testing.T) {
	i := item(t, "100.00", "1", split.Spec{Equal: []int64{1}})
	i.DiscountPercentage = d(t, "10")
	i.TaxPercentage = d(t, "5")

	allocations, err := i.Allocate()
	require.NoError(t, err)
	require.Len(t, allocations, 1)

	// 100 - 10% = 90.00 subtotal, then 5% tax on the discounted base.
	assert.True(t, allocations[0].Subtotal.Equal(d(t, "90.00")))
	assert.True(t, allocations[0].Tax.Equal(d(t, "4.50")))
	assert.True(t, allocations[0].Total.Equal(d(t, "94.50")))
}

func TestAllocate_ZeroTaxMeansZeroTaxShares(t *testing.T) {
	i := item(t, "10.00", "1", split.Spec{Equal: []int64{1, 2, 3}})

	allocations, err := i.Allocate()
	require.NoError(t, err)

	for _, a := range allocations {
		assert.True(t, a.Tax.IsZero(), "tax %s for participant %d", a.Tax, a.ParticipantID)
		assert.True(t, a.Subtotal.Equal(a.Total))
	}
}

func TestAllocate_SubtotalTaxTotalReconcile(t *testing.T) {
	// Awkward amounts with tax: every component series must still sum exactly.
	i := item(t, "7.77", "3", split.Spec{Shares: []split.Share{
		{ParticipantID: 1, Weight: 3},
		{ParticipantID: 2, Weight: 2},
		{ParticipantID: 3, Weight: 2},
	}})
	i.TaxPercentage = d(t, "8.25")

	allocations, err := i.Allocate()
	require.NoError(t, err)

	subtotal, tax, total, err := i.financials()
	require.NoError(t, err)

	sumSubtotal, sumTax, sumTotal := decimal.Zero, decimal.Zero, decimal.Zero
	for _, a := range allocations {
		assert.True(t, a.Subtotal.Add(a.Tax).Equal(a.Total))
		sumSubtotal = sumSubtotal.Add(a.Subtotal)
		sumTax = sumTax.Add(a.Tax)
		sumTotal = sumTotal.Add(a.Total)
	}
	assert.True(t, sumSubtotal.Equal(subtotal), "subtotals sum to %s, want %s", sumSubtotal, subtotal)
	assert.True(t, sumTax.Equal(tax), "taxes sum to %s, want %s", sumTax, tax)
	assert.True(t, sumTotal.Equal(total), "totals sum to %s, want %s", sumTotal, total)
}

func TestAllocate_Idempotent(t *testing.T) {
	i := item(t, "19.99", "7", split.Spec{Percentages: []split.Percentage{
		{ParticipantID: 4, Percentage: d(t, "33.33")},
		{ParticipantID: 8, Percentage: d(t, "33.33")},
		{ParticipantID: 2, Percentage: d(t, "33.34")},
	}})
	i.TaxPercentage = d(t, "15")

	first, err := i.Allocate()
	require.NoError(t, err)

	for n := 0; n < 5; n++ {
		again, err := i.Allocate()
		require.NoError(t, err)
		require.Len(t, again, len(first))
		for idx := range first {
			assert.Equal(t, first[idx].ParticipantID, again[idx].ParticipantID)
			assert.True(t, first[idx].Total.Equal(again[idx].Total))
			assert.True(t, first[idx].Subtotal.Equal(again[idx].Subtotal))
		}
	}
}

func TestAllocate_StoredTotalPriceMismatch(t *testing.T) {
	i := item(t, "10.00", "2", split.Spec{Equal: []int64{1, 2}})
	i.TotalPrice = d(t, "25.00")

	_, err := i.Allocate()
	assert.ErrorIs(t, err, ErrTotalPriceMismatch)
}

func TestAllocate_StoredTotalPriceMatchAccepted(t *testing.T) {
	i := item(t, "10.00", "2", split.Spec{Equal: []int64{1, 2}})
	i.TotalPrice = d(t, "20.00")

	_, err := i.Allocate()
	assert.NoError(t, err)
}

func TestAllocate_NegativeInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Item)
	}{
		{"negative unit price", func(i *Item) { i.UnitPrice = d(t, "-1.00") }},
		{"negative quantity", func(i *Item) { i.Quantity = d(t, "-2") }},
		{"negative discount", func(i *Item) { i.DiscountPercentage = d(t, "-5") }},
		{"discount above 100", func(i *Item) { i.DiscountPercentage = d(t, "101") }},
		{"negative tax", func(i *Item) { i.TaxPercentage = d(t, "-1") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := item(t, "10.00", "1", split.Spec{Equal: []int64{1}})
			tt.mutate(i)

			_, err := i.Allocate()
			assert.ErrorIs(t, err, split.ErrNegativeAllocation)
		})
	}
}

func TestAllocate_InvalidStrategyPropagates(t *testing.T) {
	i := item(t, "10.00", "1", split.Spec{})

	_, err := i.Allocate()
	assert.ErrorIs(t, err, split.ErrInvalidStrategy)
}
