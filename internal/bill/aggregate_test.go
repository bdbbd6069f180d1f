package bill

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sayantan-2/splitbill/internal/bill/split"
)

func TestSummarize_SingleItem(t *testing.T) {
	items := []*Item{
		item(t, "22.00", "1", split.Spec{Equal: []int64{1, 2}}),
	}

	summary, err := Summarize(items)
	require.NoError(t, err)
	require.Len(t, summary.Participants, 2)

	assert.True(t, summary.Total.Equal(d(t, "22.00")))
	for _, ps := range summary.Participants {
		assert.True(t, ps.Total.Equal(d(t, "11.00")))
		require.Len(t, ps.Items, 1)
		assert.Equal(t, "test item", ps.Items[0].ItemName)
		assert.True(t, ps.Items[0].Amount.Equal(d(t, "11.00")))
	}
}

func TestSummarize_AccumulatesAcrossItems(t *testing.T) {
	pizza := item(t, "30.00", "1", split.Spec{Equal: []int64{1, 2, 3}})
	pizza.Name = "pizza"

	wine := item(t, "20.00", "1", split.Spec{Shares: []split.Share{
		{ParticipantID: 1, Weight: 3},
		{ParticipantID: 2, Weight: 1},
	}})
	wine.Name = "wine"

	summary, err := Summarize([]*Item{pizza, wine})
	require.NoError(t, err)
	require.Len(t, summary.Participants, 3)

	// Sorted by participant ID.
	assert.Equal(t, int64(1), summary.Participants[0].ParticipantID)
	assert.Equal(t, int64(2), summary.Participants[1].ParticipantID)
	assert.Equal(t, int64(3), summary.Participants[2].ParticipantID)

	// Participant 1: 10.00 pizza + 15.00 wine.
	assert.True(t, summary.Participants[0].Total.Equal(d(t, "25.00")))
	assert.Len(t, summary.Participants[0].Items, 2)

	// Participant 2: 10.00 pizza + 5.00 wine.
	assert.True(t, summary.Participants[1].Total.Equal(d(t, "15.00")))

	// Participant 3: pizza only.
	assert.True(t, summary.Participants[2].Total.Equal(d(t, "10.00")))
	assert.Len(t, summary.Participants[2].Items, 1)

	assert.True(t, summary.Total.Equal(d(t, "50.00")))
}

func TestSummarize_BillTotalEqualsParticipantSum(t *testing.T) {
	a := item(t, "13.37", "2", split.Spec{Equal: []int64{1, 2, 3}})
	a.TaxPercentage = d(t, "7.5")

	b := item(t, "4.20", "3", split.Spec{Percentages: []split.Percentage{
		{ParticipantID: 2, Percentage: d(t, "70")},
		{ParticipantID: 4, Percentage: d(t, "30")},
	}})

	summary, err := Summarize([]*Item{a, b})
	require.NoError(t, err)

	sum := decimal.Zero
	for _, ps := range summary.Participants {
		assert.True(t, ps.Subtotal.Add(ps.Tax).Equal(ps.Total))
		sum = sum.Add(ps.Total)
	}
	assert.True(t, sum.Equal(summary.Total), "participants sum to %s, bill total %s", sum, summary.Total)
}

func TestSummarize_FirstBadItemAborts(t *testing.T) {
	good := item(t, "10.00", "1", split.Spec{Equal: []int64{1}})
	bad := item(t, "10.00", "1", split.Spec{Exact: []split.Exact{
		{ParticipantID: 1, Amount: d(t, "4.00")},
	}})

	_, err := Summarize([]*Item{good, bad})
	assert.ErrorIs(t, err, split.ErrStrategyMismatch)
}

func TestSummarize_EmptyBill(t *testing.T) {
	summary, err := Summarize(nil)
	require.NoError(t, err)
	assert.Empty(t, summary.Participants)
	assert.True(t, summary.Total.IsZero())
}
