package split

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return v
}

func participantIDs(portions []Portion) []int64 {
	ids := make([]int64, len(portions))
	for i, p := range portions {
		ids[i] = p.ParticipantID
	}
	return ids
}

func TestSpecType_ExactlyOneVariant(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		want    Type
		wantErr error
	}{
		{
			name: "equal",
			spec: Spec{Equal: []int64{1, 2}},
			want: TypeEqual,
		},
		{
			name: "shares",
			spec: Spec{Shares: []Share{{ParticipantID: 1, Weight: 2}}},
			want: TypeShares,
		},
		{
			name:    "empty spec",
			spec:    Spec{},
			wantErr: ErrInvalidStrategy,
		},
		{
			name: "two variants populated",
			spec: Spec{
				Equal:  []int64{1, 2},
				Shares: []Share{{ParticipantID: 1, Weight: 1}},
			},
			wantErr: ErrInvalidStrategy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.spec.Type()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Equal(t *testing.T) {
	portions, err := Resolve(&Spec{Equal: []int64{2, 1}}, d(t, "22.00"))
	require.NoError(t, err)

	// Equal weights tie-break by participant ID ascending.
	assert.Equal(t, []int64{1, 2}, participantIDs(portions))
	for _, p := range portions {
		assert.True(t, p.Weight.Equal(decimal.NewFromInt(1)))
	}
}

func TestResolve_SharesOrderedByWeightThenID(t *testing.T) {
	spec := &Spec{Shares: []Share{
		{ParticipantID: 3, Weight: 1},
		{ParticipantID: 1, Weight: 2},
		{ParticipantID: 2, Weight: 2},
	}}

	portions, err := Resolve(spec, d(t, "50.00"))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, participantIDs(portions))
}

func TestResolve_SharesZeroWeightExcluded(t *testing.T) {
	spec := &Spec{Shares: []Share{
		{ParticipantID: 1, Weight: 2},
		{ParticipantID: 2, Weight: 0},
		{ParticipantID: 3, Weight: 1},
	}}

	portions, err := Resolve(spec, d(t, "30.00"))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, participantIDs(portions))
}

func TestResolve_SharesAllZeroWeights(t *testing.T) {
	spec := &Spec{Shares: []Share{
		{ParticipantID: 1, Weight: 0},
		{ParticipantID: 2, Weight: 0},
	}}

	_, err := Resolve(spec, d(t, "30.00"))
	assert.ErrorIs(t, err, ErrInvalidStrategy)
}

func TestResolve_SharesNegativeWeight(t *testing.T) {
	spec := &Spec{Shares: []Share{
		{ParticipantID: 1, Weight: 2},
		{ParticipantID: 2, Weight: -1},
	}}

	_, err := Resolve(spec, d(t, "30.00"))
	assert.ErrorIs(t, err, ErrInvalidStrategy)
}

func TestResolve_DuplicateParticipant(t *testing.T) {
	_, err := Resolve(&Spec{Equal: []int64{1, 2, 1}}, d(t, "30.00"))
	assert.ErrorIs(t, err, ErrInvalidStrategy)
}

func TestResolve_ExactAmounts(t *testing.T) {
	spec := &Spec{Exact: []Exact{
		{ParticipantID: 1, Amount: d(t, "3.33")},
		{ParticipantID: 2, Amount: d(t, "3.33")},
		{ParticipantID: 3, Amount: d(t, "3.34")},
	}}

	portions, err := Resolve(spec, d(t, "10.00"))
	require.NoError(t, err)

	// Largest amount first, then ID ascending.
	assert.Equal(t, []int64{3, 1, 2}, participantIDs(portions))
	assert.True(t, portions[0].Weight.Equal(d(t, "3.34")))
}

func TestResolve_ExactAmountsMismatch(t *testing.T) {
	spec := &Spec{Exact: []Exact{
		{ParticipantID: 1, Amount: d(t, "3.00")},
		{ParticipantID: 2, Amount: d(t, "3.00")},
	}}

	_, err := Resolve(spec, d(t, "10.00"))
	assert.ErrorIs(t, err, ErrStrategyMismatch)
}

func TestResolve_ExactAmountsWithinToleranceAccepted(t *testing.T) {
	spec := &Spec{Exact: []Exact{
		{ParticipantID: 1, Amount: d(t, "5.00")},
		{ParticipantID: 2, Amount: d(t, "4.99")},
	}}

	_, err := Resolve(spec, d(t, "10.00"))
	assert.NoError(t, err)
}

func TestResolve_ExactAmountsNegative(t *testing.T) {
	spec := &Spec{Exact: []Exact{
		{ParticipantID: 1, Amount: d(t, "12.00")},
		{ParticipantID: 2, Amount: d(t, "-2.00")},
	}}

	_, err := Resolve(spec, d(t, "10.00"))
	assert.ErrorIs(t, err, ErrNegativeAllocation)
}

func TestResolve_Percentages(t *testing.T) {
	spec := &Spec{Percentages: []Percentage{
		{ParticipantID: 1, Percentage: d(t, "60")},
		{ParticipantID: 2, Percentage: d(t, "40")},
	}}

	portions, err := Resolve(spec, d(t, "100.00"))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, participantIDs(portions))
	assert.True(t, portions[0].Weight.Equal(d(t, "60")))
}

func TestResolve_PercentagesSumErrors(t *testing.T) {
	tests := []struct {
		name        string
		percentages []Percentage
		wantErr     error
	}{
		{
			name: "sum below 100",
			percentages: []Percentage{
				{ParticipantID: 1, Percentage: d(t, "60")},
				{ParticipantID: 2, Percentage: d(t, "30")},
			},
			wantErr: ErrStrategyMismatch,
		},
		{
			name: "sum above 100",
			percentages: []Percentage{
				{ParticipantID: 1, Percentage: d(t, "60")},
				{ParticipantID: 2, Percentage: d(t, "50")},
			},
			wantErr: ErrStrategyMismatch,
		},
		{
			name: "single percentage above 100",
			percentages: []Percentage{
				{ParticipantID: 1, Percentage: d(t, "120")},
			},
			wantErr: ErrStrategyMismatch,
		},
		{
			name: "negative percentage",
			percentages: []Percentage{
				{ParticipantID: 1, Percentage: d(t, "60")},
				{ParticipantID: 2, Percentage: d(t, "-10")},
				{ParticipantID: 3, Percentage: d(t, "50")},
			},
			wantErr: ErrNegativeAllocation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(&Spec{Percentages: tt.percentages}, d(t, "100.00"))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResolve_PercentagesWithinTolerance(t *testing.T) {
	spec := &Spec{Percentages: []Percentage{
		{ParticipantID: 1, Percentage: d(t, "33.33")},
		{ParticipantID: 2, Percentage: d(t, "33.33")},
		{ParticipantID: 3, Percentage: d(t, "33.34")},
	}}

	_, err := Resolve(spec, d(t, "100.00"))
	assert.NoError(t, err)
}

func TestResolve_PercentagesZeroExcluded(t *testing.T) {
	spec := &Spec{Percentages: []Percentage{
		{ParticipantID: 1, Percentage: d(t, "100")},
		{ParticipantID: 2, Percentage: d(t, "0")},
	}}

	portions, err := Resolve(spec, d(t, "80.00"))
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, participantIDs(portions))
}

func TestResolve_Adjustments(t *testing.T) {
	spec := &Spec{Adjustments: []Adjustment{
		{ParticipantID: 1, Delta: d(t, "3.00")},
		{ParticipantID: 2, Delta: d(t, "-3.00")},
		{ParticipantID: 3, Delta: decimal.Zero},
	}}

	portions, err := Resolve(spec, d(t, "30.00"))
	require.NoError(t, err)

	// Base is 10.00 each; weights become 13, 7 and 10.
	assert.Equal(t, []int64{1, 3, 2}, participantIDs(portions))
	assert.True(t, portions[0].Weight.Equal(d(t, "13.00")))
	assert.True(t, portions[1].Weight.Equal(d(t, "10.00")))
	assert.True(t, portions[2].Weight.Equal(d(t, "7.00")))
}

func TestResolve_AdjustmentsDeltasMustNetToZero(t *testing.T) {
	spec := &Spec{Adjustments: []Adjustment{
		{ParticipantID: 1, Delta: d(t, "3.00")},
		{ParticipantID: 2, Delta: d(t, "-1.00")},
	}}

	_, err := Resolve(spec, d(t, "30.00"))
	assert.ErrorIs(t, err, ErrStrategyMismatch)
}

func TestResolve_AdjustmentsNegativeWeight(t *testing.T) {
	// Base is 5.00 each; the -6.00 delta pushes one weight below zero.
	spec := &Spec{Adjustments: []Adjustment{
		{ParticipantID: 1, Delta: d(t, "6.00")},
		{ParticipantID: 2, Delta: d(t, "-6.00")},
	}}

	_, err := Resolve(spec, d(t, "10.00"))
	assert.ErrorIs(t, err, ErrNegativeAllocation)
}

func TestResolve_Deterministic(t *testing.T) {
	spec := &Spec{Shares: []Share{
		{ParticipantID: 5, Weight: 3},
		{ParticipantID: 2, Weight: 3},
		{ParticipantID: 9, Weight: 1},
	}}

	first, err := Resolve(spec, d(t, "77.77"))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := Resolve(spec, d(t, "77.77"))
		require.NoError(t, err)
		assert.Equal(t, participantIDs(first), participantIDs(again))
	}
}
