package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestRound(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already rounded", "10.00", "10"},
		{"half rounds away from zero", "2.345", "2.35"},
		{"negative half rounds away from zero", "-2.345", "-2.35"},
		{"truncates below half", "9.994", "9.99"},
		{"thirds", "3.333333333333", "3.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round(mustDecimal(t, tt.in))
			assert.True(t, got.Equal(mustDecimal(t, tt.want)),
				"Round(%s) = %s, want %s", tt.in, got, tt.want)
		})
	}
}

func TestWithinMinorUnit(t *testing.T) {
	assert.True(t, WithinMinorUnit(mustDecimal(t, "10.00"), mustDecimal(t, "10.00")))
	assert.True(t, WithinMinorUnit(mustDecimal(t, "10.00"), mustDecimal(t, "10.01")))
	assert.True(t, WithinMinorUnit(mustDecimal(t, "10.01"), mustDecimal(t, "10.00")))
	assert.False(t, WithinMinorUnit(mustDecimal(t, "10.00"), mustDecimal(t, "10.02")))
	assert.False(t, WithinMinorUnit(mustDecimal(t, "9.97"), mustDecimal(t, "10.00")))
}

func TestPercent(t *testing.T) {
	assert.True(t, Percent(mustDecimal(t, "15")).Equal(mustDecimal(t, "0.15")))
	assert.True(t, Percent(mustDecimal(t, "100")).Equal(mustDecimal(t, "1")))
	assert.True(t, Percent(decimal.Zero).IsZero())
}

func TestMinorUnit(t *testing.T) {
	assert.True(t, MinorUnit().Equal(mustDecimal(t, "0.01")))
}
