package split

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// percentageTolerance allows 99.99..100.01 to count as a full 100%.
var percentageTolerance = decimal.NewFromFloat(0.01)

var fullPercentage = decimal.NewFromInt(100)

// percentageSplit weights participants by percentages summing to 100.
// Zero-percentage participants are excluded, mirroring zero-weight shares.
type percentageSplit []Percentage

func (s percentageSplit) Type() Type {
	return TypePercentages
}

func (s percentageSplit) Validate(itemTotal decimal.Decimal) error {
	ids := make([]int64, len(s))
	sum := decimal.Zero
	for i, p := range s {
		if p.Percentage.IsNegative() {
			return fmt.Errorf("%w: participant %d has percentage %s",
				ErrNegativeAllocation, p.ParticipantID, p.Percentage)
		}
		if p.Percentage.GreaterThan(fullPercentage) {
			return fmt.Errorf("%w: participant %d has percentage %s, above 100",
				ErrStrategyMismatch, p.ParticipantID, p.Percentage)
		}
		sum = sum.Add(p.Percentage)
		ids[i] = p.ParticipantID
	}
	if err := checkDistinct(ids); err != nil {
		return err
	}

	if sum.Sub(fullPercentage).Abs().GreaterThan(percentageTolerance) {
		return fmt.Errorf("%w: percentages sum to %s, want 100", ErrStrategyMismatch, sum)
	}
	return nil
}

func (s percentageSplit) portions(itemTotal decimal.Decimal) []Portion {
	portions := make([]Portion, len(s))
	for i, p := range s {
		portions[i] = Portion{ParticipantID: p.ParticipantID, Weight: p.Percentage}
	}
	return portions
}
