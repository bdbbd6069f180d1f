package split

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sayantan-2/splitbill/internal/money"
)

// exactSplit assigns fixed amounts that must sum to the item total (after
// discount and tax) within one minor currency unit. The amounts double as
// weights, so a valid exact split reproduces the given amounts unchanged.
type exactSplit []Exact

func (s exactSplit) Type() Type {
	return TypeExact
}

func (s exactSplit) Validate(itemTotal decimal.Decimal) error {
	ids := make([]int64, len(s))
	sum := decimal.Zero
	for i, e := range s {
		if e.Amount.IsNegative() {
			return fmt.Errorf("%w: participant %d has exact amount %s",
				ErrNegativeAllocation, e.ParticipantID, e.Amount)
		}
		sum = sum.Add(e.Amount)
		ids[i] = e.ParticipantID
	}
	if err := checkDistinct(ids); err != nil {
		return err
	}

	if !money.WithinMinorUnit(sum, itemTotal) {
		return fmt.Errorf("%w: exact amounts sum to %s, item total is %s",
			ErrStrategyMismatch, sum, itemTotal)
	}
	return nil
}

func (s exactSplit) portions(itemTotal decimal.Decimal) []Portion {
	portions := make([]Portion, len(s))
	for i, e := range s {
		portions[i] = Portion{ParticipantID: e.ParticipantID, Weight: e.Amount}
	}
	return portions
}
