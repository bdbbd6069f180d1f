package split

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sayantan-2/splitbill/internal/money"
)

// adjustmentSplit starts from an equal split and applies signed per-participant
// deltas. The deltas must net to zero, so the weights (equal base + delta) sum
// back to the item total and each fraction is 1/n + delta/total.
type adjustmentSplit []Adjustment

func (s adjustmentSplit) Type() Type {
	return TypeAdjustments
}

func (s adjustmentSplit) Validate(itemTotal decimal.Decimal) error {
	ids := make([]int64, len(s))
	net := decimal.Zero
	for i, a := range s {
		net = net.Add(a.Delta)
		ids[i] = a.ParticipantID
	}
	if err := checkDistinct(ids); err != nil {
		return err
	}

	if !money.WithinMinorUnit(net, decimal.Zero) {
		return fmt.Errorf("%w: adjustment deltas net to %s, want 0", ErrStrategyMismatch, net)
	}
	return nil
}

func (s adjustmentSplit) portions(itemTotal decimal.Decimal) []Portion {
	base := itemTotal.Div(decimal.NewFromInt(int64(len(s))))
	portions := make([]Portion, len(s))
	for i, a := range s {
		portions[i] = Portion{ParticipantID: a.ParticipantID, Weight: base.Add(a.Delta)}
	}
	return portions
}
