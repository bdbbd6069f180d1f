package split

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// equalSplit gives every listed participant a weight of 1.
type equalSplit []int64

func (s equalSplit) Type() Type {
	return TypeEqual
}

func (s equalSplit) Validate(itemTotal decimal.Decimal) error {
	return checkDistinct(s)
}

func (s equalSplit) portions(itemTotal decimal.Decimal) []Portion {
	portions := make([]Portion, len(s))
	for i, id := range s {
		portions[i] = Portion{ParticipantID: id, Weight: decimal.NewFromInt(1)}
	}
	return portions
}

// sharesSplit weights participants by positive integer shares. A weight of
// zero excludes the participant from the item.
type sharesSplit []Share

func (s sharesSplit) Type() Type {
	return TypeShares
}

func (s sharesSplit) Validate(itemTotal decimal.Decimal) error {
	ids := make([]int64, len(s))
	for i, sh := range s {
		if sh.Weight < 0 {
			return fmt.Errorf("%w: participant %d has negative weight %d",
				ErrInvalidStrategy, sh.ParticipantID, sh.Weight)
		}
		ids[i] = sh.ParticipantID
	}
	return checkDistinct(ids)
}

func (s sharesSplit) portions(itemTotal decimal.Decimal) []Portion {
	portions := make([]Portion, len(s))
	for i, sh := range s {
		portions[i] = Portion{ParticipantID: sh.ParticipantID, Weight: decimal.NewFromInt(sh.Weight)}
	}
	return portions
}
