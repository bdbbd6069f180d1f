package split

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Type identifies a split strategy variant.
type Type string

const (
	TypeEqual       Type = "EQUAL"
	TypeShares      Type = "SHARES"
	TypeExact       Type = "EXACT_AMOUNTS"
	TypePercentages Type = "PERCENTAGES"
	TypeAdjustments Type = "ADJUSTMENTS"
)

// Common errors
var (
	// ErrInvalidStrategy means zero or more than one variant was populated,
	// or no participant ends up with a positive allocation.
	ErrInvalidStrategy = errors.New("invalid split strategy")

	// ErrStrategyMismatch means the supplied amounts or percentages do not
	// reconcile to the expected total. The caller should correct and resubmit.
	ErrStrategyMismatch = errors.New("split strategy does not reconcile to the item total")

	// ErrNegativeAllocation means the inputs would produce a negative share.
	ErrNegativeAllocation = errors.New("split produces a negative allocation")
)

// Spec is the wire-level split strategy. Exactly one field may be populated;
// anything else is rejected before any computation happens.
type Spec struct {
	Equal       []int64      `json:"splitEqually,omitempty"`
	Shares      []Share      `json:"splitByShares,omitempty"`
	Exact       []Exact      `json:"splitByExactAmounts,omitempty"`
	Percentages []Percentage `json:"splitByPercentages,omitempty"`
	Adjustments []Adjustment `json:"splitByAdjustments,omitempty"`
}

// Share assigns an integer weight to a participant.
type Share struct {
	ParticipantID int64 `json:"participantId"`
	Weight        int64 `json:"weight"`
}

// Exact assigns a fixed amount to a participant.
type Exact struct {
	ParticipantID int64           `json:"participantId"`
	Amount        decimal.Decimal `json:"amount"`
}

// Percentage assigns a percentage of the item total to a participant.
type Percentage struct {
	ParticipantID int64           `json:"participantId"`
	Percentage    decimal.Decimal `json:"percentage"`
}

// Adjustment is a signed delta on top of an equal base split.
type Adjustment struct {
	ParticipantID int64           `json:"participantId"`
	Delta         decimal.Decimal `json:"delta"`
}

// Portion is one participant's resolved slice of an item. The participant's
// fraction of the item total is Weight divided by the sum of all weights.
type Portion struct {
	ParticipantID int64
	Weight        decimal.Decimal
}

// strategy is implemented by each variant.
type strategy interface {
	// Type returns the variant identifier.
	Type() Type

	// Validate checks the variant's own invariants against the item total.
	Validate(itemTotal decimal.Decimal) error

	// portions converts the variant into resolved weights. Called only
	// after Validate succeeds.
	portions(itemTotal decimal.Decimal) []Portion
}

// Type returns which variant is populated, or ErrInvalidStrategy if the spec
// populates zero or multiple variants.
func (s *Spec) Type() (Type, error) {
	st, err := s.strategy()
	if err != nil {
		return "", err
	}
	return st.Type(), nil
}

func (s *Spec) strategy() (strategy, error) {
	var found []strategy
	if len(s.Equal) > 0 {
		found = append(found, equalSplit(s.Equal))
	}
	if len(s.Shares) > 0 {
		found = append(found, sharesSplit(s.Shares))
	}
	if len(s.Exact) > 0 {
		found = append(found, exactSplit(s.Exact))
	}
	if len(s.Percentages) > 0 {
		found = append(found, percentageSplit(s.Percentages))
	}
	if len(s.Adjustments) > 0 {
		found = append(found, adjustmentSplit(s.Adjustments))
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: no variant populated", ErrInvalidStrategy)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: %d variants populated, want exactly one", ErrInvalidStrategy, len(found))
	}
}

// Resolve validates the spec against the item total and returns the resolved
// portions, ordered by weight descending then participant ID ascending. The
// order is part of the contract: rounding residuals are always assigned to the
// first portion, so the same input always reconciles the same way.
//
// Participants with a zero weight are excluded from the result, not errored.
func Resolve(s *Spec, itemTotal decimal.Decimal) ([]Portion, error) {
	st, err := s.strategy()
	if err != nil {
		return nil, err
	}

	if err := st.Validate(itemTotal); err != nil {
		return nil, err
	}

	all := st.portions(itemTotal)
	portions := make([]Portion, 0, len(all))
	for _, p := range all {
		if p.Weight.IsNegative() {
			return nil, fmt.Errorf("%w: participant %d resolves to weight %s",
				ErrNegativeAllocation, p.ParticipantID, p.Weight)
		}
		if p.Weight.IsZero() {
			continue
		}
		portions = append(portions, p)
	}

	if len(portions) == 0 {
		return nil, fmt.Errorf("%w: no participant has a positive allocation", ErrInvalidStrategy)
	}

	sort.SliceStable(portions, func(i, j int) bool {
		if !portions[i].Weight.Equal(portions[j].Weight) {
			return portions[i].Weight.GreaterThan(portions[j].Weight)
		}
		return portions[i].ParticipantID < portions[j].ParticipantID
	})

	return portions, nil
}

// checkDistinct rejects duplicate participant entries within one variant.
func checkDistinct(ids []int64) error {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: participant %d listed more than once", ErrInvalidStrategy, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
