package imageset

import (
	"fmt"
	"strings"

	"github.com/matzehuels/cardsheet/pkg/errors"
)

// MatchMode selects how fronts are paired with backs.
type MatchMode int

const (
	// ByName pairs each front with the back of identical filename stem.
	ByName MatchMode = iota
	// ByOrder pairs fronts and backs positionally after sorting.
	ByOrder
)

// String returns the CLI spelling of the mode.
func (m MatchMode) String() string {
	switch m {
	case ByName:
		return "by-name"
	case ByOrder:
		return "by-order"
	default:
		return fmt.Sprintf("MatchMode(%d)", int(m))
	}
}

// ParseMatchMode parses "by-name" or "by-order" (underscores accepted,
// case-insensitive).
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-") {
	case "by-name", "name":
		return ByName, nil
	case "by-order", "order":
		return ByOrder, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown match mode %q (want by-name or by-order)", s)
}

// MissingBacksError lists every front that has no same-stem back.
type MissingBacksError struct {
	Fronts []string
}

func (e *MissingBacksError) Error() string {
	return strings.Join(e.Fronts, ", ")
}

// MatchPairs pairs fronts with backs according to mode.
//
// In ByName mode the result follows the order of fronts. All fronts without
// a back are collected before failing, so the error names every one of them.
// When several backs share a stem the first in sorted order wins. In ByOrder
// mode the sequences must have equal length; names are not compared.
func MatchPairs(fronts, backs []ImageRef, mode MatchMode) ([]Pair, error) {
	switch mode {
	case ByName:
		return matchByName(fronts, backs)
	case ByOrder:
		return matchByOrder(fronts, backs)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown match mode %v", mode)
	}
}

func matchByName(fronts, backs []ImageRef) ([]Pair, error) {
	byStem := make(map[string]ImageRef, len(backs))
	for _, b := range backs {
		if _, dup := byStem[b.Stem]; !dup {
			byStem[b.Stem] = b
		}
	}

	pairs := make([]Pair, 0, len(fronts))
	var missing []string
	for _, f := range fronts {
		b, ok := byStem[f.Stem]
		if !ok {
			missing = append(missing, f.Name)
			continue
		}
		pairs = append(pairs, Pair{Front: f, Back: b})
	}

	if len(missing) > 0 {
		return nil, errors.Wrap(errors.ErrCodeMissingBacks, &MissingBacksError{Fronts: missing},
			"no same-name back image for %d front file(s)", len(missing))
	}
	return pairs, nil
}

func matchByOrder(fronts, backs []ImageRef) ([]Pair, error) {
	if len(fronts) != len(backs) {
		return nil, errors.New(errors.ErrCodeCountMismatch,
			"front/back counts differ: %d fronts vs %d backs", len(fronts), len(backs))
	}
	pairs := make([]Pair, len(fronts))
	for i := range fronts {
		pairs[i] = Pair{Front: fronts[i], Back: backs[i]}
	}
	return pairs, nil
}
