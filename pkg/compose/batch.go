package compose

import "github.com/matzehuels/cardsheet/pkg/imageset"

// Side is one face of a printed sheet.
type Side int

const (
	Front Side = iota
	Back
)

func (s Side) String() string {
	if s == Back {
		return "back"
	}
	return "front"
}

// Batch is one page's worth of pairs. Pairs[i] is drawn into slot i.
type Batch struct {
	Index int // 0-based batch number
	Start int // index of Pairs[0] in the full pair list
	Pairs []imageset.Pair
}

// Image returns the reference drawn on side for pair i.
func (b Batch) Image(i int, side Side) imageset.ImageRef {
	if side == Back {
		return b.Pairs[i].Back
	}
	return b.Pairs[i].Front
}

// Batches splits pairs into consecutive runs of at most perPage. Only the
// last batch may be shorter. The batches share the backing array of pairs.
func Batches(pairs []imageset.Pair, perPage int) []Batch {
	if perPage < 1 || len(pairs) == 0 {
		return nil
	}
	batches := make([]Batch, 0, (len(pairs)+perPage-1)/perPage)
	for start := 0; start < len(pairs); start += perPage {
		end := min(start+perPage, len(pairs))
		batches = append(batches, Batch{
			Index: len(batches),
			Start: start,
			Pairs: pairs[start:end],
		})
	}
	return batches
}

// PageCount is the number of pages Render emits for n pairs:
// 2·ceil(n/perPage).
func PageCount(n, perPage int) int {
	if perPage < 1 || n <= 0 {
		return 0
	}
	return 2 * ((n + perPage - 1) / perPage)
}
