package compose

import (
	"math"

	"github.com/matzehuels/cardsheet/pkg/layout"
)

// Fit scales an iw×ih image uniformly into target and centres it.
// Both image dimensions must be positive.
func Fit(iw, ih float64, target layout.Rect) layout.Rect {
	scale := math.Min(target.Width/iw, target.Height/ih)
	w, h := iw*scale, ih*scale
	return layout.Rect{
		X:      target.X + (target.Width-w)/2,
		Y:      target.Y + (target.Height-h)/2,
		Width:  w,
		Height: h,
	}
}

// Segment is a straight line in page coordinates.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// CutMarks returns a crosshair at each corner of each slot: one horizontal
// and one vertical segment reaching length past the corner in both
// directions. length is the arm, so each segment spans 2*length. Slots
// yield 8 segments each, corners in the order lower-left, lower-right,
// upper-left, upper-right.
func CutMarks(slots []layout.Slot, card layout.Card, length float64) []Segment {
	segs := make([]Segment, 0, len(slots)*8)
	for _, s := range slots {
		corners := [4][2]float64{
			{s.X, s.Y},
			{s.X + card.Width, s.Y},
			{s.X, s.Y + card.Height},
			{s.X + card.Width, s.Y + card.Height},
		}
		for _, c := range corners {
			cx, cy := c[0], c[1]
			segs = append(segs,
				Segment{cx - length, cy, cx + length, cy},
				Segment{cx, cy - length, cx, cy + length},
			)
		}
	}
	return segs
}
