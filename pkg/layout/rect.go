package layout

import "math"

// Rect is an axis-aligned rectangle with its origin at the lower-left corner.
// All coordinates are in points.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() float64 { return r.X }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y + r.Height }

// CenterX returns the horizontal center point of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center point of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Overlaps reports whether r and o share interior area.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left() < o.Right()-Tolerance && o.Left() < r.Right()-Tolerance &&
		r.Bottom() < o.Top()-Tolerance && o.Bottom() < r.Top()-Tolerance
}

// Contains reports whether o lies entirely inside r, within Tolerance.
func (r Rect) Contains(o Rect) bool {
	return o.Left() >= r.Left()-Tolerance && o.Right() <= r.Right()+Tolerance &&
		o.Bottom() >= r.Bottom()-Tolerance && o.Top() <= r.Top()+Tolerance
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	left := math.Min(r.Left(), o.Left())
	bottom := math.Min(r.Bottom(), o.Bottom())
	right := math.Max(r.Right(), o.Right())
	top := math.Max(r.Top(), o.Top())
	return Rect{X: left, Y: bottom, Width: right - left, Height: top - bottom}
}

// FlipY converts r from a bottom-left origin to a top-left origin on a page
// of the given height (or back; the transform is its own inverse). The
// returned rectangle's Y is the distance from the top of the page to the
// rectangle's top edge.
func FlipY(r Rect, pageHeight float64) Rect {
	return Rect{X: r.X, Y: pageHeight - r.Y - r.Height, Width: r.Width, Height: r.Height}
}
