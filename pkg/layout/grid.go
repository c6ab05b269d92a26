package layout

import (
	"github.com/matzehuels/cardsheet/pkg/errors"
)

// Tolerance is the absolute slack, in points, allowed when checking whether
// a grid fits and whether slots stay inside the usable area.
const Tolerance = 1e-6

// Page is the size of the output page.
type Page struct {
	Width, Height float64
}

// Card is the size of a single card slot.
type Card struct {
	Width, Height float64
}

// Grid describes how many cards go on a page and how much room to leave
// around and between them.
type Grid struct {
	Columns, Rows int

	MarginLeft, MarginRight float64
	MarginTop, MarginBottom float64
	GapX, GapY              float64
}

// Slot is the lower-left origin of one card position on the page.
type Slot struct {
	X, Y float64
}

// Extent is a width/height pair, used for needed and usable areas.
type Extent struct {
	Width, Height float64
}

// PerPage returns the number of slots on one page.
func (g Grid) PerPage() int { return g.Columns * g.Rows }

// Validate rejects grids that cannot describe a layout at all.
// Whether a valid grid fits a given page is decided by ComputeSlots.
func (g Grid) Validate() error {
	if g.Columns < 1 || g.Rows < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "grid must have at least one column and one row (got %d×%d)", g.Columns, g.Rows)
	}
	for _, m := range []struct {
		name string
		v    float64
	}{
		{"left margin", g.MarginLeft},
		{"right margin", g.MarginRight},
		{"top margin", g.MarginTop},
		{"bottom margin", g.MarginBottom},
		{"horizontal gap", g.GapX},
		{"vertical gap", g.GapY},
	} {
		if m.v < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "%s cannot be negative", m.name)
		}
	}
	return nil
}

// Validate rejects cards with a non-positive dimension.
func (c Card) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "card size must be positive")
	}
	return nil
}

// Validate rejects pages with a non-positive dimension.
func (p Page) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "page size must be positive")
	}
	return nil
}

// Usable returns the area of the page inside the margins.
func Usable(page Page, grid Grid) Extent {
	return Extent{
		Width:  page.Width - grid.MarginLeft - grid.MarginRight,
		Height: page.Height - grid.MarginTop - grid.MarginBottom,
	}
}

// UsableRect returns the usable area as a rectangle in page coordinates.
func UsableRect(page Page, grid Grid) Rect {
	u := Usable(page, grid)
	return Rect{X: grid.MarginLeft, Y: grid.MarginBottom, Width: u.Width, Height: u.Height}
}

// Needed returns the area taken by the cards of one page and the gaps
// between them.
func Needed(card Card, grid Grid) Extent {
	return Extent{
		Width:  float64(grid.Columns)*card.Width + float64(grid.Columns-1)*grid.GapX,
		Height: float64(grid.Rows)*card.Height + float64(grid.Rows-1)*grid.GapY,
	}
}

// SlotRect returns the rectangle a card occupies when placed at s.
func SlotRect(s Slot, card Card) Rect {
	return Rect{X: s.X, Y: s.Y, Width: card.Width, Height: card.Height}
}

// Bounds returns the bounding box of all slots. It returns the zero Rect
// for an empty slice.
func Bounds(slots []Slot, card Card) Rect {
	if len(slots) == 0 {
		return Rect{}
	}
	b := SlotRect(slots[0], card)
	for _, s := range slots[1:] {
		b = b.Union(SlotRect(s, card))
	}
	return b
}
