package layout

import (
	"fmt"

	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/units"
)

// OverflowError reports a grid that needs more room than the page offers.
// Extents are in points; Error formats them in millimetres.
type OverflowError struct {
	Needed Extent
	Usable Extent
}

// Error implements the error interface.
func (e *OverflowError) Error() string {
	return fmt.Sprintf("needed %.1fmm × %.1fmm, usable %.1fmm × %.1fmm; reduce margins/gaps or card size, or change the grid",
		units.ToMM(e.Needed.Width), units.ToMM(e.Needed.Height),
		units.ToMM(e.Usable.Width), units.ToMM(e.Usable.Height))
}

// Fits reports whether the grid of cards fits inside the usable area of the
// page, allowing Tolerance points of floating-point slack.
func Fits(page Page, card Card, grid Grid) bool {
	need, usable := Needed(card, grid), Usable(page, grid)
	return need.Width <= usable.Width+Tolerance && need.Height <= usable.Height+Tolerance
}

// ComputeSlots returns the lower-left origin of every card position on the
// page: exactly grid.Columns×grid.Rows slots in row-major order, top row
// first. The block of slots is centred within the usable area.
//
// It is a pure function of its arguments; identical inputs produce a
// bit-identical result.
func ComputeSlots(page Page, card Card, grid Grid) ([]Slot, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if err := card.Validate(); err != nil {
		return nil, err
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	usable := Usable(page, grid)
	need := Needed(card, grid)
	if !Fits(page, card, grid) {
		return nil, errors.Wrap(errors.ErrCodeLayoutOverflow,
			&OverflowError{Needed: need, Usable: usable},
			"%d×%d grid of %.1fmm × %.1fmm cards does not fit the page",
			grid.Columns, grid.Rows, units.ToMM(card.Width), units.ToMM(card.Height))
	}

	startX := grid.MarginLeft + (usable.Width-need.Width)/2
	// Top edge of the slot block; rows are laid out downwards from here.
	startYTop := page.Height - grid.MarginTop - (usable.Height-need.Height)/2

	slots := make([]Slot, 0, grid.PerPage())
	for r := 0; r < grid.Rows; r++ {
		rowTop := startYTop - float64(r)*(card.Height+grid.GapY)
		for c := 0; c < grid.Columns; c++ {
			slots = append(slots, Slot{
				X: startX + float64(c)*(card.Width+grid.GapX),
				Y: rowTop - card.Height,
			})
		}
	}
	return slots, nil
}
