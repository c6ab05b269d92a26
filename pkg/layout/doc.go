// Package layout computes where cards go on a printed sheet.
//
// Given a page size, a card size and a [Grid] (columns, rows, four margins
// and two gaps), [ComputeSlots] returns the lower-left origin of every card
// position on the page. The block of cards is centred inside the area left
// over after the margins, on both axes.
//
// # Coordinates
//
// All values are PDF points. The coordinate system has its origin at the
// bottom-left corner of the page with y growing upwards, matching the PDF
// page model. Sinks whose drawing API is top-left based convert with
// [FlipY] at the last moment.
//
// # Slot order
//
// Slots are emitted in row-major order starting with the top row:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// The compositor relies on this: the i-th pair of a batch is always drawn
// into slot i, on the front page and on the back page alike.
//
// # Feasibility
//
// If the cards and gaps need more room than the margins leave, ComputeSlots
// fails with a LAYOUT_OVERFLOW error whose cause is an [*OverflowError]
// carrying the needed and usable extents. A tolerance of [Tolerance] points
// absorbs floating-point noise, so a grid that fits exactly is accepted.
//
// # Example
//
//	page := layout.Page{Width: units.FromMM(210), Height: units.FromMM(297)}
//	card := layout.Card{Width: units.FromMM(63), Height: units.FromMM(88)}
//	grid := layout.Grid{Columns: 3, Rows: 3, MarginLeft: units.FromMM(5), ...}
//	slots, err := layout.ComputeSlots(page, card, grid)
package layout
