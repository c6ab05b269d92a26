// Package units converts physical lengths into PDF page coordinates.
//
// All geometry downstream of configuration parsing is expressed in points
// (1/72 inch), the unit of the PDF coordinate system. Millimetre values from
// flags and config files are converted exactly once, at that boundary.
package units

import (
	"sort"
	"strings"
)

// MMToPt is the number of points in one millimetre.
const MMToPt = 72.0 / 25.4

// FromMM converts millimetres to points.
func FromMM(mm float64) float64 { return mm * MMToPt }

// ToMM converts points to millimetres.
func ToMM(pt float64) float64 { return pt / MMToPt }

// Size is a page size in points.
type Size struct {
	Width, Height float64
}

// SizeMM returns a Size from millimetre dimensions.
func SizeMM(w, h float64) Size { return Size{Width: FromMM(w), Height: FromMM(h)} }

// papers holds the named page sizes accepted by --paper.
var papers = map[string]Size{
	"a3":     SizeMM(297, 420),
	"a4":     SizeMM(210, 297),
	"a5":     SizeMM(148, 210),
	"letter": {Width: 612, Height: 792},
	"legal":  {Width: 612, Height: 1008},
}

// DefaultPaper is the paper used when none is configured.
const DefaultPaper = "a4"

// Paper looks up a named page size (case-insensitive).
func Paper(name string) (Size, bool) {
	s, ok := papers[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// PaperNames returns the accepted paper names in sorted order.
func PaperNames() []string {
	names := make([]string, 0, len(papers))
	for n := range papers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
