// Package config holds the settings of a sheet run.
//
// All lengths are millimetres. They are converted to PDF points once, in
// [Config.Geometry]; nothing downstream sees millimetres again.
//
// Settings come from three layers, later ones winning: [Default], an
// optional TOML file ([LoadFile]) and command-line flags. A file only needs
// the keys it changes:
//
//	fronts = "art/fronts"
//	backs  = "art/backs"
//	match  = "by-order"
//
//	[card]
//	width  = 57
//	height = 87
//
//	[margins]
//	left  = 8
//	right = 8
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/imageset"
	"github.com/matzehuels/cardsheet/pkg/layout"
	"github.com/matzehuels/cardsheet/pkg/units"
)

// DefaultOutput is the output file name used when none is given.
const DefaultOutput = "cards_a4_duplex.pdf"

// Config is the full configuration of a sheet run.
type Config struct {
	Fronts   string       `toml:"fronts"`
	Backs    string       `toml:"backs"`
	Output   string       `toml:"output"`
	Match    string       `toml:"match"`
	Paper    string       `toml:"paper"`
	Optimize bool         `toml:"optimize"`
	Card     CardConfig   `toml:"card"`
	Grid     GridConfig   `toml:"grid"`
	Margins  MarginConfig `toml:"margins"`
	Gap      GapConfig    `toml:"gap"`
	CutMarks CutMarks     `toml:"cut_marks"`
}

// CardConfig is the card size in mm.
type CardConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// GridConfig is the number of cards per page.
type GridConfig struct {
	Columns int `toml:"columns"`
	Rows    int `toml:"rows"`
}

// MarginConfig is the page margin on each side in mm.
type MarginConfig struct {
	Left   float64 `toml:"left"`
	Right  float64 `toml:"right"`
	Top    float64 `toml:"top"`
	Bottom float64 `toml:"bottom"`
}

// GapConfig is the spacing between neighbouring cards in mm.
type GapConfig struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

// CutMarks configures the corner crosshairs.
type CutMarks struct {
	Enabled bool    `toml:"enabled"`
	Length  float64 `toml:"length"` // arm length in mm (half the mark)
	Stroke  float64 `toml:"stroke"` // line width in points
}

// Default returns poker cards (63×88 mm) in a 3×3 grid on A4 with 3 mm
// gaps. Side margins are 5 mm: three cards and two gaps take 195 mm of the
// 210 mm page width, so 10 mm side margins would not fit.
func Default() *Config {
	return &Config{
		Output: DefaultOutput,
		Match:  imageset.ByName.String(),
		Paper:  units.DefaultPaper,
		Card:   CardConfig{Width: 63, Height: 88},
		Grid:   GridConfig{Columns: 3, Rows: 3},
		Margins: MarginConfig{
			Left: 5, Right: 5,
			Top: 10, Bottom: 10,
		},
		Gap:      GapConfig{X: 3, Y: 3},
		CutMarks: CutMarks{Length: 3, Stroke: 0.3},
	}
}

// LoadFile reads a TOML file on top of the defaults. Relative directory and
// output paths in the file are taken relative to the file's directory.
// Unknown keys are an error, so typos do not go unnoticed.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.Merge(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge decodes the TOML file at path over c. Keys absent from the file keep
// their current values.
func (c *Config) Merge(path string) error {
	if _, err := os.Stat(path); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cannot read config file %s", path)
	}

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cannot parse config file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	base := filepath.Dir(path)
	if md.IsDefined("fronts") {
		c.Fronts = relativeTo(base, c.Fronts)
	}
	if md.IsDefined("backs") {
		c.Backs = relativeTo(base, c.Backs)
	}
	if md.IsDefined("output") {
		c.Output = relativeTo(base, c.Output)
	}
	return nil
}

func relativeTo(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// MatchMode parses the configured match mode.
func (c *Config) MatchMode() (imageset.MatchMode, error) {
	m, err := imageset.ParseMatchMode(c.Match)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid match mode")
	}
	return m, nil
}

// Validate checks value ranges. It does not check whether the layout fits;
// that is the layout engine's job and has its own error.
func (c *Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if _, ok := units.Paper(c.Paper); !ok {
		add("unknown paper %q (want one of %s)", c.Paper, strings.Join(units.PaperNames(), ", "))
	}
	if _, err := imageset.ParseMatchMode(c.Match); err != nil {
		add("unknown match mode %q (want by-name or by-order)", c.Match)
	}
	if c.Card.Width <= 0 || c.Card.Height <= 0 {
		add("card size must be positive, got %g×%g mm", c.Card.Width, c.Card.Height)
	}
	if c.Grid.Columns < 1 || c.Grid.Rows < 1 {
		add("grid must be at least 1×1, got %d×%d", c.Grid.Columns, c.Grid.Rows)
	}
	for _, m := range []struct {
		name string
		v    float64
	}{
		{"margin left", c.Margins.Left},
		{"margin right", c.Margins.Right},
		{"margin top", c.Margins.Top},
		{"margin bottom", c.Margins.Bottom},
		{"gap x", c.Gap.X},
		{"gap y", c.Gap.Y},
	} {
		if m.v < 0 {
			add("%s must not be negative, got %g mm", m.name, m.v)
		}
	}
	if c.CutMarks.Enabled {
		if c.CutMarks.Length <= 0 {
			add("cut mark length must be positive, got %g mm", c.CutMarks.Length)
		}
		if c.CutMarks.Stroke <= 0 {
			add("cut mark stroke must be positive, got %g pt", c.CutMarks.Stroke)
		}
	}

	if len(problems) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s", strings.Join(problems, "; "))
	}
	return nil
}

// Geometry converts the configuration to layout types in points.
func (c *Config) Geometry() (layout.Page, layout.Card, layout.Grid, error) {
	paper, ok := units.Paper(c.Paper)
	if !ok {
		return layout.Page{}, layout.Card{}, layout.Grid{}, errors.New(errors.ErrCodeInvalidConfig, "unknown paper %q", c.Paper)
	}

	page := layout.Page{Width: paper.Width, Height: paper.Height}
	card := layout.Card{
		Width:  units.FromMM(c.Card.Width),
		Height: units.FromMM(c.Card.Height),
	}
	grid := layout.Grid{
		Columns:      c.Grid.Columns,
		Rows:         c.Grid.Rows,
		MarginLeft:   units.FromMM(c.Margins.Left),
		MarginRight:  units.FromMM(c.Margins.Right),
		MarginTop:    units.FromMM(c.Margins.Top),
		MarginBottom: units.FromMM(c.Margins.Bottom),
		GapX:         units.FromMM(c.Gap.X),
		GapY:         units.FromMM(c.Gap.Y),
	}
	return page, card, grid, nil
}

// MarkLength returns the cut mark arm length (half the mark) in points.
func (c *Config) MarkLength() float64 { return units.FromMM(c.CutMarks.Length) }
