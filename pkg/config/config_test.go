package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/imageset"
	"github.com/matzehuels/cardsheet/pkg/layout"
	"github.com/matzehuels/cardsheet/pkg/units"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cards.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValidAndFits(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}

	page, card, grid, err := cfg.Geometry()
	if err != nil {
		t.Fatalf("Geometry() error: %v", err)
	}
	slots, err := layout.ComputeSlots(page, card, grid)
	if err != nil {
		t.Fatalf("default geometry does not fit: %v", err)
	}
	if len(slots) != 9 {
		t.Errorf("default grid has %d slots, want 9", len(slots))
	}
}

func TestTenMillimetreSideMarginsOverflow(t *testing.T) {
	cfg := Default()
	cfg.Margins.Left, cfg.Margins.Right = 10, 10

	page, card, grid, err := cfg.Geometry()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := layout.ComputeSlots(page, card, grid); !errors.Is(err, errors.ErrCodeLayoutOverflow) {
		t.Errorf("ComputeSlots() error = %v, want LAYOUT_OVERFLOW", err)
	}
}

func TestGeometryConvertsMillimetres(t *testing.T) {
	cfg := Default()
	cfg.Paper = "letter"
	page, card, grid, err := cfg.Geometry()
	if err != nil {
		t.Fatal(err)
	}

	if page != (layout.Page{Width: 612, Height: 792}) {
		t.Errorf("page = %+v, want letter", page)
	}
	want := layout.Card{Width: units.FromMM(63), Height: units.FromMM(88)}
	if card != want {
		t.Errorf("card = %+v, want %+v", card, want)
	}
	if grid.MarginTop != units.FromMM(10) || grid.GapX != units.FromMM(3) || grid.Columns != 3 {
		t.Errorf("grid = %+v", grid)
	}
}

func TestLoadFileOverridesOnlyGivenKeys(t *testing.T) {
	path := writeConfig(t, `
fronts = "art/fronts"
backs = "/abs/backs"
match = "by-order"

[card]
width = 57

[cut_marks]
enabled = true
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	want := Default()
	want.Fronts = filepath.Join(filepath.Dir(path), "art", "fronts")
	want.Backs = "/abs/backs"
	want.Match = "by-order"
	want.Card.Width = 57
	want.CutMarks.Enabled = true

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	mode, err := cfg.MatchMode()
	if err != nil || mode != imageset.ByOrder {
		t.Errorf("MatchMode() = %v, %v; want by-order", mode, err)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantMsg string
	}{
		{"missing", filepath.Join(t.TempDir(), "none.toml"), "cannot read"},
		{"syntax", writeConfig(t, "card = [unclosed"), "cannot parse"},
		{"unknown key", writeConfig(t, "[card]\nwidht = 60\n"), "card.widht"},
		{"wrong type", writeConfig(t, "[grid]\ncolumns = \"three\"\n"), "cannot parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(tt.path)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("LoadFile() error = %v, want INVALID_CONFIG", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"paper", func(c *Config) { c.Paper = "b7" }, "unknown paper"},
		{"match", func(c *Config) { c.Match = "by-color" }, "unknown match mode"},
		{"card", func(c *Config) { c.Card.Height = 0 }, "card size"},
		{"grid", func(c *Config) { c.Grid.Rows = 0 }, "grid"},
		{"margin", func(c *Config) { c.Margins.Bottom = -1 }, "margin bottom"},
		{"gap", func(c *Config) { c.Gap.Y = -0.5 }, "gap y"},
		{"mark length", func(c *Config) { c.CutMarks.Enabled = true; c.CutMarks.Length = 0 }, "cut mark length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("Validate() error = %v, want INVALID_CONFIG", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Paper = "nope"
	cfg.Grid.Columns = 0
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "paper") || !strings.Contains(err.Error(), "grid") {
		t.Errorf("Validate() = %v, want both problems", err)
	}
}

func TestCutMarksIgnoredWhenDisabled(t *testing.T) {
	cfg := Default()
	cfg.CutMarks.Length = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil while cut marks are off", err)
	}
	if got := Default().MarkLength(); got != units.FromMM(3) {
		t.Errorf("MarkLength() = %v, want 3mm in points", got)
	}
}

func TestExampleConfigsFit(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "*.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example configs")
	}

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			cfg, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile() error: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate() error: %v", err)
			}
			page, card, grid, err := cfg.Geometry()
			if err != nil {
				t.Fatal(err)
			}
			if _, err := layout.ComputeSlots(page, card, grid); err != nil {
				t.Errorf("example layout does not fit: %v", err)
			}
		})
	}
}
