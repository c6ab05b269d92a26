// Package pipeline runs the card sheet and PDF compression workflows.
//
// A sheet run has two phases. [Runner.Plan] is the validation pre-pass: it
// resolves and pairs the images, computes the slot grid and probes every
// image header. It opens nothing for writing, so any failure (missing
// directory, empty set, unmatched names, count mismatch, layout overflow,
// undecodable image) leaves the file system untouched. [Runner.Sheet] then
// renders the plan into an in-memory PDF and writes it atomically.
//
// # Usage
//
//	cfg := config.Default()
//	cfg.Fronts, cfg.Backs = "fronts", "backs"
//	opts, err := pipeline.FromConfig(cfg)
//	if err != nil {
//	    return err
//	}
//	result, err := pipeline.NewRunner(nil, logger).Sheet(ctx, opts)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%s: %d cards on %d pages\n", result.Output, result.Cards, result.Pages)
package pipeline

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cardsheet/pkg/config"
	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/imageset"
	"github.com/matzehuels/cardsheet/pkg/layout"
)

// =============================================================================
// Options
// =============================================================================

// SheetOptions is the resolved configuration of a sheet run. Geometry is in
// points.
type SheetOptions struct {
	Fronts string
	Backs  string
	Match  imageset.MatchMode

	Page layout.Page
	Card layout.Card
	Grid layout.Grid

	CutMarks    bool
	MarkLength  float64
	StrokeWidth float64

	Output   string
	Title    string // document title; defaults to the output file name
	Optimize bool

	// Runtime options
	Logger *log.Logger
}

// FromConfig validates cfg and converts it to SheetOptions.
func FromConfig(cfg *config.Config) (SheetOptions, error) {
	if err := cfg.Validate(); err != nil {
		return SheetOptions{}, err
	}
	mode, err := cfg.MatchMode()
	if err != nil {
		return SheetOptions{}, err
	}
	page, card, grid, err := cfg.Geometry()
	if err != nil {
		return SheetOptions{}, err
	}

	return SheetOptions{
		Fronts:      cfg.Fronts,
		Backs:       cfg.Backs,
		Match:       mode,
		Page:        page,
		Card:        card,
		Grid:        grid,
		CutMarks:    cfg.CutMarks.Enabled,
		MarkLength:  cfg.MarkLength(),
		StrokeWidth: cfg.CutMarks.Stroke,
		Output:      cfg.Output,
		Optimize:    cfg.Optimize,
	}, nil
}

// ValidateAndSetDefaults checks the fields a run cannot do without and fills
// in the title and logger.
func (o *SheetOptions) ValidateAndSetDefaults() error {
	if o.Fronts == "" {
		return errors.New(errors.ErrCodeInvalidInput, "fronts directory is required")
	}
	if o.Backs == "" {
		return errors.New(errors.ErrCodeInvalidInput, "backs directory is required")
	}
	if o.Output == "" {
		o.Output = config.DefaultOutput
	}
	if o.CutMarks && (o.MarkLength <= 0 || o.StrokeWidth <= 0) {
		return errors.New(errors.ErrCodeInvalidInput, "cut marks need a positive length and stroke width")
	}
	if o.Title == "" {
		o.Title = strings.TrimSuffix(filepath.Base(o.Output), filepath.Ext(o.Output))
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// =============================================================================
// Results
// =============================================================================

// Plan is the outcome of the validation pre-pass.
type Plan struct {
	Pairs   []imageset.Pair
	Slots   []layout.Slot
	Batches int
	Pages   int
	Images  int // distinct image files probed
}

// Result describes a finished sheet run.
type Result struct {
	Output   string
	Cards    int
	Pages    int
	Batches  int
	Images   int // distinct images embedded in the PDF
	Bytes    int64
	Duration time.Duration
}
