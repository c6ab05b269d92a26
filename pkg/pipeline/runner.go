package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cardsheet/pkg/cache"
	"github.com/matzehuels/cardsheet/pkg/cardimage"
	"github.com/matzehuels/cardsheet/pkg/compose"
	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/imageset"
	"github.com/matzehuels/cardsheet/pkg/layout"
	"github.com/matzehuels/cardsheet/pkg/observability"
	"github.com/matzehuels/cardsheet/pkg/raster"
	"github.com/matzehuels/cardsheet/pkg/sink"
)

// Runner executes sheet and compress runs.
//
// The Runner holds the image loader (and through it the payload cache) and
// the logger; it stores no per-run state, so one Runner can serve several
// runs in sequence.
type Runner struct {
	Loader *cardimage.Loader
	Logger *log.Logger
}

// NewRunner creates a runner.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Loader: cardimage.NewLoader(c, logger),
		Logger: logger,
	}
}

// Plan runs every check a sheet run can fail on without opening the output.
// Checks run in order: directories and image sets, pairing, layout fit,
// output path, image headers.
func (r *Runner) Plan(ctx context.Context, opts SheetOptions) (plan *Plan, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	hooks := observability.Sheet()
	hooks.OnPlanStart(ctx, opts.Fronts, opts.Backs)
	defer func() {
		var cards, pages int
		if plan != nil {
			cards, pages = len(plan.Pairs), plan.Pages
		}
		hooks.OnPlanComplete(ctx, cards, pages, time.Since(start), err)
	}()

	pairs, err := imageset.Resolve(opts.Fronts, opts.Backs, opts.Match)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("paired images", "pairs", len(pairs), "match", opts.Match)

	slots, err := layout.ComputeSlots(opts.Page, opts.Card, opts.Grid)
	if err != nil {
		return nil, err
	}

	if err := errors.ValidateOutputPath(opts.Output); err != nil {
		return nil, err
	}

	probed, err := r.probeAll(ctx, pairs)
	if err != nil {
		return nil, err
	}

	perPage := opts.Grid.PerPage()
	return &Plan{
		Pairs:   pairs,
		Slots:   slots,
		Batches: (len(pairs) + perPage - 1) / perPage,
		Pages:   compose.PageCount(len(pairs), perPage),
		Images:  probed,
	}, nil
}

// probeAll reads the header of every distinct image file.
func (r *Runner) probeAll(ctx context.Context, pairs []imageset.Pair) (int, error) {
	seen := make(map[string]bool, 2*len(pairs))
	for _, p := range pairs {
		for _, ref := range [...]imageset.ImageRef{p.Front, p.Back} {
			if seen[ref.Path] {
				continue
			}
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			if _, err := r.Loader.Probe(ref.Path); err != nil {
				return 0, err
			}
			seen[ref.Path] = true
		}
	}
	return len(seen), nil
}

// Sheet plans, renders and writes a duplex card sheet.
func (r *Runner) Sheet(ctx context.Context, opts SheetOptions) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()

	plan, err := r.Plan(ctx, opts)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("planned sheet",
		"cards", len(plan.Pairs),
		"pages", plan.Pages,
		"per_page", len(plan.Slots))

	canvas := sink.NewPDFCanvas(opts.Page, opts.Title)
	stats, err := compose.Render(ctx, canvas, r.Loader, plan.Pairs, plan.Slots, opts.Card, compose.Options{
		CutMarks:    opts.CutMarks,
		MarkLength:  opts.MarkLength,
		StrokeWidth: opts.StrokeWidth,
		Logger:      r.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	hooks := observability.Sheet()
	if err := sink.WritePDF(opts.Output, canvas.Output, opts.Optimize); err != nil {
		hooks.OnWrite(ctx, opts.Output, 0, err)
		return nil, fmt.Errorf("write %s: %w", opts.Output, err)
	}

	result := &Result{
		Output:   opts.Output,
		Cards:    stats.Cards,
		Pages:    stats.Pages,
		Batches:  stats.Batches,
		Images:   canvas.Images(),
		Duration: time.Since(start),
	}
	if fi, err := os.Stat(opts.Output); err == nil {
		result.Bytes = fi.Size()
	}
	hooks.OnWrite(ctx, opts.Output, result.Bytes, nil)

	r.Logger.Info("wrote sheet",
		"output", result.Output,
		"bytes", result.Bytes,
		"duration", result.Duration)
	return result, nil
}

// Compress rasterises the PDF at in into out.
func (r *Runner) Compress(ctx context.Context, in, out string, opts raster.Options) (*raster.Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	res, err := raster.Compress(ctx, in, out, opts)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("compressed pdf",
		"pages", res.Pages,
		"input_bytes", res.InputBytes,
		"output_bytes", res.OutputBytes,
		"duration", res.Duration)
	return res, nil
}
