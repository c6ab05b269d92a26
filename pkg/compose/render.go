package compose

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cardsheet/pkg/cardimage"
	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/imageset"
	"github.com/matzehuels/cardsheet/pkg/layout"
	"github.com/matzehuels/cardsheet/pkg/observability"
)

// Canvas is a page-oriented drawing surface with a bottom-left origin.
type Canvas interface {
	// AddPage starts a new page. Earlier pages are final.
	AddPage() error
	DrawImage(img *cardimage.Image, r layout.Rect) error
	SetLineWidth(w float64)
	Line(x1, y1, x2, y2 float64)
}

// ImageSource loads images by path.
type ImageSource interface {
	Load(ctx context.Context, path string) (*cardimage.Image, error)
}

// Options controls optional page decoration.
type Options struct {
	CutMarks    bool
	MarkLength  float64 // arm length (half the mark) of a cut mark, points
	StrokeWidth float64 // cut mark line width, points
	Logger      *log.Logger
}

// Stats summarises a Render call.
type Stats struct {
	Cards   int
	Pages   int
	Batches int
}

// Render draws pairs onto canvas, one front page and one back page per batch
// of len(slots) pairs. The context is checked before each page; on
// cancellation or error the canvas holds a partial document that the caller
// must discard.
func Render(ctx context.Context, canvas Canvas, src ImageSource, pairs []imageset.Pair, slots []layout.Slot, card layout.Card, opts Options) (Stats, error) {
	var stats Stats
	if len(slots) == 0 {
		return stats, errors.New(errors.ErrCodeInvalidInput, "no slots to place cards into")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	hooks := observability.Sheet()

	for _, batch := range Batches(pairs, len(slots)) {
		for _, side := range [...]Side{Front, Back} {
			if err := ctx.Err(); err != nil {
				return stats, err
			}

			page := stats.Pages + 1
			start := time.Now()
			hooks.OnPageStart(ctx, page, side.String(), len(batch.Pairs))

			err := drawPage(ctx, canvas, src, batch, side, slots, card, opts)
			hooks.OnPageComplete(ctx, page, time.Since(start), err)
			if err != nil {
				return stats, fmt.Errorf("page %d (%s): %w", page, side, err)
			}

			logger.Debug("drew page", "page", page, "side", side, "batch", batch.Index+1, "cards", len(batch.Pairs))
			stats.Pages++
		}
		stats.Batches++
		stats.Cards += len(batch.Pairs)
	}
	return stats, nil
}

func drawPage(ctx context.Context, canvas Canvas, src ImageSource, batch Batch, side Side, slots []layout.Slot, card layout.Card, opts Options) error {
	if err := canvas.AddPage(); err != nil {
		return err
	}

	for i := range batch.Pairs {
		ref := batch.Image(i, side)
		img, err := src.Load(ctx, ref.Path)
		if err != nil {
			return err
		}
		r := Fit(float64(img.Width), float64(img.Height), layout.SlotRect(slots[i], card))
		if err := canvas.DrawImage(img, r); err != nil {
			return fmt.Errorf("draw %s: %w", ref.Name, err)
		}
	}

	if opts.CutMarks {
		canvas.SetLineWidth(opts.StrokeWidth)
		for _, s := range CutMarks(slots[:len(batch.Pairs)], card, opts.MarkLength) {
			canvas.Line(s.X1, s.Y1, s.X2, s.Y2)
		}
	}
	return nil
}
