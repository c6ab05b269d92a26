package cli

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/matzehuels/cardsheet/pkg/observability"
)

// spinnerHooks turns pipeline events into spinner messages and counts cache
// traffic for the summary line.
type spinnerHooks struct {
	observability.NoopSheetHooks
	observability.NoopCacheHooks

	spinner *Spinner
	pages   atomic.Int64
	hits    atomic.Int64
	misses  atomic.Int64
}

func newSpinnerHooks(s *Spinner) *spinnerHooks {
	return &spinnerHooks{spinner: s}
}

// install registers h for sheet and cache events and returns a function that
// restores the no-op hooks.
func (h *spinnerHooks) install() (restore func()) {
	observability.SetSheetHooks(h)
	observability.SetCacheHooks(h)
	return func() {
		observability.SetSheetHooks(observability.NoopSheetHooks{})
		observability.SetCacheHooks(observability.NoopCacheHooks{})
	}
}

func (h *spinnerHooks) OnPlanStart(_ context.Context, fronts, backs string) {
	h.spinner.Update(fmt.Sprintf("Checking %s and %s...", fronts, backs))
}

func (h *spinnerHooks) OnPlanComplete(_ context.Context, cards, pages int, _ time.Duration, err error) {
	if err == nil {
		h.pages.Store(int64(pages))
		h.spinner.Update(fmt.Sprintf("Laying out %d cards...", cards))
	}
}

func (h *spinnerHooks) OnPageStart(_ context.Context, page int, side string, cards int) {
	h.spinner.Update(fmt.Sprintf("Drawing page %d/%d (%s, %d cards)...", page, h.pages.Load(), side, cards))
}

func (h *spinnerHooks) OnWrite(_ context.Context, path string, _ int64, err error) {
	if err == nil {
		h.spinner.Update("Wrote " + path)
	}
}

func (h *spinnerHooks) OnCacheHit(context.Context, string)  { h.hits.Add(1) }
func (h *spinnerHooks) OnCacheMiss(context.Context, string) { h.misses.Add(1) }

// rasterSpinnerHooks reports compression progress.
type rasterSpinnerHooks struct {
	observability.NoopRasterHooks
	spinner *Spinner
}

func (h *rasterSpinnerHooks) install() (restore func()) {
	observability.SetRasterHooks(h)
	return func() { observability.SetRasterHooks(observability.NoopRasterHooks{}) }
}

func (h *rasterSpinnerHooks) OnRasterStart(_ context.Context, input string, pages int) {
	h.spinner.Update(fmt.Sprintf("Rasterising %s (%d pages)...", input, pages))
}

func (h *rasterSpinnerHooks) OnPageRasterized(_ context.Context, page, pages int, _ int) {
	h.spinner.Update(fmt.Sprintf("Rasterised page %d/%d...", page, pages))
}
