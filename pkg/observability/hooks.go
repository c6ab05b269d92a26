// Package observability provides hooks for progress reporting and metrics.
//
// The sheet and compress pipelines emit events through process-wide hook
// registries instead of depending on a UI or metrics backend. The CLI
// registers hooks that drive its spinner and verbose log; tests register
// recorders; library users get no-ops by default.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSheetHooks(&progressHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Sheet().OnPageStart(ctx, page, compose.Front, len(batch))
//	// ... draw page ...
//	observability.Sheet().OnPageComplete(ctx, page, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Sheet Hooks
// =============================================================================

// SheetHooks receives events from the card sheet pipeline.
type SheetHooks interface {
	// Pre-pass events
	OnPlanStart(ctx context.Context, frontsDir, backsDir string)
	OnPlanComplete(ctx context.Context, cards, pages int, duration time.Duration, err error)

	// OnPageStart is called before page (1-based) is drawn. side is
	// "front" or "back".
	OnPageStart(ctx context.Context, page int, side string, cards int)
	OnPageComplete(ctx context.Context, page int, duration time.Duration, err error)

	// OnWrite is called once the finished document has been written.
	OnWrite(ctx context.Context, path string, size int64, err error)
}

// =============================================================================
// Raster Hooks
// =============================================================================

// RasterHooks receives events from the PDF compression pipeline.
type RasterHooks interface {
	OnRasterStart(ctx context.Context, input string, pages int)
	OnPageRasterized(ctx context.Context, page, pages int, jpegSize int)
	OnRasterComplete(ctx context.Context, input string, inBytes, outBytes int64, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSheetHooks is a no-op implementation of SheetHooks.
type NoopSheetHooks struct{}

func (NoopSheetHooks) OnPlanStart(context.Context, string, string)                    {}
func (NoopSheetHooks) OnPlanComplete(context.Context, int, int, time.Duration, error) {}
func (NoopSheetHooks) OnPageStart(context.Context, int, string, int)                  {}
func (NoopSheetHooks) OnPageComplete(context.Context, int, time.Duration, error)      {}
func (NoopSheetHooks) OnWrite(context.Context, string, int64, error)                  {}

// NoopRasterHooks is a no-op implementation of RasterHooks.
type NoopRasterHooks struct{}

func (NoopRasterHooks) OnRasterStart(context.Context, string, int)      {}
func (NoopRasterHooks) OnPageRasterized(context.Context, int, int, int) {}
func (NoopRasterHooks) OnRasterComplete(context.Context, string, int64, int64, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	sheetHooks  SheetHooks  = NoopSheetHooks{}
	rasterHooks RasterHooks = NoopRasterHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetSheetHooks registers custom sheet hooks. Nil is ignored.
func SetSheetHooks(h SheetHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sheetHooks = h
	}
}

// SetRasterHooks registers custom raster hooks. Nil is ignored.
func SetRasterHooks(h RasterHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		rasterHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Sheet returns the registered sheet hooks.
func Sheet() SheetHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sheetHooks
}

// Raster returns the registered raster hooks.
func Raster() RasterHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return rasterHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	sheetHooks = NoopSheetHooks{}
	rasterHooks = NoopRasterHooks{}
	cacheHooks = NoopCacheHooks{}
}
