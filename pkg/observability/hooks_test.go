package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	s := NoopSheetHooks{}
	s.OnPlanStart(ctx, "fronts", "backs")
	s.OnPlanComplete(ctx, 10, 4, time.Second, nil)
	s.OnPageStart(ctx, 1, "front", 9)
	s.OnPageComplete(ctx, 1, time.Millisecond, nil)
	s.OnWrite(ctx, "out.pdf", 1024, nil)

	r := NoopRasterHooks{}
	r.OnRasterStart(ctx, "in.pdf", 3)
	r.OnPageRasterized(ctx, 1, 3, 2048)
	r.OnRasterComplete(ctx, "in.pdf", 4096, 2048, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "image")
	c.OnCacheMiss(ctx, "image")
	c.OnCacheSet(ctx, "image", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Sheet().(NoopSheetHooks); !ok {
		t.Error("Sheet() should return NoopSheetHooks by default")
	}
	if _, ok := Raster().(NoopRasterHooks); !ok {
		t.Error("Raster() should return NoopRasterHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customSheet := &testSheetHooks{}
	SetSheetHooks(customSheet)
	if Sheet() != customSheet {
		t.Error("SetSheetHooks should set custom hooks")
	}

	customRaster := &testRasterHooks{}
	SetRasterHooks(customRaster)
	if Raster() != customRaster {
		t.Error("SetRasterHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Sheet().(NoopSheetHooks); !ok {
		t.Error("Reset() should restore NoopSheetHooks")
	}
	if _, ok := Raster().(NoopRasterHooks); !ok {
		t.Error("Reset() should restore NoopRasterHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testSheetHooks{}
	SetSheetHooks(custom)
	SetSheetHooks(nil)

	if Sheet() != custom {
		t.Error("SetSheetHooks(nil) should be ignored")
	}
}

func TestCustomHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	rec := &testSheetHooks{}
	SetSheetHooks(rec)

	ctx := context.Background()
	for page := 1; page <= 4; page++ {
		Sheet().OnPageStart(ctx, page, "front", 1)
	}
	if rec.pages != 4 {
		t.Errorf("recorded %d page starts, want 4", rec.pages)
	}
}

// Test implementations
type testSheetHooks struct {
	NoopSheetHooks
	pages int
}

func (h *testSheetHooks) OnPageStart(context.Context, int, string, int) { h.pages++ }

type testRasterHooks struct{ NoopRasterHooks }
type testCacheHooks struct{ NoopCacheHooks }
