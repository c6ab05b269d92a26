package compose

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/cardsheet/pkg/layout"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) <= eps }

func TestFitLetterboxVertical(t *testing.T) {
	// 4:3 image into a portrait slot: full width, equal bands top and bottom.
	slot := layout.Rect{X: 10, Y: 20, Width: 63, Height: 88}
	got := Fit(400, 300, slot)

	if !near(got.Width, 63) || !near(got.Height, 47.25) {
		t.Errorf("Fit() size = %vx%v, want 63x47.25", got.Width, got.Height)
	}
	if !near(got.X, slot.X) {
		t.Errorf("Fit() X = %v, want %v", got.X, slot.X)
	}
	top, bottom := slot.Top()-got.Top(), got.Bottom()-slot.Bottom()
	if !near(top, bottom) || top <= 0 {
		t.Errorf("letterbox bands top %v bottom %v, want equal and positive", top, bottom)
	}
}

func TestFitLetterboxHorizontal(t *testing.T) {
	// 4:3 image into a wide slot: full height, equal bands left and right.
	slot := layout.Rect{X: 0, Y: 0, Width: 200, Height: 100}
	got := Fit(400, 300, slot)

	if !near(got.Height, 100) || !near(got.Width, 400.0/3) {
		t.Errorf("Fit() size = %vx%v, want 133.33x100", got.Width, got.Height)
	}
	left, right := got.Left()-slot.Left(), slot.Right()-got.Right()
	if !near(left, right) || left <= 0 {
		t.Errorf("letterbox bands left %v right %v, want equal and positive", left, right)
	}
}

func TestFitExactAspect(t *testing.T) {
	slot := layout.Rect{X: 5, Y: 5, Width: 50, Height: 70}
	got := Fit(500, 700, slot)
	if !near(got.X, slot.X) || !near(got.Y, slot.Y) || !near(got.Width, slot.Width) || !near(got.Height, slot.Height) {
		t.Errorf("Fit() = %+v, want slot %+v", got, slot)
	}
}

func TestFitUpscalesSmallImages(t *testing.T) {
	slot := layout.Rect{Width: 100, Height: 100}
	got := Fit(10, 5, slot)
	if !near(got.Width, 100) || !near(got.Height, 50) {
		t.Errorf("Fit() = %+v, want 100x50", got)
	}
}

func TestCutMarks(t *testing.T) {
	card := layout.Card{Width: 10, Height: 20}
	segs := CutMarks([]layout.Slot{{X: 100, Y: 200}}, card, 3)

	want := []Segment{
		{97, 200, 103, 200}, {100, 197, 100, 203},  // lower-left
		{107, 200, 113, 200}, {110, 197, 110, 203}, // lower-right
		{97, 220, 103, 220}, {100, 217, 100, 223},  // upper-left
		{107, 220, 113, 220}, {110, 217, 110, 223}, // upper-right
	}
	if diff := cmp.Diff(want, segs); diff != "" {
		t.Errorf("CutMarks mismatch (-want +got):\n%s", diff)
	}
}

func TestCutMarksSpanTwiceArm(t *testing.T) {
	card := layout.Card{Width: 63, Height: 88}
	slots := []layout.Slot{{X: 0, Y: 0}, {X: 70, Y: 0}}
	for _, arm := range []float64{1, 2.5, 8.5} {
		for i, s := range CutMarks(slots, card, arm) {
			if got := math.Hypot(s.X2-s.X1, s.Y2-s.Y1); !near(got, 2*arm) {
				t.Errorf("arm %v: segment %d spans %v, want %v", arm, i, got, 2*arm)
			}
		}
	}
}

func TestCutMarksEmpty(t *testing.T) {
	if segs := CutMarks(nil, layout.Card{Width: 1, Height: 1}, 3); len(segs) != 0 {
		t.Errorf("CutMarks(nil) = %v, want empty", segs)
	}
}
