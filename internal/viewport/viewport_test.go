package viewport

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestFitToWindow(t *testing.T) {
	tests := []struct {
		name           string
		imgW, imgH     int
		availW, availH float64
	}{
		{"wide image in wide window", 800, 600, 1000, 700},
		{"tall image", 300, 900, 1000, 700},
		{"image larger than window", 4000, 3000, 1000, 700},
		{"square image square window", 500, 500, 500, 500},
		{"upscale small image", 100, 80, 640, 480},
		{"full-frame photo below the zoom floor", 9504, 6336, 800, 600},
		{"icon above the zoom cap", 10, 10, 200, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.SetImageSize(tt.imgW, tt.imgH)
			v.FitToWindow(tt.availW, tt.availH)

			s := v.Scale()
			w := float64(tt.imgW) * s
			h := float64(tt.imgH) * s
			if w > tt.availW+epsilon {
				t.Errorf("scaled width %v exceeds available %v", w, tt.availW)
			}
			if h > tt.availH+epsilon {
				t.Errorf("scaled height %v exceeds available %v", h, tt.availH)
			}
			wSnug := math.Abs(w-tt.availW) < epsilon
			hSnug := math.Abs(h-tt.availH) < epsilon
			if !wSnug && !hSnug {
				t.Errorf("neither dimension reaches its bound: %vx%v in %vx%v", w, h, tt.availW, tt.availH)
			}
		})
	}
}

func TestFitToWindowNoImage(t *testing.T) {
	v := New()
	v.FitToWindow(1000, 700)
	if v.Scale() != 1.0 {
		t.Errorf("fit without an image changed scale to %v", v.Scale())
	}
}

func TestFitToWindowZeroSizedImage(t *testing.T) {
	v := New()
	v.SetImageSize(0, 600)
	v.FitToWindow(1000, 700)
	if v.Scale() != 1.0 {
		t.Errorf("fit with zero-width image changed scale to %v", v.Scale())
	}
}

func TestZoomPreservesAnchor(t *testing.T) {
	tests := []struct {
		name             string
		oldScale         float64
		panX, panY       float64
		anchorX, anchorY float64
		newScale         float64
	}{
		{"zoom in at center", 1.0, 0, 0, 500, 350, 2.0},
		{"zoom out at center", 2.0, 0, 0, 500, 350, 0.5},
		{"zoom in off-center", 1.0, 40, -25, 120, 80, 3.5},
		{"zoom out off-center", 4.0, -300, 180, 900, 40, 1.2},
		{"tiny step", 1.5, 10, 10, 640, 200, 1.501},
		{"target above max clamps first", 8.0, 0, 0, 333, 444, 25.0},
		{"target below min clamps first", 0.2, -5, 7, 10, 10, 0.001},
	}

	const availW, availH = 1000.0, 700.0
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.SetImageSize(800, 600)
			v.ZoomTo(tt.oldScale, availW/2, availH/2, availW, availH)
			// Force an exact starting pan for the case.
			v.panX, v.panY = tt.panX, tt.panY
			v.scale = tt.oldScale

			beforeX, beforeY, ok := v.ImagePointAt(tt.anchorX, tt.anchorY, availW, availH)
			if !ok {
				t.Fatal("image point lookup failed before zoom")
			}

			v.ZoomTo(tt.newScale, tt.anchorX, tt.anchorY, availW, availH)

			afterX, afterY, ok := v.ImagePointAt(tt.anchorX, tt.anchorY, availW, availH)
			if !ok {
				t.Fatal("image point lookup failed after zoom")
			}
			if math.Abs(afterX-beforeX) > 1e-6 || math.Abs(afterY-beforeY) > 1e-6 {
				t.Errorf("anchor drifted: before (%v, %v), after (%v, %v)", beforeX, beforeY, afterX, afterY)
			}
		})
	}
}

func TestScaleClampUnderRepeatedZoom(t *testing.T) {
	v := New()
	v.SetImageSize(800, 600)

	for i := 0; i < 100; i++ {
		v.ZoomBy(1.1, 500, 350, 1000, 700)
		if s := v.Scale(); s < MinScale || s > MaxScale {
			t.Fatalf("scale %v escaped [%v, %v] while zooming in", s, MinScale, MaxScale)
		}
	}
	if v.Scale() != MaxScale {
		t.Errorf("expected scale pinned at %v, got %v", MaxScale, v.Scale())
	}

	for i := 0; i < 200; i++ {
		v.ZoomBy(1/1.1, 500, 350, 1000, 700)
		if s := v.Scale(); s < MinScale || s > MaxScale {
			t.Fatalf("scale %v escaped [%v, %v] while zooming out", s, MinScale, MaxScale)
		}
	}
	if v.Scale() != MinScale {
		t.Errorf("expected scale pinned at %v, got %v", MinScale, v.Scale())
	}
}

func TestPlacementCenteredAtZeroPan(t *testing.T) {
	v := New()
	v.SetImageSize(400, 200)

	r, ok := v.Placement(1000, 700)
	if !ok {
		t.Fatal("placement unavailable with an image set")
	}
	if r.W != 400 || r.H != 200 {
		t.Errorf("expected 400x200 at scale 1, got %vx%v", r.W, r.H)
	}
	if r.X != 300 || r.Y != 250 {
		t.Errorf("expected centered at (300, 250), got (%v, %v)", r.X, r.Y)
	}
}

func TestPlacementFollowsPan(t *testing.T) {
	v := New()
	v.SetImageSize(400, 200)
	v.Pan(15, -30)
	v.Pan(5, 10)

	r, _ := v.Placement(1000, 700)
	if r.X != 320 || r.Y != 230 {
		t.Errorf("expected pan deltas to accumulate to (320, 230), got (%v, %v)", r.X, r.Y)
	}
}

func TestPlacementWithoutImage(t *testing.T) {
	v := New()
	if _, ok := v.Placement(1000, 700); ok {
		t.Error("placement reported ok without an image")
	}
}

func TestResetActualSize(t *testing.T) {
	v := New()
	v.SetImageSize(800, 600)
	v.ZoomTo(3.0, 100, 100, 1000, 700)
	v.Pan(50, 60)

	v.ResetActualSize()
	if v.Scale() != 1.0 {
		t.Errorf("expected scale 1.0, got %v", v.Scale())
	}
	if x, y := v.PanOffset(); x != 0 || y != 0 {
		t.Errorf("expected pan reset to origin, got (%v, %v)", x, y)
	}
}

func TestResetFit(t *testing.T) {
	v := New()
	v.SetImageSize(800, 600)
	v.ZoomTo(3.0, 100, 100, 1000, 700)
	v.Pan(50, 60)

	v.ResetFit(1000, 700)
	if x, y := v.PanOffset(); x != 0 || y != 0 {
		t.Errorf("expected pan reset to origin, got (%v, %v)", x, y)
	}
	want := math.Min(1000.0/800.0, 700.0/600.0)
	if math.Abs(v.Scale()-want) > epsilon {
		t.Errorf("expected fit scale %v, got %v", want, v.Scale())
	}
}

func TestImagePointAtInvertsPlacement(t *testing.T) {
	v := New()
	v.SetImageSize(400, 200)
	v.ZoomTo(2.0, 300, 150, 1000, 700)
	v.Pan(-40, 25)

	r, ok := v.Placement(1000, 700)
	if !ok {
		t.Fatal("no placement with an image loaded")
	}
	// The placement's top-left corner must map back to image (0,0).
	ix, iy, ok := v.ImagePointAt(r.X, r.Y, 1000, 700)
	if !ok {
		t.Fatal("no mapping with an image loaded")
	}
	if math.Abs(ix) > epsilon || math.Abs(iy) > epsilon {
		t.Errorf("placement corner maps to (%v, %v), want (0, 0)", ix, iy)
	}
	// And the corner plus the scaled size must map to the image extent.
	ix, iy, _ = v.ImagePointAt(r.X+r.W, r.Y+r.H, 1000, 700)
	if math.Abs(ix-400) > epsilon || math.Abs(iy-200) > epsilon {
		t.Errorf("placement extent maps to (%v, %v), want (400, 200)", ix, iy)
	}
}
