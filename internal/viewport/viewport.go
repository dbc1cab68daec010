// Package viewport owns the zoom/pan state that maps a logical image into
// screen space. All operations are pure functions over explicit parameters;
// the available drawing area is passed in per call, never read from globals.
package viewport

import "math"

// Scale bounds shared by every zoom path. A zoom target is clamped before
// any dependent math (anchor solving, placement) runs against it. Fitting
// is not a zoom: the fit ratio may land outside these bounds.
const (
	MinScale = 0.1
	MaxScale = 10.0
)

// Rect is a screen-space rectangle: top-left corner plus size, in pixels.
type Rect struct {
	X, Y, W, H float64
}

// Viewport holds the current scale and pan offset for the loaded image.
// The pan offset is measured in screen pixels relative to the centered
// position of the image within the available drawing area: a zero offset
// always means "centered".
type Viewport struct {
	scale      float64
	panX, panY float64

	// Logical image size in pixels. For vector documents this is the
	// intrinsic size, regardless of the resolution the cached bitmap was
	// rasterized at. Zero means no image is loaded.
	imageW, imageH int
}

// New returns a viewport at 100% scale with no image.
func New() *Viewport {
	return &Viewport{scale: 1.0}
}

// SetImageSize records the logical size of the loaded image.
func (v *Viewport) SetImageSize(w, h int) {
	v.imageW, v.imageH = w, h
}

// Scale returns the current zoom scale.
func (v *Viewport) Scale() float64 {
	return v.scale
}

// PanOffset returns the current pan offset in screen pixels.
func (v *Viewport) PanOffset() (x, y float64) {
	return v.panX, v.panY
}

// FitToWindow sets the scale so the whole image fits inside the available
// area without cropping: min(availW/w, availH/h). The ratio is taken as is,
// past MinScale or MaxScale if the sizes demand it; only zooming clamps.
// The pan offset is left untouched; callers that want a clean fit view pair
// this with ResetFit. A missing image or degenerate area leaves the scale
// unchanged.
func (v *Viewport) FitToWindow(availW, availH float64) {
	if v.imageW <= 0 || v.imageH <= 0 || availW <= 0 || availH <= 0 {
		return
	}
	sx := availW / float64(v.imageW)
	sy := availH / float64(v.imageH)
	v.scale = math.Min(sx, sy)
}

// ZoomTo changes the scale so that the image-space point currently under
// (anchorX, anchorY) stays under it afterwards. The target scale is clamped
// first, so the anchor is preserved against the scale that will actually be
// applied rather than a thrown-away out-of-range value.
func (v *Viewport) ZoomTo(newScale, anchorX, anchorY, availW, availH float64) {
	newScale = clampScale(newScale)
	if v.imageW <= 0 || v.imageH <= 0 {
		v.scale = newScale
		return
	}

	// Image-space position under the anchor at the old scale.
	px, py := v.placementMin(availW, availH)
	ix := (anchorX - px) / v.scale
	iy := (anchorY - py) / v.scale

	// Solve for the pan offset that puts that position back under the
	// anchor at the new scale.
	v.scale = newScale
	v.panX = anchorX - ix*v.scale - (availW-float64(v.imageW)*v.scale)/2
	v.panY = anchorY - iy*v.scale - (availH-float64(v.imageH)*v.scale)/2
}

// ZoomBy multiplies the current scale by factor, anchored like ZoomTo.
func (v *Viewport) ZoomBy(factor, anchorX, anchorY, availW, availH float64) {
	v.ZoomTo(v.scale*factor, anchorX, anchorY, availW, availH)
}

// Pan adds a screen-space delta to the pan offset.
func (v *Viewport) Pan(dx, dy float64) {
	v.panX += dx
	v.panY += dy
}

// ResetFit centers the image and recomputes the fit-to-window scale.
// Both happen as one action so a stale pan offset never survives a fit.
func (v *Viewport) ResetFit(availW, availH float64) {
	v.panX, v.panY = 0, 0
	v.FitToWindow(availW, availH)
}

// ResetActualSize centers the image at 100% scale.
func (v *Viewport) ResetActualSize() {
	v.panX, v.panY = 0, 0
	v.scale = 1.0
}

// Placement returns the screen rectangle the image occupies: the logical
// image size scaled by the current zoom, centered in the available area and
// shifted by the pan offset. ok is false while no image is loaded.
func (v *Viewport) Placement(availW, availH float64) (r Rect, ok bool) {
	if v.imageW <= 0 || v.imageH <= 0 {
		return Rect{}, false
	}
	x, y := v.placementMin(availW, availH)
	return Rect{
		X: x,
		Y: y,
		W: float64(v.imageW) * v.scale,
		H: float64(v.imageH) * v.scale,
	}, true
}

// ImagePointAt maps a screen position to image space under the current
// transform. ok is false while no image is loaded.
func (v *Viewport) ImagePointAt(screenX, screenY, availW, availH float64) (ix, iy float64, ok bool) {
	if v.imageW <= 0 || v.imageH <= 0 {
		return 0, 0, false
	}
	px, py := v.placementMin(availW, availH)
	return (screenX - px) / v.scale, (screenY - py) / v.scale, true
}

// placementMin is the top-left corner of the drawn image.
func (v *Viewport) placementMin(availW, availH float64) (x, y float64) {
	x = (availW-float64(v.imageW)*v.scale)/2 + v.panX
	y = (availH-float64(v.imageH)*v.scale)/2 + v.panY
	return x, y
}

// clampScale restricts a scale to the supported range.
func clampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
