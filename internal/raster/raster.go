// Package raster decides when a vector image needs re-rendering and
// owns the bitmap rendered last.
package raster

import "image"

// Band is the relative drift in view scale tolerated before the cached
// bitmap goes stale. The bitmap is reused while the scale stays within
// five percent of the scale it was rendered at.
const Band = 0.05

// Bitmap is a prepared rendering of an image at one concrete scale,
// typically living on the GPU. Dispose releases it.
type Bitmap interface {
	Size() (w, h int)
	Dispose()
}

// Uploader turns freshly rendered pixels into a Bitmap.
type Uploader func(img image.Image) Bitmap

// Source renders vector content at a requested scale.
type Source interface {
	Rasterize(scale float64) (*image.RGBA, error)
}

// Stale reports whether current has drifted outside the band around
// the scale the bitmap was last rendered at. Both bounds are strict:
// landing exactly on the edge of the band keeps the cached bitmap.
func Stale(current, last float64) bool {
	return current > last*(1+Band) || current < last*(1-Band)
}

// Cache holds the bitmap of the displayed image and re-renders vector
// content when the view scale leaves the band.
type Cache struct {
	upload    Uploader
	bitmap    Bitmap
	lastScale float64
}

// NewCache returns an empty cache that prepares bitmaps with upload.
func NewCache(upload Uploader) *Cache {
	return &Cache{upload: upload}
}

// Reset disposes any held bitmap and installs img as the rendering at
// scale. Used when a new image is loaded.
func (c *Cache) Reset(img image.Image, scale float64) {
	if c.bitmap != nil {
		c.bitmap.Dispose()
	}
	c.bitmap = c.upload(img)
	c.lastScale = scale
}

// Refresh re-renders src at scale if the held bitmap has gone stale.
// On success the old bitmap is disposed and replaced. On failure the
// cache is left untouched, so the previous rendering stays on screen,
// and the error is returned for logging.
func (c *Cache) Refresh(src Source, scale float64) error {
	if !Stale(scale, c.lastScale) {
		return nil
	}
	img, err := src.Rasterize(scale)
	if err != nil {
		return err
	}
	if c.bitmap != nil {
		c.bitmap.Dispose()
	}
	c.bitmap = c.upload(img)
	c.lastScale = scale
	return nil
}

// Bitmap returns the held bitmap, or nil when the cache is empty.
func (c *Cache) Bitmap() Bitmap {
	return c.bitmap
}

// LastScale returns the scale the held bitmap was rendered at.
func (c *Cache) LastScale() float64 {
	return c.lastScale
}

// Clear disposes the held bitmap and empties the cache.
func (c *Cache) Clear() {
	if c.bitmap != nil {
		c.bitmap.Dispose()
		c.bitmap = nil
	}
	c.lastScale = 0
}
