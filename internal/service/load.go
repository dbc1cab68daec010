package service

import (
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// maxBitmapDim keeps rasterized bitmaps inside common GPU texture
// limits.
const maxBitmapDim = 16384

// Decoded is the payload of a successfully loaded image file. Raster
// files decode once to a fixed bitmap; SVG files stay
// resolution-independent and re-rasterize on demand.
type Decoded interface {
	// Size returns the intrinsic pixel dimensions.
	Size() (w, h int)
}

// RasterImage is a bitmap decoded at its native resolution.
type RasterImage struct {
	Img image.Image
}

// Size returns the bitmap dimensions.
func (r *RasterImage) Size() (int, int) {
	b := r.Img.Bounds()
	return b.Dx(), b.Dy()
}

// VectorDoc is a parsed SVG document that can be rendered at an
// arbitrary scale without quality loss.
type VectorDoc struct {
	icon *oksvg.SvgIcon
	w, h int
}

// Size returns the intrinsic dimensions taken from the SVG viewbox.
func (v *VectorDoc) Size() (int, int) {
	return v.w, v.h
}

// Rasterize renders the document at scale into a fresh bitmap whose
// sides are the intrinsic dimensions times scale, rounded up.
func (v *VectorDoc) Rasterize(scale float64) (*image.RGBA, error) {
	w := int(math.Ceil(float64(v.w) * scale))
	h := int(math.Ceil(float64(v.h) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w > maxBitmapDim || h > maxBitmapDim {
		return nil, fmt.Errorf("rasterizing %dx%d svg at scale %.3g: %w", v.w, v.h, scale, ErrBitmapTooLarge)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	v.icon.SetTarget(0, 0, float64(v.w)*scale, float64(v.h)*scale)
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	v.icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return img, nil
}

// Load decodes the file at path, taking the vector route for SVG and
// the raster route for everything else.
func (is *ImageService) Load(path string) (Decoded, error) {
	if isVectorName(path) {
		return is.ParseVector(path)
	}
	return is.DecodeRaster(path)
}

// LoadFrom decodes image data from r. name picks the decode route by
// extension and labels errors; it does not have to exist on disk.
// Used for sources that only expose a stream, like dropped files.
func (is *ImageService) LoadFrom(name string, r io.Reader) (Decoded, error) {
	if isVectorName(name) {
		return parseVectorStream(name, r)
	}
	return decodeRasterStream(name, r)
}

// DecodeRaster decodes a bitmap image file. The format is sniffed from
// the stream, so a mislabeled extension still decodes.
func (is *ImageService) DecodeRaster(path string) (*RasterImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()
	return decodeRasterStream(path, f)
}

// ParseVector reads an SVG file into a reusable document.
func (is *ImageService) ParseVector(path string) (*VectorDoc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()
	return parseVectorStream(path, f)
}

func isVectorName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".svg")
}

func decodeRasterStream(name string, r io.Reader) (*RasterImage, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &DecodeError{Path: name, Err: err}
	}
	return &RasterImage{Img: img}, nil
}

func parseVectorStream(name string, r io.Reader) (*VectorDoc, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, &ParseError{Path: name, Err: err}
	}
	w := int(math.Ceil(icon.ViewBox.W))
	h := int(math.Ceil(icon.ViewBox.H))
	if w < 1 || h < 1 {
		return nil, &ParseError{Path: name, Err: fmt.Errorf("degenerate viewbox %gx%g", icon.ViewBox.W, icon.ViewBox.H)}
	}
	return &VectorDoc{icon: icon, w: w, h: h}, nil
}
