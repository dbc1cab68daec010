// Package service decodes the image files the viewer displays and
// reads their metadata.
package service

import (
	"fmt"
	"image"
	"io"
	"os"
	"time"

	// Raster decoders registered for image.Decode dispatch.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ImageInfo describes an image file for the info overlay.
type ImageInfo struct {
	Width    int
	Height   int
	Size     int64
	ModTime  time.Time
	EXIFData map[string]string
}

// ImageService decodes image files into displayable content.
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// GetImageInfo reads dimensions and file metadata without decoding the
// pixel data. EXIF tags are included when the file carries them.
func (is *ImageService) GetImageInfo(path string) (*ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("getting file stats: %w", err)
	}
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image config: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding for exif: %w", err)
	}

	return &ImageInfo{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Size:     st.Size(),
		ModTime:  st.ModTime(),
		EXIFData: exifFields(f),
	}, nil
}

// exifTags lists the tags the overlay shows, each with a formatter for
// its raw value.
var exifTags = []struct {
	label  string
	name   exif.FieldName
	format func(*tiff.Tag) (string, bool)
}{
	{"Camera Model", exif.Model, tagString},
	{"F-Number", exif.FNumber, func(t *tiff.Tag) (string, bool) {
		n, d, err := t.Rat2(0)
		if err != nil || d == 0 {
			return "", false
		}
		return fmt.Sprintf("f/%.1f", float64(n)/float64(d)), true
	}},
	{"Exposure Time", exif.ExposureTime, func(t *tiff.Tag) (string, bool) {
		n, d, err := t.Rat2(0)
		if err != nil {
			return "", false
		}
		return fmt.Sprintf("%d/%d s", n, d), true
	}},
	{"ISO", exif.ISOSpeedRatings, func(t *tiff.Tag) (string, bool) {
		v, err := t.Int(0)
		if err != nil {
			return "", false
		}
		return fmt.Sprintf("%d", v), true
	}},
	{"Taken", exif.DateTimeOriginal, tagString},
}

func tagString(t *tiff.Tag) (string, bool) {
	return t.String(), true
}

// exifFields extracts the overlay's EXIF tags from r. Files without
// EXIF data, such as plain PNGs, yield an empty map.
func exifFields(r io.Reader) map[string]string {
	fields := map[string]string{}
	x, err := exif.Decode(r)
	if err != nil {
		return fields
	}
	for _, tag := range exifTags {
		t, err := x.Get(tag.name)
		if err != nil {
			continue
		}
		if s, ok := tag.format(t); ok {
			fields[tag.label] = s
		}
	}
	return fields
}
