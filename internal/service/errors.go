package service

import (
	"errors"
	"fmt"
)

// ErrBitmapTooLarge is returned when rasterizing would produce a bitmap
// beyond common GPU texture limits. The viewer keeps the previous
// bitmap on screen instead.
var ErrBitmapTooLarge = errors.New("bitmap dimensions exceed texture limit")

// DecodeError wraps a failure to open or decode a raster image file.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding image %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ParseError wraps a failure to open or parse an SVG document.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing svg %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
