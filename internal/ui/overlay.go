package ui

import (
	"fmt"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	overlayFontSize = 14.0
	overlayPad      = 8
)

// newOverlayFace parses the bundled Go Regular font for overlay text.
func newOverlayFace() (font.Face, error) {
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing overlay font: %w", err)
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    overlayFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return face, nil
}

// panel is one cached overlay texture. It is rasterized with gg and
// re-rendered only when its text changes, so steady frames reuse the
// previous texture.
type panel struct {
	face font.Face
	key  string
	img  *ebiten.Image
}

// render returns a translucent box containing the given lines.
func (p *panel) render(lines []string) *ebiten.Image {
	key := strings.Join(lines, "\n")
	if key == p.key && p.img != nil {
		return p.img
	}

	metrics := p.face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineH := metrics.Height.Ceil() + 2
	maxW := 0
	for _, line := range lines {
		if w := font.MeasureString(p.face, line).Ceil(); w > maxW {
			maxW = w
		}
	}

	dc := gg.NewContext(maxW+2*overlayPad, len(lines)*lineH+2*overlayPad)
	dc.SetRGBA(0, 0, 0, 0.6)
	dc.Clear()
	dc.SetFontFace(p.face)
	dc.SetRGB(1, 1, 1)
	for i, line := range lines {
		dc.DrawString(line, overlayPad, float64(overlayPad+i*lineH+ascent))
	}

	if p.img != nil {
		p.img.Deallocate()
	}
	p.key = key
	p.img = ebiten.NewImageFromImage(dc.Image())
	return p.img
}
