package ui

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
)

// checkerCell is the side length in pixels of one checkerboard square.
const checkerCell = 16

// newCheckerTile renders the repeating tile that backs transparent
// images, two cells per axis.
func newCheckerTile() *ebiten.Image {
	dc := gg.NewContext(checkerCell*2, checkerCell*2)
	dc.SetColor(color.Gray{Y: 0x20})
	dc.Clear()
	dc.SetColor(color.Gray{Y: 0x40})
	dc.DrawRectangle(checkerCell, 0, checkerCell, checkerCell)
	dc.DrawRectangle(0, checkerCell, checkerCell, checkerCell)
	dc.Fill()
	return ebiten.NewImageFromImage(dc.Image())
}

// AppIcons draws the window icon at the sizes desktop environments
// commonly ask for. Icons are generated at startup so no binary assets
// ship with the source.
func AppIcons() []image.Image {
	sizes := []int{16, 32, 48}
	icons := make([]image.Image, 0, len(sizes))
	for _, size := range sizes {
		icons = append(icons, drawIcon(size))
	}
	return icons
}

// drawIcon paints a small landscape photo motif.
func drawIcon(size int) image.Image {
	s := float64(size)
	dc := gg.NewContext(size, size)
	dc.SetRGB255(0x2b, 0x4f, 0x73)
	dc.DrawRoundedRectangle(0, 0, s, s, s/8)
	dc.Fill()
	dc.SetRGB255(0xe8, 0xc4, 0x4a)
	dc.DrawCircle(s*0.68, s*0.3, s*0.13)
	dc.Fill()
	dc.SetRGB255(0x46, 0x86, 0x59)
	dc.MoveTo(0, s*0.92)
	dc.LineTo(s*0.42, s*0.42)
	dc.LineTo(s*0.78, s*0.92)
	dc.ClosePath()
	dc.Fill()
	dc.SetRGB255(0x35, 0x6b, 0x47)
	dc.MoveTo(s*0.5, s*0.92)
	dc.LineTo(s*0.78, s*0.55)
	dc.LineTo(s, s*0.85)
	dc.LineTo(s, s*0.92)
	dc.ClosePath()
	dc.Fill()
	return dc.Image()
}
