package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/firemio/MSBT-yuina/internal/raster"
)

// texture is a GPU-resident bitmap backed by an ebiten image.
type texture struct {
	img *ebiten.Image
}

func (t *texture) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

func (t *texture) Dispose() {
	t.img.Deallocate()
}

// UploadTexture copies decoded pixels into a new GPU texture. It is the
// uploader the viewer session renders through.
func UploadTexture(img image.Image) raster.Bitmap {
	return &texture{img: ebiten.NewImageFromImage(img)}
}
