package ui

import (
	"errors"
	"image/color"
	"io/fs"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
	"github.com/sqweek/dialog"

	"github.com/firemio/MSBT-yuina/internal/viewer"
)

// slideshowBarColor tints the countdown bar along the bottom edge.
var slideshowBarColor = color.RGBA{R: 0x4a, G: 0x9e, B: 0xd9, A: 0xff}

// Game connects the viewer session to the ebiten loop. Update polls
// input and advances the session by one tick, Draw renders the frame
// that tick produced.
type Game struct {
	session *viewer.Session
	log     logrus.FieldLogger

	frame  viewer.Frame
	title  string
	availW float64
	availH float64

	checker      *ebiten.Image
	infoPanel    panel
	gesturePanel panel
	badgePanel   panel
}

// NewGame prepares the rendering shell around an existing session.
func NewGame(session *viewer.Session, log logrus.FieldLogger) (*Game, error) {
	face, err := newOverlayFace()
	if err != nil {
		return nil, err
	}
	return &Game{
		session:      session,
		log:          log,
		checker:      newCheckerTile(),
		infoPanel:    panel{face: face},
		gesturePanel: panel{face: face},
		badgePanel:   panel{face: face},
	}, nil
}

func (g *Game) Update() error {
	// 1. Poll all raw input at the beginning of the frame.
	in, cmd := g.pollInput()
	in.AvailW = g.availW
	in.AvailH = g.availH

	// 2. Handle window-level commands immediately.
	if cmd.quit {
		return ebiten.Termination
	}
	if cmd.toggleFullscreen {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if cmd.openFile {
		g.openFileDialog()
	}
	if cmd.copyPath {
		g.copyCurrentPath()
	}

	// 3. Hand files dropped onto the window to the session.
	if files := ebiten.DroppedFiles(); files != nil {
		g.openDropped(files)
	}

	// 4. Advance the session by one tick and keep its frame for Draw.
	g.frame = g.session.Tick(in, time.Now())
	if g.frame.Title != g.title {
		g.title = g.frame.Title
		ebiten.SetWindowTitle(g.title)
	}
	return nil
}

// openFileDialog shows the native file chooser and opens the selection.
// The chooser is modal, so the update loop pauses until it closes.
func (g *Game) openFileDialog() {
	path, err := dialog.File().
		Filter("Images", "jpg", "jpeg", "png", "gif", "webp", "bmp", "svg").
		Load()
	if err != nil {
		if !errors.Is(err, dialog.ErrCancelled) {
			g.log.Warnf("file dialog: %v", err)
		}
		return
	}
	if err := g.session.Open(path); err != nil {
		g.log.Errorf("opening %s: %v", path, err)
		dialog.Message("Could not open %s: %v", path, err).Title("Error").Error()
	}
}

func (g *Game) copyCurrentPath() {
	path := g.session.CurrentPath()
	if path == "" {
		return
	}
	if err := clipboard.WriteAll(path); err != nil {
		g.log.Warnf("copying path to clipboard: %v", err)
	}
}

// openDropped loads the first regular file from a drop. Dropped files
// arrive as an fs.FS that only exposes their contents, so they are
// streamed into the session rather than reopened by path.
func (g *Game) openDropped(files fs.FS) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		g.log.Warnf("reading dropped files: %v", err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		f, err := files.Open(name)
		if err != nil {
			g.log.Warnf("opening dropped file %s: %v", name, err)
			continue
		}
		err = g.session.OpenStream(name, f)
		f.Close()
		if err != nil {
			g.log.Errorf("loading dropped file %s: %v", name, err)
			dialog.Message("Could not load %s: %v", name, err).Title("Error").Error()
			continue
		}
		return
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawChecker(screen)

	if g.frame.HasImage {
		g.drawImage(screen)
	} else {
		ebitenutil.DebugPrint(screen, "No image loaded. Drop one here or press O to open a file.")
	}

	sw := screen.Bounds().Dx()
	sh := screen.Bounds().Dy()
	if len(g.frame.InfoLines) > 0 {
		screen.DrawImage(g.infoPanel.render(g.frame.InfoLines), translate(overlayPad, overlayPad))
	}
	if g.frame.GestureTrail != "" {
		lines := []string{g.frame.GestureTrail}
		if g.frame.GestureHint != "" {
			lines = append(lines, g.frame.GestureHint)
		}
		p := g.gesturePanel.render(lines)
		x := (float64(sw) - float64(p.Bounds().Dx())) / 2
		y := (float64(sh) - float64(p.Bounds().Dy())) / 2
		screen.DrawImage(p, translate(x, y))
	}
	if g.frame.SlideshowOn {
		p := g.badgePanel.render([]string{"slideshow"})
		screen.DrawImage(p, translate(float64(sw-p.Bounds().Dx())-overlayPad, overlayPad))
		barW := float32(g.frame.SlideshowProgress * float64(sw))
		vector.DrawFilledRect(screen, 0, float32(sh-3), barW, 3, slideshowBarColor, false)
	}
}

// drawImage stretches the cached bitmap into the placement rectangle the
// session computed for this frame.
func (g *Game) drawImage(screen *ebiten.Image) {
	tex, ok := g.frame.Bitmap.(*texture)
	if !ok {
		return
	}
	bw, bh := tex.Size()
	if bw <= 0 || bh <= 0 || g.frame.Placement.W <= 0 || g.frame.Placement.H <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(g.frame.Placement.W/float64(bw), g.frame.Placement.H/float64(bh))
	op.GeoM.Translate(g.frame.Placement.X, g.frame.Placement.Y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(tex.img, op)
}

func (g *Game) drawChecker(screen *ebiten.Image) {
	sw := screen.Bounds().Dx()
	sh := screen.Bounds().Dy()
	tw := g.checker.Bounds().Dx()
	th := g.checker.Bounds().Dy()
	for y := 0; y < sh; y += th {
		for x := 0; x < sw; x += tw {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(x), float64(y))
			screen.DrawImage(g.checker, op)
		}
	}
}

func translate(x, y float64) *ebiten.DrawImageOptions {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	return op
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	// Returning the window's dimensions makes the logical screen size the
	// same as the window size, a 1:1 pixel mapping for the view math.
	g.availW = float64(outsideWidth)
	g.availH = float64(outsideHeight)
	return outsideWidth, outsideHeight
}
