package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/firemio/MSBT-yuina/internal/viewer"
)

// shellCommands holds the polled window-level actions for a single frame.
// These are handled by the Game shell itself and never reach the viewer
// session.
type shellCommands struct {
	quit             bool
	toggleFullscreen bool
	openFile         bool
	copyPath         bool
}

// pollInput gathers all raw input events for the current frame. This
// separates input polling from input handling logic.
func (g *Game) pollInput() (viewer.Input, shellCommands) {
	_, wheelY := ebiten.Wheel()
	mx, my := ebiten.CursorPosition()
	in := viewer.Input{
		NextImage:       inpututil.IsKeyJustPressed(ebiten.KeyRight),
		PrevImage:       inpututil.IsKeyJustPressed(ebiten.KeyLeft),
		ResetFit:        inpututil.IsKeyJustPressed(ebiten.KeyF),
		ResetActualSize: inpututil.IsKeyJustPressed(ebiten.Key0) || inpututil.IsKeyJustPressed(ebiten.KeyNumpad0),
		ZoomInKey:       inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd),
		ZoomOutKey:      inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract),
		ToggleSlideshow: inpututil.IsKeyJustPressed(ebiten.KeyS),
		ToggleInfo:      inpututil.IsKeyJustPressed(ebiten.KeyI),

		// Mouse state
		WheelY:        wheelY,
		CursorX:       float64(mx),
		CursorY:       float64(my),
		PanStart:      inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		PanActive:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		GestureStart:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		GestureActive: ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		GestureEnd:    inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight),
	}
	cmd := shellCommands{
		quit:             inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		toggleFullscreen: inpututil.IsKeyJustPressed(ebiten.KeyF11),
		openFile:         inpututil.IsKeyJustPressed(ebiten.KeyO),
		copyPath:         inpututil.IsKeyJustPressed(ebiten.KeyC),
	}
	return in, cmd
}
