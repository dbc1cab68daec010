package viewer

// Input holds the polled state of inputs for a single frame. The shell
// gathers it up front so the session logic never touches the input
// device APIs directly.
type Input struct {
	NextImage       bool
	PrevImage       bool
	ResetFit        bool
	ResetActualSize bool
	ZoomInKey       bool
	ZoomOutKey      bool
	ToggleSlideshow bool
	ToggleInfo      bool

	// Mouse state
	WheelY           float64
	CursorX, CursorY float64
	PanStart         bool // left button just pressed
	PanActive        bool // left button held down
	GestureStart     bool // right button just pressed
	GestureActive    bool // right button held down
	GestureEnd       bool // right button just released

	// Drawing area size in pixels.
	AvailW, AvailH float64
}
