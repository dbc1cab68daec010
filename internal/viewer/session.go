// Package viewer drives the image viewing session: which file is
// shown, how it is framed, and how input changes both. It is free of
// rendering concerns so the whole flow can run under test.
package viewer

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/firemio/MSBT-yuina/internal/config"
	"github.com/firemio/MSBT-yuina/internal/gesture"
	"github.com/firemio/MSBT-yuina/internal/nav"
	"github.com/firemio/MSBT-yuina/internal/raster"
	"github.com/firemio/MSBT-yuina/internal/service"
	"github.com/firemio/MSBT-yuina/internal/viewport"
)

// AppName is used for the window title and overlays.
const AppName = "MSBT-yuina"

// Wheel() reports whole notches while the zoom factor from the
// settings file is calibrated for scroll units of 1/120 notch.
const scrollUnitsPerNotch = 120.0

// keyZoomStep is the factor applied per press of the zoom keys.
const keyZoomStep = 1.1

// LoadedImage is the image currently on screen.
type LoadedImage struct {
	Path    string
	Content service.Decoded
}

// Frame is everything the shell needs to draw after a tick.
type Frame struct {
	HasImage  bool
	Bitmap    raster.Bitmap
	Placement viewport.Rect
	Title     string

	GestureTrail string
	GestureHint  string

	// InfoLines is nil while the info overlay is hidden.
	InfoLines []string

	SlideshowOn bool
	// SlideshowProgress is the elapsed fraction of the interval before
	// the next automatic advance, 0 to 1, meaningful while SlideshowOn.
	SlideshowProgress float64
}

// Session owns the viewing state and advances it one Tick per frame.
// Everything runs on the caller's goroutine; nothing here is safe for
// concurrent use.
type Session struct {
	cfg     config.Config
	log     logrus.FieldLogger
	images  *service.ImageService
	scanner *service.Scanner

	view    *viewport.Viewport
	list    *nav.List
	gesture *gesture.Recognizer
	cache   *raster.Cache

	current *LoadedImage
	info    *service.ImageInfo

	// fitted means the current scale came from a fit and was not
	// overridden by manual zoom, so a window resize re-fits.
	fitted           bool
	pendingViewReset bool

	// pendingNav is a navigation step queued by a resolved gesture.
	// It is applied at the top of the next tick, before the view
	// reset stage, so the incoming image never draws one frame under
	// the outgoing image's scale and pan.
	pendingNav int

	panning            bool
	panLastX, panLastY float64

	infoVisible   bool
	slideshowOn   bool
	slideshowNext time.Time

	// renderDegraded suppresses repeated warnings while every tick
	// retries a failing re-render with the stale bitmap on screen.
	renderDegraded bool

	lastAvailW, lastAvailH float64
}

// NewSession wires a session from its dependencies. upload prepares
// decoded pixels for drawing; the shell supplies a GPU-backed one.
func NewSession(cfg config.Config, log logrus.FieldLogger, images *service.ImageService, scanner *service.Scanner, upload raster.Uploader) *Session {
	return &Session{
		cfg:     cfg,
		log:     log,
		images:  images,
		scanner: scanner,
		view:    viewport.New(),
		list:    nav.New(),
		gesture: gesture.New(),
		cache:   raster.NewCache(upload),
	}
}

// CurrentPath returns the path of the displayed image, or "" when
// nothing is loaded.
func (s *Session) CurrentPath() string {
	if s.current == nil {
		return ""
	}
	return s.current.Path
}

// Close releases the bitmap held for the displayed image.
func (s *Session) Close() {
	s.cache.Clear()
}

// Open loads the file at path and rebuilds the browsing list from its
// directory. On failure the previously displayed image stays put and
// the error is returned for the caller to log.
func (s *Session) Open(path string) error {
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	if err := s.load(path); err != nil {
		return err
	}

	siblings, err := s.scanner.Images(filepath.Dir(path))
	if err != nil {
		// The image is already showing; keep whatever list we had.
		s.log.Warnf("keeping previous browsing list, could not scan %s: %v", filepath.Dir(path), err)
		return nil
	}
	if !s.list.Rebuild(siblings, path) {
		s.log.Warnf("%s is not in its directory listing, starting from the first image", path)
	}
	s.log.Infof("opened %s (%d images in directory)", path, s.list.Len())
	return nil
}

// OpenStream shows an image read from r, for sources that expose no
// filesystem path, such as files dragged onto the window. Browsing is
// limited to that single image.
func (s *Session) OpenStream(name string, r io.Reader) error {
	dec, err := s.images.LoadFrom(name, r)
	if err != nil {
		return err
	}
	if err := s.install(name, dec); err != nil {
		return err
	}
	s.list.Rebuild([]string{name}, name)
	s.log.Infof("opened %s from a stream", name)
	return nil
}

// load decodes path and installs it as the displayed image without
// touching the browsing list.
func (s *Session) load(path string) error {
	dec, err := s.images.Load(path)
	if err != nil {
		return err
	}
	return s.install(path, dec)
}

func (s *Session) install(path string, dec service.Decoded) error {
	switch content := dec.(type) {
	case *service.RasterImage:
		s.cache.Reset(content.Img, 1.0)
	case *service.VectorDoc:
		rendered, err := content.Rasterize(1.0)
		if err != nil {
			return err
		}
		s.cache.Reset(rendered, 1.0)
	default:
		return fmt.Errorf("unsupported decode result %T", dec)
	}

	s.current = &LoadedImage{Path: path, Content: dec}
	w, h := dec.Size()
	s.view.SetImageSize(w, h)
	s.pendingViewReset = true
	s.renderDegraded = false
	// An in-flight stroke or queued step belongs to the old image.
	s.pendingNav = 0
	s.gesture.Cancel()
	s.refreshInfo()
	s.log.Debugf("loaded %s at %dx%d", path, w, h)
	return nil
}

// navigate loads the entry delta steps away and commits the cursor
// only once the load succeeded, so a broken file leaves both the
// display and the position untouched.
func (s *Session) navigate(delta int) {
	candidate, ok := s.list.Peek(delta)
	if !ok {
		return
	}
	if candidate == s.CurrentPath() {
		return
	}
	if err := s.load(candidate); err != nil {
		s.log.Errorf("keeping current image, cannot load %s: %v", candidate, err)
		return
	}
	s.list.Commit(candidate)
}

// Tick advances the session by one frame. The stages run in a fixed
// order: navigation first, then view resets, then the bitmap refresh
// against the scale those produced, then this frame's zoom and pan
// input, which takes effect next frame.
func (s *Session) Tick(in Input, now time.Time) Frame {
	if delta := s.pendingNav; delta != 0 {
		s.pendingNav = 0
		s.navigate(delta)
		s.bumpSlideshow(now)
	}

	if in.ToggleSlideshow {
		s.toggleSlideshow(now)
	}
	if in.ToggleInfo {
		s.infoVisible = !s.infoVisible
	}

	if in.NextImage {
		s.navigate(1)
		s.bumpSlideshow(now)
	}
	if in.PrevImage {
		s.navigate(-1)
		s.bumpSlideshow(now)
	}
	if s.slideshowOn && s.current != nil && !now.Before(s.slideshowNext) {
		s.navigate(1)
		s.slideshowNext = now.Add(s.cfg.SlideshowInterval())
	}

	resized := in.AvailW != s.lastAvailW || in.AvailH != s.lastAvailH
	s.lastAvailW, s.lastAvailH = in.AvailW, in.AvailH
	if s.current != nil {
		switch {
		case s.pendingViewReset:
			s.applyViewReset(in.AvailW, in.AvailH)
			s.pendingViewReset = false
		case resized && s.fitted:
			s.view.ResetFit(in.AvailW, in.AvailH)
		}
	}

	if s.current != nil {
		if doc, ok := s.current.Content.(*service.VectorDoc); ok {
			if err := s.cache.Refresh(doc, s.view.Scale()); err != nil {
				if !s.renderDegraded {
					s.log.Warnf("keeping previous rendering of %s: %v", s.current.Path, err)
					s.renderDegraded = true
				}
			} else {
				s.renderDegraded = false
			}
		}
	}

	s.handleViewInput(in)

	return s.frame(now)
}

// handleViewInput applies this frame's zoom, pan and gesture input.
func (s *Session) handleViewInput(in Input) {
	if in.ResetFit {
		s.view.ResetFit(in.AvailW, in.AvailH)
		s.fitted = true
	}
	if in.ResetActualSize {
		s.view.ResetActualSize()
		s.fitted = false
	}
	if in.ZoomInKey {
		s.view.ZoomBy(keyZoomStep, in.AvailW/2, in.AvailH/2, in.AvailW, in.AvailH)
		s.fitted = false
	}
	if in.ZoomOutKey {
		s.view.ZoomBy(1/keyZoomStep, in.AvailW/2, in.AvailH/2, in.AvailW, in.AvailH)
		s.fitted = false
	}
	if in.WheelY != 0 {
		// A burst of zoom-out notches can push the factor to zero or
		// below; the scale clamp turns that into a snap to minimum.
		factor := 1 + in.WheelY*scrollUnitsPerNotch*s.cfg.WheelZoomFactor
		ax, ay := in.CursorX, in.CursorY
		if ax < 0 || ay < 0 || ax > in.AvailW || ay > in.AvailH {
			// Cursor is outside the window; anchor at the center.
			ax, ay = in.AvailW/2, in.AvailH/2
		}
		s.view.ZoomBy(factor, ax, ay, in.AvailW, in.AvailH)
		s.fitted = false
	}

	if in.GestureStart {
		s.gesture.Begin(in.CursorX, in.CursorY)
	}
	if in.GestureActive && s.gesture.Active() {
		s.gesture.Move(in.CursorX, in.CursorY)
	}
	if in.GestureEnd {
		switch s.gesture.End() {
		case gesture.ActionPrev:
			s.pendingNav = -1
		case gesture.ActionNext:
			s.pendingNav = 1
		}
	}

	// The left button pans; it stays inert while a gesture stroke is
	// being drawn with the right button.
	if in.PanStart && !s.gesture.Active() {
		s.panning = true
		s.panLastX, s.panLastY = in.CursorX, in.CursorY
	}
	if s.panning {
		if in.PanActive && !s.gesture.Active() {
			s.view.Pan(in.CursorX-s.panLastX, in.CursorY-s.panLastY)
			s.panLastX, s.panLastY = in.CursorX, in.CursorY
		} else {
			s.panning = false
		}
	}
}

func (s *Session) applyViewReset(availW, availH float64) {
	switch s.cfg.InitialDisplayMode {
	case config.DisplayOriginal:
		s.view.ResetActualSize()
		s.fitted = false
	default:
		s.view.ResetFit(availW, availH)
		s.fitted = true
	}
}

func (s *Session) toggleSlideshow(now time.Time) {
	s.slideshowOn = !s.slideshowOn
	if s.slideshowOn {
		s.slideshowNext = now.Add(s.cfg.SlideshowInterval())
		s.log.Info("slideshow started")
	} else {
		s.log.Info("slideshow stopped")
	}
}

// bumpSlideshow postpones the next automatic advance after a manual
// navigation.
func (s *Session) bumpSlideshow(now time.Time) {
	if s.slideshowOn {
		s.slideshowNext = now.Add(s.cfg.SlideshowInterval())
	}
}

func (s *Session) refreshInfo() {
	s.info = nil
	if s.current == nil {
		return
	}
	switch s.current.Content.(type) {
	case *service.VectorDoc:
		// DecodeConfig knows nothing about SVG; build the info from
		// the parsed document and the file itself.
		st, err := os.Stat(s.current.Path)
		if err != nil {
			s.log.Debugf("no metadata for %s: %v", s.current.Path, err)
			return
		}
		w, h := s.current.Content.Size()
		s.info = &service.ImageInfo{
			Width:    w,
			Height:   h,
			Size:     st.Size(),
			ModTime:  st.ModTime(),
			EXIFData: map[string]string{},
		}
	default:
		info, err := s.images.GetImageInfo(s.current.Path)
		if err != nil {
			s.log.Debugf("no metadata for %s: %v", s.current.Path, err)
			return
		}
		s.info = info
	}
}

func (s *Session) frame(now time.Time) Frame {
	f := Frame{
		Title:       AppName,
		SlideshowOn: s.slideshowOn,
	}
	if s.slideshowOn {
		if interval := s.cfg.SlideshowInterval(); interval > 0 {
			elapsed := 1 - s.slideshowNext.Sub(now).Seconds()/interval.Seconds()
			f.SlideshowProgress = math.Min(1, math.Max(0, elapsed))
		}
	}
	if s.gesture.Active() {
		f.GestureTrail = s.gesture.Trail()
		switch s.gesture.Pending() {
		case gesture.ActionPrev:
			f.GestureHint = "<<<"
		case gesture.ActionNext:
			f.GestureHint = ">>>"
		}
	}
	if s.current == nil {
		return f
	}

	f.HasImage = true
	f.Bitmap = s.cache.Bitmap()
	if r, ok := s.view.Placement(s.lastAvailW, s.lastAvailH); ok {
		f.Placement = r
	}
	f.Title = fmt.Sprintf("%s - %d%% - %s", AppName, scalePercent(s.view.Scale()), s.current.Path)
	if s.infoVisible {
		f.InfoLines = s.infoLines()
	}
	return f
}

func (s *Session) infoLines() []string {
	w, h := s.current.Content.Size()
	lines := []string{
		s.current.Path,
		fmt.Sprintf("%d x %d px", w, h),
		fmt.Sprintf("scale %d%%", scalePercent(s.view.Scale())),
	}
	if _, ok := s.current.Content.(*service.VectorDoc); ok {
		lines = append(lines, "vector document")
	}
	if s.info != nil {
		lines = append(lines,
			formatBytes(s.info.Size),
			s.info.ModTime.Format("2006-01-02 15:04:05"),
		)
		keys := make([]string, 0, len(s.info.EXIFData))
		for k := range s.info.EXIFData {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s: %s", k, s.info.EXIFData[k]))
		}
	}
	return lines
}

func scalePercent(scale float64) int {
	return int(math.Round(scale * 100))
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
