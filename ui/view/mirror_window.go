package view

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/mirrorview/mirror-view-go/ui/images"
	"github.com/mirrorview/mirror-view-go/ui/presenter"
	"github.com/mirrorview/mirror-view-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	// Default mirror size when no display is bound.
	defaultMirrorW = 960
	defaultMirrorH = 540

	// Control overlay fade parameters.
	overlayAlphaHigh = 0.92
	overlayAlphaLow  = 0.25
	overlayFadeStep  = 0.1
	overlayFadeTick  = 40 * time.Millisecond
)

// mirrorWindow renders relayed frames into a dedicated toplevel. When bound
// to a display it goes borderless and covers that display; otherwise it is a
// regular centered window. It owns the Tk photo instance and disposes the
// previous one before each swap so off-screen pixel data does not accumulate.
type mirrorWindow struct {
	logger *slog.Logger

	onToggleH func()
	onToggleV func()
	onClose   func()

	win        *ToplevelWidget
	frameLabel *LabelWidget
	prevPhoto  *Img
	targetW    int
	targetH    int

	overlay      *ToplevelWidget
	overlayAlpha float64
	fadeTarget   float64
	fadeAfterID  string
}

// NewMirrorWindowFactory returns a surface factory producing Tk mirror
// windows. Must be called and used on the UI context only.
func NewMirrorWindowFactory(logger *slog.Logger) presenter.SurfaceFactory {
	return func(onToggleH, onToggleV, onClose func()) presenter.MirrorSurface {
		return &mirrorWindow{
			logger:    logger,
			onToggleH: onToggleH,
			onToggleV: onToggleV,
			onClose:   onClose,
		}
	}
}

func (v *mirrorWindow) Open(bounds *image.Rectangle, controlsVisible bool) {
	if v == nil || v.win != nil {
		return
	}
	win := App.Toplevel(Background("#000000"))
	win.WmTitle("Mirror")
	v.win = win

	var originX, originY int
	if bounds != nil {
		v.targetW, v.targetH = bounds.Dx(), bounds.Dy()
		originX, originY = bounds.Min.X, bounds.Min.Y
		WmGeometry(win.Window, fmt.Sprintf("%dx%d+%d+%d", bounds.Dx(), bounds.Dy(), bounds.Min.X, bounds.Min.Y))
		WmAttributes(win.Window, "-fullscreen", 1)
		WmAttributes(win.Window, "-topmost", 1)
	} else {
		v.targetW, v.targetH = defaultMirrorW, defaultMirrorH
		screenW, screenH := computeScreenSize()
		originX, originY = (screenW-defaultMirrorW)/2, (screenH-defaultMirrorH)/2
		WmGeometry(win.Window, fmt.Sprintf("%dx%d+%d+%d", defaultMirrorW, defaultMirrorH, originX, originY))
	}

	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(1))

	placeholder := image.NewRGBA(image.Rect(0, 0, 200, 120))
	v.prevPhoto = NewPhoto(Data(images.EncodePNG(placeholder)))
	v.frameLabel = win.Label(Image(v.prevPhoto), Background("#000000"))
	Grid(v.frameLabel, Row(0), Column(0), Sticky("nsew"))

	if controlsVisible {
		v.openOverlay(originX, originY)
		Bind(win, "<Enter>", Command(func() { v.fadeTo(overlayAlphaHigh) }))
		Bind(win, "<Leave>", Command(func() { v.fadeTo(overlayAlphaLow) }))
	}

	Bind(win, "<KeyPress-h>", Command(v.onToggleH))
	Bind(win, "<KeyPress-v>", Command(v.onToggleV))
	Bind(win, "<Escape>", Command(v.onClose))
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.onClose)
}

// openOverlay builds the flip-toggle overlay as its own small topmost
// toplevel so window alpha can fade it independently of the frame.
func (v *mirrorWindow) openOverlay(originX, originY int) {
	overlay := App.Toplevel(Borderwidth(1))
	overlay.WmTitle("Mirror Controls")
	v.overlay = overlay
	const overlayW, overlayH = 320, 40
	x := originX + (v.targetW-overlayW)/2
	y := originY + v.targetH - overlayH - 24
	WmGeometry(overlay.Window, fmt.Sprintf("%dx%d+%d+%d", overlayW, overlayH, x, y))
	WmAttributes(overlay.Window, "-topmost", 1)
	WmAttributes(overlay.Window, "-toolwindow", true)
	v.overlayAlpha = overlayAlphaLow
	v.fadeTarget = overlayAlphaLow
	WmAttributes(overlay.Window, "-alpha", v.overlayAlpha)

	flipH := overlay.Button(Txt("Flip ↔ [h]"), Style(theme.StyleToggleButton), Command(v.onToggleH))
	Grid(flipH, Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	flipV := overlay.Button(Txt("Flip ↕ [v]"), Style(theme.StyleToggleButton), Command(v.onToggleV))
	Grid(flipV, Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	closeBtn := overlay.Button(Txt("Close [Esc]"), Style(theme.StyleDangerButton), Command(v.onClose))
	Grid(closeBtn, Row(0), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	Bind(overlay, "<Enter>", Command(func() { v.fadeTo(overlayAlphaHigh) }))
	Bind(overlay, "<Leave>", Command(func() { v.fadeTo(overlayAlphaLow) }))
}

// fadeTo animates the overlay alpha toward target with TclAfter steps.
func (v *mirrorWindow) fadeTo(target float64) {
	if v == nil || v.overlay == nil {
		return
	}
	v.fadeTarget = target
	if v.fadeAfterID != "" {
		TclAfterCancel(v.fadeAfterID)
		v.fadeAfterID = ""
	}
	v.fadeStep()
}

func (v *mirrorWindow) fadeStep() {
	if v.overlay == nil {
		return
	}
	diff := v.fadeTarget - v.overlayAlpha
	if diff > -overlayFadeStep && diff < overlayFadeStep {
		v.overlayAlpha = v.fadeTarget
		WmAttributes(v.overlay.Window, "-alpha", v.overlayAlpha)
		v.fadeAfterID = ""
		return
	}
	if diff > 0 {
		v.overlayAlpha += overlayFadeStep
	} else {
		v.overlayAlpha -= overlayFadeStep
	}
	WmAttributes(v.overlay.Window, "-alpha", v.overlayAlpha)
	v.fadeAfterID = TclAfter(overlayFadeTick, func() { v.fadeStep() })
}

func (v *mirrorWindow) ShowFrame(img image.Image) {
	if v == nil || v.frameLabel == nil || img == nil {
		return
	}
	w, h := v.targetW, v.targetH
	if w <= 0 || h <= 0 {
		w, h = defaultMirrorW, defaultMirrorH
	}
	scaled := images.ScaleToFit(img, w, h)
	pngBytes := images.EncodePNG(scaled)
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	newPhoto := NewPhoto(Data(pngBytes))
	v.prevPhoto = newPhoto
	v.frameLabel.Configure(Image(newPhoto))
}

func (v *mirrorWindow) Close() {
	if v == nil || v.win == nil {
		return
	}
	if v.fadeAfterID != "" {
		TclAfterCancel(v.fadeAfterID)
		v.fadeAfterID = ""
	}
	if v.overlay != nil {
		Destroy(v.overlay)
		v.overlay = nil
	}
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
		v.prevPhoto = nil
	}
	Destroy(v.win)
	v.win = nil
	v.frameLabel = nil
}

// computeScreenSize returns the primary screen dimensions used for centered
// placement. Static values for now; should be replaced with Tk winfo queries.
func computeScreenSize() (int, int) {
	return 1920, 1080
}
