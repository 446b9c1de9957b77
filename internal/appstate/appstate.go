// Package appstate runs the shiny window that hosts a drawing session: a
// tool column, the canvas, a status bar and in-window prompts.
package appstate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/example/sketchpad/internal/canvas"
	"github.com/example/sketchpad/internal/clipboard"
	"github.com/example/sketchpad/internal/display"
	"github.com/example/sketchpad/internal/editor"
	"github.com/example/sketchpad/internal/imageio"
	"github.com/example/sketchpad/internal/notify"
	"github.com/example/sketchpad/internal/render"
	"github.com/example/sketchpad/internal/theme"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// AppState holds what a window session starts from.
type AppState struct {
	Canvas *canvas.Canvas
	Tools  *editor.ToolState
	Theme  *theme.Theme

	// Output seeds the directory offered by the save dialog.
	Output   string
	Notifier *notify.Notifier
	Title    string

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithCanvas sets the canvas being edited.
func WithCanvas(c *canvas.Canvas) Option { return func(a *AppState) { a.Canvas = c } }

// WithTools sets the initial pen, background, width and font.
func WithTools(st *editor.ToolState) Option { return func(a *AppState) { a.Tools = st } }

// WithTheme sets the chrome colors.
func WithTheme(th *theme.Theme) Option { return func(a *AppState) { a.Theme = th } }

// WithOutput sets the path the save dialog starts from.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithNotifier enables desktop notifications after saves and copies.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState. Without WithCanvas the session starts on a
// blank canvas of the default size.
func New(opts ...Option) (*AppState, error) {
	a := &AppState{Title: "Sketchpad"}
	for _, o := range opts {
		o(a)
	}
	white := color.RGBA{255, 255, 255, 255}
	if a.Tools == nil {
		a.Tools = editor.NewToolState(color.RGBA{0, 0, 0, 255}, white, editor.DefaultBrushWidth, canvas.DefaultFont)
	}
	if a.Canvas == nil {
		c, err := canvas.New(600, 400, a.Tools.Background)
		if err != nil {
			return nil, err
		}
		a.Canvas = c
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	return a, nil
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main runs the window on an existing screen until it is closed.
func (a *AppState) Main(s screen.Screen) {
	defer a.notifyClose()

	palette := canvas.Palette()
	sz := windowSize(a.Canvas.Bounds().Size(), len(palette))
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: sz.X, Height: sz.Y, Title: a.Title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	u := newUI(a, w, sz, palette)
	p := newPainter(s, w, newRenderer(a.Theme, palette))
	u.submit = p.submit
	defer p.stop()
	defer u.saves.Wait()

	u.run()
}

// eventWindow is the part of screen.Window the event loop uses.
type eventWindow interface {
	NextEvent() interface{}
	Send(event interface{})
}

type saveDoneEvent struct {
	path string
	err  error
}

var errSaveInProgress = errors.New("a save is already in progress")

// ui is the state owned by the event loop.
type ui struct {
	app     *AppState
	w       eventWindow
	width   int
	height  int
	palette []canvas.PaletteColor

	ctl     *editor.Controller
	disp    *editor.Dispatcher
	dialogs *windowDialogs
	mirror  *display.Mirror
	shadow  render.ShadowCache
	slider  Slider
	clip    clipboardText

	hover      hoverState
	pointer    image.Point
	pointerIn  bool
	canvasHeld bool

	message      string
	messageUntil time.Time
	modal        *modal
	frame        *image.RGBA

	saving  bool
	saves   sync.WaitGroup
	closing bool
	submit  func(paintState)
}

func newUI(a *AppState, w eventWindow, sz image.Point, palette []canvas.PaletteColor) *ui {
	u := &ui{
		app:     a,
		w:       w,
		width:   sz.X,
		height:  sz.Y,
		palette: palette,
		hover:   noHover(),
		slider:  Slider{Min: editor.MinBrushWidth, Max: editor.MaxBrushWidth},
		clip:    clipboardText{read: clipboard.ReadText, write: clipboard.WriteText},
	}
	opts := render.DefaultShadowOptions()
	opts.Color = a.Theme.CanvasShadow
	u.shadow = render.ShadowCache{Options: opts}

	u.mirror = display.NewMirror(a.Canvas.Width(), a.Canvas.Height(), a.Tools.Background)
	u.ctl = editor.NewController(a.Canvas, u.mirror, a.Tools)
	u.ctl.OnError = func(err error) {
		log.Printf("sketchpad: %v", err)
		u.setMessage(err.Error())
	}

	u.dialogs = newWindowDialogs(u)
	if a.Output != "" {
		u.dialogs.startDir = filepath.Dir(a.Output)
	}
	u.disp = editor.NewDispatcher(u.ctl, u.dialogs)
	u.disp.Clipboard = clipboard.System{}
	u.disp.Save = u.saveAsync
	u.disp.OnCopied = func(img image.Image) {
		u.setMessage("canvas copied to clipboard")
		a.Notifier.Copy("canvas", img)
	}
	u.disp.OnQuit = func() { u.closing = true }
	return u
}

func (u *ui) run() {
	for !u.closing {
		u.handle(u.w.NextEvent())
	}
}

func (u *ui) handle(e interface{}) {
	switch e := e.(type) {
	case lifecycle.Event:
		if e.To == lifecycle.StageDead {
			u.closing = true
		}
	case size.Event:
		u.width, u.height = e.WidthPx, e.HeightPx
		u.requestPaint()
	case paint.Event:
		u.paint()
	case saveDoneEvent:
		u.finishSave(e)
	case mouse.Event:
		u.mouse(e)
	case key.Event:
		if e.Direction != key.DirPress {
			return
		}
		if a, ok := u.disp.Lookup(e.Rune, e.Code, e.Modifiers); ok {
			u.do(a)
		}
	}
}

// do runs a. Failures were already shown by the dispatcher.
func (u *ui) do(a editor.Action) {
	_ = u.disp.Do(a)
	u.requestPaint()
}

func (u *ui) requestPaint() { u.w.Send(paint.Event{}) }

func (u *ui) setMessage(msg string) {
	u.message = msg
	u.messageUntil = time.Now().Add(2 * time.Second)
}

func (u *ui) layout() layout {
	l := computeLayout(u.width, u.height, u.ctl.Canvas.Bounds().Size(), len(u.palette))
	u.slider.Rect = l.slider
	return l
}

func (u *ui) paint() {
	if u.submit != nil {
		u.submit(u.paintState())
	}
}

func (u *ui) paintState() paintState {
	if u.frame == nil || u.mirror.Dirty() {
		src := u.mirror.Image()
		u.frame = image.NewRGBA(src.Bounds())
		draw.Draw(u.frame, src.Bounds(), src, src.Bounds().Min, draw.Src)
		u.mirror.MarkClean()
	}
	st := u.ctl.State
	ps := paintState{
		width:        u.width,
		height:       u.height,
		layout:       u.layout(),
		slider:       u.slider,
		canvas:       u.frame,
		shadow:       u.shadow.For(u.frame.Bounds().Size()),
		tool:         st.Tool,
		pen:          st.PenColor,
		background:   st.Background,
		brushWidth:   st.BrushWidth,
		fontSpec:     st.FontSpec,
		pointer:      u.pointer,
		pointerIn:    u.pointerIn,
		saving:       u.saving,
		hover:        u.hover,
		message:      u.message,
		messageUntil: u.messageUntil,
	}
	if st.Pending != nil {
		ps.pendingText = st.Pending.Text
	}
	if u.modal != nil {
		ps.modal = u.modal.view()
	}
	return ps
}

func (u *ui) hoverAt(l layout, p image.Point) hoverState {
	h := noHover()
	h.tool = hit(l.tools, p)
	h.palette = hit(l.palette, p)
	h.preset = hit(l.presets, p)
	h.status = hit(l.status, p)
	h.pen = p.In(l.pen)
	h.background = p.In(l.background)
	h.slider = p.In(l.slider.Inset(-knobRadius))
	return h
}

func (u *ui) mouse(e mouse.Event) {
	p := image.Pt(int(e.X), int(e.Y))
	l := u.layout()
	u.pointer = p
	u.pointerIn = p.In(l.canvas)
	defer u.requestPaint()

	left := e.Button == mouse.ButtonLeft
	if u.canvasHeld {
		cp := l.toCanvas(p)
		switch {
		case e.Direction == mouse.DirNone:
			u.mirror.Drag(cp)
		case e.Direction == mouse.DirRelease && left:
			u.canvasHeld = false
			u.mirror.Release(cp)
		}
		return
	}
	if u.slider.Active() {
		switch e.Direction {
		case mouse.DirNone:
			if v, ok := u.slider.Drag(p); ok {
				u.ctl.SetBrushWidth(v)
			}
		case mouse.DirRelease:
			u.slider.Release()
		}
		return
	}
	if e.Direction == mouse.DirStep {
		switch e.Button {
		case mouse.ButtonWheelUp:
			u.do(editor.ActionThicker)
		case mouse.ButtonWheelDown:
			u.do(editor.ActionThinner)
		}
		return
	}

	if u.message != "" && time.Now().Before(u.messageUntil) && e.Direction == mouse.DirPress {
		u.messageUntil = time.Time{}
		return
	}

	u.hover = u.hoverAt(l, p)
	if !left || e.Direction != mouse.DirPress {
		return
	}
	h := u.hover
	switch {
	case u.pointerIn:
		u.canvasHeld = true
		u.mirror.Press(l.toCanvas(p))
	case h.tool >= 0:
		u.do(toolbarItems[h.tool].action)
	case h.palette >= 0:
		u.ctl.ChooseColor(editor.Chosen(u.palette[h.palette].Color))
	case h.pen:
		u.do(editor.ActionPickColor)
	case h.background:
		u.do(editor.ActionPickBackground)
	case h.preset >= 0:
		u.ctl.SetBrushWidth(editor.BrushPresets[h.preset])
	case h.status >= 0:
		u.do(statusItems[h.status].action)
	default:
		if v, ok := u.slider.Press(p); ok {
			u.ctl.SetBrushWidth(v)
		}
	}
}

// runModal processes events until m closes. Pointer and key input go to
// the prompt; everything else is handled as usual.
func (u *ui) runModal(m *modal) {
	u.modal = m
	u.hover = noHover()
	u.requestPaint()
	for !m.done {
		switch e := u.w.NextEvent().(type) {
		case key.Event:
			if e.Direction == key.DirPress {
				m.key(e, u.clip)
				u.requestPaint()
			}
		case mouse.Event:
			if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
				u.modalClick(m, image.Pt(int(e.X), int(e.Y)))
				u.requestPaint()
			}
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				u.closing = true
				m.cancel()
			}
		default:
			u.handle(e)
		}
	}
	u.modal = nil
	u.requestPaint()
}

func (u *ui) modalClick(m *modal, p image.Point) {
	ml := computeModalLayout(u.width, u.height, m.kind, len(u.palette))
	if m.kind == modalColor {
		if i := hit(ml.swatches, p); i >= 0 {
			m.pick(u.palette[i].Color)
			return
		}
	}
	if !p.In(ml.box) {
		m.cancel()
	}
}

// saveAsync writes a snapshot off the event loop and reports back with a
// saveDoneEvent.
func (u *ui) saveAsync(path string) error {
	if u.saving {
		return errSaveInProgress
	}
	u.saving = true
	snap := u.ctl.Canvas.Snapshot()
	u.saves.Add(1)
	go func() {
		defer u.saves.Done()
		saved, err := imageio.SaveSnapshot(context.Background(), snap, path)
		u.w.Send(saveDoneEvent{path: saved, err: err})
	}()
	return nil
}

func (u *ui) finishSave(e saveDoneEvent) {
	u.saving = false
	defer u.requestPaint()
	if e.err != nil {
		u.dialogs.ShowError(e.err)
		return
	}
	u.dialogs.ShowInfo(fmt.Sprintf("Image saved to %s", e.path))
	u.app.Notifier.Save(e.path)
}
