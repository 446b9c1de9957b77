package appstate

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/example/sketchpad/internal/canvas"
	"github.com/example/sketchpad/internal/editor"
	"github.com/example/sketchpad/internal/render"
	"github.com/example/sketchpad/internal/theme"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// hoverState records which widget is under the pointer; -1 means none.
type hoverState struct {
	tool, palette, preset, status int
	pen, background, slider      bool
}

func noHover() hoverState {
	return hoverState{tool: -1, palette: -1, preset: -1, status: -1}
}

// paintState is an immutable description of one frame. The event loop
// builds it and the paint goroutine renders it.
type paintState struct {
	width, height int
	layout        layout
	slider        Slider

	// canvas is a private copy of the display surface.
	canvas *image.RGBA
	shadow render.ShadowResult

	tool        editor.Tool
	pen         color.RGBA
	background  color.RGBA
	brushWidth  int
	fontSpec    string
	pendingText string
	pointer     image.Point
	pointerIn   bool
	saving      bool

	hover        hoverState
	message      string
	messageUntil time.Time
	modal        *modalView
}

// renderer owns the widgets drawn into each frame. It is used from the
// paint goroutine only.
type renderer struct {
	theme     *theme.Theme
	palette   []canvas.PaletteColor
	tools     []*CacheButton
	presets   []*CacheButton
	shortcuts []*CacheButton
	bigFace   font.Face
}

func newRenderer(th *theme.Theme, palette []canvas.PaletteColor) *renderer {
	r := &renderer{theme: th, palette: palette}
	for _, it := range toolbarItems {
		r.tools = append(r.tools, &CacheButton{Button: &ToolButton{label: it.label, theme: th}})
	}
	for _, w := range editor.BrushPresets {
		r.presets = append(r.presets, &CacheButton{Button: &ToolButton{label: fmt.Sprint(w), theme: th}})
	}
	for _, it := range statusItems {
		r.shortcuts = append(r.shortcuts, &CacheButton{Button: &Shortcut{label: it.label, theme: th}})
	}
	if f, err := opentype.Parse(goregular.TTF); err != nil {
		log.Printf("parse font: %v", err)
	} else if face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 20, DPI: 72, Hinting: font.HintingFull}); err != nil {
		log.Printf("font face: %v", err)
	} else {
		r.bigFace = face
	}
	if r.bigFace == nil {
		r.bigFace = labelFace
	}
	return r
}

// draw renders st into dst. It returns false when ctx was cancelled
// before the frame was complete.
func (r *renderer) draw(ctx context.Context, dst *image.RGBA, st paintState) bool {
	th := r.theme
	l := st.layout
	fillRect(dst, dst.Bounds(), th.Background)

	if st.shadow.Image != nil {
		at := l.canvas.Min.Sub(st.shadow.Offset)
		draw.Draw(dst, st.shadow.Image.Bounds().Add(at), st.shadow.Image, image.Point{}, draw.Over)
	}
	if st.canvas != nil {
		draw.Draw(dst, l.canvas, st.canvas, image.Point{}, draw.Src)
	}
	if ctx.Err() != nil {
		return false
	}

	r.drawToolbar(dst, st)
	r.drawStatus(dst, st)
	if ctx.Err() != nil {
		return false
	}

	if st.message != "" && time.Now().Before(st.messageUntil) {
		r.drawMessage(dst, st.message)
	}
	if st.modal != nil {
		r.drawModal(dst, st)
	}
	return ctx.Err() == nil
}

func (r *renderer) drawToolbar(dst *image.RGBA, st paintState) {
	th := r.theme
	l := st.layout
	bar := image.Rect(0, 0, toolbarWidth, st.height-statusHeight)
	fillRect(dst, bar, th.ToolbarBackground)
	fillRect(dst, image.Rect(toolbarWidth-1, 0, toolbarWidth, bar.Max.Y), th.Separator)

	for i, cb := range r.tools {
		cb.SetRect(l.tools[i])
		state := StateDefault
		switch {
		case toolbarItems[i].isTool && toolbarItems[i].tool == st.tool:
			state = StateActive
		case i == st.hover.tool:
			state = StateHover
		}
		cb.Draw(dst, state)
	}

	for i, rect := range l.palette {
		c := r.palette[i].Color
		fillRect(dst, rect, c)
		strokeRect(dst, rect, th.ButtonBorder)
		if c == st.pen {
			strokeRect(dst, rect.Inset(-2), th.Accent)
		}
		if i == st.hover.palette {
			fillRect(dst, rect, color.RGBA{255, 255, 255, 80})
		}
	}

	drawLabel(dst, "Pen", image.Pt(l.pen.Min.X, l.pen.Min.Y-4), th.Foreground)
	drawLabel(dst, "Bg", image.Pt(l.background.Min.X, l.background.Min.Y-4), th.Foreground)
	r.drawSwatch(dst, l.pen, st.pen, st.hover.pen)
	r.drawSwatch(dst, l.background, st.background, st.hover.background)

	drawLabel(dst, fmt.Sprintf("Width: %d", st.brushWidth), image.Pt(4, l.slider.Min.Y-4), th.Foreground)
	st.slider.Draw(dst, st.brushWidth, th, st.hover.slider)

	for i, cb := range r.presets {
		cb.SetRect(l.presets[i])
		state := StateDefault
		switch {
		case editor.BrushPresets[i] == st.brushWidth:
			state = StateActive
		case i == st.hover.preset:
			state = StateHover
		}
		cb.Draw(dst, state)
	}
}

func (r *renderer) drawSwatch(dst *image.RGBA, rect image.Rectangle, c color.RGBA, hover bool) {
	fillRect(dst, rect, c)
	border := r.theme.ButtonBorder
	if hover {
		border = r.theme.Accent
	}
	strokeRect(dst, rect, border)
}

func (r *renderer) drawStatus(dst *image.RGBA, st paintState) {
	th := r.theme
	l := st.layout
	fillRect(dst, l.statusBar, th.StatusBackground)
	for i, cb := range r.shortcuts {
		cb.SetRect(l.status[i])
		state := StateDefault
		if i == st.hover.status {
			state = StateHover
		}
		cb.Draw(dst, state)
	}

	text := fmt.Sprintf("%s %dpx", st.tool, st.brushWidth)
	switch {
	case st.pendingText != "":
		text = fmt.Sprintf("click to place %q (%s)", st.pendingText, st.fontSpec)
	case st.tool == editor.ToolColorPicker:
		text = "click to pick a color"
	}
	if st.saving {
		text += "  saving"
	}
	if st.pointerIn {
		p := l.toCanvas(st.pointer)
		text += fmt.Sprintf("  %d,%d", p.X, p.Y)
	}
	x := l.statusBar.Max.X - labelWidth(text) - 8
	if len(l.status) > 0 {
		x = max(x, l.status[len(l.status)-1].Max.X+16)
	}
	drawLabel(dst, text, image.Pt(x, l.statusBar.Min.Y+16), th.StatusText)
}

func (r *renderer) drawMessage(dst *image.RGBA, msg string) {
	th := r.theme
	face := r.bigFace
	b := dst.Bounds()
	w := font.MeasureString(face, msg).Ceil()
	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	px := (b.Dx() - w) / 2
	py := (b.Dy()-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+w+8, py+descent+8)
	bg := th.PromptBackground
	bg.A = 230
	fillRect(dst, rect, bg)
	strokeRect(dst, rect, th.ButtonBorder)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.PromptText), Face: face, Dot: fixed.P(px, py)}
	d.DrawString(msg)
}

func (r *renderer) drawModal(dst *image.RGBA, st paintState) {
	th := r.theme
	v := st.modal
	fillRect(dst, dst.Bounds(), color.RGBA{0, 0, 0, 96})

	ml := computeModalLayout(st.width, st.height, v.kind, len(r.palette))
	fillRect(dst, ml.box, th.PromptBackground)
	strokeRect(dst, ml.box, th.ButtonBorder)
	drawLabel(dst, v.title, image.Pt(ml.box.Min.X+12, ml.box.Min.Y+20), th.PromptText)

	fillRect(dst, ml.input, color.RGBA{255, 255, 255, 255})
	strokeRect(dst, ml.input, th.Accent)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(color.RGBA{0, 0, 0, 255}), Face: r.bigFace}
	text := v.text + "|"
	// Keep the caret visible by showing the tail of long input.
	for len(text) > 1 && d.MeasureString(text).Ceil() > ml.input.Dx()-8 {
		_, n := utf8.DecodeRuneInString(text)
		text = text[n:]
	}
	d.Dot = fixed.P(ml.input.Min.X+4, ml.input.Max.Y-6)
	d.DrawString(text)

	if v.kind == modalColor {
		if v.previewOK {
			fillRect(dst, ml.preview, v.preview)
		}
		strokeRect(dst, ml.preview, th.ButtonBorder)
		for i, rect := range ml.swatches {
			fillRect(dst, rect, r.palette[i].Color)
			strokeRect(dst, rect, th.ButtonBorder)
		}
	}
	if v.err != "" {
		drawLabel(dst, v.err, image.Pt(ml.box.Min.X+12, ml.box.Max.Y-26), th.Accent)
	}
	drawLabel(dst, "Enter: OK  Esc: cancel  ^V: paste", image.Pt(ml.box.Min.X+12, ml.box.Max.Y-10), th.PromptText)
}

// painter renders frames on a goroutine, cancelling stale frames so the
// newest state wins.
type painter struct {
	*renderer
	s screen.Screen
	w screen.Window

	ch     chan paintState
	mu     sync.Mutex
	cancel context.CancelFunc
	drops  int
	done   chan struct{}
}

func newPainter(s screen.Screen, w screen.Window, r *renderer) *painter {
	p := &painter{renderer: r, s: s, w: w, ch: make(chan paintState, 1), done: make(chan struct{})}
	go p.loop()
	return p
}

func (p *painter) loop() {
	defer close(p.done)
	for st := range p.ch {
		ctx, cancel := context.WithCancel(context.Background())
		p.mu.Lock()
		p.cancel = cancel
		p.mu.Unlock()
		complete := p.present(ctx, st)
		cancel()
		p.mu.Lock()
		p.cancel = nil
		if complete {
			p.drops = 0
		}
		p.mu.Unlock()
	}
}

func (p *painter) present(ctx context.Context, st paintState) bool {
	if st.width <= 0 || st.height <= 0 {
		return true
	}
	b, err := p.s.NewBuffer(image.Pt(st.width, st.height))
	if err != nil {
		log.Printf("new buffer: %v", err)
		return true
	}
	defer b.Release()
	if !p.draw(ctx, b.RGBA(), st) {
		return false
	}
	p.w.Upload(image.Point{}, b, b.Bounds())
	p.w.Publish()
	return true
}

// submit queues st, replacing any frame that has not started yet.
func (p *painter) submit(st paintState) {
	p.mu.Lock()
	if p.cancel != nil && p.drops < frameDropThreshold {
		p.cancel()
		p.drops++
	}
	p.mu.Unlock()
	select {
	case p.ch <- st:
	default:
		select {
		case <-p.ch:
		default:
		}
		p.ch <- st
	}
}

// stop cancels the current frame and waits for the goroutine to exit.
func (p *painter) stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()
	close(p.ch)
	<-p.done
}
