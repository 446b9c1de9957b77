package appstate

import (
	"image"

	"github.com/example/sketchpad/internal/editor"
)

const (
	toolbarWidth = 112
	statusHeight = 24
	canvasMargin = 16
	buttonHeight = 22
	swatchSize   = 16
	swatchPitch  = 18
	sliderLabel  = 16
)

// toolbarItem is one button of the tool column.
type toolbarItem struct {
	label  string
	action editor.Action
	// tool is the mode the button shows as active, if any.
	tool   editor.Tool
	isTool bool
}

var toolbarItems = []toolbarItem{
	{"B:Brush", editor.ActionPickBrush, editor.ToolBrush, true},
	{"E:Eraser", editor.ActionPickEraser, editor.ToolEraser, true},
	{"I:Picker", editor.ActionPicker, editor.ToolColorPicker, true},
	{"T:Text", editor.ActionInsertText, editor.ToolTextPlacement, true},
	{"^K:Color", editor.ActionPickColor, 0, false},
	{"Background", editor.ActionPickBackground, 0, false},
	{"^R:Size", editor.ActionResize, 0, false},
	{"^N:Clear", editor.ActionClear, 0, false},
	{"^O:Open", editor.ActionOpen, 0, false},
	{"^S:Save", editor.ActionSave, 0, false},
}

type statusItem struct {
	label  string
	action editor.Action
}

var statusItems = []statusItem{
	{"^V:paste", editor.ActionPaste},
	{"^C:copy", editor.ActionCopy},
	{"[:thinner", editor.ActionThinner},
	{"]:thicker", editor.ActionThicker},
	{"Q:quit", editor.ActionQuit},
}

// layout places every widget for one window size and canvas size.
type layout struct {
	tools      []image.Rectangle
	palette    []image.Rectangle
	pen        image.Rectangle
	background image.Rectangle
	slider     image.Rectangle
	presets    []image.Rectangle
	status     []image.Rectangle
	statusBar  image.Rectangle

	// canvas is where the canvas is drawn 1:1, in window coordinates.
	canvas image.Rectangle

	// toolbarBottom is the lowest pixel row used by the tool column.
	toolbarBottom int
}

func computeLayout(width, height int, canvasSize image.Point, swatches int) layout {
	var l layout
	y := 4
	for range toolbarItems {
		l.tools = append(l.tools, image.Rect(4, y, toolbarWidth-4, y+buttonHeight))
		y += buttonHeight + 2
	}

	y += 6
	cols := (toolbarWidth - 8) / swatchPitch
	for i := 0; i < swatches; i++ {
		x := 4 + (i%cols)*swatchPitch
		sy := y + (i/cols)*swatchPitch
		l.palette = append(l.palette, image.Rect(x, sy, x+swatchSize, sy+swatchSize))
	}
	y += (swatches+cols-1)/cols*swatchPitch + 6

	half := (toolbarWidth - 12) / 2
	l.pen = image.Rect(4, y+sliderLabel, 4+half, y+sliderLabel+20)
	l.background = image.Rect(8+half, y+sliderLabel, 8+2*half, y+sliderLabel+20)
	y = l.pen.Max.Y + 6

	y += sliderLabel
	l.slider = image.Rect(12, y, toolbarWidth-12, y+12)
	y += 12 + 6

	pw := (toolbarWidth - 8) / len(editor.BrushPresets)
	for i := range editor.BrushPresets {
		l.presets = append(l.presets, image.Rect(4+i*pw, y, 4+(i+1)*pw-2, y+18))
	}
	l.toolbarBottom = y + 18 + 4

	l.statusBar = image.Rect(0, height-statusHeight, width, height)
	x := toolbarWidth + 4
	for _, it := range statusItems {
		w := labelWidth(it.label)
		r := image.Rect(x-2, height-statusHeight+4, x+w+2, height-2)
		l.status = append(l.status, r)
		x = r.Max.X + 8
	}

	origin := image.Pt(toolbarWidth+canvasMargin, canvasMargin)
	l.canvas = image.Rectangle{Min: origin, Max: origin.Add(canvasSize)}
	return l
}

// toCanvas converts a window position into canvas coordinates.
func (l layout) toCanvas(p image.Point) image.Point { return p.Sub(l.canvas.Min) }

// windowSize is the smallest window that fits the canvas and the toolbar.
func windowSize(canvasSize image.Point, swatches int) image.Point {
	l := computeLayout(0, 0, canvasSize, swatches)
	h := max(l.canvas.Max.Y+canvasMargin, l.toolbarBottom)
	return image.Pt(l.canvas.Max.X+canvasMargin, h+statusHeight)
}

func hit(rects []image.Rectangle, p image.Point) int {
	for i, r := range rects {
		if p.In(r) {
			return i
		}
	}
	return -1
}

// modalLayout places the in-window prompt.
type modalLayout struct {
	box      image.Rectangle
	input    image.Rectangle
	preview  image.Rectangle
	swatches []image.Rectangle
}

const (
	modalWidth   = 380
	modalColumns = 8
)

func computeModalLayout(width, height int, kind modalKind, swatches int) modalLayout {
	h := 96
	if kind == modalColor {
		h += (swatches+modalColumns-1)/modalColumns*swatchPitch + 8
	}
	x0 := (width - modalWidth) / 2
	y0 := (height - h) / 2
	m := modalLayout{box: image.Rect(x0, y0, x0+modalWidth, y0+h)}
	m.input = image.Rect(x0+12, y0+30, x0+modalWidth-12, y0+54)
	if kind != modalColor {
		return m
	}
	m.preview = image.Rect(m.input.Max.X-24, m.input.Min.Y, m.input.Max.X, m.input.Max.Y)
	m.input.Max.X -= 30
	y := m.input.Max.Y + 8
	for i := 0; i < swatches; i++ {
		x := x0 + 12 + (i%modalColumns)*(swatchPitch+4)
		sy := y + (i/modalColumns)*swatchPitch
		m.swatches = append(m.swatches, image.Rect(x, sy, x+swatchSize, sy+swatchSize))
	}
	return m
}
