package appstate

import (
	"image/color"
	"unicode"

	"github.com/example/sketchpad/internal/canvas"
	"github.com/example/sketchpad/internal/editor"
	"golang.org/x/mobile/event/key"
)

type modalKind int

const (
	modalText modalKind = iota
	modalColor
)

// modal is an in-window prompt. While one is open the window routes every
// key and click to it and nothing reaches the canvas.
type modal struct {
	kind  modalKind
	title string
	text  []rune
	err   string

	color color.RGBA
	done  bool
	ok    bool
}

func newTextModal(title, initial string) *modal {
	return &modal{kind: modalText, title: title, text: []rune(initial)}
}

func newColorModal(title string, initial color.RGBA) *modal {
	return &modal{kind: modalColor, title: title, text: []rune(canvas.FormatColor(initial)), color: initial}
}

// clipboardText is the text side of the system clipboard.
type clipboardText struct {
	read  func() (string, error)
	write func(string) error
}

// key applies a key press and reports whether the prompt closed.
func (m *modal) key(e key.Event, clip clipboardText) bool {
	if e.Modifiers&key.ModControl != 0 {
		switch e.Code {
		case key.CodeV:
			if clip.read == nil {
				break
			}
			s, err := clip.read()
			if err != nil {
				m.err = err.Error()
				break
			}
			m.insert(s)
		case key.CodeC:
			if clip.write != nil {
				if err := clip.write(string(m.text)); err != nil {
					m.err = err.Error()
				}
			}
		case key.CodeU:
			m.text = m.text[:0]
		}
		return m.done
	}
	switch e.Code {
	case key.CodeEscape:
		m.cancel()
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		m.accept()
	case key.CodeDeleteBackspace:
		if n := len(m.text); n > 0 {
			m.text = m.text[:n-1]
		}
		m.err = ""
	default:
		if e.Rune > 0 && unicode.IsPrint(e.Rune) {
			m.text = append(m.text, e.Rune)
			m.err = ""
		}
	}
	return m.done
}

// insert appends the first line of s.
func (m *modal) insert(s string) {
	for _, r := range s {
		if r == '\n' || r == '\r' {
			break
		}
		if unicode.IsPrint(r) {
			m.text = append(m.text, r)
		}
	}
	m.err = ""
}

func (m *modal) cancel() {
	m.done, m.ok = true, false
}

func (m *modal) accept() {
	if m.kind == modalColor {
		c, err := canvas.ParseColor(string(m.text))
		if err != nil {
			m.err = err.Error()
			return
		}
		m.color = c
	}
	m.done, m.ok = true, true
}

// pick chooses a swatch in a color prompt.
func (m *modal) pick(c color.RGBA) {
	m.color = c
	m.text = []rune(canvas.FormatColor(c))
	m.done, m.ok = true, true
}

func (m *modal) value() string { return string(m.text) }

func (m *modal) colorResult() editor.ColorResult {
	if !m.ok {
		return editor.ColorResult{}
	}
	return editor.Chosen(m.color)
}

// modalView is the part of a modal the renderer needs.
type modalView struct {
	kind      modalKind
	title     string
	text      string
	err       string
	preview   color.RGBA
	previewOK bool
}

func (m *modal) view() *modalView {
	v := &modalView{kind: m.kind, title: m.title, text: string(m.text), err: m.err}
	if m.kind == modalColor {
		if c, err := canvas.ParseColor(v.text); err == nil {
			v.preview, v.previewOK = c, true
		}
	}
	return v
}
