package appstate

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/example/sketchpad/internal/editor"
	"github.com/sqweek/dialog"
)

// windowDialogs answers editor prompts with native file dialogs and
// in-window modals.
type windowDialogs struct {
	u        *ui
	startDir string

	// alert shows a blocking error box.
	alert func(title, msg string)
}

var _ editor.Dialogs = (*windowDialogs)(nil)

func newWindowDialogs(u *ui) *windowDialogs {
	return &windowDialogs{
		u: u,
		alert: func(title, msg string) {
			dialog.Message("%s", msg).Title(title).Error()
		},
	}
}

func (d *windowDialogs) OpenPath() (string, error) {
	b := dialog.File().Title("Open image").Filter("Images", "png", "jpg", "jpeg")
	if d.startDir != "" {
		b = b.SetStartDir(d.startDir)
	}
	return d.chosen(b.Load())
}

func (d *windowDialogs) SavePath() (string, error) {
	b := dialog.File().Title("Save image").Filter("PNG image", "png")
	if d.startDir != "" {
		b = b.SetStartDir(d.startDir)
	}
	return d.chosen(b.Save())
}

func (d *windowDialogs) chosen(path string, err error) (string, error) {
	if errors.Is(err, dialog.ErrCancelled) {
		return "", editor.ErrCancelled
	}
	if err != nil {
		return "", fmt.Errorf("file dialog: %w", err)
	}
	d.startDir = filepath.Dir(path)
	return path, nil
}

func (d *windowDialogs) ChooseColor(title string, initial color.RGBA) editor.ColorResult {
	m := newColorModal(title, initial)
	d.u.runModal(m)
	return m.colorResult()
}

func (d *windowDialogs) PromptText(title, initial string) (string, error) {
	m := newTextModal(title, initial)
	d.u.runModal(m)
	if !m.ok {
		return "", editor.ErrCancelled
	}
	return m.value(), nil
}

func (d *windowDialogs) ShowError(err error) {
	log.Printf("sketchpad: %v", err)
	if d.alert != nil {
		d.alert("Sketchpad", err.Error())
	}
}

func (d *windowDialogs) ShowInfo(msg string) {
	log.Print(msg)
	d.u.setMessage(msg)
}
