package editor

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"unicode"

	"github.com/example/sketchpad/internal/imageio"
	"golang.org/x/mobile/event/key"
)

// Action names a user command that buttons, menus and shortcuts share.
type Action string

const (
	ActionSave           Action = "save"
	ActionOpen           Action = "open"
	ActionPaste          Action = "paste"
	ActionCopy           Action = "copy"
	ActionClear          Action = "clear"
	ActionResize         Action = "resize"
	ActionPickBrush      Action = "brush"
	ActionPickEraser     Action = "eraser"
	ActionPickColor      Action = "color"
	ActionPickBackground Action = "background"
	ActionPicker         Action = "picker"
	ActionInsertText     Action = "text"
	ActionThinner        Action = "thinner"
	ActionThicker        Action = "thicker"
	ActionQuit           Action = "quit"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

func (k KeyShortcut) String() string {
	prefix := ""
	if k.Modifiers&key.ModControl != 0 {
		prefix = "Ctrl+"
	}
	switch {
	case k.Rune > 0:
		return prefix + string(unicode.ToUpper(k.Rune))
	case k.Code == key.CodeEscape:
		return prefix + "Esc"
	case k.Code == key.CodeReturnEnter:
		return prefix + "Enter"
	default:
		return prefix + fmt.Sprintf("%v", k.Code)
	}
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// Shortcuts is a helper to satisfy KeyboardShortcuts with a literal.
type Shortcuts []KeyShortcut

func (s Shortcuts) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// Dialogs are the modal collaborators an action may consult. Every method
// blocks until the user answers. Dismissal is reported as ErrCancelled, an
// empty path, or a ColorResult with OK false.
type Dialogs interface {
	OpenPath() (string, error)
	SavePath() (string, error)
	ChooseColor(title string, initial color.RGBA) ColorResult
	PromptText(title, initial string) (string, error)
	ShowError(err error)
	ShowInfo(msg string)
}

// Clipboard exchanges images with the system clipboard.
type Clipboard interface {
	ReadImage() (image.Image, error)
	WriteImage(img image.Image) error
}

var errNoClipboard = errors.New("clipboard not available")

// Dispatcher is the table from actions to handlers over a Controller.
type Dispatcher struct {
	ctl     *Controller
	dialogs Dialogs

	// Clipboard backs ActionCopy and ActionPaste when set.
	Clipboard Clipboard
	// Save replaces the synchronous export, for example with a background
	// write of a snapshot.
	Save func(path string) error
	// OnSaved runs after a synchronous save succeeded.
	OnSaved func(path string)
	// OnCopied receives the snapshot that was placed on the clipboard.
	OnCopied func(img image.Image)
	// OnQuit runs for ActionQuit.
	OnQuit func()

	actions map[Action]func() error
	keys    map[KeyShortcut]Action
	bound   map[Action][]KeyShortcut
	order   []Action
}

// NewDispatcher returns a dispatcher with the default bindings registered.
func NewDispatcher(ctl *Controller, dialogs Dialogs) *Dispatcher {
	d := &Dispatcher{
		ctl:     ctl,
		dialogs: dialogs,
		actions: map[Action]func() error{},
		keys:    map[KeyShortcut]Action{},
		bound:   map[Action][]KeyShortcut{},
	}
	d.registerDefaults()
	return d
}

// Controller returns the controller the actions operate on.
func (d *Dispatcher) Controller() *Controller { return d.ctl }

// Register binds fn to a, replacing any previous handler, and maps keys to
// it. keys may be nil.
func (d *Dispatcher) Register(a Action, keys KeyboardShortcuts, fn func() error) {
	if _, exists := d.actions[a]; !exists {
		d.order = append(d.order, a)
	}
	d.actions[a] = fn
	if keys == nil {
		return
	}
	for _, sc := range keys.KeyboardShortcuts() {
		d.keys[sc] = a
		d.bound[a] = append(d.bound[a], sc)
	}
}

// Actions lists registered actions in registration order.
func (d *Dispatcher) Actions() []Action {
	out := make([]Action, len(d.order))
	copy(out, d.order)
	return out
}

// ShortcutsFor returns the keys bound to a.
func (d *Dispatcher) ShortcutsFor(a Action) []KeyShortcut { return d.bound[a] }

// Lookup finds the action for a key press. Printable keys match on their
// lower-cased rune, others on their code.
func (d *Dispatcher) Lookup(r rune, code key.Code, mods key.Modifiers) (Action, bool) {
	mods &= key.ModControl | key.ModAlt | key.ModMeta
	if r > 0 && r < 0x20 && mods&key.ModControl != 0 {
		// Some drivers deliver control characters for Ctrl+letter.
		r += 'a' - 1
	}
	if r > 0 {
		if a, ok := d.keys[KeyShortcut{Rune: unicode.ToLower(r), Modifiers: mods}]; ok {
			return a, true
		}
	}
	a, ok := d.keys[KeyShortcut{Code: code, Modifiers: mods}]
	return a, ok
}

// Do runs the handler for a. Dismissed dialogs are silent; any other error
// is shown to the user and returned.
func (d *Dispatcher) Do(a Action) error {
	fn, ok := d.actions[a]
	if !ok {
		return fmt.Errorf("unknown action %q", a)
	}
	err := fn()
	if err == nil || errors.Is(err, ErrCancelled) || errors.Is(err, imageio.ErrNoPath) {
		return nil
	}
	if d.dialogs != nil {
		d.dialogs.ShowError(err)
	}
	return err
}

func (d *Dispatcher) registerDefaults() {
	ctl := d.ctl
	ctrl := func(r rune) Shortcuts { return Shortcuts{{Rune: r, Modifiers: key.ModControl}} }
	plain := func(r rune) Shortcuts { return Shortcuts{{Rune: r}} }

	d.Register(ActionPickBrush, plain('b'), func() error {
		ctl.SelectBrush()
		return nil
	})
	d.Register(ActionPickEraser, plain('e'), func() error {
		ctl.SelectEraser()
		return nil
	})
	d.Register(ActionPicker, plain('i'), func() error {
		ctl.ArmColorPicker()
		return nil
	})
	d.Register(ActionInsertText, plain('t'), d.insertText)
	d.Register(ActionPickColor, ctrl('k'), func() error {
		ctl.ChooseColor(d.dialogs.ChooseColor("Pen color", ctl.State.PenColor))
		return nil
	})
	d.Register(ActionPickBackground, nil, func() error {
		ctl.ChooseBackground(d.dialogs.ChooseColor("Background color", ctl.State.Background))
		return nil
	})
	d.Register(ActionResize, ctrl('r'), func() error {
		initial := fmt.Sprintf("%d %d", ctl.Canvas.Width(), ctl.Canvas.Height())
		input, err := d.dialogs.PromptText("Canvas size (width height)", initial)
		if err != nil {
			return err
		}
		return ctl.ResizeFromInput(input)
	})
	d.Register(ActionClear, ctrl('n'), func() error {
		ctl.Clear()
		return nil
	})
	d.Register(ActionOpen, ctrl('o'), func() error {
		path, err := d.dialogs.OpenPath()
		if err != nil {
			return err
		}
		return ctl.LoadImage(path)
	})
	d.Register(ActionSave, ctrl('s'), d.save)
	d.Register(ActionPaste, ctrl('v'), func() error {
		if d.Clipboard == nil {
			return errNoClipboard
		}
		img, err := d.Clipboard.ReadImage()
		if err != nil {
			return fmt.Errorf("paste: %w", err)
		}
		ctl.PasteImage(img, image.Point{})
		return nil
	})
	d.Register(ActionCopy, ctrl('c'), func() error {
		if d.Clipboard == nil {
			return errNoClipboard
		}
		snap := ctl.Canvas.Snapshot()
		if err := d.Clipboard.WriteImage(snap); err != nil {
			return fmt.Errorf("copy: %w", err)
		}
		if d.OnCopied != nil {
			d.OnCopied(snap)
		}
		return nil
	})
	d.Register(ActionThinner, plain('['), func() error {
		ctl.SetBrushWidth(ctl.State.BrushWidth - 1)
		return nil
	})
	d.Register(ActionThicker, plain(']'), func() error {
		ctl.SetBrushWidth(ctl.State.BrushWidth + 1)
		return nil
	})
	d.Register(ActionQuit, plain('q'), func() error {
		if d.OnQuit != nil {
			d.OnQuit()
		}
		return nil
	})
}

func (d *Dispatcher) insertText() error {
	text, err := d.dialogs.PromptText("Text to insert", "")
	if err != nil {
		return err
	}
	if text == "" {
		return ErrCancelled
	}
	spec, err := d.dialogs.PromptText("Font (family size)", d.ctl.State.FontSpec)
	if err != nil {
		return err
	}
	return d.ctl.BeginTextInsertion(text, spec)
}

func (d *Dispatcher) save() error {
	path, err := d.dialogs.SavePath()
	if err != nil {
		return err
	}
	if path == "" {
		return ErrCancelled
	}
	if d.Save != nil {
		return d.Save(path)
	}
	saved, err := d.ctl.SaveCanvas(path)
	if err != nil {
		return err
	}
	d.dialogs.ShowInfo(fmt.Sprintf("Image saved to %s", saved))
	if d.OnSaved != nil {
		d.OnSaved(saved)
	}
	return nil
}
