package notify

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/sketchpad/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func capture(n *Notifier) *[]sent {
	var out []sent
	n.send = func(title, body string, opts platform.Options) error {
		_, err := os.Stat(opts.IconPath)
		out = append(out, sent{title, body, opts, opts.IconPath != "" && err == nil})
		return nil
	}
	return &out
}

func TestDisabledEventsAreSilent(t *testing.T) {
	n := New(DefaultPreferences())
	got := capture(n)
	n.Save("x.png")
	n.Copy("", nil)
	if len(*got) != 0 {
		t.Fatalf("sent %v", *got)
	}
	var nilNotifier *Notifier
	nilNotifier.Save("x.png")
	nilNotifier.Enable(EventSave, true)
}

func TestSaveUsesFileAsIcon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "art.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	got := capture(n)
	n.Save(path)
	if len(*got) != 1 {
		t.Fatalf("sent %d", len(*got))
	}
	s := (*got)[0]
	if s.title != "Sketchpad" || s.body != "Saved "+path || s.opts.IconPath != path {
		t.Fatalf("unexpected notification %+v", s)
	}
	if s.opts.Timeout != 5*time.Second {
		t.Fatalf("timeout = %v", s.opts.Timeout)
	}
}

func TestCopyPreviewIsCleanedUp(t *testing.T) {
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	got := capture(n)
	n.Copy("", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if len(*got) != 1 {
		t.Fatalf("sent %d", len(*got))
	}
	s := (*got)[0]
	if s.body != "Copied canvas to clipboard" || !s.iconExisted {
		t.Fatalf("unexpected notification %+v", s)
	}
	if _, err := os.Stat(s.opts.IconPath); !os.IsNotExist(err) {
		t.Fatalf("preview not removed: %v", err)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("SKETCHPAD_NOTIFY_TITLE", "Doodles")
	t.Setenv("SKETCHPAD_NOTIFY_SAVE_TEXT", "Wrote %s")
	t.Setenv("SKETCHPAD_NOTIFY_TIMEOUT", "2s")
	prefs := LoadPreferences()
	if prefs.Title != "Doodles" || prefs.Events[EventSave].Template != "Wrote %s" || prefs.Timeout != 2*time.Second {
		t.Fatalf("prefs = %+v", prefs)
	}
	if prefs.Events[EventCopy].Template == "" {
		t.Fatal("copy template lost")
	}
}
