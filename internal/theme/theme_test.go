package theme

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	th, err := Parse(strings.NewReader(`
// comment
Name: Mine
background: #102030
Accent: #11223380
NotAField: #FFFFFF
garbage line
`))
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "Mine" {
		t.Errorf("name = %q", th.Name)
	}
	if th.Background != (color.RGBA{0x10, 0x20, 0x30, 255}) {
		t.Errorf("background = %v", th.Background)
	}
	if th.Accent != (color.RGBA{0x11, 0x22, 0x33, 0x80}) {
		t.Errorf("accent = %v", th.Accent)
	}
	if th.ButtonText != Default().ButtonText {
		t.Errorf("default not kept: %v", th.ButtonText)
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	for _, in := range []string{"Background: 102030", "Background: #12345", "Background: #GGGGGG"} {
		if _, err := Parse(strings.NewReader(in)); err == nil {
			t.Errorf("Parse(%q) succeeded", in)
		}
	}
}

func TestWriteRoundTrip(t *testing.T) {
	orig := Default()
	orig.Name = "rt"
	orig.Accent = color.RGBA{1, 2, 3, 4}
	var buf bytes.Buffer
	if err := Write(&buf, orig); err != nil {
		t.Fatal(err)
	}
	got, err := Parse(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *orig {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", got, orig)
	}
}

func TestEmbeddedThemesLoad(t *testing.T) {
	names := EmbeddedNames()
	if len(names) < 2 {
		t.Fatalf("embedded themes = %v", names)
	}
	l := &Loader{}
	for _, name := range names {
		th, err := l.Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if th.Name == "" {
			t.Fatalf("theme %q has no name", name)
		}
	}
	dark, _ := l.Load("dark")
	if dark.Background == Default().Background {
		t.Fatal("dark theme did not override background")
	}
}

func TestLoaderSearchOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ocean.theme"), []byte("Name: Ocean\nBackground: #000080\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir, Extra: map[string]*Theme{"inline": {Name: "Inline"}}}
	th, err := l.Load("ocean")
	if err != nil || th.Name != "Ocean" {
		t.Fatalf("config dir theme = %+v, %v", th, err)
	}
	th, err = l.Load("inline")
	if err != nil || th.Name != "Inline" {
		t.Fatalf("inline theme = %+v, %v", th, err)
	}
	th, err = l.Load(filepath.Join(dir, "ocean.theme"))
	if err != nil || th.Name != "Ocean" {
		t.Fatalf("path theme = %+v, %v", th, err)
	}
	if _, err := l.Load("missing"); err == nil {
		t.Fatal("expected error for missing theme")
	}
	if th, err := l.Load(""); err != nil || th.Name != "Default" {
		t.Fatalf("empty name = %+v, %v", th, err)
	}
}
