//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"testing"

	"github.com/jezek/xgb/xproto"
)

func TestReplyFor(t *testing.T) {
	atoms := atomSet{targets: 10, utf8: 11, textPlain: 12, png: 13}
	img := selection{image: []byte{1, 2, 3}}

	r, ok := atoms.replyFor(atoms.targets, img)
	if !ok || r.format != 32 || len(r.data) != 8 {
		t.Fatalf("targets reply = %+v, %v", r, ok)
	}
	if _, ok := atoms.replyFor(atoms.utf8, img); ok {
		t.Fatal("text served from an image selection")
	}
	if r, ok := atoms.replyFor(atoms.png, img); !ok || r.typ != atoms.png || len(r.data) != 3 {
		t.Fatalf("png reply = %+v, %v", r, ok)
	}
	text := selection{text: []byte("hi")}
	if r, ok := atoms.replyFor(xproto.AtomString, text); !ok || r.typ != atoms.utf8 {
		t.Fatalf("STRING reply = %+v, %v", r, ok)
	}
	if _, ok := atoms.replyFor(99, text); ok {
		t.Fatal("unknown target served")
	}
}
