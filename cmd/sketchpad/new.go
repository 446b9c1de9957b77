package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/sketchpad/internal/canvas"
	"github.com/example/sketchpad/internal/imageio"
)

// newCmd writes a blank canvas.
type newCmd struct {
	*root
	fs         *flag.FlagSet
	output     string
	width      int
	height     int
	background string
}

func (n *newCmd) FlagSet() *flag.FlagSet {
	return n.fs
}

func parseNewCmd(args []string, r *root) (*newCmd, error) {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	n := &newCmd{root: r, fs: fs}
	fs.Usage = usageFunc(n)
	cc := r.config.Canvas
	fs.StringVar(&n.output, "output", "", "file to write")
	fs.IntVar(&n.width, "width", cc.Width, "canvas width in pixels")
	fs.IntVar(&n.height, "height", cc.Height, "canvas height in pixels")
	fs.StringVar(&n.background, "background", canvas.FormatColor(cc.Background), "background color name or hex value")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if n.output == "" {
		return nil, &UsageError{of: n}
	}
	return n, nil
}

func (n *newCmd) Run() error {
	bg, err := parseColorFlag("background", n.background)
	if err != nil {
		return err
	}
	c, err := canvas.New(n.width, n.height, bg)
	if err != nil {
		return fmt.Errorf("canvas %dx%d: %w", n.width, n.height, err)
	}
	saved, err := imageio.SaveCanvas(c, n.output)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	n.notifier.Save(saved)
	return nil
}
