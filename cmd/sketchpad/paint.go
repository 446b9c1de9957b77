package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/example/sketchpad/internal/appstate"
	"github.com/example/sketchpad/internal/canvas"
	"github.com/example/sketchpad/internal/imageio"
)

// paintCmd opens the drawing window.
type paintCmd struct {
	*root
	fs         *flag.FlagSet
	width      int
	height     int
	background string
	color      string
	brush      int
	font       string
	file       string
	output     string
}

func (p *paintCmd) FlagSet() *flag.FlagSet {
	return p.fs
}

func parsePaintCmd(args []string, r *root) (*paintCmd, error) {
	fs := flag.NewFlagSet("paint", flag.ContinueOnError)
	p := &paintCmd{root: r, fs: fs}
	fs.Usage = usageFunc(p)
	cc := r.config.Canvas
	fs.IntVar(&p.width, "width", cc.Width, "canvas width in pixels")
	fs.IntVar(&p.height, "height", cc.Height, "canvas height in pixels")
	fs.StringVar(&p.background, "background", "", "background color name or hex value")
	fs.StringVar(&p.color, "color", "", "initial pen color")
	fs.IntVar(&p.brush, "brush", 0, "initial brush width (1-20)")
	fs.StringVar(&p.font, "font", "", "font for text insertion, e.g. \"Go Bold 24\"")
	fs.StringVar(&p.file, "file", "", "image to open instead of a blank canvas")
	fs.StringVar(&p.output, "output", r.config.SaveDir, "file or directory the save dialog starts in")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: p}
	}
	return p, nil
}

func (p *paintCmd) Run() error {
	st, err := p.toolState(p.background, p.color, p.brush, p.font)
	if err != nil {
		return err
	}
	if _, err := canvas.ParseFont(st.FontSpec); err != nil {
		return fmt.Errorf("font %q: %w", st.FontSpec, err)
	}

	var c *canvas.Canvas
	title := "Sketchpad"
	if p.file != "" {
		img, err := imageio.LoadImage(p.file)
		if err != nil {
			return err
		}
		if c, err = canvas.FromImage(img); err != nil {
			return err
		}
		title = fmt.Sprintf("Sketchpad - %s", filepath.Base(p.file))
		if p.output == "" {
			p.output = p.file
		}
	} else {
		if c, err = canvas.New(p.width, p.height, st.Background); err != nil {
			return fmt.Errorf("canvas %dx%d: %w", p.width, p.height, err)
		}
	}

	app, err := appstate.New(
		appstate.WithCanvas(c),
		appstate.WithTools(st),
		appstate.WithTheme(p.activeTheme),
		appstate.WithOutput(p.output),
		appstate.WithNotifier(p.notifier),
		appstate.WithTitle(title),
	)
	if err != nil {
		return err
	}
	app.Run()
	return nil
}
