package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/example/sketchpad/internal/canvas"
	"github.com/example/sketchpad/internal/clipboard"
	"github.com/example/sketchpad/internal/display"
	"github.com/example/sketchpad/internal/editor"
	"github.com/example/sketchpad/internal/imageio"
)

// drawCmd replays drawing operations through a headless controller.
type drawCmd struct {
	*root
	fs            *flag.FlagSet
	file          string
	output        string
	fromClipboard bool
	toClipboard   bool
	colorSpec     string
	background    string
	width         int
	font          string
	ops           []drawOp

	// stdout receives the result of pick operations.
	stdout io.Writer
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

type drawOp struct {
	name string
	args []string
}

type opShape struct {
	min, max int
	// fixed operations take exactly min arguments, whatever they look like.
	fixed bool
	pairs bool
	usage string
}

var drawOps = map[string]opShape{
	"stroke":     {min: 4, max: -1, pairs: true, usage: "x0 y0 x1 y1 [x y ...]"},
	"erase":      {min: 4, max: -1, pairs: true, usage: "x0 y0 x1 y1 [x y ...]"},
	"text":       {min: 3, max: 3, fixed: true, usage: "x y \"words\""},
	"resize":     {min: 1, max: 2, usage: "W H or WxH"},
	"background": {min: 1, max: 1, fixed: true, usage: "C"},
	"clear":      {min: 0, max: 0},
	"pick":       {min: 2, max: 2, usage: "x y"},
	"paste":      {min: 1, max: 3, usage: "F [x y]"},
}

var drawFlagNames = map[string]struct{}{
	"file":           {},
	"output":         {},
	"from-clipboard": {},
	"from-clip":      {},
	"to-clipboard":   {},
	"to-clip":        {},
	"color":          {},
	"background":     {},
	"width":          {},
	"font":           {},
	"h":              {},
	"help":           {},
}

var drawBoolFlags = map[string]struct{}{
	"from-clipboard": {},
	"from-clip":      {},
	"to-clipboard":   {},
	"to-clip":        {},
	"h":              {},
	"help":           {},
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	d := &drawCmd{root: r, fs: fs, stdout: os.Stdout}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.file, "file", "", "input image file (a blank canvas when empty)")
	fs.StringVar(&d.output, "output", "", "output file path (defaults to input file)")
	fs.BoolVar(&d.fromClipboard, "from-clipboard", false, "read the input image from the clipboard")
	fs.BoolVar(&d.fromClipboard, "from-clip", false, "read the input image from the clipboard (alias)")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&d.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	fs.StringVar(&d.colorSpec, "color", "", "pen color name or hex value")
	fs.StringVar(&d.background, "background", "", "background color for blank canvases, clear and erase")
	fs.IntVar(&d.width, "width", 0, "brush width in pixels (1-20)")
	fs.StringVar(&d.font, "font", "", "font for text operations, e.g. \"Go Mono 14\"")

	flagArgs, positionals, err := splitDrawArgs(args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) < 1 {
		return nil, &UsageError{of: d}
	}
	if d.fromClipboard && d.file != "" {
		return nil, fmt.Errorf("-file and -from-clipboard cannot be combined")
	}
	if d.output == "" {
		d.output = d.file
	}
	if d.output == "" && !d.toClipboard {
		return nil, fmt.Errorf("an output file or -to-clipboard is required")
	}
	if d.ops, err = parseDrawOps(positionals); err != nil {
		return nil, err
	}
	return d, nil
}

// parseDrawOps splits positionals into operations. Variadic operations
// consume arguments up to the next operation name.
func parseDrawOps(positionals []string) ([]drawOp, error) {
	var ops []drawOp
	for i := 0; i < len(positionals); {
		name := strings.ToLower(positionals[i])
		shape, ok := drawOps[name]
		if !ok {
			return nil, fmt.Errorf("unknown operation %q", positionals[i])
		}
		i++
		end := i
		if shape.fixed {
			end = i + shape.min
			if end > len(positionals) {
				return nil, fmt.Errorf("%s requires %s", name, shape.usage)
			}
		} else {
			for end < len(positionals) {
				if _, next := drawOps[strings.ToLower(positionals[end])]; next {
					break
				}
				end++
			}
		}
		args := positionals[i:end]
		n := len(args)
		if n < shape.min || (shape.max >= 0 && n > shape.max) || (shape.pairs && n%2 != 0) {
			if shape.usage == "" {
				return nil, fmt.Errorf("%s takes no arguments", name)
			}
			return nil, fmt.Errorf("%s requires %s", name, shape.usage)
		}
		if name == "paste" && n == 2 {
			return nil, fmt.Errorf("paste requires %s", shape.usage)
		}
		ops = append(ops, drawOp{name: name, args: args})
		i = end
	}
	return ops, nil
}

func expectInts(args []string, name string) ([]int, error) {
	vals := make([]int, len(args))
	for i, raw := range args {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid integer %q", name, raw)
		}
		vals[i] = v
	}
	return vals, nil
}

func expectPoints(args []string, name string) ([]image.Point, error) {
	vals, err := expectInts(args, name)
	if err != nil {
		return nil, err
	}
	pts := make([]image.Point, 0, len(vals)/2)
	for i := 0; i+1 < len(vals); i += 2 {
		pts = append(pts, image.Pt(vals[i], vals[i+1]))
	}
	return pts, nil
}

func parseColorFlag(name, spec string) (color.RGBA, error) {
	c, err := canvas.ParseColor(spec)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("-%s: %w", name, err)
	}
	return c, nil
}

func (d *drawCmd) load(st *editor.ToolState) (*canvas.Canvas, error) {
	switch {
	case d.fromClipboard:
		img, err := clipboard.ReadImage()
		if err != nil {
			return nil, fmt.Errorf("failed to read clipboard image: %w", err)
		}
		return canvas.FromImage(img)
	case d.file != "":
		if _, err := os.Stat(d.file); err == nil {
			img, err := imageio.LoadImage(d.file)
			if err != nil {
				return nil, err
			}
			return canvas.FromImage(img)
		}
	}
	cc := d.config.Canvas
	return canvas.New(cc.Width, cc.Height, st.Background)
}

func (d *drawCmd) Run() error {
	st, err := d.toolState(d.background, d.colorSpec, d.width, d.font)
	if err != nil {
		return err
	}
	c, err := d.load(st)
	if err != nil {
		return err
	}
	surface := display.NewNop()
	ctl := editor.NewController(c, surface, st)
	var failed error
	ctl.OnError = func(err error) { failed = err }

	for _, op := range d.ops {
		if err := d.apply(ctl, surface, op); err != nil {
			return fmt.Errorf("%s: %w", op.name, err)
		}
		if failed != nil {
			return fmt.Errorf("%s: %w", op.name, failed)
		}
	}

	if d.output != "" {
		saved, err := imageio.SaveCanvas(c, d.output)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", saved)
		d.notifier.Save(saved)
	}
	if d.toClipboard {
		snap := c.Snapshot()
		if err := clipboard.WriteImage(snap); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(os.Stderr, "copied to clipboard")
		d.notifier.Copy("drawing", snap)
	}
	return nil
}

// apply runs one operation. Pointer operations go through the surface so
// they take the same path as window input.
func (d *drawCmd) apply(ctl *editor.Controller, surface *display.Nop, op drawOp) error {
	switch op.name {
	case "stroke", "erase":
		pts, err := expectPoints(op.args, op.name)
		if err != nil {
			return err
		}
		if op.name == "erase" {
			ctl.SelectEraser()
		} else {
			ctl.SelectBrush()
		}
		surface.Press(pts[0])
		for _, p := range pts {
			surface.Drag(p)
		}
		surface.Release(pts[len(pts)-1])
	case "text":
		xy, err := expectInts(op.args[:2], op.name)
		if err != nil {
			return err
		}
		if err := ctl.BeginTextInsertion(op.args[2], ctl.State.FontSpec); err != nil {
			return err
		}
		p := image.Pt(xy[0], xy[1])
		surface.Press(p)
		surface.Release(p)
	case "resize":
		return ctl.ResizeFromInput(strings.Join(op.args, " "))
	case "background":
		bg, err := canvas.ParseColor(op.args[0])
		if err != nil {
			return err
		}
		ctl.ChooseBackground(editor.Chosen(bg))
	case "clear":
		ctl.Clear()
	case "pick":
		xy, err := expectInts(op.args, op.name)
		if err != nil {
			return err
		}
		if err := ctl.PickColorAt(image.Pt(xy[0], xy[1])); err != nil {
			return err
		}
		fmt.Fprintln(d.stdout, canvas.FormatColor(ctl.State.PenColor))
	case "paste":
		var offset image.Point
		if len(op.args) == 3 {
			xy, err := expectInts(op.args[1:], op.name)
			if err != nil {
				return err
			}
			offset = image.Pt(xy[0], xy[1])
		}
		img, err := imageio.LoadImage(op.args[0])
		if err != nil {
			return err
		}
		ctl.PasteImage(img, offset)
	default:
		return fmt.Errorf("unknown operation %q", op.name)
	}
	return nil
}

func splitDrawArgs(args []string) ([]string, []string, error) {
	var flags []string
	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		parts := strings.SplitN(name, "=", 2)
		base := strings.ToLower(parts[0])
		if _, ok := drawFlagNames[base]; !ok {
			// Negative coordinates land here.
			positionals = append(positionals, arg)
			continue
		}
		norm := "-" + base
		if len(parts) == 2 {
			flags = append(flags, norm+"="+parts[1])
			continue
		}
		if _, ok := drawBoolFlags[base]; ok {
			flags = append(flags, norm)
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag %s requires a value", arg)
		}
		flags = append(flags, norm, args[i+1])
		i++
	}
	return flags, positionals, nil
}
