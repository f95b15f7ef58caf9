// Package config holds the options of a faux-code run.
package config

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"runtime"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/ozanyetkin/faux-code/block"
	"github.com/ozanyetkin/faux-code/layout"
	"github.com/ozanyetkin/faux-code/text"
)

// Options are the options of a run.
type Options struct {
	// Theme is the name of the color theme: light or dark.
	Theme string

	// FontSize is the font size in pixels.
	FontSize float64

	// LineSpacing is the line height as a multiple of the font height.
	LineSpacing float64

	Cap block.Cap

	// Margin is the block padding in pixels, before scaling.
	Margin float64

	LineNumbers bool

	// LineNumberOffset is added to every line number;
	// the first line is numbered LineNumberOffset+1.
	LineNumberOffset int

	// TabWidth is the number of columns between tab stops.
	TabWidth int

	// MaxLines and MaxLineWidth truncate each file
	// to at most MaxLines lines of at most MaxLineWidth runes.
	// Values less than 1 mean no limit.
	MaxLines, MaxLineWidth int

	// Cols is the number of grid columns; 0 picks a near-square grid.
	Cols int

	Mode layout.Mode

	// Width and Height are the output size in pixels.
	Width, Height int

	// Background is the canvas color.
	// If nil, the theme's canvas color is used.
	Background color.Color

	// Limit is the maximum number of discovered files; 0 is no limit.
	Limit int

	// Workers is the number of files processed concurrently.
	// Values less than 1 mean runtime.NumCPU().
	Workers int

	// Output is the output file; a .svg suffix writes SVG, others PNG.
	Output string
}

// Default returns the default options.
func Default() Options {
	return Options{
		Theme:        text.Dark.Name,
		FontSize:     14,
		LineSpacing:  1.4,
		Cap:          block.Round,
		Margin:       16,
		TabWidth:     block.DefaultTabWidth,
		MaxLines:     40,
		MaxLineWidth: 120,
		Mode:         layout.Centered,
		Width:        1920,
		Height:       1080,
		Limit:        12,
		Workers:      runtime.NumCPU(),
		Output:       "out.png",
	}
}

// Flags binds the options to flags in fs.
// The current values are the flag defaults.
func (o *Options) Flags(fs *flag.FlagSet) {
	fs.StringVar(&o.Theme, "theme", o.Theme, "color theme: light or dark")
	fs.Float64Var(&o.FontSize, "font-size", o.FontSize, "font size in pixels")
	fs.Float64Var(&o.LineSpacing, "line-spacing", o.LineSpacing, "line height as a multiple of the font height")
	fs.Var(&o.Cap, "cap", "stroke cap: round or square")
	fs.Float64Var(&o.Margin, "margin", o.Margin, "block margin in pixels")
	fs.BoolVar(&o.LineNumbers, "line-numbers", o.LineNumbers, "draw line numbers")
	fs.IntVar(&o.LineNumberOffset, "line-number-offset", o.LineNumberOffset, "number lines starting after this offset")
	fs.IntVar(&o.TabWidth, "tab-width", o.TabWidth, "columns between tab stops")
	fs.IntVar(&o.MaxLines, "max-lines", o.MaxLines, "maximum lines per file; 0 is no limit")
	fs.IntVar(&o.MaxLineWidth, "max-line-width", o.MaxLineWidth, "maximum runes per line; 0 is no limit")
	fs.IntVar(&o.Cols, "cols", o.Cols, "grid columns; 0 picks a near-square grid")
	fs.Var(&o.Mode, "layout", "layout mode: centered or edge-to-edge")
	fs.IntVar(&o.Width, "width", o.Width, "output width in pixels")
	fs.IntVar(&o.Height, "height", o.Height, "output height in pixels")
	fs.Var(colorValue{&o.Background}, "bg", "background color as #rgb, #rrggbb, or #rrggbbaa; default is the theme's")
	fs.IntVar(&o.Limit, "limit", o.Limit, "maximum number of discovered files; 0 is no limit")
	fs.IntVar(&o.Workers, "workers", o.Workers, "files processed concurrently")
	fs.StringVar(&o.Output, "o", o.Output, "output file; .svg writes SVG, otherwise PNG")
}

// Validate returns an error for every invalid option, or nil.
// The error is a *multierror.Error.
func (o Options) Validate() error {
	var errs *multierror.Error
	if _, err := text.ThemeNamed(o.Theme); err != nil {
		errs = multierror.Append(errs, err)
	}
	if !(o.FontSize > 0) {
		errs = multierror.Append(errs, fmt.Errorf("font size %v is not positive", o.FontSize))
	}
	if !(o.LineSpacing > 0) {
		errs = multierror.Append(errs, fmt.Errorf("line spacing %v is not positive", o.LineSpacing))
	}
	if o.Margin < 0 {
		errs = multierror.Append(errs, fmt.Errorf("margin %v is negative", o.Margin))
	}
	if o.Width < 1 || o.Height < 1 {
		errs = multierror.Append(errs, fmt.Errorf("size %dx%d is not positive", o.Width, o.Height))
	}
	for _, n := range []struct {
		name string
		v    int
	}{
		{"line number offset", o.LineNumberOffset},
		{"tab width", o.TabWidth},
		{"max lines", o.MaxLines},
		{"max line width", o.MaxLineWidth},
		{"cols", o.Cols},
		{"limit", o.Limit},
	} {
		if n.v < 0 {
			errs = multierror.Append(errs, fmt.Errorf("%s %d is negative", n.name, n.v))
		}
	}
	if o.Output == "" {
		errs = multierror.Append(errs, errors.New("no output file"))
	}
	return errs.ErrorOrNil()
}

// Size returns the output size.
func (o Options) Size() image.Point {
	return image.Pt(o.Width, o.Height)
}

// BlockOptions returns the block rendering options for theme.
func (o Options) BlockOptions(theme *text.Theme) block.Options {
	return block.Options{
		Theme:            theme,
		LineSpacing:      o.LineSpacing,
		Cap:              o.Cap,
		Margin:           o.Margin,
		LineNumbers:      o.LineNumbers,
		LineNumberOffset: o.LineNumberOffset,
		TabWidth:         o.TabWidth,
	}
}

// LayoutOptions returns the layout options.
func (o Options) LayoutOptions() layout.Options {
	return layout.Options{Mode: o.Mode, Cols: o.Cols}
}

// ParseColor parses a color in #rgb, #rrggbb, or #rrggbbaa form.
// The leading # is optional.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return color.NRGBA{}, fmt.Errorf("bad color %q: want #rgb, #rrggbb, or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// FormatColor returns c in #rrggbb form,
// or #rrggbbaa if it is not opaque.
func FormatColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xFF {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// colorValue is a flag.Value for an optional color.
type colorValue struct{ c *color.Color }

func (v colorValue) String() string {
	if v.c == nil || *v.c == nil {
		return ""
	}
	return FormatColor(*v.c)
}

func (v colorValue) Set(s string) error {
	c, err := ParseColor(s)
	if err != nil {
		return err
	}
	*v.c = c
	return nil
}
