package config

import (
	"errors"
	"flag"
	"image/color"
	"io"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/ozanyetkin/faux-code/block"
	"github.com/ozanyetkin/faux-code/layout"
)

func TestDefault(t *testing.T) {
	o := Default()
	if err := o.Validate(); err != nil {
		t.Fatalf("Default().Validate()=%v, want nil", err)
	}
	if o.Width != 1920 || o.Height != 1080 || o.Theme != "dark" || o.FontSize != 14 ||
		o.LineSpacing != 1.4 || o.Cap != block.Round || o.Margin != 16 ||
		o.MaxLines != 40 || o.MaxLineWidth != 120 || o.Cols != 0 ||
		o.Mode != layout.Centered || o.Limit != 12 || o.Output != "out.png" ||
		o.Background != nil {
		t.Errorf("Default()=%+v", o)
	}
}

func TestFlags(t *testing.T) {
	o := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	o.Flags(fs)
	args := []string{
		"-theme", "light",
		"-font-size", "20",
		"-cap", "square",
		"-layout", "edge-to-edge",
		"-line-numbers",
		"-line-number-offset", "99",
		"-cols", "3",
		"-width", "640",
		"-height=480",
		"-bg", "#102030",
		"-o", "x.svg",
		"a.js", "b.py",
	}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%q)=%v", args, err)
	}
	want := Default()
	want.Theme = "light"
	want.FontSize = 20
	want.Cap = block.Square
	want.Mode = layout.EdgeToEdge
	want.LineNumbers = true
	want.LineNumberOffset = 99
	want.Cols = 3
	want.Width, want.Height = 640, 480
	want.Background = color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF}
	want.Output = "x.svg"
	if o != want {
		t.Errorf("parsed %+v, want %+v", o, want)
	}
	if got := fs.Args(); len(got) != 2 || got[0] != "a.js" || got[1] != "b.py" {
		t.Errorf("Args()=%q, want [a.js b.py]", got)
	}
}

func TestFlagsErrors(t *testing.T) {
	for _, args := range [][]string{
		{"-cap", "butt"},
		{"-layout", "spiral"},
		{"-bg", "red"},
		{"-width", "wide"},
	} {
		o := Default()
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		o.Flags(fs)
		if err := fs.Parse(args); err == nil {
			t.Errorf("Parse(%q)=nil, want an error", args)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Options)
		want string
	}{
		{name: "theme", edit: func(o *Options) { o.Theme = "sepia" }, want: "sepia"},
		{name: "font size", edit: func(o *Options) { o.FontSize = 0 }, want: "font size"},
		{name: "spacing", edit: func(o *Options) { o.LineSpacing = -1 }, want: "line spacing"},
		{name: "margin", edit: func(o *Options) { o.Margin = -2 }, want: "margin"},
		{name: "width", edit: func(o *Options) { o.Width = 0 }, want: "size"},
		{name: "height", edit: func(o *Options) { o.Height = -5 }, want: "size"},
		{name: "limit", edit: func(o *Options) { o.Limit = -1 }, want: "limit"},
		{name: "max lines", edit: func(o *Options) { o.MaxLines = -1 }, want: "max lines"},
		{name: "cols", edit: func(o *Options) { o.Cols = -3 }, want: "cols"},
		{name: "output", edit: func(o *Options) { o.Output = "" }, want: "output"},
	}
	for _, test := range tests {
		o := Default()
		test.edit(&o)
		err := o.Validate()
		if err == nil || !strings.Contains(err.Error(), test.want) {
			t.Errorf("%s: Validate()=%v, want error containing %q", test.name, err, test.want)
		}
	}

	o := Default()
	o.FontSize, o.Margin = 0, -1
	err := o.Validate()
	var merr *multierror.Error
	if !errors.As(err, &merr) || len(merr.Errors) != 2 {
		t.Fatalf("Validate()=%v, want 2 separate errors", err)
	}
	if !strings.Contains(merr.Errors[0].Error(), "font size") ||
		!strings.Contains(merr.Errors[1].Error(), "margin") {
		t.Errorf("Validate() errors=%q, want font size then margin", merr.Errors)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		s    string
		want color.NRGBA
		ok   bool
	}{
		{s: "#fff", want: color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}, ok: true},
		{s: "#1a2", want: color.NRGBA{R: 0x11, G: 0xAA, B: 0x22, A: 0xFF}, ok: true},
		{s: "#102834", want: color.NRGBA{R: 0x10, G: 0x28, B: 0x34, A: 0xFF}, ok: true},
		{s: "FAF0E6", want: color.NRGBA{R: 0xFA, G: 0xF0, B: 0xE6, A: 0xFF}, ok: true},
		{s: "#00000080", want: color.NRGBA{A: 0x80}, ok: true},
		{s: "", ok: false},
		{s: "#", ok: false},
		{s: "#12345", ok: false},
		{s: "#ggg", ok: false},
		{s: "#12345678ff", ok: false},
	}
	for _, test := range tests {
		got, err := ParseColor(test.s)
		if ok := err == nil; ok != test.ok || got != test.want {
			t.Errorf("ParseColor(%q)=%v,%v, want %v, ok=%v", test.s, got, err, test.want, test.ok)
		}
	}
}

func TestFormatColor(t *testing.T) {
	tests := []struct {
		c    color.Color
		want string
	}{
		{c: color.White, want: "#ffffff"},
		{c: color.NRGBA{R: 0x10, G: 0x28, B: 0x34, A: 0xFF}, want: "#102834"},
		{c: color.NRGBA{R: 0xFF, A: 0x80}, want: "#ff000080"},
	}
	for _, test := range tests {
		if got := FormatColor(test.c); got != test.want {
			t.Errorf("FormatColor(%v)=%q, want %q", test.c, got, test.want)
		}
	}
}

func TestOptionsConversions(t *testing.T) {
	o := Default()
	o.Cols = 5
	o.Mode = layout.EdgeToEdge
	o.LineNumbers = true
	if lo := o.LayoutOptions(); lo != (layout.Options{Mode: layout.EdgeToEdge, Cols: 5}) {
		t.Errorf("LayoutOptions()=%+v", lo)
	}
	bo := o.BlockOptions(nil)
	if bo.Margin != o.Margin || bo.LineSpacing != o.LineSpacing || !bo.LineNumbers || bo.TabWidth != o.TabWidth {
		t.Errorf("BlockOptions()=%+v, from %+v", bo, o)
	}
	if sz := o.Size(); sz.X != 1920 || sz.Y != 1080 {
		t.Errorf("Size()=%v, want (1920,1080)", sz)
	}
	// The conversions are callable on values returned from functions.
	if sz := Default().Size(); sz.X != 1920 || sz.Y != 1080 {
		t.Errorf("Default().Size()=%v, want (1920,1080)", sz)
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate()=%v, want nil", err)
	}
	if lo := Default().LayoutOptions(); lo.Mode != layout.Centered {
		t.Errorf("Default().LayoutOptions()=%+v, want centered", lo)
	}
}
