package block

import (
	"bytes"
	"encoding/xml"
	"image/color"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/ozanyetkin/faux-code/lang"
	"github.com/ozanyetkin/faux-code/syntax"
	"github.com/ozanyetkin/faux-code/text"
	"golang.org/x/image/font/basicfont"
)

// basicfont.Face7x13 has 7px columns, 13px height, 11px ascent, and 2px descent.
var face = basicfont.Face7x13

func styled(src ...string) []syntax.Line {
	var lines []syntax.Line
	for _, s := range src {
		lines = append(lines, syntax.Style(syntax.Tokenize(s, lang.JavaScript)))
	}
	return lines
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRenderSize(t *testing.T) {
	tests := []struct {
		name          string
		lines         []string
		opts          Options
		width, height float64
	}{
		{
			name:   "one line",
			lines:  []string{"if x"},
			opts:   Options{LineSpacing: 1, Margin: 2},
			width:  2 + 4*7 + 2,
			height: 2 + 13 + 2,
		},
		{
			name:   "widest line wins",
			lines:  []string{"a", "abcdef", "abc"},
			opts:   Options{LineSpacing: 2, Margin: 0},
			width:  6 * 7,
			height: 3 * 26,
		},
		{
			name:   "tabs expand",
			lines:  []string{"ab\tc"},
			opts:   Options{LineSpacing: 1, TabWidth: 8},
			width:  9 * 7,
			height: 13,
		},
		{
			name:   "default tab width",
			lines:  []string{"\tx"},
			opts:   Options{LineSpacing: 1},
			width:  5 * 7,
			height: 13,
		},
		{
			name:   "line number gutter",
			lines:  []string{"a", "b"},
			opts:   Options{LineSpacing: 1, LineNumbers: true, LineNumberOffset: 98},
			width:  (3+1)*7 + 7,
			height: 2 * 13,
		},
		{
			name:   "comment counts columns",
			lines:  []string{"x // note"},
			opts:   Options{LineSpacing: 1, Margin: 1},
			width:  1 + 9*7 + 1,
			height: 1 + 13 + 1,
		},
	}
	for _, test := range tests {
		b := Render(test.name, styled(test.lines...), face, test.opts)
		if !near(b.Width, test.width) || !near(b.Height, test.height) {
			t.Errorf("%s: Render(%q) size=%v×%v, want %v×%v", test.name,
				test.lines, b.Width, b.Height, test.width, test.height)
		}
		if b.Degenerate() {
			t.Errorf("%s: Degenerate()=true, want false", test.name)
		}
	}
}

func TestRenderStrokes(t *testing.T) {
	opts := Options{Theme: text.Dark, LineSpacing: 1, Margin: 2}
	b := Render("x.js", styled("if x", "", `  "s"`), face, opts)
	const thick = 6.5
	want := []Stroke{
		{
			X0: 2 + thick/2, X1: 2 + 14 - thick/2, Y: 2 + 6.5,
			Width:    thick,
			Color:    text.Dark.Style(syntax.KeywordCat).FG,
			Category: syntax.KeywordCat,
			Text:     "if",
		},
		{
			X0: 2 + 21 + 7*0.45, X1: 2 + 28 - 7*0.45, Y: 2 + 6.5,
			Width:    thick,
			Color:    text.Dark.Default.FG,
			Category: syntax.PlainCat,
			Text:     "x",
		},
		{
			X0: 2 + 14 + thick/2, X1: 2 + 35 - thick/2, Y: 2 + 26 + 6.5,
			Width:    thick,
			Color:    text.Dark.Style(syntax.StringCat).FG,
			Category: syntax.StringCat,
			Text:     `"s"`,
		},
	}
	if len(b.Strokes) != len(want) {
		t.Fatalf("got %d strokes, want %d: %v", len(b.Strokes), len(want), b.Strokes)
	}
	for i, got := range b.Strokes {
		w := want[i]
		if !near(got.X0, w.X0) || !near(got.X1, w.X1) || !near(got.Y, w.Y) ||
			!near(got.Width, w.Width) || got.Color != w.Color ||
			got.Category != w.Category || got.Text != w.Text {
			t.Errorf("stroke %d=%+v, want %+v", i, got, w)
		}
		if got.X1 <= got.X0 {
			t.Errorf("stroke %d has non-positive length: %+v", i, got)
		}
	}
	if b.Panel != text.Dark.Default.BG {
		t.Errorf("Panel=%v, want %v", b.Panel, text.Dark.Default.BG)
	}
	if b.Name != "x.js" || len(b.Lines) != 3 {
		t.Errorf("Name=%q, len(Lines)=%d, want x.js, 3", b.Name, len(b.Lines))
	}
}

func TestRenderLabels(t *testing.T) {
	var src []string
	for i := 0; i < 10; i++ {
		src = append(src, "x")
	}
	opts := Options{Theme: text.Light, LineSpacing: 1, Margin: 4, LineNumbers: true}
	b := Render("", styled(src...), face, opts)
	if len(b.Labels) != 10 {
		t.Fatalf("got %d labels, want 10", len(b.Labels))
	}
	tests := []struct {
		i    int
		want Label
	}{
		{0, Label{X: 4 + 7, Y: 4 + 11, Text: "1", Color: text.Light.LineNumber}},
		{8, Label{X: 4 + 7, Y: 4 + 8*13 + 11, Text: "9", Color: text.Light.LineNumber}},
		{9, Label{X: 4, Y: 4 + 9*13 + 11, Text: "10", Color: text.Light.LineNumber}},
	}
	for _, test := range tests {
		if got := b.Labels[test.i]; got != test.want {
			t.Errorf("Labels[%d]=%+v, want %+v", test.i, got, test.want)
		}
	}
	// The code starts after a gutter of digits+1 columns.
	if x := b.Strokes[0].X0 - 7*0.45; !near(x, 4+3*7) {
		t.Errorf("code starts at %v, want %v", x, 4+3*7)
	}
	if b.LabelSize != 13 {
		t.Errorf("LabelSize=%v, want 13", b.LabelSize)
	}
}

func TestRenderDegenerate(t *testing.T) {
	b := Render("empty", nil, face, Options{LineSpacing: 1})
	if !b.Degenerate() {
		t.Errorf("Render(nil).Degenerate()=false, want true (size %v×%v)", b.Width, b.Height)
	}
	b = Render("blank", styled(""), face, Options{LineSpacing: 1})
	if !b.Degenerate() {
		t.Errorf("Render(\"\").Degenerate()=false, want true (size %v×%v)", b.Width, b.Height)
	}
	b = Render("blank", styled(""), face, Options{LineSpacing: 1, Margin: 1})
	if b.Degenerate() {
		t.Errorf("Render(\"\", margin 1).Degenerate()=true, want false")
	}
	if b := (&Block{Width: math.NaN(), Height: 1}); !b.Degenerate() {
		t.Errorf("NaN width is not degenerate")
	}
	if b := (&Block{Width: math.Inf(1), Height: 1}); !b.Degenerate() {
		t.Errorf("infinite width is not degenerate")
	}
}

func TestCapSet(t *testing.T) {
	var c Cap
	if err := c.Set("Square"); err != nil || c != Square {
		t.Errorf("Set(Square)=%v, cap=%v, want nil, square", err, c)
	}
	if err := c.Set("round"); err != nil || c != Round {
		t.Errorf("Set(round)=%v, cap=%v, want nil, round", err, c)
	}
	if err := c.Set("butt"); err == nil {
		t.Errorf("Set(butt)=nil, want an error")
	}
	if c.String() != "round" || Square.String() != "square" {
		t.Errorf("String()=%q, %q, want round, square", c.String(), Square.String())
	}
}

func TestWriteSVG(t *testing.T) {
	opts := Options{Theme: text.Light, LineSpacing: 1.5, Margin: 3, Cap: Square, LineNumbers: true}
	b := Render("a<b>.js", styled(`if (a < b) return "&"`, "// done"), face, opts)
	var buf bytes.Buffer
	if err := b.WriteSVG(&buf); err != nil {
		t.Fatalf("WriteSVG()=%v", err)
	}
	counts := map[string]int{}
	d := xml.NewDecoder(bytes.NewReader(buf.Bytes()))
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("malformed SVG: %v\n%s", err, buf.String())
		}
		if se, ok := tok.(xml.StartElement); ok {
			counts[se.Name.Local]++
		}
	}
	if counts["line"] != len(b.Strokes) {
		t.Errorf("got %d <line>s, want %d", counts["line"], len(b.Strokes))
	}
	if counts["text"] != len(b.Labels) {
		t.Errorf("got %d <text>s, want %d", counts["text"], len(b.Labels))
	}
	if counts["span"] == 0 {
		t.Errorf("no markup spans in SVG metadata")
	}
	svg := buf.String()
	for _, want := range []string{
		`class="keyword"`,
		`stroke-linecap:square`,
		`<span class="string">&quot;&amp;&quot;</span>`,
		`<span class="plain">&lt;</span>`,
		`<title>a&lt;b&gt;.js</title>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG does not contain %q:\n%s", want, svg)
		}
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestWriteSVGError(t *testing.T) {
	b := Render("x", styled("x"), face, Options{LineSpacing: 1})
	if err := b.WriteSVG(failWriter{}); err != io.ErrClosedPipe {
		t.Errorf("WriteSVG(failWriter)=%v, want %v", err, io.ErrClosedPipe)
	}
}

func TestWriteSVGControlChars(t *testing.T) {
	for _, src := range []string{"a\fb", "x = \"\x1b[0m\"", "\x00\x7f\v"} {
		b := Render("ctl.py", styled(src), face, Options{LineSpacing: 1, Margin: 1})
		var buf bytes.Buffer
		if err := b.WriteSVG(&buf); err != nil {
			t.Fatalf("WriteSVG()=%v", err)
		}
		d := xml.NewDecoder(bytes.NewReader(buf.Bytes()))
		for {
			_, err := d.Token()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Errorf("WriteSVG(%q) is malformed: %v\n%s", src, err, buf.String())
				break
			}
		}
	}
}

func TestXMLChars(t *testing.T) {
	tests := []struct {
		s, want string
	}{
		{s: "", want: ""},
		{s: "a\tb\nc\rd", want: "a\tb\nc\rd"},
		{s: "a\fb", want: "a\uFFFDb"},
		{s: "\x1b[0m", want: "\uFFFD[0m"},
		{s: "\uFFFE\uFFFF", want: "\uFFFD\uFFFD"},
		{s: "é世😀", want: "é世😀"},
	}
	for _, test := range tests {
		if got := xmlChars(test.s); got != test.want {
			t.Errorf("xmlChars(%q)=%q, want %q", test.s, got, test.want)
		}
	}
}

func TestSVGColor(t *testing.T) {
	tests := []struct {
		c    color.Color
		want string
	}{
		{c: color.Black, want: "#000000"},
		{c: color.NRGBA{R: 0x10, G: 0x28, B: 0x34, A: 0xFF}, want: "#102834"},
		{c: color.Transparent, want: "#000000;opacity:0.000"},
		{c: color.NRGBA{R: 0xFF, A: 0x80}, want: "#ff0000;opacity:0.502"},
	}
	for _, test := range tests {
		if got := SVGColor(test.c); got != test.want {
			t.Errorf("SVGColor(%v)=%q, want %q", test.c, got, test.want)
		}
	}
}
