// Package block renders styled lines of source into blocks:
// vector drawings of the code with a known intrinsic size.
//
// Each non-whitespace token is drawn as one horizontal stroke
// spanning the columns of its text.
package block

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/ozanyetkin/faux-code/syntax"
	"github.com/ozanyetkin/faux-code/text"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	// strokeRatio is the stroke thickness
	// as a fraction of the font height.
	strokeRatio = 0.5

	// DefaultTabWidth is the tab stop interval in columns.
	DefaultTabWidth = 4
)

// A Cap is the shape of stroke ends.
type Cap int

const (
	Round Cap = iota
	Square
)

func (c Cap) String() string {
	if c == Square {
		return "square"
	}
	return "round"
}

// Set implements flag.Value.
func (c *Cap) Set(s string) error {
	switch strings.ToLower(s) {
	case "round":
		*c = Round
	case "square":
		*c = Square
	default:
		return fmt.Errorf("unknown line cap %q, want round or square", s)
	}
	return nil
}

// Options control how blocks are rendered.
type Options struct {
	Theme *text.Theme
	// LineSpacing is the line height as a multiple of the font height.
	LineSpacing float64
	Cap         Cap
	// Margin is the padding around the code, in pixels.
	Margin float64
	// LineNumbers enables a line number gutter.
	LineNumbers bool
	// LineNumberOffset is added to each line number.
	// The first line is numbered LineNumberOffset+1.
	LineNumberOffset int
	// TabWidth is the tab stop interval in columns.
	// If TabWidth < 1, DefaultTabWidth is used.
	TabWidth int
}

// A Block is a rendered excerpt of a source file.
// All coordinates are intrinsic, with the origin at the top-left.
type Block struct {
	Name string
	// Width and Height are the intrinsic size.
	Width, Height float64
	Cap           Cap
	// Panel is the background of the block, or nil for none.
	Panel   color.Color
	Strokes []Stroke
	Labels  []Label
	// LabelSize is the font size of labels in pixels.
	LabelSize float64
	// Lines are the styled lines the block was rendered from.
	Lines []syntax.Line
}

// A Stroke is a horizontal line segment drawing one token.
type Stroke struct {
	X0, X1, Y float64
	Width     float64
	Color     color.Color
	Category  syntax.Category
	Text      string
}

// A Label is a line of text with its baseline origin at X, Y.
type Label struct {
	X, Y  float64
	Text  string
	Color color.Color
}

// Degenerate returns whether the block has no area.
// Degenerate blocks cannot be laid out.
func (b *Block) Degenerate() bool {
	return !(b.Width > 0 && b.Height > 0) ||
		math.IsInf(b.Width, 0) || math.IsInf(b.Height, 0)
}

// Render returns a block drawing the lines.
// The face provides the column width (the advance of '0')
// and the font height; glyphs are not drawn,
// except for line numbers.
func Render(name string, lines []syntax.Line, face font.Face, opts Options) *Block {
	theme := opts.Theme
	if theme == nil {
		theme = text.Light
	}
	tab := opts.TabWidth
	if tab < 1 {
		tab = DefaultTabWidth
	}
	m := face.Metrics()
	colW := advance(face)
	fontH := fix(m.Height)
	lineH := fontH * opts.LineSpacing
	thick := fontH * strokeRatio

	b := &Block{
		Name:      name,
		Cap:       opts.Cap,
		Panel:     theme.Default.BG,
		LabelSize: fontH,
		Lines:     lines,
	}

	x0 := opts.Margin
	if opts.LineNumbers {
		last := strconv.Itoa(opts.LineNumberOffset + len(lines))
		digits := len(last)
		for i := range lines {
			num := strconv.Itoa(opts.LineNumberOffset + i + 1)
			b.Labels = append(b.Labels, Label{
				X:     opts.Margin + float64(digits-len(num))*colW,
				Y:     opts.Margin + float64(i)*lineH + baseline(m, lineH),
				Text:  num,
				Color: theme.LineNumber,
			})
		}
		x0 += float64(digits+1) * colW
	}

	var maxCol int
	for i, line := range lines {
		y := opts.Margin + float64(i)*lineH + lineH/2
		var col int
		for _, run := range line {
			start := col
			col = columns(run.Text, col, tab)
			if run.Kind == syntax.Whitespace {
				continue
			}
			w := float64(col-start) * colW
			inset := math.Min(thick/2, w*0.45)
			b.Strokes = append(b.Strokes, Stroke{
				X0:       x0 + float64(start)*colW + inset,
				X1:       x0 + float64(col)*colW - inset,
				Y:        y,
				Width:    thick,
				Color:    theme.Style(run.Category).FG,
				Category: run.Category,
				Text:     run.Text,
			})
		}
		if col > maxCol {
			maxCol = col
		}
	}

	b.Width = x0 + float64(maxCol)*colW + opts.Margin
	b.Height = 2*opts.Margin + float64(len(lines))*lineH
	return b
}

// columns returns the column after the text, starting from col.
func columns(s string, col, tab int) int {
	for _, r := range s {
		if r == '\t' {
			col = (col/tab + 1) * tab
		} else {
			col++
		}
	}
	return col
}

// baseline returns the offset of the text baseline from the top of a line
// that centers the ascent and descent vertically.
func baseline(m font.Metrics, lineH float64) float64 {
	a, d := fix(m.Ascent), fix(m.Descent)
	return (lineH + a - d) / 2
}

func advance(face font.Face) float64 {
	adv, ok := face.GlyphAdvance('0')
	if !ok {
		adv, _ = face.GlyphAdvance(' ')
	}
	return fix(adv)
}

func fix(v fixed.Int26_6) float64 { return float64(v) / 64 }
