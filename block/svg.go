package block

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"
	"unicode"

	svg "github.com/ajstarks/svgo"
	"github.com/ozanyetkin/faux-code/syntax"
	"golang.org/x/image/math/f64"
)

// SVGUnit is the number of SVG user units per pixel.
// SVG documents are written with a view box scaled by SVGUnit
// so that fractional pixel coordinates survive rounding to integers.
const SVGUnit = 4

// Identity is the identity transform.
var Identity = f64.Aff3{
	1, 0, 0,
	0, 1, 0,
}

// WriteSVG writes the block as a standalone SVG document
// at its intrinsic size.
func (b *Block) WriteSVG(w io.Writer) error {
	bw := bufio.NewWriter(w)
	s := svg.New(bw)
	width, height := int(math.Ceil(b.Width)), int(math.Ceil(b.Height))
	s.Startview(width, height, 0, 0, width*SVGUnit, height*SVGUnit)
	b.SVG(s, Identity)
	s.End()
	return bw.Flush()
}

// SVG draws the block to an SVG canvas whose view box is scaled by SVGUnit.
// The transform maps intrinsic coordinates to pixels;
// it must be a uniform scale and translation.
func (b *Block) SVG(s *svg.SVG, m f64.Aff3) {
	s.Group(`class="block"`)
	if b.Name != "" {
		s.Title(b.Name)
	}
	writeMarkup(s.Writer, b.Lines)
	if b.Panel != nil {
		x0, y0 := svgPt(m, 0, 0)
		x1, y1 := svgPt(m, b.Width, b.Height)
		s.Rect(x0, y0, x1-x0, y1-y0, "fill:"+SVGColor(b.Panel))
	}
	for _, st := range b.Strokes {
		x0, y0 := svgPt(m, st.X0, st.Y)
		x1, y1 := svgPt(m, st.X1, st.Y)
		s.Line(x0, y0, x1, y1,
			fmt.Sprintf(`class="%s"`, st.Category),
			fmt.Sprintf("stroke:%s;stroke-width:%d;stroke-linecap:%s",
				SVGColor(st.Color), svgLen(m, st.Width), b.Cap))
	}
	if len(b.Labels) > 0 {
		s.Gstyle(fmt.Sprintf("font-family:monospace;font-size:%dpx", svgLen(m, b.LabelSize)))
		for _, l := range b.Labels {
			x, y := svgPt(m, l.X, l.Y)
			s.Text(x, y, l.Text, "fill:"+SVGColor(l.Color))
		}
		s.Gend()
	}
	s.Gend()
}

// writeMarkup writes the styled lines as XHTML metadata.
func writeMarkup(w io.Writer, lines []syntax.Line) {
	if len(lines) == 0 {
		return
	}
	var s strings.Builder
	s.WriteString(`<metadata><code xmlns="http://www.w3.org/1999/xhtml">`)
	for i, l := range lines {
		if i > 0 {
			s.WriteByte('\n')
		}
		s.WriteString(xmlChars(l.Markup()))
	}
	s.WriteString("</code></metadata>\n")
	io.WriteString(w, s.String())
}

// xmlChars replaces runes that are not allowed in XML 1.0 with U+FFFD.
func xmlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return unicode.ReplacementChar
	}, s)
}

func isXMLChar(r rune) bool {
	return r == '\t' || r == '\n' || r == '\r' ||
		0x20 <= r && r <= 0xD7FF ||
		0xE000 <= r && r <= 0xFFFD ||
		0x10000 <= r && r <= unicode.MaxRune
}

func svgPt(m f64.Aff3, x, y float64) (int, int) {
	px := m[0]*x + m[1]*y + m[2]
	py := m[3]*x + m[4]*y + m[5]
	return int(math.Round(px * SVGUnit)), int(math.Round(py * SVGUnit))
}

func svgLen(m f64.Aff3, l float64) int {
	n := int(math.Round(m[0] * l * SVGUnit))
	if n < 1 {
		n = 1
	}
	return n
}

// SVGColor returns c as a hex color for an SVG style property.
// A color that is not opaque is followed by an opacity property.
func SVGColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xFF {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x;opacity:%.3f", n.R, n.G, n.B, float64(n.A)/0xFF)
}
