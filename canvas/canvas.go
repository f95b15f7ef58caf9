// Package canvas draws placed blocks onto a background
// and writes the result as a PNG or SVG image.
package canvas

import (
	"bufio"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	svg "github.com/ajstarks/svgo"
	"github.com/golang/freetype/raster"
	"github.com/golang/freetype/truetype"
	"github.com/ozanyetkin/faux-code/block"
	"github.com/ozanyetkin/faux-code/layout"
	"github.com/ozanyetkin/faux-code/text"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

// A Composite is a set of blocks placed on a background.
type Composite struct {
	Size       image.Point
	Background color.Color
	Blocks     []*block.Block
	// Placements index into Blocks.
	Placements []layout.Placement
	// Font draws line numbers.
	// If nil, line numbers are not drawn in raster output.
	Font *truetype.Font
}

// Image returns a new image of the composite.
func (c *Composite) Image() *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: c.Size})
	c.Draw(img)
	return img
}

// Draw draws the composite to an image with its upper-left at 0,0.
func (c *Composite) Draw(img *image.RGBA) {
	if c.Background != nil {
		fillRect(img, c.Background, img.Bounds())
	}
	size := img.Bounds().Size()
	r := raster.NewRasterizer(size.X, size.Y)
	r.UseNonZeroWinding = true
	painter := raster.NewRGBAPainter(img)

	fc := faces{font: c.Font}
	defer fc.Close()
	for _, p := range c.Placements {
		b := c.Blocks[p.Index]
		m := p.Transform()
		if b.Panel != nil {
			fillRect(img, b.Panel, p.Rect)
		}
		cp := capper(b.Cap)
		for _, st := range b.Strokes {
			p0, p1 := point(m, st.X0, st.Y), point(m, st.X1, st.Y)
			if p1.X <= p0.X {
				p1.X = p0.X + 1
			}
			var path raster.Path
			path.Start(p0)
			path.Add1(p1)
			r.Clear()
			r.AddStroke(path, fix(st.Width*p.Scale), cp, raster.RoundJoiner)
			painter.SetColor(st.Color)
			r.Rasterize(painter)
		}
		if len(b.Labels) == 0 || c.Font == nil {
			continue
		}
		face := fc.get(b.LabelSize * p.Scale)
		for _, l := range b.Labels {
			drawLabel(img, face, point(m, l.X, l.Y), l)
		}
	}
}

// faces holds the most recently used label face.
type faces struct {
	font *truetype.Font
	size float64
	face font.Face
}

// get returns a face of the given size,
// closing the previous face if its size differs.
func (fs *faces) get(size float64) font.Face {
	if fs.face != nil && fs.size == size {
		return fs.face
	}
	fs.Close()
	fs.face, fs.size = text.Face(fs.font, size), size
	return fs.face
}

// Close closes the current face, if any.
func (fs *faces) Close() error {
	if fs.face == nil {
		return nil
	}
	err := fs.face.Close()
	fs.face = nil
	return err
}

func capper(c block.Cap) raster.Capper {
	if c == block.Square {
		return raster.SquareCapper
	}
	return raster.RoundCapper
}

func drawLabel(img draw.Image, face font.Face, pt fixed.Point26_6, l block.Label) {
	fg := image.NewUniform(l.Color)
	prevRune := rune(-1)
	for _, r := range l.Text {
		if prevRune >= 0 {
			pt.X += face.Kern(prevRune, r)
		}
		prevRune = r
		pt.X += drawGlyph(img, face, fg, pt, r)
	}
}

func drawGlyph(img draw.Image, face font.Face, fg image.Image, pt fixed.Point26_6, r rune) fixed.Int26_6 {
	dr, m, mp, adv, ok := face.Glyph(pt, r)
	if !ok {
		dr, m, mp, adv, _ = face.Glyph(pt, unicode.ReplacementChar)
	}
	if m != nil {
		dr = dr.Add(img.Bounds().Min)
		draw.DrawMask(img, dr, fg, image.Point{}, m, mp, draw.Over)
	}
	return adv
}

func fillRect(img draw.Image, c color.Color, r image.Rectangle) {
	z := img.Bounds().Min
	draw.Draw(img, r.Add(z), image.NewUniform(c), image.Point{}, draw.Src)
}

func point(m f64.Aff3, x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fix(m[0]*x + m[1]*y + m[2]),
		Y: fix(m[3]*x + m[4]*y + m[5]),
	}
}

func fix(v float64) fixed.Int26_6 { return fixed.Int26_6(v * 64) }

// WritePNG writes the composite as a PNG image.
func (c *Composite) WritePNG(w io.Writer) error {
	return png.Encode(w, c.Image())
}

// WriteSVG writes the composite as an SVG document.
func (c *Composite) WriteSVG(w io.Writer) error {
	bw := bufio.NewWriter(w)
	s := svg.New(bw)
	s.Startview(c.Size.X, c.Size.Y, 0, 0, c.Size.X*block.SVGUnit, c.Size.Y*block.SVGUnit)
	if c.Background != nil {
		s.Rect(0, 0, c.Size.X*block.SVGUnit, c.Size.Y*block.SVGUnit,
			"fill:"+block.SVGColor(c.Background))
	}
	for _, p := range c.Placements {
		c.Blocks[p.Index].SVG(s, p.Transform())
	}
	s.End()
	return bw.Flush()
}

// WriteFile writes the composite to a file.
// Paths ending in .svg are written as SVG, all others as PNG.
func (c *Composite) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		err = c.WriteSVG(f)
	} else {
		err = c.WritePNG(f)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
