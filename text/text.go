// Package text has text styles, color themes, and font faces.
package text

import (
	"image/color"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// Mono is the Go Mono font, the default font for blocks.
var Mono = mustParse(gomono.TTF)

// A Style describes the colors of text.
type Style struct {
	// FG and BG are the foreground and background colors of the text.
	FG, BG color.Color
}

// Merge returns other with any nil fields
// replaced by the corresponding field of sty.
func (sty Style) Merge(other Style) Style {
	if other.FG == nil {
		other.FG = sty.FG
	}
	if other.BG == nil {
		other.BG = sty.BG
	}
	return other
}

// Face returns a font.Face for a TTF font of a given pixel size.
func Face(f *truetype.Font, sizePx float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

func mustParse(ttf []byte) *truetype.Font {
	f, err := truetype.Parse(ttf)
	if err != nil {
		panic(err.Error())
	}
	return f
}
