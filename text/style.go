package text

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/ozanyetkin/faux-code/syntax"
)

// A Theme is a set of colors for drawing blocks.
type Theme struct {
	Name string
	// Canvas is the default background behind the blocks.
	Canvas color.Color
	// Default is the style of plain text.
	// Its BG, if non-nil, is the panel drawn behind each block.
	Default Style
	// LineNumber is the color of line numbers.
	LineNumber color.Color
	// Styles are the styles of each syntax category,
	// merged over Default.
	Styles map[syntax.Category]Style
}

// Style returns the style of a syntax category.
func (th *Theme) Style(cat syntax.Category) Style {
	return th.Default.Merge(th.Styles[cat])
}

var (
	// Light is a light theme.
	Light = &Theme{
		Name:       "light",
		Canvas:     color.White,
		Default:    Style{FG: rgb(0x102834), BG: rgb(0xFAF0E6)},
		LineNumber: rgb(0xB0A89E),
		Styles: map[syntax.Category]Style{
			syntax.KeywordCat: {FG: rgb(0x7A1F5C)},
			syntax.StringCat:  {FG: rgb(0x2F6F89)},
			syntax.CommentCat: {FG: rgb(0x707070)},
			syntax.LiteralCat: {FG: rgb(0xB35C1E)},
		},
	}

	// Dark is a dark theme.
	Dark = &Theme{
		Name:       "dark",
		Canvas:     rgb(0x0B0F14),
		Default:    Style{FG: rgb(0xC9D1D9), BG: rgb(0x161B22)},
		LineNumber: rgb(0x484F58),
		Styles: map[syntax.Category]Style{
			syntax.KeywordCat: {FG: rgb(0xFF7B72)},
			syntax.StringCat:  {FG: rgb(0xA5D6FF)},
			syntax.CommentCat: {FG: rgb(0x6E7681)},
			syntax.LiteralCat: {FG: rgb(0x79C0FF)},
		},
	}

	themes = map[string]*Theme{
		Light.Name: Light,
		Dark.Name:  Dark,
	}
)

// ThemeNamed returns the theme with the given name.
func ThemeNamed(name string) (*Theme, error) {
	if th, ok := themes[strings.ToLower(name)]; ok {
		return th, nil
	}
	var names []string
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return nil, fmt.Errorf("unknown theme %q, want one of %s", name, strings.Join(names, ", "))
}

func rgb(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}
}
