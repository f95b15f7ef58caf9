package syntax

import (
	"strings"
	"unicode/utf8"
)

// A Category is the style class of a token.
// Whitespace has the empty category and is never styled.
type Category string

const (
	Unstyled   Category = ""
	KeywordCat Category = "keyword"
	StringCat  Category = "string"
	CommentCat Category = "comment"
	LiteralCat Category = "literal"
	PlainCat   Category = "plain"
)

// StyleOf returns the style category of a token kind.
func StyleOf(k Kind) Category {
	switch k {
	case Keyword:
		return KeywordCat
	case String:
		return StringCat
	case Comment:
		return CommentCat
	case Numeric:
		return LiteralCat
	case Whitespace:
		return Unstyled
	default:
		return PlainCat
	}
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// Escape returns the text with &, <, >, ", and ' replaced
// by their markup entities.
func Escape(text string) string { return escaper.Replace(text) }

// A Run is a token and its style category.
type Run struct {
	Token
	Category Category
}

// A Line is a styled line of source.
type Line []Run

// Style returns the styled line of a line's tokens.
func Style(toks []Token) Line {
	line := make(Line, len(toks))
	for i, tok := range toks {
		line[i] = Run{Token: tok, Category: StyleOf(tok.Kind)}
	}
	return line
}

// Text returns the source text of the line.
func (l Line) Text() string {
	var s strings.Builder
	for _, r := range l {
		s.WriteString(r.Text)
	}
	return s.String()
}

// Markup returns the line as a sequence of <span> elements,
// one per styled run, classed by category.
// Whitespace is written as-is, outside of any span.
func (l Line) Markup() string {
	var s strings.Builder
	for _, r := range l {
		if r.Category == Unstyled {
			s.WriteString(r.Text)
			continue
		}
		s.WriteString(`<span class="`)
		s.WriteString(string(r.Category))
		s.WriteString(`">`)
		s.WriteString(Escape(r.Text))
		s.WriteString("</span>")
	}
	return s.String()
}

// Clip returns at most maxLines of the lines,
// each cut to at most maxWidth runes,
// with any trailing carriage return removed.
// A limit less than 1 is no limit.
func Clip(lines []string, maxLines, maxWidth int) []string {
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	clipped := make([]string, len(lines))
	for i, l := range lines {
		l = strings.TrimSuffix(l, "\r")
		if maxWidth > 0 && utf8.RuneCountInString(l) > maxWidth {
			n := 0
			for j := range l {
				if n == maxWidth {
					l = l[:j]
					break
				}
				n++
			}
		}
		clipped[i] = l
	}
	return clipped
}
