// Package lang maps file names to source languages
// and holds the keyword set of each language.
package lang

import "strings"

// A Lang is a source language.
// The zero value is JavaScript, the fallback for unknown files.
type Lang int

const (
	JavaScript Lang = iota
	Python
	Java
)

func (l Lang) String() string {
	switch l {
	case JavaScript:
		return "javascript"
	case Python:
		return "python"
	case Java:
		return "java"
	default:
		return "unknown"
	}
}

var extensions = map[string]Lang{
	"py":   Python,
	"js":   JavaScript,
	"jsx":  JavaScript,
	"ts":   JavaScript,
	"tsx":  JavaScript,
	"java": Java,
}

// Classify returns the language of a file name,
// judged by the text after its final dot.
// Unknown or missing extensions are JavaScript.
func Classify(name string) Lang {
	l, _ := lookup(name)
	return l
}

// Known returns whether the file name has an extension
// that Classify recognizes.
func Known(name string) bool {
	_, ok := lookup(name)
	return ok
}

func lookup(name string) (Lang, bool) {
	var ext string
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		ext = strings.ToLower(name[i+1:])
	}
	l, ok := extensions[ext]
	return l, ok
}

// Keywords returns the keyword set of a language.
// Languages without a set use the JavaScript set.
// The returned map must not be modified.
func Keywords(l Lang) map[string]bool {
	if kw, ok := keywords[l]; ok {
		return kw
	}
	return keywords[JavaScript]
}
