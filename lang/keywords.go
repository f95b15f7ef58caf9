package lang

// keywords is built once at init and never modified.
var keywords = map[Lang]map[string]bool{
	JavaScript: set(
		"abstract", "as", "async", "await", "break", "case", "catch",
		"class", "const", "continue", "debugger", "declare", "default",
		"delete", "do", "else", "enum", "export", "extends", "false",
		"finally", "for", "from", "function", "get", "if", "implements",
		"import", "in", "instanceof", "interface", "let", "new", "null",
		"of", "package", "private", "protected", "public", "readonly",
		"return", "set", "static", "super", "switch", "this", "throw",
		"true", "try", "type", "typeof", "undefined", "var", "void",
		"while", "with", "yield",
	),
	Python: set(
		"False", "None", "True", "and", "as", "assert", "async", "await",
		"break", "class", "continue", "def", "del", "elif", "else",
		"except", "finally", "for", "from", "global", "if", "import",
		"in", "is", "lambda", "match", "case", "nonlocal", "not", "or",
		"pass", "raise", "return", "try", "while", "with",
		"yield",
	),
	Java: set(
		"abstract", "assert", "boolean", "break", "byte", "case", "catch",
		"char", "class", "const", "continue", "default", "do", "double",
		"else", "enum", "extends", "false", "final", "finally", "float",
		"for", "goto", "if", "implements", "import", "instanceof", "int",
		"interface", "long", "native", "new", "null", "package",
		"private", "protected", "public", "record", "return", "short",
		"static", "strictfp", "super", "switch", "synchronized", "this",
		"throw", "throws", "transient", "true", "try", "var", "void",
		"volatile", "while", "yield",
	),
}

func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
