package lexer

import "lyn/internal/source"

type TOKEN string

const (
	EOF_TOKEN        TOKEN = "EOF"
	IDENTIFIER_TOKEN TOKEN = "IDENTIFIER"
	STRING_TOKEN     TOKEN = "STRING"
	NUMBER_TOKEN     TOKEN = "NUMBER"

	// keywords
	IMPORT_TOKEN    TOKEN = "import"
	QUALIFIED_TOKEN TOKEN = "qualified"
	AS_TOKEN        TOKEN = "as"
	FUNCTION_TOKEN  TOKEN = "fn"
	CLASS_TOKEN     TOKEN = "class"
	TYPE_TOKEN      TOKEN = "type"
	LET_TOKEN       TOKEN = "let"
	PUB_TOKEN       TOKEN = "pub"

	// punctuation
	SEMICOLON_TOKEN TOKEN = ";"
	COLON_TOKEN     TOKEN = ":"
	COMMA_TOKEN     TOKEN = ","
	DOT_TOKEN       TOKEN = "."
	EQUALS_TOKEN    TOKEN = "="
	OPEN_PAREN      TOKEN = "("
	CLOSE_PAREN     TOKEN = ")"
	OPEN_CURLY      TOKEN = "{"
	CLOSE_CURLY     TOKEN = "}"
	OPEN_BRACKET    TOKEN = "["
	CLOSE_BRACKET   TOKEN = "]"
	OPERATOR_TOKEN  TOKEN = "OPERATOR"
)

var keywords = map[string]TOKEN{
	"import":    IMPORT_TOKEN,
	"qualified": QUALIFIED_TOKEN,
	"as":        AS_TOKEN,
	"fn":        FUNCTION_TOKEN,
	"class":     CLASS_TOKEN,
	"type":      TYPE_TOKEN,
	"let":       LET_TOKEN,
	"pub":       PUB_TOKEN,
}

var punctuation = map[byte]TOKEN{
	';': SEMICOLON_TOKEN,
	':': COLON_TOKEN,
	',': COMMA_TOKEN,
	'.': DOT_TOKEN,
	'=': EQUALS_TOKEN,
	'(': OPEN_PAREN,
	')': CLOSE_PAREN,
	'{': OPEN_CURLY,
	'}': CLOSE_CURLY,
	'[': OPEN_BRACKET,
	']': CLOSE_BRACKET,
}

type Token struct {
	Kind  TOKEN
	Value string
	Start source.Position
	End   source.Position
}
