package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []TOKEN {
	out := make([]TOKEN, 0, len(tokens))
	for _, token := range tokens {
		out = append(out, token.Kind)
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []TOKEN
	}{
		{
			name:  "empty input",
			input: "",
			want:  []TOKEN{EOF_TOKEN},
		},
		{
			name:  "import with alias",
			input: "import math as m;",
			want:  []TOKEN{IMPORT_TOKEN, IDENTIFIER_TOKEN, AS_TOKEN, IDENTIFIER_TOKEN, SEMICOLON_TOKEN, EOF_TOKEN},
		},
		{
			name:  "qualified import",
			input: "import qualified net;",
			want:  []TOKEN{IMPORT_TOKEN, QUALIFIED_TOKEN, IDENTIFIER_TOKEN, SEMICOLON_TOKEN, EOF_TOKEN},
		},
		{
			name:  "public variable",
			input: "pub let x: int = 10;",
			want: []TOKEN{PUB_TOKEN, LET_TOKEN, IDENTIFIER_TOKEN, COLON_TOKEN, IDENTIFIER_TOKEN,
				EQUALS_TOKEN, NUMBER_TOKEN, SEMICOLON_TOKEN, EOF_TOKEN},
		},
		{
			name:  "comments are skipped",
			input: "// line\nfn /* block\n spans */ f",
			want:  []TOKEN{FUNCTION_TOKEN, IDENTIFIER_TOKEN, EOF_TOKEN},
		},
		{
			name:  "decimal number and member access",
			input: "1.5 x.y",
			want:  []TOKEN{NUMBER_TOKEN, IDENTIFIER_TOKEN, DOT_TOKEN, IDENTIFIER_TOKEN, EOF_TOKEN},
		},
		{
			name:  "strings with escapes",
			input: `"a\"b" 'c'`,
			want:  []TOKEN{STRING_TOKEN, STRING_TOKEN, EOF_TOKEN},
		},
		{
			name:  "non-ascii digits",
			input: "print(١); x١ = １;",
			want: []TOKEN{IDENTIFIER_TOKEN, OPEN_PAREN, OPERATOR_TOKEN, CLOSE_PAREN, SEMICOLON_TOKEN,
				IDENTIFIER_TOKEN, EQUALS_TOKEN, OPERATOR_TOKEN, SEMICOLON_TOKEN, EOF_TOKEN},
		},
		{
			name:  "operators",
			input: "a + b * c",
			want:  []TOKEN{IDENTIFIER_TOKEN, OPERATOR_TOKEN, IDENTIFIER_TOKEN, OPERATOR_TOKEN, IDENTIFIER_TOKEN, EOF_TOKEN},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, kinds(tokens))
		})
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens, err := Tokenize([]byte("import a;\n  fn b"))
	require.NoError(t, err)
	require.Len(t, tokens, 6)

	fn := tokens[3]
	assert.Equal(t, FUNCTION_TOKEN, fn.Kind)
	assert.Equal(t, "fn", fn.Value)
	assert.Equal(t, 2, fn.Start.Line)
	assert.Equal(t, 3, fn.Start.Column)
	assert.Equal(t, 5, fn.End.Column)
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
		line    int
	}{
		{name: "unterminated string", input: "let s = \"abc;", message: "unterminated string literal", line: 1},
		{name: "string broken by newline", input: "\n'abc\n'", message: "unterminated string literal", line: 2},
		{name: "unterminated block comment", input: "fn /* never closed", message: "unterminated block comment", line: 1},
		{name: "control character", input: "let \x01", message: "unexpected character", line: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize([]byte(tt.input))
			require.Error(t, err)

			var lexErr *Error
			require.ErrorAs(t, err, &lexErr)
			assert.Contains(t, lexErr.Message, tt.message)
			assert.Equal(t, tt.line, lexErr.Pos.Line)
		})
	}
}
