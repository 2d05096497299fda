package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"lyn/internal/source"
)

// Error is a lexical error with the position it was found at.
type Error struct {
	Pos     source.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

type lexer struct {
	src    []byte
	index  int
	line   int
	column int
	tokens []Token
}

// Tokenize splits src into tokens. The last token is always EOF_TOKEN.
func Tokenize(src []byte) ([]Token, error) {
	lx := &lexer{src: src, line: 1, column: 1}
	for {
		if err := lx.skipSpaceAndComments(); err != nil {
			return nil, err
		}
		if lx.atEnd() {
			break
		}
		if err := lx.scan(); err != nil {
			return nil, err
		}
	}
	pos := lx.pos()
	lx.tokens = append(lx.tokens, Token{Kind: EOF_TOKEN, Start: pos, End: pos})
	return lx.tokens, nil
}

func (lx *lexer) atEnd() bool {
	return lx.index >= len(lx.src)
}

func (lx *lexer) pos() source.Position {
	return source.Position{Line: lx.line, Column: lx.column, Index: lx.index}
}

func (lx *lexer) peekByte(offset int) byte {
	if lx.index+offset >= len(lx.src) {
		return 0
	}
	return lx.src[lx.index+offset]
}

// advance consumes one rune and keeps line/column in sync.
func (lx *lexer) advance() rune {
	r, size := utf8.DecodeRune(lx.src[lx.index:])
	lx.index += size
	if r == '\n' {
		lx.line++
		lx.column = 1
	} else {
		lx.column++
	}
	return r
}

func (lx *lexer) skipSpaceAndComments() error {
	for !lx.atEnd() {
		c := lx.peekByte(0)
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			lx.advance()
		case c == '/' && lx.peekByte(1) == '/':
			for !lx.atEnd() && lx.peekByte(0) != '\n' {
				lx.advance()
			}
		case c == '/' && lx.peekByte(1) == '*':
			start := lx.pos()
			lx.advance()
			lx.advance()
			closed := false
			for !lx.atEnd() {
				if lx.peekByte(0) == '*' && lx.peekByte(1) == '/' {
					lx.advance()
					lx.advance()
					closed = true
					break
				}
				lx.advance()
			}
			if !closed {
				return &Error{Pos: start, Message: "unterminated block comment"}
			}
		default:
			return nil
		}
	}
	return nil
}

func (lx *lexer) emit(kind TOKEN, start source.Position) {
	lx.tokens = append(lx.tokens, Token{
		Kind:  kind,
		Value: string(lx.src[start.Index:lx.index]),
		Start: start,
		End:   lx.pos(),
	})
}

func (lx *lexer) scan() error {
	start := lx.pos()
	r, _ := utf8.DecodeRune(lx.src[lx.index:])

	switch {
	case r == '_' || unicode.IsLetter(r):
		for !lx.atEnd() {
			r, _ = utf8.DecodeRune(lx.src[lx.index:])
			if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				break
			}
			lx.advance()
		}
		word := string(lx.src[start.Index:lx.index])
		if kw, ok := keywords[word]; ok {
			lx.emit(kw, start)
		} else {
			lx.emit(IDENTIFIER_TOKEN, start)
		}
	case r >= '0' && r <= '9':
		for !lx.atEnd() {
			c := lx.peekByte(0)
			if !(c >= '0' && c <= '9') && c != '.' && c != '_' && !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') {
				break
			}
			// a dot not followed by a digit ends the number (member access)
			if c == '.' && !(lx.peekByte(1) >= '0' && lx.peekByte(1) <= '9') {
				break
			}
			lx.advance()
		}
		lx.emit(NUMBER_TOKEN, start)
	case r == '"' || r == '\'':
		quote := lx.advance()
		for {
			if lx.atEnd() || lx.peekByte(0) == '\n' {
				return &Error{Pos: start, Message: "unterminated string literal"}
			}
			c := lx.advance()
			if c == '\\' && !lx.atEnd() {
				lx.advance()
				continue
			}
			if c == quote {
				break
			}
		}
		lx.emit(STRING_TOKEN, start)
	default:
		if r < utf8.RuneSelf {
			if kind, ok := punctuation[byte(r)]; ok {
				lx.advance()
				lx.emit(kind, start)
				return nil
			}
		}
		if unicode.IsControl(r) {
			return &Error{Pos: start, Message: fmt.Sprintf("unexpected character %q", r)}
		}
		lx.advance()
		lx.emit(OPERATOR_TOKEN, start)
	}
	return nil
}
