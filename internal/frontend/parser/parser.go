package parser

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"lyn/internal/frontend/ast"
	"lyn/internal/frontend/lexer"
	"lyn/internal/source"
)

// SyntaxError is the first problem the parser found in a file.
type SyntaxError struct {
	FilePath string
	Pos      source.Position
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Pos.Line, e.Pos.Column, e.Message)
}

// Parser is the default front end handed to the module loader. It is
// stateless; every Parse call works on its own token stream.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Parse tokenizes and parses one file into a Program. Function and class
// bodies and plain statements are skipped over with brace matching; only the
// top-level declarations are materialised.
func (Parser) Parse(filePath string, src []byte) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		var lexErr *lexer.Error
		if errors.As(err, &lexErr) {
			return nil, &SyntaxError{FilePath: filePath, Pos: lexErr.Pos, Message: lexErr.Message}
		}
		return nil, err
	}

	p := &fileParser{tokens: tokens, fullPath: filePath}
	var nodes []ast.Node

	for !p.isAtEnd() {
		if p.check(lexer.SEMICOLON_TOKEN) {
			p.advance() // empty statement
			continue
		}
		node := parseNode(p)
		if p.err != nil {
			return nil, p.err
		}
		nodes = append(nodes, node)
	}

	first := tokens[0].Start
	last := tokens[len(tokens)-1].End
	return &ast.Program{
		Nodes:      nodes,
		FullPath:   filePath,
		Modulename: moduleNameFromPath(filePath),
		Location:   *source.NewLocation(&first, &last),
	}, nil
}

type fileParser struct {
	tokens   []lexer.Token
	tokenNo  int
	fullPath string
	err      *SyntaxError // first error wins
}

// current token
func (p *fileParser) peek() lexer.Token {
	return p.tokens[p.tokenNo]
}

// previous token
func (p *fileParser) previous() lexer.Token {
	return p.tokens[p.tokenNo-1]
}

// is at end of file
func (p *fileParser) isAtEnd() bool {
	return p.peek().Kind == lexer.EOF_TOKEN
}

// consume the current token and return that token
func (p *fileParser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.tokenNo++
	}
	return p.previous()
}

// check if the current token is of the given kind
func (p *fileParser) check(kind lexer.TOKEN) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

// matches the current token with any of the given kinds
func (p *fileParser) match(kinds ...lexer.TOKEN) bool {
	if p.isAtEnd() {
		return false
	}
	return slices.Contains(kinds, p.peek().Kind)
}

// consume the current token if it is of the given kind and return that token
// otherwise, record an error
func (p *fileParser) consume(kind lexer.TOKEN, message string) lexer.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.errorAt(p.peek(), message)
	return p.peek()
}

func (p *fileParser) errorAt(token lexer.Token, message string) {
	if p.err != nil {
		return
	}
	if token.Kind == lexer.EOF_TOKEN {
		message += ", found end of file"
	} else {
		message += fmt.Sprintf(", found `%s`", token.Value)
	}
	p.err = &SyntaxError{FilePath: p.fullPath, Pos: token.Start, Message: message}
}

func (p *fileParser) identifier(message string) *ast.IdentifierExpr {
	token := p.consume(lexer.IDENTIFIER_TOKEN, message)
	return &ast.IdentifierExpr{
		Name:     token.Value,
		Location: *source.NewLocation(&token.Start, &token.End),
	}
}

// span builds a location from the start token to the last consumed token.
func (p *fileParser) span(start lexer.Token) source.Location {
	end := p.previous()
	return *source.NewLocation(&start.Start, &end.End)
}

// parseNode parses a single top-level statement
func parseNode(p *fileParser) ast.Node {
	switch p.peek().Kind {
	case lexer.IMPORT_TOKEN:
		return parseImport(p)
	case lexer.FUNCTION_TOKEN:
		return parseFunction(p)
	case lexer.CLASS_TOKEN:
		return parseClass(p)
	case lexer.TYPE_TOKEN:
		return parseTypeDecl(p)
	case lexer.LET_TOKEN, lexer.PUB_TOKEN:
		return parseVarDecl(p)
	default:
		return parseOtherStatement(p)
	}
}

func moduleNameFromPath(filePath string) string {
	name := filePath
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, ".lyn")
}
