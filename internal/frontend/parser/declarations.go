package parser

import (
	"strings"

	"lyn/internal/frontend/ast"
	"lyn/internal/frontend/lexer"
	"lyn/internal/source"
)

// parseImport parses `import [qualified] name [as alias];`
func parseImport(p *fileParser) ast.Node {
	start := p.consume(lexer.IMPORT_TOKEN, "expected 'import'")

	qualified := false
	if p.match(lexer.QUALIFIED_TOKEN) {
		p.advance()
		qualified = true
	}

	module := p.identifier("expected module name after 'import'")

	var alias string
	if p.match(lexer.AS_TOKEN) {
		p.advance() // consume 'as'
		alias = p.identifier("expected identifier after 'as' in import").Name
	}

	p.consume(lexer.SEMICOLON_TOKEN, "expected ';' after import")

	return &ast.ImportStmt{
		Module:    module,
		Alias:     alias,
		Qualified: qualified,
		Location:  p.span(start),
	}
}

// parseFunction parses `fn name(a: T, b) [: R] { ... }`
func parseFunction(p *fileParser) ast.Node {
	start := p.consume(lexer.FUNCTION_TOKEN, "expected 'fn'")
	name := p.identifier("expected function name after 'fn'")

	p.consume(lexer.OPEN_PAREN, "expected '(' after function name")
	var params []ast.Param
	for p.err == nil && !p.check(lexer.CLOSE_PAREN) {
		param := ast.Param{Name: p.identifier("expected parameter name")}
		if p.match(lexer.COLON_TOKEN) {
			p.advance()
			param.Type = parseType(p)
		}
		params = append(params, param)
		if !p.match(lexer.COMMA_TOKEN) {
			break
		}
		p.advance()
	}
	p.consume(lexer.CLOSE_PAREN, "expected ')' after parameters")

	var returnType ast.TypeNode
	if p.match(lexer.COLON_TOKEN) {
		p.advance()
		returnType = parseType(p)
	}

	skipBlock(p)

	return &ast.FunctionDecl{
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Location:   p.span(start),
	}
}

// parseClass parses `class Name { ... }`
func parseClass(p *fileParser) ast.Node {
	start := p.consume(lexer.CLASS_TOKEN, "expected 'class'")
	name := p.identifier("expected class name after 'class'")
	skipBlock(p)

	return &ast.ClassDecl{
		Name:     name,
		Location: p.span(start),
	}
}

// parseTypeDecl parses `type Name = T;`
func parseTypeDecl(p *fileParser) ast.Node {
	start := p.consume(lexer.TYPE_TOKEN, "expected 'type'")
	name := p.identifier("expected type name after 'type'")
	p.consume(lexer.EQUALS_TOKEN, "expected '=' after type name")
	underlying := parseType(p)
	p.consume(lexer.SEMICOLON_TOKEN, "expected ';' after type definition")

	return &ast.TypeDecl{
		Name:       name,
		Underlying: underlying,
		Location:   p.span(start),
	}
}

// parseVarDecl parses `[pub] let name [: T] [= value];`
func parseVarDecl(p *fileParser) ast.Node {
	start := p.peek()
	isPublic := false
	if p.match(lexer.PUB_TOKEN) {
		p.advance()
		isPublic = true
	}
	p.consume(lexer.LET_TOKEN, "expected 'let'")
	name := p.identifier("expected variable name after 'let'")

	var typ ast.TypeNode
	if p.match(lexer.COLON_TOKEN) {
		p.advance()
		typ = parseType(p)
	}

	if p.match(lexer.EQUALS_TOKEN) {
		p.advance()
		skipUntilSemicolon(p)
	}
	p.consume(lexer.SEMICOLON_TOKEN, "expected ';' after variable declaration")

	return &ast.VarDecl{
		Name:     name,
		Type:     typ,
		IsPublic: isPublic,
		Location: p.span(start),
	}
}

// parseOtherStatement skips a statement the module system does not care
// about. It ends at a ';' or at the '}' that closes a top-level block.
func parseOtherStatement(p *fileParser) ast.Node {
	start := p.peek()
	depth := 0
	for p.err == nil {
		if p.isAtEnd() {
			if depth > 0 {
				p.errorAt(p.peek(), "unbalanced brackets in statement")
			}
			break
		}
		token := p.advance()
		switch token.Kind {
		case lexer.OPEN_PAREN, lexer.OPEN_BRACKET, lexer.OPEN_CURLY:
			depth++
		case lexer.CLOSE_PAREN, lexer.CLOSE_BRACKET, lexer.CLOSE_CURLY:
			depth--
			if depth < 0 {
				p.errorAt(token, "unexpected closing bracket")
				break
			}
			if depth == 0 && token.Kind == lexer.CLOSE_CURLY {
				return &ast.ExpressionStmt{Location: p.span(start)}
			}
		case lexer.SEMICOLON_TOKEN:
			if depth == 0 {
				return &ast.ExpressionStmt{Location: p.span(start)}
			}
		}
	}
	return &ast.ExpressionStmt{Location: p.span(start)}
}

// parseType reads a type annotation up to the next ',', ')', '{', '=' or ';'
// at bracket depth zero.
func parseType(p *fileParser) ast.TypeNode {
	start := p.peek()
	var sb strings.Builder
	depth := 0
	for !p.isAtEnd() {
		kind := p.peek().Kind
		if depth == 0 && (kind == lexer.COMMA_TOKEN || kind == lexer.CLOSE_PAREN ||
			kind == lexer.OPEN_CURLY || kind == lexer.EQUALS_TOKEN || kind == lexer.SEMICOLON_TOKEN) {
			break
		}
		switch kind {
		case lexer.OPEN_PAREN, lexer.OPEN_BRACKET:
			depth++
		case lexer.CLOSE_PAREN, lexer.CLOSE_BRACKET:
			depth--
		}
		sb.WriteString(p.advance().Value)
	}
	if sb.Len() == 0 {
		p.errorAt(p.peek(), "expected type")
		return nil
	}
	end := p.previous()
	return &ast.TypeName{
		Name:     sb.String(),
		Location: *source.NewLocation(&start.Start, &end.End),
	}
}

// skipBlock consumes a balanced `{ ... }` body.
func skipBlock(p *fileParser) {
	p.consume(lexer.OPEN_CURLY, "expected '{'")
	depth := 1
	for p.err == nil && depth > 0 {
		if p.isAtEnd() {
			p.errorAt(p.peek(), "expected '}'")
			return
		}
		switch p.advance().Kind {
		case lexer.OPEN_CURLY:
			depth++
		case lexer.CLOSE_CURLY:
			depth--
		}
	}
}

// skipUntilSemicolon consumes an initializer expression, leaving the ';'.
// A declaration keyword at depth zero also ends it, so a missing ';' is
// reported where the next declaration starts.
func skipUntilSemicolon(p *fileParser) {
	depth := 0
	for !p.isAtEnd() {
		switch p.peek().Kind {
		case lexer.SEMICOLON_TOKEN:
			if depth == 0 {
				return
			}
		case lexer.IMPORT_TOKEN, lexer.FUNCTION_TOKEN, lexer.LET_TOKEN, lexer.PUB_TOKEN, lexer.CLASS_TOKEN, lexer.TYPE_TOKEN:
			if depth == 0 {
				return
			}
		case lexer.OPEN_PAREN, lexer.OPEN_BRACKET, lexer.OPEN_CURLY:
			depth++
		case lexer.CLOSE_PAREN, lexer.CLOSE_BRACKET, lexer.CLOSE_CURLY:
			depth--
		}
		p.advance()
	}
}
