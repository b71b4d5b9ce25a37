package parser

import (
	"github.com/tinyjs/mangle/internal/ast"
	"github.com/tinyjs/mangle/internal/diagnostics"
	"github.com/tinyjs/mangle/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > MaxRecursionDepth {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			"P005",
			p.curToken,
			"expression too complex: recursion depth limit exceeded",
		))
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken.Type)
		return nil
	}
	leftExp := prefix()
	if leftExp == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		nextExp := infix(leftExp)
		if nextExp == nil {
			return nil
		}
		leftExp = nextExp
	}

	return leftExp
}

// parseIdentifierOrArrow handles a plain identifier reference and the
// single-parameter arrow shorthand `x => body`.
func (p *Parser) parseIdentifierOrArrow() ast.Expression {
	ident := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if p.peekTokenIs(token.ARROW) {
		p.nextToken() // '=>'
		return p.parseArrowBody(p.curToken, []ast.Pattern{ident})
	}
	return ident
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	val, _ := p.curToken.Literal.(float64)
	return &ast.NumberLiteral{Token: p.curToken, Value: val, Raw: p.curToken.Lexeme}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	val, _ := p.curToken.Literal.(string)
	return &ast.StringLiteral{Token: p.curToken, Value: val, Raw: p.curToken.Lexeme}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{Token: p.curToken}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expression := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
	}
	p.nextToken()
	expression.Right = p.parseExpression(PREFIX)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
		Left:     left,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseAssignmentExpression(left ast.Expression) ast.Expression {
	switch left.(type) {
	case *ast.Identifier, *ast.MemberExpression:
	default:
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			"P006",
			p.curToken,
			"invalid assignment target",
		))
		return nil
	}

	expression := &ast.AssignmentExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
		Left:     left,
	}
	p.nextToken()
	// Right-associative: a = b = c parses as a = (b = c).
	expression.Right = p.parseExpression(ASSIGNMENT - 1)
	if expression.Right == nil {
		return nil
	}
	return expression
}

// parseGroupedOrArrow disambiguates `(expr)` from `(params) => body`
// by scanning ahead for `=>` after the matching close paren.
func (p *Parser) parseGroupedOrArrow() ast.Expression {
	if p.arrowAhead() {
		params, ok := p.parseFunctionParams()
		if !ok {
			return nil
		}
		if !p.expectPeek(token.ARROW) {
			return nil
		}
		return p.parseArrowBody(p.curToken, params)
	}

	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

// arrowAhead reports whether the '(' at curToken opens an arrow
// function parameter list.
func (p *Parser) arrowAhead() bool {
	// curToken sits at index pos-2 of the stream.
	start := p.pos - 2
	if start < 0 || start >= len(p.tokens) {
		return false
	}
	depth := 0
	for i := start; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				return i+1 < len(p.tokens) && p.tokens[i+1].Type == token.ARROW
			}
		case token.EOF:
			return false
		}
	}
	return false
}

// parseArrowBody parses the body after '=>'. curToken is the arrow.
func (p *Parser) parseArrowBody(arrowTok token.Token, params []ast.Pattern) ast.Expression {
	arrow := &ast.ArrowFunction{Token: arrowTok, Params: params}
	if p.peekTokenIs(token.LBRACE) {
		p.nextToken()
		arrow.BlockBody = p.parseBlockStatement()
		return arrow
	}
	p.nextToken()
	arrow.ExprBody = p.parseExpression(LOWEST)
	if arrow.ExprBody == nil {
		return nil
	}
	return arrow
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	fn := &ast.FunctionLiteral{Token: p.curToken}

	if p.peekTokenIs(token.IDENT) {
		p.nextToken()
		fn.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params, ok := p.parseFunctionParams()
	if !ok {
		return nil
	}
	fn.Params = params

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	fn.Body = p.parseBlockStatement()
	return fn
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	arr := &ast.ArrayLiteral{Token: p.curToken}

	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return arr
	}

	for {
		p.nextToken()
		elem := p.parseExpression(LOWEST)
		if elem == nil {
			return nil
		}
		arr.Elements = append(arr.Elements, elem)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return arr
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	call := &ast.CallExpression{Token: p.curToken, Callee: callee}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return call
	}

	for {
		p.nextToken()
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		call.Arguments = append(call.Arguments, arg)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return call
}

func (p *Parser) parseMemberExpression(object ast.Expression) ast.Expression {
	tok := p.curToken // '.'
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	return &ast.MemberExpression{
		Token:    tok,
		Object:   object,
		Property: &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme},
	}
}

func (p *Parser) parseIndexExpression(object ast.Expression) ast.Expression {
	tok := p.curToken // '['
	p.nextToken()
	index := p.parseExpression(LOWEST)
	if index == nil {
		return nil
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return &ast.MemberExpression{
		Token:    tok,
		Object:   object,
		Property: index,
		Computed: true,
	}
}
