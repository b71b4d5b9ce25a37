package parser

import (
	"github.com/tinyjs/mangle/internal/ast"
	"github.com/tinyjs/mangle/internal/diagnostics"
	"github.com/tinyjs/mangle/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.VAR, token.LET, token.CONST:
		return p.parseVarStatement()
	case token.FUNCTION:
		return p.parseFunctionDeclaration()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.SEMICOLON:
		// Empty statement.
		return nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseVarStatement() *ast.VarStatement {
	stmt := &ast.VarStatement{
		Token: p.curToken,
		Kind:  p.curToken.Lexeme,
	}

	for {
		p.nextToken() // first token of the declarator target
		declTok := p.curToken
		target := p.parseBindingTarget()
		if target == nil {
			return nil
		}

		decl := &ast.VariableDeclarator{Token: declTok, Target: target}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken() // '='
			p.nextToken() // first token of the initializer
			decl.Init = p.parseExpression(LOWEST)
			if decl.Init == nil {
				return nil
			}
		}
		stmt.Declarators = append(stmt.Declarators, decl)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken() // ','
	}

	p.consumeOptionalSemicolon()
	return stmt
}

// parseBindingTarget parses a pattern in binding position: a plain
// identifier or an array destructuring pattern. curToken is the first
// token of the target; on return curToken is its last token.
func (p *Parser) parseBindingTarget() ast.Pattern {
	switch p.curToken.Type {
	case token.IDENT:
		return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	case token.LBRACKET:
		return p.parseArrayPattern()
	default:
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			"P003",
			p.curToken,
			"expected identifier or destructuring pattern, got %s", p.curToken.Type,
		))
		return nil
	}
}

func (p *Parser) parseArrayPattern() ast.Pattern {
	pat := &ast.ArrayPattern{Token: p.curToken} // curToken is '['

	for {
		if p.peekTokenIs(token.RBRACKET) {
			p.nextToken()
			return pat
		}
		if p.peekTokenIs(token.COMMA) {
			// Elision: [a, , b]
			pat.Elements = append(pat.Elements, nil)
			p.nextToken()
			continue
		}

		p.nextToken() // first token of the element
		elem := p.parsePatternElement()
		if elem == nil {
			return nil
		}
		pat.Elements = append(pat.Elements, elem)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(token.RBRACKET) {
			return nil
		}
		return pat
	}
}

// parsePatternElement parses one destructuring element or parameter:
// target, ...target, or target = default.
func (p *Parser) parsePatternElement() ast.Pattern {
	if p.curTokenIs(token.ELLIPSIS) {
		restTok := p.curToken
		p.nextToken()
		arg := p.parseBindingTarget()
		if arg == nil {
			return nil
		}
		return &ast.RestElement{Token: restTok, Argument: arg}
	}

	elem := p.parseBindingTarget()
	if elem == nil {
		return nil
	}
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken() // '='
		eqTok := p.curToken
		p.nextToken() // first token of the default expression
		right := p.parseExpression(LOWEST)
		if right == nil {
			return nil
		}
		return &ast.AssignPattern{Token: eqTok, Left: elem, Right: right}
	}
	return elem
}

func (p *Parser) parseFunctionDeclaration() *ast.FunctionDeclaration {
	decl := &ast.FunctionDeclaration{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params, ok := p.parseFunctionParams()
	if !ok {
		return nil
	}
	decl.Params = params

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	decl.Body = p.parseBlockStatement()
	return decl
}

// parseFunctionParams parses a parenthesized parameter list. curToken
// is '('; on return curToken is ')'.
func (p *Parser) parseFunctionParams() ([]ast.Pattern, bool) {
	var params []ast.Pattern

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params, true
	}

	for {
		p.nextToken() // first token of the parameter
		param := p.parsePatternElement()
		if param == nil {
			return nil, false
		}
		params = append(params, param)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}
	return params, true
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken} // curToken is '{'

	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if len(p.ctx.Errors) > 0 {
			break
		}
		p.nextToken()
	}
	if p.curTokenIs(token.EOF) && len(p.ctx.Errors) == 0 {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			"P004",
			p.curToken,
			"unexpected end of input, expected }",
		))
	}
	return block
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	stmt := &ast.ReturnStatement{Token: p.curToken}

	if p.peekTokenIs(token.SEMICOLON) || p.peekTokenIs(token.RBRACE) || p.peekTokenIs(token.EOF) {
		p.consumeOptionalSemicolon()
		return stmt
	}

	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	p.consumeOptionalSemicolon()
	return stmt
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	stmt := &ast.IfStatement{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Consequence = p.parseBlockStatement()

	if p.peekTokenIs(token.ELSE) {
		p.nextToken() // 'else'
		if p.peekTokenIs(token.IF) {
			p.nextToken()
			stmt.Alternative = p.parseIfStatement()
		} else {
			if !p.expectPeek(token.LBRACE) {
				return nil
			}
			stmt.Alternative = p.parseBlockStatement()
		}
	}
	return stmt
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	stmt := &ast.WhileStatement{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}
	p.consumeOptionalSemicolon()
	return stmt
}

func (p *Parser) consumeOptionalSemicolon() {
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
}
