package parser

import (
	"github.com/tinyjs/mangle/internal/ast"
	"github.com/tinyjs/mangle/internal/diagnostics"
	"github.com/tinyjs/mangle/internal/pipeline"
	"github.com/tinyjs/mangle/internal/token"
)

// Operator precedence levels (higher = binds tighter).
const (
	LOWEST     = iota + 1
	ASSIGNMENT // = += -= *= /=
	LOGIC_OR   // ||
	LOGIC_AND  // &&
	EQUALITY   // == != === !==
	COMPARISON // < > <= >=
	SUM        // + -
	PRODUCT    // * / %
	PREFIX     // !x -x typeof x
	CALL       // f(x) a.b a[b]
)

var precedences = map[token.TokenType]int{
	token.ASSIGN:          ASSIGNMENT,
	token.PLUS_ASSIGN:     ASSIGNMENT,
	token.MINUS_ASSIGN:    ASSIGNMENT,
	token.ASTERISK_ASSIGN: ASSIGNMENT,
	token.SLASH_ASSIGN:    ASSIGNMENT,
	token.OR:              LOGIC_OR,
	token.AND:             LOGIC_AND,
	token.EQ:              EQUALITY,
	token.NOT_EQ:          EQUALITY,
	token.STRICT_EQ:       EQUALITY,
	token.STRICT_NEQ:      EQUALITY,
	token.LT:              COMPARISON,
	token.GT:              COMPARISON,
	token.LTE:             COMPARISON,
	token.GTE:             COMPARISON,
	token.PLUS:            SUM,
	token.MINUS:           SUM,
	token.ASTERISK:        PRODUCT,
	token.SLASH:           PRODUCT,
	token.PERCENT:         PRODUCT,
	token.LPAREN:          CALL,
	token.DOT:             CALL,
	token.LBRACKET:        CALL,
}

// MaxRecursionDepth bounds expression nesting so malformed input can't
// blow the stack.
const MaxRecursionDepth = 500

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	ctx   *pipeline.PipelineContext
	depth int

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{tokens: tokens, ctx: ctx}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:    p.parseIdentifierOrArrow,
		token.NUMBER:   p.parseNumberLiteral,
		token.STRING:   p.parseStringLiteral,
		token.TRUE:     p.parseBooleanLiteral,
		token.FALSE:    p.parseBooleanLiteral,
		token.NULL:     p.parseNullLiteral,
		token.BANG:     p.parsePrefixExpression,
		token.MINUS:    p.parsePrefixExpression,
		token.TYPEOF:   p.parsePrefixExpression,
		token.LPAREN:   p.parseGroupedOrArrow,
		token.LBRACKET: p.parseArrayLiteral,
		token.FUNCTION: p.parseFunctionLiteral,
	}

	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.PLUS:            p.parseInfixExpression,
		token.MINUS:           p.parseInfixExpression,
		token.ASTERISK:        p.parseInfixExpression,
		token.SLASH:           p.parseInfixExpression,
		token.PERCENT:         p.parseInfixExpression,
		token.EQ:              p.parseInfixExpression,
		token.NOT_EQ:          p.parseInfixExpression,
		token.STRICT_EQ:       p.parseInfixExpression,
		token.STRICT_NEQ:      p.parseInfixExpression,
		token.LT:              p.parseInfixExpression,
		token.GT:              p.parseInfixExpression,
		token.LTE:             p.parseInfixExpression,
		token.GTE:             p.parseInfixExpression,
		token.AND:             p.parseInfixExpression,
		token.OR:              p.parseInfixExpression,
		token.ASSIGN:          p.parseAssignmentExpression,
		token.PLUS_ASSIGN:     p.parseAssignmentExpression,
		token.MINUS_ASSIGN:    p.parseAssignmentExpression,
		token.ASTERISK_ASSIGN: p.parseAssignmentExpression,
		token.SLASH_ASSIGN:    p.parseAssignmentExpression,
		token.LPAREN:          p.parseCallExpression,
		token.DOT:             p.parseMemberExpression,
		token.LBRACKET:        p.parseIndexExpression,
	}

	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else {
		p.peekToken = token.Token{Type: token.EOF}
	}
}

// peekAhead returns the token n positions past peekToken (peekAhead(0)
// is the token after peekToken).
func (p *Parser) peekAhead(n int) token.Token {
	idx := p.pos + n
	if idx < len(p.tokens) {
		return p.tokens[idx]
	}
	return token.Token{Type: token.EOF}
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) peekError(t token.TokenType) {
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
		"P001",
		p.peekToken,
		"expected next token to be %s, got %s instead", t, p.peekToken.Type,
	))
}

func (p *Parser) noPrefixParseFnError(t token.TokenType) {
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
		"P002",
		p.curToken,
		"unexpected token %s", t,
	))
}

// ParseProgram parses the whole token stream into a Program node.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.curTokenIs(token.EOF) {
		if len(p.ctx.Errors) > 0 {
			// One clean diagnostic beats a cascade; stop at the first.
			break
		}
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return program
}
