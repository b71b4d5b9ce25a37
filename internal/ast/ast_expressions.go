package ast

import (
	"github.com/tinyjs/mangle/internal/token"
)

// Identifier represents an identifier, e.g., a variable name.
// It doubles as a binding Pattern when it appears in a declaration
// target or a parameter list; renaming rewrites Value in place.
type Identifier struct {
	Token token.Token // the token.IDENT token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) patternNode()         {}
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// NumberLiteral represents a numeric literal. Raw keeps the source
// spelling so the printer never re-formats (0x10 stays 0x10).
type NumberLiteral struct {
	Token token.Token
	Value float64
	Raw   string
}

func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Lexeme }
func (nl *NumberLiteral) GetToken() token.Token {
	if nl == nil {
		return token.Token{}
	}
	return nl.Token
}

// StringLiteral represents a string literal. Raw includes the quotes.
type StringLiteral struct {
	Token token.Token
	Value string
	Raw   string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token {
	if sl == nil {
		return token.Token{}
	}
	return sl.Token
}

// BooleanLiteral represents true/false.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Lexeme }
func (b *BooleanLiteral) GetToken() token.Token {
	if b == nil {
		return token.Token{}
	}
	return b.Token
}

// NullLiteral represents null.
type NullLiteral struct {
	Token token.Token
}

func (n *NullLiteral) expressionNode()      {}
func (n *NullLiteral) TokenLiteral() string { return n.Token.Lexeme }
func (n *NullLiteral) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Token
}

// ArrayLiteral represents [a, b, c]. Nil elements are holes.
type ArrayLiteral struct {
	Token    token.Token // The '[' token
	Elements []Expression
}

func (al *ArrayLiteral) expressionNode()      {}
func (al *ArrayLiteral) TokenLiteral() string { return al.Token.Lexeme }
func (al *ArrayLiteral) GetToken() token.Token {
	if al == nil {
		return token.Token{}
	}
	return al.Token
}

// PrefixExpression represents !x, -x, typeof x.
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token {
	if pe == nil {
		return token.Token{}
	}
	return pe.Token
}

// InfixExpression represents a binary expression.
type InfixExpression struct {
	Token    token.Token // The operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token {
	if ie == nil {
		return token.Token{}
	}
	return ie.Token
}

// AssignmentExpression represents x = v, x += v, etc.
type AssignmentExpression struct {
	Token    token.Token // The operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (ae *AssignmentExpression) expressionNode()      {}
func (ae *AssignmentExpression) TokenLiteral() string { return ae.Token.Lexeme }
func (ae *AssignmentExpression) GetToken() token.Token {
	if ae == nil {
		return token.Token{}
	}
	return ae.Token
}

// CallExpression represents callee(args...).
type CallExpression struct {
	Token     token.Token // The '(' token
	Callee    Expression
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token {
	if ce == nil {
		return token.Token{}
	}
	return ce.Token
}

// MemberExpression represents obj.prop or obj[expr].
type MemberExpression struct {
	Token    token.Token // The '.' or '[' token
	Object   Expression
	Property Expression
	Computed bool
}

func (me *MemberExpression) expressionNode()      {}
func (me *MemberExpression) TokenLiteral() string { return me.Token.Lexeme }
func (me *MemberExpression) GetToken() token.Token {
	if me == nil {
		return token.Token{}
	}
	return me.Token
}

// FunctionLiteral represents a function expression, optionally named.
// var f = function inner(x) { ... }
type FunctionLiteral struct {
	Token  token.Token // The 'function' token
	Name   *Identifier // nil for anonymous function expressions
	Params []Pattern
	Body   *BlockStatement
}

func (fl *FunctionLiteral) expressionNode()      {}
func (fl *FunctionLiteral) TokenLiteral() string { return fl.Token.Lexeme }
func (fl *FunctionLiteral) GetToken() token.Token {
	if fl == nil {
		return token.Token{}
	}
	return fl.Token
}

// ArrowFunction represents (a, b) => expr or (a, b) => { ... }.
// Exactly one of ExprBody / BlockBody is set.
type ArrowFunction struct {
	Token     token.Token // The '=>' token
	Params    []Pattern
	ExprBody  Expression
	BlockBody *BlockStatement
}

func (af *ArrowFunction) expressionNode()      {}
func (af *ArrowFunction) TokenLiteral() string { return af.Token.Lexeme }
func (af *ArrowFunction) GetToken() token.Token {
	if af == nil {
		return token.Token{}
	}
	return af.Token
}

// IsFunctionExpr reports whether e is a function or arrow-function
// expression. Declarators initialized with one keep their name so the
// engine's inferred display name survives.
func IsFunctionExpr(e Expression) bool {
	switch e.(type) {
	case *FunctionLiteral, *ArrowFunction:
		return true
	}
	return false
}
