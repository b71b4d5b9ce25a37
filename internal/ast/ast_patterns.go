package ast

import (
	"github.com/tinyjs/mangle/internal/token"
)

// ArrayPattern represents an array destructuring target.
// [a, , b = 1, ...rest]
// A nil element is a hole.
type ArrayPattern struct {
	Token    token.Token // The '[' token
	Elements []Pattern
}

func (ap *ArrayPattern) patternNode()         {}
func (ap *ArrayPattern) TokenLiteral() string { return ap.Token.Lexeme }
func (ap *ArrayPattern) GetToken() token.Token {
	if ap == nil {
		return token.Token{}
	}
	return ap.Token
}

// RestElement represents ...arg inside a pattern or parameter list.
type RestElement struct {
	Token    token.Token // The '...' token
	Argument Pattern
}

func (re *RestElement) patternNode()         {}
func (re *RestElement) TokenLiteral() string { return re.Token.Lexeme }
func (re *RestElement) GetToken() token.Token {
	if re == nil {
		return token.Token{}
	}
	return re.Token
}

// AssignPattern represents a default value in binding position.
// x = expr as a parameter or destructuring element. Right is the
// default expression and is never a rename target itself.
type AssignPattern struct {
	Token token.Token // The '=' token
	Left  Pattern
	Right Expression
}

func (ap *AssignPattern) patternNode()         {}
func (ap *AssignPattern) TokenLiteral() string { return ap.Token.Lexeme }
func (ap *AssignPattern) GetToken() token.Token {
	if ap == nil {
		return token.Token{}
	}
	return ap.Token
}
