// Package printer emits compact source for a parsed tree: minimal
// whitespace, semicolons only between statements that need them,
// parentheses only where precedence demands.
package printer

import (
	"strings"

	"github.com/tinyjs/mangle/internal/ast"
)

// Expression precedence levels for parenthesization. Mirrors the
// parser's climbing order; higher binds tighter.
const (
	precLowest = iota
	precAssign
	precOr
	precAnd
	precEquality
	precComparison
	precSum
	precProduct
	precPrefix
	precCall
)

var operatorPrecedence = map[string]int{
	"||":  precOr,
	"&&":  precAnd,
	"==":  precEquality,
	"!=":  precEquality,
	"===": precEquality,
	"!==": precEquality,
	"<":   precComparison,
	">":   precComparison,
	"<=":  precComparison,
	">=":  precComparison,
	"+":   precSum,
	"-":   precSum,
	"*":   precProduct,
	"/":   precProduct,
	"%":   precProduct,
}

type Printer struct {
	out strings.Builder
}

func New() *Printer {
	return &Printer{}
}

// Print returns the minified rendering of program.
func (p *Printer) Print(program *ast.Program) string {
	p.out.Reset()
	p.writeStatements(program.Statements)
	return p.out.String()
}

func (p *Printer) writeStatements(stmts []ast.Statement) {
	for i, stmt := range stmts {
		p.writeStatement(stmt)
		if i < len(stmts)-1 && needsSemicolon(stmt) {
			p.out.WriteByte(';')
		}
	}
}

// needsSemicolon reports whether a statement must be separated from a
// following one. Brace-terminated statements never need it.
func needsSemicolon(stmt ast.Statement) bool {
	switch stmt.(type) {
	case *ast.VarStatement, *ast.ReturnStatement, *ast.ExpressionStatement:
		return true
	}
	return false
}

func (p *Printer) writeStatement(stmt ast.Statement) {
	switch node := stmt.(type) {
	case *ast.VarStatement:
		p.out.WriteString(node.Kind)
		p.out.WriteByte(' ')
		for i, decl := range node.Declarators {
			if i > 0 {
				p.out.WriteByte(',')
			}
			p.writePattern(decl.Target)
			if decl.Init != nil {
				p.out.WriteByte('=')
				p.writeExpression(decl.Init, precAssign)
			}
		}
	case *ast.FunctionDeclaration:
		p.out.WriteString("function ")
		p.out.WriteString(node.Name.Value)
		p.writeParams(node.Params)
		p.writeBlock(node.Body)
	case *ast.BlockStatement:
		p.writeBlock(node)
	case *ast.ReturnStatement:
		p.out.WriteString("return")
		if node.Value != nil {
			p.out.WriteByte(' ')
			p.writeExpression(node.Value, precLowest)
		}
	case *ast.IfStatement:
		p.writeIf(node)
	case *ast.WhileStatement:
		p.out.WriteString("while(")
		p.writeExpression(node.Condition, precLowest)
		p.out.WriteByte(')')
		p.writeBlock(node.Body)
	case *ast.ExpressionStatement:
		// A leading `function` keyword would turn the expression into
		// a declaration; parenthesize it.
		if _, ok := node.Expression.(*ast.FunctionLiteral); ok {
			p.out.WriteByte('(')
			p.writeExpression(node.Expression, precLowest)
			p.out.WriteByte(')')
			return
		}
		p.writeExpression(node.Expression, precLowest)
	}
}

func (p *Printer) writeIf(node *ast.IfStatement) {
	p.out.WriteString("if(")
	p.writeExpression(node.Condition, precLowest)
	p.out.WriteByte(')')
	p.writeBlock(node.Consequence)
	if node.Alternative == nil {
		return
	}
	p.out.WriteString("else")
	if alt, ok := node.Alternative.(*ast.IfStatement); ok {
		p.out.WriteByte(' ')
		p.writeIf(alt)
		return
	}
	if block, ok := node.Alternative.(*ast.BlockStatement); ok {
		p.writeBlock(block)
		return
	}
	p.out.WriteByte(' ')
	p.writeStatement(node.Alternative)
}

func (p *Printer) writeBlock(block *ast.BlockStatement) {
	p.out.WriteByte('{')
	if block != nil {
		p.writeStatements(block.Statements)
	}
	p.out.WriteByte('}')
}

func (p *Printer) writeParams(params []ast.Pattern) {
	p.out.WriteByte('(')
	for i, param := range params {
		if i > 0 {
			p.out.WriteByte(',')
		}
		p.writePattern(param)
	}
	p.out.WriteByte(')')
}

func (p *Printer) writePattern(pat ast.Pattern) {
	switch node := pat.(type) {
	case *ast.Identifier:
		p.out.WriteString(node.Value)
	case *ast.ArrayPattern:
		p.out.WriteByte('[')
		for i, el := range node.Elements {
			if i > 0 {
				p.out.WriteByte(',')
			}
			if el != nil {
				p.writePattern(el)
			}
		}
		p.out.WriteByte(']')
	case *ast.RestElement:
		p.out.WriteString("...")
		p.writePattern(node.Argument)
	case *ast.AssignPattern:
		p.writePattern(node.Left)
		p.out.WriteByte('=')
		p.writeExpression(node.Right, precAssign)
	}
}

func (p *Printer) writeExpression(expr ast.Expression, parentPrec int) {
	switch node := expr.(type) {
	case *ast.Identifier:
		p.out.WriteString(node.Value)
	case *ast.NumberLiteral:
		p.out.WriteString(node.Raw)
	case *ast.StringLiteral:
		p.out.WriteString(node.Raw)
	case *ast.BooleanLiteral:
		if node.Value {
			p.out.WriteString("true")
		} else {
			p.out.WriteString("false")
		}
	case *ast.NullLiteral:
		p.out.WriteString("null")
	case *ast.ArrayLiteral:
		p.out.WriteByte('[')
		for i, el := range node.Elements {
			if i > 0 {
				p.out.WriteByte(',')
			}
			p.writeExpression(el, precAssign)
		}
		p.out.WriteByte(']')
	case *ast.PrefixExpression:
		p.withParens(precPrefix, parentPrec, func() {
			p.out.WriteString(node.Operator)
			if node.Operator == "typeof" {
				p.out.WriteByte(' ')
			}
			p.writeExpression(node.Right, precPrefix)
		})
	case *ast.InfixExpression:
		prec := operatorPrecedence[node.Operator]
		p.withParens(prec, parentPrec, func() {
			p.writeExpression(node.Left, prec)
			p.out.WriteString(node.Operator)
			p.writeExpression(node.Right, prec+1)
		})
	case *ast.AssignmentExpression:
		p.withParens(precAssign, parentPrec, func() {
			p.writeExpression(node.Left, precCall)
			p.out.WriteString(node.Operator)
			p.writeExpression(node.Right, precAssign)
		})
	case *ast.CallExpression:
		p.withParens(precCall, parentPrec, func() {
			p.writeExpression(node.Callee, precCall)
			p.out.WriteByte('(')
			for i, arg := range node.Arguments {
				if i > 0 {
					p.out.WriteByte(',')
				}
				p.writeExpression(arg, precAssign)
			}
			p.out.WriteByte(')')
		})
	case *ast.MemberExpression:
		p.withParens(precCall, parentPrec, func() {
			p.writeExpression(node.Object, precCall)
			if node.Computed {
				p.out.WriteByte('[')
				p.writeExpression(node.Property, precLowest)
				p.out.WriteByte(']')
			} else {
				p.out.WriteByte('.')
				p.writeExpression(node.Property, precCall)
			}
		})
	case *ast.FunctionLiteral:
		p.withParens(precLowest+1, parentPrec, func() {
			p.out.WriteString("function")
			if node.Name != nil {
				p.out.WriteByte(' ')
				p.out.WriteString(node.Name.Value)
			}
			p.writeParams(node.Params)
			p.writeBlock(node.Body)
		})
	case *ast.ArrowFunction:
		p.withParens(precLowest+1, parentPrec, func() {
			if len(node.Params) == 1 {
				if id, ok := node.Params[0].(*ast.Identifier); ok {
					p.out.WriteString(id.Value)
				} else {
					p.writeParams(node.Params)
				}
			} else {
				p.writeParams(node.Params)
			}
			p.out.WriteString("=>")
			if node.BlockBody != nil {
				p.writeBlock(node.BlockBody)
			} else {
				p.writeExpression(node.ExprBody, precAssign)
			}
		})
	}
}

// withParens wraps body in parentheses when its precedence is too low
// for the surrounding context.
func (p *Printer) withParens(prec, parentPrec int, body func()) {
	if prec < parentPrec {
		p.out.WriteByte('(')
		body()
		p.out.WriteByte(')')
		return
	}
	body()
}
