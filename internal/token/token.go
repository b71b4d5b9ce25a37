package token

type TokenType string

// Token is a single lexical token with its source position.
// Lexeme is the raw source text; Literal is the decoded value
// (string contents without quotes, parsed number, etc).
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{}
	Line    int
	Column  int
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	IDENT  TokenType = "IDENT"
	NUMBER TokenType = "NUMBER"
	STRING TokenType = "STRING"

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"
	PERCENT  TokenType = "%"
	BANG     TokenType = "!"

	PLUS_ASSIGN     TokenType = "+="
	MINUS_ASSIGN    TokenType = "-="
	ASTERISK_ASSIGN TokenType = "*="
	SLASH_ASSIGN    TokenType = "/="

	INCREMENT TokenType = "++"
	DECREMENT TokenType = "--"

	LT         TokenType = "<"
	GT         TokenType = ">"
	LTE        TokenType = "<="
	GTE        TokenType = ">="
	EQ         TokenType = "=="
	NOT_EQ     TokenType = "!="
	STRICT_EQ  TokenType = "==="
	STRICT_NEQ TokenType = "!=="

	AND TokenType = "&&"
	OR  TokenType = "||"

	ARROW    TokenType = "=>"
	ELLIPSIS TokenType = "..."

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	COLON     TokenType = ":"
	DOT       TokenType = "."
	QUESTION  TokenType = "?"

	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	// Keywords
	VAR      TokenType = "VAR"
	LET      TokenType = "LET"
	CONST    TokenType = "CONST"
	FUNCTION TokenType = "FUNCTION"
	RETURN   TokenType = "RETURN"
	IF       TokenType = "IF"
	ELSE     TokenType = "ELSE"
	WHILE    TokenType = "WHILE"
	TRUE     TokenType = "TRUE"
	FALSE    TokenType = "FALSE"
	NULL     TokenType = "NULL"
	TYPEOF   TokenType = "TYPEOF"
	NEW      TokenType = "NEW"
)

var keywords = map[string]TokenType{
	"var":      VAR,
	"let":      LET,
	"const":    CONST,
	"function": FUNCTION,
	"return":   RETURN,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"true":     TRUE,
	"false":    FALSE,
	"null":     NULL,
	"typeof":   TYPEOF,
	"new":      NEW,
}

// LookupIdent returns the keyword token type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
