package lexer

// TokenType represents the type of a token
type TokenType string

// Span represents the source location of a token
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Start    int    // index in []rune of the original string
	End      int    // exclusive end index
}

// Token represents a lexical token. Tokens are immutable once produced and
// are read-only to every later stage.
type Token struct {
	Type  TokenType
	Raw   string // exact runes from source
	Value string // decoded value (for strings; same as Raw for others)
	Span  Span   // source location information
}

// Token type constants
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"  // foo, bar, x, y, ...
	INT    TokenType = "INT"    // 1343456
	FLOAT  TokenType = "FLOAT"  // 3.14, 1e9
	STRING TokenType = "STRING" // "hello"

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	BANG     TokenType = "!"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"
	PERCENT  TokenType = "%"
	AND      TokenType = "&&"
	OR       TokenType = "||"
	PIPE     TokenType = "|"
	QUESTION TokenType = "?"
	ELVIS    TokenType = "?:"
	SAFE_DOT TokenType = "?."
	ARROW    TokenType = "->"

	LT     TokenType = "<"
	GT     TokenType = ">"
	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="
	LE     TokenType = "<="
	GE     TokenType = ">="

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	COLON     TokenType = ":"
	DOT       TokenType = "."

	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	// Keywords
	VAL      TokenType = "VAL"
	VAR      TokenType = "VAR"
	FUN      TokenType = "FUN"
	MUT      TokenType = "MUT"
	RETURN   TokenType = "RETURN"
	IF       TokenType = "IF"
	ELSE     TokenType = "ELSE"
	WHEN     TokenType = "WHEN"
	WHILE    TokenType = "WHILE"
	FOR      TokenType = "FOR"
	IN       TokenType = "IN"
	BREAK    TokenType = "BREAK"
	CONTINUE TokenType = "CONTINUE"
	AS       TokenType = "AS"
	TYPE     TokenType = "TYPE"
	TRAIT    TokenType = "TRAIT"
	USE      TokenType = "USE"
	THIS     TokenType = "THIS"
	TRUE     TokenType = "TRUE"
	FALSE    TokenType = "FALSE"
	NULL     TokenType = "NULL"
)

var keywords = map[string]TokenType{
	"val":      VAL,
	"var":      VAR,
	"fun":      FUN,
	"mut":      MUT,
	"return":   RETURN,
	"if":       IF,
	"else":     ELSE,
	"when":     WHEN,
	"while":    WHILE,
	"for":      FOR,
	"in":       IN,
	"break":    BREAK,
	"continue": CONTINUE,
	"as":       AS,
	"type":     TYPE,
	"trait":    TRAIT,
	"use":      USE,
	"this":     THIS,
	"true":     TRUE,
	"false":    FALSE,
	"null":     NULL,
}

// LookupIdent maps an identifier to its keyword token type, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
