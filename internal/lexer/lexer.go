package lexer

import (
	"unicode"

	"github.com/chuckjaz/dyego-vibe/internal/diag"
)

// LexerError captures a recoverable lexical error with location context.
type LexerError struct {
	Message string
	Span    Span
}

// ToDiagnostic converts a lexer error into the shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Message:  e.Message,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
}

// Lexer represents the lexer state. Comment skipping, escape decoding and
// numeric literal handling live here; the parser never sees trivia.
type Lexer struct {
	input    []rune
	pos      int  // index of the current rune
	ch       rune // current rune (0 = EOF)
	line     int  // current line number (1-based)
	column   int  // current column number (1-based)
	filename string

	Errors []LexerError
}

// New creates a new lexer for the given input.
func New(input string) *Lexer {
	l := &Lexer{
		input:  []rune(input),
		pos:    -1, // start before first rune
		line:   1,
		column: 0, // becomes 1 after the first read()
	}
	l.read()
	return l
}

// SetFilename attributes all emitted spans to the provided filename.
func (l *Lexer) SetFilename(name string) {
	l.filename = name
}

// Tokenize scans the entire source and returns the finite token sequence,
// always terminated by an EOF token, along with any lexical errors.
func Tokenize(source string) ([]Token, []LexerError) {
	return TokenizeFile("", source)
}

// TokenizeFile is Tokenize with spans attributed to filename.
func TokenizeFile(filename, source string) ([]Token, []LexerError) {
	l := New(source)
	l.SetFilename(filename)

	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks, l.Errors
		}
	}
}

func (l *Lexer) addError(msg string, span Span) {
	l.Errors = append(l.Errors, LexerError{Message: msg, Span: span})
}

// read advances the lexer to the next character. line/column always reflect
// the position of the character at pos.
func (l *Lexer) read() {
	l.pos++
	prev := l.pos - 1

	if prev >= 0 && prev < len(l.input) && l.input[prev] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	if l.pos >= len(l.input) {
		l.ch = 0 // EOF
		return
	}
	l.ch = l.input[l.pos]
}

// peek returns the next character without advancing.
func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) skipTrivia() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.read()
		case l.ch == '/' && l.peek() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.read()
			}
		case l.ch == '/' && l.peek() == '*':
			l.skipBlockComment()
		default:
			return
		}
	}
}

func (l *Lexer) skipBlockComment() {
	startLine, startColumn, startPos := l.line, l.column, l.pos
	l.read() // '/'
	l.read() // '*'
	depth := 1
	for depth > 0 {
		switch {
		case l.ch == 0:
			l.addError("unterminated block comment", l.span(startLine, startColumn, startPos, l.pos))
			return
		case l.ch == '/' && l.peek() == '*':
			depth++
			l.read()
			l.read()
		case l.ch == '*' && l.peek() == '/':
			depth--
			l.read()
			l.read()
		default:
			l.read()
		}
	}
}

func (l *Lexer) span(line, column, start, end int) Span {
	return Span{
		Filename: l.filename,
		Line:     line,
		Column:   column,
		Start:    start,
		End:      end,
	}
}

func (l *Lexer) makeToken(tokType TokenType, line, column, start, end int, raw, value string) Token {
	return Token{
		Type:  tokType,
		Raw:   raw,
		Value: value,
		Span:  l.span(line, column, start, end),
	}
}

// Next scans and returns the next token.
func (l *Lexer) Next() Token {
	l.skipTrivia()

	line, column, start := l.line, l.column, l.pos

	single := func(t TokenType) Token {
		raw := string(l.ch)
		l.read()
		return l.makeToken(t, line, column, start, l.pos, raw, raw)
	}
	double := func(t TokenType) Token {
		raw := string(l.input[start : start+2])
		l.read()
		l.read()
		return l.makeToken(t, line, column, start, l.pos, raw, raw)
	}

	switch {
	case l.ch == 0:
		return l.makeToken(EOF, line, column, start, start, "", "")
	case l.ch == '=':
		if l.peek() == '=' {
			return double(EQ)
		}
		return single(ASSIGN)
	case l.ch == '!':
		if l.peek() == '=' {
			return double(NOT_EQ)
		}
		return single(BANG)
	case l.ch == '<':
		if l.peek() == '=' {
			return double(LE)
		}
		return single(LT)
	case l.ch == '>':
		if l.peek() == '=' {
			return double(GE)
		}
		return single(GT)
	case l.ch == '&':
		if l.peek() == '&' {
			return double(AND)
		}
		l.addError("unexpected character '&'", l.span(line, column, start, start+1))
		return single(ILLEGAL)
	case l.ch == '|':
		if l.peek() == '|' {
			return double(OR)
		}
		return single(PIPE)
	case l.ch == '?':
		switch l.peek() {
		case ':':
			return double(ELVIS)
		case '.':
			return double(SAFE_DOT)
		}
		return single(QUESTION)
	case l.ch == '-':
		if l.peek() == '>' {
			return double(ARROW)
		}
		return single(MINUS)
	case l.ch == '+':
		return single(PLUS)
	case l.ch == '*':
		return single(ASTERISK)
	case l.ch == '/':
		return single(SLASH)
	case l.ch == '%':
		return single(PERCENT)
	case l.ch == ',':
		return single(COMMA)
	case l.ch == ';':
		return single(SEMICOLON)
	case l.ch == ':':
		return single(COLON)
	case l.ch == '.':
		return single(DOT)
	case l.ch == '(':
		return single(LPAREN)
	case l.ch == ')':
		return single(RPAREN)
	case l.ch == '{':
		return single(LBRACE)
	case l.ch == '}':
		return single(RBRACE)
	case l.ch == '[':
		return single(LBRACKET)
	case l.ch == ']':
		return single(RBRACKET)
	case l.ch == '"':
		return l.scanString(line, column, start)
	case unicode.IsDigit(l.ch):
		return l.scanNumber(line, column, start)
	case isIdentStart(l.ch):
		return l.scanIdent(line, column, start)
	default:
		l.addError("unexpected character '"+string(l.ch)+"'", l.span(line, column, start, start+1))
		return single(ILLEGAL)
	}
}

func (l *Lexer) scanIdent(line, column, start int) Token {
	for isIdentPart(l.ch) {
		l.read()
	}
	raw := string(l.input[start:l.pos])
	return l.makeToken(LookupIdent(raw), line, column, start, l.pos, raw, raw)
}

func (l *Lexer) scanNumber(line, column, start int) Token {
	tokType := INT
	for unicode.IsDigit(l.ch) {
		l.read()
	}
	if l.ch == '.' && unicode.IsDigit(l.peek()) {
		tokType = FLOAT
		l.read()
		for unicode.IsDigit(l.ch) {
			l.read()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peek()
		if unicode.IsDigit(next) || next == '+' || next == '-' {
			tokType = FLOAT
			l.read()
			if l.ch == '+' || l.ch == '-' {
				l.read()
			}
			for unicode.IsDigit(l.ch) {
				l.read()
			}
		}
	}
	raw := string(l.input[start:l.pos])
	return l.makeToken(tokType, line, column, start, l.pos, raw, raw)
}

func (l *Lexer) scanString(line, column, start int) Token {
	l.read() // opening quote
	var value []rune
	for l.ch != '"' {
		if l.ch == 0 || l.ch == '\n' {
			l.addError("unterminated string literal", l.span(line, column, start, l.pos))
			raw := string(l.input[start:l.pos])
			return l.makeToken(STRING, line, column, start, l.pos, raw, string(value))
		}
		if l.ch == '\\' {
			l.read()
			switch l.ch {
			case 'n':
				value = append(value, '\n')
			case 't':
				value = append(value, '\t')
			case 'r':
				value = append(value, '\r')
			case '\\':
				value = append(value, '\\')
			case '"':
				value = append(value, '"')
			case '0':
				value = append(value, 0)
			default:
				l.addError("invalid escape sequence '\\"+string(l.ch)+"'", l.span(l.line, l.column-1, l.pos-1, l.pos+1))
				value = append(value, l.ch)
			}
			l.read()
			continue
		}
		value = append(value, l.ch)
		l.read()
	}
	l.read() // closing quote
	raw := string(l.input[start:l.pos])
	return l.makeToken(STRING, line, column, start, l.pos, raw, string(value))
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
