package odata

import (
	"fmt"
	"strings"
)

// Lexer tokenizes a $filter string. It is pure: it holds no reference
// to anything outside the input string and performs no I/O, so a
// failure never leaves anything to clean up.
type Lexer struct {
	input string
	pos   int // current byte offset into input
}

// NewLexer creates a Lexer over a raw $filter value.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize consumes the whole input and returns its token stream, or
// the first error encountered.
func Tokenize(filter string) ([]Token, error) {
	l := NewLexer(filter)
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return tokens, nil
		}
		tokens = append(tokens, *tok)
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) at(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && isASCIISpace(l.input[l.pos]) {
		l.pos++
	}
}

func isASCIISpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

// next returns the next token, nil at end of input, or a parse error.
func (l *Lexer) next() (*Token, error) {
	l.skipWhitespace()
	if l.pos >= len(l.input) {
		return nil, nil
	}

	ch := l.input[l.pos]

	switch {
	case ch == '\'':
		return l.readString()
	case ch == '(':
		l.pos++
		return &Token{Kind: Paren, Value: "("}, nil
	case ch == ')':
		l.pos++
		return &Token{Kind: Paren, Value: ")"}, nil
	case ch == ',':
		l.pos++
		return &Token{Kind: Comma, Value: ","}, nil
	case isDigit(ch) || ch == '.' || ch == '-':
		return l.readNumberOrDatetime()
	case isIdentStart(ch):
		return l.readWord()
	default:
		return nil, &ParseError{Message: fmt.Sprintf("Unexpected character in filter: %q", string(ch))}
	}
}

// readString consumes a single-quoted string literal; two consecutive
// single quotes inside denote a literal quote character.
func (l *Lexer) readString() (*Token, error) {
	l.pos++ // consume opening quote
	var sb strings.Builder
	for {
		if l.pos >= len(l.input) {
			return nil, &ParseError{Message: "Unterminated string literal in filter"}
		}
		ch := l.input[l.pos]
		if ch == '\'' {
			if l.at(1) == '\'' {
				sb.WriteByte('\'')
				l.pos += 2
				continue
			}
			l.pos++ // consume closing quote
			return &Token{Kind: String, Value: sb.String()}, nil
		}
		sb.WriteByte(ch)
		l.pos++
	}
}

// readNumberOrDatetime consumes a run led by a digit, '.', or '-'. If
// the head of the run matches YYYY-MM-DD it is lexed as a datetime
// literal (kept verbatim); otherwise it is a number.
func (l *Lexer) readNumberOrDatetime() (*Token, error) {
	start := l.pos

	if looksLikeDateHead(l.input, l.pos) {
		l.pos += 10
		for l.pos < len(l.input) && isDatetimePart(l.input[l.pos]) {
			l.pos++
		}
		return &Token{Kind: Datetime, Value: l.input[start:l.pos]}, nil
	}

	for l.pos < len(l.input) && isNumberPart(l.input[l.pos]) {
		l.pos++
	}
	return &Token{Kind: Number, Value: l.input[start:l.pos]}, nil
}

func looksLikeDateHead(s string, pos int) bool {
	if pos+10 > len(s) {
		return false
	}
	head := s[pos : pos+10]
	return isDigit(head[0]) && isDigit(head[1]) && isDigit(head[2]) && isDigit(head[3]) &&
		head[4] == '-' &&
		isDigit(head[5]) && isDigit(head[6]) &&
		head[7] == '-' &&
		isDigit(head[8]) && isDigit(head[9])
}

func isDatetimePart(b byte) bool {
	return isDigit(b) || b == ':' || b == '.' || b == '-' || b == 'T' || b == 'Z' || b == '+'
}

func isNumberPart(b byte) bool {
	return isDigit(b) || b == '.' || b == 'e' || b == 'E' || b == '+' || b == '-'
}

// readWord consumes an identifier run and classifies it.
func (l *Lexer) readWord() (*Token, error) {
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.pos++
	}
	word := l.input[start:l.pos]
	lower := strings.ToLower(word)

	switch {
	case operatorSQL[lower] != "":
		return &Token{Kind: Operator, Value: lower}, nil
	case logicalWords[lower]:
		return &Token{Kind: Logical, Value: lower}, nil
	case functionWords[lower]:
		return &Token{Kind: Function, Value: lower}, nil
	case literalWords[lower]:
		return &Token{Kind: Literal, Value: lower}, nil
	default:
		return &Token{Kind: Identifier, Value: word}, nil
	}
}
