package parser

import "fmt"

// TokenKind classifies a lexical token of the C subset we read.
type TokenKind int

const (
	Undefined TokenKind = iota
	EOF
	Identifier
	Number
	String
	LeftCurlyBracket
	RightCurlyBracket
	LeftSquareBracket
	RightSquareBracket
	LeftParenthesis
	RightParenthesis
	Semicolon
	Comma
	Dot
	Assign
	Ampersand
	Star
	Other
)

// Token is one lexeme. Pos is the byte offset of Content in the source.
type Token struct {
	Kind    TokenKind
	Content string
	Pos     int
	Line    int
}

// End returns the offset just past the token.
func (tok Token) End() int {
	return tok.Pos + len(tok.Content)
}

func (tok Token) String() string {
	return fmt.Sprintf("Token{%d, `%s`, #%d}", tok.Kind, tok.Content, tok.Pos)
}

var singleCharTokens = map[byte]TokenKind{
	'{': LeftCurlyBracket,
	'}': RightCurlyBracket,
	'[': LeftSquareBracket,
	']': RightSquareBracket,
	'(': LeftParenthesis,
	')': RightParenthesis,
	';': Semicolon,
	',': Comma,
	'.': Dot,
	'=': Assign,
	'&': Ampersand,
	'*': Star,
}

// two-character operators that must not be split into Assign/Ampersand/Star.
var compoundOperators = []string{
	"==", "!=", "<=", ">=", "&&", "||", "->", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<", ">>",
}

// Tokenizer splits C source into tokens. Comments and preprocessor lines are
// dropped. It never fails: bytes it does not understand become Other tokens.
type Tokenizer struct {
	content   string
	index     int
	line      int
	lineStart bool
}

// NewTokenizer returns a tokenizer over content.
func NewTokenizer(content string) *Tokenizer {
	return &Tokenizer{content: content, line: 1, lineStart: true}
}

// Tokenize returns every token of content, EOF excluded.
func Tokenize(content string) []Token {
	t := NewTokenizer(content)
	var toks []Token
	for {
		tok := t.NextToken()
		if tok.Kind == EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func (t *Tokenizer) atEOF() bool {
	return t.index >= len(t.content)
}

func (t *Tokenizer) peek(offset int) byte {
	if t.index+offset >= len(t.content) {
		return 0
	}
	return t.content[t.index+offset]
}

func (t *Tokenizer) advance() {
	if t.content[t.index] == '\n' {
		t.line++
		t.lineStart = true
	}
	t.index++
}

func (t *Tokenizer) eatWhitespaces() {
	for !t.atEOF() && isSpace(t.content[t.index]) {
		t.advance()
	}
}

// eatIgnored drops one comment or preprocessor line.
func (t *Tokenizer) eatIgnored() bool {
	switch {
	case t.peek(0) == '/' && t.peek(1) == '/':
		for !t.atEOF() && t.content[t.index] != '\n' {
			t.index++
		}
		return true
	case t.peek(0) == '/' && t.peek(1) == '*':
		t.index += 2
		for !t.atEOF() && !(t.peek(0) == '*' && t.peek(1) == '/') {
			t.advance()
		}
		if !t.atEOF() {
			t.index += 2
		}
		return true
	case t.peek(0) == '#' && t.lineStart:
		for !t.atEOF() && t.content[t.index] != '\n' {
			if t.content[t.index] == '\\' && t.peek(1) == '\n' {
				t.index++
			}
			t.advance()
		}
		return true
	}
	return false
}

// NextToken returns the next token, or an EOF token at the end of input.
func (t *Tokenizer) NextToken() Token {
	for {
		t.eatWhitespaces()
		if !t.eatIgnored() {
			break
		}
	}

	if t.atEOF() {
		return Token{Kind: EOF, Pos: -1, Line: t.line}
	}

	t.lineStart = false
	start := t.index
	line := t.line
	c := t.content[t.index]

	var kind TokenKind
	switch {
	case isIdentStart(c):
		for !t.atEOF() && isIdentPart(t.content[t.index]) {
			t.index++
		}
		kind = Identifier
	case isDigit(c):
		for !t.atEOF() && (isIdentPart(t.content[t.index]) || t.content[t.index] == '.') {
			t.index++
		}
		kind = Number
	case c == '"' || c == '\'':
		t.eatQuoted(c)
		kind = String
	default:
		kind = t.eatOperator()
	}

	return Token{Kind: kind, Content: t.content[start:t.index], Pos: start, Line: line}
}

func (t *Tokenizer) eatQuoted(quote byte) {
	t.index++
	for !t.atEOF() {
		switch t.content[t.index] {
		case '\\':
			t.index++
			if !t.atEOF() {
				t.advance()
			}
			continue
		case quote:
			t.index++
			return
		case '\n':
			// unterminated literal ends at the line break
			return
		}
		t.index++
	}
}

func (t *Tokenizer) eatOperator() TokenKind {
	for _, op := range compoundOperators {
		if t.peek(0) == op[0] && t.peek(1) == op[1] {
			t.index += 2
			return Other
		}
	}
	kind, ok := singleCharTokens[t.content[t.index]]
	t.index++
	if !ok {
		return Other
	}
	return kind
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
