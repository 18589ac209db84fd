package syntax

import (
	"brik/report"
	"strconv"
	"strings"
)

// Lexer is responsible for tokenizing a source text.  Lexers hold no state
// between source texts: tokenizing the same text twice yields the same tokens.
type Lexer struct {
	src     *strings.Reader
	tokBuff *strings.Builder

	// pos is the byte offset of the next rune.
	pos int

	line, col           int
	startPos            int
	startLine, startCol int

	// The position of the last rune consumed.
	lastLine, lastCol int
}

// NewLexer creates a new lexer for the given source text.
func NewLexer(source string) *Lexer {
	return &Lexer{
		src:     strings.NewReader(source),
		tokBuff: &strings.Builder{},
	}
}

// Tokenize converts a whole source text into its ordered sequence of tokens.
func Tokenize(source string) ([]*Token, error) {
	l := NewLexer(source)

	tokens := []*Token{}
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		} else if tok == nil {
			return tokens, nil
		}

		tokens = append(tokens, tok)
	}
}

// NextToken retrieves the next token from the source text.  If the source has
// ended, nil is returned.
func (l *Lexer) NextToken() (*Token, error) {
	for {
		c := l.peek()
		switch c {
		case -1:
			return nil, nil
		case ' ', '\t', '\r', '\n':
			l.skip()
		case '"':
			return l.lexString()
		case '#':
			return l.lexKeyword()
		default:
			if kind, ok := symbolKinds[c]; ok {
				l.mark()
				l.eat()
				return l.makeToken(kind), nil
			} else if isIdentStart(c) {
				return l.lexIdent()
			} else if isDecimalDigit(c) {
				return l.lexNumber()
			}

			l.mark()
			l.skip()
			return nil, report.Raise(report.KindLex, l.getSpan(), "unrecognized character `%c`", c)
		}
	}
}

// -----------------------------------------------------------------------------

// symbolKinds maps the single-character symbols to their token kinds.
var symbolKinds = map[rune]int{
	'[': TOK_LBRACKET,
	']': TOK_RBRACKET,
	'{': TOK_LBRACE,
	'}': TOK_RBRACE,
	'(': TOK_LPAREN,
	')': TOK_RPAREN,
	'<': TOK_PATTERN_START,
	'>': TOK_PATTERN_END,
	'$': TOK_CHAIN,
	',': TOK_COMMA,
	':': TOK_COLON,
}

// keywords is the fixed keyword set.
var keywords = map[string]struct{}{
	KeywordAsm: {},
	KeywordDef: {},
}

// lexIdent lexes an identifier.
func (l *Lexer) lexIdent() (*Token, error) {
	l.mark()
	l.eatIdentChars()

	return l.makeToken(TOK_IDENT), nil
}

// lexKeyword lexes a `#` prefixed keyword.
func (l *Lexer) lexKeyword() (*Token, error) {
	l.mark()
	l.skip()
	l.eatIdentChars()

	if _, ok := keywords[l.tokBuff.String()]; !ok {
		return nil, report.Raise(report.KindLex, l.getSpan(), "unrecognized keyword `#%s`", l.tokBuff.String())
	}

	return l.makeToken(TOK_KEYWORD), nil
}

// lexNumber lexes an unsigned decimal integer literal.
func (l *Lexer) lexNumber() (*Token, error) {
	l.mark()
	for isDecimalDigit(l.peek()) {
		l.eat()
	}

	n, err := strconv.ParseInt(l.tokBuff.String(), 10, 64)
	if err != nil {
		return nil, report.Raise(report.KindLex, l.getSpan(), "integer literal `%s` is too large", l.tokBuff.String())
	}

	tok := l.makeToken(TOK_NUMBER)
	tok.Value = strconv.FormatInt(n, 10)
	return tok, nil
}

// lexString lexes a double-quoted string literal.  A backslash takes the
// character following it literally.
func (l *Lexer) lexString() (*Token, error) {
	l.mark()
	l.skip()

	for {
		switch l.peek() {
		case -1:
			return nil, report.Raise(report.KindLex, l.getSpan(), "unclosed string literal")
		case '"':
			l.skip()
			return l.makeToken(TOK_STRING), nil
		case '\\':
			l.skip()
			if l.peek() == -1 {
				return nil, report.Raise(report.KindLex, l.getSpan(), "unclosed string literal")
			}

			l.eat()
		default:
			l.eat()
		}
	}
}

// eatIdentChars consumes identifier characters until a non-identifier
// character is encountered.
func (l *Lexer) eatIdentChars() {
	for {
		c := l.peek()
		if !isIdentStart(c) && !isDecimalDigit(c) {
			return
		}

		l.eat()
	}
}

// -----------------------------------------------------------------------------

// mark sets the lexer's stored start position to its current position.
func (l *Lexer) mark() {
	l.startPos = l.pos
	l.startLine = l.line
	l.startCol = l.col
}

// makeToken produces a new token of the given kind from the lexer's state and
// resets the lexer to begin building the next token.
func (l *Lexer) makeToken(kind int) *Token {
	value := l.tokBuff.String()
	l.tokBuff.Reset()

	return &Token{
		Kind:  kind,
		Pos:   l.startPos,
		Value: value,
		Span:  l.getSpan(),
	}
}

// getSpan calculates a text span from the marked start position to the last
// consumed rune.
func (l *Lexer) getSpan() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   l.lastLine,
		EndCol:    l.lastCol,
	}
}

// -----------------------------------------------------------------------------

// eat moves the lexer forward one rune and writes the rune to the token buffer.
// If the source has ended, -1 is returned.
func (l *Lexer) eat() rune {
	c := l.skip()
	if c != -1 {
		l.tokBuff.WriteRune(c)
	}

	return c
}

// skip moves the lexer forward one rune but does not write the rune to the
// token buffer.  If the source has ended, -1 is returned.
func (l *Lexer) skip() rune {
	c, size, err := l.src.ReadRune()
	if err != nil {
		return -1
	}

	l.lastLine, l.lastCol = l.line, l.col
	l.pos += size
	if c == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}

	return c
}

// peek returns the next rune without moving the lexer forward.  If the source
// has ended, -1 is returned.
func (l *Lexer) peek() rune {
	c, _, err := l.src.ReadRune()
	if err != nil {
		return -1
	}

	l.src.UnreadRune()
	return c
}

// -----------------------------------------------------------------------------

func isIdentStart(c rune) bool {
	return 'a' <= c && c <= 'z' || strings.ContainsRune("_+-*%^&|/", c)
}

func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
