package syntax

import (
	"brik/report"
	"fmt"
)

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The byte offset of the first character of the token in the source.
	// Synthesized tokens have a position of -1.
	Pos int

	// The string value of the token.  The value of a string token has its
	// quotes and escapes removed, the value of a keyword token has its leading
	// `#` removed and the value of a number token is its normalized decimal
	// form.
	Value string

	// The text span over which the token exists.  This is nil for synthesized
	// tokens.
	Span *report.TextSpan
}

func (t *Token) String() string {
	return fmt.Sprintf("{ %s %d %s }", TokenKindName(t.Kind), t.Pos, t.Value)
}

// Enumeration of token kinds.
const (
	TOK_LBRACKET = iota
	TOK_RBRACKET
	TOK_LBRACE
	TOK_RBRACE
	TOK_LPAREN
	TOK_RPAREN
	TOK_PATTERN_START
	TOK_PATTERN_END

	TOK_IDENT
	TOK_KEYWORD
	TOK_NUMBER
	TOK_STRING
	TOK_CHAIN
	TOK_COMMA
	TOK_COLON

	// TOK_EOF is never produced by the lexer: the parser uses it to mark the
	// end of its token stream.
	TOK_EOF
)

var tokenKindNames = [...]string{
	TOK_LBRACKET:      "LEFT_BRACKET",
	TOK_RBRACKET:      "RIGHT_BRACKET",
	TOK_LBRACE:        "LEFT_BRACE",
	TOK_RBRACE:        "RIGHT_BRACE",
	TOK_LPAREN:        "LEFT_PAREN",
	TOK_RPAREN:        "RIGHT_PAREN",
	TOK_PATTERN_START: "PATTERN_START",
	TOK_PATTERN_END:   "PATTERN_END",
	TOK_IDENT:         "IDENT",
	TOK_KEYWORD:       "KEYWORD",
	TOK_NUMBER:        "NUMBER",
	TOK_STRING:        "STRING",
	TOK_CHAIN:         "CHAIN",
	TOK_COMMA:         "COMMA",
	TOK_COLON:         "COLON",
	TOK_EOF:           "EOF",
}

// TokenKindName returns the printable name of a token kind.
func TokenKindName(kind int) string {
	if 0 <= kind && kind < len(tokenKindNames) {
		return tokenKindNames[kind]
	}

	return "UNKNOWN"
}

// Keywords.
const (
	KeywordAsm = "asm"
	KeywordDef = "def"
)
