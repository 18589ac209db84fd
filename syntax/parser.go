package syntax

import (
	"brik/ast"
	"brik/report"
	"fmt"
)

// Parser is the recursive descent parser for brik source.  It consumes a token
// sequence and produces a module.  All parsing functions assume that they begin
// with the parser centered on the first token of their production and must
// consume all tokens (including the last) of their production, leaving the
// parser on the next token.  Parsers are created once per token sequence.
type Parser struct {
	// tokens is the token sequence being parsed.
	tokens []*Token

	// ndx is the index of the current token.
	ndx int

	// tok is the current token the parser is positioned on.
	tok *Token

	// eof is the sentinel token returned past the end of the token sequence.
	eof *Token

	// currBlock is the innermost block being parsed.  This is nil outside of
	// any block.
	currBlock *ast.Block
}

// NewParser creates a new parser for the given token sequence.  The parser
// does not modify the sequence.
func NewParser(tokens []*Token) *Parser {
	eof := &Token{Kind: TOK_EOF, Pos: -1}
	if len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		eof.Pos = last.Pos
		eof.Span = last.Span
	}

	p := &Parser{tokens: tokens, eof: eof}
	p.ndx = -1
	p.next()
	return p
}

// Parse parses a token sequence into a module.
func Parse(tokens []*Token) (*ast.Module, error) {
	return NewParser(wrapInBlock(tokens)).Parse()
}

// Parse parses the parser's token sequence as one entry point block.  No
// tokens may follow the entry block.
func (p *Parser) Parse() (*ast.Module, error) {
	entry, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	if !p.got(TOK_EOF) {
		return nil, p.rejectWithMsg("unexpected token after end of program: `%s`", p.tok.Value)
	}

	return ast.NewModule(entry), nil
}

// wrapInBlock returns the token sequence wrapped in a synthetic `[( ... )]`
// block unless it already is exactly one block.
func wrapInBlock(tokens []*Token) []*Token {
	if isSingleBlock(tokens) {
		return tokens
	}

	wrapped := make([]*Token, 0, len(tokens)+4)
	wrapped = append(wrapped,
		&Token{Kind: TOK_LBRACKET, Pos: -1, Value: "["},
		&Token{Kind: TOK_LPAREN, Pos: -1, Value: "("},
	)
	wrapped = append(wrapped, tokens...)
	wrapped = append(wrapped,
		&Token{Kind: TOK_RPAREN, Pos: -1, Value: ")"},
		&Token{Kind: TOK_RBRACKET, Pos: -1, Value: "]"},
	)

	return wrapped
}

// isSingleBlock returns whether the opening `[(` of the token sequence is
// closed by the `)]` at its very end.
func isSingleBlock(tokens []*Token) bool {
	n := len(tokens)
	if n < 4 ||
		tokens[0].Kind != TOK_LBRACKET || tokens[1].Kind != TOK_LPAREN ||
		tokens[n-2].Kind != TOK_RPAREN || tokens[n-1].Kind != TOK_RBRACKET {
		return false
	}

	depth := 0
	for i, tok := range tokens {
		switch tok.Kind {
		case TOK_LBRACKET:
			depth++
		case TOK_RBRACKET:
			depth--
			if depth == 0 {
				return i == n-1
			}
		}
	}

	return false
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() {
	if p.ndx < len(p.tokens) {
		p.ndx++
	}

	if p.ndx < len(p.tokens) {
		p.tok = p.tokens[p.ndx]
	} else {
		p.tok = p.eof
	}
}

// peek returns the token following the current token.
func (p *Parser) peek() *Token {
	if p.ndx+1 < len(p.tokens) {
		return p.tokens[p.ndx+1]
	}

	return p.eof
}

// got returns true if the parser is on a token of a given kind.
func (p *Parser) got(kind int) bool {
	return p.tok.Kind == kind
}

// assert checks if the parser is on a token of a given kind and rejects the
// token if not.
func (p *Parser) assert(kind int) error {
	if p.got(kind) {
		return nil
	}

	return p.reject()
}

// assertAndNext performs an assert operation and moves the parser forward.
func (p *Parser) assertAndNext(kind int) error {
	if err := p.assert(kind); err != nil {
		return err
	}

	p.next()
	return nil
}

// want moves the parser forward one and then asserts that the token the parser
// has moved to is of a given kind.
func (p *Parser) want(kind int) error {
	p.next()
	return p.assert(kind)
}

// -----------------------------------------------------------------------------

// reject produces an unexpected token error on the current token.
func (p *Parser) reject() error {
	if p.got(TOK_EOF) {
		return p.rejectWithMsg("unexpected end of input")
	}

	return p.rejectWithMsg("unexpected token: `%s`", p.tok.Value)
}

// rejectWithMsg produces an error on the current token with a specific
// message.
func (p *Parser) rejectWithMsg(msg string, a ...interface{}) error {
	return p.errorOn(p.tok, msg, a...)
}

// errorOn produces an error on a given token.
func (p *Parser) errorOn(tok *Token, msg string, a ...interface{}) error {
	return report.Raise(report.KindParse, tok.Span, "%s", fmt.Sprintf(msg, a...))
}

// spanFrom returns the span from the start token to the token just consumed.
func (p *Parser) spanFrom(start *Token) *report.TextSpan {
	if p.ndx > 0 && p.ndx-1 < len(p.tokens) {
		return report.NewSpanOver(start.Span, p.tokens[p.ndx-1].Span)
	}

	return start.Span
}
