package syntax

import (
	"brik/ast"
	"brik/types"
	"strings"
)

// def = '[' '#def' IDENT [pattern block | expr] ']'
//
// The definition is added to the innermost enclosing block and a reference to
// it is returned in its place.
func (p *Parser) parseDefinition(start *Token) (ast.Node, error) {
	if err := p.want(TOK_IDENT); err != nil {
		return nil, err
	}

	nameTok := p.tok
	p.next()

	var (
		value   ast.Node
		body    *ast.Block
		pattern *types.Pattern
		err     error
	)

	switch p.tok.Kind {
	case TOK_RBRACKET:
	case TOK_PATTERN_START:
		if pattern, err = p.parsePattern(); err != nil {
			return nil, err
		}

		if !p.got(TOK_LBRACKET) || p.peek().Kind != TOK_LPAREN {
			return nil, p.rejectWithMsg("pattern of `%s` must be followed by a block", nameTok.Value)
		}

		if body, err = p.parseBlock(); err != nil {
			return nil, err
		}
	default:
		if value, err = p.parseExpr(); err != nil {
			return nil, err
		}

		if block, ok := value.(*ast.Block); ok {
			body = block
		}
	}

	if err := p.assertAndNext(TOK_RBRACKET); err != nil {
		return nil, err
	}

	if p.currBlock == nil {
		return nil, p.errorOn(start, "cannot define `%s` outside of a block", nameTok.Value)
	}

	var (
		def  ast.Definition
		span = p.spanFrom(start)
	)
	if body != nil {
		def = ast.NewCallDefinition(nameTok.Value, body, pattern, span)
	} else {
		def = ast.NewVarDefinition(nameTok.Value, value, span)
	}
	p.currBlock.Define(def)

	return &ast.Reference{ASTBase: ast.NewASTBaseOn(nameTok.Span), Name: nameTok.Value, Def: def}, nil
}

// pattern = '<' {IDENT [':' IDENT]} '>'
func (p *Parser) parsePattern() (*types.Pattern, error) {
	start := p.tok
	p.next()

	var params []types.Param
	for !p.got(TOK_PATTERN_END) {
		if p.got(TOK_EOF) {
			return nil, p.errorOn(start, "unterminated pattern")
		}

		if err := p.assert(TOK_IDENT); err != nil {
			return nil, err
		}

		param := types.Param{Name: p.tok.Value, Type: types.Unknown}
		p.next()

		if p.got(TOK_COLON) {
			if err := p.want(TOK_IDENT); err != nil {
				return nil, err
			}

			typ, ok := types.LookupName(p.tok.Value)
			if !ok {
				return nil, p.rejectWithMsg("unknown type `%s`", p.tok.Value)
			}

			param.Type = typ
			p.next()
		}

		params = append(params, param)
	}
	p.next()

	pattern, err := types.NewPattern(params...)
	if err != nil {
		return nil, p.errorOn(start, "%s", err.Error())
	}

	return pattern, nil
}

// asm = '[' '#asm' STRING ']'
//
// Each line of the assembly text is trimmed and blank lines are dropped.
func (p *Parser) parseAsm(start *Token) (*ast.AsmMacro, error) {
	if err := p.want(TOK_STRING); err != nil {
		return nil, p.rejectWithMsg("#asm must take a string")
	}

	var lines []string
	for _, line := range strings.Split(p.tok.Value, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	if err := p.want(TOK_RBRACKET); err != nil {
		return nil, err
	}
	p.next()

	return &ast.AsmMacro{
		ASTBase: ast.NewASTBaseOn(p.spanFrom(start)),
		Asm:     strings.Join(lines, "\n"),
	}, nil
}
