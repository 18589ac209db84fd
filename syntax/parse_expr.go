package syntax

import (
	"brik/ast"
	"strconv"
)

// expr = block | call | list | NUMBER | STRING | IDENT
func (p *Parser) parseExpr() (ast.Node, error) {
	switch p.tok.Kind {
	case TOK_LBRACKET:
		if p.peek().Kind == TOK_LPAREN {
			return p.parseBlock()
		}

		return p.parseCall()
	case TOK_LPAREN:
		return p.parseList()
	case TOK_NUMBER:
		return p.parseNumber()
	case TOK_STRING:
		str := &ast.String{ASTBase: ast.NewASTBaseOn(p.tok.Span), Value: p.tok.Value}
		p.next()
		return str, nil
	case TOK_IDENT:
		ref := &ast.Reference{ASTBase: ast.NewASTBaseOn(p.tok.Span), Name: p.tok.Value}
		p.next()
		return ref, nil
	case TOK_LBRACE:
		return nil, p.rejectWithMsg("struct literals are not supported")
	}

	return nil, p.reject()
}

// block = '[' '(' {expr} ')' ']'
func (p *Parser) parseBlock() (*ast.Block, error) {
	start := p.tok
	if err := p.assert(TOK_LBRACKET); err != nil {
		return nil, err
	}

	if err := p.want(TOK_LPAREN); err != nil {
		return nil, err
	}
	p.next()

	block := ast.NewBlock(nil, p.currBlock)
	p.currBlock = block
	defer func() {
		p.currBlock = block.Parent
	}()

	for !p.got(TOK_RPAREN) {
		if p.got(TOK_EOF) {
			return nil, p.errorOn(start, "missing closing `)]` for block")
		}

		node, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		block.Contents = append(block.Contents, node)
	}

	if err := p.want(TOK_RBRACKET); err != nil {
		return nil, err
	}
	p.next()

	block.ASTBase = ast.NewASTBaseOn(p.spanFrom(start))
	return block, nil
}

// call = '[' (IDENT {expr} | def | asm) ']'
func (p *Parser) parseCall() (ast.Node, error) {
	start := p.tok
	p.next()

	if p.got(TOK_KEYWORD) {
		switch p.tok.Value {
		case KeywordDef:
			return p.parseDefinition(start)
		case KeywordAsm:
			return p.parseAsm(start)
		default:
			return nil, p.rejectWithMsg("unrecognized keyword `#%s`", p.tok.Value)
		}
	}

	if err := p.assert(TOK_IDENT); err != nil {
		return nil, err
	}

	name := p.tok.Value
	p.next()

	operands := []ast.Node{}
	for !p.got(TOK_RBRACKET) {
		if p.got(TOK_EOF) {
			return nil, p.errorOn(start, "missing closing bracket for call to `%s`", name)
		}

		op, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		operands = append(operands, op)
	}
	p.next()

	return &ast.Call{
		ASTBase:  ast.NewASTBaseOn(p.spanFrom(start)),
		Name:     name,
		Operands: operands,
	}, nil
}

// list = '(' {expr} ')'
func (p *Parser) parseList() (*ast.List, error) {
	start := p.tok
	p.next()

	contents := []ast.Node{}
	for !p.got(TOK_RPAREN) {
		if p.got(TOK_EOF) {
			return nil, p.errorOn(start, "missing closing paren for list")
		}

		node, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		contents = append(contents, node)
	}
	p.next()

	return &ast.List{ASTBase: ast.NewASTBaseOn(p.spanFrom(start)), Contents: contents}, nil
}

// parseNumber parses a number token.
func (p *Parser) parseNumber() (*ast.Number, error) {
	n, err := strconv.ParseInt(p.tok.Value, 10, 64)
	if err != nil {
		return nil, p.rejectWithMsg("malformed integer literal `%s`", p.tok.Value)
	}

	num := &ast.Number{ASTBase: ast.NewASTBaseOn(p.tok.Span), Value: n}
	p.next()
	return num, nil
}
