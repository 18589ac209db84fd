package build

import (
	"brik/ast"
	"brik/generate"
	"brik/ir"
	"brik/lower"
	"brik/platform"
	"brik/report"
	"brik/syntax"
	"brik/util"
	"strings"
)

// Result holds the product of every stage of one compilation.
type Result struct {
	Tokens []*syntax.Token
	Module *ast.Module
	IR     *ir.Module
	Asm    string
}

// Compiler runs the compilation pipeline for one set of options.  Compiling
// never touches the filesystem: that is left to Build.
type Compiler struct {
	opts *Options
	plat *platform.Platform

	// tracer receives the compilation trace.  It is nil unless the options
	// enable debugging.
	tracer *report.Tracer
}

// NewCompiler creates a new compiler.  If the options enable debugging, the
// trace is written to tracer; a nil tracer falls back to the console.
func NewCompiler(opts *Options, tracer *report.Tracer) (*Compiler, error) {
	plat, err := platform.New(opts.Target)
	if err != nil {
		return nil, err
	}

	c := &Compiler{opts: opts, plat: plat}
	if opts.Debug {
		if tracer == nil {
			tracer = report.NewConsoleTracer()
		}

		c.tracer = tracer
	}

	return c, nil
}

// Platform returns the platform the compiler targets.
func (c *Compiler) Platform() *platform.Platform {
	return c.plat
}

// Compile compiles source text into assembly text.  The first error of any
// stage aborts the compilation.
func (c *Compiler) Compile(source string) (*Result, error) {
	res, err := c.compileFront(source)
	if err != nil {
		return nil, err
	}

	res.Asm = generate.NewGenerator(c.plat).Generate(res.IR)
	c.tracer.Phase("generate").Tracef("%d bytes of assembly", len(res.Asm))

	return res, nil
}

// CompileLLVM compiles source text into LLVM IR text using the experimental
// LLVM backend.
func (c *Compiler) CompileLLVM(source string) (string, error) {
	res, err := c.compileFront(source)
	if err != nil {
		return "", err
	}

	return generate.GenerateLLVM(res.IR), nil
}

// compileFront runs every stage up to and including lowering.
func (c *Compiler) compileFront(source string) (*Result, error) {
	tokens, err := syntax.Tokenize(source)
	if err != nil {
		return nil, err
	}

	if tr := c.tracer.Phase("tokenize"); tr.Enabled() {
		tr.Tracef("%d tokens", len(tokens))
		tr.Tracef("%s", joinTokens(tokens))
	}

	mod, err := syntax.Parse(tokens)
	if err != nil {
		return nil, err
	}

	if tr := c.tracer.Phase("parse"); tr.Enabled() {
		tr.Tracef("%s", util.Sprint("  ", mod))
	}

	irMod, err := lower.NewLowerer(c.plat, c.tracer).Lower(mod)
	if err != nil {
		return nil, err
	}

	if tr := c.tracer.Phase("ir"); tr.Enabled() {
		tr.Tracef("%s", util.Sprint("  ", irMod))
	}

	return &Result{Tokens: tokens, Module: mod, IR: irMod}, nil
}

// joinTokens formats a token sequence one token per line.
func joinTokens(tokens []*syntax.Token) string {
	lines := make([]string, len(tokens))
	for i, tok := range tokens {
		lines[i] = tok.String()
	}

	return strings.Join(lines, "\n")
}
