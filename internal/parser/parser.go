// Package parser implements the recursive-descent GLSL parser (§4.6): it
// consumes the post-tokenizer's typed token stream and produces an
// internal/ast tree, generalizing the teacher's Parser cursor idiom
// (parser.go: Current/Match/Peek/Get/Error over a flat []*Token) to GLSL's
// declaration/statement/expression grammar, and the teacher's
// precedence-chain expression parser (parser_expression.go:
// ParseExpression -> parseRelationalExpression -> parseSimpleExpression ->
// parseTerm -> parsePower -> parseFactor) extended to GLSL's full operator
// precedence table.
package parser

import (
	"fmt"

	"github.com/glsl-lang/glslfront/internal/ast"
	"github.com/glsl-lang/glslfront/internal/diag"
	"github.com/glsl-lang/glslfront/internal/lineinfo"
	"github.com/glsl-lang/glslfront/internal/token"
)

// Parser walks a fixed token slice with a single cursor index, matching the
// teacher's Parser (idx int; tokens []*Token) rather than a streaming
// lexer, since the full token stream already exists once the preprocessor
// and post-tokenizer have run to completion.
type Parser struct {
	file      lineinfo.FileId
	lineMapOf func(lineinfo.FileId) *lineinfo.LineMap
	toks      []token.Token
	idx       int
	errs      []*diag.Error

	// aborted is set the first time a diagnostic is recorded. The core
	// parser reports only the first unexpected token and then stops
	// descending into further declarations/statements; it does not
	// attempt to resynchronize and keep parsing (§4.6, §7).
	aborted bool

	// userTypeNames records struct names declared so far, letting
	// isDeclarationStart recognize `Foo x;` as a declaration without a
	// full semantic symbol table (parser is a syntax-only stage, §9).
	userTypeNames map[string]bool
}

// New builds a Parser over toks (already preprocessed and post-tokenized).
// file/lineMap resolve positions for tokens that don't carry a more
// specific token.Token.File (e.g. synthesized EOF); lineMapOf, when
// non-nil, is additionally consulted per-token so diagnostics inside an
// #include'd file resolve against that file's own LineMap rather than the
// root unit's. Passing a nil lineMapOf is fine for single-file callers
// (tests feeding synthetic tokens with no FileId).
func New(file lineinfo.FileId, lineMap *lineinfo.LineMap, toks []token.Token, lineMapOf func(lineinfo.FileId) *lineinfo.LineMap) *Parser {
	if lineMapOf == nil {
		lineMapOf = func(lineinfo.FileId) *lineinfo.LineMap { return lineMap }
	}
	return &Parser{file: file, lineMapOf: lineMapOf, toks: toks}
}

// Errors returns the diagnostics accumulated during parsing. The core
// parser reports only the first unexpected token it hits and aborts; a
// non-empty result means exactly that: the stream stopped at the first
// syntax error, with no recovery attempted (§4.6, §7).
func (p *Parser) Errors() []*diag.Error { return p.errs }

// errorAt records a diagnostic anchored to tok's own file and range, so
// multi-file translation units (after #include splicing) still resolve
// correct per-file positions. Only the first call across a parse actually
// records a diagnostic; every call marks the parser aborted so enclosing
// loops stop descending further instead of resynchronizing.
func (p *Parser) errorAt(tok token.Token, format string, args ...interface{}) {
	if !p.aborted {
		file := tok.File
		if file == 0 && len(p.toks) == 0 {
			file = p.file
		}
		e := diag.New(diag.KindUnexpected, file, p.lineMapOf(file), tok.Range, fmt.Sprintf(format, args...))
		e.Fatal = true // the parse stops here
		p.errs = append(p.errs, e)
	}
	p.aborted = true
}

// errorf records a diagnostic anchored to the current cursor token's file,
// for call sites that only have a Range (typically a union of several
// tokens already known to share one file). See errorAt for the
// first-error-wins / abort semantics.
func (p *Parser) errorf(r token.Range, format string, args ...interface{}) {
	if !p.aborted {
		file := p.Current().File
		e := diag.New(diag.KindUnexpected, file, p.lineMapOf(file), r, fmt.Sprintf(format, args...))
		e.Fatal = true // the parse stops here
		p.errs = append(p.errs, e)
	}
	p.aborted = true
}

// Current returns the token at the cursor, or the EOF sentinel past the
// end of input.
func (p *Parser) Current() token.Token {
	if p.idx < len(p.toks) {
		return p.toks[p.idx]
	}
	if n := len(p.toks); n > 0 {
		last := p.toks[n-1]
		end := last.Range.End
		return token.Token{Kind: token.EOF, Range: token.Range{Start: end, End: end}, File: last.File}
	}
	return token.Token{Kind: token.EOF, File: p.file}
}

// PeekN returns the token shift positions ahead of the cursor (0 ==
// Current), or the EOF sentinel past the end of input.
func (p *Parser) PeekN(shift int) token.Token {
	i := p.idx + shift
	if i >= 0 && i < len(p.toks) {
		return p.toks[i]
	}
	return p.Current()
}

func (p *Parser) atEOF() bool { return p.idx >= len(p.toks) }

func (p *Parser) advance() token.Token {
	t := p.Current()
	if p.idx < len(p.toks) {
		p.idx++
	}
	return t
}

// is reports whether the current token has the given kind and (when val is
// non-empty) text.
func (p *Parser) is(kind token.Kind, val string) bool {
	t := p.Current()
	if t.Kind != kind {
		return false
	}
	return val == "" || t.Text == val
}

// match consumes and returns the current token if it matches kind/val.
func (p *Parser) match(kind token.Kind, val string) (token.Token, bool) {
	if p.is(kind, val) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect consumes the current token if it matches, else records a
// diagnostic (which aborts the parse, see errorAt) and returns the token
// unconsumed.
func (p *Parser) expect(kind token.Kind, val string) (token.Token, bool) {
	if t, ok := p.match(kind, val); ok {
		return t, true
	}
	t := p.Current()
	want := val
	if want == "" {
		want = kind.String()
	}
	p.errorAt(t, "expected %q, found %q", want, t.Text)
	return t, false
}

// ParseTranslationUnit parses the entire token stream as a sequence of
// external declarations (§4.6), the parser's sole public entry point.
func ParseTranslationUnit(file lineinfo.FileId, lineMap *lineinfo.LineMap, toks []token.Token, lineMapOf func(lineinfo.FileId) *lineinfo.LineMap) (*ast.TranslationUnit, []*diag.Error) {
	p := New(file, lineMap, toks, lineMapOf)
	start := p.Current().Range
	tu := &ast.TranslationUnit{}
	for !p.atEOF() && !p.aborted {
		if _, ok := p.match(token.Punct, ";"); ok {
			continue // a stray top-level ';' is an empty declaration, harmless
		}
		decl := p.parseExternalDeclaration()
		if decl != nil {
			tu.Decls = append(tu.Decls, decl)
		}
		// decl == nil means parseExternalDeclaration already recorded the
		// first unexpected token and set p.aborted; the loop exits above.
	}
	end := start
	if n := len(toks); n > 0 {
		end = toks[n-1].Range
	}
	tu.Range = start.Union(end)
	return tu, p.errs
}
