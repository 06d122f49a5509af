package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glsl-lang/glslfront/internal/ast"
	"github.com/glsl-lang/glslfront/internal/lineinfo"
	"github.com/glsl-lang/glslfront/internal/token"
)

func tok(kind token.Kind, text string) token.Token {
	return token.Token{Kind: kind, Text: text}
}

// "void main() { int a; }" built directly as already-post-tokenized input,
// bypassing the lexer/preprocessor/post-tokenizer stages entirely.
func TestParseSimpleFunctionDefinition(t *testing.T) {
	toks := []token.Token{
		tok(token.Keyword, "void"), tok(token.Identifier, "main"),
		tok(token.Punct, "("), tok(token.Punct, ")"), tok(token.Punct, "{"),
		tok(token.TypeName, "int"), tok(token.Identifier, "a"), tok(token.Punct, ";"),
		tok(token.Punct, "}"),
	}
	tu, errs := ParseTranslationUnit(lineinfo.PrimaryFile, lineinfo.NewLineMap(lineinfo.PrimaryFile), toks, nil)
	require.Empty(t, errs)
	require.Len(t, tu.Decls, 1)
	def, ok := tu.Decls[0].(*ast.FunctionDefinition)
	require.True(t, ok)
	assert.Equal(t, "main", def.Prototype.Name)
	require.Len(t, def.Body.Stmts, 1)
	_, ok = def.Body.Stmts[0].(*ast.Declaration)
	assert.True(t, ok)
}

// "void" is post-tokenized as Keyword, not TypeName/Identifier; the type
// specifier parser must still accept it as a valid return type.
func TestParseVoidReturnType(t *testing.T) {
	toks := []token.Token{
		tok(token.Keyword, "void"), tok(token.Identifier, "f"),
		tok(token.Punct, "("), tok(token.Punct, ")"), tok(token.Punct, ";"),
	}
	tu, errs := ParseTranslationUnit(lineinfo.PrimaryFile, lineinfo.NewLineMap(lineinfo.PrimaryFile), toks, nil)
	require.Empty(t, errs)
	require.Len(t, tu.Decls, 1)
	proto, ok := tu.Decls[0].(*ast.FunctionPrototype)
	require.True(t, ok)
	assert.Equal(t, "f", proto.Name)
}

// The core parser reports only the first unexpected token and aborts: a
// second, otherwise-valid declaration following a malformed one must never
// be reached, and Errors() must carry exactly one diagnostic.
func TestParseAbortsAfterFirstUnexpectedToken(t *testing.T) {
	toks := []token.Token{
		tok(token.IntConstant, "123"), tok(token.Identifier, "foo"), tok(token.Punct, ";"),
		tok(token.Keyword, "void"), tok(token.Identifier, "b"),
		tok(token.Punct, "("), tok(token.Punct, ")"), tok(token.Punct, "{"), tok(token.Punct, "}"),
	}
	tu, errs := ParseTranslationUnit(lineinfo.PrimaryFile, lineinfo.NewLineMap(lineinfo.PrimaryFile), toks, nil)
	require.Len(t, errs, 1)
	assert.Empty(t, tu.Decls, "parsing must stop before reaching the later, valid declaration")
}

// The synthetic EOF token returned past the end of the stream carries the
// File of the last real token, so an end-of-input diagnostic inside an
// #include'd file resolves against that file, not FileId 0.
func TestParseEOFSentinelCarriesFile(t *testing.T) {
	const includedFile lineinfo.FileId = 3
	toks := []token.Token{
		{Kind: token.Keyword, Text: "void", File: includedFile},
		{Kind: token.Identifier, Text: "main", File: includedFile},
		{Kind: token.Punct, Text: "(", File: includedFile},
		{Kind: token.Punct, Text: ")", File: includedFile},
		{Kind: token.Punct, Text: "{", File: includedFile},
	}
	lm := lineinfo.NewLineMap(includedFile)
	_, errs := ParseTranslationUnit(includedFile, lm, toks, func(lineinfo.FileId) *lineinfo.LineMap { return lm })
	require.Len(t, errs, 1)
	assert.Equal(t, includedFile, errs[0].File)
}

// A stray top-level ';' is a harmless empty declaration and does not count
// as an unexpected token.
func TestParseStrayTopLevelSemicolon(t *testing.T) {
	toks := []token.Token{
		tok(token.Punct, ";"), tok(token.Punct, ";"),
		tok(token.Keyword, "void"), tok(token.Identifier, "f"),
		tok(token.Punct, "("), tok(token.Punct, ")"), tok(token.Punct, ";"),
	}
	tu, errs := ParseTranslationUnit(lineinfo.PrimaryFile, lineinfo.NewLineMap(lineinfo.PrimaryFile), toks, nil)
	require.Empty(t, errs)
	require.Len(t, tu.Decls, 1)
}

func TestCurrentPastEndReturnsEOF(t *testing.T) {
	p := New(lineinfo.PrimaryFile, lineinfo.NewLineMap(lineinfo.PrimaryFile), []token.Token{tok(token.Punct, ";")}, nil)
	p.advance()
	assert.Equal(t, token.EOF, p.Current().Kind)
	assert.Equal(t, token.EOF, p.Current().Kind, "Current() past end is idempotent")
}

func TestPeekNReturnsEOFPastEnd(t *testing.T) {
	p := New(lineinfo.PrimaryFile, lineinfo.NewLineMap(lineinfo.PrimaryFile), []token.Token{tok(token.Punct, ";")}, nil)
	p.advance()
	assert.Equal(t, token.EOF, p.PeekN(5).Kind)
}
