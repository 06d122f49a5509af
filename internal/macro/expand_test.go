package macro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glsl-lang/glslfront/internal/token"
)

type stubBuiltins struct{}

func (stubBuiltins) ResolveLine(site token.Token) token.Token {
	return token.Token{Kind: token.Digits, Text: "1"}
}
func (stubBuiltins) ResolveFile(site token.Token) token.Token {
	return token.Token{Kind: token.Digits, Text: "0"}
}
func (stubBuiltins) ResolveVersion(site token.Token) token.Token {
	return token.Token{Kind: token.Digits, Text: "460"}
}

func ident(name string) token.Token { return token.Token{Kind: token.Identifier, Text: name} }
func digits(text string) token.Token { return token.Token{Kind: token.Digits, Text: text} }
func punct(text string) token.Token  { return token.Token{Kind: token.Punct, Text: text} }

func TestTableInsertAndLookup(t *testing.T) {
	tbl := NewTable()
	ok := tbl.DefineObjectLike("N", []token.Token{digits("4")}, false)
	require.True(t, ok)

	def, found := tbl.Lookup("N")
	require.True(t, found)
	assert.Equal(t, Regular, def.Kind)
	body, ok := def.Define.Body.(ObjectBody)
	require.True(t, ok)
	assert.Equal(t, "4", body.List[0].Text)
}

func TestTableProtectedRedefinitionRefused(t *testing.T) {
	tbl := NewTable()
	tbl.DefinePseudo("__LINE__", Line)

	ok := tbl.DefineObjectLike("__LINE__", []token.Token{digits("7")}, false)
	assert.False(t, ok, "redefining a protected macro must be refused")

	def, _ := tbl.Lookup("__LINE__")
	assert.Equal(t, Line, def.Kind, "the protected definition must be unchanged")
}

func TestTableUndefProtectedRefused(t *testing.T) {
	tbl := NewTable()
	tbl.DefineSentinel("GL_core_profile")
	ok := tbl.Undef("GL_core_profile")
	assert.False(t, ok)
	_, found := tbl.Lookup("GL_core_profile")
	assert.True(t, found)
}

func TestTableCloneIsIndependent(t *testing.T) {
	tbl := NewTable()
	tbl.DefineObjectLike("A", []token.Token{digits("1")}, false)
	clone := tbl.Clone()
	clone.DefineObjectLike("A", []token.Token{digits("2")}, false)

	def, _ := tbl.Lookup("A")
	assert.Equal(t, "1", def.Define.Body.(ObjectBody).List[0].Text, "mutating a clone must not affect the original")
}

func TestSameDefinitionIgnoresNothingButTokenText(t *testing.T) {
	a := &Define{Body: ObjectBody{List: []token.Token{digits("4")}}}
	b := &Define{Body: ObjectBody{List: []token.Token{digits("4")}}}
	assert.True(t, SameDefinition(a, b))

	c := &Define{Body: ObjectBody{List: []token.Token{digits("5")}}}
	assert.False(t, SameDefinition(a, c))
}

func TestExpandObjectMacro(t *testing.T) {
	tbl := NewTable()
	tbl.DefineObjectLike("N", []token.Token{digits("4")}, false)
	e := NewExpander(tbl, stubBuiltins{})

	out := e.Expand([]token.Token{ident("N")})
	require.Len(t, out, 1)
	assert.Equal(t, "4", out[0].Text)
}

// A macro is not re-expanded inside its own expansion (hide-set self
// reference guard).
func TestExpandObjectMacroSelfReferenceNotReExpanded(t *testing.T) {
	tbl := NewTable()
	tbl.DefineObjectLike("X", []token.Token{ident("X"), digits("1")}, false)
	e := NewExpander(tbl, stubBuiltins{})

	out := e.Expand([]token.Token{ident("X")})
	require.Len(t, out, 2)
	assert.Equal(t, token.Identifier, out[0].Kind)
	assert.Equal(t, "X", out[0].Text)
	assert.Equal(t, "1", out[1].Text)
}

// A function-like macro name with no following '(' is left unexpanded.
func TestExpandFunctionMacroWithoutCallPassesThrough(t *testing.T) {
	tbl := NewTable()
	tbl.DefineFunctionLike("F", []string{"a"}, false, []token.Token{ident("a")}, false)
	e := NewExpander(tbl, stubBuiltins{})

	out := e.Expand([]token.Token{ident("F"), punct(";")})
	require.Len(t, out, 2)
	assert.Equal(t, "F", out[0].Text)
}

func TestExpandFunctionMacroSubstitutesArgs(t *testing.T) {
	tbl := NewTable()
	tbl.DefineFunctionLike("ADD", []string{"a", "b"}, false,
		[]token.Token{ident("a"), punct("+"), ident("b")}, false)
	e := NewExpander(tbl, stubBuiltins{})

	out := e.Expand([]token.Token{ident("ADD"), punct("("), digits("1"), punct(","), digits("2"), punct(")")})
	require.Len(t, out, 3)
	assert.Equal(t, "1", out[0].Text)
	assert.Equal(t, "+", out[1].Text)
	assert.Equal(t, "2", out[2].Text)
}

// CAT(1, 2) with body "a ## b" must concatenate into one DIGITS token "12",
// not leave "1" "##" "2" (or two separate tokens) in the output.
func TestExpandFunctionMacroConcatDigits(t *testing.T) {
	tbl := NewTable()
	body := []token.Token{ident("a"), {Kind: token.PPConcat, Text: "##"}, ident("b")}
	tbl.DefineFunctionLike("CAT", []string{"a", "b"}, false, body, false)
	e := NewExpander(tbl, stubBuiltins{})

	out := e.Expand([]token.Token{ident("CAT"), punct("("), digits("1"), punct(","), digits("2"), punct(")")})
	require.Len(t, out, 1)
	assert.Equal(t, token.Digits, out[0].Kind)
	assert.Equal(t, "12", out[0].Text)
	assert.Empty(t, e.Diagnostics())
}

// A "##" paste that wouldn't re-lex as a single token is refused: both
// original tokens are emitted and a diagnostic is raised.
func TestExpandConcatInvalidTokenWarns(t *testing.T) {
	tbl := NewTable()
	body := []token.Token{ident("a"), {Kind: token.PPConcat, Text: "##"}, ident("b")}
	tbl.DefineFunctionLike("CAT", []string{"a", "b"}, false, body, false)
	e := NewExpander(tbl, stubBuiltins{})

	out := e.Expand([]token.Token{ident("CAT"), punct("("), punct("+"), punct(","), punct("-"), punct(")")})
	require.Len(t, out, 2)
	assert.NotEmpty(t, e.Diagnostics())
}

// An arity mismatch on a non-variadic function macro is reported and the
// macro name passes through unexpanded.
func TestExpandArityMismatchWarns(t *testing.T) {
	tbl := NewTable()
	tbl.DefineFunctionLike("ADD", []string{"a", "b"}, false,
		[]token.Token{ident("a"), punct("+"), ident("b")}, false)
	e := NewExpander(tbl, stubBuiltins{})

	out := e.Expand([]token.Token{ident("ADD"), punct("("), digits("1"), punct(")")})
	require.Len(t, out, 1)
	assert.Equal(t, "ADD", out[0].Text)
	require.NotEmpty(t, e.Diagnostics())
}

func TestExpandPseudoMacroLine(t *testing.T) {
	tbl := NewTable()
	tbl.DefinePseudo("__LINE__", Line)
	e := NewExpander(tbl, stubBuiltins{})

	out := e.Expand([]token.Token{ident("__LINE__")})
	require.Len(t, out, 1)
	assert.Equal(t, "1", out[0].Text)
}
