package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glsl-lang/glslfront/internal/token"
)

func glueAll(t *testing.T, toks []token.PreToken) []token.Token {
	t.Helper()
	l := New(FromSlice(toks))
	var out []token.Token
	for {
		tok, ok := l.Next()
		if !ok {
			break
		}
		out = append(out, tok)
	}
	return out
}

func pre(kind token.Kind, text string) token.PreToken {
	return token.PreToken{Kind: kind, Text: text}
}

// Two adjacent '#' pre-tokens (as the PreLexer emits every '#' it sees, not
// just directive-leading ones) must glue into a single PP_CONCAT token, not
// pass through as two separate Hash tokens.
func TestGlueHashHashProducesPPConcat(t *testing.T) {
	toks := glueAll(t, []token.PreToken{pre(token.Hash, "#"), pre(token.Hash, "#")})
	require.Len(t, toks, 1)
	assert.Equal(t, token.PPConcat, toks[0].Kind)
	assert.Equal(t, "##", toks[0].Text)
}

// A lone '#' not followed by another '#' stays a Hash token: ordinary
// directive-leading '#' handling must not regress.
func TestGlueLoneHashStaysHash(t *testing.T) {
	toks := glueAll(t, []token.PreToken{pre(token.Hash, "#"), pre(token.Identifier, "define")})
	require.Len(t, toks, 2)
	assert.Equal(t, token.Hash, toks[0].Kind)
	assert.Equal(t, token.Identifier, toks[1].Kind)
}

func TestGlueTwoCharOperators(t *testing.T) {
	cases := []struct {
		first, second string
		want          token.Kind
	}{
		{"+", "+", token.IncOp},
		{"-", "-", token.DecOp},
		{"+", "=", token.AddAssign},
		{"<", "<", token.LeftOp},
		{"<", "=", token.LeOp},
		{">", ">", token.RightOp},
		{"=", "=", token.EqOp},
		{"!", "=", token.NeOp},
		{"&", "&", token.AndOp},
		{"|", "|", token.OrOp},
		{"^", "^", token.XorOpLog},
	}
	for _, c := range cases {
		toks := glueAll(t, []token.PreToken{pre(token.Punct, c.first), pre(token.Punct, c.second)})
		require.Len(t, toks, 1, "%s%s", c.first, c.second)
		assert.Equal(t, c.want, toks[0].Kind, "%s%s", c.first, c.second)
		assert.Equal(t, c.first+c.second, toks[0].Text)
	}
}

// Three-char operators require the thirdAfter table: "<<=" glues past the
// 2-char "<<" into LEFT_ASSIGN, but only when the third token matches.
func TestGlueThreeCharOperator(t *testing.T) {
	toks := glueAll(t, []token.PreToken{pre(token.Punct, "<"), pre(token.Punct, "<"), pre(token.Punct, "=")})
	require.Len(t, toks, 1)
	assert.Equal(t, token.LeftAssign, toks[0].Kind)
	assert.Equal(t, "<<=", toks[0].Text)
}

// When the third token doesn't extend the fusion, only the first two glue
// and the third is pushed back for the next Next() call.
func TestGlueTwoCharStopsBeforeNonMatchingThird(t *testing.T) {
	toks := glueAll(t, []token.PreToken{pre(token.Punct, "<"), pre(token.Punct, "<"), pre(token.Punct, ";")})
	require.Len(t, toks, 2)
	assert.Equal(t, token.LeftOp, toks[0].Kind)
	assert.Equal(t, token.Punct, toks[1].Kind)
	assert.Equal(t, ";", toks[1].Text)
}

// A '.' followed by Digits fuses into a single float literal.
func TestGlueDotDigitsFusesFloat(t *testing.T) {
	toks := glueAll(t, []token.PreToken{pre(token.Period, "."), pre(token.Digits, "5")})
	require.Len(t, toks, 1)
	assert.Equal(t, token.FloatDigits, toks[0].Kind)
	assert.Equal(t, ".5", toks[0].Text)
}

// A lone punctuation with no fusion rule passes through unchanged.
func TestGlueUnrelatedPunctPassesThrough(t *testing.T) {
	toks := glueAll(t, []token.PreToken{pre(token.Punct, "("), pre(token.Punct, ")")})
	require.Len(t, toks, 2)
	assert.Equal(t, token.Punct, toks[0].Kind)
	assert.Equal(t, "(", toks[0].Text)
	assert.Equal(t, token.Punct, toks[1].Kind)
	assert.Equal(t, ")", toks[1].Text)
}
