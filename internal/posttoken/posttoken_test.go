package posttoken

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glsl-lang/glslfront/internal/preprocessor"
	"github.com/glsl-lang/glslfront/internal/token"
)

func newTokenizer() *Tokenizer {
	return New(preprocessor.NewProcessorState())
}

func TestFoldControlFlowKeyword(t *testing.T) {
	tz := newTokenizer()
	out := tz.Fold(token.Token{Kind: token.Identifier, Text: "while"})
	assert.Equal(t, token.Keyword, out.Kind)
}

func TestFoldVoidIsKeywordNotTypeName(t *testing.T) {
	tz := newTokenizer()
	out := tz.Fold(token.Token{Kind: token.Identifier, Text: "void"})
	assert.Equal(t, token.Keyword, out.Kind, "void is classified as a keyword, not a type name")
}

func TestFoldScalarAndVectorTypeNames(t *testing.T) {
	tz := newTokenizer()
	for _, name := range []string{"float", "int", "vec3", "mat4x4", "bool"} {
		out := tz.Fold(token.Token{Kind: token.Identifier, Text: name})
		assert.Equal(t, token.TypeName, out.Kind, name)
	}
}

func TestFoldSamplerTypeNameByPrefixSuffix(t *testing.T) {
	tz := newTokenizer()
	for _, name := range []string{"sampler2D", "samplerCube", "isampler2DArray", "usampler2DMS", "image2D"} {
		out := tz.Fold(token.Token{Kind: token.Identifier, Text: name})
		assert.Equal(t, token.TypeName, out.Kind, name)
	}
}

func TestFoldOrdinaryIdentifierPassesThrough(t *testing.T) {
	tz := newTokenizer()
	out := tz.Fold(token.Token{Kind: token.Identifier, Text: "myVariable"})
	assert.Equal(t, token.Identifier, out.Kind)
}

func TestFoldExtensionGatedTypeNameRequiresEnabledExtension(t *testing.T) {
	state := preprocessor.NewProcessorState()
	tz := New(state)

	out := tz.Fold(token.Token{Kind: token.Identifier, Text: "float16_t"})
	assert.Equal(t, token.Identifier, out.Kind, "extension-gated type names are not recognized until their extension is active")

	state.ExtensionStack = append(state.ExtensionStack, preprocessor.Extension{
		Name:     "GL_EXT_shader_explicit_arithmetic_types",
		Behavior: preprocessor.BehaviorEnable,
	})
	out = tz.Fold(token.Token{Kind: token.Identifier, Text: "float16_t"})
	assert.Equal(t, token.TypeName, out.Kind)
}

func TestFoldExtensionGatedTypeNameDisabledStaysIdentifier(t *testing.T) {
	state := preprocessor.NewProcessorState()
	state.ExtensionStack = append(state.ExtensionStack, preprocessor.Extension{
		Name:     "GL_EXT_shader_explicit_arithmetic_types",
		Behavior: preprocessor.BehaviorDisable,
	})
	tz := New(state)
	out := tz.Fold(token.Token{Kind: token.Identifier, Text: "float16_t"})
	assert.Equal(t, token.Identifier, out.Kind)
}

func TestFoldIntegerLiteral(t *testing.T) {
	tz := newTokenizer()
	out := tz.Fold(token.Token{Kind: token.Digits, Text: "42"})
	assert.Equal(t, token.IntConstant, out.Kind)
}

func TestFoldUnsignedSuffix(t *testing.T) {
	tz := newTokenizer()
	out := tz.Fold(token.Token{Kind: token.Digits, Text: "42u"})
	assert.Equal(t, token.UintConstant, out.Kind)
}

func TestFoldFloatSuffix(t *testing.T) {
	tz := newTokenizer()
	out := tz.Fold(token.Token{Kind: token.Digits, Text: "1.5f"})
	assert.Equal(t, token.FloatConstant, out.Kind)
}

func TestFoldDoubleSuffix(t *testing.T) {
	tz := newTokenizer()
	out := tz.Fold(token.Token{Kind: token.Digits, Text: "1.5lf"})
	assert.Equal(t, token.DoubleConstant, out.Kind)
}

func TestFoldFloatDigitsKindIsAlwaysFloat(t *testing.T) {
	tz := newTokenizer()
	out := tz.Fold(token.Token{Kind: token.FloatDigits, Text: ".5"})
	assert.Equal(t, token.FloatConstant, out.Kind)
}

func TestFoldMalformedSuffixedLiteralIsInvalid(t *testing.T) {
	tz := newTokenizer()
	out := tz.Fold(token.Token{Kind: token.Digits, Text: "99999999999999999999u"})
	assert.Equal(t, token.Invalid, out.Kind)
}

func TestFoldNonIdentifierNonNumberPassesThrough(t *testing.T) {
	tz := newTokenizer()
	in := token.Token{Kind: token.Punct, Text: ";"}
	out := tz.Fold(in)
	require.Equal(t, in, out)
}
