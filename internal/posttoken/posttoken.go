// Package posttoken implements the post-tokenizer / Tokenizer stage (§4.5):
// folding identifier tokens into keyword/type-name tokens, and typing
// numeric-literal tokens with suffix handling.
//
// The keyword tables follow the teacher's package-level tokenKeywordsMap
// (lexer.go: a pre-compiled map[string]struct{} consulted by
// stateIdentifier): coreKeywords and typeKeywords are flat sets that apply
// whatever the active #version and profile are. Only the extension-gated
// type names in extensionTypeNames consult the active
// preprocessor.ProcessorState, through its extension stack; version,
// profile and a Vulkan target do not change which words are keywords.
package posttoken

import (
	"strconv"
	"strings"

	"github.com/glsl-lang/glslfront/internal/preprocessor"
	"github.com/glsl-lang/glslfront/internal/token"
)

// coreKeywords are recognized in every GLSL version this front end models.
// This is not the full reserved-word list of every GLSL/GLSL ES version;
// it covers the constructs SPEC_FULL.md's parser actually builds (control
// flow, qualifiers, and the common scalar/vector/matrix/sampler type
// names), which is what a front end needs to produce a structurally
// correct AST rather than reject valid shader source on an unlisted word.
var coreKeywords = map[string]struct{}{
	"attribute": {}, "const": {}, "uniform": {}, "varying": {}, "buffer": {},
	"shared": {}, "coherent": {}, "volatile": {}, "restrict": {}, "readonly": {}, "writeonly": {},
	"layout": {}, "centroid": {}, "flat": {}, "smooth": {}, "noperspective": {}, "patch": {}, "sample": {},
	"break": {}, "continue": {}, "do": {}, "for": {}, "while": {}, "switch": {}, "case": {}, "default": {},
	"if": {}, "else": {}, "subroutine": {}, "in": {}, "out": {}, "inout": {},
	"discard": {}, "return": {}, "precision": {}, "highp": {}, "mediump": {}, "lowp": {},
	"struct": {}, "void": {}, "true": {}, "false": {},
	"invariant": {}, "precise": {},
}

// typeKeywords are GLSL type names the post-tokenizer re-kinds to TypeName
// rather than Keyword, so the parser can distinguish "this starts a type
// specifier" from "this starts a control-flow or qualifier construct".
var typeKeywords = map[string]struct{}{
	"float": {}, "double": {}, "int": {}, "uint": {}, "bool": {},
	"vec2": {}, "vec3": {}, "vec4": {},
	"dvec2": {}, "dvec3": {}, "dvec4": {},
	"ivec2": {}, "ivec3": {}, "ivec4": {},
	"uvec2": {}, "uvec3": {}, "uvec4": {},
	"bvec2": {}, "bvec3": {}, "bvec4": {},
	"mat2": {}, "mat3": {}, "mat4": {},
	"mat2x2": {}, "mat2x3": {}, "mat2x4": {},
	"mat3x2": {}, "mat3x3": {}, "mat3x4": {},
	"mat4x2": {}, "mat4x3": {}, "mat4x4": {},
}

// samplerBasePrefixes name every sampler/image/texture family base; the
// post-tokenizer matches them by prefix+suffix combination rather than
// enumerating the full cross product, since the GLSL sampler family is
// itself generated that way (e.g. sampler2D, sampler2DArray, samplerCube,
// isampler2D, usampler2DMS, sampler2DShadow, image2D, ...).
var samplerBasePrefixes = []string{"sampler", "isampler", "usampler", "image", "iimage", "uimage", "texture", "itexture", "utexture", "subpassInput", "subpassInputMS"}
var samplerSuffixes = []string{
	"1D", "2D", "3D", "Cube", "2DRect", "1DArray", "2DArray", "CubeArray",
	"Buffer", "2DMS", "2DMSArray", "1DShadow", "2DShadow", "2DRectShadow",
	"1DArrayShadow", "2DArrayShadow", "CubeShadow", "CubeArrayShadow",
}

func isSamplerTypeName(name string) bool {
	for _, p := range samplerBasePrefixes {
		if !strings.HasPrefix(name, p) {
			continue
		}
		suffix := name[len(p):]
		for _, s := range samplerSuffixes {
			if suffix == s {
				return true
			}
		}
	}
	return false
}

// Tokenizer folds a stream of glued lexer.Token (§4.3) into post-tokens:
// keyword/type-name refinement plus typed numeric-constant parsing. It is
// stateless beyond the ProcessorState it is constructed with, whose
// extension stack decides the extension-gated type names.
type Tokenizer struct {
	state *preprocessor.ProcessorState
}

// New builds a Tokenizer consulting state's extension stack for
// extension-dependent type names (§4.5).
func New(state *preprocessor.ProcessorState) *Tokenizer {
	return &Tokenizer{state: state}
}

// Fold re-kinds one already-glued token in place, returning the refined
// token. Non-identifier, non-numeric tokens pass through unchanged.
func (t *Tokenizer) Fold(tok token.Token) token.Token {
	switch tok.Kind {
	case token.Identifier:
		return t.foldIdentifier(tok)
	case token.Digits, token.FloatDigits:
		return t.foldNumber(tok)
	default:
		return tok
	}
}

func (t *Tokenizer) foldIdentifier(tok token.Token) token.Token {
	name := tok.Text
	if _, ok := typeKeywords[name]; ok {
		tok.Kind = token.TypeName
		return tok
	}
	if isSamplerTypeName(name) {
		tok.Kind = token.TypeName
		return tok
	}
	if _, ok := coreKeywords[name]; ok {
		tok.Kind = token.Keyword
		return tok
	}
	if t.isExtensionTypeName(name) {
		tok.Kind = token.TypeName
	}
	return tok
}

// isExtensionTypeName recognizes type names only valid when their
// introducing extension is enabled/required/warned (not disabled), per
// §4.5's "according to the extension registry".
func (t *Tokenizer) isExtensionTypeName(name string) bool {
	ext, ok := extensionTypeNames[name]
	if !ok {
		return false
	}
	for _, e := range t.state.ExtensionStack {
		if e.Name == ext && e.Behavior != preprocessor.BehaviorDisable {
			return true
		}
	}
	return false
}

// extensionTypeNames maps a handful of extension-gated type names to the
// extension that introduces them, illustrating the version/extension-
// dependent keyword set §4.5 calls for without attempting to enumerate
// every GLSL extension's vocabulary.
var extensionTypeNames = map[string]string{
	"float16_t":  "GL_EXT_shader_explicit_arithmetic_types",
	"int8_t":     "GL_EXT_shader_explicit_arithmetic_types",
	"int16_t":    "GL_EXT_shader_explicit_arithmetic_types",
	"int64_t":    "GL_ARB_gpu_shader_int64",
	"uint64_t":   "GL_ARB_gpu_shader_int64",
	"accelerationStructureEXT": "GL_EXT_ray_tracing",
}

// NumericError reports a malformed or unrepresentable numeric literal
// (§4.5, §7 KindUnrepresentableNumber).
type NumericError struct {
	Msg string
}

func (e *NumericError) Error() string { return e.Msg }

func (t *Tokenizer) foldNumber(tok token.Token) token.Token {
	text := tok.Text
	isFloatLiteral := tok.Kind == token.FloatDigits || strings.ContainsAny(text, ".")

	suffix := ""
	body := text
	isHex := strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X")
	for _, s := range []string{"lf", "LF", "Lf", "lF", "f", "F", "u", "U"} {
		if isHex && s != "u" && s != "U" {
			continue // a trailing f/F is a hex digit, not a float suffix
		}
		if strings.HasSuffix(body, s) {
			suffix = s
			body = strings.TrimSuffix(body, s)
			break
		}
	}

	expPos := strings.IndexAny(body, "eE")
	hasExponent := expPos > 0 && !strings.HasPrefix(body, "0x") && !strings.HasPrefix(body, "0X")
	if hasExponent || strings.Contains(body, ".") {
		isFloatLiteral = true
	}

	switch strings.ToLower(suffix) {
	case "u":
		tok.Kind = token.UintConstant
		if _, err := strconv.ParseUint(stripRadixPrefix(body), 0, 32); err != nil {
			tok.Kind = token.Invalid
		}
		return tok
	case "lf":
		tok.Kind = token.DoubleConstant
		if _, err := strconv.ParseFloat(body, 64); err != nil {
			tok.Kind = token.Invalid
		}
		return tok
	case "f":
		tok.Kind = token.FloatConstant
		if _, err := strconv.ParseFloat(body, 64); err != nil {
			tok.Kind = token.Invalid
		}
		return tok
	}

	if isFloatLiteral {
		tok.Kind = token.FloatConstant
		if _, err := strconv.ParseFloat(body, 64); err != nil {
			tok.Kind = token.Invalid
		}
		return tok
	}

	tok.Kind = token.IntConstant
	if _, err := strconv.ParseInt(stripRadixPrefix(body), 0, 32); err != nil {
		// Overflow of a 32-bit signed value is the common real-world case
		// (a literal like 4294967295 meant as unsigned without the 'u'
		// suffix); a value that fits in 32 unsigned bits stays an
		// IntConstant with no diagnostic. Only a literal beyond that
		// becomes Invalid, matching §7's "unrepresentable numeric literal".
		if _, uerr := strconv.ParseUint(stripRadixPrefix(body), 0, 32); uerr != nil {
			tok.Kind = token.Invalid
		}
	}
	return tok
}

// stripRadixPrefix leaves Go's strconv to detect 0x/0 radices itself via
// base 0, except octal: GLSL's leading-zero octal matches C and Go's
// ParseInt(base=0) both already accept "0" + digits as octal, so no
// special-casing is required here beyond documenting the assumption.
func stripRadixPrefix(s string) string { return s }
