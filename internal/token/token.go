// Package token defines the shared lexical vocabulary threaded through every
// stage of the GLSL front end: byte ranges, pre-tokens, glued tokens, and
// the kinds the post-tokenizer folds them into.
package token

import "github.com/glsl-lang/glslfront/internal/lineinfo"

// Range is a half-open [Start, End) interval over original source bytes.
// Every token and AST node in this module carries one.
type Range struct {
	Start, End int
}

// Contains reports whether r fully contains o.
func (r Range) Contains(o Range) bool {
	return r.Start <= o.Start && o.End <= r.End
}

// Union returns the smallest Range enclosing both r and o. A zero Range
// (Start==End==0) on either side is treated as absent.
func (r Range) Union(o Range) Range {
	if r == (Range{}) {
		return o
	}
	if o == (Range{}) {
		return r
	}
	out := r
	if o.Start < out.Start {
		out.Start = o.Start
	}
	if o.End > out.End {
		out.End = o.End
	}
	return out
}

// Kind classifies a token. The same enum spans pre-tokens (produced by the
// PreLexer), glued tokens (produced by the Lexer glue stage), and the
// keyword/type refinements applied by the post-tokenizer; stages only ever
// add information, never remove it, so a single flat space is adequate and
// matches how the teacher's own TokenType enum is reused across lexing and
// parsing.
type Kind int

const (
	Invalid Kind = iota

	// Pre-token kinds (§4.2).
	Identifier
	Digits
	Period
	Whitespace
	Newline
	CommentLine
	CommentBlock
	String
	AngleString
	Hash
	Punct // single-char punctuation not otherwise classified

	// Glued operator kinds (§4.3). PP_CONCAT ("##") also lives here.
	IncOp    // ++
	DecOp    // --
	AddAssign
	SubAssign
	MulAssign
	DivAssign
	ModAssign
	LeftOp    // <<
	RightOp   // >>
	LeOp      // <=
	GeOp      // >=
	EqOp      // ==
	NeOp      // !=
	AndOp     // &&
	OrOp      // ||
	XorOpLog  // ^^ (GLSL logical xor)
	LeftAssign
	RightAssign
	AndAssign
	OrAssign
	XorAssign
	PPConcat // ##

	// '.' followed by digits: emitted by the PreLexer directly, or
	// synthesized by the glue stage from Period + Digits.
	FloatDigits

	// Post-tokenizer refinements (§4.5): a subset of Identifier tokens are
	// re-kinded to Keyword or TypeName; Digits/FloatDigits are re-kinded to
	// a typed constant kind.
	Keyword
	TypeName
	IntConstant
	UintConstant
	FloatConstant
	DoubleConstant

	EOF
)

// PreToken is the output of the PreLexer: a raw lexical atom with no
// knowledge of multi-character operators.
type PreToken struct {
	Kind  Kind
	Text  string
	Range Range
}

// Token is the output of the Lexer glue stage (and, after keyword/type
// folding, of the post-tokenizer). HideSet is populated only on tokens that
// passed through macro expansion.
type Token struct {
	Kind    Kind
	Text    string
	Range   Range
	File    lineinfo.FileId
	HideSet HideSet
}

// HideSet is the set of macro names forbidden from re-expansion within a
// token produced by expanding them, implemented as a small owned set rather
// than a shared/reference-counted structure so that the expander never has
// to worry about aliasing between sibling expansions.
type HideSet map[string]struct{}

// Contains reports whether name is in the hide-set. A nil HideSet behaves
// as empty.
func (h HideSet) Contains(name string) bool {
	if h == nil {
		return false
	}
	_, ok := h[name]
	return ok
}

// Union returns a new HideSet containing every name in h or o.
func (h HideSet) Union(o HideSet) HideSet {
	if len(h) == 0 {
		return o
	}
	if len(o) == 0 {
		return h
	}
	out := make(HideSet, len(h)+len(o))
	for k := range h {
		out[k] = struct{}{}
	}
	for k := range o {
		out[k] = struct{}{}
	}
	return out
}

// Intersect returns a new HideSet containing names present in both h and o.
// Used when closing the hide-set of a function-macro invocation: the result
// token's hide-set is (HS(name) ∩ HS(closing paren)) ∪ {name}.
func (h HideSet) Intersect(o HideSet) HideSet {
	out := make(HideSet)
	for k := range h {
		if o.Contains(k) {
			out[k] = struct{}{}
		}
	}
	return out
}

// With returns a new HideSet equal to h plus name.
func (h HideSet) With(name string) HideSet {
	out := make(HideSet, len(h)+1)
	for k := range h {
		out[k] = struct{}{}
	}
	out[name] = struct{}{}
	return out
}

// String renders the token kind symbolically, used by error messages and
// tests.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

var kindNames = map[Kind]string{
	Invalid:        "INVALID",
	Identifier:     "IDENTIFIER",
	Digits:         "DIGITS",
	Period:         "PERIOD",
	Whitespace:     "WHITESPACE",
	Newline:        "NEWLINE",
	CommentLine:    "COMMENT_LINE",
	CommentBlock:   "COMMENT_BLOCK",
	String:         "STRING",
	AngleString:    "ANGLE_STRING",
	Hash:           "HASH",
	Punct:          "PUNCT",
	IncOp:          "INC_OP",
	DecOp:          "DEC_OP",
	AddAssign:      "ADD_ASSIGN",
	SubAssign:      "SUB_ASSIGN",
	MulAssign:      "MUL_ASSIGN",
	DivAssign:      "DIV_ASSIGN",
	ModAssign:      "MOD_ASSIGN",
	LeftOp:         "LEFT_OP",
	RightOp:        "RIGHT_OP",
	LeOp:           "LE_OP",
	GeOp:           "GE_OP",
	EqOp:           "EQ_OP",
	NeOp:           "NE_OP",
	AndOp:          "AND_OP",
	OrOp:           "OR_OP",
	XorOpLog:       "XOR_OP",
	LeftAssign:     "LEFT_ASSIGN",
	RightAssign:    "RIGHT_ASSIGN",
	AndAssign:      "AND_ASSIGN",
	OrAssign:       "OR_ASSIGN",
	XorAssign:      "XOR_ASSIGN",
	PPConcat:       "PP_CONCAT",
	FloatDigits:    "DIGITS",
	Keyword:        "KEYWORD",
	TypeName:       "TYPE_NAME",
	IntConstant:    "INTCONSTANT",
	UintConstant:   "UINTCONSTANT",
	FloatConstant:  "FLOATCONSTANT",
	DoubleConstant: "DOUBLECONSTANT",
	EOF:            "EOF",
}
