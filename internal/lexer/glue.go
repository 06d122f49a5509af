// Package lexer implements the glue stage (§4.3): it wraps a PreToken
// source and fuses adjacent punctuation pre-tokens into the longest
// matching GLSL operator token, using a 2-token lookahead buffer.
//
// The fusion logic (the fusionRule table and the glue method below, which
// covers both two- and three-token fusions) is grounded
// directly on the original glsl-lang-pp Rust lexer's glue stage
// (lexer/glue.rs), which is the one component in this module where the
// Go teacher's own symbol-fusion table (pongo2's longest-match
// TokenSymbols list) solves a strictly simpler problem: it has no
// three-token fusions and no digit-gluing, so the buffer discipline here
// is adapted from the original rather than from the teacher.
package lexer

import "github.com/glsl-lang/glslfront/internal/token"

// Source yields PreTokens one at a time; ok is false once exhausted.
type Source interface {
	Next() (token.PreToken, bool)
}

// sliceSource adapts a materialized []token.PreToken (as produced by
// prelex.PreLexer.Lex) into a Source.
type sliceSource struct {
	toks []token.PreToken
	idx  int
}

// FromSlice builds a Source over an already-scanned pre-token slice.
func FromSlice(toks []token.PreToken) Source { return &sliceSource{toks: toks} }

func (s *sliceSource) Next() (token.PreToken, bool) {
	if s.idx >= len(s.toks) {
		return token.PreToken{}, false
	}
	t := s.toks[s.idx]
	s.idx++
	return t, true
}

// Lexer fuses PreTokens from src into glued Tokens.
type Lexer struct {
	src    Source
	buffer []token.PreToken // at most 2 pending, unglued pre-tokens
}

// New wraps src with the glue stage.
func New(src Source) *Lexer {
	return &Lexer{src: src}
}

// next pulls the next pre-token, preferring the lookahead buffer.
func (l *Lexer) next() (token.PreToken, bool) {
	if n := len(l.buffer); n > 0 {
		t := l.buffer[n-1]
		l.buffer = l.buffer[:n-1]
		return t, true
	}
	return l.src.Next()
}

func (l *Lexer) push(t token.PreToken) {
	l.buffer = append(l.buffer, t)
}

// Next returns the next glued Token, or ok=false at end of input.
func (l *Lexer) Next() (token.Token, bool) {
	first, ok := l.next()
	if !ok {
		return token.Token{}, false
	}

	if fused, hasRule := fusionTable[first.Text]; hasRule && (first.Kind == token.Punct || first.Kind == token.Hash) {
		return l.glue(first, fused), true
	}

	if first.Kind == token.Period {
		// '.' + Digits -> DIGITS (fused float literal), per §4.3.
		if next, ok := l.next(); ok {
			if next.Kind == token.Digits || next.Kind == token.FloatDigits {
				return token.Token{
					Kind:  token.FloatDigits,
					Text:  first.Text + next.Text,
					Range: first.Range.Union(next.Range),
				}, true
			}
			l.push(next)
		}
	}

	return transmute(first), true
}

// fusionRule describes, for a given first pre-token, the set of possible
// second-token fusions and an optional further third-token fusion.
type fusionRule struct {
	// bySecond maps the second token's text to the resulting 2-token kind.
	bySecond map[string]token.Kind
	// thirdAfter maps "second+third produced a 2-token kind" to a further
	// 3-token kind, keyed by the 2-token kind that was produced and the
	// third token's text, e.g. ("<<", "=") -> LEFT_ASSIGN.
	thirdAfter map[token.Kind]map[string]token.Kind
}

var fusionTable = map[string]fusionRule{
	"+": {bySecond: map[string]token.Kind{"+": token.IncOp, "=": token.AddAssign}},
	"-": {bySecond: map[string]token.Kind{"-": token.DecOp, "=": token.SubAssign}},
	"/": {bySecond: map[string]token.Kind{"=": token.DivAssign}},
	"*": {bySecond: map[string]token.Kind{"=": token.MulAssign}},
	"%": {bySecond: map[string]token.Kind{"=": token.ModAssign}},
	"<": {
		bySecond: map[string]token.Kind{"<": token.LeftOp, "=": token.LeOp},
		thirdAfter: map[token.Kind]map[string]token.Kind{
			token.LeftOp: {"=": token.LeftAssign},
		},
	},
	">": {
		bySecond: map[string]token.Kind{">": token.RightOp, "=": token.GeOp},
		thirdAfter: map[token.Kind]map[string]token.Kind{
			token.RightOp: {"=": token.RightAssign},
		},
	},
	"^": {bySecond: map[string]token.Kind{"^": token.XorOpLog, "=": token.XorAssign}},
	"|": {bySecond: map[string]token.Kind{"|": token.OrOp, "=": token.OrAssign}},
	"&": {bySecond: map[string]token.Kind{"&": token.AndOp, "=": token.AndAssign}},
	"=": {bySecond: map[string]token.Kind{"=": token.EqOp}},
	"!": {bySecond: map[string]token.Kind{"=": token.NeOp}},
	"#": {bySecond: map[string]token.Kind{"#": token.PPConcat}},
}

func (l *Lexer) glue(first token.PreToken, rule fusionRule) token.Token {
	second, ok := l.next()
	if !ok {
		return transmute(first)
	}
	kind2, matched := rule.bySecond[second.Text]
	if !matched || (second.Kind != token.Punct && second.Kind != token.Hash) {
		l.push(second)
		return transmute(first)
	}

	if thirds, hasThird := rule.thirdAfter[kind2]; hasThird {
		third, ok := l.next()
		if ok {
			if kind3, matched3 := thirds[third.Text]; matched3 && third.Kind == token.Punct {
				return token.Token{Kind: kind3, Text: first.Text + second.Text + third.Text, Range: first.Range.Union(third.Range)}
			}
			l.push(third)
		}
	}

	return token.Token{Kind: kind2, Text: first.Text + second.Text, Range: first.Range.Union(second.Range)}
}

func transmute(t token.PreToken) token.Token {
	return token.Token{Kind: t.Kind, Text: t.Text, Range: t.Range}
}
