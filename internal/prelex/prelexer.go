// Package prelex implements the PreLexer stage (§4.2): a single-state
// scanner over the logical (continuation-spliced) character stream that
// classifies raw lexical atoms without yet gluing multi-character operators.
//
// The scanner is written in the teacher's state-function idiom (a
// stateFn-returning-stateFn loop walking a start/pos cursor over a string),
// generalized from a template-tag scanner to a C-preprocessor-token
// scanner.
package prelex

import (
	"strings"
	"unicode/utf8"

	"github.com/glsl-lang/glslfront/internal/lineinfo"
	"github.com/glsl-lang/glslfront/internal/token"
)

// eof is the sentinel rune returned once input is exhausted.
const eof rune = -1

const identChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_"
const identCharsDigits = identChars + "0123456789"
const digitChars = "0123456789"

type stateFn func() stateFn

// PreLexer scans a logical source string into PreTokens. Each PreLexer is
// single-use: construct one per source unit via New, then call Lex once
// to scan the whole unit.
type PreLexer struct {
	name    string
	logical string  // continuation-spliced source
	origOff []int   // logical byte offset -> original byte offset
	file    lineinfo.FileId

	start int
	pos   int
	width int

	expectAngleString bool

	tokens []token.PreToken
	err    error
}

// New builds a PreLexer over the given (already continuation-spliced)
// logical source. origOff must map every logical byte offset (plus one
// trailing sentinel at len(logical)) back to the original source's byte
// offsets, as produced by lineinfo.Splice.
func New(name string, file lineinfo.FileId, logical string, origOff []int) *PreLexer {
	return &PreLexer{name: name, logical: logical, origOff: origOff, file: file}
}

// SetExpectAngleString toggles whether the next '<' encountered at the
// start of a token begins an AngleString (for one #include/#moj_import
// directive's path), per §4.2 and §4.4.7.
func (l *PreLexer) SetExpectAngleString(v bool) { l.expectAngleString = v }

// Err returns the first lexical error encountered, if any.
func (l *PreLexer) Err() error { return l.err }

// Lex scans the entirety of the input and returns the resulting pre-tokens.
// After an unterminated or broken string/angle path the last token is
// Kind==token.Invalid; an unterminated block comment still ends with a
// CommentBlock token. Either way callers should check Err.
func (l *PreLexer) Lex() []token.PreToken {
	for state := l.stateStart; state != nil; {
		state = state()
	}
	return l.tokens
}

func (l *PreLexer) origRange() token.Range {
	return token.Range{Start: l.origOff[l.start], End: l.origOff[l.pos]}
}

func (l *PreLexer) value() string { return l.logical[l.start:l.pos] }

func (l *PreLexer) emit(k token.Kind) {
	l.tokens = append(l.tokens, token.PreToken{Kind: k, Text: l.value(), Range: l.origRange()})
	l.start = l.pos
}

func (l *PreLexer) next() rune {
	if l.pos >= len(l.logical) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.logical[l.pos:])
	l.width = w
	l.pos += w
	return r
}

func (l *PreLexer) backup() {
	l.pos -= l.width
}

func (l *PreLexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

func (l *PreLexer) accept(valid string) bool {
	if strings.ContainsRune(valid, l.next()) {
		return true
	}
	l.backup()
	return false
}

func (l *PreLexer) acceptRun(valid string) {
	for strings.ContainsRune(valid, l.next()) {
	}
	l.backup()
}

func (l *PreLexer) errorf(msg string) stateFn {
	l.err = &LexError{Range: l.origRange(), Msg: msg}
	l.emit(token.Invalid)
	return nil
}

// LexError reports a lexical failure at a source range.
type LexError struct {
	Range token.Range
	Msg   string
}

func (e *LexError) Error() string { return e.Msg }

func (l *PreLexer) stateStart() stateFn {
	switch r := l.peek(); {
	case r == eof:
		return nil
	case r == '\n':
		l.next()
		l.emit(token.Newline)
		return l.stateStart
	case strings.ContainsRune(" \t\r\v\f", r):
		l.acceptRun(" \t\r\v\f")
		l.emit(token.Whitespace)
		return l.stateStart
	case strings.HasPrefix(l.logical[l.pos:], "/*"):
		return l.stateBlockComment
	case strings.HasPrefix(l.logical[l.pos:], "//"):
		return l.stateLineComment
	case r == '"':
		return l.stateString
	case l.expectAngleString && r == '<':
		return l.stateAngleString
	case r == '#':
		l.next()
		l.emit(token.Hash)
		return l.stateStart
	case r == '.':
		l.next()
		if l.accept(digitChars) {
			l.acceptRun(digitChars)
			l.emit(token.FloatDigits)
			return l.stateStart
		}
		l.emit(token.Period)
		return l.stateStart
	case strings.ContainsRune(identChars, r):
		l.acceptRun(identChars)
		l.acceptRun(identCharsDigits)
		l.emit(token.Identifier)
		return l.stateStart
	case strings.ContainsRune(digitChars, r):
		l.acceptRun(digitChars)
		// Hex/octal prefixes and suffix letters are left intact as one
		// Digits run; the post-tokenizer (§4.5) interprets them.
		l.acceptRun(identCharsDigits)
		l.emit(token.Digits)
		return l.stateStart
	default:
		l.next()
		l.emit(token.Punct)
		return l.stateStart
	}
}

func (l *PreLexer) stateBlockComment() stateFn {
	l.pos += 2 // consume "/*"
	for {
		if strings.HasPrefix(l.logical[l.pos:], "*/") {
			l.pos += 2
			l.emit(token.CommentBlock)
			return l.stateStart
		}
		if l.next() == eof {
			// Unterminated block comment: still yields a token spanning to
			// EOF, per §4.2.
			l.emit(token.CommentBlock)
			l.err = &LexError{Range: l.origRange(), Msg: "unterminated block comment"}
			return nil
		}
	}
}

func (l *PreLexer) stateLineComment() stateFn {
	l.pos += 2 // consume "//"
	for {
		switch l.peek() {
		case eof, '\n':
			l.emit(token.CommentLine)
			return l.stateStart
		}
		l.next()
	}
}

func (l *PreLexer) stateString() stateFn {
	l.next() // opening quote
	for {
		switch l.next() {
		case eof:
			return l.errorf("unterminated string literal")
		case '\n':
			return l.errorf("newline in string literal")
		case '"':
			l.emit(token.String)
			return l.stateStart
		}
	}
}

func (l *PreLexer) stateAngleString() stateFn {
	l.next() // opening '<'
	for {
		switch l.next() {
		case eof:
			return l.errorf("unterminated angle-bracket include path")
		case '\n':
			return l.errorf("newline in angle-bracket include path")
		case '>':
			l.emit(token.AngleString)
			l.expectAngleString = false
			return l.stateStart
		}
	}
}
