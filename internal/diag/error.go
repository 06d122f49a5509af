// Package diag implements the positioned diagnostic type and error
// taxonomy (§7), generalizing the teacher's Error type (error.go: Filename,
// Line, Column, Token, Sender, ErrorMsg) with a Kind and a Masked flag.
package diag

import (
	"fmt"

	"github.com/glsl-lang/glslfront/internal/lineinfo"
	"github.com/glsl-lang/glslfront/internal/token"
)

// Kind classifies a diagnostic per the error taxonomy in §7.
type Kind int

const (
	KindUnknown Kind = iota

	// Lexical
	KindUnterminatedComment
	KindInvalidEscape
	KindUnrepresentableNumber

	// Preprocessor directive
	KindUnknownDirective
	KindExtraTokensInDirective
	KindUnexpectedTokensInDefineArgs
	KindConditionalUnderflow
	KindUnterminatedConditional
	KindErrorDirective
	KindIncludeCycle
	KindIncludeNotFound
	KindIncludeDisabled
	KindMacroRedefinition
	KindProtectedMacro

	// Parser
	KindUnexpected
	KindEndOfInput

	// I/O
	KindIO
)

var kindNames = map[Kind]string{
	KindUnknown:                      "Unknown",
	KindUnterminatedComment:          "UnterminatedComment",
	KindInvalidEscape:                "InvalidEscape",
	KindUnrepresentableNumber:        "UnrepresentableNumber",
	KindUnknownDirective:             "UnknownDirective",
	KindExtraTokensInDirective:       "ExtraTokensInDirective",
	KindUnexpectedTokensInDefineArgs: "UnexpectedTokensInDefineArgs",
	KindConditionalUnderflow:         "ConditionalUnderflow",
	KindUnterminatedConditional:      "UnterminatedConditional",
	KindErrorDirective:               "ErrorDirective",
	KindIncludeCycle:                 "IncludeCycle",
	KindIncludeNotFound:              "IncludeNotFound",
	KindIncludeDisabled:              "IncludeDisabled",
	KindMacroRedefinition:            "MacroRedefinition",
	KindProtectedMacro:               "ProtectedMacro",
	KindUnexpected:                   "Unexpected",
	KindEndOfInput:                   "EndOfInput",
	KindIO:                           "IO",
}

// String renders the diagnostic Kind's name, used by the CLI's --format
// json output (§6) rather than a bare integer.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a single positioned diagnostic. It is attached to a TextRange
// and a resolved (line, col) at creation time, per §7's propagation rule.
type Error struct {
	Kind     Kind
	File     lineinfo.FileId
	FileName string // resolved display name, if the FileId maps to one
	Range    token.Range
	Line     int
	Col      int
	Msg      string
	Token    *token.Token
	Sender   string

	// Masked is true when the error occurred inside an inactive
	// conditional-compilation branch; consumers may silence these.
	Masked bool
	// Fatal errors halt the stream (e.g. #error, include-not-found); others
	// merely accompany an otherwise-continuing Event stream (§4.4.8).
	Fatal bool
}

// Error implements the error interface, rendering the public diagnostic
// text format from §6: "FILE:LINE:COL: message", where FILE is the known
// file name when one is available and the numeric FileId otherwise.
func (e *Error) Error() string {
	if e.FileName != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.FileName, e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("%d:%d:%d: %s", int(e.File), e.Line, e.Col, e.Msg)
}

// New builds an Error, resolving (line, col) from lm immediately, matching
// the "resolved at creation" propagation rule in §7.
func New(kind Kind, file lineinfo.FileId, lm *lineinfo.LineMap, r token.Range, msg string) *Error {
	e := &Error{Kind: kind, File: file, Range: r, Msg: msg}
	if lm != nil {
		e.Line, e.Col = lm.OffsetToLineCol(r.Start)
		if name, ok := lm.FileNameAt(r.Start); ok {
			e.FileName = name
		}
	}
	return e
}
