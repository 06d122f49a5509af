package preprocessor

import (
	"github.com/glsl-lang/glslfront/internal/diag"
	"github.com/glsl-lang/glslfront/internal/lineinfo"
	"github.com/glsl-lang/glslfront/internal/token"
)

// EventKind discriminates the tagged Event variants of §2/§4.4.8.
type EventKind int

const (
	EventToken EventKind = iota
	EventDirective
	EventError
	EventEnterFile
	EventExitFile
	EventCompleted
)

// DirectiveKind names which recognized directive a DirectiveNode parsed.
type DirectiveKind int

const (
	DirDefine DirectiveKind = iota
	DirUndef
	DirIf
	DirIfdef
	DirIfndef
	DirElif
	DirElse
	DirEndif
	DirError
	DirPragma
	DirExtension
	DirVersion
	DirLine
	DirInclude
	DirMojImport
	DirUnknown
)

// DirectiveNode is the parsed representation of one directive line,
// reported via an EventDirective.
type DirectiveNode struct {
	Kind  DirectiveKind
	Name  string
	Range token.Range

	// Populated depending on Kind.
	MacroName string
	Path      string // #include / #moj_import
}

// Event is one item of the preprocessor's output stream (§2, §4.4.8).
type Event struct {
	Kind EventKind

	Token     token.Token
	Directive *DirectiveNode
	Err       *diag.Error

	File lineinfo.FileId
	Path string

	State *ProcessorState // only set on EventCompleted
}
