// Package preprocessor implements the directive recognizer, macro
// expander, and conditional-compilation driver (§4.4). It generalizes the
// teacher's tag-dispatch-table idiom (tags.go: `tags map[string]*tag` +
// RegisterTag + parseTagElement) into a directive-dispatch table, and its
// context-merge-and-recurse include handling (tags_include.go) into
// file-level include-event splicing with cycle detection.
package preprocessor

import (
	"github.com/glsl-lang/glslfront/internal/lineinfo"
	"github.com/glsl-lang/glslfront/internal/macro"
)

// IncludeMode is the preprocessor's authorization level for #include.
type IncludeMode int

const (
	IncludeNone IncludeMode = iota
	IncludeArb              // GL_ARB_shading_language_include
	IncludeGoogle           // GL_GOOGLE_include_directive
)

// Behavior is one of the four extension behaviors (§4.4.6).
type Behavior int

const (
	BehaviorDisable Behavior = iota
	BehaviorWarn
	BehaviorEnable
	BehaviorRequire
)

func (b Behavior) String() string {
	switch b {
	case BehaviorDisable:
		return "disable"
	case BehaviorWarn:
		return "warn"
	case BehaviorEnable:
		return "enable"
	case BehaviorRequire:
		return "require"
	default:
		return "unknown"
	}
}

// Extension records one #extension directive's effect, in push order.
type Extension struct {
	Name     string
	Behavior Behavior
}

// Version is the active #version value.
type Version struct {
	Number  int
	Profile string // "core", "compatibility", "es", or "" if unspecified
}

// ConditionalFrame tracks one nested #if/#ifdef/#ifndef's state.
type ConditionalFrame struct {
	Taken        bool // some branch (this one or an earlier #elif) matched
	ElseSeen     bool
	ParentActive bool // whether an enclosing frame is itself active
	Active       bool // whether this frame's currently-selected branch emits
}

// ProcessorState is the mutable state threaded through one preprocessor
// run (§3). The package has no separate extension registry; ProcessorState
// holds all of the run's state: the macro table, version, include mode,
// extension stack, and conditional stack.
type ProcessorState struct {
	Macros         *macro.Table
	Version        Version
	CppStyleLine   bool
	IncludeMode    IncludeMode
	ExtensionStack []Extension
	Conditionals   []ConditionalFrame
}

// NewProcessorState builds a fresh state with the built-in protected
// macros installed (§4.4.3, §4.4.5).
func NewProcessorState() *ProcessorState {
	s := &ProcessorState{Macros: macro.NewTable()}
	s.Macros.DefinePseudo("__LINE__", macro.Line)
	s.Macros.DefinePseudo("__FILE__", macro.File)
	s.Macros.DefinePseudo("__VERSION__", macro.Version)
	return s
}

// Clone deep-copies the mutable parts of the state (the macro table's
// definitions map; everything else is copied by value/slice-copy), per
// §5's "cloning ProcessorState clones only the mutable parts" contract.
func (s *ProcessorState) Clone() *ProcessorState {
	out := &ProcessorState{
		Macros:       s.Macros.Clone(),
		Version:      s.Version,
		CppStyleLine: s.CppStyleLine,
		IncludeMode:  s.IncludeMode,
	}
	out.ExtensionStack = append([]Extension(nil), s.ExtensionStack...)
	out.Conditionals = append([]ConditionalFrame(nil), s.Conditionals...)
	return out
}

// Active reports whether tokens encountered right now should be emitted,
// i.e. whether every frame on the conditional stack currently selects an
// active branch.
func (s *ProcessorState) Active() bool {
	if len(s.Conditionals) == 0 {
		return true
	}
	return s.Conditionals[len(s.Conditionals)-1].Active
}

// PushIf opens a new conditional frame. cond is the evaluated condition of
// an #if/#ifdef/#ifndef; #else does not push a frame and goes through Else
// instead.
func (s *ProcessorState) PushIf(cond bool) {
	parentActive := s.Active()
	s.Conditionals = append(s.Conditionals, ConditionalFrame{
		Taken:        cond,
		ParentActive: parentActive,
		Active:       parentActive && cond,
	})
}

// Elif transitions the top frame at an #elif. Returns ok=false if there is
// no open conditional or #else has already been seen (§4.4.2).
func (s *ProcessorState) Elif(cond bool) bool {
	if len(s.Conditionals) == 0 {
		return false
	}
	top := &s.Conditionals[len(s.Conditionals)-1]
	if top.ElseSeen {
		return false
	}
	if top.Taken {
		top.Active = false
		return true
	}
	top.Active = top.ParentActive && cond
	if top.Active {
		top.Taken = true
	}
	return true
}

// Else transitions the top frame at an #else. Returns ok=false if there is
// no open conditional or a second #else is encountered.
func (s *ProcessorState) Else() bool {
	if len(s.Conditionals) == 0 {
		return false
	}
	top := &s.Conditionals[len(s.Conditionals)-1]
	if top.ElseSeen {
		return false
	}
	top.ElseSeen = true
	top.Active = top.ParentActive && !top.Taken
	if top.Active {
		top.Taken = true
	}
	return true
}

// Endif closes the top conditional frame. Returns ok=false if there is
// none (stack underflow, §7 KindConditionalUnderflow).
func (s *ProcessorState) Endif() bool {
	if len(s.Conditionals) == 0 {
		return false
	}
	s.Conditionals = s.Conditionals[:len(s.Conditionals)-1]
	return true
}

// applyExtension updates IncludeMode/CppStyleLine per §4.4.6's named
// extension side effects.
func (s *ProcessorState) applyExtension(ext Extension) {
	s.ExtensionStack = append(s.ExtensionStack, ext)

	enabling := ext.Behavior == BehaviorEnable || ext.Behavior == BehaviorRequire
	switch ext.Name {
	case "GL_ARB_shading_language_include":
		if enabling {
			s.IncludeMode = IncludeArb
		} else if ext.Behavior == BehaviorDisable {
			s.IncludeMode = IncludeNone
		}
	case "GL_GOOGLE_include_directive":
		if enabling {
			s.IncludeMode = IncludeGoogle
			s.CppStyleLine = true
		} else if ext.Behavior == BehaviorDisable {
			s.IncludeMode = IncludeNone
		}
	case "GL_GOOGLE_cpp_style_line_directive":
		if enabling {
			s.CppStyleLine = true
		} else if ext.Behavior == BehaviorDisable {
			s.CppStyleLine = false
		}
	}
}

// runContext groups a ProcessorState with one file's id, LineMap and path.
// Nothing in the package constructs one; builtin-macro resolution uses
// builtinResolver.
type runContext struct {
	state   *ProcessorState
	file    lineinfo.FileId
	lineMap *lineinfo.LineMap
	path    string
}
