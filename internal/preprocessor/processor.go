package preprocessor

import (
	"strings"

	"github.com/glsl-lang/glslfront/internal/diag"
	"github.com/glsl-lang/glslfront/internal/fs"
	"github.com/glsl-lang/glslfront/internal/lexer"
	"github.com/glsl-lang/glslfront/internal/lineinfo"
	"github.com/glsl-lang/glslfront/internal/macro"
	"github.com/glsl-lang/glslfront/internal/prelex"
	"github.com/glsl-lang/glslfront/internal/token"
)

// Options configures one Processor run (§6).
type Options struct {
	// FileSystem resolves #include/#moj_import paths. May be nil if the
	// translation unit is known not to use either.
	FileSystem fs.FileSystem
	// There is no include-root option here; path search order lives
	// inside the FileSystem's Resolve method.
	Version      Version
	CppStyleLine bool
	IncludeMode  IncludeMode
}

// fileUnit is one source file's logical text plus its LineMap, kept around
// for the lifetime of a run so builtin-macro resolution and diagnostics can
// reach back into it.
type fileUnit struct {
	id      lineinfo.FileId
	path    string // "" for an in-memory root unit
	lineMap *lineinfo.LineMap
	source  string // raw, unspliced source text (token ranges index into this)
}

// Processor drives one translation unit through directive recognition,
// conditional compilation, and macro expansion, producing an Event stream
// (§2, §4.4.8). It generalizes the accumulate-a-line/dispatch loop of the
// preprocessContent driver shown in the retrieved C preprocessor reference
// (a directive line is recognized once a Hash token starts a logical line
// and accumulated until Newline/EOF) combined with the teacher's
// tag-dispatch idiom (tags.go) for recognizing each directive by name.
type Processor struct {
	opts  Options
	state *ProcessorState

	nextFileID lineinfo.FileId
	units      []*fileUnit
	includeStk []string // canonicalized paths, for cycle detection

	sawAnyLine bool // whether any logical line has been processed yet, for #version's "must be first" check

	events []Event
}

// NewProcessor builds a Processor ready to run the primary (root) unit.
func NewProcessor(opts Options) *Processor {
	st := NewProcessorState()
	st.Version = opts.Version
	st.CppStyleLine = opts.CppStyleLine
	st.IncludeMode = opts.IncludeMode
	return &Processor{opts: opts, state: st, nextFileID: lineinfo.PrimaryFile}
}

// State returns the live ProcessorState (valid for the Completed event's
// payload after Run finishes).
func (p *Processor) State() *ProcessorState { return p.state }

// LineMap returns the LineMap for a file entered during this run (the
// primary unit or any #include/#moj_import target), or nil if id is
// unknown. The top-level pipeline (package glslfront) uses this to resolve
// positions for tokens/errors tagged with that FileId once Run completes.
func (p *Processor) LineMap(id lineinfo.FileId) *lineinfo.LineMap {
	for _, u := range p.units {
		if u.id == id {
			return u.lineMap
		}
	}
	return nil
}

// Path returns the registered path for a file entered during this run ("" for
// the primary unit when it was parsed from an anonymous string).
func (p *Processor) Path(id lineinfo.FileId) string {
	for _, u := range p.units {
		if u.id == id {
			return u.path
		}
	}
	return ""
}

// Run preprocesses the root unit's source text (name is used for
// diagnostics and relative #include resolution; pass "" for an anonymous
// in-memory string) and returns the full Event stream.
func (p *Processor) Run(name, source string) []Event {
	p.runUnit(name, source)
	p.emit(Event{Kind: EventCompleted, State: p.state})
	return p.events
}

func (p *Processor) emit(e Event) { p.events = append(p.events, e) }

// runUnit lexes and preprocesses one file's (or the primary string's)
// source text, interleaving its events into p.events. For an included
// file, handleInclude emits EnterFile/ExitFile around this call; the root
// unit gets neither.
func (p *Processor) runUnit(path, source string) {
	id := p.nextFileID
	p.nextFileID++

	lm := lineinfo.NewLineMap(id)
	logical, origOff := lineinfo.Splice(source, lm)
	unit := &fileUnit{id: id, path: path, lineMap: lm, source: source}
	p.units = append(p.units, unit)

	pl := prelex.New(path, id, logical, origOff)
	preToks := pl.Lex()
	if lerr, ok := pl.Err().(*prelex.LexError); ok {
		p.emitError(diag.KindUnterminatedComment, id, lm, lerr.Range, lerr.Msg, true)
	}

	toks := glueAll(preToks)
	p.processTokenStream(unit, toks)
}

func glueAll(preToks []token.PreToken) []token.Token {
	lx := lexer.New(lexer.FromSlice(preToks))
	var out []token.Token
	for {
		t, ok := lx.Next()
		if !ok {
			break
		}
		out = append(out, t)
	}
	return out
}

func (p *Processor) emitError(kind diag.Kind, file lineinfo.FileId, lm *lineinfo.LineMap, r token.Range, msg string, fatal bool) {
	e := diag.New(kind, file, lm, r, msg)
	e.Masked = !p.state.Active()
	e.Fatal = fatal
	p.emit(Event{Kind: EventError, Err: e, File: file})
}

// processTokenStream walks one file's glued tokens, splitting logical lines
// and dispatching Hash-prefixed ones to directive handling; everything else
// passes through macro expansion (when active) and is emitted as
// EventToken.
func (p *Processor) processTokenStream(unit *fileUnit, toks []token.Token) {
	expander := macro.NewExpander(p.state.Macros, &builtinResolver{file: unit.id, lineMap: unit.lineMap, state: p.state})

	i := 0
	for i < len(toks) {
		// Collect one logical line, dropping whitespace/comments (they
		// carry no semantic weight past this point, §4.4.1).
		lineStart := i
		var line []token.Token
		for i < len(toks) && toks[i].Kind != token.Newline {
			switch toks[i].Kind {
			case token.Whitespace, token.CommentLine, token.CommentBlock:
			default:
				line = append(line, toks[i])
			}
			i++
		}
		hasNewline := i < len(toks)
		if hasNewline {
			i++ // consume the Newline
		}

		if len(line) == 0 {
			continue
		}

		if line[0].Kind == token.Hash {
			p.handleDirective(unit, line[1:])
			continue
		}

		if !p.state.Active() {
			continue
		}

		p.sawAnyLine = true
		for _, tok := range expander.Expand(line) {
			p.emit(Event{Kind: EventToken, Token: tok, File: unit.id})
		}
		_ = lineStart
	}

	for _, d := range expander.Diagnostics() {
		p.emitError(diag.KindExtraTokensInDirective, unit.id, unit.lineMap, d.Range, d.Msg, false)
	}

	if len(p.state.Conditionals) > 0 {
		p.emitError(diag.KindUnterminatedConditional, unit.id, unit.lineMap, token.Range{}, "unterminated #if at end of file", true)
	}
}

// joinText renders a token run's source text back out, single-space
// separated, for directive bodies that are easier to re-parse as a string
// (#pragma's free-form payload, mainly).
func joinText(toks []token.Token) string {
	var b strings.Builder
	for i, t := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.Text)
	}
	return b.String()
}
