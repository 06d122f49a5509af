// Package macro implements the macro-table data model (§3 Definition,
// Define, DefineObject, DefineFunction) and the hide-set macro expander
// (§4.4.4) used by the preprocessor.
package macro

import "github.com/glsl-lang/glslfront/internal/token"

// Kind distinguishes a user/builtin macro from the three contextual
// pseudo-macros that the preprocessor itself resolves at expansion time.
type Kind int

const (
	// Regular is a user- or builtin-defined object/function macro.
	Regular Kind = iota
	// Line expands to the invocation's current line number.
	Line
	// File expands to the invocation's FileId (or path, in cpp-style mode).
	File
	// Version expands to the active #version value.
	Version
)

// Define is a single macro definition: a name, an object or function body,
// and whether it may be redefined/undefined.
type Define struct {
	Name      string
	Body      Body
	Protected bool
}

// Body is implemented by ObjectBody and FunctionBody.
type Body interface {
	isBody()
	Tokens() []token.Token
}

// ObjectBody is the replacement-list of an object-like macro.
type ObjectBody struct {
	List []token.Token
}

func (ObjectBody) isBody()              {}
func (b ObjectBody) Tokens() []token.Token { return b.List }

// FunctionBody is the replacement-list of a function-like macro, along with
// its ordered formal parameters.
type FunctionBody struct {
	Params   []string
	Variadic bool
	List     []token.Token
}

func (FunctionBody) isBody()              {}
func (b FunctionBody) Tokens() []token.Token { return b.List }

// Definition is a tagged entry in the macro table: either a Regular
// user/builtin Define, or one of the three pseudo-macros resolved
// contextually at each invocation site. The file a Define came from is
// not recorded.
type Definition struct {
	Kind   Kind
	Define *Define // non-nil iff Kind == Regular
}

// Table owns the name -> Definition map for one ProcessorState. Insertion
// replaces the existing entry unless it is Protected (§3 invariant:
// "insertion replaces iff !protected").
type Table struct {
	defs map[string]*Definition
}

// NewTable builds an empty macro table.
func NewTable() *Table {
	return &Table{defs: make(map[string]*Definition)}
}

// Clone deep-copies the definitions map (the only mutable part of a
// ProcessorState that macro expansion touches), per §5's cloning contract.
func (t *Table) Clone() *Table {
	out := NewTable()
	for k, v := range t.defs {
		cp := *v
		out.defs[k] = &cp
	}
	return out
}

// Lookup returns the definition for name, if any.
func (t *Table) Lookup(name string) (*Definition, bool) {
	d, ok := t.defs[name]
	return d, ok
}

// DefineObjectLike installs (or replaces, if unprotected) an object-like
// macro. It reports ok=false if name is already defined and protected.
func (t *Table) DefineObjectLike(name string, list []token.Token, protected bool) bool {
	return t.insert(name, &Definition{Kind: Regular, Define: &Define{Name: name, Body: ObjectBody{List: list}, Protected: protected}})
}

// DefineFunctionLike installs (or replaces) a function-like macro.
func (t *Table) DefineFunctionLike(name string, params []string, variadic bool, list []token.Token, protected bool) bool {
	return t.insert(name, &Definition{Kind: Regular, Define: &Define{Name: name, Body: FunctionBody{Params: params, Variadic: variadic, List: list}, Protected: protected}})
}

// DefinePseudo installs one of the builtin contextual pseudo-macros
// (__LINE__, __FILE__, __VERSION__), always protected.
func (t *Table) DefinePseudo(name string, kind Kind) {
	t.defs[name] = &Definition{Kind: kind, Define: &Define{Name: name, Protected: true}}
}

// DefineSentinel installs a protected, empty object-like macro, used for
// __VERSION__-independent profile sentinels (GL_core_profile, ...) and
// per-extension sentinels (§4.4.3).
func (t *Table) DefineSentinel(name string) bool {
	return t.insert(name, &Definition{Kind: Regular, Define: &Define{Name: name, Body: ObjectBody{}, Protected: true}})
}

func (t *Table) insert(name string, def *Definition) bool {
	if existing, ok := t.defs[name]; ok && existing.Define != nil && existing.Define.Protected {
		return false
	}
	t.defs[name] = def
	return true
}

// Undef removes name from the table. It reports ok=false (and leaves the
// table unchanged) if name is protected.
func (t *Table) Undef(name string) bool {
	existing, ok := t.defs[name]
	if !ok {
		return true
	}
	if existing.Define != nil && existing.Define.Protected {
		return false
	}
	delete(t.defs, name)
	return true
}

// SameDefinition reports whether two object/function bodies are
// token-identical ignoring leading/trailing whitespace, per §4.4.3's
// redefinition rule.
func SameDefinition(a, b *Define) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch ab := a.Body.(type) {
	case ObjectBody:
		bb, ok := b.Body.(ObjectBody)
		return ok && sameTokenText(ab.List, bb.List)
	case FunctionBody:
		bb, ok := b.Body.(FunctionBody)
		if !ok || ab.Variadic != bb.Variadic || len(ab.Params) != len(bb.Params) {
			return false
		}
		for i := range ab.Params {
			if ab.Params[i] != bb.Params[i] {
				return false
			}
		}
		return sameTokenText(ab.List, bb.List)
	default:
		return false
	}
}

func sameTokenText(a, b []token.Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Text != b[i].Text {
			return false
		}
	}
	return true
}
