// Package ast declares the typed GLSL syntax tree (§3 "AST nodes", §4.6):
// one Go struct per grammar production, each carrying the TextRange
// (token.Range) of the source it was parsed from. The tree is a pure
// ownership hierarchy (§9): no parent pointers, no cross-references.
package ast

import "github.com/glsl-lang/glslfront/internal/token"

// Node is implemented by every declaration, statement and expression node
// so generic tooling (the JSON serializer, range-containment tests) can
// walk the tree without a type switch on every concrete kind. The helper
// structs LayoutQualifier, Declarator, Param and SwitchCase carry a Range
// but do not implement Node.
type Node interface {
	Span() token.Range
}

// ExternalDecl is implemented by *FunctionDefinition, *FunctionPrototype and
// *Declaration, the three kinds of top-level translation-unit member (§4.6).
type ExternalDecl interface {
	Node
	isExternalDecl()
}

// Statement is implemented by every statement-grammar production.
type Statement interface {
	Node
	isStatement()
}

// Expr is implemented by every expression-grammar production.
type Expr interface {
	Node
	isExpr()
}

// TranslationUnit is the AST root: one GLSL source unit after
// preprocessing (§3 GLOSSARY).
type TranslationUnit struct {
	Decls []ExternalDecl
	Range token.Range
}

func (n *TranslationUnit) Span() token.Range { return n.Range }

// TypeSpecifier names a GLSL type: a builtin scalar/vector/matrix/sampler
// name, a user struct name, or an inline StructSpecifier, plus any
// qualifiers (const, in, out, layout(...), precision, ...) and array
// dimensions.
type TypeSpecifier struct {
	Qualifiers []string
	Layout     []LayoutQualifier
	Precision  string // "", "lowp", "mediump", "highp"
	Name       string // empty if Struct != nil
	Struct     *StructSpecifier
	ArraySizes []Expr // nil dimension (unsized array) represented by a nil Expr entry
	Range      token.Range
}

func (n *TypeSpecifier) Span() token.Range { return n.Range }

// LayoutQualifier is one `id` or `id = value` entry inside `layout(...)`.
type LayoutQualifier struct {
	Name  string
	Value Expr // nil if the qualifier takes no value
	Range token.Range
}

// StructSpecifier is an inline or named `struct Name { ... }` type.
type StructSpecifier struct {
	Name   string // "" for an anonymous struct
	Fields []*Declaration
	Range  token.Range
}

func (n *StructSpecifier) Span() token.Range { return n.Range }

// Declarator is one `name[arraySize] [= initializer]` entry within a
// Declaration's comma-separated declarator list.
type Declarator struct {
	Name        string
	ArraySizes  []Expr
	Initializer Expr // nil if none
	Range       token.Range
}

// Declaration is a top-level or block-scoped variable/struct/precision
// declaration (§4.6's "declaration statements"; also usable as an
// ExternalDecl).
type Declaration struct {
	Type        *TypeSpecifier
	Declarators []*Declarator // empty for a bare `struct S { ... };` or precision decl
	IsPrecision bool
	Range       token.Range
}

func (n *Declaration) Span() token.Range { return n.Range }
func (n *Declaration) isExternalDecl()    {}
func (n *Declaration) isStatement()       {}

// Param is one formal parameter of a FunctionPrototype.
type Param struct {
	Type       *TypeSpecifier
	Name       string // "" for an unnamed parameter
	ArraySizes []Expr
	Range      token.Range
}

// FunctionPrototype is a function's signature: return type, name, and
// formal parameters, shared between a standalone prototype declaration and
// a FunctionDefinition's header.
type FunctionPrototype struct {
	ReturnType *TypeSpecifier
	Name       string
	Params     []*Param
	Range      token.Range
}

func (n *FunctionPrototype) Span() token.Range { return n.Range }
func (n *FunctionPrototype) isExternalDecl()    {}

// FunctionDefinition is `prototype { body }` (§4.6).
type FunctionDefinition struct {
	Prototype *FunctionPrototype
	Body      *Block
	Range     token.Range
}

func (n *FunctionDefinition) Span() token.Range { return n.Range }
func (n *FunctionDefinition) isExternalDecl()    {}

// Block is a `{ ... }` compound statement.
type Block struct {
	Stmts []Statement
	Range token.Range
}

func (n *Block) Span() token.Range { return n.Range }
func (n *Block) isStatement()      {}

// ExprStatement is a bare expression followed by ';'.
type ExprStatement struct {
	X     Expr // nil for an empty statement (just ';')
	Range token.Range
}

func (n *ExprStatement) Span() token.Range { return n.Range }
func (n *ExprStatement) isStatement()      {}

// IfStatement is `if (Cond) Then [else Else]`.
type IfStatement struct {
	Cond  Expr
	Then  Statement
	Else  Statement // nil if no else branch
	Range token.Range
}

func (n *IfStatement) Span() token.Range { return n.Range }
func (n *IfStatement) isStatement()      {}

// ForStatement is `for (Init; Cond; Post) Body`. Init is either an
// ExprStatement or a Declaration (both implement Statement).
type ForStatement struct {
	Init  Statement
	Cond  Expr // nil if the condition clause was empty
	Post  Expr // nil if the post-expression clause was empty
	Body  Statement
	Range token.Range
}

func (n *ForStatement) Span() token.Range { return n.Range }
func (n *ForStatement) isStatement()      {}

// WhileStatement is `while (Cond) Body`.
type WhileStatement struct {
	Cond  Expr
	Body  Statement
	Range token.Range
}

func (n *WhileStatement) Span() token.Range { return n.Range }
func (n *WhileStatement) isStatement()      {}

// DoWhileStatement is `do Body while (Cond);`.
type DoWhileStatement struct {
	Body  Statement
	Cond  Expr
	Range token.Range
}

func (n *DoWhileStatement) Span() token.Range { return n.Range }
func (n *DoWhileStatement) isStatement()      {}

// SwitchCase is one `case Value:` or `default:` arm of a SwitchStatement.
type SwitchCase struct {
	Value     Expr // nil for `default:`
	IsDefault bool
	Stmts     []Statement
	Range     token.Range
}

// SwitchStatement is `switch (Cond) { Cases... }`.
type SwitchStatement struct {
	Cond  Expr
	Cases []*SwitchCase
	Range token.Range
}

func (n *SwitchStatement) Span() token.Range { return n.Range }
func (n *SwitchStatement) isStatement()      {}

// ReturnStatement is `return [Value];`.
type ReturnStatement struct {
	Value Expr // nil for a bare `return;`
	Range token.Range
}

func (n *ReturnStatement) Span() token.Range { return n.Range }
func (n *ReturnStatement) isStatement()      {}

// BreakStatement is `break;`.
type BreakStatement struct{ Range token.Range }

func (n *BreakStatement) Span() token.Range { return n.Range }
func (n *BreakStatement) isStatement()      {}

// ContinueStatement is `continue;`.
type ContinueStatement struct{ Range token.Range }

func (n *ContinueStatement) Span() token.Range { return n.Range }
func (n *ContinueStatement) isStatement()      {}

// DiscardStatement is `discard;` (fragment-shader only, unchecked here per
// the spec's non-goal of semantic analysis).
type DiscardStatement struct{ Range token.Range }

func (n *DiscardStatement) Span() token.Range { return n.Range }
func (n *DiscardStatement) isStatement()      {}

// --- Expressions (§4.6's full precedence chain) ---

// Ident is a bare identifier used as an expression (a variable reference).
type Ident struct {
	Name  string
	Range token.Range
}

func (n *Ident) Span() token.Range { return n.Range }
func (n *Ident) isExpr()           {}

// Literal is any scalar constant: int/uint/float/double/bool, as typed by
// the post-tokenizer (§4.5); Kind mirrors the post-tokenizer's token.Kind
// (IntConstant, UintConstant, FloatConstant, DoubleConstant, or Keyword for
// true/false).
type Literal struct {
	Kind  token.Kind
	Text  string
	Range token.Range
}

func (n *Literal) Span() token.Range { return n.Range }
func (n *Literal) isExpr()           {}

// UnaryExpr is a prefix operator: `! ~ - + ++ --` applied to Operand.
type UnaryExpr struct {
	Op      string
	Operand Expr
	Range   token.Range
}

func (n *UnaryExpr) Span() token.Range { return n.Range }
func (n *UnaryExpr) isExpr()           {}

// PostfixExpr is a postfix `++`/`--` applied to Operand.
type PostfixExpr struct {
	Op      string
	Operand Expr
	Range   token.Range
}

func (n *PostfixExpr) Span() token.Range { return n.Range }
func (n *PostfixExpr) isExpr()           {}

// BinaryExpr is any left-associative binary operator from multiplicative
// through logical-or (§4.6's precedence chain): `* / % + - << >> < > <= >=
// == != & ^ | && || ^^`.
type BinaryExpr struct {
	Op    string
	LHS   Expr
	RHS   Expr
	Range token.Range
}

func (n *BinaryExpr) Span() token.Range { return n.Range }
func (n *BinaryExpr) isExpr()           {}

// CondExpr is the ternary conditional `Cond ? Then : Else`.
type CondExpr struct {
	Cond  Expr
	Then  Expr
	Else  Expr
	Range token.Range
}

func (n *CondExpr) Span() token.Range { return n.Range }
func (n *CondExpr) isExpr()           {}

// AssignExpr is any assignment operator: `= += -= *= /= %= <<= >>= &= ^= |=`.
type AssignExpr struct {
	Op    string
	LHS   Expr
	RHS   Expr
	Range token.Range
}

func (n *AssignExpr) Span() token.Range { return n.Range }
func (n *AssignExpr) isExpr()           {}

// CommaExpr is GLSL's comma sequencing operator: `a, b, c`.
type CommaExpr struct {
	Exprs []Expr
	Range token.Range
}

func (n *CommaExpr) Span() token.Range { return n.Range }
func (n *CommaExpr) isExpr()           {}

// CallExpr is a function call or a constructor invocation (`vec3(1.0)`);
// IsConstructor is set when Callee names a type rather than a function, per
// GLSL's shared call syntax for both.
type CallExpr struct {
	Callee        string
	IsConstructor bool
	Args          []Expr
	Range         token.Range
}

func (n *CallExpr) Span() token.Range { return n.Range }
func (n *CallExpr) isExpr()           {}

// IndexExpr is `Base[Index]`.
type IndexExpr struct {
	Base  Expr
	Index Expr
	Range token.Range
}

func (n *IndexExpr) Span() token.Range { return n.Range }
func (n *IndexExpr) isExpr()           {}

// FieldSelectExpr is `Base.Field` (struct member access or a swizzle mask
// like `.xyz`; the two are indistinguishable without semantic analysis,
// which is this spec's non-goal).
type FieldSelectExpr struct {
	Base  Expr
	Field string
	Range token.Range
}

func (n *FieldSelectExpr) Span() token.Range { return n.Range }
func (n *FieldSelectExpr) isExpr()           {}

// ParenExpr is an explicitly parenthesized sub-expression, kept as its own
// node (rather than discarded) so TextRange round-trips include the
// parentheses, per §8's round-trip testable property.
type ParenExpr struct {
	Inner Expr
	Range token.Range
}

func (n *ParenExpr) Span() token.Range { return n.Range }
func (n *ParenExpr) isExpr()           {}
