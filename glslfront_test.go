package glslfront_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glsl-lang/glslfront"
	"github.com/glsl-lang/glslfront/internal/ast"
	"github.com/glsl-lang/glslfront/internal/fs"
	"github.com/glsl-lang/glslfront/internal/lineinfo"
	"github.com/glsl-lang/glslfront/internal/preprocessor"
)

func parse(t *testing.T, src string, opts glslfront.Options) *glslfront.Result {
	t.Helper()
	res, err := glslfront.ParseString("test.frag", src, opts)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

// Multi-char operator glue: "+=" must not parse as two separate '+' '='
// tokens even with no whitespace between them, and shift/compound
// assignment operators must glue across the full 2-3 char table.
func TestGlueMultiCharOperators(t *testing.T) {
	src := `void main() { int a; a += 1; a <<= 2; a == 3; }`
	res := parse(t, src, glslfront.Options{})
	for _, d := range res.Diagnostics {
		t.Logf("diagnostic: %s", d.Error())
	}
	require.NotNil(t, res.Unit)
	assert.Empty(t, res.Diagnostics)
	assert.Len(t, res.Unit.Decls, 1)
}

// A line continuation inside an identifier must be invisible to the
// tokenizer: "ma\\\nin" names the same identifier as "main".
func TestLineContinuationInsideIdentifier(t *testing.T) {
	src := "void ma\\\nin() { }"
	res := parse(t, src, glslfront.Options{})
	require.NotNil(t, res.Unit)
	require.Len(t, res.Unit.Decls, 1)
	def, ok := res.Unit.Decls[0].(*ast.FunctionDefinition)
	require.True(t, ok)
	assert.Equal(t, "main", def.Prototype.Name)
}

// An object-like macro expands at every use site.
func TestObjectMacroExpansion(t *testing.T) {
	src := "#define N 4\nvoid main() { float a[N]; }"
	res := parse(t, src, glslfront.Options{})
	require.NotNil(t, res.Unit)
	require.Empty(t, res.Diagnostics)
	def := res.Unit.Decls[0].(*ast.FunctionDefinition)
	decl := def.Body.Stmts[0].(*ast.Declaration)
	lit, ok := decl.Declarators[0].ArraySizes[0].(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, "4", lit.Text)
}

// A function-like macro using ## token paste glues its operands into one
// new token before rescanning.
func TestFunctionMacroWithConcat(t *testing.T) {
	src := "#define CAT(a, b) a ## b\nvoid main() { int x = CAT(1, 2); }"
	res := parse(t, src, glslfront.Options{})
	require.NotNil(t, res.Unit)
	require.Empty(t, res.Diagnostics)
	def := res.Unit.Decls[0].(*ast.FunctionDefinition)
	decl, ok := def.Body.Stmts[0].(*ast.Declaration)
	require.True(t, ok)
	lit, ok := decl.Declarators[0].Initializer.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, "12", lit.Text)
}

// Conditional compilation excludes the untaken branch's tokens entirely.
func TestConditionalCompilation(t *testing.T) {
	src := "#define FLAG 1\n#if FLAG\nvoid a() {}\n#else\nvoid b() {}\n#endif\n"
	res := parse(t, src, glslfront.Options{})
	require.NotNil(t, res.Unit)
	require.Len(t, res.Unit.Decls, 1)
	def := res.Unit.Decls[0].(*ast.FunctionDefinition)
	assert.Equal(t, "a", def.Prototype.Name)
}

// A position error inside an #include'd file resolves against that
// file's own LineMap/FileId, not the root unit's.
func TestPositionErrorAcrossInclude(t *testing.T) {
	mfs := fs.NewMapFileSystem(map[string]string{
		"bad.glsl": "void broken(",
	})
	src := "#include \"bad.glsl\"\n"
	res := parse(t, src, glslfront.Options{
		FileSystem:  mfs,
		IncludeMode: preprocessor.IncludeArb,
	})
	require.NotEmpty(t, res.Diagnostics)
	found := false
	for _, d := range res.Diagnostics {
		if d.File != lineinfo.PrimaryFile {
			found = true
			// The included file's first line is "void broken(", so the
			// unclosed-paren diagnostic must resolve to line 1 in that
			// file's own LineMap, not some offset into the root unit.
			assert.Equal(t, 1, d.Line)
		}
	}
	assert.True(t, found, "expected a diagnostic positioned inside the included file (FileId != primary)")
}

// Round trip: printing a parsed AST back to GLSL and re-parsing it
// produces a translation unit with the same shape (§8).
func TestRoundTripPrintReparse(t *testing.T) {
	src := "float square(float x) { return x * x; }\n"
	first := parse(t, src, glslfront.Options{})
	require.NotNil(t, first.Unit)
	require.Empty(t, first.Diagnostics)

	printed := ast.Print(first.Unit)
	second := parse(t, printed, glslfront.Options{})
	require.NotNil(t, second.Unit)
	require.Empty(t, second.Diagnostics)

	assert.Equal(t, len(first.Unit.Decls), len(second.Unit.Decls))
	f1 := first.Unit.Decls[0].(*ast.FunctionDefinition)
	f2 := second.Unit.Decls[0].(*ast.FunctionDefinition)
	assert.Equal(t, f1.Prototype.Name, f2.Prototype.Name)
	assert.Equal(t, len(f1.Body.Stmts), len(f2.Body.Stmts))
}

// A redefinition of a protected builtin macro (__LINE__) is refused.
func TestProtectedMacroRedefinitionRefused(t *testing.T) {
	src := "#define __LINE__ 7\nvoid main() {}\n"
	res := parse(t, src, glslfront.Options{})
	require.NotEmpty(t, res.Diagnostics)
	found := false
	for _, d := range res.Diagnostics {
		if d.Kind.String() == "ProtectedMacro" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestHasFatalErrorHaltsBeforeParse(t *testing.T) {
	src := "#error this is fatal\nvoid main() {}\n"
	res := parse(t, src, glslfront.Options{})
	assert.True(t, res.HasFatalError())
	assert.Nil(t, res.Unit)
}
