package preprocessor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProcessorStateInstallsProtectedPseudoMacros(t *testing.T) {
	s := NewProcessorState()
	for _, name := range []string{"__LINE__", "__FILE__", "__VERSION__"} {
		def, ok := s.Macros.Lookup(name)
		require.True(t, ok, name)
		assert.True(t, def.Define.Protected, name)
	}
}

func TestActiveWithNoConditionals(t *testing.T) {
	s := NewProcessorState()
	assert.True(t, s.Active())
}

func TestPushIfElseEndif(t *testing.T) {
	s := NewProcessorState()
	s.PushIf(false)
	assert.False(t, s.Active())

	ok := s.Else()
	require.True(t, ok)
	assert.True(t, s.Active())

	ok = s.Endif()
	require.True(t, ok)
	assert.True(t, s.Active())
}

func TestElifAfterTakenBranchStaysInactive(t *testing.T) {
	s := NewProcessorState()
	s.PushIf(true)
	require.True(t, s.Active())

	ok := s.Elif(true)
	require.True(t, ok)
	assert.False(t, s.Active(), "an earlier taken branch suppresses every later #elif")
}

func TestElifAfterElseRefused(t *testing.T) {
	s := NewProcessorState()
	s.PushIf(false)
	s.Else()
	ok := s.Elif(true)
	assert.False(t, ok, "#elif after #else must be refused")
}

func TestSecondElseRefused(t *testing.T) {
	s := NewProcessorState()
	s.PushIf(false)
	require.True(t, s.Else())
	assert.False(t, s.Else(), "a second #else on the same frame must be refused")
}

func TestEndifUnderflowReported(t *testing.T) {
	s := NewProcessorState()
	assert.False(t, s.Endif())
}

func TestNestedConditionalInheritsParentInactive(t *testing.T) {
	s := NewProcessorState()
	s.PushIf(false) // outer: inactive
	s.PushIf(true)  // inner: condition true, but parent inactive
	assert.False(t, s.Active(), "a nested frame can't be active under an inactive parent")
}

func TestCloneDeepCopiesMacroTable(t *testing.T) {
	s := NewProcessorState()
	s.Macros.DefineObjectLike("N", nil, false)
	clone := s.Clone()
	clone.Macros.Undef("N")

	_, stillThere := s.Macros.Lookup("N")
	assert.True(t, stillThere, "undefining a macro on the clone must not affect the original")
}

func TestCloneCopiesExtensionAndConditionalStacks(t *testing.T) {
	s := NewProcessorState()
	s.PushIf(true)
	s.applyExtension(Extension{Name: "GL_ARB_test", Behavior: BehaviorEnable})

	clone := s.Clone()
	clone.Endif()
	clone.ExtensionStack = append(clone.ExtensionStack, Extension{Name: "GL_ARB_other", Behavior: BehaviorEnable})

	assert.Len(t, s.Conditionals, 1, "popping a frame on the clone must not affect the original's stack")
	assert.Len(t, s.ExtensionStack, 1, "appending to the clone's extension stack must not affect the original")
}
