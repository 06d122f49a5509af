package lineinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffsetToLineColNoOverride(t *testing.T) {
	src := "abc\ndef\nghi"
	lm := NewLineMap(PrimaryFile)
	for i, r := range src {
		if r == '\n' {
			lm.recordNewlineAt(i)
		}
	}

	cases := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{0, 1, 0},  // 'a'
		{2, 1, 2},  // 'c'
		{4, 2, 0},  // 'd'
		{8, 3, 0},  // 'g'
		{10, 3, 2}, // 'i'
	}
	for _, c := range cases {
		line, col := lm.OffsetToLineCol(c.offset)
		assert.Equal(t, c.wantLine, line, "offset %d line", c.offset)
		assert.Equal(t, c.wantCol, col, "offset %d col", c.offset)
	}
}

// The line immediately following `#line 10` must resolve to exactly line
// 10, not 11: the override is recorded at the end of the "line" keyword
// token, which is still on the directive's own physical line.
func TestOffsetToLineColLineDirective(t *testing.T) {
	src := "#line 10\nfoo\nbar\n"
	lm := NewLineMap(PrimaryFile)
	for i, r := range src {
		if r == '\n' {
			lm.recordNewlineAt(i)
		}
	}
	// "#line 10" ends at offset 8 (the newline), still on line 1.
	lineKeywordEnd := 5
	lm.AddLineOverride(lineKeywordEnd, 10, "")

	fooOffset := 9  // start of "foo"
	barOffset := 13 // start of "bar"

	line, _ := lm.OffsetToLineCol(fooOffset)
	assert.Equal(t, 10, line, "line directly after #line 10 must report baseLine")

	line, _ = lm.OffsetToLineCol(barOffset)
	assert.Equal(t, 11, line, "subsequent lines increment from baseLine")
}

func TestOffsetToLineColLineDirectiveWithFile(t *testing.T) {
	src := "#line 5 \"inc.glsl\"\nx\n"
	lm := NewLineMap(PrimaryFile)
	for i, r := range src {
		if r == '\n' {
			lm.recordNewlineAt(i)
		}
	}
	lm.AddLineOverride(18, 5, "inc.glsl")

	name, ok := lm.FileNameAt(19)
	require.True(t, ok)
	assert.Equal(t, "inc.glsl", name)

	line, _ := lm.OffsetToLineCol(19)
	assert.Equal(t, 5, line)
}

func TestOffsetToLineColMultipleOverrides(t *testing.T) {
	src := "#line 1\na\n#line 100\nb\nc\n"
	lm := NewLineMap(PrimaryFile)
	for i, r := range src {
		if r == '\n' {
			lm.recordNewlineAt(i)
		}
	}
	lm.AddLineOverride(6, 1, "")
	lm.AddLineOverride(18, 100, "")

	aOffset := 8
	bOffset := 20
	cOffset := 22

	line, _ := lm.OffsetToLineCol(aOffset)
	assert.Equal(t, 1, line)
	line, _ = lm.OffsetToLineCol(bOffset)
	assert.Equal(t, 100, line)
	line, _ = lm.OffsetToLineCol(cOffset)
	assert.Equal(t, 101, line)
}

func TestFileNameAtNoOverride(t *testing.T) {
	lm := NewLineMap(PrimaryFile)
	_, ok := lm.FileNameAt(0)
	assert.False(t, ok)
}

func TestFileId(t *testing.T) {
	lm := NewLineMap(FileId(3))
	assert.Equal(t, FileId(3), lm.FileId())
}
