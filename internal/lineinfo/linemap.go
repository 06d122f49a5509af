package lineinfo

import "sort"

// FileId identifies a source unit within a pipeline run. FileId 0 always
// denotes the primary (string or root-file) input; every file entered via
// #include/#moj_import receives a unique, strictly increasing id.
type FileId int

// PrimaryFile is the FileId of the translation unit's root source.
const PrimaryFile FileId = 0

// lineOverride records a `#line N ["file"]` directive: from logical offset
// onward, line numbers are reported relative to baseLine instead of the
// physical newline count.
type lineOverride struct {
	offset   int
	baseLine int
	file     string // "" unless cpp_style_line gave an explicit filename
}

// LineMap is an append-only offset -> (line, col) index. It accounts for
// every physical newline byte, including ones elided by line continuation,
// and for `#line` directive rewrites. It is immutable after lexing
// completes; callers query it afterwards to resolve diagnostics.
type LineMap struct {
	id FileId

	// newlines holds the original byte offset of every physical newline
	// seen, in increasing order.
	newlines []int

	// overrides holds #line directive rewrites, in increasing offset order.
	overrides []lineOverride
}

// NewLineMap creates an empty LineMap for the given file.
func NewLineMap(id FileId) *LineMap {
	return &LineMap{id: id}
}

// FileId returns the file this LineMap was built for.
func (lm *LineMap) FileId() FileId { return lm.id }

func (lm *LineMap) recordNewlineAt(offset int) {
	if n := len(lm.newlines); n > 0 && lm.newlines[n-1] == offset {
		return
	}
	lm.newlines = append(lm.newlines, offset)
}

// AddLineOverride records a `#line N` (or `#line N "file"`) directive
// effective starting at offset: the next physical line after offset is
// reported as baseLine (and, if file != "", under that file name).
func (lm *LineMap) AddLineOverride(offset, baseLine int, file string) {
	lm.overrides = append(lm.overrides, lineOverride{offset: offset, baseLine: baseLine, file: file})
}

// OffsetToLineCol resolves a byte offset in the original source to a
// 1-based line and 0-based column, matching compiler diagnostic
// conventions. It accounts for any `#line` overrides active at offset.
func (lm *LineMap) OffsetToLineCol(offset int) (line, col int) {
	// physical line: count of newlines strictly before offset, 1-based.
	idx := sort.SearchInts(lm.newlines, offset)
	physicalLine := idx + 1

	lineStart := 0
	if idx > 0 {
		lineStart = lm.newlines[idx-1] + 1
	}
	col = offset - lineStart

	line = physicalLine
	if ov, ok := lm.activeOverride(offset); ok {
		// Count physical lines between the override point and offset to
		// get the delta, then rebase onto the override's declared line.
		// The override is recorded at the end of the "line" keyword token,
		// still on the directive's own physical line, so a delta of 0 means
		// "this is the directive's own line" (baseLine - 1); the line
		// immediately following the directive (delta == 1) is the one that
		// must report exactly baseLine, per §4.4.6.
		overrideIdx := sort.SearchInts(lm.newlines, ov.offset)
		delta := idx - overrideIdx
		line = ov.baseLine + delta - 1
	}

	return line, col
}

// FileNameAt returns the filename in effect at offset due to a cpp-style
// `#line N "file"` directive, or "", false if none applies.
func (lm *LineMap) FileNameAt(offset int) (string, bool) {
	if ov, ok := lm.activeOverride(offset); ok && ov.file != "" {
		return ov.file, true
	}
	return "", false
}

func (lm *LineMap) activeOverride(offset int) (lineOverride, bool) {
	// overrides is small and append-ordered by offset; find the last one
	// at or before offset.
	best := -1
	for i, ov := range lm.overrides {
		if ov.offset <= offset {
			best = i
		} else {
			break
		}
	}
	if best < 0 {
		return lineOverride{}, false
	}
	return lm.overrides[best], true
}
