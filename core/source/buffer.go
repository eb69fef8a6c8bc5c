// Package source provides an immutable, byte-indexed view over a single
// Wren source file, with line/column mapping answered from a table of
// line-start offsets computed when the buffer is built.
package source

import "sort"

// Buffer is an immutable byte-indexed view of UTF-8 source text. It is
// cheap to construct and safe to share across goroutines once built: all
// state is computed once and never mutated afterward.
type Buffer struct {
	path string
	text string

	// lineStarts[i] is the byte offset of the first byte of line i+1.
	// lineStarts[0] is always 0.
	lineStarts []int
}

// New builds a Buffer over text, computing the line-start table eagerly,
// once; building it is not deferred until the first line or column query.
func New(path, text string) *Buffer {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Buffer{path: path, text: text, lineStarts: starts}
}

// Path returns the path this buffer was constructed with.
func (b *Buffer) Path() string { return b.path }

// Len returns the byte length of the source text.
func (b *Buffer) Len() int { return len(b.text) }

// ByteAt returns the byte at offset. Panics if offset is out of range,
// matching slice semantics — callers never query outside [0, Len()).
func (b *Buffer) ByteAt(offset int) byte { return b.text[offset] }

// Substring returns text[start : start+length].
func (b *Buffer) Substring(start, length int) string {
	return b.text[start : start+length]
}

// Column returns the 1-based column at offset: the number of bytes since
// the prior line feed (or the start of the buffer), plus one.
func (b *Buffer) Column(offset int) int {
	line := b.Line(offset)
	lineStart := b.lineStarts[line-1]
	return offset - lineStart + 1
}

// Line returns the 1-based line number at offset: the smallest i such that
// offset < lineStarts[i], or len(lineStarts) if no such i exists.
func (b *Buffer) Line(offset int) int {
	i := sort.Search(len(b.lineStarts), func(i int) bool {
		return offset < b.lineStarts[i]
	})
	if i == 0 {
		return 1
	}
	return i
}

// LineText returns the full text of the given 1-based line, excluding its
// trailing line feed.
func (b *Buffer) LineText(line int) string {
	if line < 1 || line > len(b.lineStarts) {
		return ""
	}
	start := b.lineStarts[line-1]
	end := len(b.text)
	if line < len(b.lineStarts) {
		end = b.lineStarts[line] - 1 // exclude the LF itself
	}
	if end < start {
		end = start
	}
	return b.text[start:end]
}

// Text returns the full source text.
func (b *Buffer) Text() string { return b.text }
