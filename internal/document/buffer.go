// Package document provides the in-memory text buffer the generator edits.
// Offsets are byte offsets; lines are zero based.
package document

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// ErrOutOfRange is returned for offsets or lines outside the buffer.
var ErrOutOfRange = errors.New("position out of range")

// Edit is a single replacement of [Start, End) with Text, expressed in the
// coordinates of the text as it was immediately before the edit.
type Edit struct {
	Start int
	End   int
	Text  string
}

// transaction is one committed write action, kept for undo.
type transaction struct {
	before string
	edits  []Edit
}

// Buffer is a mutable document. Reads are safe for concurrent use; all
// mutation goes through WriteAction.
type Buffer struct {
	mu         sync.RWMutex
	text       string
	lineStarts []int
	history    []transaction
}

// New returns a buffer holding text.
func New(text string) *Buffer {
	b := &Buffer{}
	b.setText(text)
	return b
}

func (b *Buffer) setText(text string) {
	b.text = text
	b.lineStarts = lineStarts(text)
}

func lineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// Text returns the current content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// Len returns the content length in bytes.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.text)
}

// LineCount returns the number of lines; an empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lineStarts)
}

// LineNumber returns the line containing offset. Offsets past the end clamp
// to the last line.
func (b *Buffer) LineNumber(offset int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset <= 0 {
		return 0
	}
	return sort.Search(len(b.lineStarts), func(i int) bool { return b.lineStarts[i] > offset }) - 1
}

// LineStartOffset returns the offset of the first character of line.
func (b *Buffer) LineStartOffset(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineStartLocked(line)
}

func (b *Buffer) lineStartLocked(line int) int {
	if line <= 0 {
		return 0
	}
	if line >= len(b.lineStarts) {
		return len(b.text)
	}
	return b.lineStarts[line]
}

// LineEndOffset returns the offset just before the line break ending line
// (or the end of the buffer for the last line).
func (b *Buffer) LineEndOffset(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 {
		return 0
	}
	if line+1 >= len(b.lineStarts) {
		return len(b.text)
	}
	end := b.lineStarts[line+1] - 1
	if end > 0 && b.text[end-1] == '\r' {
		end--
	}
	return end
}

// TextBetween returns the text in [start, end), clamped to the buffer.
func (b *Buffer) TextBetween(start, end int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start = max(0, min(start, len(b.text)))
	end = max(start, min(end, len(b.text)))
	return b.text[start:end]
}

// OffsetAt converts a zero-based line and byte column into an offset.
func (b *Buffer) OffsetAt(line, col int) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= len(b.lineStarts) || col < 0 {
		return 0, fmt.Errorf("line %d col %d: %w", line, col, ErrOutOfRange)
	}
	start := b.lineStarts[line]
	end := len(b.text)
	if line+1 < len(b.lineStarts) {
		end = b.lineStarts[line+1] - 1
	}
	if start+col > end {
		return 0, fmt.Errorf("line %d col %d: %w", line, col, ErrOutOfRange)
	}
	return start + col, nil
}

// Editor is the mutation surface handed to a write action.
type Editor interface {
	Replace(start, end int, text string) error
	Insert(offset int, text string) error
	Delete(start, end int) error
	// Text returns the content as seen inside the transaction.
	Text() string
}

// tx is a working copy that becomes the buffer content on commit.
type tx struct {
	text  string
	edits []Edit
}

func (t *tx) Text() string { return t.text }

func (t *tx) Replace(start, end int, text string) error {
	if start < 0 || end < start || end > len(t.text) {
		return fmt.Errorf("replace [%d,%d) in %d bytes: %w", start, end, len(t.text), ErrOutOfRange)
	}
	t.text = t.text[:start] + text + t.text[end:]
	t.edits = append(t.edits, Edit{Start: start, End: end, Text: text})
	return nil
}

func (t *tx) Insert(offset int, text string) error { return t.Replace(offset, offset, text) }

func (t *tx) Delete(start, end int) error { return t.Replace(start, end, "") }

// WriteAction runs fn against a working copy of the buffer. The copy is
// committed as a single undo unit when fn returns nil; on error or panic the
// buffer is left untouched. The write lock is held for the whole call, so fn
// must read through the Editor, not the Buffer.
func (b *Buffer) WriteAction(fn func(Editor) error) (err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	work := &tx{text: b.text}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("write action aborted: %v", r)
		}
	}()
	if err := fn(work); err != nil {
		return err
	}
	if len(work.edits) == 0 {
		return nil
	}
	b.history = append(b.history, transaction{before: b.text, edits: work.edits})
	b.setText(work.text)
	return nil
}

// LastEdits returns the edits of the most recent committed write action.
func (b *Buffer) LastEdits() []Edit {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.history) == 0 {
		return nil
	}
	last := b.history[len(b.history)-1].edits
	out := make([]Edit, len(last))
	copy(out, last)
	return out
}

// Undo reverts the most recent committed write action.
func (b *Buffer) Undo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.history) == 0 {
		return false
	}
	last := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	b.setText(last.before)
	return true
}

// LeadingWhitespace returns the whitespace run at the start of s.
func LeadingWhitespace(s string) string {
	return s[:len(s)-len(strings.TrimLeftFunc(s, unicode.IsSpace))]
}

// IsBlank reports whether s consists only of whitespace.
func IsBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}
