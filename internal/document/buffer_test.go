package document

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferLines(t *testing.T) {
	b := New("first\n  second\r\n\nlast")

	assert.Equal(t, 4, b.LineCount())
	assert.Equal(t, 0, b.LineNumber(0))
	assert.Equal(t, 0, b.LineNumber(5))
	assert.Equal(t, 1, b.LineNumber(6))
	assert.Equal(t, 3, b.LineNumber(100))
	assert.Equal(t, 0, b.LineNumber(-3))

	assert.Equal(t, 6, b.LineStartOffset(1))
	assert.Equal(t, 14, b.LineEndOffset(1), "carriage return is not part of the line")
	assert.Equal(t, "  second", b.TextBetween(b.LineStartOffset(1), b.LineEndOffset(1)))
	assert.Equal(t, 16, b.LineStartOffset(2))
	assert.Equal(t, 16, b.LineEndOffset(2))
	assert.Equal(t, b.Len(), b.LineEndOffset(3))
	assert.Equal(t, b.Len(), b.LineStartOffset(9))

	assert.Equal(t, "last", b.TextBetween(17, 99))
	assert.Equal(t, "", b.TextBetween(10, 4))
}

func TestOffsetAt(t *testing.T) {
	b := New("ab\ncd")
	off, err := b.OffsetAt(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, off)

	off, err = b.OffsetAt(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, off)

	_, err = b.OffsetAt(0, 3)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = b.OffsetAt(2, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestWriteAction(t *testing.T) {
	t.Run("commits all edits as one undo unit", func(t *testing.T) {
		b := New("hello world")
		err := b.WriteAction(func(ed Editor) error {
			require.NoError(t, ed.Replace(0, 5, "goodbye"))
			require.NoError(t, ed.Insert(len(ed.Text()), "!"))
			return ed.Delete(7, 8)
		})
		require.NoError(t, err)
		assert.Equal(t, "goodbyeworld!", b.Text())
		assert.Len(t, b.LastEdits(), 3)

		require.True(t, b.Undo())
		assert.Equal(t, "hello world", b.Text())
		assert.False(t, b.Undo())
	})

	t.Run("error rolls back", func(t *testing.T) {
		b := New("keep")
		boom := errors.New("boom")
		err := b.WriteAction(func(ed Editor) error {
			require.NoError(t, ed.Insert(0, "x"))
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, "keep", b.Text())
		assert.Nil(t, b.LastEdits())
	})

	t.Run("panic rolls back and releases the lock", func(t *testing.T) {
		b := New("keep")
		err := b.WriteAction(func(ed Editor) error {
			_ = ed.Insert(0, "x")
			panic("bad edit")
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad edit")
		assert.Equal(t, "keep", b.Text())

		require.NoError(t, b.WriteAction(func(ed Editor) error { return ed.Insert(4, "!") }))
		assert.Equal(t, "keep!", b.Text())
	})

	t.Run("out of range edit", func(t *testing.T) {
		b := New("abc")
		err := b.WriteAction(func(ed Editor) error { return ed.Replace(2, 9, "") })
		assert.ErrorIs(t, err, ErrOutOfRange)
		assert.Equal(t, "abc", b.Text())
	})

	t.Run("no edits records nothing", func(t *testing.T) {
		b := New("abc")
		require.NoError(t, b.WriteAction(func(Editor) error { return nil }))
		assert.False(t, b.Undo())
	})

	t.Run("concurrent writers serialize", func(t *testing.T) {
		b := New("")
		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = b.WriteAction(func(ed Editor) error { return ed.Insert(0, "x") })
			}()
		}
		wg.Wait()
		assert.Equal(t, 50, b.Len())
	})
}

func TestWhitespace(t *testing.T) {
	assert.Equal(t, "\t  ", LeadingWhitespace("\t  foo "))
	assert.Equal(t, "", LeadingWhitespace("foo"))
	assert.Equal(t, "  ", LeadingWhitespace("  "))
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank(" \t"))
	assert.False(t, IsBlank("  x"))
}
