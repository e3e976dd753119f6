package lsp

import (
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// LSP positions count UTF-16 code units; the engine works in byte offsets.

// offsetAt converts pos to a byte offset in text, clamping to the line end
// and to the end of the text.
func offsetAt(text string, pos protocol.Position) int {
	offset := 0
	for line := protocol.UInteger(0); line < pos.Line; line++ {
		next := indexNewline(text, offset)
		if next < 0 {
			return len(text)
		}
		offset = next + 1
	}
	units := protocol.UInteger(0)
	for offset < len(text) && units < pos.Character {
		r, size := utf8.DecodeRuneInString(text[offset:])
		if r == '\n' {
			break
		}
		units += protocol.UInteger(utf16.RuneLen(r))
		offset += size
	}
	return offset
}

// positionAt converts a byte offset in text to an LSP position.
func positionAt(text string, offset int) protocol.Position {
	offset = max(0, min(offset, len(text)))
	var pos protocol.Position
	for _, r := range text[:offset] {
		if r == '\n' {
			pos.Line++
			pos.Character = 0
			continue
		}
		pos.Character += protocol.UInteger(utf16.RuneLen(r))
	}
	return pos
}

func rangeOf(text string, start, end int) protocol.Range {
	return protocol.Range{Start: positionAt(text, start), End: positionAt(text, end)}
}

func indexNewline(text string, from int) int {
	for i := from; i < len(text); i++ {
		if text[i] == '\n' {
			return i
		}
	}
	return -1
}
