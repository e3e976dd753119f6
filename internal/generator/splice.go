package generator

import (
	"fmt"
	"strings"

	"github.com/calumari/dtogen/internal/document"
)

// qualifierSplice computes the range covering `qualifier.member` for a
// completion trigger. The separator dot sits right before trig.Offset.
func qualifierSplice(doc Document, trig Trigger) (SpliceRange, error) {
	start := trig.Offset - len(trig.Qualifier) - 1
	if start < 0 {
		log.Errorf("splice start %d for qualifier %q at %d", start, trig.Qualifier, trig.Offset)
		return SpliceRange{}, fmt.Errorf("start %d: %w", start, ErrInvalidSplice)
	}
	end := max(trig.Tail, trig.Offset)
	if end > doc.Len() {
		log.Errorf("splice end %d beyond document length %d", end, doc.Len())
		return SpliceRange{}, fmt.Errorf("end %d: %w", end, ErrInvalidSplice)
	}
	return SpliceRange{
		Start:   start,
		End:     end,
		Indent:  document.LeadingWhitespace(linePrefix(doc, start)),
		Newline: lineBreak(doc, doc.LineNumber(start)),
	}, nil
}

// commandSplice is an empty range at the end of the caret line, carrying
// that line's indentation.
func commandSplice(doc Document, caret int) SpliceRange {
	line := doc.LineNumber(caret)
	end := doc.LineEndOffset(line)
	indent := document.LeadingWhitespace(doc.TextBetween(doc.LineStartOffset(line), end))
	return SpliceRange{Start: end, End: end, Indent: indent, Newline: lineBreak(doc, line)}
}

// lineBreak returns the terminator of line. An unterminated last line takes
// the terminator of the line above it.
func lineBreak(doc Document, line int) string {
	for ; line >= 0; line-- {
		end := doc.LineEndOffset(line)
		switch {
		case doc.TextBetween(end, end+2) == "\r\n":
			return "\r\n"
		case end < doc.Len():
			return "\n"
		}
	}
	return "\n"
}

// withNewline rewrites the line breaks of generated text to nl.
func withNewline(text, nl string) string {
	if nl == "" || nl == "\n" {
		return text
	}
	return strings.ReplaceAll(text, "\n", nl)
}

// linePrefix returns the text between the start of offset's line and offset.
func linePrefix(doc Document, offset int) string {
	return doc.TextBetween(doc.LineStartOffset(doc.LineNumber(offset)), offset)
}

// isStandalone reports whether nothing but whitespace precedes offset on its
// line, i.e. the generated expression starts a statement of its own.
func isStandalone(doc Document, offset int) bool {
	return document.IsBlank(linePrefix(doc, offset))
}
