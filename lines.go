package proofdiff

// Line is one line of a buffer together with its position in it.
type Line struct {
	Text  string
	Range Range // UTF-16 span, including one unit for the separator
}

// isLineSeparator reports whether r ends a line. Every separator is a
// single code unit, and each one ends a line on its own: "\r\n" produces
// an empty line between the two characters.
func isLineSeparator(r rune) bool {
	switch r {
	case '\n', '\v', '\f', '\r', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// SplitLines splits text on every line separator. Empty lines are kept, so
// the result always has one more element than there are separators.
func SplitLines(text string) []string {
	lines := make([]string, 0, 8)
	start := 0
	for i, r := range text {
		if isLineSeparator(r) {
			lines = append(lines, text[start:i])
			start = i + len(string(r))
		}
	}
	return append(lines, text[start:])
}

// SegmentLines splits text into lines and assigns each one its UTF-16
// range. Every line's range covers its text plus one unit for the
// separator that follows it. The last line gets that unit too, even when
// text does not end with a separator, so its End can be one past the
// length of text. Renderers depend on this convention.
func SegmentLines(text string) []Line {
	texts := SplitLines(text)
	lines := make([]Line, len(texts))
	offset := 0
	for i, t := range texts {
		n := UTF16Len(t)
		lines[i] = Line{
			Text:  t,
			Range: Range{Start: offset, End: offset + n + 1},
		}
		offset += n + 1
	}
	return lines
}

// UTF16Len returns the number of UTF-16 code units needed to encode s.
// Invalid UTF-8 bytes count as one unit each, the width of U+FFFD.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += runeUTF16Len(r)
	}
	return n
}

func runeUTF16Len(r rune) int {
	if r >= 0x10000 && r <= 0x10FFFF {
		return 2
	}
	return 1
}
