package proofdiff

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// FormatOptions configures diff output formatting.
type FormatOptions struct {
	// StartDelete is the string to mark the beginning of a deleted line.
	// Default: "[-"
	StartDelete string

	// StopDelete is the string to mark the end of a deleted line.
	// Default: "-]"
	StopDelete string

	// StartModify is the string to mark the beginning of modified text.
	// Default: "{~"
	StartModify string

	// StopModify is the string to mark the end of modified text.
	// Default: "~}"
	StopModify string

	// StartInsert and StopInsert replace StartDelete and StopDelete when
	// rendering the target side, where a whole-line mark is an insertion.
	// Defaults: "{+" and "+}"
	StartInsert string
	StopInsert  string

	// UseColor enables ANSI color output. When true, DeleteColor and
	// ModifyColor are used instead of text markers.
	UseColor bool

	// DeleteColor is the ANSI escape sequence for deleted text color.
	DeleteColor string

	// ModifyColor is the ANSI escape sequence for modified text color.
	ModifyColor string

	// InsertColor replaces DeleteColor on the target side.
	InsertColor string

	// ColorReset is the ANSI escape sequence to reset colors.
	// Default: "\033[0m"
	ColorReset string

	// LessMode uses overstrike underlining for deleted text and overstrike
	// bold for modified text (for less -r).
	LessMode bool

	// PrinterMode uses the same overstrike highlighting as LessMode, for
	// printing.
	PrinterMode bool

	// ShowLineNumbers prefixes every line with its 1-based number.
	ShowLineNumbers bool

	// LineNumWidth is the minimum width for line numbers. 0 means
	// auto-calculate.
	LineNumWidth int

	// ChangeMarker prefixes lines that have marks. Unchanged lines get the
	// same number of spaces. Empty disables the prefix column.
	ChangeMarker string
}

// ANSI escape code constants
const (
	ANSIReset       = "\033[0m"
	ANSIDeleteColor = "\033[0;31;1m" // bold red
	ANSIModifyColor = "\033[0;33;1m" // bold yellow
	ANSIInsertColor = "\033[0;32;1m" // bold green
)

// ForegroundColors maps color names to ANSI foreground escape codes.
var ForegroundColors = map[string]string{
	"black":         "\033[30m",
	"red":           "\033[31m",
	"green":         "\033[32m",
	"yellow":        "\033[33m",
	"blue":          "\033[34m",
	"magenta":       "\033[35m",
	"cyan":          "\033[36m",
	"white":         "\033[37m",
	"brightblack":   "\033[90m",
	"brightred":     "\033[91m",
	"brightgreen":   "\033[92m",
	"brightyellow":  "\033[93m",
	"brightblue":    "\033[94m",
	"brightmagenta": "\033[95m",
	"brightcyan":    "\033[96m",
	"brightwhite":   "\033[97m",
}

// ColorNames returns the names accepted by ParseColor, plain colors first.
func ColorNames() []string {
	return []string{
		"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
		"brightblack", "brightred", "brightgreen", "brightyellow",
		"brightblue", "brightmagenta", "brightcyan", "brightwhite",
	}
}

// ParseColor returns the foreground escape sequence for a color name.
// Case and surrounding space are ignored; an empty name means no color.
func ParseColor(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", nil
	}
	fg, ok := ForegroundColors[name]
	if !ok {
		return "", fmt.Errorf("unknown color: %s", name)
	}
	return fg, nil
}

// ParseColorSpec parses "delete_color,modify_color" (e.g. "red,yellow").
// With a single color the modify color stays bold yellow.
func ParseColorSpec(spec string) (deleteColor, modifyColor string, err error) {
	parts := strings.SplitN(spec, ",", 2)

	deleteColor, err = ParseColor(parts[0])
	if err != nil {
		return "", "", fmt.Errorf("delete color: %w", err)
	}

	modifyColor = ANSIModifyColor
	if len(parts) > 1 {
		modifyColor, err = ParseColor(parts[1])
		if err != nil {
			return "", "", fmt.Errorf("modify color: %w", err)
		}
	}

	return deleteColor, modifyColor, nil
}

// DefaultFormatOptions returns FormatOptions with default settings.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		StartDelete: "[-",
		StopDelete:  "-]",
		StartModify: "{~",
		StopModify:  "~}",
		StartInsert: "{+",
		StopInsert:  "+}",
		ColorReset:  ANSIReset,
		DeleteColor: ANSIDeleteColor,
		ModifyColor: ANSIModifyColor,
		InsertColor: ANSIInsertColor,
	}
}

// TargetSide returns opts adjusted for rendering the target side of a
// Comparison: whole-line marks use the insert markers and color.
func (opts FormatOptions) TargetSide() FormatOptions {
	opts.StartDelete, opts.StopDelete = opts.StartInsert, opts.StopInsert
	opts.DeleteColor = opts.InsertColor
	return opts
}

// OverstrikeUnderline returns text with overstrike underlining (_\bchar for each char).
// This is used for less -r mode to highlight deleted text.
func OverstrikeUnderline(text string) string {
	var sb strings.Builder
	for _, r := range text {
		sb.WriteRune('_')
		sb.WriteRune('\b')
		sb.WriteRune(r)
	}
	return sb.String()
}

// OverstrikeBold returns text with overstrike bold (char\bchar for each char).
// This is used for printer mode to highlight modified text.
func OverstrikeBold(text string) string {
	var sb strings.Builder
	for _, r := range text {
		sb.WriteRune(r)
		sb.WriteRune('\b')
		sb.WriteRune(r)
	}
	return sb.String()
}

// highlight wraps text according to kind and returns the wrapped text and
// the display width the markers add.
func (opts FormatOptions) highlight(text string, kind WordDiffKind) (string, int) {
	if text == "" {
		return "", 0
	}
	switch {
	case opts.LessMode || opts.PrinterMode:
		if kind == Deletion {
			return OverstrikeUnderline(text), 0
		}
		return OverstrikeBold(text), 0
	case opts.UseColor:
		color := opts.ModifyColor
		if kind == Deletion {
			color = opts.DeleteColor
		}
		return color + text + opts.ColorReset, 0
	default:
		start, stop := opts.StartModify, opts.StopModify
		if kind == Deletion {
			start, stop = opts.StartDelete, opts.StopDelete
		}
		return start + text + stop, runewidth.StringWidth(start) + runewidth.StringWidth(stop)
	}
}

// span is a byte range of a line's text with the kind it is marked with.
type span struct {
	start, end int
	kind       WordDiffKind
}

// lineSpans converts the marks of d to byte ranges of text, clipped to the
// first limit UTF-16 units, and merges overlapping or touching ranges of
// the same kind.
func lineSpans(text string, d LineDiff, limit int) []span {
	var spans []span
	for _, w := range d.WordDiffs {
		start := w.Range.Start - d.Range.Start
		end := min(w.Range.End-d.Range.Start, limit)
		if end <= start {
			continue
		}
		s := span{start: byteOffset(text, start), end: byteOffset(text, end), kind: w.Kind}
		if s.end <= s.start {
			continue
		}
		if n := len(spans); n > 0 && s.start <= spans[n-1].end && s.kind == spans[n-1].kind {
			spans[n-1].end = max(spans[n-1].end, s.end)
			continue
		}
		if n := len(spans); n > 0 && s.start < spans[n-1].end {
			s.start = spans[n-1].end
			if s.end <= s.start {
				continue
			}
		}
		spans = append(spans, s)
	}
	return spans
}

// byteOffset converts a UTF-16 offset into text to a byte offset, clamped
// to len(text).
func byteOffset(text string, units int) int {
	n := 0
	for i, r := range text {
		if n >= units {
			return i
		}
		n += runeUTF16Len(r)
	}
	return len(text)
}

// FormatLine renders the text of one line with the marks of d applied.
func FormatLine(text string, d LineDiff, opts FormatOptions) string {
	out, _ := formatLine(text, d, UTF16Len(text), opts)
	return out
}

func formatLine(text string, d LineDiff, limit int, opts FormatOptions) (string, int) {
	var sb strings.Builder
	extra := 0
	pos := 0
	for _, s := range lineSpans(text, d, limit) {
		sb.WriteString(text[pos:s.start])
		marked, w := opts.highlight(text[s.start:s.end], s.kind)
		sb.WriteString(marked)
		extra += w
		pos = s.end
	}
	sb.WriteString(text[pos:])
	return sb.String(), extra
}

// FormatDifferences renders text, the buffer diffs was computed for, one
// line per output line with marks applied.
func FormatDifferences(text string, diffs []LineDiff, opts FormatOptions) string {
	lines := SplitLines(text)
	width := lineNumberWidth(opts, len(lines))

	var sb strings.Builder
	for i, d := range diffs {
		if d.LineNumber >= len(lines) {
			continue
		}
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(linePrefix(d, width, opts))
		sb.WriteString(FormatLine(lines[d.LineNumber], d, opts))
	}
	return sb.String()
}

// FormatDifferenceLine renders a single line the way FormatDifferences
// does, prefix included. text is the line's own text.
func FormatDifferenceLine(text string, d LineDiff, opts FormatOptions) string {
	return linePrefix(d, lineNumberWidth(opts, d.LineNumber+1), opts) + FormatLine(text, d, opts)
}

func lineNumberWidth(opts FormatOptions, lines int) int {
	if !opts.ShowLineNumbers {
		return 0
	}
	if opts.LineNumWidth > 0 {
		return opts.LineNumWidth
	}
	return max(3, len(fmt.Sprintf("%d", lines)))
}

func linePrefix(d LineDiff, width int, opts FormatOptions) string {
	var sb strings.Builder
	if opts.ChangeMarker != "" {
		if d.IsDifferent {
			sb.WriteString(opts.ChangeMarker)
		} else {
			sb.WriteString(strings.Repeat(" ", runewidth.StringWidth(opts.ChangeMarker)))
		}
	}
	if width > 0 {
		fmt.Fprintf(&sb, "%*d: ", width, d.LineNumber+1)
	}
	return sb.String()
}

// FormatSideBySide renders a comparison as two columns, the source on the
// left and the target on the right, in totalWidth terminal columns. Lines
// longer than their column are truncated; widths account for wide and
// zero-width characters.
func FormatSideBySide(cmp Comparison, source, target string, totalWidth int, opts FormatOptions) string {
	const gutter = " | "
	col := max((totalWidth-len(gutter))/2, 1)

	left := SplitLines(source)
	right := SplitLines(target)
	rows := max(len(cmp.Source), len(cmp.Target))

	var sb strings.Builder
	for i := 0; i < rows; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		l := sideCell(left, cmp.Source, i, col, opts)
		sb.WriteString(l)
		sb.WriteString(gutter)
		sb.WriteString(strings.TrimRight(sideCell(right, cmp.Target, i, col, opts.TargetSide()), " "))
	}
	return sb.String()
}

// sideCell renders row i of one side padded to width columns.
func sideCell(lines []string, diffs []LineDiff, i, width int, opts FormatOptions) string {
	if i >= len(diffs) || i >= len(lines) {
		return strings.Repeat(" ", width)
	}
	text := runewidth.Truncate(lines[i], width, "")
	out, extra := formatLine(text, diffs[i], UTF16Len(text), opts)
	pad := width - runewidth.StringWidth(text) - extra
	if pad > 0 {
		out += strings.Repeat(" ", pad)
	}
	return out
}
