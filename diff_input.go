package proofdiff

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ProcessUnifiedDiff reads a unified diff from input and writes it to
// output with every block of removed and added lines annotated: removed
// lines are compared against the added lines of the same block and vice
// versa, so the output shows which words of each side changed rather than
// whole lines. Headers and context lines pass through unchanged.
//
// This is useful for enhancing the output of "git diff".
func ProcessUnifiedDiff(input io.Reader, output io.Writer, opts Options, fmtOpts FormatOptions) error {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	w := bufio.NewWriter(output)

	var oldLines, newLines []string
	inHunk := false
	// Lines of the current hunk still expected on each side. Until both
	// reach zero, "--- " and "+++ " lines are removed and added content.
	var oldLeft, newLeft int

	flushBlock := func() {
		if len(oldLines) == 0 && len(newLines) == 0 {
			return
		}
		writeBlock(w, oldLines, newLines, opts, fmtOpts)
		oldLines = nil
		newLines = nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		hunkOpen := inHunk && (oldLeft > 0 || newLeft > 0)

		switch {
		case strings.HasPrefix(line, "@@"):
			flushBlock()
			h, err := parseHunkHeader(line)
			if err != nil {
				return err
			}
			inHunk = true
			oldLeft, newLeft = h.OldCount, h.NewCount
			fmt.Fprintln(w, line)
			continue
		case !hunkOpen && isFileHeader(line):
			flushBlock()
			inHunk = false
			fmt.Fprintln(w, line)
			continue
		}

		if !inHunk {
			fmt.Fprintln(w, line)
			continue
		}

		switch {
		case strings.HasPrefix(line, "-"):
			oldLines = append(oldLines, line[1:])
			oldLeft--
		case strings.HasPrefix(line, "+"):
			newLines = append(newLines, line[1:])
			newLeft--
		default:
			flushBlock()
			if line == "" || line[0] == ' ' {
				oldLeft--
				newLeft--
			}
			fmt.Fprintln(w, line)
		}
	}
	flushBlock()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading diff: %w", err)
	}
	return w.Flush()
}

// isFileHeader reports whether line belongs to a file header of a git or
// plain unified diff.
func isFileHeader(line string) bool {
	for _, prefix := range []string{
		"--- ", "+++ ", "diff ", "index ", "new file", "deleted file",
		"similarity", "rename", "Binary",
	} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// writeBlock writes one block of removed lines followed by its added lines.
func writeBlock(w io.Writer, oldLines, newLines []string, opts Options, fmtOpts FormatOptions) {
	oldText := strings.Join(oldLines, "\n")
	newText := strings.Join(newLines, "\n")

	switch {
	case len(newLines) == 0:
		for _, l := range oldLines {
			fmt.Fprintln(w, "-"+l)
		}
		return
	case len(oldLines) == 0:
		for _, l := range newLines {
			fmt.Fprintln(w, "+"+l)
		}
		return
	}

	// Split again rather than reuse the input lines: a line may contain
	// separators such as "\r" that the engine also splits on.
	cmp := Compare(oldText, newText, opts)
	old := SplitLines(oldText)
	for _, d := range cmp.Source {
		fmt.Fprintln(w, "-"+FormatLine(old[d.LineNumber], d, fmtOpts))
	}
	added := SplitLines(newText)
	targetOpts := fmtOpts.TargetSide()
	for _, d := range cmp.Target {
		fmt.Fprintln(w, "+"+FormatLine(added[d.LineNumber], d, targetOpts))
	}
}
