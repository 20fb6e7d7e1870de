package proofdiff

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// DiffHunk is one hunk of a unified diff.
type DiffHunk struct {
	// Header is the raw "@@ ... @@" line.
	Header string
	// OldStart is the starting line number in the old file.
	OldStart int
	// OldCount is the number of lines from the old file.
	OldCount int
	// NewStart is the starting line number in the new file.
	NewStart int
	// NewCount is the number of lines in the new file.
	NewCount int
	// OldLines holds context and removed lines (without their prefix) in
	// old-file order.
	OldLines []string
	// NewLines holds context and added lines (without their prefix) in
	// new-file order.
	NewLines []string
}

// OldText returns the hunk's old side as a single buffer.
func (h DiffHunk) OldText() string {
	return strings.Join(h.OldLines, "\n")
}

// NewText returns the hunk's new side as a single buffer.
func (h DiffHunk) NewText() string {
	return strings.Join(h.NewLines, "\n")
}

// Compare runs the engine over the hunk's old and new sides.
func (h DiffHunk) Compare(opts Options) Comparison {
	return Compare(h.OldText(), h.NewText(), opts)
}

// UnifiedDiff is one file of a unified diff.
type UnifiedDiff struct {
	// OldFile is the name of the old file (from the "---" line).
	OldFile string
	// NewFile is the name of the new file (from the "+++" line).
	NewFile string
	// Hunks contains all the diff hunks.
	Hunks []DiffHunk
}

var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// parseHunkHeader parses "@@ -a[,b] +c[,d] @@". Omitted counts are 1.
func parseHunkHeader(line string) (DiffHunk, error) {
	m := hunkHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return DiffHunk{}, fmt.Errorf("malformed hunk header: %q", line)
	}
	num := func(s string) int {
		if s == "" {
			return 1
		}
		n, _ := strconv.Atoi(s)
		return n
	}
	return DiffHunk{
		Header:   line,
		OldStart: num(m[1]),
		OldCount: num(m[2]),
		NewStart: num(m[3]),
		NewCount: num(m[4]),
	}, nil
}

// ParseUnifiedDiff reads a unified diff as produced by diff -u or git diff.
// Lines outside hunks that are not file headers are ignored.
func ParseUnifiedDiff(r io.Reader) ([]UnifiedDiff, error) {
	var files []UnifiedDiff
	var file *UnifiedDiff
	var hunk *DiffHunk

	flushHunk := func() {
		if hunk != nil && file != nil {
			file.Hunks = append(file.Hunks, *hunk)
		}
		hunk = nil
	}
	flushFile := func() {
		flushHunk()
		if file != nil {
			files = append(files, *file)
		}
		file = nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "--- ") && (hunk == nil || hunkComplete(hunk)):
			flushFile()
			file = &UnifiedDiff{OldFile: strings.TrimPrefix(line, "--- ")}
			continue
		case strings.HasPrefix(line, "+++ ") && file != nil && hunk == nil:
			file.NewFile = strings.TrimPrefix(line, "+++ ")
			continue
		case strings.HasPrefix(line, "@@"):
			if file == nil {
				return nil, fmt.Errorf("line %d: hunk before file header", lineNum)
			}
			flushHunk()
			h, err := parseHunkHeader(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			hunk = &h
			continue
		}

		if hunk == nil {
			continue
		}
		switch {
		case strings.HasPrefix(line, "-"):
			hunk.OldLines = append(hunk.OldLines, line[1:])
		case strings.HasPrefix(line, "+"):
			hunk.NewLines = append(hunk.NewLines, line[1:])
		case strings.HasPrefix(line, " "):
			hunk.OldLines = append(hunk.OldLines, line[1:])
			hunk.NewLines = append(hunk.NewLines, line[1:])
		case line == "":
			hunk.OldLines = append(hunk.OldLines, "")
			hunk.NewLines = append(hunk.NewLines, "")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading diff: %w", err)
	}

	flushFile()
	return files, nil
}

// hunkComplete reports whether h already holds as many lines as its
// header announced, so a following "--- " line starts a new file rather
// than being a removed line that begins with "-- ".
func hunkComplete(h *DiffHunk) bool {
	return len(h.OldLines) >= h.OldCount && len(h.NewLines) >= h.NewCount
}
