// Package proofdiff computes line and token level differences between an
// original text and a revised version of it.
//
// It is the analytical half of a side-by-side review after an automated
// proofreading or rewrite pass. Given
//
//	for (let i = 0; i < items.length; i++) { total += items[i]; }
//	for (const item of items) { sum += item; }
//
// proofdiff reports, for every line of the original, whether it is
// unchanged, modified into some line of the revision, or deleted, and for
// modified lines exactly which tokens changed. All ranges are expressed in
// UTF-16 code units so they can be handed directly to a text renderer.
//
// The content of the original decides whether the comparison runs in code
// mode (single character operators, edit distance similarity) or prose mode
// (Unicode word/punctuation/emoji classes, set overlap similarity).
package proofdiff

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Range is a half-open span [Start, End) of UTF-16 code units.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of code units covered by r.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether other lies entirely within r.
func (r Range) Contains(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// String returns r as "[start,end)".
func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// WordDiffKind identifies why a range was marked.
type WordDiffKind int

const (
	// Deletion marks a whole line that has no counterpart in the revision.
	Deletion WordDiffKind = iota
	// Modification marks a token that changed inside a paired line.
	Modification
)

// String returns a human-readable representation of the kind.
func (k WordDiffKind) String() string {
	switch k {
	case Deletion:
		return "deletion"
	case Modification:
		return "modification"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the kind by name.
func (k WordDiffKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a kind written by MarshalJSON.
func (k *WordDiffKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "deletion":
		*k = Deletion
	case "modification":
		*k = Modification
	default:
		return fmt.Errorf("unknown word diff kind: %q", s)
	}
	return nil
}

// WordDiff is a marked range inside a source line. The range is in the
// coordinates of the buffer the line belongs to.
type WordDiff struct {
	Range Range        `json:"range"`
	Kind  WordDiffKind `json:"kind"`
}

// LineDiff describes one source line.
//
// Invariants:
//   - IsDifferent == (len(WordDiffs) > 0)
//   - every WordDiffs[i].Range lies within Range
//   - WordDiffs is sorted by Range.Start
type LineDiff struct {
	Range       Range      `json:"range"`
	LineNumber  int        `json:"lineNumber"`
	IsDifferent bool       `json:"isDifferent"`
	WordDiffs   []WordDiff `json:"wordDiffs"`
}

// Options configures a comparison. The zero value reproduces the default
// behavior: the content mode is detected from the source text and the
// Myers sequence difference is used.
type Options struct {
	// Mode forces code or prose handling. ModeAuto detects it from the
	// source text.
	Mode ContentMode

	// Algorithm selects the sequence difference used for line alignment
	// and for code similarity.
	Algorithm Algorithm
}

// DefaultOptions returns Options with default settings.
func DefaultOptions() Options {
	return Options{
		Mode:      ModeAuto,
		Algorithm: AlgorithmMyers,
	}
}

// newLineDiff builds a LineDiff for line, keeping IsDifferent in sync with
// the marks. WordDiffs is never nil so it encodes as an empty JSON array.
func newLineDiff(lineNumber int, line Line, marks []WordDiff) LineDiff {
	if marks == nil {
		marks = []WordDiff{}
	}
	return LineDiff{
		Range:       line.Range,
		LineNumber:  lineNumber,
		IsDifferent: len(marks) > 0,
		WordDiffs:   marks,
	}
}

// sortWordDiffs orders marks by position and drops exact duplicates.
func sortWordDiffs(marks []WordDiff) []WordDiff {
	if len(marks) == 0 {
		return nil
	}
	slices.SortStableFunc(marks, func(a, b WordDiff) int {
		if a.Range.Start != b.Range.Start {
			return a.Range.Start - b.Range.Start
		}
		if a.Range.End != b.Range.End {
			return a.Range.End - b.Range.End
		}
		return int(a.Kind) - int(b.Kind)
	})
	return slices.Compact(marks)
}
