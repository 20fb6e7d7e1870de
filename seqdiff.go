package proofdiff

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dacharyc/diffx"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Operation represents an edit operation type.
type Operation int

const (
	// Equal indicates the elements are unchanged.
	Equal Operation = iota
	// Insert indicates the elements were added to b.
	Insert
	// Delete indicates the elements were removed from a.
	Delete
)

// String returns a human-readable representation of the operation.
func (o Operation) String() string {
	switch o {
	case Equal:
		return "Equal"
	case Insert:
		return "Insert"
	case Delete:
		return "Delete"
	default:
		return "Unknown"
	}
}

// Edit is one step of an edit script turning a into b, with index ranges
// into both sequences. For Delete the b range is empty, for Insert the a
// range is empty.
type Edit struct {
	Type   Operation
	AStart int // start index in a (inclusive)
	AEnd   int // end index in a (exclusive)
	BStart int // start index in b (inclusive)
	BEnd   int // end index in b (exclusive)
}

// Algorithm selects the sequence difference implementation.
type Algorithm int

const (
	// AlgorithmMyers computes a minimal edit script (longest common
	// subsequence) with diffmatchpatch.
	AlgorithmMyers Algorithm = iota
	// AlgorithmHistogram uses diffx's histogram diff, which avoids
	// anchoring on frequent elements at the cost of minimality.
	AlgorithmHistogram
)

// String returns the algorithm name as accepted by ParseAlgorithm.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmMyers:
		return "myers"
	case AlgorithmHistogram:
		return "histogram"
	default:
		return "unknown"
	}
}

// ParseAlgorithm parses "myers" or "histogram".
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "myers":
		return AlgorithmMyers, nil
	case "histogram":
		return AlgorithmHistogram, nil
	default:
		return AlgorithmMyers, fmt.Errorf("invalid algorithm %q (use myers or histogram)", s)
	}
}

// DiffSequences computes an edit script turning a into b. Elements are
// compared with ==. Adjacent edits never share a type.
func DiffSequences[T comparable](a, b []T, algo Algorithm) []Edit {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	keysA, keysB, distinct := internKeys(a, b)

	if algo == AlgorithmHistogram || distinct > maxRuneKeys {
		return histogramEdits(keysA, keysB)
	}
	return myersEdits(keysA, keysB)
}

// internKeys maps every distinct element of a and b to a small integer.
func internKeys[T comparable](a, b []T) (keysA, keysB []int, distinct int) {
	ids := make(map[T]int, len(a)+len(b))
	key := func(v T) int {
		id, ok := ids[v]
		if !ok {
			id = len(ids)
			ids[v] = id
		}
		return id
	}

	keysA = make([]int, len(a))
	for i, v := range a {
		keysA[i] = key(v)
	}
	keysB = make([]int, len(b))
	for i, v := range b {
		keysB[i] = key(v)
	}
	return keysA, keysB, len(ids)
}

// Keys become runes for diffmatchpatch. The surrogate block is skipped so
// every key is a valid rune and survives the round trip through string.
const (
	surrogateFirst = 0xD800
	surrogateCount = 0x800
	maxRuneKeys    = utf8.MaxRune - surrogateCount
)

func keyRune(k int) rune {
	r := rune(k)
	if r >= surrogateFirst {
		r += surrogateCount
	}
	return r
}

func keyRunes(keys []int) []rune {
	runes := make([]rune, len(keys))
	for i, k := range keys {
		runes[i] = keyRune(k)
	}
	return runes
}

// myersEdits diffs keys with diffmatchpatch. A zero timeout disables the
// speedups that give up on minimality.
func myersEdits(a, b []int) []Edit {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	diffs := dmp.DiffMainRunes(keyRunes(a), keyRunes(b), false)
	diffs = dmp.DiffCleanupMerge(diffs)

	var edits []Edit
	i, j := 0, 0
	for _, d := range diffs {
		n := utf8.RuneCountInString(d.Text)
		if n == 0 {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			edits = appendEdit(edits, Edit{Type: Equal, AStart: i, AEnd: i + n, BStart: j, BEnd: j + n})
			i += n
			j += n
		case diffmatchpatch.DiffDelete:
			edits = appendEdit(edits, Edit{Type: Delete, AStart: i, AEnd: i + n, BStart: j, BEnd: j})
			i += n
		case diffmatchpatch.DiffInsert:
			edits = appendEdit(edits, Edit{Type: Insert, AStart: i, AEnd: i, BStart: j, BEnd: j + n})
			j += n
		}
	}
	return edits
}

// histogramEdits diffs keys with diffx.
func histogramEdits(a, b []int) []Edit {
	ops := diffx.DiffHistogram(keyStrings(a), keyStrings(b))

	var edits []Edit
	for _, op := range ops {
		var typ Operation
		switch op.Type {
		case diffx.Equal:
			typ = Equal
		case diffx.Insert:
			typ = Insert
		case diffx.Delete:
			typ = Delete
		default:
			continue
		}
		if op.AEnd == op.AStart && op.BEnd == op.BStart {
			continue
		}
		edits = appendEdit(edits, Edit{Type: typ, AStart: op.AStart, AEnd: op.AEnd, BStart: op.BStart, BEnd: op.BEnd})
	}
	return edits
}

func keyStrings(keys []int) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = strconv.Itoa(k)
	}
	return out
}

// appendEdit appends e, merging it into the previous edit when both have
// the same type and are contiguous.
func appendEdit(edits []Edit, e Edit) []Edit {
	if n := len(edits); n > 0 {
		last := &edits[n-1]
		if last.Type == e.Type && last.AEnd == e.AStart && last.BEnd == e.BStart {
			last.AEnd = e.AEnd
			last.BEnd = e.BEnd
			return edits
		}
	}
	return append(edits, e)
}

// CountChanges returns the number of inserted plus removed elements.
func CountChanges(edits []Edit) int {
	n := 0
	for _, e := range edits {
		switch e.Type {
		case Delete:
			n += e.AEnd - e.AStart
		case Insert:
			n += e.BEnd - e.BStart
		}
	}
	return n
}

// RemovedIndices returns the set of indices of a that the script removes.
func RemovedIndices(edits []Edit) map[int]bool {
	removed := make(map[int]bool)
	for _, e := range edits {
		if e.Type != Delete {
			continue
		}
		for i := e.AStart; i < e.AEnd; i++ {
			removed[i] = true
		}
	}
	return removed
}
