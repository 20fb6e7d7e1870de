package proofdiff

// Comparison annotates both sides of a side-by-side view.
type Comparison struct {
	// Mode is the content mode detected from the source text (or forced by
	// Options). Both directions use it.
	Mode ContentMode

	// Source has one LineDiff per source line, diffed against the target.
	Source []LineDiff

	// Target has one LineDiff per target line, diffed against the source.
	// A Deletion here marks a line that was inserted by the revision.
	Target []LineDiff
}

// Compare annotates source against target and target against source.
func Compare(source, target string, opts Options) Comparison {
	opts.Mode = DetectMode(source, opts.Mode)
	return Comparison{
		Mode:   opts.Mode,
		Source: ComputeDifferencesWithOptions(source, target, opts),
		Target: ComputeDifferencesWithOptions(target, source, opts),
	}
}

// HasChanges reports whether any line of diffs is different.
func HasChanges(diffs []LineDiff) bool {
	for _, d := range diffs {
		if d.IsDifferent {
			return true
		}
	}
	return false
}

// Statistics summarizes the lines of one side of a comparison.
type Statistics struct {
	Lines        int // total lines
	Unchanged    int // lines without marks
	Modified     int // lines paired with a target line and marked
	Deleted      int // lines without a counterpart
	MarkedRanges int // number of WordDiffs over all lines
	MarkedUnits  int // UTF-16 units covered by those WordDiffs
}

// ComputeStatistics calculates statistics for diffs.
func ComputeStatistics(diffs []LineDiff) Statistics {
	var st Statistics
	st.Lines = len(diffs)
	for _, d := range diffs {
		switch {
		case !d.IsDifferent:
			st.Unchanged++
		case isDeletion(d):
			st.Deleted++
		default:
			st.Modified++
		}
		st.MarkedRanges += len(d.WordDiffs)
		for _, w := range d.WordDiffs {
			st.MarkedUnits += w.Range.Len()
		}
	}
	return st
}

func isDeletion(d LineDiff) bool {
	return len(d.WordDiffs) == 1 && d.WordDiffs[0].Kind == Deletion
}
