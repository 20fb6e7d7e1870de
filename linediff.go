package proofdiff

import "slices"

// linePairing is the target line a source line was modified into.
type linePairing struct {
	TargetIndex int     // index in the target lines
	Similarity  float64 // similarity score (0.0-1.0)
}

// engine holds the per-comparison decisions that are fixed once the source
// text is known. It is built for a single call and then discarded.
type engine struct {
	mode      ContentMode
	algo      Algorithm
	tokenizer Tokenizer
	threshold float64
	rules     []Rule
}

func newEngine(source string, opts Options) *engine {
	mode := DetectMode(source, opts.Mode)
	return &engine{
		mode:      mode,
		algo:      opts.Algorithm,
		tokenizer: TokenizerFor(mode),
		threshold: Threshold(mode),
		rules:     DefaultRules(),
	}
}

// ComputeDifferences compares source against target with default options
// and returns one LineDiff per source line, ordered by line number.
func ComputeDifferences(source, target string) []LineDiff {
	return ComputeDifferencesWithOptions(source, target, DefaultOptions())
}

// ComputeDifferencesWithOptions compares source against target and returns
// one LineDiff per source line, ordered by line number.
//
// A line is unchanged when its exact text occurs anywhere in target. Any
// other line is paired with the most similar target line; if that line
// clears the mode's threshold the pair is diffed token by token, otherwise
// the whole source line is marked as a deletion.
func ComputeDifferencesWithOptions(source, target string, opts Options) []LineDiff {
	e := newEngine(source, opts)
	return e.lineDiffs(SegmentLines(source), SegmentLines(target))
}

func (e *engine) lineDiffs(source, target []Line) []LineDiff {
	sourceTexts := lineTexts(source)
	targetTexts := lineTexts(target)

	// The line-level edit script only narrows down which lines need a
	// fuzzy search; lines it keeps are still checked against the target.
	removed := RemovedIndices(DiffSequences(sourceTexts, targetTexts, e.algo))
	present := make(map[string]bool, len(targetTexts))
	for _, t := range targetTexts {
		present[t] = true
	}

	diffs := make([]LineDiff, 0, len(source))
	for i, line := range source {
		if !removed[i] && present[line.Text] {
			diffs = append(diffs, newLineDiff(i, line, nil))
			continue
		}
		diffs = append(diffs, e.matchLine(i, line, targetTexts))
	}

	slices.SortStableFunc(diffs, func(a, b LineDiff) int {
		return a.LineNumber - b.LineNumber
	})
	return diffs
}

// matchLine classifies a changed source line as modified into its best
// target match or as deleted.
func (e *engine) matchLine(index int, line Line, targets []string) LineDiff {
	pairing, ok := e.bestMatch(line.Text, targets)
	if !ok {
		return newLineDiff(index, line, []WordDiff{{Range: line.Range, Kind: Deletion}})
	}
	return newLineDiff(index, line, e.wordDiffs(line, targets[pairing.TargetIndex]))
}

// bestMatch returns the first target line with the highest similarity to
// text, provided that similarity reaches the threshold.
func (e *engine) bestMatch(text string, targets []string) (linePairing, bool) {
	best := linePairing{TargetIndex: -1, Similarity: -1}
	for j, t := range targets {
		sim := similarity(text, t, e.mode, e.algo)
		if sim > best.Similarity {
			best.TargetIndex, best.Similarity = j, sim
		}
	}
	if best.TargetIndex < 0 || best.Similarity < e.threshold {
		return linePairing{}, false
	}
	return best, true
}

// FindBestMatch returns the index and similarity of the first line in
// targets that is most similar to line, or -1 and 0 when no line reaches
// the threshold for mode. ModeAuto is resolved against line.
func FindBestMatch(line string, targets []string, mode ContentMode) (int, float64) {
	e := newEngine(line, Options{Mode: mode})
	pairing, ok := e.bestMatch(line, targets)
	if !ok {
		return -1, 0
	}
	return pairing.TargetIndex, pairing.Similarity
}

func lineTexts(lines []Line) []string {
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return texts
}
