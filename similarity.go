package proofdiff

// Minimum similarity for a changed line to count as modified into its best
// match rather than deleted.
const (
	CodeThreshold  = 0.5
	ProseThreshold = 0.3
)

// Threshold returns the pairing threshold for mode.
func Threshold(mode ContentMode) float64 {
	if mode == ModeCode {
		return CodeThreshold
	}
	return ProseThreshold
}

// Similarity scores how closely target corresponds to source, from 0.0 (no
// similarity) to 1.0 (identical token content). Whitespace is ignored.
//
// In code mode the score is 1 - changes/max(len) over the normalized token
// sequences, where changes is the size of the edit script between them, so
// order and repetition matter. In prose mode it is the Jaccard index of the
// two sets of normalized tokens. ModeAuto scores as prose.
func Similarity(source, target string, mode ContentMode) float64 {
	return similarity(source, target, mode, AlgorithmMyers)
}

func similarity(source, target string, mode ContentMode, algo Algorithm) float64 {
	if source == "" && target == "" {
		return 1.0
	}
	if source == "" || target == "" {
		return 0.0
	}

	tok := TokenizerFor(mode)
	a := normalizedKeys(withoutWhitespace(tok.Tokenize(source)))
	b := normalizedKeys(withoutWhitespace(tok.Tokenize(target)))

	// Whitespace-only text has nothing to compare beyond its emptiness.
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	if mode == ModeCode {
		return editSimilarity(a, b, algo)
	}
	return jaccard(a, b)
}

func normalizedKeys(tokens []Token) []string {
	keys := make([]string, len(tokens))
	for i, t := range tokens {
		keys[i] = t.Normalized
	}
	return keys
}

func editSimilarity(a, b []string, algo Algorithm) float64 {
	changes := CountChanges(DiffSequences(a, b, algo))
	score := 1.0 - float64(changes)/float64(max(len(a), len(b)))
	return min(max(score, 0.0), 1.0)
}

func jaccard(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, k := range a {
		setA[k] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, k := range b {
		setB[k] = struct{}{}
	}

	inter := 0
	for k := range setA {
		if _, ok := setB[k]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}
