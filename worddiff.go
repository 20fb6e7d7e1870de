package proofdiff

import "strings"

// ComputeWordDiffs marks the tokens of source that changed in target, the
// line source was paired with. Ranges are in source's buffer coordinates
// and sorted by start. ModeAuto is resolved against source.Text.
//
// In code mode a word is marked when its normalized form does not occur
// among target's words, and an operator when it does not occur literally
// among target's operators; the heuristic rules then add their ranges. In
// prose mode every target token can absorb one source token with the same
// key, and source tokens left over are marked.
func ComputeWordDiffs(source Line, target string, mode ContentMode) []WordDiff {
	e := newEngine(source.Text, Options{Mode: mode})
	return e.wordDiffs(source, target)
}

func (e *engine) wordDiffs(source Line, target string) []WordDiff {
	src := e.tokenizer.Tokenize(source.Text)
	tgt := e.tokenizer.Tokenize(target)

	var marks []WordDiff
	if e.mode == ModeCode {
		marks = codeWordDiffs(source, src, tgt)
		marks = ApplyRules(e.rules, RuleInput{
			Source:       source,
			SourceTokens: src,
			Target:       target,
		}, marks)
	} else {
		marks = proseWordDiffs(source, src, tgt)
	}
	return sortWordDiffs(marks)
}

func codeWordDiffs(source Line, src, tgt []Token) []WordDiff {
	words := make(map[string]bool)
	operators := make(map[string]bool)
	for _, t := range tgt {
		switch t.Class {
		case Word:
			words[t.Normalized] = true
		case Operator:
			operators[t.Text] = true
		}
	}

	var marks []WordDiff
	base := source.Range.Start
	for _, t := range src {
		changed := false
		switch t.Class {
		case Word:
			changed = !words[t.Normalized]
		case Operator:
			changed = !operators[t.Text]
		}
		if changed {
			marks = append(marks, WordDiff{Range: t.Range(base), Kind: Modification})
		}
	}
	return marks
}

func proseWordDiffs(source Line, src, tgt []Token) []WordDiff {
	available := make(map[string]int)
	for _, t := range tgt {
		available[proseKey(t)]++
	}

	used := make(map[string]int)
	var marks []WordDiff
	base := source.Range.Start
	for _, t := range src {
		if t.Class == Whitespace || (t.Class == Punctuation && strings.TrimSpace(t.Text) == "") {
			continue
		}
		key := proseKey(t)
		if used[key] >= available[key] {
			marks = append(marks, WordDiff{Range: t.Range(base), Kind: Modification})
			continue
		}
		used[key]++
	}
	return marks
}

// proseKey is the multiset key of a prose token. Emoji compare by their
// literal text so distinct emoji never absorb each other.
func proseKey(t Token) string {
	if t.Class == Emoji {
		return t.Text
	}
	return t.Normalized
}
