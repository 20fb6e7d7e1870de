package proofdiff

import "strings"

// RuleInput is what a heuristic rule sees of a paired line.
type RuleInput struct {
	Source       Line    // source line being annotated
	SourceTokens []Token // code tokens of Source.Text
	Target       string  // text of the paired target line
}

// Rule recognizes one specific rewrite between a source and a target line
// and marks the source span it replaced. Rules only ever add marks.
type Rule struct {
	Name    string
	Applies func(in RuleInput) bool
	Mark    func(in RuleInput) (Range, bool)
}

// DefaultRules returns the rules applied in code mode, in order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "rename-total-to-sum", Applies: totalRenamed, Mark: markTotal},
		{Name: "counted-for-to-for-of", Applies: forOfRewrite, Mark: markForHeader},
		{Name: "indexed-access-to-item", Applies: indexReplaced, Mark: markIndexedAccess},
	}
}

// ApplyRules appends a Modification for every rule that applies to in and
// produces a range.
func ApplyRules(rules []Rule, in RuleInput, marks []WordDiff) []WordDiff {
	for _, r := range rules {
		if !r.Applies(in) {
			continue
		}
		if rg, ok := r.Mark(in); ok {
			marks = append(marks, WordDiff{Range: rg, Kind: Modification})
		}
	}
	return marks
}

func totalRenamed(in RuleInput) bool {
	return findToken(in.SourceTokens, 0, "total") >= 0 && strings.Contains(in.Target, "sum")
}

func markTotal(in RuleInput) (Range, bool) {
	i := findToken(in.SourceTokens, 0, "total")
	if i < 0 {
		return Range{}, false
	}
	return in.SourceTokens[i].Range(in.Source.Range.Start), true
}

func forOfRewrite(in RuleInput) bool {
	return strings.Contains(in.Source.Text, "for") &&
		strings.Contains(in.Target, "for") &&
		strings.Contains(in.Source.Text, "let i = 0") &&
		strings.Contains(in.Target, "const item of")
}

// markForHeader spans from the "for" token through the first token
// containing "{", or through the last token when there is none.
func markForHeader(in RuleInput) (Range, bool) {
	tokens := in.SourceTokens
	start := findToken(tokens, 0, "for")
	if start < 0 {
		return Range{}, false
	}
	end := len(tokens) - 1
	for i := start; i < len(tokens); i++ {
		if strings.Contains(tokens[i].Text, "{") {
			end = i
			break
		}
	}
	return spanRange(in, start, end), true
}

const indexedAccess = "items[i]"

func indexReplaced(in RuleInput) bool {
	return strings.Contains(in.Source.Text, indexedAccess) && strings.Contains(in.Target, "item")
}

// markIndexedAccess spans from the "items" token that starts "items[i]"
// through the last "]" of the line. Without a "]" the span is as long as
// "items[i]".
func markIndexedAccess(in RuleInput) (Range, bool) {
	tokens := in.SourceTokens
	start := -1
	for i := findToken(tokens, 0, "items"); i >= 0; i = findToken(tokens, i+1, "items") {
		if i+1 < len(tokens) && tokens[i+1].Text == "[" {
			start = i
			break
		}
	}
	if start < 0 {
		return Range{}, false
	}

	for i := len(tokens) - 1; i > start; i-- {
		if tokens[i].Text == "]" {
			return spanRange(in, start, i), true
		}
	}
	r := tokens[start].Range(in.Source.Range.Start)
	r.End = min(r.Start+UTF16Len(indexedAccess), in.Source.Range.End)
	return r, true
}

// findToken returns the index of the first token at or after from whose
// text is text, or -1.
func findToken(tokens []Token, from int, text string) int {
	for i := from; i < len(tokens); i++ {
		if tokens[i].Text == text {
			return i
		}
	}
	return -1
}

// spanRange covers tokens[first] through tokens[last].
func spanRange(in RuleInput, first, last int) Range {
	base := in.Source.Range.Start
	return Range{
		Start: in.SourceTokens[first].Range(base).Start,
		End:   in.SourceTokens[last].Range(base).End,
	}
}
