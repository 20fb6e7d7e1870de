package proofdiff

import (
	"fmt"
	"strings"
	"unicode"
)

// ContentMode selects the tokenizer and similarity metric of a comparison.
type ContentMode int

const (
	// ModeAuto detects the mode from the source text.
	ModeAuto ContentMode = iota
	// ModeCode treats both texts as source code.
	ModeCode
	// ModeProse treats both texts as natural language.
	ModeProse
)

// String returns the mode name as accepted by ParseContentMode.
func (m ContentMode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeCode:
		return "code"
	case ModeProse:
		return "prose"
	default:
		return "unknown"
	}
}

// ParseContentMode parses "auto", "code" or "prose".
func ParseContentMode(s string) (ContentMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "code":
		return ModeCode, nil
	case "prose", "text":
		return ModeProse, nil
	default:
		return ModeAuto, fmt.Errorf("invalid mode %q (use auto, code, or prose)", s)
	}
}

// codeSignals are fragments that rarely show up in prose. Each one found
// in the text counts once, no matter how often it repeats.
var codeSignals = []string{
	"{", "}", ";", "=>", "==", "!=", "&&", "||", "+=", "-=", "++", "();",
	"[i]", "::", "->", "#include",
	"func ", "function ", "def ", "class ", "import ", "return ", "const ",
	"let ", "var ", "public ", "private ", "static ",
	"for (", "if (", "while (", "switch (",
}

const (
	// minCodeSignals distinct signals make a text code on their own.
	minCodeSignals = 3
	// minOperatorDensity of operator characters among non-space characters
	// makes a text code when at least one signal is present.
	minOperatorDensity = 0.15
)

// DetectCodeContent reports whether text looks like source code rather than
// prose. It is a heuristic biased towards prose: ambiguous text is prose.
func DetectCodeContent(text string) bool {
	signals := 0
	for _, s := range codeSignals {
		if strings.Contains(text, s) {
			signals++
		}
	}
	if signals >= minCodeSignals {
		return true
	}
	if signals == 0 {
		return false
	}

	var ops, visible int
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		visible++
		if isOperatorRune(r) {
			ops++
		}
	}
	if visible == 0 {
		return false
	}
	return float64(ops)/float64(visible) >= minOperatorDensity
}

// DetectMode resolves ModeAuto against source. Other modes are returned
// unchanged.
func DetectMode(source string, mode ContentMode) ContentMode {
	if mode != ModeAuto {
		return mode
	}
	if DetectCodeContent(source) {
		return ModeCode
	}
	return ModeProse
}
