package proofdiff

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
)

// TokenClass classifies a token.
type TokenClass int

const (
	Word TokenClass = iota
	Operator
	Whitespace
	Punctuation
	Emoji
	String
	Other
)

// String returns a human-readable representation of the class.
func (c TokenClass) String() string {
	switch c {
	case Word:
		return "Word"
	case Operator:
		return "Operator"
	case Whitespace:
		return "Whitespace"
	case Punctuation:
		return "Punctuation"
	case Emoji:
		return "Emoji"
	case String:
		return "String"
	case Other:
		return "Other"
	default:
		return "Unknown"
	}
}

// Token is a classified piece of text.
type Token struct {
	Text       string     // literal text
	Normalized string     // comparison key, see Normalize
	Class      TokenClass // token class
	Offset     int        // UTF-16 offset of Text in the tokenized string
	Length     int        // UTF-16 length of Text
}

// Range returns the token's span shifted by base.
func (t Token) Range(base int) Range {
	return Range{Start: base + t.Offset, End: base + t.Offset + t.Length}
}

// Normalize returns the comparison key of text for the given class: words
// are lowercased, whitespace collapses to a single space and everything
// else is kept literally.
func Normalize(text string, class TokenClass) string {
	switch class {
	case Word:
		return strings.ToLower(text)
	case Whitespace:
		return " "
	default:
		return text
	}
}

func newToken(text string, class TokenClass, offset int) Token {
	return Token{
		Text:       text,
		Normalized: Normalize(text, class),
		Class:      class,
		Offset:     offset,
		Length:     UTF16Len(text),
	}
}

// Tokenizer splits a string into tokens. Implementations are total: every
// input, including the empty string, produces a (possibly empty) slice,
// and the tokens concatenate back to the input.
type Tokenizer interface {
	Tokenize(text string) []Token
}

// TokenizerFor returns the tokenizer used in mode. ModeAuto is treated as
// prose; resolve it with DetectMode first.
func TokenizerFor(mode ContentMode) Tokenizer {
	if mode == ModeCode {
		return CodeTokenizer{}
	}
	return ProseTokenizer{}
}

// OperatorChars is the fixed set of single-character operators recognized
// by CodeTokenizer.
const OperatorChars = "=><&|+-*/%!~^.,:;(){}[]"

func isOperatorRune(r rune) bool {
	return r < utf8.RuneSelf && strings.IndexByte(OperatorChars, byte(r)) >= 0
}

// CodeTokenizer tokenizes source code. It walks user-perceived characters:
// whitespace and operator characters each become a one-character token,
// and runs of anything else become Word tokens. Multi-character operators
// such as "==" or "&&" come out as consecutive single-character tokens.
type CodeTokenizer struct{}

// Tokenize implements Tokenizer.
func (CodeTokenizer) Tokenize(text string) []Token {
	var tokens []Token
	var word strings.Builder
	wordStart := -1
	pos := 0

	flushWord := func() {
		if word.Len() > 0 {
			tokens = append(tokens, newToken(word.String(), Word, wordStart))
			word.Reset()
			wordStart = -1
		}
	}

	iter := graphemes.FromString(text)
	for iter.Next() {
		ch := iter.Value()
		first, size := utf8.DecodeRuneInString(ch)
		single := size == len(ch)

		switch {
		case unicode.IsSpace(first):
			flushWord()
			tokens = append(tokens, newToken(ch, Whitespace, pos))
		case single && isOperatorRune(first):
			flushWord()
			tokens = append(tokens, newToken(ch, Operator, pos))
		default:
			if wordStart == -1 {
				wordStart = pos
			}
			word.WriteString(ch)
		}
		pos += UTF16Len(ch)
	}

	flushWord()
	return tokens
}

// ProseTokenizer tokenizes natural language. It walks Unicode scalars:
// emoji, whitespace and punctuation scalars are tokens of their own, and
// runs of everything else become Word tokens.
type ProseTokenizer struct{}

// Tokenize implements Tokenizer.
func (ProseTokenizer) Tokenize(text string) []Token {
	var tokens []Token
	var word strings.Builder
	wordStart := -1
	pos := 0

	flushWord := func() {
		if word.Len() > 0 {
			tokens = append(tokens, newToken(word.String(), Word, wordStart))
			word.Reset()
			wordStart = -1
		}
	}

	for _, r := range text {
		class, boundary := proseClass(r)
		if boundary {
			flushWord()
			tokens = append(tokens, newToken(string(r), class, pos))
		} else {
			if wordStart == -1 {
				wordStart = pos
			}
			word.WriteRune(r)
		}
		pos += runeUTF16Len(r)
	}

	flushWord()
	return tokens
}

// proseClass classifies a scalar. boundary is false for scalars that
// belong to a word.
func proseClass(r rune) (class TokenClass, boundary bool) {
	switch {
	case isEmoji(r):
		return Emoji, true
	case unicode.IsSpace(r):
		return Whitespace, true
	case unicode.IsPunct(r):
		return Punctuation, true
	default:
		return Word, false
	}
}

// Skin tone modifiers are modifier symbols (Sk), not other symbols, so they
// are listed explicitly.
const (
	skinToneFirst = 0x1F3FB
	skinToneLast  = 0x1F3FF
)

func isEmoji(r rune) bool {
	return unicode.Is(unicode.So, r) || (r >= skinToneFirst && r <= skinToneLast)
}

// withoutWhitespace returns the tokens that are not whitespace.
func withoutWhitespace(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Class != Whitespace {
			out = append(out, t)
		}
	}
	return out
}
