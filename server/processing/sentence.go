package processing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// isTerminator reports whether r is sentence-ending punctuation.
func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// endsWithTerminator reports whether the last rune of s is sentence-ending
// punctuation.
func endsWithTerminator(s string) bool {
	r, size := utf8.DecodeLastRuneInString(s)
	if size == 0 {
		return false
	}
	return isTerminator(r)
}

// SplitSentences splits raw text into candidate sentences. A boundary occurs
// after any '.', '!' or '?' that is immediately followed by one or more
// whitespace characters; the whitespace run is consumed as the separator and
// the punctuation stays attached to the preceding sentence.
//
// The scan is a single pass over the runes, avoiding any dependency on a
// regex dialect with lookbehind support. Text after the final boundary is
// returned as a trailing candidate even when it lacks terminal punctuation;
// callers decide whether to keep it.
func SplitSentences(raw string) []string {
	var sentences []string
	var cur strings.Builder

	prevTerminator := false
	inSeparator := false

	for _, r := range raw {
		if inSeparator {
			if unicode.IsSpace(r) {
				continue
			}
			inSeparator = false
		}

		if prevTerminator && unicode.IsSpace(r) {
			sentences = append(sentences, cur.String())
			cur.Reset()
			prevTerminator = false
			inSeparator = true
			continue
		}

		cur.WriteRune(r)
		prevTerminator = isTerminator(r)
	}

	if cur.Len() > 0 {
		sentences = append(sentences, cur.String())
	}

	return sentences
}

// TrimToSentences converts the ordered fragments of a generation stream into
// a string containing only well-formed sentences. The fragments are joined
// with no separator, split into candidate sentences, and any candidate whose
// last character is not sentence-ending punctuation is discarded. This
// removes the trailing partial sentence produced when the generator stops
// mid-sentence at its length limit.
//
// The surviving sentences are rejoined with single spaces in original order.
// If no candidate ends in terminal punctuation, including the empty-input
// case, the result is the empty string. The function is total: it cannot
// fail for any input.
func TrimToSentences(fragments []string) string {
	raw := strings.Join(fragments, "")

	var kept []string
	for _, s := range SplitSentences(raw) {
		if endsWithTerminator(s) {
			kept = append(kept, s)
		}
	}

	return strings.Join(kept, " ")
}
