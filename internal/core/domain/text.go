package domain

import (
	"sort"
	"strings"
	"unicode"
)

// minSignificantLen is the minimum length for a word to count as significant
// in explanations and cluster keyword summaries.
const minSignificantLen = 4

// NormalizeText collapses runs of whitespace to single spaces and trims the
// result. This is the canonical normalization applied before a text is
// embedded or hashed into a cache key.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Tokenize splits text into lowercase words on non-alphanumeric boundaries
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// SignificantWords returns the distinct significant words (length > 3)
// across the given texts, in first-seen order.
func SignificantWords(texts ...string) []string {
	seen := make(map[string]struct{})
	var words []string

	for _, text := range texts {
		for _, w := range Tokenize(text) {
			if len(w) < minSignificantLen {
				continue
			}
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			words = append(words, w)
		}
	}

	return words
}

// TopKeywords returns the n most frequent significant words across the given
// texts. Ties are broken alphabetically so the result is deterministic.
func TopKeywords(n int, texts ...string) []string {
	counts := make(map[string]int)
	for _, text := range texts {
		for _, w := range Tokenize(text) {
			if len(w) >= minSignificantLen {
				counts[w]++
			}
		}
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}

	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > n {
		words = words[:n]
	}
	return words
}
