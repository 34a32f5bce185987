package gtts

import (
	"strings"
	"unicode"
)

// splitText cuts text into pieces of at most limit runes, preferring to cut
// right after whitespace or punctuation.
func splitText(text string, limit int) []string {
	var chunks []string

	runes := []rune(strings.TrimSpace(text))
	for len(runes) > 0 {
		if len(runes) <= limit {
			chunks = append(chunks, string(runes))
			break
		}

		cut := limit
		for i := limit; i > limit/2; i-- {
			if isBoundary(runes[i-1]) {
				cut = i
				break
			}
		}

		if chunk := strings.TrimSpace(string(runes[:cut])); chunk != "" {
			chunks = append(chunks, chunk)
		}

		runes = []rune(strings.TrimSpace(string(runes[cut:])))
	}

	return chunks
}

func isBoundary(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r)
}
