package domain

import "strings"

// maxExtractedKeywords caps auto-extracted keywords per recognition.
const maxExtractedKeywords = 5

// stopWords are never extracted as keywords.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {},
}

// ExtractKeywords derives keywords from free text: lowercase, split on
// whitespace, drop tokens of length <= 3 and stop words, keep the first
// five survivors in original order. Deliberately naive; callers that care
// about keyword quality supply their own.
func ExtractKeywords(message string) []string {
	words := strings.Fields(strings.ToLower(message))

	keywords := make([]string, 0, maxExtractedKeywords)
	for _, word := range words {
		if len(word) <= 3 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		keywords = append(keywords, word)
		if len(keywords) == maxExtractedKeywords {
			break
		}
	}
	return keywords
}
