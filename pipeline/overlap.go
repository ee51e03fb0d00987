package pipeline

import (
	"regexp"
	"strings"
)

// The no-hallucination contract is enforced in prompts, but prompts are a soft
// guarantee. SourceCoverage is the mechanical backstop: it measures how much
// of the generated text's vocabulary actually occurs in the source material.

var wordRe = regexp.MustCompile(`[\p{L}\p{N}']+`)

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "but": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "have": {}, "how": {}, "in": {}, "is": {},
	"it": {}, "its": {}, "of": {}, "on": {}, "or": {}, "that": {}, "the": {}, "their": {},
	"this": {}, "to": {}, "was": {}, "we": {}, "were": {}, "what": {}, "when": {},
	"where": {}, "which": {}, "who": {}, "will": {}, "with": {}, "you": {}, "your": {},
	"i": {}, "my": {}, "our": {}, "they": {}, "them": {}, "these": {}, "those": {},
	"not": {}, "no": {}, "so": {}, "if": {}, "into": {}, "up": {}, "out": {}, "about": {},
	"more": {}, "can": {}, "do": {}, "just": {}, "like": {}, "get": {}, "all": {},
}

// significantTerms tokenizes text into lowercase terms, dropping stopwords,
// hashtag markers, and very short tokens.
func significantTerms(text string) []string {
	var terms []string
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		w = strings.Trim(w, "'")
		if len(w) < 4 {
			continue
		}
		if _, ok := stopwords[w]; ok {
			continue
		}
		terms = append(terms, w)
	}
	return terms
}

// SourceCoverage returns the fraction of generated's significant terms that
// appear in source, in [0, 1]. Generated text with no significant terms
// counts as fully covered.
func SourceCoverage(generated, source string) float64 {
	terms := significantTerms(generated)
	if len(terms) == 0 {
		return 1
	}

	vocab := make(map[string]struct{})
	for _, w := range significantTerms(source) {
		vocab[w] = struct{}{}
		// Cheap stemming so "bake"/"baking"/"baked" cross-match.
		vocab[stem(w)] = struct{}{}
	}

	covered := 0
	for _, w := range terms {
		if _, ok := vocab[w]; ok {
			covered++
			continue
		}
		if _, ok := vocab[stem(w)]; ok {
			covered++
		}
	}
	return float64(covered) / float64(len(terms))
}

var suffixes = []string{"ing", "ers", "er", "ed", "es", "s", "ly"}

func stem(w string) string {
	for _, suf := range suffixes {
		if strings.HasSuffix(w, suf) && len(w)-len(suf) >= 4 {
			return w[:len(w)-len(suf)]
		}
	}
	return w
}
