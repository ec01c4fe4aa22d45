package directory

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// fold lower-cases s after NFC normalisation so composed and decomposed
// umlauts compare equal.
func fold(s string) string {
	return cases.Lower(language.Und).String(norm.NFC.String(s))
}

// coreToken is the first whitespace-delimited word of a company name,
// lower-cased. It is the coarse key for the contact email scan.
func coreToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fold(fields[0])
}

// nameTokens splits a name into folded words with surrounding punctuation
// removed ("Acme," -> "acme").
func nameTokens(name string) []string {
	var tokens []string
	for _, f := range strings.Fields(fold(name)) {
		t := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func tokenSet(name string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range nameTokens(name) {
		set[t] = struct{}{}
	}
	return set
}

// overlap is the size of the intersection of two token sets.
func overlap(a, b map[string]struct{}) int {
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}
