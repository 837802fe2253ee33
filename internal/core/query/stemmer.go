package query

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kljensen/snowball/english"
)

// definiteArticle is stripped from the front of longer Arabic tokens.
const definiteArticle = "ال"

// Arabic suffixes in priority order, written in normalized spelling
// (taa marbuta already folded to heh). Only the first match is removed.
var arabicSuffixes = []string{
	"هما", "ها", "هم", "ات", "ان", "ون", "ين", "يه", "ه", "ي",
}

// Stem applies light stemming to one normalized token.
//
// Arabic tokens lose one suffix when the token is longer than the suffix
// plus two runes, then the definite article when still longer than three
// runes. Latin tokens go through the Snowball English stemmer. Anything
// else is returned unchanged.
func Stem(token string) string {
	if token == "" {
		return ""
	}
	if isLatinWord(token) {
		return english.Stem(token, false)
	}

	n := utf8.RuneCountInString(token)
	for _, suf := range arabicSuffixes {
		if strings.HasSuffix(token, suf) && n > utf8.RuneCountInString(suf)+2 {
			token = strings.TrimSuffix(token, suf)
			n = utf8.RuneCountInString(token)
			break
		}
	}

	if strings.HasPrefix(token, definiteArticle) && n > 3 {
		token = strings.TrimPrefix(token, definiteArticle)
	}
	return token
}

func isLatinWord(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
