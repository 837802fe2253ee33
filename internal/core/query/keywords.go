package query

import "strings"

// shortQueryTokens is the largest token count returned unfiltered by the
// search extractor. Filtering a one or two word query could empty it.
const shortQueryTokens = 2

// Domain fillers people type around a title.
var fillerWords = []string{
	"book", "books", "novel", "novels", "download", "free", "copy", "pdf",
	"i", "want", "please",
	"كتاب", "كتب", "رواية", "روايات", "تحميل", "تنزيل", "مجاني", "مجانا",
	"نسخة", "نسخه", "اريد", "أريد", "ابي", "ابغى", "بدي", "ممكن",
}

// Function words dropped before stemming on the suggestion path.
var linguisticWords = []string{
	"the", "a", "an", "of", "and", "or", "in", "on", "at", "to", "for",
	"with", "by", "from", "about", "this", "that", "these", "those",
	"is", "are", "was", "be", "my", "me",
	"في", "من", "على", "الى", "إلى", "عن", "مع", "حتى", "بين", "عند",
	"و", "او", "أو", "ثم", "لكن", "بل", "ام", "أم",
	"هذا", "هذه", "ذلك", "تلك", "هؤلاء", "اولئك", "هنا", "هناك",
	"الذي", "التي", "الذين", "ما", "ماذا", "لا", "لم", "لن", "هل",
	"كل", "بعض", "قد", "كان", "ان", "أن", "إن", "عندي", "لي",
}

// KeywordExtractor serves the free-text search path: filler words are
// dropped unless the query is short.
var KeywordExtractor = &Extractor{
	stopWords:   newStopSet(SearchNormalizer, fillerWords),
	bypassBelow: shortQueryTokens,
}

// SuggestionExtractor serves the suggestion path: function words and
// fillers are dropped, then every token is lightly stemmed.
var SuggestionExtractor = &Extractor{
	stopWords: newStopSet(SearchNormalizer, fillerWords, linguisticWords),
	stem:      Stem,
}

// Extractor splits normalized text into ordered keywords.
type Extractor struct {
	stopWords map[string]struct{}

	// bypassBelow is the token count at or under which nothing is removed.
	// Zero disables the bypass.
	bypassBelow int

	// stem is applied to kept tokens when set.
	stem func(string) string
}

// Extract returns the keywords of normalized text in input order.
// The result may be empty.
func (x *Extractor) Extract(normalized string) []string {
	tokens := strings.Fields(normalized)
	if x.bypassBelow > 0 && len(tokens) <= x.bypassBelow {
		return tokens
	}

	keywords := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if x.IsStopWord(tok) {
			continue
		}
		if x.stem != nil {
			tok = x.stem(tok)
		}
		if tok == "" {
			continue
		}
		keywords = append(keywords, tok)
	}
	return keywords
}

// IsStopWord reports whether tok is removed by this extractor.
func (x *Extractor) IsStopWord(tok string) bool {
	_, ok := x.stopWords[tok]
	return ok
}

// newStopSet normalizes word lists so they compare equal to normalized
// query tokens. Multi-word entries contribute each word.
func newStopSet(n *Normalizer, lists ...[]string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, list := range lists {
		for _, w := range list {
			for _, tok := range strings.Fields(n.Normalize(w)) {
				set[tok] = struct{}{}
			}
		}
	}
	return set
}
