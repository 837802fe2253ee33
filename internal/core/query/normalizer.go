package query

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const tatweel = 'ـ'

// Letter folds shared by every normalizer.
var baseFolds = []string{
	"أ", "ا",
	"إ", "ا",
	"آ", "ا",
	"ى", "ي",
}

// SearchNormalizer folds taa marbuta to heh. Used for free-text queries,
// suggestions and the stored search name of catalog entries.
var SearchNormalizer = NewNormalizer("search", "ة", "ه")

// IndexNormalizer folds taa marbuta to waw. Used for topical index keywords.
var IndexNormalizer = NewNormalizer("index", "ة", "و")

// Normalizer canonicalizes text before matching.
// A Normalizer is immutable and safe for concurrent use.
type Normalizer struct {
	name string
	fold *strings.Replacer
}

// NewNormalizer creates a normalizer with the base fold table plus extra
// old/new pairs.
func NewNormalizer(name string, extraFolds ...string) *Normalizer {
	pairs := make([]string, 0, len(baseFolds)+len(extraFolds))
	pairs = append(pairs, baseFolds...)
	pairs = append(pairs, extraFolds...)
	return &Normalizer{
		name: name,
		fold: strings.NewReplacer(pairs...),
	}
}

// Name identifies the normalizer in logs.
func (n *Normalizer) Name() string {
	return n.name
}

// Normalize lowercases, folds letter variants, strips diacritics, turns
// punctuation into spaces and collapses whitespace.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	s := strings.ToLower(text)
	s = strings.ReplaceAll(s, "_", " ")
	s = n.fold.Replace(s)
	s = stripMarks(s)
	s = strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, s)

	return strings.Join(strings.Fields(s), " ")
}

// stripMarks removes nonspacing marks (harakat, accents) and tatweel.
// The transformer chain is stateful, so one is built per call.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.Predicate(isStrippable)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func isStrippable(r rune) bool {
	return r == tatweel || unicode.Is(unicode.Mn, r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
