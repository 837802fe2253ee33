package query

import (
	"strings"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
)

// FTS5 boolean connectors.
const (
	opAnd = " AND "
	opOr  = " OR "
)

// LikeEscapeChar is the escape character Substring patterns are written
// for. Stores must declare it in their LIKE ... ESCAPE clause.
const LikeEscapeChar = `\`

var likeEscaper = strings.NewReplacer(
	LikeEscapeChar, LikeEscapeChar+LikeEscapeChar,
	"%", LikeEscapeChar+"%",
	"_", LikeEscapeChar+"_",
)

// Build assembles the match expressions for a free-text query.
// normalized is the full normalized query; keywords come from an Extractor.
func Build(normalized string, keywords []string) domain.MatchQuery {
	q := domain.MatchQuery{
		And:        JoinTerms(keywords, opAnd),
		Or:         JoinTerms(keywords, opOr),
		Similarity: normalized,
	}
	if normalized != "" {
		q.Substring = "%" + likeEscaper.Replace(normalized) + "%"
	}
	return q
}

// BuildTopic assembles the expression for browsing a topical index.
// Topic keywords are alternatives, so both passes use OR and there is no
// substring or similarity clause.
func BuildTopic(keywords []string) domain.MatchQuery {
	or := JoinTerms(keywords, opOr)
	return domain.MatchQuery{And: or, Or: or}
}

// BuildOr joins keywords into a single OR expression.
func BuildOr(keywords []string) string {
	return JoinTerms(keywords, opOr)
}

// JoinTerms quotes each keyword as a prefix term and joins them with op.
func JoinTerms(keywords []string, op string) string {
	terms := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		terms = append(terms, PrefixTerm(kw))
	}
	return strings.Join(terms, op)
}

// PrefixTerm quotes a keyword for FTS5 and marks it as a prefix match.
func PrefixTerm(keyword string) string {
	return `"` + strings.ReplaceAll(keyword, `"`, `""`) + `"*`
}
