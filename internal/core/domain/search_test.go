package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchQuery_IsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		query MatchQuery
		want  bool
	}{
		{name: "zero value", query: MatchQuery{}, want: true},
		{name: "and only", query: MatchQuery{And: `"كتاب"*`}, want: false},
		{name: "or only", query: MatchQuery{Or: `"كتاب"*`}, want: false},
		{name: "substring only", query: MatchQuery{Substring: "%كتاب%"}, want: false},
		{name: "similarity only", query: MatchQuery{Similarity: "كتاب"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.IsEmpty())
		})
	}
}

func TestMatchQuery_Loosened(t *testing.T) {
	q := MatchQuery{
		And:        `"تاريخ"* AND "العرب"*`,
		Or:         `"تاريخ"* OR "العرب"*`,
		Substring:  "%تاريخ العرب%",
		Similarity: "تاريخ العرب",
	}

	loose := q.Loosened()

	assert.Equal(t, q.Or, loose.And)
	assert.Equal(t, q.Or, loose.Or)
	assert.Equal(t, q.Substring, loose.Substring)
	assert.Equal(t, q.Similarity, loose.Similarity)
	// The receiver is a value; the original keeps its AND expression.
	assert.Equal(t, `"تاريخ"* AND "العرب"*`, q.And)
	assert.False(t, loose.IsEmpty())
}
