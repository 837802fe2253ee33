package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func testIndexes() *mockIndexService {
	return &mockIndexService{defs: map[domain.Language][]domain.IndexDefinition{
		domain.LanguageEnglish: {
			{Key: "novels", DisplayName: "Novels", Keywords: []string{"novel"}},
			{Key: "poetry", DisplayName: "Poetry", Keywords: []string{"poem"}},
			{Key: "history", DisplayName: "History", Keywords: []string{"history"}},
		},
	}}
}

func TestExtractLanguage(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected domain.Language
	}{
		{name: "english catalog", uri: "maktaba://indexes/en", expected: domain.LanguageEnglish},
		{name: "arabic catalog", uri: "maktaba://indexes/ar", expected: domain.LanguageArabic},
		{name: "invalid prefix", uri: "file://indexes/en", expected: ""},
		{name: "empty URI", uri: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractLanguage(tt.uri))
		})
	}
}

func TestServer_handleLanguagesResource(t *testing.T) {
	server, err := NewServer(&Ports{Chat: &mockChatService{}, Index: testIndexes()})
	require.NoError(t, err)

	result, err := server.handleLanguagesResource(context.Background(), readRequest("maktaba://indexes"))
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var langs []map[string]string
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &langs))
	require.Len(t, langs, 2)
	assert.Equal(t, "ar", langs[0]["code"])
	assert.Equal(t, "maktaba://indexes/en", langs[1]["uri"])
}

func TestServer_handleCatalogResource(t *testing.T) {
	ctx := context.Background()

	t.Run("walks every page", func(t *testing.T) {
		server, err := NewServer(&Ports{Chat: &mockChatService{}, Index: testIndexes()})
		require.NoError(t, err)

		result, err := server.handleCatalogResource(ctx, readRequest("maktaba://indexes/en"))
		require.NoError(t, err)

		var defs []domain.IndexDefinition
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &defs))
		require.Len(t, defs, 3)
		assert.Equal(t, "history", defs[2].Key)
		assert.Equal(t, []string{"poem"}, defs[1].Keywords)
	})

	t.Run("empty catalog", func(t *testing.T) {
		server, err := NewServer(&Ports{Chat: &mockChatService{}, Index: testIndexes()})
		require.NoError(t, err)

		result, err := server.handleCatalogResource(ctx, readRequest("maktaba://indexes/ar"))
		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("unknown language is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Chat: &mockChatService{}, Index: testIndexes()})
		require.NoError(t, err)

		_, err = server.handleCatalogResource(ctx, readRequest("maktaba://indexes/fr"))
		assert.Error(t, err)
	})

	t.Run("list error", func(t *testing.T) {
		idx := testIndexes()
		idx.err = errors.New("broken")
		server, err := NewServer(&Ports{Chat: &mockChatService{}, Index: idx})
		require.NoError(t, err)

		_, err = server.handleCatalogResource(ctx, readRequest("maktaba://indexes/en"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing indexes")
	})
}
