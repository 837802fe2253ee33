package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
	"github.com/maktaba-labs/maktaba-cli/internal/core/ports/driving"
)

// uriScheme is the custom URI scheme for Maktaba resources.
const uriScheme = "maktaba://"

// registerResources registers the index catalog resources. They need the
// Index port and are skipped without it.
func (s *Server) registerResources() {
	if s.ports.Index == nil {
		return
	}

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "indexes",
		Name:        "indexes",
		Description: "Languages that have a topical index catalog",
		MIMEType:    "application/json",
	}, s.handleLanguagesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "indexes/{language}",
		Name:        "index-catalog",
		Description: "Every topical index of one language with its keywords",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)
}

func (s *Server) handleLanguagesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type languageInfo struct {
		Code string `json:"code"`
		Name string `json:"name"`
		URI  string `json:"uri"`
	}

	langs := s.ports.Index.Languages()
	infos := make([]languageInfo, len(langs))
	for i, lang := range langs {
		infos[i] = languageInfo{
			Code: lang.String(),
			Name: lang.Description(),
			URI:  uriScheme + "indexes/" + lang.String(),
		}
	}
	return jsonResource(req.Params.URI, infos)
}

func (s *Server) handleCatalogResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	lang := extractLanguage(req.Params.URI)
	if !lang.IsValid() {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	defs, err := allIndexes(s.ports.Index, lang)
	if err != nil {
		return nil, fmt.Errorf("listing indexes: %w", err)
	}
	return jsonResource(req.Params.URI, defs)
}

// allIndexes walks every page of a language catalog.
func allIndexes(index driving.IndexService, lang domain.Language) ([]domain.IndexDefinition, error) {
	defs := []domain.IndexDefinition{}
	for page := 0; ; page++ {
		p, err := index.List(lang, page)
		if err != nil {
			return nil, err
		}
		defs = append(defs, p.Items...)
		if !p.HasNext {
			return defs, nil
		}
	}
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractLanguage extracts the language from a URI like maktaba://indexes/{language}.
func extractLanguage(uri string) domain.Language {
	const prefix = uriScheme + "indexes/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	return domain.Language(strings.TrimPrefix(uri, prefix))
}
