package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/semdex/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for semdex resources.
	uriScheme = "semdex://"

	documentsURI = uriScheme + "documents"

	documentURIPrefix = documentsURI + "/"
)

func documentURI(id int) string {
	return documentURIPrefix + strconv.Itoa(id)
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         documentsURI,
		Name:        "documents",
		Description: "Every document in the built corpus",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: documentURIPrefix + "{documentId}",
		Name:        "document-content",
		Description: "Full content of a corpus document",
		MIMEType:    "text/plain",
	}, s.handleDocumentContentResource)
}

// handleDocumentsResource lists the built documents without their content.
func (s *Server) handleDocumentsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type docInfo struct {
		ID       int    `json:"id"`
		Title    string `json:"title"`
		URL      string `json:"url"`
		URI      string `json:"uri"`
		Category string `json:"category"`
	}

	var docs []domain.Document
	if s.ports.Corpus != nil {
		docs = s.ports.Corpus.Documents()
	}

	infos := make([]docInfo, len(docs))
	for i, d := range docs {
		infos[i] = docInfo{
			ID:       d.ID,
			Title:    d.Title,
			URL:      d.URL,
			URI:      documentURI(d.ID),
			Category: d.Category,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentContentResource returns the content of a specific document.
func (s *Server) handleDocumentContentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Corpus == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id, ok := extractDocumentID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Corpus.Document(id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     doc.Title + "\n" + doc.URL + "\n\n" + doc.Content,
		}},
	}, nil
}

// extractDocumentID parses the ID from a URI like semdex://documents/{id}.
func extractDocumentID(uri string) (int, bool) {
	rest, ok := strings.CutPrefix(uri, documentURIPrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(rest)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
