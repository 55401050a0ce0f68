package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/semdex/internal/core/domain"
)

// QueryInput is the input schema for the query tool.
type QueryInput struct {
	Query string `json:"query" jsonschema:"the natural language question to match against the corpus"`
	K     int    `json:"k,omitempty" jsonschema:"number of nearest documents to return (default 2)"`
}

// QueryOutput is the output schema for the query tool.
type QueryOutput struct {
	Results []QueryResultOutput `json:"results"`
	Count   int                 `json:"count"`
}

// QueryResultOutput represents a single nearest-neighbour match.
type QueryResultOutput struct {
	Rank       int     `json:"rank"`
	DocumentID int     `json:"document_id"`
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	URI        string  `json:"uri"`
	Category   string  `json:"category"`
	Distance   float64 `json:"distance"`
	Content    string  `json:"content,omitempty"`
}

// contentLength caps the content carried in each tool result. The full
// text is available through the document resource.
const contentLength = domain.DefaultContentLength

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query",
		Description: "Find the corpus documents nearest to a question (smaller distance is closer)",
	}, s.handleQuery)
}

// handleQuery handles the query tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	k := input.K
	if k == 0 {
		k = s.ports.DefaultK
	}
	if k == 0 {
		k = domain.DefaultK
	}

	hits, err := s.ports.Query.Query(ctx, input.Query, k)
	if err != nil {
		return nil, QueryOutput{}, err
	}

	output := QueryOutput{
		Results: make([]QueryResultOutput, len(hits)),
		Count:   len(hits),
	}
	for i, h := range hits {
		output.Results[i] = QueryResultOutput{
			Rank:       h.Rank,
			DocumentID: h.DocumentID,
			Title:      h.Document.Title,
			URL:        h.Document.URL,
			URI:        documentURI(h.DocumentID),
			Category:   h.Document.Category,
			Distance:   h.Distance,
			Content:    domain.Preview(h.Document.Content, contentLength),
		}
	}

	return nil, output, nil
}
