package domain

// SearchResult represents a single nearest-neighbour match.
// Results are produced fresh per query and never stored.
type SearchResult struct {
	// Rank is the 1-based position in the returned ranking.
	Rank int `json:"rank"`

	// DocumentID is the matched document's ID.
	DocumentID int `json:"document_id"`

	// Distance is the squared L2 distance to the query. Smaller is closer.
	Distance float64 `json:"distance"`
}

// Hit is a SearchResult joined with the document it refers to.
type Hit struct {
	SearchResult

	// Document is the matched document.
	Document Document `json:"document"`
}
