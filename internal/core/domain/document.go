package domain

// Document represents an ingested article.
// Documents are append-only: once stored, a document keeps its ID and
// position for the remainder of the process.
type Document struct {
	// ID is the 0-based insertion position in the document store.
	// Vector index position i always corresponds to document i.
	ID int `json:"id"`

	// Title is the human-readable title.
	Title string `json:"title"`

	// Content is the full text that was embedded.
	Content string `json:"content"`

	// URL is the canonical location of the article.
	URL string `json:"url"`

	// Category is the corpus topic the article was fetched for.
	Category string `json:"category"`
}

// Article is the raw tuple a document source returns.
// The ingestion driver assigns the category and the store assigns the ID.
type Article struct {
	// Title is the resolved page title.
	Title string

	// Content is the article summary text.
	Content string

	// URL is the canonical page URL.
	URL string
}

// Preview returns at most n runes of s. It never splits a multi-byte rune.
// A non-positive n returns s unchanged.
func Preview(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
