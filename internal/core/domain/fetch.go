package domain

import "time"

// FetchStatus is the result kind of one fetch attempt.
type FetchStatus string

// Available fetch statuses.
const (
	// FetchOK means the article was fetched and committed.
	FetchOK FetchStatus = "ok"

	// FetchSkipped means the attempt failed and the article was left out.
	FetchSkipped FetchStatus = "skipped"
)

// FetchOutcome records what happened to one fetch attempt during ingestion.
// Skipped outcomes are kept so failures can be counted and reported.
type FetchOutcome struct {
	// Topic is the corpus topic that produced the attempt.
	Topic string

	// Title is the page title that was requested. Empty when the topic's
	// search itself failed.
	Title string

	// Status is FetchOK or FetchSkipped.
	Status FetchStatus

	// Reason is a short human-readable cause for a skip.
	Reason string

	// Article is the fetched article when Status is FetchOK.
	Article *Article

	// Err is the underlying error for a skip.
	Err error
}

// OK reports whether the attempt produced an article.
func (o FetchOutcome) OK() bool {
	return o.Status == FetchOK && o.Article != nil
}

// BuildReport summarises one corpus build.
type BuildReport struct {
	// RunID identifies the build.
	RunID string

	// Documents is the number of documents committed to the store.
	Documents int

	// Skipped is the number of fetch attempts that were skipped.
	Skipped int

	// Dimension is the embedding dimension of the built index.
	Dimension int

	// Outcomes holds every fetch attempt in commit order.
	Outcomes []FetchOutcome

	// Duration is the wall time of the build.
	Duration time.Duration
}
