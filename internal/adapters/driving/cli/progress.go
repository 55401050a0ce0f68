package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/custodia-labs/semdex/internal/core/domain"
)

// progressPrinter writes one line per fetch outcome, grouped the way the
// corpus lists its topics: a [topic] header per search followed by the
// specific pages.
type progressPrinter struct {
	mu       sync.Mutex
	w        io.Writer
	searches map[string]bool
	topic    string
	pages    bool

	added   *color.Color
	skipped *color.Color
	header  *color.Color
}

func newProgressPrinter(w io.Writer, corpus domain.Corpus, colored bool) *progressPrinter {
	p := &progressPrinter{
		w:        w,
		searches: make(map[string]bool, len(corpus.Searches)),
		added:    color.New(color.FgGreen),
		skipped:  color.New(color.FgYellow),
		header:   color.New(color.Bold),
	}
	for _, s := range corpus.Searches {
		p.searches[s.Query] = true
	}
	for _, c := range []*color.Color{p.added, p.skipped, p.header} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Observe prints o. It is safe to pass as a progress callback.
func (p *progressPrinter) Observe(o domain.FetchOutcome) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.searches[o.Topic] {
		if o.Topic != p.topic {
			p.topic = o.Topic
			p.header.Fprintf(p.w, "\n[%s]\n", o.Topic)
		}
	} else if !p.pages {
		p.pages = true
		p.header.Fprintln(p.w, "\n\nFetching specific articles:")
	}

	switch {
	case o.OK():
		p.added.Fprintf(p.w, "  + %s\n", o.Article.Title)
	case o.Title == "":
		p.skipped.Fprintf(p.w, "  Could not search: %s\n", o.Topic)
	default:
		p.skipped.Fprintf(p.w, "  - %s (%s)\n", o.Title, o.Reason)
	}
}

// printHits writes hits in the query report format.
func printHits(w io.Writer, hits []domain.Hit, previewLength int) {
	for _, h := range hits {
		fmt.Fprintf(w, "   [%d] %s (dist: %.3f)\n", h.Rank, h.Document.Title, h.Distance)
		fmt.Fprintf(w, "       %s...\n", domain.Preview(h.Document.Content, previewLength))
	}
}
