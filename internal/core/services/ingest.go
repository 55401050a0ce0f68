package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/semdex/internal/core/domain"
	"github.com/custodia-labs/semdex/internal/core/ports/driven"
	"github.com/custodia-labs/semdex/internal/logger"
)

// DefaultWorkers is the fetch pool size used when none is configured.
const DefaultWorkers = 4

// fetchJob is one page to fetch, in commit order.
type fetchJob struct {
	topic    string
	title    string
	fallback bool

	// resolved is set when the job failed before any page fetch, such as
	// a failed search. The pool leaves it untouched.
	resolved *domain.FetchOutcome
}

// Ingestor fetches a corpus from a document source into a document store.
// Fetches run on a bounded worker pool; appends to the store run serially
// in corpus order, so document IDs never depend on fetch completion order.
type Ingestor struct {
	source       driven.DocumentSource
	workers      int
	fetchTimeout time.Duration
	progress     func(domain.FetchOutcome)
}

// NewIngestor creates an ingestor. Non-positive workers uses DefaultWorkers.
// A zero fetchTimeout leaves the caller's context deadline in charge.
func NewIngestor(source driven.DocumentSource, workers int, fetchTimeout time.Duration) *Ingestor {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Ingestor{
		source:       source,
		workers:      workers,
		fetchTimeout: fetchTimeout,
	}
}

// SetProgress registers a callback invoked once per outcome, in commit order.
func (i *Ingestor) SetProgress(fn func(domain.FetchOutcome)) {
	i.progress = fn
}

// Ingest fetches every topic in corpus and appends the surviving articles
// to store. A failed fetch is recorded as a skipped outcome and never
// aborts the run. Returns domain.ErrEmptyInput if nothing survived.
func (i *Ingestor) Ingest(
	ctx context.Context, corpus domain.Corpus, store driven.DocumentStore,
) (*domain.BuildReport, error) {
	logger.Section("Corpus Ingestion")

	if err := corpus.Validate(); err != nil {
		return nil, err
	}

	// 1. EXPAND TOPICS INTO JOBS
	jobs := i.expand(ctx, corpus)
	logger.Debug("Expanded %d topics into %d fetch jobs", corpus.TopicCount(), len(jobs))

	// 2. FETCH CONCURRENTLY
	outcomes := i.fetchAll(ctx, jobs)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	// 3. COMMIT SERIALLY IN JOB ORDER
	report := &domain.BuildReport{Outcomes: outcomes}
	for _, o := range outcomes {
		if o.OK() {
			id := store.Append(o.Article.Title, o.Article.Content, o.Article.URL, o.Topic)
			report.Documents++
			logger.Debug("Committed document %d: %s", id, o.Article.Title)
		} else {
			report.Skipped++
			logger.Warn("Skipped %s: %s", describe(o), o.Reason)
		}
		if i.progress != nil {
			i.progress(o)
		}
	}
	logger.Info("Ingested %d documents, skipped %d", report.Documents, report.Skipped)

	if report.Documents == 0 {
		return report, fmt.Errorf("ingest: %w: no documents could be fetched", domain.ErrEmptyInput)
	}
	return report, nil
}

// expand resolves search topics into page titles. Searches run in corpus
// order; pages follow in listed order.
func (i *Ingestor) expand(ctx context.Context, corpus domain.Corpus) []fetchJob {
	var jobs []fetchJob
	for _, s := range corpus.Searches {
		sctx, cancel := i.withTimeout(ctx)
		titles, err := i.source.Search(sctx, s.Query, s.Count)
		cancel()
		if err != nil {
			jobs = append(jobs, fetchJob{
				topic:    s.Query,
				resolved: skipped(s.Query, "", "could not search", err),
			})
			continue
		}
		if len(titles) > s.Count {
			titles = titles[:s.Count]
		}
		logger.Debug("Search %q returned %d titles", s.Query, len(titles))
		for _, t := range titles {
			jobs = append(jobs, fetchJob{topic: s.Query, title: t})
		}
	}
	for _, p := range corpus.Pages {
		jobs = append(jobs, fetchJob{topic: p, title: p, fallback: true})
	}
	return jobs
}

// fetchAll runs the page fetches on the worker pool. outcomes[n] always
// belongs to jobs[n].
func (i *Ingestor) fetchAll(ctx context.Context, jobs []fetchJob) []domain.FetchOutcome {
	outcomes := make([]domain.FetchOutcome, len(jobs))
	work := make(chan int)

	var wg sync.WaitGroup
	workers := i.workers
	if workers > len(jobs) {
		workers = len(jobs)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range work {
				outcomes[n] = i.fetch(ctx, jobs[n])
			}
		}()
	}

	for n := range jobs {
		if jobs[n].resolved != nil {
			outcomes[n] = *jobs[n].resolved
			continue
		}
		work <- n
	}
	close(work)
	wg.Wait()

	return outcomes
}

func (i *Ingestor) fetch(ctx context.Context, job fetchJob) domain.FetchOutcome {
	if err := ctx.Err(); err != nil {
		return *skipped(job.topic, job.title, "cancelled", err)
	}

	article, err := i.page(ctx, job.title)

	var disamb *domain.DisambiguationError
	if err != nil && job.fallback && errors.As(err, &disamb) && len(disamb.Options) > 0 {
		option := disamb.Options[0]
		logger.Debug("%q is a disambiguation page, falling back to %q", job.title, option)
		article, err = i.page(ctx, option)
	}
	if err != nil {
		return *skipped(job.topic, job.title, reason(err), err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return *skipped(job.topic, job.title, "empty summary", nil)
	}

	return domain.FetchOutcome{
		Topic:   job.topic,
		Title:   job.title,
		Status:  domain.FetchOK,
		Article: &article,
	}
}

func (i *Ingestor) page(ctx context.Context, title string) (domain.Article, error) {
	pctx, cancel := i.withTimeout(ctx)
	defer cancel()
	return i.source.Page(pctx, title)
}

func (i *Ingestor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if i.fetchTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, i.fetchTimeout)
}

func skipped(topic, title, why string, err error) *domain.FetchOutcome {
	return &domain.FetchOutcome{
		Topic:  topic,
		Title:  title,
		Status: domain.FetchSkipped,
		Reason: why,
		Err:    err,
	}
}

func reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "page not found"
	case errors.Is(err, domain.ErrDisambiguation):
		return "disambiguation page"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, domain.ErrTimeout):
		return "timed out"
	default:
		return err.Error()
	}
}

func describe(o domain.FetchOutcome) string {
	if o.Title == "" || o.Title == o.Topic {
		return fmt.Sprintf("%q", o.Topic)
	}
	return fmt.Sprintf("%q (%s)", o.Title, o.Topic)
}
