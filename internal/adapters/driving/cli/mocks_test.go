package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/custodia-labs/semdex/internal/core/domain"
	"github.com/custodia-labs/semdex/internal/core/ports/driving"
)

// mockCorpusService implements driving.CorpusService for CLI tests.
type mockCorpusService struct {
	outcomes []domain.FetchOutcome
	progress func(domain.FetchOutcome)
	buildErr error
	queryErr error
	hits     []domain.Hit

	built   domain.Corpus
	queries []string
	lastK   int
}

func (m *mockCorpusService) Build(_ context.Context, corpus domain.Corpus) (*domain.BuildReport, error) {
	m.built = corpus
	if m.buildErr != nil {
		return nil, m.buildErr
	}
	report := &domain.BuildReport{RunID: "run-1", Dimension: 4}
	for _, o := range m.outcomes {
		if m.progress != nil {
			m.progress(o)
		}
		if o.OK() {
			report.Documents++
		} else {
			report.Skipped++
		}
	}
	return report, nil
}

func (m *mockCorpusService) Query(_ context.Context, text string, k int) ([]domain.Hit, error) {
	m.queries = append(m.queries, text)
	m.lastK = k
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	if len(m.hits) > k {
		return m.hits[:k], nil
	}
	return m.hits, nil
}

func (m *mockCorpusService) Document(id int) (domain.Document, error) {
	for _, h := range m.hits {
		if h.DocumentID == id {
			return h.Document, nil
		}
	}
	return domain.Document{}, domain.ErrNotFound
}

func (m *mockCorpusService) Documents() []domain.Document {
	docs := make([]domain.Document, 0, len(m.hits))
	for _, h := range m.hits {
		docs = append(docs, h.Document)
	}
	return docs
}

// mockSettingsService implements driving.SettingsService for CLI tests.
type mockSettingsService struct {
	settings     domain.AppSettings
	validateErr  error
	pingErr      error
	setErr       error
	sets         map[string]string
	embedding    []string
	getCallCount int
}

func newMockSettingsService() *mockSettingsService {
	s := domain.DefaultAppSettings()
	s.Embedding.Provider = domain.AIProviderHashing
	s.Embedding.Model = "fnv-bag-of-words"
	return &mockSettingsService{settings: s, sets: map[string]string{}}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	m.getCallCount++
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.sets[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"embedding.provider", "query.k"}
}

func (m *mockSettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	m.embedding = []string{string(provider), model, apiKey}
	m.settings.Embedding.Provider = provider
	m.settings.Embedding.Model = model
	m.settings.Embedding.APIKey = apiKey
	return nil
}

func (m *mockSettingsService) Validate() error {
	return m.validateErr
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) ValidateEmbeddingConfig() error {
	return m.pingErr
}

var (
	_ driving.CorpusService   = (*mockCorpusService)(nil)
	_ driving.SettingsService = (*mockSettingsService)(nil)
)

func testHits() []domain.Hit {
	return []domain.Hit{
		{
			SearchResult: domain.SearchResult{Rank: 1, DocumentID: 0, Distance: 0.41234},
			Document: domain.Document{
				ID:       0,
				Title:    "Water",
				Content:  "Water boils at 100 degrees Celsius at sea level.",
				URL:      "https://en.wikipedia.org/wiki/Water",
				Category: "Water",
			},
		},
		{
			SearchResult: domain.SearchResult{Rank: 2, DocumentID: 1, Distance: 0.9},
			Document: domain.Document{
				ID:       1,
				Title:    "Boiling point",
				Content:  "The boiling point depends on pressure.",
				URL:      "https://en.wikipedia.org/wiki/Boiling_point",
				Category: "Water",
			},
		},
	}
}

func okOutcome(topic, title string) domain.FetchOutcome {
	return domain.FetchOutcome{
		Topic:   topic,
		Title:   title,
		Status:  domain.FetchOK,
		Article: &domain.Article{Title: title, Content: "text"},
	}
}

// testEnv holds the mocks wired into the package-level services.
// mockCacheAdmin implements driving.CacheAdmin for CLI tests.
type mockCacheAdmin struct {
	articles int
	err      error
	closed   bool
	opened   *domain.AppSettings
}

func (m *mockCacheAdmin) Path() string { return "/tmp/semdex/cache.db" }

func (m *mockCacheAdmin) Len(context.Context) (int, error) { return m.articles, m.err }

func (m *mockCacheAdmin) Purge(context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	n := m.articles
	m.articles = 0
	return n, nil
}

func (m *mockCacheAdmin) Close() error {
	m.closed = true
	return nil
}

type testEnv struct {
	corpus   *mockCorpusService
	settings *mockSettingsService
	cache    *mockCacheAdmin
	topics   domain.Corpus
	written  []string
	out      *bytes.Buffer
	errOut   *bytes.Buffer
}

// setupTestServices installs mock services and resets command state when
// the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		corpus:   &mockCorpusService{hits: testHits()},
		settings: newMockSettingsService(),
		cache:    &mockCacheAdmin{articles: 3},
		topics: domain.Corpus{
			Searches: []domain.SearchTopic{{Query: "Water", Count: 2}},
			Pages:    []string{"Steam"},
		},
		out:    new(bytes.Buffer),
		errOut: new(bytes.Buffer),
	}

	prevServices, prevBootstrap := services, bootstrap
	services = &Services{
		Settings: env.settings,
		NewCorpus: func(
			_ context.Context,
			_ *domain.AppSettings,
			progress func(domain.FetchOutcome),
		) (driving.CorpusService, func(), error) {
			env.corpus.progress = progress
			return env.corpus, func() {}, nil
		},
		LoadTopics: func(string) (domain.Corpus, error) {
			return env.topics, nil
		},
		WriteTopics: func(path string, _ domain.Corpus, _ bool) (string, error) {
			if path == "" {
				path = "/tmp/semdex/corpus.yaml"
			}
			env.written = append(env.written, path)
			return path, nil
		},
		OpenCache: func(settings *domain.AppSettings) (driving.CacheAdmin, error) {
			env.cache.opened = settings
			return env.cache, nil
		},
	}
	bootstrap = nil

	rootCmd.SetOut(env.out)
	rootCmd.SetErr(env.errOut)

	t.Cleanup(func() {
		services, bootstrap = prevServices, prevBootstrap
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		queryK, queryJSON = 0, false
		runQueries, runK = nil, 0
		topicsForce = false
		topicsPath = ""
		noColor = false
	})

	return env
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
