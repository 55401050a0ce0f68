package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/semdex/internal/core/domain"
)

func TestRunCmd_PrintsReport(t *testing.T) {
	env := setupTestServices(t)
	env.corpus.outcomes = []domain.FetchOutcome{
		okOutcome("Water", "Water"),
		okOutcome("Water", "Boiling point"),
		{Topic: "Steam", Title: "Steam", Status: domain.FetchSkipped, Reason: "empty summary"},
	}

	err := execute(t, "run", "--query", "What is the boiling point of water?")
	require.NoError(t, err)

	out := env.out.String()
	assert.Contains(t, out, "FETCHING DOCUMENTS FROM WIKIPEDIA AND BUILDING THE DOCUMENT COLLECTION")
	assert.Contains(t, out, "Fetching articles via search:")
	assert.Contains(t, out, "[Water]")
	assert.Contains(t, out, "  + Water")
	assert.Contains(t, out, "Fetching specific articles:")
	assert.Contains(t, out, "  - Steam (empty summary)")
	assert.Contains(t, out, "Total documents loaded: 2")
	assert.Contains(t, out, "Skipped: 1")
	assert.Contains(t, out, "Index ready: 2 vectors (4 dimensions)")
	assert.Contains(t, out, "RUNNING QUERIES")
	assert.Contains(t, out, "Q: What is the boiling point of water?")
	assert.Contains(t, out, "   [1] Water (dist: 0.412)")
	assert.Contains(t, out, "   [2] Boiling point (dist: 0.900)")

	assert.Equal(t, env.topics, env.corpus.built)
	assert.Equal(t, domain.DefaultK, env.corpus.lastK)
}

func TestRunCmd_DefaultsToSampleQueries(t *testing.T) {
	env := setupTestServices(t)

	require.NoError(t, execute(t, "run"))

	assert.Equal(t, domain.SampleQueries(), env.corpus.queries)
}

func TestRunCmd_RepeatableQueryAndK(t *testing.T) {
	env := setupTestServices(t)

	err := execute(t, "run", "-q", "first", "-q", "second", "--k", "1")
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, env.corpus.queries)
	assert.Equal(t, 1, env.corpus.lastK)
	assert.NotContains(t, env.out.String(), "[2]")
}

func TestRunCmd_BuildFailure(t *testing.T) {
	env := setupTestServices(t)
	env.corpus.buildErr = domain.ErrEmptyInput

	err := execute(t, "run")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
	assert.Contains(t, err.Error(), "build failed")
}

func TestRunCmd_QueryFailure(t *testing.T) {
	env := setupTestServices(t)
	env.corpus.queryErr = domain.ErrEmbeddingFailure

	err := execute(t, "run", "-q", "anything")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEmbeddingFailure))
	assert.Contains(t, err.Error(), `query "anything" failed`)
}

func TestRunCmd_NotConfigured(t *testing.T) {
	setupTestServices(t)
	services = nil

	err := execute(t, "run")

	assert.ErrorIs(t, err, errNotConfigured)
}

func TestRunCmd_RejectsArgs(t *testing.T) {
	setupTestServices(t)

	err := execute(t, "run", "stray")

	assert.Error(t, err)
}
