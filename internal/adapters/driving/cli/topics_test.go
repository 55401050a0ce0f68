package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/semdex/internal/core/domain"
)

func TestTopicsCmd_ShowPrintsYAML(t *testing.T) {
	env := setupTestServices(t)

	require.NoError(t, execute(t, "topics"))

	var got domain.Corpus
	require.NoError(t, yaml.Unmarshal(env.out.Bytes(), &got))
	assert.Equal(t, env.topics, got)
}

func TestTopicsCmd_ShowPassesTopicsPath(t *testing.T) {
	env := setupTestServices(t)
	var seen string
	services.LoadTopics = func(path string) (domain.Corpus, error) {
		seen = path
		return env.topics, nil
	}

	require.NoError(t, execute(t, "topics", "show", "--topics", "/tmp/mine.yaml"))

	assert.Equal(t, "/tmp/mine.yaml", seen)
}

func TestTopicsCmd_LoadError(t *testing.T) {
	setupTestServices(t)
	services.LoadTopics = func(string) (domain.Corpus, error) {
		return domain.Corpus{}, domain.ErrInvalidInput
	}

	err := execute(t, "topics", "show")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "failed to load topics")
}

func TestTopicsCmd_NoLoaderUsesDefaultCorpus(t *testing.T) {
	env := setupTestServices(t)
	services.LoadTopics = nil

	require.NoError(t, execute(t, "topics", "show"))

	var got domain.Corpus
	require.NoError(t, yaml.Unmarshal(env.out.Bytes(), &got))
	assert.Equal(t, domain.DefaultCorpus(), got)
}

func TestTopicsInitCmd_WritesFile(t *testing.T) {
	env := setupTestServices(t)

	require.NoError(t, execute(t, "topics", "init"))

	assert.Equal(t, []string{"/tmp/semdex/corpus.yaml"}, env.written)
	assert.Contains(t, env.out.String(), "Wrote 2 topics to /tmp/semdex/corpus.yaml")
}

func TestTopicsInitCmd_Force(t *testing.T) {
	setupTestServices(t)
	var overwrite bool
	services.WriteTopics = func(path string, _ domain.Corpus, force bool) (string, error) {
		overwrite = force
		return "corpus.yaml", nil
	}

	require.NoError(t, execute(t, "topics", "init", "--force"))

	assert.True(t, overwrite)
}

func TestTopicsInitCmd_WriteError(t *testing.T) {
	setupTestServices(t)
	services.WriteTopics = func(string, domain.Corpus, bool) (string, error) {
		return "", errors.New("file exists")
	}

	err := execute(t, "topics", "init")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write topics: file exists")
}
