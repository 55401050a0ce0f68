package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/semdex/internal/core/domain"
	"github.com/custodia-labs/semdex/internal/core/ports/driving"
)

func TestCacheCmd_Info(t *testing.T) {
	env := setupTestServices(t)

	require.NoError(t, execute(t, "cache", "info"))

	out := env.out.String()
	assert.Contains(t, out, "Cache:    /tmp/semdex/cache.db")
	assert.Contains(t, out, "Articles: 3")
	assert.NotContains(t, out, "disabled")
	assert.True(t, env.cache.closed)
	require.NotNil(t, env.cache.opened)
}

func TestCacheCmd_DefaultsToInfo(t *testing.T) {
	env := setupTestServices(t)

	require.NoError(t, execute(t, "cache"))

	assert.Contains(t, env.out.String(), "Articles: 3")
}

func TestCacheCmd_Info_Disabled(t *testing.T) {
	env := setupTestServices(t)
	env.settings.settings.Ingest.Cache = false

	require.NoError(t, execute(t, "cache", "info"))

	assert.Contains(t, env.out.String(), "Caching is disabled")
}

func TestCacheCmd_Clear(t *testing.T) {
	env := setupTestServices(t)

	require.NoError(t, execute(t, "cache", "clear"))

	assert.Contains(t, env.out.String(), "Removed 3 cached articles")
	assert.Equal(t, 0, env.cache.articles)
	assert.True(t, env.cache.closed)
}

func TestCacheCmd_Clear_Error(t *testing.T) {
	env := setupTestServices(t)
	env.cache.err = errors.New("disk full")

	err := execute(t, "cache", "clear")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to clear cache")
}

func TestCacheCmd_OpenError(t *testing.T) {
	setupTestServices(t)
	services.OpenCache = func(*domain.AppSettings) (driving.CacheAdmin, error) {
		return nil, errors.New("locked")
	}

	err := execute(t, "cache", "info")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open cache: locked")
}

func TestCacheCmd_NotConfigured(t *testing.T) {
	setupTestServices(t)
	services.OpenCache = nil

	err := execute(t, "cache", "info")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "article cache not configured")
}
