package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(map[string]any{"query.k": 5})

	assert.Equal(t, 5, store.GetInt("query.k"))
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("s", "text"))
	require.NoError(t, store.Set("i", int64(7)))
	require.NoError(t, store.Set("f", 2.5))
	require.NoError(t, store.Set("b", true))
	require.NoError(t, store.Set("l", []any{"a", 1, "b"}))

	assert.Equal(t, "text", store.GetString("s"))
	assert.Equal(t, 7, store.GetInt("i"))
	assert.Equal(t, 7.0, store.GetFloat("i"))
	assert.Equal(t, 2.5, store.GetFloat("f"))
	assert.Equal(t, 2, store.GetInt("f"))
	assert.True(t, store.GetBool("b"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("l"))
}

func TestConfigStore_WrongTypeReturnsZero(t *testing.T) {
	store := NewConfigStore(map[string]any{"s": "text", "i": 3})

	assert.Equal(t, 0, store.GetInt("s"))
	assert.Equal(t, 0.0, store.GetFloat("s"))
	assert.False(t, store.GetBool("i"))
	assert.Empty(t, store.GetString("i"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_SaveLoadNoop(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
}
