package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"shorter than limit", "coffee", 10, "coffee"},
		{"exact limit", "coffee", 6, "coffee"},
		{"truncated", "coffee beans", 6, "coffee"},
		{"zero limit", "coffee", 0, "coffee"},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Preview(tt.in, tt.n))
		})
	}
}

func TestPreview_NeverSplitsRunes(t *testing.T) {
	s := "日本語のテキスト"
	got := Preview(s, 3)
	assert.Equal(t, "日本語", got)
}

func TestDisambiguationError(t *testing.T) {
	var err error = &DisambiguationError{Title: "Mercury", Options: []string{"Mercury (planet)", "Mercury (element)"}}

	assert.True(t, errors.Is(err, ErrDisambiguation))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "Mercury (planet)")

	var de *DisambiguationError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "Mercury (planet)", de.Options[0])
}

func TestDisambiguationError_NoOptions(t *testing.T) {
	err := &DisambiguationError{Title: "X"}
	assert.Contains(t, err.Error(), "several pages")
}

func TestFetchOutcome_OK(t *testing.T) {
	assert.True(t, FetchOutcome{Status: FetchOK, Article: &Article{Title: "a"}}.OK())
	assert.False(t, FetchOutcome{Status: FetchOK}.OK())
	assert.False(t, FetchOutcome{Status: FetchSkipped, Article: &Article{}}.OK())
}
