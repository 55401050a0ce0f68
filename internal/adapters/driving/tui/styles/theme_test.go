package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	for name, c := range map[string]lipgloss.Color{
		"Accent":     theme.Accent,
		"Link":       theme.Link,
		"Foreground": theme.Foreground,
		"Muted":      theme.Muted,
		"Error":      theme.Error,
		"Border":     theme.Border,
		"Bar":        theme.Bar,
		"Near":       theme.Near,
		"Far":        theme.Far,
	} {
		assert.NotEmpty(t, string(c), name)
	}
}

func TestDefaultTheme_DistanceColoursDiffer(t *testing.T) {
	theme := DefaultTheme()

	assert.NotEqual(t, theme.Near, theme.Far)
	assert.NotEqual(t, theme.Accent, theme.Error)
}

func TestNewStyles_WithTheme(t *testing.T) {
	theme := DefaultTheme()
	styles := NewStyles(theme)

	require.NotNil(t, styles)
	assert.Same(t, theme, styles.Theme())
}

func TestNewStyles_NilTheme(t *testing.T) {
	styles := NewStyles(nil)

	require.NotNil(t, styles)
	assert.NotNil(t, styles.Theme())
}

func TestDefaultStyles_Configured(t *testing.T) {
	styles := DefaultStyles()

	assert.True(t, styles.Title.GetBold())
	assert.True(t, styles.Selected.GetBold())
	assert.True(t, styles.Rank.GetBold())
	assert.Equal(t, lipgloss.Color(DefaultTheme().Bar), styles.StatusBar.GetBackground())
	assert.Equal(t, lipgloss.RoundedBorder(), styles.InputField.GetBorderStyle())
}

func TestStyles_Distance(t *testing.T) {
	styles := DefaultStyles()

	assert.Equal(t, styles.Near, styles.Distance(0.2))
	assert.Equal(t, styles.Near, styles.Distance(NearDistance))
	assert.Equal(t, styles.Far, styles.Distance(1.7))
}
