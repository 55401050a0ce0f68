package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
}

func TestTUICmd_RequiresTerminal(t *testing.T) {
	env := setupTestServices(t)

	err := execute(t, "tui")

	assert.ErrorIs(t, err, errNotTerminal)
	assert.Empty(t, env.corpus.built.Searches, "corpus must not be built without a terminal")
}

func TestIsTerminal_Buffer(t *testing.T) {
	env := setupTestServices(t)

	assert.False(t, isTerminal(env.out))
}

func TestMCPServeCmd_PortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")

	if assert.NotNil(t, flag) {
		assert.Equal(t, "p", flag.Shorthand)
		assert.Equal(t, "0", flag.DefValue)
	}
}
