package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	assert.NotEqual(t, ErrMissingQueryEngine.Error(), ErrInvalidPorts.Error())
}

func TestErrMissingQueryEngine_Message(t *testing.T) {
	assert.Contains(t, ErrMissingQueryEngine.Error(), "query engine")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
