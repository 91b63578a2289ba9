package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBanner(t *testing.T) {
	out := Banner("0.3.0\n")
	assert.Contains(t, out, "v0.3.0")
	assert.Contains(t, out, "\\__,_|")

	assert.NotContains(t, Banner(""), " v")
}

func TestRenderer(t *testing.T) {
	render := NewRenderer()
	require.NotNil(t, render)

	out, err := render("Visa and **Mastercard**.")
	require.NoError(t, err)
	assert.Contains(t, out, "Mastercard")
}
