package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMarkerConfig(t *testing.T) {
	cfg := defaultMarkerConfig()

	assert.True(t, cfg.RecognizesExtension("Home.jsx"))
	assert.True(t, cfg.RecognizesExtension("useHome.ts"))
	assert.True(t, cfg.RecognizesExtension("PAGE.TSX")) // case-insensitive
	assert.False(t, cfg.RecognizesExtension("notes.md"))
	assert.False(t, cfg.RecognizesExtension("Makefile"))
	assert.Contains(t, cfg.Markers, "gql`")
	assert.Contains(t, cfg.Markers, "graphql`")
}

func TestMarkerConfig_BuildLookupNormalizesDots(t *testing.T) {
	cfg := &MarkerConfig{Extensions: []string{"vue", ".svelte"}, Markers: []string{"gql`"}}
	cfg.buildLookup()

	assert.True(t, cfg.RecognizesExtension("App.vue"))
	assert.True(t, cfg.RecognizesExtension("App.svelte"))
	require.False(t, cfg.RecognizesExtension("App.jsx"))
}
