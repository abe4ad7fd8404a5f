package main

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestApplyConfigOverrides_ConfigValuesReachFlagVariables(t *testing.T) {
	viper.Set("mode", "inventory")
	viper.Set("pages_root", "app/routes")
	viper.Set("jitter", "5s")
	viper.Set("hidden", true)
	t.Cleanup(func() {
		viper.Set("mode", "groups")
		viper.Set("pages_root", "src/pages")
		viper.Set("jitter", "0s")
		viper.Set("hidden", false)
		applyConfigOverrides()
	})

	applyConfigOverrides()

	assert.Equal(t, "inventory", analysisMode)
	assert.Equal(t, "app/routes", pagesRoot)
	assert.Equal(t, 5*time.Second, jitter)
	assert.True(t, showHidden)
}

func TestApplyConfigOverrides_DefaultsWhenNothingIsSet(t *testing.T) {
	applyConfigOverrides()

	assert.Equal(t, "groups", analysisMode)
	assert.Equal(t, "src/pages", pagesRoot)
	assert.Equal(t, 30*time.Second, delay)
	assert.Equal(t, "tiktoken", tokenizerType)
	assert.Equal(t, 100000, maxPromptTokens)
	assert.False(t, noIgnore)
}
