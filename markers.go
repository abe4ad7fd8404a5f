package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// MarkerConfig defines which files the scanner considers: a set of source
// extensions and the literal marker substrings that signal embedded
// query-language usage.
type MarkerConfig struct {
	Extensions []string `yaml:"extensions"`
	Markers    []string `yaml:"markers"`

	extensionSet map[string]bool
}

// defaultMarkerConfig covers the usual frontend source extensions and the
// two tagged-template invocations used by graphql-tag and friends.
func defaultMarkerConfig() *MarkerConfig {
	cfg := &MarkerConfig{
		Extensions: []string{".js", ".jsx", ".ts", ".tsx"},
		Markers:    []string{"gql`", "graphql`"},
	}
	cfg.buildLookup()
	return cfg
}

// loadMarkerConfig looks for markers.yml in the standard config locations
// and falls back to the built-in defaults when no file is found.
func loadMarkerConfig() (*MarkerConfig, error) {
	configPaths := []string{}
	if home, err := os.UserHomeDir(); err == nil {
		configPaths = append(configPaths, filepath.Join(home, ".config", "pageops"))
	}
	configPaths = append(configPaths, ".")

	var markerFilePath string
	for _, p := range configPaths {
		testPath := filepath.Join(p, "markers.yml")
		if _, err := os.Stat(testPath); err == nil {
			markerFilePath = testPath
			break
		}
	}

	if markerFilePath == "" {
		return defaultMarkerConfig(), nil
	}

	fmt.Printf("Loading marker definitions from: %s\n", markerFilePath)
	yamlFile, err := os.ReadFile(markerFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading marker file %s: %w", markerFilePath, err)
	}

	var cfg MarkerConfig
	if err := yaml.Unmarshal(yamlFile, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing marker file %s: %w", markerFilePath, err)
	}

	// Partial files inherit the missing half from the defaults.
	defaults := defaultMarkerConfig()
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = defaults.Extensions
	}
	if len(cfg.Markers) == 0 {
		cfg.Markers = defaults.Markers
	}
	cfg.buildLookup()

	fmt.Printf("Loaded %d extensions and %d markers.\n", len(cfg.Extensions), len(cfg.Markers))
	return &cfg, nil
}

func (mc *MarkerConfig) buildLookup() {
	mc.extensionSet = make(map[string]bool, len(mc.Extensions))
	for _, ext := range mc.Extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		mc.extensionSet[strings.ToLower(ext)] = true
	}
}

// RecognizesExtension reports whether the path's extension is in the
// configured set.
func (mc *MarkerConfig) RecognizesExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	return mc.extensionSet[ext]
}
