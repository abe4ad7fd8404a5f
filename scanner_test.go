package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestWalkForMarkers_MatchesOnlyMarkedFiles(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "pages", "home", "Home.jsx"), "const q = gql` query GetHome { id } `")
	writeTestFile(t, filepath.Join(root, "pages", "home", "helpers.ts"), "export const fmt = graphql` query GetUser { name } `")
	writeTestFile(t, filepath.Join(root, "pages", "about", "About.jsx"), "export default function About() {}")
	writeTestFile(t, filepath.Join(root, "pages", "about", "notes.md"), "gql` query NotSource { id } `") // wrong extension
	writeTestFile(t, filepath.Join(root, "util.js"), "plain javascript")

	files, err := walkForMarkers(root, defaultMarkerConfig())

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "pages", "home", "Home.jsx"),
		filepath.Join(root, "pages", "home", "helpers.ts"),
	}, files)
}

func TestWalkForMarkers_SkipsHiddenByDefault(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, ".next", "cache.js"), "gql` query Cached { id } `")
	writeTestFile(t, filepath.Join(root, "app.jsx"), "gql` query App { id } `")

	files, err := walkForMarkers(root, defaultMarkerConfig())

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "app.jsx")}, files)
}

func TestWalkForMarkers_RespectsGitignore(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, ".gitignore"), "node_modules\n")
	writeTestFile(t, filepath.Join(root, "node_modules", "lib", "index.js"), "gql` query Vendor { id } `")
	writeTestFile(t, filepath.Join(root, "app.jsx"), "gql` query App { id } `")

	files, err := walkForMarkers(root, defaultMarkerConfig())

	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "app.jsx")}, files)
}

func TestScanLocalPath_SingleFile(t *testing.T) {
	root := t.TempDir()
	marked := filepath.Join(root, "Home.jsx")
	writeTestFile(t, marked, "gql` query GetHome { id } `")
	unmarked := filepath.Join(root, "About.jsx")
	writeTestFile(t, unmarked, "nothing here")

	files, err := scanLocalPath(marked, defaultMarkerConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{marked}, files)

	files, err = scanLocalPath(unmarked, defaultMarkerConfig())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScanLocalPath_SingleFileUnrecognizedExtension(t *testing.T) {
	root := t.TempDir()
	notes := filepath.Join(root, "notes.md")
	writeTestFile(t, notes, "snippet: gql` query GetHome { id } `")

	files, err := scanLocalPath(notes, defaultMarkerConfig())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScanLocalPath_MissingPath(t *testing.T) {
	_, err := scanLocalPath(filepath.Join(t.TempDir(), "nope"), defaultMarkerConfig())
	assert.Error(t, err)
}

// Home.jsx with a marker and About.jsx without, scanned and grouped
// against the pages root: only home survives.
func TestScanAndGroup_EndToEnd(t *testing.T) {
	root := t.TempDir()
	home := filepath.Join(root, "pages", "home", "Home.jsx")
	writeTestFile(t, home, "const q = gql` query GetHome { id } `")
	writeTestFile(t, filepath.Join(root, "pages", "about", "About.jsx"), "export default function About() {}")

	files, err := walkForMarkers(root, defaultMarkerConfig())
	require.NoError(t, err)

	groups := groupByPage(files, filepath.Join(root, "pages"))
	require.Len(t, groups, 1)
	assert.Equal(t, "home", groups[0].Name)
	assert.Equal(t, []string{home}, groups[0].Files)
}

func TestReadFilesBlob(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a.jsx")
	writeTestFile(t, a, "content a")

	blob, err := readFilesBlob([]string{a})
	require.NoError(t, err)
	assert.Contains(t, blob, "File: "+a)
	assert.Contains(t, blob, "content a")

	_, err = readFilesBlob([]string{filepath.Join(root, "missing.jsx")})
	assert.Error(t, err)
}
