package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

// scanLocalPath handles a single local file or directory scan root.
// A file argument is checked against the same extension/marker filters
// it would face inside a walk.
func scanLocalPath(path string, markers *MarkerConfig) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}

	if info.IsDir() {
		fmt.Printf("Scanning directory: %s\n", path)
		return walkForMarkers(path, markers)
	}

	fmt.Printf("Scanning file: %s\n", path)
	if !markers.RecognizesExtension(path) {
		fmt.Printf("Unrecognized extension for %s\n", path)
		return nil, nil
	}
	ok, err := fileHasMarker(path, markers)
	if err != nil {
		return nil, err
	}
	if !ok {
		fmt.Printf("No query-language marker in %s\n", path)
		return nil, nil
	}
	return []string{path}, nil
}

// walkForMarkers recursively walks root and returns every file whose
// extension is recognized and whose content contains a marker substring.
// Paths are returned in traversal (encounter) order. Symlinked directory
// cycles are not detected; that matches the scan contract.
func walkForMarkers(root string, markers *MarkerConfig) ([]string, error) {
	var matched []string
	var ignoreMatcher gitignore.IgnoreMatcher

	if !noIgnore {
		// Only the root .gitignore is consulted; nested ignore files are
		// not merged.
		gitIgnorePath := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(gitIgnorePath); err == nil {
			matcher, err := gitignore.NewGitIgnore(gitIgnorePath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not parse .gitignore file %s: %v\n", gitIgnorePath, err)
			} else {
				ignoreMatcher = matcher
			}
		}
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error accessing path %s: %v\n", path, err)
			return nil // report and continue
		}
		if path == root {
			return nil
		}

		baseName := d.Name()
		isDir := d.IsDir()

		if !showHidden && isHidden(baseName) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		// Match relativizes against the .gitignore's own directory, so it
		// gets the walk path as-is.
		if ignoreMatcher != nil && ignoreMatcher.Match(path, isDir) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		if isDir {
			return nil
		}

		if !markers.RecognizesExtension(path) {
			return nil
		}

		ok, readErr := fileHasMarker(path, markers)
		if readErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not read %s: %v\n", path, readErr)
			return nil // skip unreadable files
		}
		if ok {
			matched = append(matched, path)
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", root, err)
	}

	return matched, nil
}

// fileHasMarker reads the file and checks the raw bytes for any marker
// substring. The whole file is read; there is no size cap.
func fileHasMarker(path string, markers *MarkerConfig) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	for _, m := range markers.Markers {
		if bytes.Contains(content, []byte(m)) {
			return true, nil
		}
	}
	return false, nil
}

// isHidden checks if a file name is hidden (starts with '.').
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	base := filepath.Base(name)
	return len(base) > 0 && base[0] == '.'
}

// readFilesBlob concatenates the contents of the given files with a
// per-file header, the same shape the prompt templates expect.
func readFilesBlob(files []string) (string, error) {
	var builder strings.Builder
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("error reading file %s: %w", path, err)
		}
		builder.WriteString(fmt.Sprintf("File: %s\n", path))
		builder.WriteString(strings.Repeat("=", 50))
		builder.WriteString("\n")
		builder.Write(content)
		if len(content) > 0 && content[len(content)-1] != '\n' {
			builder.WriteString("\n")
		}
		builder.WriteString("\n")
	}
	return builder.String(), nil
}
