package main

import (
	"path/filepath"
	"strings"
)

// groupByPage partitions the matched files by the first path segment
// relative to pagesRoot, preserving encounter order of both groups and
// files. Files outside the pages root still land in a group keyed by
// whatever their first relative segment computes to (often "..").
func groupByPage(files []string, pagesRoot string) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, file := range files {
		key := groupKey(file, pagesRoot)
		if i, ok := index[key]; ok {
			groups[i].Files = append(groups[i].Files, file)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, Group{Name: key, Files: []string{file}})
	}

	return groups
}

// groupKey derives the group identifier for one file: the first segment of
// its path relative to pagesRoot. A file that cannot be relativized, or
// that relativizes to a bare name, groups under that name as-is.
func groupKey(file, pagesRoot string) string {
	rel, err := filepath.Rel(pagesRoot, file)
	if err != nil {
		rel = file
	}
	rel = filepath.ToSlash(rel)
	if i := strings.Index(rel, "/"); i >= 0 {
		return rel[:i]
	}
	return rel
}
