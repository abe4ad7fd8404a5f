package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// extractJSON locates the first valid balanced JSON value (object or array)
// in a model reply. Replies wrapped in markdown fences, prefixed with prose,
// or returned bare all yield the same payload. A brace that opens a
// non-JSON fragment (prose like "{curly braces}") is skipped and the scan
// resumes at the next candidate.
func extractJSON(s string) (string, error) {
	offset := 0
	for {
		idx := strings.IndexAny(s[offset:], "{[")
		if idx < 0 {
			return "", fmt.Errorf("no JSON value found in reply")
		}
		start := offset + idx
		if candidate, ok := balancedValue(s[start:]); ok && json.Valid([]byte(candidate)) {
			return candidate, nil
		}
		offset = start + 1
	}
}

// balancedValue returns the shortest prefix of s that closes the object or
// array opened at s[0]. Scanning is string- and escape-aware so braces
// inside string values don't unbalance the match.
func balancedValue(s string) (string, bool) {
	open := s[0]
	closer := byte(']')
	if open == '{' {
		closer = '}'
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}

	return "", false
}
