package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
)

// inventoryDocument is the output shape of inventory mode: the discovered
// pages followed by every per-page result.
type inventoryDocument struct {
	Pages   []PageInfo       `json:"pages"`
	Results []AnalysisResult `json:"results"`
}

// resultFileName builds the timestamped output path; one file per run,
// never overwritten.
func resultFileName(now time.Time) string {
	return fmt.Sprintf("pageops-analysis-%s.json", now.Format("20060102-150405"))
}

// writeResults pretty-prints v as JSON into path, or into a timestamped
// file in the working directory when path is empty. Returns the path the
// file was written to.
func writeResults(v any, path string) (string, error) {
	if path == "" {
		path = resultFileName(time.Now())
	}

	data, err := marshalIndentNoEscape(v)
	if err != nil {
		return "", fmt.Errorf("encoding results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing results to %s: %w", path, err)
	}
	return path, nil
}

// marshalIndentNoEscape renders indented JSON without turning <, > and &
// into unicode escapes, so operation names read back cleanly.
func marshalIndentNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// copyResultsToClipboard mirrors the JSON document to the clipboard,
// falling back to stdout when the clipboard is unavailable.
func copyResultsToClipboard(v any) {
	data, err := marshalIndentNoEscape(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding results for clipboard: %v\n", err)
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to clipboard: %v\n", err)
		fmt.Println("\n--- Results (clipboard failed) ---")
		fmt.Println(string(data))
		return
	}
	fmt.Println("Results copied to clipboard.")
}

// printSummary writes the closing console block.
func printSummary(s RunSummary, outputPath string, countTokens bool) {
	fmt.Println("\n--- Summary ---")
	fmt.Printf("Pages analyzed: %d\n", s.Groups)
	fmt.Printf("Remote calls: %d\n", s.Calls)
	if s.Errored > 0 {
		fmt.Printf("Pages with errors: %d\n", s.Errored)
	}
	if countTokens {
		fmt.Printf("Total prompt tokens: %d\n", s.PromptTokens)
	}
	if outputPath != "" {
		fmt.Printf("Results written to %s\n", outputPath)
	}
}
