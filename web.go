package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// isWebURL checks if the input string is an HTTP/HTTPS URL.
func isWebURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// fetchPageBlob fetches one web page, converts its HTML to markdown, and
// returns the markdown text to be used as the inventory blob. Only HTML
// responses are accepted; no link traversal.
func fetchPageBlob(url string) (string, error) {
	fmt.Printf("Fetching web URL: %s\n", url)

	res, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL %s: %w", url, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("failed to fetch URL %s: status code %d", url, res.StatusCode)
	}

	contentType := res.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return "", fmt.Errorf("unsupported content type %q for URL %s", contentType, url)
	}

	bodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body from %s: %w", url, err)
	}

	// Pull the title for the console narration; markdown conversion below
	// carries the actual content.
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(bodyBytes))); err == nil {
		if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
			fmt.Printf("Page title: %s\n", title)
		}
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(string(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown for %s: %w", url, err)
	}

	fmt.Printf("Fetched %s (markdown size: %d bytes)\n", url, len(markdown))
	return markdown, nil
}
