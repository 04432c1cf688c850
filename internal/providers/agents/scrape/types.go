package scrape

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

const (
	// maxHTMLSize limits fetched or supplied HTML to 10MB
	maxHTMLSize = 10 * 1024 * 1024

	maxTextLength = 20000
)

// ops holds shared parsing state
type ops struct {
	sanitizer *bluemonday.Policy
}

func newOps() *ops {
	return &ops{sanitizer: bluemonday.UGCPolicy()}
}

func (o *ops) sanitize(htmlStr string) string {
	return o.sanitizer.Sanitize(htmlStr)
}

func validateHTML(htmlStr string) error {
	if len(htmlStr) == 0 {
		return fmt.Errorf("html content required")
	}
	if len(htmlStr) > maxHTMLSize {
		return fmt.Errorf("html exceeds maximum size of %d bytes", maxHTMLSize)
	}
	return nil
}

// detectCharset detects the charset of raw HTML bytes, defaulting to utf-8.
func detectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

// loadDocument parses HTML into a goquery document with charset conversion.
func loadDocument(htmlStr string) (*goquery.Document, error) {
	if err := validateHTML(htmlStr); err != nil {
		return nil, err
	}

	data := []byte(htmlStr)
	utf8Reader, err := charset.NewReader(bytes.NewReader(data), detectCharset(data))
	if err != nil {
		return goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	}

	return goquery.NewDocumentFromReader(utf8Reader)
}

// loadNode parses HTML into an xpath-compatible node tree.
func loadNode(htmlStr string) (*html.Node, error) {
	if err := validateHTML(htmlStr); err != nil {
		return nil, err
	}

	data := []byte(htmlStr)
	utf8Reader, err := charset.NewReader(bytes.NewReader(data), detectCharset(data))
	if err != nil {
		return htmlquery.Parse(strings.NewReader(htmlStr))
	}

	return htmlquery.Parse(utf8Reader)
}

// normalizeWhitespace collapses runs of whitespace into single spaces.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateText(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// deduplicate removes duplicate strings preserving order.
func deduplicate(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}
