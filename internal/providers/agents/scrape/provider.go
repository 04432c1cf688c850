// Package scrape wraps the scraping agent: page fetching plus HTML parsing
// with CSS selectors, XPath queries, and metadata extraction.
package scrape

import (
	"context"
	"fmt"

	"github.com/mosaicdesk/bridge/internal/providers/agents"
	"github.com/mosaicdesk/bridge/internal/types"
)

// Provider implements scraping operations over fetched or supplied HTML.
type Provider struct {
	client  *agents.Client
	enabled bool
	ops     *ops
}

// NewProvider creates a scrape provider. The client is used for page
// fetches; parsing operations also accept inline HTML and work offline.
func NewProvider(client *agents.Client, enabled bool) *Provider {
	return &Provider{
		client:  client,
		enabled: enabled,
		ops:     newOps(),
	}
}

// Definition returns provider metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "scrape",
		Name:        "Scraping Agent",
		Description: "Web page fetching and HTML content extraction",
		Category:    types.CategoryScraper,
		Capabilities: []string{
			"page_fetch",
			"content_extraction",
			"css_selectors",
			"xpath_queries",
			"metadata_extraction",
			"charset_detection",
			"html_sanitization",
		},
		Tools: []types.Tool{
			{
				ID:          "scrape.page",
				Name:        "Scrape Page",
				Description: "Fetch a page and extract title, text, and links",
				Parameters: []types.Parameter{
					{Name: "url", Type: "string", Description: "Page URL", Required: true},
					{Name: "keywords", Type: "array", Description: "Filter links by keywords", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "scrape.select",
				Name:        "CSS Select",
				Description: "Extract elements matching a CSS selector",
				Parameters: []types.Parameter{
					{Name: "html", Type: "string", Description: "HTML content (or url)", Required: false},
					{Name: "url", Type: "string", Description: "Page URL (or html)", Required: false},
					{Name: "selector", Type: "string", Description: "CSS selector", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "scrape.xpath",
				Name:        "XPath Query",
				Description: "Extract text of nodes matching an XPath expression",
				Parameters: []types.Parameter{
					{Name: "html", Type: "string", Description: "HTML content (or url)", Required: false},
					{Name: "url", Type: "string", Description: "Page URL (or html)", Required: false},
					{Name: "query", Type: "string", Description: "XPath expression", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "scrape.metadata",
				Name:        "Page Metadata",
				Description: "Extract meta tags and OpenGraph properties",
				Parameters: []types.Parameter{
					{Name: "html", Type: "string", Description: "HTML content (or url)", Required: false},
					{Name: "url", Type: "string", Description: "Page URL (or html)", Required: false},
				},
				Returns: "object",
			},
		},
	}
}

// Conditions requires the agent to be enabled for any fetching tool.
func (p *Provider) Conditions(toolID string) []types.Condition {
	service := types.Condition{
		ID:   "service",
		Hint: "enable the scraping agent in configuration",
		Check: func(ctx context.Context, ictx *types.Context) error {
			if !p.enabled {
				return fmt.Errorf("scraping agent disabled")
			}
			return nil
		},
	}

	switch toolID {
	case "scrape.page":
		return []types.Condition{service}
	default:
		return nil
	}
}

// Execute routes to the appropriate operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, ictx *types.Context) (*types.Result, error) {
	switch toolID {
	case "scrape.page":
		return p.page(ctx, params)
	case "scrape.select":
		return p.selectCSS(ctx, params)
	case "scrape.xpath":
		return p.xpath(ctx, params)
	case "scrape.metadata":
		return p.metadata(ctx, params)
	default:
		return types.Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

// sourceHTML resolves the html/url parameter pair into HTML content.
func (p *Provider) sourceHTML(ctx context.Context, params map[string]interface{}) (string, error) {
	htmlStr, _ := types.GetString(params, "html", false)
	if htmlStr != "" {
		return htmlStr, nil
	}

	url, _ := types.GetString(params, "url", false)
	if url == "" {
		return "", fmt.Errorf("html or url parameter required")
	}
	if !p.enabled {
		return "", fmt.Errorf("scraping agent disabled")
	}

	return p.fetch(ctx, url)
}

func (p *Provider) fetch(ctx context.Context, url string) (string, error) {
	if p.client == nil {
		return "", fmt.Errorf("scraping agent not configured")
	}

	resp, err := p.client.Get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("fetch failed: %w", err)
	}
	if err := agents.CheckResponse(resp); err != nil {
		return "", err
	}
	if len(resp.Body()) > maxHTMLSize {
		return "", fmt.Errorf("page exceeds maximum size of %d bytes", maxHTMLSize)
	}

	return resp.String(), nil
}
