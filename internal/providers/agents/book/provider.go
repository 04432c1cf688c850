// Package book wraps the remote book-writing agent service.
package book

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/bytedance/sonic"

	"github.com/mosaicdesk/bridge/internal/providers/agents"
	"github.com/mosaicdesk/bridge/internal/types"
)

// Provider wraps the book-writing agent's execute and status endpoints.
type Provider struct {
	client   *agents.Client
	enabled  bool
	requests atomic.Int64
}

// NewProvider creates a book agent provider. A nil client or disabled flag
// marks the service unavailable; invocations then fail the service
// precondition instead of dialing.
func NewProvider(client *agents.Client, enabled bool) *Provider {
	return &Provider{client: client, enabled: enabled && client != nil}
}

// Definition returns provider metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "book",
		Name:        "Book Writing Agent",
		Description: "Long-form text generation through the book-writing agent service",
		Category:    types.CategoryWriter,
		Capabilities: []string{
			"outline_generation",
			"chapter_generation",
			"usage_introspection",
		},
		Tools: []types.Tool{
			{
				ID:          "book.outline",
				Name:        "Generate Outline",
				Description: "Generate a book outline from a title and genre",
				Parameters: []types.Parameter{
					{Name: "title", Type: "string", Description: "Working title", Required: true},
					{Name: "genre", Type: "string", Description: "Genre hint", Required: false},
					{Name: "chapters", Type: "number", Description: "Target chapter count", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "book.chapter",
				Name:        "Generate Chapter",
				Description: "Generate one chapter from an outline entry",
				Parameters: []types.Parameter{
					{Name: "outline", Type: "string", Description: "Chapter outline text", Required: true},
					{Name: "index", Type: "number", Description: "Chapter number", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "book.status",
				Name:        "Agent Status",
				Description: "Report availability and local usage counters",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
		},
	}
}

// Conditions requires the agent service to be enabled for generation tools.
func (p *Provider) Conditions(toolID string) []types.Condition {
	service := types.Condition{
		ID:   "service",
		Hint: "enable the book agent and configure its URL",
		Check: func(ctx context.Context, ictx *types.Context) error {
			if !p.enabled {
				return fmt.Errorf("book agent disabled")
			}
			return nil
		},
	}

	switch toolID {
	case "book.outline", "book.chapter":
		return []types.Condition{service}
	default:
		return nil
	}
}

// Execute runs a book agent operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, ictx *types.Context) (*types.Result, error) {
	switch toolID {
	case "book.outline":
		return p.outline(ctx, params)
	case "book.chapter":
		return p.chapter(ctx, params)
	case "book.status":
		return p.status()
	default:
		return types.Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) outline(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	title, err := types.GetString(params, "title", true)
	if err != nil {
		return types.Failure(err.Error())
	}
	genre, _ := types.GetString(params, "genre", false)
	chapters, _ := types.GetNumber(params, "chapters", false)

	body := map[string]interface{}{"title": title}
	if genre != "" {
		body["genre"] = genre
	}
	if chapters > 0 {
		body["chapters"] = int(chapters)
	}

	return p.call(ctx, "/v1/outline", body)
}

func (p *Provider) chapter(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	outline, err := types.GetString(params, "outline", true)
	if err != nil {
		return types.Failure(err.Error())
	}
	index, _ := types.GetNumber(params, "index", false)

	body := map[string]interface{}{"outline": outline}
	if index > 0 {
		body["index"] = int(index)
	}

	return p.call(ctx, "/v1/chapter", body)
}

func (p *Provider) call(ctx context.Context, path string, body map[string]interface{}) (*types.Result, error) {
	resp, err := p.client.Execute(ctx, path, body)
	if err != nil {
		return types.Failure(fmt.Sprintf("book agent call failed: %v", err))
	}
	if err := agents.CheckResponse(resp); err != nil {
		return types.Failure(err.Error())
	}

	p.requests.Add(1)

	var payload map[string]interface{}
	if err := sonic.Unmarshal(resp.Body(), &payload); err != nil {
		return types.Failure(fmt.Sprintf("book agent returned malformed response: %v", err))
	}

	return types.Success(payload)
}

func (p *Provider) status() (*types.Result, error) {
	return types.Success(map[string]interface{}{
		"enabled":  p.enabled,
		"requests": p.requests.Load(),
	})
}
