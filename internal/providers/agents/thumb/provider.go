// Package thumb wraps the remote thumbnail-generation agent service.
package thumb

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync/atomic"

	"github.com/gabriel-vasile/mimetype"

	"github.com/mosaicdesk/bridge/internal/providers/agents"
	"github.com/mosaicdesk/bridge/internal/types"
)

// Provider wraps the thumbnail agent. Generation consumes quota; the quota
// precondition blocks invocations once the local counter reaches the limit
// so the remote service is never dialed past it.
type Provider struct {
	client  *agents.Client
	enabled bool
	quota   int64
	used    atomic.Int64
}

// NewProvider creates a thumbnail agent provider with a generation quota.
func NewProvider(client *agents.Client, enabled bool, quota int) *Provider {
	return &Provider{
		client:  client,
		enabled: enabled && client != nil,
		quota:   int64(quota),
	}
}

// Definition returns provider metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "thumb",
		Name:        "Thumbnail Agent",
		Description: "Thumbnail image generation through the thumbnail agent service",
		Category:    types.CategoryThumbnail,
		Capabilities: []string{
			"thumbnail_generation",
			"usage_introspection",
		},
		Tools: []types.Tool{
			{
				ID:          "thumb.generate",
				Name:        "Generate Thumbnail",
				Description: "Generate a thumbnail image from a prompt",
				Parameters: []types.Parameter{
					{Name: "prompt", Type: "string", Description: "Image prompt", Required: true},
					{Name: "width", Type: "number", Description: "Pixel width", Required: false},
					{Name: "height", Type: "number", Description: "Pixel height", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "thumb.usage",
				Name:        "Quota Usage",
				Description: "Report quota consumption",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
		},
	}
}

// Conditions guards generation behind service availability and quota.
func (p *Provider) Conditions(toolID string) []types.Condition {
	service := types.Condition{
		ID:   "service",
		Hint: "enable the thumbnail agent and configure its URL",
		Check: func(ctx context.Context, ictx *types.Context) error {
			if !p.enabled {
				return fmt.Errorf("thumbnail agent disabled")
			}
			return nil
		},
	}
	quota := types.Condition{
		ID:   "quota",
		Hint: "generation quota exhausted, raise the quota or wait for reset",
		Check: func(ctx context.Context, ictx *types.Context) error {
			if p.Remaining() <= 0 {
				return fmt.Errorf("quota exhausted")
			}
			return nil
		},
	}

	if toolID == "thumb.generate" {
		return []types.Condition{service, quota}
	}
	return nil
}

// Remaining returns generations left under the quota.
func (p *Provider) Remaining() int64 {
	return p.quota - p.used.Load()
}

// Execute runs a thumbnail operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, ictx *types.Context) (*types.Result, error) {
	switch toolID {
	case "thumb.generate":
		return p.generate(ctx, params)
	case "thumb.usage":
		return p.usage()
	default:
		return types.Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) generate(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	prompt, err := types.GetString(params, "prompt", true)
	if err != nil {
		return types.Failure(err.Error())
	}
	width, _ := types.GetNumber(params, "width", false)
	height, _ := types.GetNumber(params, "height", false)

	body := map[string]interface{}{"prompt": prompt}
	if width > 0 {
		body["width"] = int(width)
	}
	if height > 0 {
		body["height"] = int(height)
	}

	resp, err := p.client.Execute(ctx, "/v1/generate", body)
	if err != nil {
		return types.Failure(fmt.Sprintf("thumbnail agent call failed: %v", err))
	}
	if err := agents.CheckResponse(resp); err != nil {
		return types.Failure(err.Error())
	}

	data := resp.Body()
	if len(data) == 0 {
		return types.Failure("thumbnail agent returned empty image")
	}

	p.used.Add(1)

	mime := mimetype.Detect(data)

	return types.Success(map[string]interface{}{
		"prompt":       prompt,
		"content_type": mime.String(),
		"extension":    mime.Extension(),
		"size":         len(data),
		"data":         base64.StdEncoding.EncodeToString(data),
	})
}

func (p *Provider) usage() (*types.Result, error) {
	used := p.used.Load()
	return types.Success(map[string]interface{}{
		"enabled":   p.enabled,
		"used":      used,
		"quota":     p.quota,
		"remaining": p.quota - used,
	})
}
