package scrape

import (
	"context"
	"fmt"

	"github.com/antchfx/htmlquery"

	"github.com/mosaicdesk/bridge/internal/types"
)

func (p *Provider) xpath(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	query, err := types.GetString(params, "query", true)
	if err != nil {
		return types.Failure(err.Error())
	}

	htmlStr, err := p.sourceHTML(ctx, params)
	if err != nil {
		return types.Failure(err.Error())
	}

	root, err := loadNode(htmlStr)
	if err != nil {
		return types.Failure(fmt.Sprintf("parse failed: %v", err))
	}

	nodes, err := htmlquery.QueryAll(root, query)
	if err != nil {
		return types.Failure(fmt.Sprintf("invalid xpath: %v", err))
	}

	texts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		texts = append(texts, normalizeWhitespace(htmlquery.InnerText(n)))
	}
	texts = deduplicate(texts)

	results := make([]interface{}, 0, len(texts))
	for _, t := range texts {
		results = append(results, t)
	}

	return types.Success(map[string]interface{}{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}
