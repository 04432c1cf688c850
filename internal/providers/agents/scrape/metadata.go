package scrape

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mosaicdesk/bridge/internal/types"
)

func (p *Provider) metadata(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	htmlStr, err := p.sourceHTML(ctx, params)
	if err != nil {
		return types.Failure(err.Error())
	}

	doc, err := loadDocument(htmlStr)
	if err != nil {
		return types.Failure(fmt.Sprintf("parse failed: %v", err))
	}

	meta := make(map[string]interface{})
	og := make(map[string]interface{})

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		content, ok := s.Attr("content")
		if !ok {
			return
		}

		if name, ok := s.Attr("name"); ok && name != "" {
			meta[name] = content
			return
		}
		if prop, ok := s.Attr("property"); ok && strings.HasPrefix(prop, "og:") {
			og[strings.TrimPrefix(prop, "og:")] = content
		}
	})

	return types.Success(map[string]interface{}{
		"title":      normalizeWhitespace(doc.Find("title").First().Text()),
		"meta":       meta,
		"open_graph": og,
	})
}
