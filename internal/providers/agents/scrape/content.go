package scrape

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mosaicdesk/bridge/internal/types"
)

func (p *Provider) page(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	url, err := types.GetString(params, "url", true)
	if err != nil {
		return types.Failure(err.Error())
	}

	htmlStr, err := p.fetch(ctx, url)
	if err != nil {
		return types.Failure(err.Error())
	}

	doc, err := loadDocument(htmlStr)
	if err != nil {
		return types.Failure(fmt.Sprintf("parse failed: %v", err))
	}

	title := normalizeWhitespace(doc.Find("title").First().Text())

	// Text from sanitized body only, scripts and styles stripped by policy.
	body := p.ops.sanitize(htmlStr)
	bodyDoc, err := loadDocument("<html><body>" + body + "</body></html>")
	text := ""
	if err == nil {
		text = truncateText(normalizeWhitespace(bodyDoc.Text()), maxTextLength)
	}

	links := extractLinks(doc)

	keywords, hasKeywords := types.GetStringSlice(params, "keywords")
	items := links
	if hasKeywords {
		items = filterByKeywords(links, keywords)
	}

	return types.Success(map[string]interface{}{
		"url":   url,
		"title": title,
		"text":  text,
		"items": toInterfaceSlice(items),
	})
}

func (p *Provider) selectCSS(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	selector, err := types.GetString(params, "selector", true)
	if err != nil {
		return types.Failure(err.Error())
	}

	htmlStr, err := p.sourceHTML(ctx, params)
	if err != nil {
		return types.Failure(err.Error())
	}

	doc, err := loadDocument(htmlStr)
	if err != nil {
		return types.Failure(fmt.Sprintf("parse failed: %v", err))
	}

	var matches []interface{}
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		entry := map[string]interface{}{
			"text": normalizeWhitespace(s.Text()),
		}
		if href, ok := s.Attr("href"); ok {
			entry["href"] = href
		}
		if src, ok := s.Attr("src"); ok {
			entry["src"] = src
		}
		matches = append(matches, entry)
	})

	return types.Success(map[string]interface{}{
		"selector": selector,
		"count":    len(matches),
		"matches":  matches,
	})
}

type link struct {
	Text string
	Href string
}

func extractLinks(doc *goquery.Document) []link {
	var links []link
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href == "" || strings.HasPrefix(href, "javascript:") || seen[href] {
			return
		}
		seen[href] = true
		links = append(links, link{
			Text: normalizeWhitespace(s.Text()),
			Href: href,
		})
	})

	return links
}

func filterByKeywords(links []link, keywords []string) []link {
	if len(keywords) == 0 {
		return []link{}
	}

	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}

	var out []link
	for _, l := range links {
		haystack := strings.ToLower(l.Text + " " + l.Href)
		for _, k := range lowered {
			if strings.Contains(haystack, k) {
				out = append(out, l)
				break
			}
		}
	}
	return out
}

func toInterfaceSlice(links []link) []interface{} {
	out := make([]interface{}, 0, len(links))
	for _, l := range links {
		out = append(out, map[string]interface{}{
			"text": l.Text,
			"href": l.Href,
		})
	}
	return out
}
