package providers

import (
	"github.com/mosaicdesk/bridge/internal/config"
	"github.com/mosaicdesk/bridge/internal/invoker"
	"github.com/mosaicdesk/bridge/internal/providers/agents"
	"github.com/mosaicdesk/bridge/internal/providers/agents/book"
	"github.com/mosaicdesk/bridge/internal/providers/agents/scrape"
	"github.com/mosaicdesk/bridge/internal/providers/agents/thumb"
	"github.com/mosaicdesk/bridge/internal/providers/canvas"
)

// BuildRegistry wires every capability provider from configuration. The
// canvas host is injected by the caller since the studio connection is
// owned by the embedding process.
func BuildRegistry(cfg *config.Config, host canvas.Host) (*invoker.Registry, error) {
	rps := 0.0
	if cfg.RateLimit.Enabled {
		rps = cfg.RateLimit.RequestsPerSecond
	}

	bookClient := agents.NewClient(cfg.Agents.BookURL, cfg.Agents.APIKey, rps)
	scrapeClient := agents.NewClient("", cfg.Agents.APIKey, rps)
	thumbClient := agents.NewClient(cfg.Agents.ThumbURL, cfg.Agents.APIKey, rps)

	registry := invoker.NewRegistry()
	all := []invoker.Provider{
		canvas.NewProvider(host),
		book.NewProvider(bookClient, cfg.Agents.BookURL != ""),
		scrape.NewProvider(scrapeClient, cfg.Agents.ScrapeOn),
		thumb.NewProvider(thumbClient, cfg.Agents.ThumbURL != "", cfg.Agents.Quota),
	}

	for _, p := range all {
		if err := registry.Register(p); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
