package invoker

import (
	"context"
	"testing"

	"github.com/mosaicdesk/bridge/internal/types"
)

type stubProvider struct {
	def types.Service
}

func (s *stubProvider) Definition() types.Service {
	return s.def
}

func (s *stubProvider) Execute(ctx context.Context, toolID string, params map[string]interface{}, ictx *types.Context) (*types.Result, error) {
	return types.Success(map[string]interface{}{"tool": toolID})
}

func stub(id string, category types.Category, tools ...string) *stubProvider {
	def := types.Service{
		ID:       id,
		Name:     id,
		Category: category,
	}
	for _, t := range tools {
		def.Tools = append(def.Tools, types.Tool{ID: id + "." + t, Name: t})
	}
	return &stubProvider{def: def}
}

func TestRegisterAndGet(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(stub("canvas", types.CategoryCanvas, "wave")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, ok := registry.Get("canvas"); !ok {
		t.Error("Expected registered provider to be retrievable")
	}
	if _, ok := registry.Get("ghost"); ok {
		t.Error("Expected missing provider to not be found")
	}
}

func TestRegisterEmptyID(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(&stubProvider{}); err == nil {
		t.Error("Expected error for empty provider ID")
	}
}

func TestUnregister(t *testing.T) {
	registry := NewRegistry()
	registry.Register(stub("scrape", types.CategoryScraper, "page"))
	registry.Unregister("scrape")
	if _, ok := registry.Get("scrape"); ok {
		t.Error("Expected provider to be removed")
	}
}

func TestResolve(t *testing.T) {
	registry := NewRegistry()
	registry.Register(stub("canvas", types.CategoryCanvas, "wave"))

	if _, err := registry.Resolve("canvas.wave"); err != nil {
		t.Errorf("Resolve failed: %v", err)
	}
	if _, err := registry.Resolve("ghost.wave"); err == nil {
		t.Error("Expected error for unknown provider")
	}
	if _, err := registry.Resolve("nodot"); err == nil {
		t.Error("Expected error for ID without a tool segment")
	}
}

func TestListSortedAndFiltered(t *testing.T) {
	registry := NewRegistry()
	registry.Register(stub("thumb", types.CategoryThumbnail, "generate"))
	registry.Register(stub("canvas", types.CategoryCanvas, "wave", "gold_frame"))
	registry.Register(stub("scrape", types.CategoryScraper, "page"))

	all := registry.List(nil)
	if len(all) != 3 {
		t.Fatalf("Expected 3 services, got %d", len(all))
	}
	if all[0].ID != "canvas" || all[2].ID != "thumb" {
		t.Errorf("Expected sorted output, got %v, %v, %v", all[0].ID, all[1].ID, all[2].ID)
	}

	cat := types.CategoryScraper
	scrapers := registry.List(&cat)
	if len(scrapers) != 1 || scrapers[0].ID != "scrape" {
		t.Errorf("Expected only the scraper, got %v", scrapers)
	}
}

func TestDiscover(t *testing.T) {
	registry := NewRegistry()
	canvas := stub("canvas", types.CategoryCanvas, "wave")
	canvas.def.Description = "Apply distortion and frame effects to designs"
	scrape := stub("scrape", types.CategoryScraper, "page")
	scrape.def.Description = "Extract text and links from web pages"
	registry.Register(canvas)
	registry.Register(scrape)

	found := registry.Discover("extract links from a page", 5)
	if len(found) == 0 {
		t.Fatal("Expected at least one match")
	}
	if found[0].ID != "scrape" {
		t.Errorf("Expected scrape ranked first, got %s", found[0].ID)
	}

	limited := registry.Discover("canvas scrape effects links", 1)
	if len(limited) > 1 {
		t.Errorf("Expected at most 1 result, got %d", len(limited))
	}
}

func TestStats(t *testing.T) {
	registry := NewRegistry()
	registry.Register(stub("canvas", types.CategoryCanvas, "wave", "layer"))
	registry.Register(stub("thumb", types.CategoryThumbnail, "generate"))

	stats := registry.Stats()
	if stats["total_providers"] != 2 {
		t.Errorf("Expected 2 providers, got %v", stats["total_providers"])
	}
	if stats["total_tools"] != 3 {
		t.Errorf("Expected 3 tools, got %v", stats["total_tools"])
	}
}
