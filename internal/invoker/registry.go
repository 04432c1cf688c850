package invoker

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mosaicdesk/bridge/internal/types"
)

// Provider interface for capability implementations
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, params map[string]interface{}, ictx *types.Context) (*types.Result, error)
}

// Guarded is implemented by providers whose operations require ambient
// host or service state. Conditions are evaluated in declaration order
// before the provider is called.
type Guarded interface {
	Conditions(toolID string) []types.Condition
}

// Registry manages capability discovery and routing
type Registry struct {
	providers sync.Map
}

// NewRegistry creates a new capability registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a capability provider
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("provider ID cannot be empty")
	}

	r.providers.Store(def.ID, provider)
	return nil
}

// Unregister removes a capability provider
func (r *Registry) Unregister(providerID string) {
	r.providers.Delete(providerID)
}

// Get retrieves a provider by ID
func (r *Registry) Get(providerID string) (Provider, bool) {
	val, ok := r.providers.Load(providerID)
	if !ok {
		return nil, false
	}
	return val.(Provider), true
}

// Resolve splits a "provider.tool" capability ID and returns its provider.
func (r *Registry) Resolve(capability string) (Provider, error) {
	parts := strings.SplitN(capability, ".", 2)
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid capability ID format: %s", capability)
	}

	provider, ok := r.Get(parts[0])
	if !ok {
		return nil, fmt.Errorf("provider not found: %s", parts[0])
	}
	return provider, nil
}

// List returns all registered capability definitions
func (r *Registry) List(category *types.Category) []types.Service {
	var services []types.Service
	r.providers.Range(func(_, value interface{}) bool {
		provider := value.(Provider)
		def := provider.Definition()
		if category == nil || def.Category == *category {
			services = append(services, def)
		}
		return true
	})

	sort.Slice(services, func(i, j int) bool {
		return services[i].ID < services[j].ID
	})
	return services
}

// Discover finds relevant capabilities for a given intent
func (r *Registry) Discover(intent string, limit int) []types.Service {
	type scored struct {
		service types.Service
		score   float64
	}

	intentLower := strings.ToLower(intent)
	var results []scored

	r.providers.Range(func(_, value interface{}) bool {
		provider := value.(Provider)
		def := provider.Definition()
		score := r.calculateRelevance(intentLower, def)
		if score > 0 {
			results = append(results, scored{service: def, score: score})
		}
		return true
	})

	sort.Slice(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	output := make([]types.Service, 0, limit)
	for i := 0; i < len(results) && i < limit; i++ {
		output = append(output, results[i].service)
	}

	return output
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	var total, totalTools int
	categories := make(map[string]int)

	r.providers.Range(func(_, value interface{}) bool {
		provider := value.(Provider)
		def := provider.Definition()
		total++
		totalTools += len(def.Tools)
		categories[string(def.Category)]++
		return true
	})

	return map[string]interface{}{
		"total_providers": total,
		"total_tools":     totalTools,
		"categories":      categories,
	}
}

func (r *Registry) calculateRelevance(intent string, service types.Service) float64 {
	score := 0.0

	if strings.Contains(intent, service.ID) || strings.Contains(intent, strings.ToLower(service.Name)) {
		score += 10.0
	}

	descWords := strings.Fields(strings.ToLower(service.Description))
	for _, word := range descWords {
		if strings.Contains(intent, word) {
			score += 5.0
		}
	}

	for _, cap := range service.Capabilities {
		capClean := strings.ReplaceAll(strings.ToLower(cap), "_", " ")
		if strings.Contains(intent, capClean) {
			score += 3.0
		}
	}

	if strings.Contains(intent, string(service.Category)) {
		score += 2.0
	}

	return score
}
