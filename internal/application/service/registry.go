package service

import (
	"fmt"
	"sort"
	"strings"

	"ecofin-advisor/internal/application/port/output"
	"ecofin-advisor/internal/domain/entity"
)

// ProviderFactory builds a generator from its configuration.
type ProviderFactory func(cfg output.ProviderConfig) (output.GeneratorPort, error)

type ProviderRegistry struct {
	factories map[string]ProviderFactory
}

func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		factories: make(map[string]ProviderFactory),
	}
}

func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.factories[strings.ToLower(name)] = factory
}

func (r *ProviderRegistry) Has(name string) bool {
	_, ok := r.factories[strings.ToLower(name)]
	return ok
}

// Build instantiates the provider registered under cfg.Name.
func (r *ProviderRegistry) Build(cfg output.ProviderConfig) (output.GeneratorPort, error) {
	factory, ok := r.factories[strings.ToLower(cfg.Name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", entity.ErrUnknownProvider, cfg.Name, strings.Join(r.Names(), ", "))
	}

	gen, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("build provider %s: %w", cfg.Name, err)
	}
	return gen, nil
}

func (r *ProviderRegistry) Names() []string {
	result := make([]string, 0, len(r.factories))
	for name := range r.factories {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}
