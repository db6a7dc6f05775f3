package ratelimit

import (
	"fmt"
	"sort"
)

// Named policies shipped with the API.
const (
	PolicySearch  = "search"
	PolicyGeneral = "general"
)

// DefaultSearch allows 60 searches per minute per client.
var DefaultSearch = Config{Limit: 60, WindowSeconds: 60, Identifier: "search-api"}

// DefaultGeneral allows 100 requests per minute per client.
var DefaultGeneral = Config{Limit: 100, WindowSeconds: 60, Identifier: "general-api"}

// Policies is a validated, read-only set of named limit configs.
type Policies struct {
	configs     map[string]Config
	defaultName string
}

// Lookup returns the config registered under name, or the default config
// when name is empty or unknown.
func (p *Policies) Lookup(name string) Config {
	if cfg, ok := p.configs[name]; ok {
		return cfg
	}

	return p.configs[p.defaultName]
}

// Has reports whether a policy named name is registered.
func (p *Policies) Has(name string) bool {
	_, ok := p.configs[name]

	return ok
}

// Names returns the registered policy names in sorted order.
func (p *Policies) Names() []string {
	names := make([]string, 0, len(p.configs))
	for name := range p.configs {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// PolicyBuilder collects named configs and validates them on Build.
type PolicyBuilder struct {
	configs     map[string]Config
	defaultName string
}

// NewPolicyBuilder creates an empty builder whose default is PolicyGeneral.
func NewPolicyBuilder() *PolicyBuilder {
	return &PolicyBuilder{
		configs:     make(map[string]Config),
		defaultName: PolicyGeneral,
	}
}

// Add registers cfg under name, replacing any previous config.
func (b *PolicyBuilder) Add(name string, cfg Config) *PolicyBuilder {
	b.configs[name] = cfg

	return b
}

// Default selects the policy used for unannotated operations.
func (b *PolicyBuilder) Default(name string) *PolicyBuilder {
	b.defaultName = name

	return b
}

// Build validates every config. Misconfiguration is reported here so it
// fails at startup rather than on a request.
func (b *PolicyBuilder) Build() (*Policies, error) {
	configs := make(map[string]Config, len(b.configs))

	for name, cfg := range b.configs {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("policy %q: %w", name, err)
		}

		configs[name] = cfg
	}

	if _, ok := configs[b.defaultName]; !ok {
		return nil, fmt.Errorf("%w: default policy %q is not registered", ErrInvalidConfig, b.defaultName)
	}

	return &Policies{configs: configs, defaultName: b.defaultName}, nil
}

// DefaultPolicies returns the shipped search and general policies.
func DefaultPolicies() *Policies {
	policies, err := NewPolicyBuilder().
		Add(PolicySearch, DefaultSearch).
		Add(PolicyGeneral, DefaultGeneral).
		Build()
	if err != nil {
		panic(err)
	}

	return policies
}
