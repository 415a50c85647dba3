package taxyear

import (
	"sort"
	"sync"

	taxyearerrors "github.com/kashiee/HRMS/internal/taxyear/errors"
)

// Registry holds the known tax year tables. It is instance-scoped on
// purpose: there is no package-level "current year", every calculation
// names the year it runs under.
type Registry struct {
	mu      sync.RWMutex
	configs map[string]*Config
}

// NewRegistry builds a registry pre-loaded with the built-in years.
func NewRegistry() *Registry {
	r := &Registry{configs: make(map[string]*Config)}
	for _, cfg := range builtinConfigs() {
		// Built-in tables are fixed at compile time; a failure here is a
		// programming error.
		if err := r.Register(cfg); err != nil {
			panic(err)
		}
	}
	return r
}

// Register validates and adds a tax year table. Re-registering a year
// replaces its table, which is how YAML files override built-ins.
func (r *Registry) Register(cfg *Config) error {
	if cfg == nil {
		return taxyearerrors.InvalidConfig("config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[cfg.Year] = cfg
	return nil
}

// Get returns the table for one tax year.
func (r *Registry) Get(year string) (*Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.configs[year]
	if !ok {
		return nil, taxyearerrors.UnknownTaxYear(year)
	}
	return cfg, nil
}

// Years lists the registered tax years in ascending order.
func (r *Registry) Years() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	years := make([]string, 0, len(r.configs))
	for year := range r.configs {
		years = append(years, year)
	}
	sort.Strings(years)
	return years
}
