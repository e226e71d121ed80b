package parameter

import (
	"fmt"
	"sort"

	"codeberg.org/mutker/procmon/internal/errors"
)

// Catalog is an ordered, immutable set of parameter configurations.
type Catalog struct {
	configs []Config
	index   map[ID]int
}

// NewCatalog builds a catalog, rejecting duplicate IDs and invalid bands.
func NewCatalog(configs []Config) (*Catalog, error) {
	errFactory := errors.New()

	c := &Catalog{
		configs: make([]Config, len(configs)),
		index:   make(map[ID]int, len(configs)),
	}
	copy(c.configs, configs)

	for i, cfg := range c.configs {
		if _, dup := c.index[cfg.ID]; dup {
			return nil, errFactory.WithData(ErrInvalidOverride, fmt.Sprintf("duplicate parameter %q", cfg.ID))
		}
		if err := cfg.Band.Validate(); err != nil {
			return nil, errFactory.Wrap(ErrInvalidOverride, err).
				WithMessage(fmt.Sprintf("parameter %q", cfg.ID))
		}
		c.index[cfg.ID] = i
	}

	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := NewCatalog(defaultConfigs)
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns the configuration for id.
func (c *Catalog) Get(id ID) (Config, error) {
	i, ok := c.index[id]
	if !ok {
		return Config{}, errors.New().WithData(ErrUnknownParameter, string(id))
	}
	return c.configs[i], nil
}

// MustGet is Get for IDs known to be present.
func (c *Catalog) MustGet(id ID) Config {
	cfg, err := c.Get(id)
	if err != nil {
		panic(err)
	}
	return cfg
}

// All returns every configuration in catalog order.
func (c *Catalog) All() []Config {
	out := make([]Config, len(c.configs))
	copy(out, c.configs)
	return out
}

// ByKind returns the configurations of one kind in catalog order.
func (c *Catalog) ByKind(kind Kind) []Config {
	var out []Config
	for _, cfg := range c.configs {
		if cfg.Kind == kind {
			out = append(out, cfg)
		}
	}
	return out
}

// WithOverrides returns a new catalog with overrides applied. Keys are
// parameter IDs and are matched case-insensitively, since config keys are
// lowercased on load.
func (c *Catalog) WithOverrides(overrides map[string]Override) (*Catalog, error) {
	if len(overrides) == 0 {
		return c, nil
	}

	byKey := make(map[string]int, len(c.configs))
	for i, cfg := range c.configs {
		byKey[normalizeKey(string(cfg.ID))] = i
	}

	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	configs := c.All()
	for _, key := range keys {
		i, ok := byKey[normalizeKey(key)]
		if !ok {
			return nil, errors.New().WithData(ErrUnknownParameter, key)
		}
		configs[i] = overrides[key].apply(configs[i])
	}

	return NewCatalog(configs)
}
