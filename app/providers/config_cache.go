package providers

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// ConfigCache holds the parsed providers file. The file lists providers
// in fan-out order; that order is what makes downstream deduplication
// deterministic, so it is preserved everywhere.
type ConfigCache struct {
	path  string
	mu    sync.RWMutex
	order []string
	cache map[string]*Config
}

func NewConfigCache(path string) *ConfigCache {
	return &ConfigCache{
		path:  path,
		cache: make(map[string]*Config),
	}
}

func (cc *ConfigCache) Run() error {
	data, err := os.ReadFile(cc.path)
	if err != nil {
		return fmt.Errorf("failed to read providers file: %w", err)
	}

	var parsed configFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse providers file: %w", err)
	}

	order := make([]string, 0, len(parsed.Providers))
	cache := make(map[string]*Config, len(parsed.Providers))

	for i, providerConfig := range parsed.Providers {
		if err := validateConfig(providerConfig); err != nil {
			return fmt.Errorf("invalid provider at index %d: %w", i, err)
		}
		if _, ok := cache[providerConfig.Name]; ok {
			return fmt.Errorf("duplicate provider name: %s", providerConfig.Name)
		}

		order = append(order, providerConfig.Name)
		cache[providerConfig.Name] = providerConfig

		slog.Debug("Provider configuration loaded", "provider", providerConfig.Name,
			"enabled", providerConfig.Enabled, "timeout", providerConfig.Timeout)
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.order = order
	cc.cache = cache

	return nil
}

func (cc *ConfigCache) GetConfig(name string) (*Config, error) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	providerConfig, ok := cc.cache[name]
	if !ok {
		return nil, fmt.Errorf("provider config with name '%s' not found", name)
	}
	return providerConfig, nil
}

// EnabledNames returns enabled provider names in configured order.
func (cc *ConfigCache) EnabledNames() []string {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	names := make([]string, 0, len(cc.order))
	for _, name := range cc.order {
		if cc.cache[name].Enabled {
			names = append(names, name)
		}
	}
	return names
}

// Names returns all configured provider names in configured order.
func (cc *ConfigCache) Names() []string {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	names := make([]string, len(cc.order))
	copy(names, cc.order)
	return names
}

func (cc *ConfigCache) GetConfigCount() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.cache)
}

func validateConfig(providerConfig *Config) error {
	if providerConfig == nil {
		return fmt.Errorf("provider entry is empty")
	}
	if providerConfig.Name == "" {
		return fmt.Errorf("provider name is required")
	}
	if providerConfig.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	return nil
}
