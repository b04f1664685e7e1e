package plugin

import (
	"os"

	"gopkg.in/yaml.v3"

	"DevKit/internal/errors"
)

// ManagerConfig describes the plugins a manager should accept and the
// configuration block handed to each of them.
type ManagerConfig struct {
	Plugins map[string]PluginConfig `yaml:"plugins"`
}

// PluginConfig is the configuration block for a single plugin instance.
type PluginConfig struct {
	Enabled bool           `yaml:"enabled"`
	Config  map[string]any `yaml:"config"`
}

// LoadManagerConfig reads a YAML file into a ManagerConfig.
func LoadManagerConfig(path string) (ManagerConfig, error) {
	var cfg ManagerConfig
	if path == "" {
		return cfg, errors.New(errors.CodeMissingArgument, "config path cannot be empty")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.CodeNotFound, err, "read plugin config")
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.Wrap(errors.CodeInvalidArgument, err, "unmarshal plugin config")
	}
	if cfg.Plugins == nil {
		cfg.Plugins = map[string]PluginConfig{}
	}
	return cfg, nil
}

// Validate ensures the manager configuration is internally consistent.
func (c ManagerConfig) Validate() error {
	for id := range c.Plugins {
		if id == "" {
			return errors.New(errors.CodeInvalidArgument, "plugin id cannot be empty")
		}
	}
	return nil
}

// blockFor merges the declared configuration block for id over the supplied
// map. A block that explicitly disables the plugin rejects registration.
func (c ManagerConfig) blockFor(id string, cfg map[string]any) (map[string]any, error) {
	merged := make(map[string]any, len(cfg))
	for k, v := range cfg {
		merged[k] = v
	}
	block, ok := c.Plugins[id]
	if !ok {
		return merged, nil
	}
	if !block.Enabled {
		return nil, errors.Newf(errors.CodeConflict, "plugin %s is disabled by configuration", id)
	}
	for k, v := range block.Config {
		merged[k] = v
	}
	return merged, nil
}
