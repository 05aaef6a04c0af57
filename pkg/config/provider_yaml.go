package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// yamlConfig mirrors ConfigData with YAML tags
type yamlConfig struct {
	Server   serverYAML   `yaml:"server"`
	Defaults defaultsYAML `yaml:"defaults,omitempty"`
	Presets  []presetYAML `yaml:"presets,omitempty"`
}

type serverYAML struct {
	ListenAddr   string `yaml:"listen_addr,omitempty"`
	Port         int    `yaml:"port"`
	ReadTimeout  int    `yaml:"read_timeout,omitempty"`
	WriteTimeout int    `yaml:"write_timeout,omitempty"`
}

type defaultsYAML struct {
	Preset              string  `yaml:"preset,omitempty"`
	RecessEffectiveness float64 `yaml:"recess_effectiveness,omitempty"`
	StrictAreas         bool    `yaml:"strict_areas,omitempty"`
}

type presetYAML struct {
	Name    string  `yaml:"name"`
	GlassU1 float64 `yaml:"glass_u1"`
	TotalU1 float64 `yaml:"total_u1"`
	GlassU2 float64 `yaml:"glass_u2"`
	TotalU2 float64 `yaml:"total_u2"`
	Unit    string  `yaml:"unit"`
}

// LoadConfig loads the complete configuration from the YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	var raw yamlConfig
	if err := yaml.Unmarshal(cfgFile, &raw); err != nil {
		return nil, err
	}

	config := &ConfigData{
		Server: ServerData{
			ListenAddr:   raw.Server.ListenAddr,
			Port:         raw.Server.Port,
			ReadTimeout:  raw.Server.ReadTimeout,
			WriteTimeout: raw.Server.WriteTimeout,
		},
		Defaults: DefaultsData{
			Preset:              raw.Defaults.Preset,
			RecessEffectiveness: raw.Defaults.RecessEffectiveness,
			StrictAreas:         raw.Defaults.StrictAreas,
		},
		Presets: make([]PresetData, len(raw.Presets)),
	}

	for i, p := range raw.Presets {
		config.Presets[i] = PresetData{
			Name:    p.Name,
			GlassU1: p.GlassU1,
			TotalU1: p.TotalU1,
			GlassU2: p.GlassU2,
			TotalU2: p.TotalU2,
			Unit:    p.Unit,
		}
		if err := config.Presets[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid preset in %s: %w", y.filename, err)
		}
	}

	y.config = config
	return config, nil
}

// GetServerConfig returns the server section
func (y *YAMLProvider) GetServerConfig() (*ServerData, error) {
	if err := y.ensureLoaded(); err != nil {
		return nil, err
	}
	server := y.config.Server
	return &server, nil
}

// GetDefaults returns the estimation defaults section
func (y *YAMLProvider) GetDefaults() (*DefaultsData, error) {
	if err := y.ensureLoaded(); err != nil {
		return nil, err
	}
	defaults := y.config.Defaults
	return &defaults, nil
}

// GetPresets returns the operator-configured calibration presets
func (y *YAMLProvider) GetPresets() ([]PresetData, error) {
	if err := y.ensureLoaded(); err != nil {
		return nil, err
	}
	return append([]PresetData(nil), y.config.Presets...), nil
}

// IsReadOnly returns true; YAML configurations are never written back
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML providers
func (y *YAMLProvider) Close() error {
	return nil
}

func (y *YAMLProvider) ensureLoaded() error {
	if y.config != nil {
		return nil
	}
	_, err := y.LoadConfig()
	return err
}
