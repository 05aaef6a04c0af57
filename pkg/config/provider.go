// Package config loads glazecalc configuration from YAML files or SQLite
// databases behind a common provider interface.
package config

import "fmt"

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetServerConfig() (*ServerData, error)
	GetDefaults() (*DefaultsData, error)
	GetPresets() ([]PresetData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Server   ServerData   `json:"server"`
	Defaults DefaultsData `json:"defaults,omitempty"`
	Presets  []PresetData `json:"presets,omitempty"`
}

// ServerData holds the REST server settings
type ServerData struct {
	ListenAddr   string `json:"listen_addr,omitempty"`
	Port         int    `json:"port"`
	ReadTimeout  int    `json:"read_timeout,omitempty"`  // seconds
	WriteTimeout int    `json:"write_timeout,omitempty"` // seconds
}

// DefaultsData holds estimation policy applied when a request leaves a
// field unspecified
type DefaultsData struct {
	Preset              string  `json:"preset,omitempty"`
	RecessEffectiveness float64 `json:"recess_effectiveness,omitempty"`
	StrictAreas         bool    `json:"strict_areas,omitempty"`
}

// PresetData is a named reference calibration configured by the operator,
// merged over the built-in presets at startup
type PresetData struct {
	Name    string  `json:"name"`
	GlassU1 float64 `json:"glass_u1"`
	TotalU1 float64 `json:"total_u1"`
	GlassU2 float64 `json:"glass_u2"`
	TotalU2 float64 `json:"total_u2"`
	Unit    string  `json:"unit"` // "BTU" or "W"
}

// Validate checks a configured preset for the invariants the solver needs.
func (p PresetData) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("preset has no name")
	}
	if p.GlassU1 <= 0 || p.GlassU2 <= 0 || p.TotalU1 <= 0 || p.TotalU2 <= 0 {
		return fmt.Errorf("preset %q: all reference U-values must be positive", p.Name)
	}
	if p.GlassU1 == p.GlassU2 {
		return fmt.Errorf("preset %q: reference glass U-values must differ", p.Name)
	}
	return nil
}
