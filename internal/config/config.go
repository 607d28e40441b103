// YAML topology loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DeviceConfig declares one device of the topology.
type DeviceConfig struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

// LinkConfig declares a connection between two declared devices.
// Bidirectional defaults to true when omitted.
type LinkConfig struct {
	From          string  `yaml:"from"`
	To            string  `yaml:"to"`
	LatencyMs     float64 `yaml:"latency_ms"`
	BandwidthMbps float64 `yaml:"bandwidth_mbps"`
	Reliability   float64 `yaml:"reliability"`
	Bidirectional *bool   `yaml:"bidirectional,omitempty"`
}

// Bidir resolves the bidirectional flag with its default.
func (l LinkConfig) Bidir() bool {
	if l.Bidirectional == nil {
		return true
	}
	return *l.Bidirectional
}

// Flow describes recurring traffic the simulator generates each tick.
type Flow struct {
	Src            string `yaml:"src"`
	Dst            string `yaml:"dst"`
	SizeBytes      int    `yaml:"size_bytes"`
	TTL            int    `yaml:"ttl"`
	PacketsPerTick int    `yaml:"packets_per_tick"`
}

// TopologyConfig is the root configuration: devices, links, and traffic
// flows.
type TopologyConfig struct {
	Name    string         `yaml:"name,omitempty"`
	Devices []DeviceConfig `yaml:"devices"`
	Links   []LinkConfig   `yaml:"links"`
	Flows   []Flow         `yaml:"flows,omitempty"`
}

// Load loads a YAML topology and validates it against a CUE schema first.
func Load(configPath, cueSchemaPath string) (*TopologyConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg TopologyConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Devices) == 0 {
		return nil, fmt.Errorf("topology %s declares no devices", configPath)
	}
	return &cfg, nil
}

// Save writes a topology back to disk as YAML, so an edited or generated
// topology can be reloaded later.
func Save(cfg *TopologyConfig, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal topology: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
