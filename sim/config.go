package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every knob the simulation core recognizes. It is threaded
// explicitly through the release control and workstation constructors;
// there is no ambient global rule state, so parallel replications with
// different configs never interfere.
type Config struct {
	PoolRule     string `yaml:"pool_rule"`     // FCFS, EDD or CR
	DispatchRule string `yaml:"dispatch_rule"` // FCFS, SPT or PST

	WorkloadNorm float64                 `yaml:"workload_norm"`           // global corrected-load bound per station type
	StationNorms map[StationType]float64 `yaml:"station_norms,omitempty"` // per-type overrides of WorkloadNorm

	ReviewInterval float64 `yaml:"review_interval"` // time between release reviews
	Horizon        float64 `yaml:"horizon"`         // simulation end time
	Seed           int64   `yaml:"seed"`

	Stations map[StationType]int `yaml:"stations"` // instance count per station type

	// PlannedStartAllowance is the planned inter-operation waiting time used
	// by PCAW backward scheduling.
	PlannedStartAllowance float64 `yaml:"planned_start_allowance"`

	// CorrectionExponent shapes the LUMS-COR distance discount: an
	// operation at depth d from the frontier contributes standard time
	// divided by d^exponent. Exponent 1 is the classic corrected load.
	CorrectionExponent float64 `yaml:"correction_exponent"`

	// StalenessBound is the number of consecutive reviews an order may be
	// load-blocked before the safety valve releases it anyway at a capped
	// overload. 0 disables forced release.
	StalenessBound int `yaml:"staleness_bound"`

	CostPerTimeUnit float64 `yaml:"cost_per_time_unit"`
}

// DefaultConfig returns the baseline shop configuration: five station
// types with the instance mix from the reference scenario, workload norm
// 10, review every 4 time units.
func DefaultConfig() *Config {
	return &Config{
		PoolRule:              "FCFS",
		DispatchRule:          "FCFS",
		WorkloadNorm:          10,
		ReviewInterval:        4,
		Horizon:               100,
		Seed:                  44,
		Stations:              map[StationType]int{"A": 2, "B": 2, "C": 2, "D": 3, "E": 1},
		PlannedStartAllowance: 0.2,
		CorrectionExponent:    1,
		StalenessBound:        0,
		CostPerTimeUnit:       10,
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Validate checks rule names and parameter ranges. Any violation is fatal
// at startup; no partial run is started.
func (c *Config) Validate() error {
	if !IsValidPoolRule(c.PoolRule) {
		return fmt.Errorf("%w: unknown pool sequencing rule %q", ErrConfiguration, c.PoolRule)
	}
	if !IsValidDispatchRule(c.DispatchRule) {
		return fmt.Errorf("%w: unknown dispatching rule %q", ErrConfiguration, c.DispatchRule)
	}
	if c.WorkloadNorm <= 0 {
		return fmt.Errorf("%w: workload norm must be positive, got %v", ErrConfiguration, c.WorkloadNorm)
	}
	for t, n := range c.StationNorms {
		if n <= 0 {
			return fmt.Errorf("%w: station norm for %q must be positive, got %v", ErrConfiguration, t, n)
		}
	}
	if c.ReviewInterval <= 0 {
		return fmt.Errorf("%w: review interval must be positive, got %v", ErrConfiguration, c.ReviewInterval)
	}
	if c.Horizon <= 0 {
		return fmt.Errorf("%w: horizon must be positive, got %v", ErrConfiguration, c.Horizon)
	}
	if len(c.Stations) == 0 {
		return fmt.Errorf("%w: no station types configured", ErrConfiguration)
	}
	for t, n := range c.Stations {
		if n <= 0 {
			return fmt.Errorf("%w: station type %q has non-positive instance count %d", ErrConfiguration, t, n)
		}
	}
	if c.PlannedStartAllowance < 0 {
		return fmt.Errorf("%w: planned start allowance must not be negative", ErrConfiguration)
	}
	if c.CorrectionExponent < 0 {
		return fmt.Errorf("%w: correction exponent must not be negative", ErrConfiguration)
	}
	if c.StalenessBound < 0 {
		return fmt.Errorf("%w: staleness bound must not be negative", ErrConfiguration)
	}
	return nil
}

// NormFor returns the workload norm for a station type: the per-type
// override if present, else the global norm.
func (c *Config) NormFor(t StationType) float64 {
	if n, ok := c.StationNorms[t]; ok {
		return n
	}
	return c.WorkloadNorm
}
