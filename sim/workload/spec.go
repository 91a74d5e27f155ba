// Package workload generates the stochastic order feed consumed by the
// simulation core. It is an input collaborator: the core sees only the
// resulting orders, supplied in arrival-time order.
package workload

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Spec is the order-generation configuration, loadable from YAML.
type Spec struct {
	TotalOrders       int     `yaml:"total_orders"`
	InterArrivalMean  float64 `yaml:"interarrival_mean"`
	DueDateSlackMin   float64 `yaml:"due_slack_min"`
	DueDateSlackMax   float64 `yaml:"due_slack_max"`
	// PriorityWeights are the probabilities of priority classes 0, 1, 2.
	// They must sum to 1.
	PriorityWeights []float64 `yaml:"priority_weights"`
}

// DefaultSpec returns the reference scenario feed: 70 orders, exponential
// inter-arrival with mean 0.648, due dates 40-50 time units out.
func DefaultSpec() *Spec {
	return &Spec{
		TotalOrders:      70,
		InterArrivalMean: 0.648,
		DueDateSlackMin:  40,
		DueDateSlackMax:  50,
		PriorityWeights:  []float64{0.1, 0.2, 0.7},
	}
}

// LoadSpec reads a YAML workload spec over the defaults.
func LoadSpec(path string) (*Spec, error) {
	spec := DefaultSpec()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	return spec, nil
}

// Validate checks parameter ranges.
func (s *Spec) Validate() error {
	if s.TotalOrders <= 0 {
		return fmt.Errorf("total_orders must be positive, got %d", s.TotalOrders)
	}
	if s.InterArrivalMean <= 0 {
		return fmt.Errorf("interarrival_mean must be positive, got %v", s.InterArrivalMean)
	}
	if s.DueDateSlackMin <= 0 || s.DueDateSlackMax < s.DueDateSlackMin {
		return fmt.Errorf("invalid due-date slack range [%v, %v]", s.DueDateSlackMin, s.DueDateSlackMax)
	}
	if len(s.PriorityWeights) != 3 {
		return fmt.Errorf("priority_weights must have 3 entries, got %d", len(s.PriorityWeights))
	}
	sum := 0.0
	for _, w := range s.PriorityWeights {
		if w < 0 {
			return fmt.Errorf("priority weight must not be negative, got %v", w)
		}
		sum += w
	}
	if sum <= 0 {
		return fmt.Errorf("priority weights sum to zero")
	}
	return nil
}
