package workload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeCatalog writes a two-plan catalog for generator tests and returns
// its path.
func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plans.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
plans:
  - name: alpha
    operations:
      - name: a1
        station: A
        time_min: 1
        time_max: 2
      - name: a2
        station: B
        time_min: 1
        time_max: 3
        predecessors: [a1]
  - name: beta
    operations:
      - name: b1
        station: A
        time_min: 0.5
        time_max: 0.5
`), 0o644))
	return path
}

func TestDefaultSpec_IsValid(t *testing.T) {
	assert.NoError(t, DefaultSpec().Validate())
}

func TestSpecValidate_RejectsBadValues(t *testing.T) {
	cases := map[string]func(*Spec){
		"zero orders":           func(s *Spec) { s.TotalOrders = 0 },
		"zero interarrival":     func(s *Spec) { s.InterArrivalMean = 0 },
		"zero slack min":        func(s *Spec) { s.DueDateSlackMin = 0 },
		"slack max below min":   func(s *Spec) { s.DueDateSlackMax = s.DueDateSlackMin - 1 },
		"wrong weight count":    func(s *Spec) { s.PriorityWeights = []float64{0.5, 0.5} },
		"negative weight":       func(s *Spec) { s.PriorityWeights = []float64{-0.1, 0.4, 0.7} },
		"all-zero weights":      func(s *Spec) { s.PriorityWeights = []float64{0, 0, 0} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			spec := DefaultSpec()
			mutate(spec)
			assert.Error(t, spec.Validate())
		})
	}
}

func TestLoadSpec_FileValuesOverrideDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workload.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
total_orders: 12
interarrival_mean: 1.5
`), 0o644))

	spec, err := LoadSpec(path)

	require.NoError(t, err)
	assert.Equal(t, 12, spec.TotalOrders)
	assert.Equal(t, 1.5, spec.InterArrivalMean)
	// Untouched keys keep the defaults.
	assert.Equal(t, 40.0, spec.DueDateSlackMin)
	assert.Equal(t, []float64{0.1, 0.2, 0.7}, spec.PriorityWeights)
}

func TestLoadSpec_MissingFileFails(t *testing.T) {
	_, err := LoadSpec(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
}
