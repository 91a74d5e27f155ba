package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForSubsystem_ReturnsCachedInstance(t *testing.T) {
	// GIVEN a PartitionedRNG
	rng := NewPartitionedRNG(NewSimulationKey(42))

	// WHEN the same subsystem is requested twice
	first := rng.ForSubsystem(SubsystemStation("A"))
	second := rng.ForSubsystem(SubsystemStation("A"))

	// THEN both calls return the identical instance
	assert.Same(t, first, second)
}

func TestForSubsystem_SameKeySameSequence(t *testing.T) {
	// GIVEN two PartitionedRNGs with the same key
	a := NewPartitionedRNG(NewSimulationKey(44))
	b := NewPartitionedRNG(NewSimulationKey(44))

	// WHEN both draw from the same subsystem
	// THEN the sequences are identical
	ra := a.ForSubsystem(SubsystemWorkload)
	rb := b.ForSubsystem(SubsystemWorkload)
	for i := 0; i < 10; i++ {
		assert.Equal(t, ra.Float64(), rb.Float64())
	}
}

func TestForSubsystem_IsolatesSubsystems(t *testing.T) {
	// GIVEN one PartitionedRNG
	rng := NewPartitionedRNG(NewSimulationKey(44))

	// WHEN two different station subsystems draw
	seqA := make([]float64, 5)
	seqB := make([]float64, 5)
	ra := rng.ForSubsystem(SubsystemStation("A"))
	rb := rng.ForSubsystem(SubsystemStation("B"))
	for i := range seqA {
		seqA[i] = ra.Float64()
		seqB[i] = rb.Float64()
	}

	// THEN the streams differ
	assert.NotEqual(t, seqA, seqB)
}

func TestForSubsystem_WorkloadUsesMasterSeedDirectly(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(7))
	plain := NewPartitionedRNG(NewSimulationKey(7))

	got := rng.ForSubsystem(SubsystemWorkload).Float64()
	want := plain.ForSubsystem("workload").Float64()

	assert.Equal(t, want, got)
}

func TestPartitionedRNG_Key(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(99))
	assert.Equal(t, NewSimulationKey(99), rng.Key())
}
