package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StationType identifies a class of interchangeable workstation instances.
type StationType string

// Operation is one node in a ProcessPlan arena. Operations reference each
// other by arena index, never by pointer, so a loaded plan can be shared
// across every order instantiated from it without any copying or locking.
type Operation struct {
	ID        int         // index in the plan arena
	Name      string      // operation name, unique within the plan
	Station   StationType // station type that must execute this operation
	TimeMin   float64     // lower bound of the processing-time distribution
	TimeMax   float64     // upper bound of the processing-time distribution
	Component string      // component yielded on completion ("" = none)
	Revenue   float64     // revenue earned when the component is recovered

	Predecessors []int // all must complete before this operation is ready
	Successors   []int // operations unlocked (in part) by this one

	sampler Sampler // processing-time distribution, drawn at dispatch time
}

// StandardTime returns the standard (expected) processing time of the
// operation, used for workload accounting, backward scheduling, and the
// CR and SPT rules. Actual processing times are sampled at dispatch.
func (op *Operation) StandardTime() float64 {
	return (op.TimeMin + op.TimeMax) / 2
}

// ProcessPlan is an immutable directed acyclic graph of operations
// describing how one product is disassembled. Never mutated after load.
type ProcessPlan struct {
	Name string
	Ops  []Operation

	roots     []int // operations with no predecessors
	terminals []int // operations with no successors
}

// Roots returns the indices of operations that are ready the moment an
// order is released.
func (p *ProcessPlan) Roots() []int { return p.roots }

// Terminals returns the indices of operations with no successors.
func (p *ProcessPlan) Terminals() []int { return p.terminals }

// TotalStandardTime returns the summed standard processing time over all
// operations of the plan.
func (p *ProcessPlan) TotalStandardTime() float64 {
	total := 0.0
	for i := range p.Ops {
		total += p.Ops[i].StandardTime()
	}
	return total
}

// planFile mirrors the on-disk YAML plan catalog.
type planFile struct {
	Plans []planSpec `yaml:"plans"`
}

type planSpec struct {
	Name       string   `yaml:"name"`
	Operations []opSpec `yaml:"operations"`
}

type opSpec struct {
	Name         string   `yaml:"name"`
	Station      string   `yaml:"station"`
	TimeMin      float64  `yaml:"time_min"`
	TimeMax      float64  `yaml:"time_max"`
	Component    string   `yaml:"component,omitempty"`
	Revenue      float64  `yaml:"revenue,omitempty"`
	Predecessors []string `yaml:"predecessors,omitempty"`
}

// LoadPlans reads a YAML plan catalog and builds validated ProcessPlan
// arenas. Precedence edges are given by operation name in the file and
// resolved to arena indices here.
func LoadPlans(path string) ([]*ProcessPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan catalog: %w", err)
	}
	var file planFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing plan catalog: %w", err)
	}
	if len(file.Plans) == 0 {
		return nil, fmt.Errorf("%w: plan catalog %q defines no plans", ErrConfiguration, path)
	}
	plans := make([]*ProcessPlan, 0, len(file.Plans))
	for _, spec := range file.Plans {
		plan, err := buildPlan(spec)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// buildPlan resolves name references, checks acyclicity and assembles the
// operation arena for one plan.
func buildPlan(spec planSpec) (*ProcessPlan, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: plan with empty name", ErrConfiguration)
	}
	index := make(map[string]int, len(spec.Operations))
	for i, op := range spec.Operations {
		if op.Name == "" {
			return nil, fmt.Errorf("%w: plan %q: operation %d has no name", ErrConfiguration, spec.Name, i)
		}
		if _, dup := index[op.Name]; dup {
			return nil, fmt.Errorf("%w: plan %q: duplicate operation %q", ErrConfiguration, spec.Name, op.Name)
		}
		if op.Station == "" {
			return nil, fmt.Errorf("%w: plan %q: operation %q has no station type", ErrConfiguration, spec.Name, op.Name)
		}
		if op.TimeMin <= 0 || op.TimeMax < op.TimeMin {
			return nil, fmt.Errorf("%w: plan %q: operation %q has invalid time range [%v, %v]",
				ErrConfiguration, spec.Name, op.Name, op.TimeMin, op.TimeMax)
		}
		index[op.Name] = i
	}

	plan := &ProcessPlan{Name: spec.Name, Ops: make([]Operation, len(spec.Operations))}
	for i, op := range spec.Operations {
		preds := make([]int, 0, len(op.Predecessors))
		for _, name := range op.Predecessors {
			j, ok := index[name]
			if !ok {
				return nil, fmt.Errorf("%w: plan %q: operation %q references unknown predecessor %q",
					ErrConfiguration, spec.Name, op.Name, name)
			}
			preds = append(preds, j)
		}
		plan.Ops[i] = Operation{
			ID:           i,
			Name:         op.Name,
			Station:      StationType(op.Station),
			TimeMin:      op.TimeMin,
			TimeMax:      op.TimeMax,
			Component:    op.Component,
			Revenue:      op.Revenue,
			Predecessors: preds,
			sampler:      &ErlangSampler{Min: op.TimeMin, Max: op.TimeMax},
		}
	}
	for i := range plan.Ops {
		for _, p := range plan.Ops[i].Predecessors {
			plan.Ops[p].Successors = append(plan.Ops[p].Successors, i)
		}
	}
	if err := plan.checkAcyclic(); err != nil {
		return nil, err
	}
	for i := range plan.Ops {
		if len(plan.Ops[i].Predecessors) == 0 {
			plan.roots = append(plan.roots, i)
		}
		if len(plan.Ops[i].Successors) == 0 {
			plan.terminals = append(plan.terminals, i)
		}
	}
	return plan, nil
}

// checkAcyclic verifies the precedence graph via Kahn's algorithm.
func (p *ProcessPlan) checkAcyclic() error {
	indegree := make([]int, len(p.Ops))
	for i := range p.Ops {
		indegree[i] = len(p.Ops[i].Predecessors)
	}
	queue := make([]int, 0, len(p.Ops))
	for i, d := range indegree {
		if d == 0 {
			queue = append(queue, i)
		}
	}
	visited := 0
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		visited++
		for _, s := range p.Ops[i].Successors {
			indegree[s]--
			if indegree[s] == 0 {
				queue = append(queue, s)
			}
		}
	}
	if visited != len(p.Ops) {
		return fmt.Errorf("%w: plan %q", ErrPlanCycle, p.Name)
	}
	return nil
}

// CheckRouting verifies that every operation of the plan is routed to a
// station type with at least one configured instance.
func (p *ProcessPlan) CheckRouting(instances map[StationType]int) error {
	for i := range p.Ops {
		if instances[p.Ops[i].Station] <= 0 {
			return fmt.Errorf("%w: plan %q: operation %q requires station type %q",
				ErrUnresolvedRouting, p.Name, p.Ops[i].Name, p.Ops[i].Station)
		}
	}
	return nil
}
