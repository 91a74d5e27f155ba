package sim

import (
	"fmt"
	"sort"
)

// PreShopPool buffers orders between arrival and release. Orders enter in
// arrival sequence with no constraint check; the release control removes
// them on successful release.
type PreShopPool struct {
	orders []*Order
}

// Admit inserts an order in arrival sequence.
func (p *PreShopPool) Admit(o *Order) {
	p.orders = append(p.orders, o)
}

// Remove deletes an order from the pool. Called only by the order release
// control on successful release.
func (p *PreShopPool) Remove(o *Order) {
	for i, cur := range p.orders {
		if cur == o {
			p.orders = append(p.orders[:i], p.orders[i+1:]...)
			return
		}
	}
}

// Len returns the number of pooled orders.
func (p *PreShopPool) Len() int { return len(p.orders) }

// Orders returns the pool contents in admission sequence. The returned
// slice is the pool's internal storage; callers must not mutate it.
func (p *PreShopPool) Orders() []*Order { return p.orders }

// Sequence returns an ordered view of the pool ranked by the given
// sequencing rule. Non-destructive: the pool keeps admission order.
func (p *PreShopPool) Sequence(rule PoolSequencer, now float64) []*Order {
	view := append([]*Order(nil), p.orders...)
	rule.Order(view, now)
	return view
}

// PoolSequencer ranks pooled orders for release consideration.
// Implementations sort the slice in-place using sort.SliceStable for
// determinism. Priority class (0 highest) dominates every rule key.
type PoolSequencer interface {
	Order(orders []*Order, now float64)
}

// FCFSSequencer ranks orders by ascending arrival time.
type FCFSSequencer struct{}

func (FCFSSequencer) Order(orders []*Order, _ float64) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].Priority != orders[j].Priority {
			return orders[i].Priority < orders[j].Priority
		}
		if orders[i].ArrivalTime != orders[j].ArrivalTime {
			return orders[i].ArrivalTime < orders[j].ArrivalTime
		}
		return orders[i].ID < orders[j].ID
	})
}

// EDDSequencer ranks orders by ascending due date, ties broken by arrival
// time.
type EDDSequencer struct{}

func (EDDSequencer) Order(orders []*Order, _ float64) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].Priority != orders[j].Priority {
			return orders[i].Priority < orders[j].Priority
		}
		if orders[i].DueDate != orders[j].DueDate {
			return orders[i].DueDate < orders[j].DueDate
		}
		if orders[i].ArrivalTime != orders[j].ArrivalTime {
			return orders[i].ArrivalTime < orders[j].ArrivalTime
		}
		return orders[i].ID < orders[j].ID
	})
}

// CRSequencer ranks orders by ascending critical ratio
// (due date - now) / remaining standard work. A smaller ratio means less
// slack per unit of remaining work, so it is sequenced first.
type CRSequencer struct{}

func (CRSequencer) Order(orders []*Order, now float64) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].Priority != orders[j].Priority {
			return orders[i].Priority < orders[j].Priority
		}
		ri, rj := orders[i].CriticalRatio(now), orders[j].CriticalRatio(now)
		if ri != rj {
			return ri < rj
		}
		if orders[i].ArrivalTime != orders[j].ArrivalTime {
			return orders[i].ArrivalTime < orders[j].ArrivalTime
		}
		return orders[i].ID < orders[j].ID
	})
}

// validPoolRules is the set of recognized pool-sequencing rule names.
var validPoolRules = map[string]bool{"": true, "FCFS": true, "EDD": true, "CR": true}

// IsValidPoolRule returns true if name is a recognized pool-sequencing rule.
func IsValidPoolRule(name string) bool { return validPoolRules[name] }

// NewPoolSequencer creates a PoolSequencer by name. Empty string defaults
// to FCFS. Panics on unrecognized names; Config.Validate rejects them
// before a simulator is ever built.
func NewPoolSequencer(name string) PoolSequencer {
	switch name {
	case "", "FCFS":
		return FCFSSequencer{}
	case "EDD":
		return EDDSequencer{}
	case "CR":
		return CRSequencer{}
	default:
		panic(fmt.Sprintf("unknown pool sequencing rule %q", name))
	}
}
