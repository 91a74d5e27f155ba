package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreShopPool_Sequence_IsNonDestructive(t *testing.T) {
	// GIVEN a pool with two orders admitted in arrival order
	plan := singleOpPlan(t, "p", "A", 5)
	pool := &PreShopPool{}
	a := NewOrder("A", plan, 0, 10, 1)
	b := NewOrder("B", plan, 1, 5, 1)
	pool.Admit(a)
	pool.Admit(b)

	// WHEN an EDD view is produced
	view := pool.Sequence(EDDSequencer{}, 0)

	// THEN the view is ranked but the pool keeps admission order
	assert.Equal(t, []*Order{b, a}, view)
	assert.Equal(t, []*Order{a, b}, pool.Orders())
}

func TestPreShopPool_Remove_DeletesOnlyTheGivenOrder(t *testing.T) {
	plan := singleOpPlan(t, "p", "A", 5)
	pool := &PreShopPool{}
	a := NewOrder("A", plan, 0, 10, 1)
	b := NewOrder("B", plan, 1, 5, 1)
	pool.Admit(a)
	pool.Admit(b)

	pool.Remove(a)

	assert.Equal(t, 1, pool.Len())
	assert.Equal(t, b, pool.Orders()[0])
}

func TestFCFSSequencer_RanksByArrivalTime(t *testing.T) {
	plan := singleOpPlan(t, "p", "A", 5)
	late := NewOrder("late", plan, 9, 10, 1)
	early := NewOrder("early", plan, 2, 50, 1)
	orders := []*Order{late, early}

	FCFSSequencer{}.Order(orders, 0)

	assert.Equal(t, []*Order{early, late}, orders)
}

func TestEDDSequencer_RanksByDueDate_TiesByArrival(t *testing.T) {
	plan := singleOpPlan(t, "p", "A", 5)
	a := NewOrder("A", plan, 3, 20, 1)
	b := NewOrder("B", plan, 1, 20, 1)
	c := NewOrder("C", plan, 0, 30, 1)
	orders := []*Order{c, a, b}

	EDDSequencer{}.Order(orders, 0)

	assert.Equal(t, []*Order{b, a, c}, orders)
}

func TestCRSequencer_SmallerRatioFirst(t *testing.T) {
	// GIVEN order A due at 50 with remaining work 10 (ratio 5.0) and
	// order B due at 60 with remaining work 30 (ratio 2.0), at time 0
	a := NewOrder("A", singleOpPlan(t, "pa", "A", 10), 0, 50, 1)
	b := NewOrder("B", singleOpPlan(t, "pb", "A", 30), 0, 60, 1)
	orders := []*Order{a, b}

	// WHEN ranked by critical ratio
	CRSequencer{}.Order(orders, 0)

	// THEN B is sequenced before A: less slack per unit of remaining work
	assert.Equal(t, 5.0, a.CriticalRatio(0))
	assert.Equal(t, 2.0, b.CriticalRatio(0))
	assert.Equal(t, []*Order{b, a}, orders)
}

func TestPoolSequencers_PriorityClassDominatesRuleKey(t *testing.T) {
	// GIVEN a later-due order with a higher priority class (0 beats 1)
	plan := singleOpPlan(t, "p", "A", 5)
	urgentClass := NewOrder("hot", plan, 5, 90, 0)
	earlierDue := NewOrder("cold", plan, 0, 10, 1)

	for _, rule := range []PoolSequencer{FCFSSequencer{}, EDDSequencer{}, CRSequencer{}} {
		orders := []*Order{earlierDue, urgentClass}
		rule.Order(orders, 0)
		assert.Equal(t, urgentClass, orders[0], "rule %T", rule)
	}
}

func TestNewPoolSequencer_KnownNames(t *testing.T) {
	assert.IsType(t, FCFSSequencer{}, NewPoolSequencer("FCFS"))
	assert.IsType(t, FCFSSequencer{}, NewPoolSequencer(""))
	assert.IsType(t, EDDSequencer{}, NewPoolSequencer("EDD"))
	assert.IsType(t, CRSequencer{}, NewPoolSequencer("CR"))
	assert.Panics(t, func() { NewPoolSequencer("LIFO") })
}
