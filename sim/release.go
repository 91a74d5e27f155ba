package sim

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/shopfloor-sim/shopfloor-sim/sim/trace"
)

// ReleaseControl is the periodic LUMS-COR gatekeeper between the pre-shop
// pool and the shop floor. At every review it ranks the pool by the active
// sequencing rule and releases each order whose corrected workload fits
// under every station type's norm. A load-blocked order is skipped, never
// halting evaluation of the rest of the list.
type ReleaseControl struct {
	cfg       *Config
	sequencer PoolSequencer
}

// NewReleaseControl builds the release control for a validated config.
func NewReleaseControl(cfg *Config) *ReleaseControl {
	return &ReleaseControl{
		cfg:       cfg,
		sequencer: NewPoolSequencer(cfg.PoolRule),
	}
}

// CommittedLoads recomputes the corrected workload currently committed to
// each station type: the sum over all released-but-incomplete orders of
// their distance-discounted remaining standard time. Recomputing from the
// order set at each review keeps the accounting exact as frontiers
// advance; an already released order is never double-counted because it
// left the pool.
func (rc *ReleaseControl) CommittedLoads(orders []*Order) map[StationType]float64 {
	loads := make(map[StationType]float64)
	for _, o := range orders {
		if o.State != StateReleased {
			continue
		}
		for t, l := range o.CorrectedLoads(rc.cfg.CorrectionExponent) {
			loads[t] += l
		}
	}
	return loads
}

// Review runs one LUMS-COR release review at the given time.
func (rc *ReleaseControl) Review(sim *Simulator, now float64) {
	if sim.Pool.Len() == 0 {
		return
	}
	committed := rc.CommittedLoads(sim.Orders)
	ranked := sim.Pool.Sequence(rc.sequencer, now)
	for _, o := range ranked {
		o.ComputePlannedTimes(rc.cfg.PlannedStartAllowance)
		contrib := o.CorrectedLoads(rc.cfg.CorrectionExponent)

		over := rc.overloaded(committed, contrib)
		switch {
		case len(over) == 0:
			rc.commit(committed, contrib)
			sim.releaseOrder(o, now, "periodic release")

		case rc.cfg.StalenessBound > 0 && o.SkippedReviews >= rc.cfg.StalenessBound:
			// Starvation-avoidance safety valve: the order was load-blocked
			// at every review beyond the staleness bound, so it goes out at
			// a capped overload. Recovered locally; warning, never fatal.
			rc.commit(committed, contrib)
			logrus.Warnf("[t %8.2f] starvation override: releasing order %s after %d skipped reviews (overloads %v)",
				now, o.ID, o.SkippedReviews, over)
			sim.Trace.Add(trace.Record{
				Time:    now,
				Kind:    trace.KindStarvationOverride,
				OrderID: o.ID,
				Detail:  "forced release past workload norm",
			})
			sim.releaseOrder(o, now, "starvation override")

		default:
			o.SkippedReviews++
			logrus.Debugf("[t %8.2f] release rejected for order %s: overloaded stations %v", now, o.ID, over)
		}
	}
}

// overloaded returns the station types whose running total would exceed
// their norm if the contribution were committed.
func (rc *ReleaseControl) overloaded(committed, contrib map[StationType]float64) []StationType {
	var over []StationType
	for t, l := range contrib {
		if committed[t]+l > rc.cfg.NormFor(t) {
			over = append(over, t)
		}
	}
	sort.Slice(over, func(i, j int) bool { return over[i] < over[j] })
	return over
}

func (rc *ReleaseControl) commit(committed, contrib map[StationType]float64) {
	for t, l := range contrib {
		committed[t] += l
	}
}
