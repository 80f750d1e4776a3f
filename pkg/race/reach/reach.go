// Package reach computes the set of legal destination cells for a single
// move: a breadth-first search over the track's adjacency table, bounded by
// a step budget and filtered by lane-change, pit-entry and occupancy rules.
// It is a pure function of (index, occupancy, start, budget, options) and
// never mutates anything.
package reach

import (
	"math"

	"github.com/pitlane-dev/gridrace/pkg/model"
	"github.com/pitlane-dev/gridrace/pkg/race/move"
	"github.com/pitlane-dev/gridrace/pkg/track"
)

// TargetInfo annotates one legal destination. Ephemeral: recomputed every
// turn, never stored.
type TargetInfo struct {
	Cell         int  `json:"cell"`
	Distance     int  `json:"distance"`
	MoveSpend    int  `json:"moveSpend"`
	TireCost     int  `json:"tireCost"`
	FuelCost     int  `json:"fuelCost"`
	IsPitTrigger bool `json:"isPitTrigger"`
}

type Options struct {
	// AllowPitExitSkip injects the skip-to-exit target when the move starts
	// on a serviced pit box.
	AllowPitExitSkip bool
	// DisallowPitBoxTargets suppresses PIT_BOX cells for a car that already
	// took its stop and has left the pit lane.
	DisallowPitBoxTargets bool
}

// Compute returns the legal targets keyed by dense cell index. The start
// cell and occupied cells are never part of the result.
func Compute(
	ix *track.Index,
	start int,
	occupied []bool,
	budget int,
	setup model.Setup,
	opts Options,
) map[int]TargetInfo {
	res := make(map[int]TargetInfo)
	if budget <= 0 {
		return res
	}
	if ix.Lane(start) == model.PitLane {
		computePitLane(ix, start, occupied, budget, setup, opts, res)
		return res
	}
	computeMainLanes(ix, start, occupied, budget, setup, opts, res)
	return res
}

type node struct {
	cell     int
	dist     int
	switched bool
}

// computeMainLanes runs the legality BFS over the main lanes and applies the
// lane-relative occupancy filter on the surviving cells. Blocking is by lane,
// not by path: the nearest occupied cell ahead in the origin lane caps that
// lane, and a lane-change target may merge past at most one occupied cell in
// its destination lane.
//
//nolint:gocognit,cyclop // the legality filters read best in one place
func computeMainLanes(
	ix *track.Index,
	start int,
	occupied []bool,
	budget int,
	setup model.Setup,
	opts Options,
	res map[int]TargetInfo,
) {
	startLane := ix.Lane(start)
	blockers := laneBlockers(ix, start, startLane, occupied)

	// seen bit 0: plain path, bit 1: path with its lane change spent
	seen := make([]uint8, ix.NumCells())
	seen[start] = 1
	dists := make(map[int]int)
	queue := []node{{cell: start}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.dist == budget {
			continue
		}
		for _, nxt := range ix.Next[cur.cell] {
			curLane := ix.Lane(cur.cell)
			nxtLane := ix.Lane(nxt)

			if nxtLane == model.PitLane {
				// pit entry: only as the very first hop, only from the
				// inner main lane, only onto the PIT_ENTRY cell
				if cur.dist != 0 || curLane != model.InnerLane {
					continue
				}
				if !ix.HasTag(nxt, model.TagPitEntry) || occupied[nxt] {
					continue
				}
				if opts.DisallowPitBoxTargets && ix.HasTag(nxt, model.TagPitBox) {
					continue
				}
				if _, ok := res[nxt]; !ok {
					res[nxt] = newTarget(ix, nxt, 1, startLane, setup)
				}
				// a pit entry ends the move, never expand past it
				continue
			}

			isSwitch := nxtLane != curLane
			if isSwitch {
				if cur.switched {
					continue
				}
				if absInt(nxtLane-curLane) != 1 {
					continue
				}
				// no sideways merge at equal progress
				if ix.ForwardGap(cur.cell, nxt) < 1 {
					continue
				}
			}
			if absInt(nxtLane-startLane) > 1 {
				continue
			}

			switched := cur.switched || isSwitch
			dist := cur.dist + 1
			if _, ok := dists[nxt]; !ok && nxt != start {
				dists[nxt] = dist
			}
			bit := uint8(1)
			if switched {
				bit = 2
			}
			if seen[nxt]&bit == 0 {
				seen[nxt] |= bit
				queue = append(queue, node{cell: nxt, dist: dist, switched: switched})
			}
		}
	}

	for cell, dist := range dists {
		if occupied[cell] {
			continue
		}
		if ix.ForwardGap(start, cell) >= blockers.limit(ix.Lane(cell)) {
			continue
		}
		if opts.DisallowPitBoxTargets && ix.HasTag(cell, model.TagPitBox) {
			continue
		}
		res[cell] = newTarget(ix, cell, dist, startLane, setup)
	}
}

// laneLimits caps the legal forward gap per lane: the origin lane is blocked
// at its nearest occupied cell ahead, a destination lane at its second one
// (single-blocker merge tolerance).
type laneLimits struct {
	startLane  int
	startLimit int
	destLimit  map[int]int
}

func (l laneLimits) limit(lane int) int {
	if lane == l.startLane {
		return l.startLimit
	}
	if v, ok := l.destLimit[lane]; ok {
		return v
	}
	return math.MaxInt
}

func laneBlockers(ix *track.Index, start, startLane int, occupied []bool) laneLimits {
	limits := laneLimits{
		startLane:  startLane,
		startLimit: math.MaxInt,
		destLimit:  make(map[int]int),
	}
	gaps := make(map[int][]int)
	for cell, occ := range occupied {
		if !occ || ix.Lane(cell) == model.PitLane {
			continue
		}
		gap := ix.ForwardGap(start, cell)
		if gap == 0 {
			continue
		}
		lane := ix.Lane(cell)
		if lane == startLane {
			if gap < limits.startLimit {
				limits.startLimit = gap
			}
			continue
		}
		gaps[lane] = append(gaps[lane], gap)
	}
	for lane, gs := range gaps {
		if len(gs) < 2 {
			continue
		}
		first, second := math.MaxInt, math.MaxInt
		for _, g := range gs {
			switch {
			case g < first:
				first, second = g, first
			case g < second:
				second = g
			}
		}
		limits.destLimit[lane] = second
	}
	return limits
}

// computePitLane handles moves starting inside the pit lane. The effective
// budget is forced to one step. A car sitting on a pit box may additionally
// roll forward to any further box, and, once serviced, skip straight to the
// cell past the last box.
func computePitLane(
	ix *track.Index,
	start int,
	occupied []bool,
	budget int,
	setup model.Setup,
	opts Options,
	res map[int]TargetInfo,
) {
	for _, nxt := range ix.Next[start] {
		if occupied[nxt] || nxt == start {
			continue
		}
		res[nxt] = newTarget(ix, nxt, 1, model.PitLane, setup)
	}
	if !ix.HasTag(start, model.TagPitBox) {
		return
	}
	// forward pit boxes, up to the raw step budget, blocked by the first
	// occupied pit cell
	cur := start
	for d := 1; d <= budget; d++ {
		cur = pitSuccessor(ix, cur)
		if cur < 0 || occupied[cur] {
			break
		}
		if ix.HasTag(cur, model.TagPitBox) {
			if _, ok := res[cur]; !ok {
				res[cur] = newTarget(ix, cur, d, model.PitLane, setup)
			}
		}
	}
	if opts.AllowPitExitSkip {
		injectPitSkip(ix, start, occupied, res)
	}
}

// injectPitSkip adds the synthetic skip-to-exit target: the first pit-lane
// cell beyond the last pit box, at zero resource cost.
func injectPitSkip(ix *track.Index, start int, occupied []bool, res map[int]TargetInfo) {
	skip := ix.PitSkipCell()
	if skip < 0 || skip == start || occupied[skip] {
		return
	}
	dist := 0
	for cur := start; cur != skip; {
		cur = pitSuccessor(ix, cur)
		if cur < 0 {
			return // skip cell not on this chain
		}
		dist++
	}
	res[skip] = TargetInfo{
		Cell:      skip,
		Distance:  dist,
		MoveSpend: 1,
	}
}

func pitSuccessor(ix *track.Index, cell int) int {
	for _, n := range ix.Next[cell] {
		if ix.Lane(n) == model.PitLane {
			return n
		}
	}
	return -1
}

func newTarget(ix *track.Index, cell, dist, fromLane int, setup model.Setup) TargetInfo {
	toLane := ix.Lane(cell)
	tire, fuel := move.Costs(dist, setup, toLane)
	return TargetInfo{
		Cell:         cell,
		Distance:     dist,
		MoveSpend:    move.Spend(dist, fromLane, toLane),
		TireCost:     tire,
		FuelCost:     fuel,
		IsPitTrigger: ix.HasTag(cell, model.TagPitBox),
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
