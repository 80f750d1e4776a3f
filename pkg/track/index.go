package track

import (
	"slices"

	"github.com/pitlane-dev/gridrace/pkg/model"
)

// Index is the precomputed, immutable view of a track. It assigns every cell
// a dense integer index, keeps an adjacency table over those indices and
// derives per-lane traversal orders, the spine length and the pit-lane
// layout. An Index is built once per track load and may be shared read-only
// across any number of race sessions.
type Index struct {
	Cells []model.TrackCell
	ByID  map[string]int
	// Next is the adjacency table: Next[i] lists the dense indices directly
	// reachable from cell i.
	Next [][]int
	// LaneSeq maps a lane index to the traversal-ordered dense cell indices
	// of that lane.
	LaneSeq map[int][]int
	// SpineLen is the length of the spine lane (lane 1) sequence.
	SpineLen int
	// PitZoneCell maps a pit-lane zone index to its dense cell index.
	PitZoneCell map[int]int
	// MaxPitBoxZone is the highest pit-lane zone index carrying a PIT_BOX
	// tag, or -1 when the track has no pit boxes.
	MaxPitBoxZone int

	progress     []float64
	pitSkipCell  int
	laneByCell   []int
	fwdByCell    []int
	tagsByCell   []map[model.CellTag]struct{}
	trackID      string
	totalCells   int
	startFinish  map[int]int // lane -> dense index of its START_FINISH cell (if any)
	pitEntryCell int
	pitExitCell  int
}

// NewIndex builds the Index from validated track data. It never fails:
// degenerate tracks produce best-effort orderings instead of errors.
func NewIndex(data *model.TrackData) *Index {
	ix := &Index{
		Cells:         slices.Clone(data.Cells),
		ByID:          make(map[string]int, len(data.Cells)),
		LaneSeq:       make(map[int][]int),
		PitZoneCell:   make(map[int]int),
		MaxPitBoxZone: -1,
		pitSkipCell:   -1,
		trackID:       data.TrackID,
		totalCells:    len(data.Cells),
		startFinish:   make(map[int]int),
		pitEntryCell:  -1,
		pitExitCell:   -1,
	}
	for i := range ix.Cells {
		ix.ByID[ix.Cells[i].ID] = i
	}
	ix.buildAdjacency()
	ix.buildLaneSequences()
	ix.buildSpine()
	ix.buildPitLayout()
	ix.buildProgress()
	return ix
}

func (ix *Index) buildAdjacency() {
	ix.Next = make([][]int, len(ix.Cells))
	ix.laneByCell = make([]int, len(ix.Cells))
	ix.fwdByCell = make([]int, len(ix.Cells))
	ix.tagsByCell = make([]map[model.CellTag]struct{}, len(ix.Cells))
	for i := range ix.Cells {
		c := &ix.Cells[i]
		ix.laneByCell[i] = c.LaneIndex
		ix.fwdByCell[i] = c.ForwardIndex
		ix.Next[i] = make([]int, 0, len(c.Next))
		for _, id := range c.Next {
			ix.Next[i] = append(ix.Next[i], ix.ByID[id])
		}
		if len(c.Tags) > 0 {
			ix.tagsByCell[i] = make(map[model.CellTag]struct{}, len(c.Tags))
			for _, t := range c.Tags {
				ix.tagsByCell[i][t] = struct{}{}
			}
		}
		if c.HasTag(model.TagStartFinish) {
			ix.startFinish[c.LaneIndex] = i
		}
		if c.HasTag(model.TagPitEntry) {
			ix.pitEntryCell = i
		}
		if c.HasTag(model.TagPitExit) {
			ix.pitExitCell = i
		}
	}
}

// buildLaneSequences orders each lane's cells by walking same-lane next
// edges from a seed cell. The seed is the lane's START_FINISH cell, for the
// pit lane the PIT_ENTRY cell, otherwise the cell with the lowest
// forwardIndex. Cells the walk does not reach are appended sorted by
// forwardIndex; nothing is dropped.
func (ix *Index) buildLaneSequences() {
	byLane := make(map[int][]int)
	for i := range ix.Cells {
		lane := ix.laneByCell[i]
		byLane[lane] = append(byLane[lane], i)
	}
	for lane, members := range byLane {
		seed := ix.laneSeed(lane, members)
		seq := make([]int, 0, len(members))
		seen := make(map[int]struct{}, len(members))
		cur := seed
		for cur >= 0 {
			if _, dup := seen[cur]; dup {
				break
			}
			seq = append(seq, cur)
			seen[cur] = struct{}{}
			cur = ix.sameLaneSuccessor(cur, lane)
		}
		// fallback for cells the walk never reached
		rest := make([]int, 0)
		for _, m := range members {
			if _, ok := seen[m]; !ok {
				rest = append(rest, m)
			}
		}
		slices.SortFunc(rest, func(a, b int) int {
			return ix.fwdByCell[a] - ix.fwdByCell[b]
		})
		ix.LaneSeq[lane] = append(seq, rest...)
	}
}

func (ix *Index) laneSeed(lane int, members []int) int {
	if sf, ok := ix.startFinish[lane]; ok {
		return sf
	}
	if lane == model.PitLane && ix.pitEntryCell >= 0 {
		return ix.pitEntryCell
	}
	seed := -1
	for _, m := range members {
		if seed == -1 || ix.fwdByCell[m] < ix.fwdByCell[seed] {
			seed = m
		}
	}
	return seed
}

func (ix *Index) sameLaneSuccessor(cell, lane int) int {
	for _, n := range ix.Next[cell] {
		if ix.laneByCell[n] == lane {
			return n
		}
	}
	return -1
}

func (ix *Index) buildSpine() {
	ix.SpineLen = len(ix.LaneSeq[model.InnerLane])
	if ix.SpineLen == 0 {
		// degenerate track without a spine lane
		maxFwd := 0
		for i := range ix.Cells {
			if ix.fwdByCell[i]+1 > maxFwd {
				maxFwd = ix.fwdByCell[i] + 1
			}
		}
		ix.SpineLen = maxFwd
	}
}

func (ix *Index) buildPitLayout() {
	for _, i := range ix.LaneSeq[model.PitLane] {
		zone := ix.Cells[i].ZoneIndex
		ix.PitZoneCell[zone] = i
		if ix.HasTag(i, model.TagPitBox) && zone > ix.MaxPitBoxZone {
			ix.MaxPitBoxZone = zone
		}
	}
	if ix.MaxPitBoxZone < 0 {
		return
	}
	// first pit-lane cell beyond the last pit box, the landing spot for the
	// post-service skip move
	bestZone := -1
	for zone, cell := range ix.PitZoneCell {
		if zone <= ix.MaxPitBoxZone {
			continue
		}
		if bestZone == -1 || zone < bestZone {
			bestZone = zone
			ix.pitSkipCell = cell
		}
	}
}

// buildProgress normalizes every lane onto the spine-lane scale so cars in
// different lanes are comparable for standings.
func (ix *Index) buildProgress() {
	ix.progress = make([]float64, len(ix.Cells))
	for _, seq := range ix.LaneSeq {
		if len(seq) == 1 {
			ix.progress[seq[0]] = 0
			continue
		}
		scale := float64(ix.SpineLen-1) / float64(len(seq)-1)
		for pos, cell := range seq {
			ix.progress[cell] = float64(pos) * scale
		}
	}
}

func (ix *Index) TrackID() string { return ix.trackID }

func (ix *Index) NumCells() int { return ix.totalCells }

// CellIndex resolves a cell id, returning -1 for unknown ids.
func (ix *Index) CellIndex(id string) int {
	if i, ok := ix.ByID[id]; ok {
		return i
	}
	return -1
}

func (ix *Index) CellID(i int) string { return ix.Cells[i].ID }

func (ix *Index) Lane(i int) int { return ix.laneByCell[i] }

func (ix *Index) Fwd(i int) int { return ix.fwdByCell[i] }

func (ix *Index) HasTag(i int, tag model.CellTag) bool {
	if ix.tagsByCell[i] == nil {
		return false
	}
	_, ok := ix.tagsByCell[i][tag]
	return ok
}

// ForwardGap is the wrap-aware forwardIndex distance from a to b along the
// direction of travel.
func (ix *Index) ForwardGap(a, b int) int {
	return ((ix.fwdByCell[b]-ix.fwdByCell[a])%ix.SpineLen + ix.SpineLen) % ix.SpineLen
}

// Progress is the cell's normalized race progress on the spine scale.
func (ix *Index) Progress(i int) float64 { return ix.progress[i] }

// PitSkipCell is the dense index of the first pit-lane cell beyond the last
// PIT_BOX zone, or -1 when the track has no pit boxes.
func (ix *Index) PitSkipCell() int { return ix.pitSkipCell }

// StartFinish returns the lane's START_FINISH cell, or -1.
func (ix *Index) StartFinish(lane int) int {
	if sf, ok := ix.startFinish[lane]; ok {
		return sf
	}
	return -1
}
