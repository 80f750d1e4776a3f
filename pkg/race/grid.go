package race

import (
	"github.com/pitlane-dev/gridrace/pkg/model"
	"github.com/pitlane-dev/gridrace/pkg/track"
)

// GridCells picks n starting cells staggered across the main lanes directly
// behind the start/finish line, inner lane first. Returns fewer cells when
// the track cannot stage that many cars.
func GridCells(ix *track.Index, n int) []int {
	cells := make([]int, 0, n)
	lanes := []int{model.InnerLane, model.MiddleLane, model.OuterLane}
	for i := 0; len(cells) < n; i++ {
		seq := ix.LaneSeq[lanes[i%len(lanes)]]
		row := i/len(lanes) + 1
		if row >= len(seq) {
			break
		}
		// lane sequences start at the line, so the cells behind it sit at
		// the tail of the sequence
		cells = append(cells, seq[len(seq)-row])
	}
	return cells
}
