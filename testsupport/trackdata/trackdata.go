// Package trackdata builds programmatic test tracks. The oval here matches
// the layout the test matrix and the sim default assume: three main lanes, a
// pit lane branching off the inner lane, start/finish at zone 0.
package trackdata

import (
	"fmt"

	"github.com/pitlane-dev/gridrace/pkg/model"
)

const DefaultZones = 16

// pit chain zones on the oval
const (
	PitEntryZone = 2
	FirstBoxZone = 3
	LastBoxZone  = 5
	PitExitZone  = 8
)

// CellID names a cell the way the oval builder does.
func CellID(lane, zone int) string {
	return fmt.Sprintf("l%d-z%02d", lane, zone)
}

// Oval returns a closed test track with the given zone count (minimum 10 so
// the pit chain fits), three main lanes and one pit lane. Main-lane cells
// link to the next zone in their own lane and diagonally into both adjacent
// main lanes. The pit lane is a linear chain from PIT_ENTRY over three pit
// boxes to PIT_EXIT, rejoining the inner lane.
func Oval(zones int) *model.TrackData {
	if zones < 10 {
		zones = DefaultZones
	}
	cells := make([]model.TrackCell, 0, 3*zones+(PitExitZone-PitEntryZone+1))

	for lane := model.InnerLane; lane <= model.OuterLane; lane++ {
		for z := 0; z < zones; z++ {
			next := []string{CellID(lane, (z+1)%zones)}
			if lane > model.InnerLane {
				next = append(next, CellID(lane-1, (z+1)%zones))
			}
			if lane < model.OuterLane {
				next = append(next, CellID(lane+1, (z+1)%zones))
			}
			var tags []model.CellTag
			if z == 0 {
				tags = []model.CellTag{model.TagStartFinish}
			}
			if lane == model.InnerLane && z == PitEntryZone-1 {
				// the inner lane feeds the pit entry
				next = append(next, CellID(model.PitLane, PitEntryZone))
			}
			cells = append(cells, model.TrackCell{
				ID:           CellID(lane, z),
				ZoneIndex:    z,
				LaneIndex:    lane,
				ForwardIndex: z,
				Position:     model.Position{X: float64(z), Y: float64(lane)},
				Next:         next,
				Tags:         tags,
			})
		}
	}

	for z := PitEntryZone; z <= PitExitZone; z++ {
		var next []string
		if z < PitExitZone {
			next = []string{CellID(model.PitLane, z + 1)}
		} else {
			next = []string{CellID(model.InnerLane, (z+1)%zones)}
		}
		var tags []model.CellTag
		switch {
		case z == PitEntryZone:
			tags = []model.CellTag{model.TagPitEntry}
		case z >= FirstBoxZone && z <= LastBoxZone:
			tags = []model.CellTag{model.TagPitBox}
		case z == PitExitZone:
			tags = []model.CellTag{model.TagPitExit}
		}
		cells = append(cells, model.TrackCell{
			ID:           CellID(model.PitLane, z),
			ZoneIndex:    z,
			LaneIndex:    model.PitLane,
			ForwardIndex: z,
			Position:     model.Position{X: float64(z), Y: -1},
			Next:         next,
			Tags:         tags,
		})
	}

	return &model.TrackData{
		TrackID: fmt.Sprintf("oval-%d", zones),
		Zones:   zones,
		Lanes:   4,
		Cells:   cells,
	}
}
