// Package bot implements the deterministic bot decision engine. Scoring is
// fixed and candidates are iterated in lexicographic cell-id order with a
// strictly-greater comparison, so ties always resolve to the first candidate
// and replays reproduce bit-identically.
package bot

import (
	"slices"

	"github.com/pitlane-dev/gridrace/pkg/model"
	"github.com/pitlane-dev/gridrace/pkg/race/reach"
	"github.com/pitlane-dev/gridrace/pkg/track"
)

const (
	distanceWeight = 10
	pitBonus       = 5
	pitPenalty     = -2
	lowResource    = 25
)

type (
	// Candidate is one scored entry of the decision trace.
	Candidate struct {
		CellID   string `json:"cellId"` //nolint:tagliatelle // camelCase on the wire
		Distance int    `json:"distance"`
		Score    int    `json:"score"`
		PitBox   bool   `json:"pitBox"` //nolint:tagliatelle
	}
	// Decision is the bot's action plus its audit trace.
	Decision struct {
		CarID      string      `json:"carId"` //nolint:tagliatelle
		Skip       bool        `json:"skip"`
		Target     string      `json:"target,omitempty"`
		Candidates []Candidate `json:"candidates,omitempty"`
	}
)

// Decide picks the move for car out of the given reachable set. An empty set
// yields a skip decision.
func Decide(
	ix *track.Index,
	car *model.Car,
	targets map[int]reach.TargetInfo,
) Decision {
	dec := Decision{CarID: car.CarID, Skip: true}
	if len(targets) == 0 {
		return dec
	}

	cells := make([]string, 0, len(targets))
	byID := make(map[string]reach.TargetInfo, len(targets))
	for cell, info := range targets {
		id := ix.CellID(cell)
		cells = append(cells, id)
		byID[id] = info
	}
	slices.Sort(cells)

	best := 0
	lowRes := car.Tire <= lowResource || car.Fuel <= lowResource
	for _, id := range cells {
		info := byID[id]
		score := info.Distance*distanceWeight - (info.TireCost + info.FuelCost)
		if info.IsPitTrigger {
			if lowRes {
				score += pitBonus
			} else {
				score += pitPenalty
			}
		}
		dec.Candidates = append(dec.Candidates, Candidate{
			CellID:   id,
			Distance: info.Distance,
			Score:    score,
			PitBox:   info.IsPitTrigger,
		})
		if dec.Skip || score > best {
			dec.Skip = false
			dec.Target = id
			best = score
		}
	}
	return dec
}
