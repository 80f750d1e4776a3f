package model

// CellTag marks special roles of a track cell.
type CellTag string

const (
	TagStartFinish CellTag = "START_FINISH"
	TagPitEntry    CellTag = "PIT_ENTRY"
	TagPitBox      CellTag = "PIT_BOX"
	TagPitExit     CellTag = "PIT_EXIT"
)

// lane indices are fixed: 0 is the pit lane, 1-3 are the main lanes
// from inner to outer. Lane 1 is the spine lane used as the canonical
// progress reference.
const (
	PitLane    = 0
	InnerLane  = 1
	MiddleLane = 2
	OuterLane  = 3
)

// Position is a 2D coordinate used by renderers only. The engine never
// looks at it.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

//nolint:tagliatelle // track files use camelCase keys
type TrackCell struct {
	ID           string    `json:"id"`
	ZoneIndex    int       `json:"zoneIndex"`
	LaneIndex    int       `json:"laneIndex"`
	ForwardIndex int       `json:"forwardIndex"`
	Position     Position  `json:"position"`
	Next         []string  `json:"next"`
	Tags         []CellTag `json:"tags,omitempty"`
}

func (c *TrackCell) HasTag(tag CellTag) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

//nolint:tagliatelle // track files use camelCase keys
type TrackData struct {
	TrackID string      `json:"trackId"`
	Zones   int         `json:"zones"`
	Lanes   int         `json:"lanes"`
	Cells   []TrackCell `json:"cells"`
}
