package track

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pitlane-dev/gridrace/pkg/model"
)

// Validate checks the cross-references of raw track data. Schema level
// validation (lane numbering, pit chain shape, tag placement) is the job of
// the external track validator; the engine only refuses data it cannot
// safely index: duplicate cell ids and dangling next references.
func Validate(data *model.TrackData) error {
	if len(data.Cells) == 0 {
		return fmt.Errorf("track %s: no cells", data.TrackID)
	}
	byID := make(map[string]struct{}, len(data.Cells))
	for i := range data.Cells {
		id := data.Cells[i].ID
		if id == "" {
			return fmt.Errorf("track %s: cell %d has empty id", data.TrackID, i)
		}
		if _, dup := byID[id]; dup {
			return fmt.Errorf("track %s: duplicate cell id %s", data.TrackID, id)
		}
		byID[id] = struct{}{}
	}
	for i := range data.Cells {
		for _, next := range data.Cells[i].Next {
			if _, ok := byID[next]; !ok {
				return fmt.Errorf("track %s: cell %s references unknown cell %s",
					data.TrackID, data.Cells[i].ID, next)
			}
		}
	}
	return nil
}

// Parse unmarshals and validates raw track JSON.
func Parse(raw []byte) (*model.TrackData, error) {
	var data model.TrackData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing track data: %w", err)
	}
	if err := Validate(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

// LoadFile reads and parses a track file.
func LoadFile(path string) (*model.TrackData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}
