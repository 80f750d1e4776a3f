package utils

import (
	"errors"

	"github.com/google/uuid"

	"github.com/pitlane-dev/gridrace/pkg/race"
)

var ErrRaceNotFound = errors.New("race not found")

// RaceLookup is the registry for hosts running several races at once. Each
// session owns its cars and turn state exclusively, the lookup only hands
// out the session for the requested race id.
type RaceLookup struct {
	lookup map[uuid.UUID]*race.Session
}

func NewRaceLookup() *RaceLookup {
	return &RaceLookup{
		lookup: make(map[uuid.UUID]*race.Session),
	}
}

func (r *RaceLookup) AddRace(s *race.Session) {
	if _, ok := r.lookup[s.ID()]; ok {
		return
	}
	r.lookup[s.ID()] = s
}

func (r *RaceLookup) GetRace(id uuid.UUID) (*race.Session, error) {
	if ret, ok := r.lookup[id]; ok {
		return ret, nil
	}
	return nil, ErrRaceNotFound
}

func (r *RaceLookup) RemoveRace(id uuid.UUID) {
	delete(r.lookup, id)
}

func (r *RaceLookup) GetRaces() []*race.Session {
	ret := make([]*race.Session, 0, len(r.lookup))
	for _, v := range r.lookup {
		ret = append(ret, v)
	}
	return ret
}

func (r *RaceLookup) Clear() {
	r.lookup = make(map[uuid.UUID]*race.Session)
}
