package race

// TurnState is the fixed turn rotation: the order array is set once at race
// start and the index cycles modulo its length.
type TurnState struct {
	Order []string `json:"order"`
	Index int      `json:"index"`
}

func NewTurnState(order []string) *TurnState {
	return &TurnState{Order: append([]string{}, order...)}
}

func (t *TurnState) Current() string {
	if len(t.Order) == 0 {
		return ""
	}
	return t.Order[t.Index]
}

// Advance moves to the next car unconditionally and returns it. Pit-penalty
// and DNF skipping is the turn loop's job, not the rotation's.
func (t *TurnState) Advance() string {
	if len(t.Order) == 0 {
		return ""
	}
	t.Index = (t.Index + 1) % len(t.Order)
	return t.Order[t.Index]
}

// rotationRank returns the car's position in the rotation, used as a
// standings tie-break. Unknown cars sort last.
func (t *TurnState) rotationRank(carID string) int {
	for i, id := range t.Order {
		if id == carID {
			return i
		}
	}
	return len(t.Order)
}
