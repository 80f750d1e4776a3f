package race

import (
	"github.com/pitlane-dev/gridrace/log"
	"github.com/pitlane-dev/gridrace/pkg/race/bot"
)

// keep the bot trace ring small, snapshots only care about recent turns
const maxTraces = 32

// PlayBotTurn resolves the rotation's current turn with the bot decision
// engine. A car without legal targets is force-skipped so the rotation never
// wedges. The decision trace is retained for snapshots.
func (s *Session) PlayBotTurn() (bot.Decision, error) {
	carID := s.turn.Current()
	car, ok := s.Car(carID)
	if !ok {
		return bot.Decision{}, ErrUnknownCar
	}
	targets, err := s.LegalTargets(carID)
	if err != nil {
		return bot.Decision{}, err
	}
	dec := bot.Decide(s.ix, car, targets)
	s.traces = append(s.traces, dec)
	if len(s.traces) > maxTraces {
		s.traces = s.traces[len(s.traces)-maxTraces:]
	}

	action := Action{Type: ActionSkip}
	if !dec.Skip {
		action = Action{Type: ActionMove, TargetCellID: dec.Target}
	}
	if err := s.SubmitAction(carID, action); err != nil {
		return dec, err
	}
	s.l.Debug("bot turn resolved",
		log.String("car", carID),
		log.Bool("skip", dec.Skip),
		log.String("target", dec.Target))
	return dec, nil
}
