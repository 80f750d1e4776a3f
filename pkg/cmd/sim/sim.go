package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/pitlane-dev/gridrace/log"
	"github.com/pitlane-dev/gridrace/pkg/config"
	"github.com/pitlane-dev/gridrace/pkg/model"
	"github.com/pitlane-dev/gridrace/pkg/race"
	"github.com/pitlane-dev/gridrace/pkg/track"
	"github.com/pitlane-dev/gridrace/pkg/utils"
	"github.com/pitlane-dev/gridrace/testsupport/trackdata"
)

var (
	numCars    int
	targetLaps int
	maxTurns   int
	snapshots  bool
	short      bool
)

var errGridTooSmall = errors.New("track cannot stage that many cars")

func NewSimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sim [trackFile]",
		Short: "run a bot-vs-bot race and print the standings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				config.TrackFile = args[0]
			}
			return runSim(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&numCars, "cars", 4, "number of bot cars on the grid")
	cmd.Flags().IntVar(&targetLaps, "laps", 3, "race distance in laps")
	cmd.Flags().IntVar(&maxTurns, "max-turns", 500,
		"hard stop after this many resolved turns")
	cmd.Flags().BoolVar(&snapshots, "snapshots", false,
		"print a session snapshot after every turn")
	cmd.Flags().BoolVar(&short, "short", false,
		"drop target lists and bot traces from snapshots")
	return cmd
}

func runSim(ctx context.Context) error {
	logger := utils.SetupLogger()

	ix, err := resolveTrack(ctx)
	if err != nil {
		return err
	}
	cells := race.GridCells(ix, numCars)
	if len(cells) < numCars {
		return fmt.Errorf("%w: track %s, cars %d", errGridTooSmall, ix.TrackID(), numCars)
	}

	cars := make([]*model.Car, numCars)
	for i := range cars {
		car := model.NewCar(fmt.Sprintf("bot-%02d", i+1), cells[i])
		car.IsBot = true
		car.OwnerID = uuid.NewString()
		if i%2 == 1 {
			car.Setup.Compound = model.CompoundHard
		}
		cars[i] = car
	}

	sess := race.NewSession(ix,
		race.WithCars(cars),
		race.WithLogger(logger.Named("race")))
	races := utils.NewRaceLookup()
	races.AddRace(sess)
	defer races.RemoveRace(sess.ID())
	logger.Info("race starts",
		log.String("raceId", sess.ID().String()),
		log.String("track", ix.TrackID()),
		log.Int("cars", numCars),
		log.Int("laps", targetLaps))

	return runRace(races, sess.ID())
}

// runRace drives the bot loop for one registered race. It resolves the
// session through the registry each turn, the way a host serving several
// races at once would.
func runRace(races *utils.RaceLookup, raceID uuid.UUID) error {
	sess, err := races.GetRace(raceID)
	if err != nil {
		return err
	}
	for sess.Turn() < maxTurns && leaderLap(sess) < targetLaps {
		if _, err := sess.PlayBotTurn(); err != nil {
			return fmt.Errorf("turn %d: %w", sess.Turn(), err)
		}
		if snapshots {
			fmt.Println(oj.JSON(sess.Snapshot(short), 2))
		}
	}

	fmt.Println(oj.JSON(sess.Standings(), 2))
	return nil
}

func resolveTrack(ctx context.Context) (*track.Index, error) {
	if config.TrackFile == "" {
		return track.NewIndex(trackdata.Oval(trackdata.DefaultZones)), nil
	}
	return track.NewIndexCache().Get(ctx, config.TrackFile)
}

func leaderLap(sess *race.Session) int {
	standings := sess.Standings()
	if len(standings) == 0 {
		return 0
	}
	return standings[0].Lap
}
