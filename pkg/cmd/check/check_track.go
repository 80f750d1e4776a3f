package check

import (
	"context"
	"os"
	"os/signal"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/pitlane-dev/gridrace/log"
	"github.com/pitlane-dev/gridrace/pkg/model"
	"github.com/pitlane-dev/gridrace/pkg/track"
	"github.com/pitlane-dev/gridrace/pkg/utils"
)

var watch bool

func NewCheckTrackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track file",
		Short: "load a track file, build the index and report problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			utils.SetupLogger()
			return checkTrack(cmd.Context(), args[0])
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false,
		"revalidate the file whenever it changes")
	return cmd
}

func checkTrack(ctx context.Context, path string) error {
	if err := validateOnce(path); err != nil && !watch {
		return err
	}
	if !watch {
		return nil
	}
	return watchAndRevalidate(ctx, path)
}

func validateOnce(path string) error {
	logger := log.Default().Named("check")
	data, err := track.LoadFile(path)
	if err != nil {
		logger.Error("track file rejected", log.String("file", path), log.ErrorField(err))
		return err
	}
	ix := track.NewIndex(data)
	pitBoxes := 0
	for i := range ix.Cells {
		if ix.HasTag(i, model.TagPitBox) {
			pitBoxes++
		}
	}
	logger.Info("track ok",
		log.String("trackId", ix.TrackID()),
		log.Int("cells", ix.NumCells()),
		log.Int("lanes", len(ix.LaneSeq)),
		log.Int("spineLength", ix.SpineLen),
		log.Int("pitBoxes", pitBoxes))
	return nil
}

func watchAndRevalidate(ctx context.Context, path string) error {
	logger := log.Default().Named("check.watch")
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Error("could not create fsnotify watcher", log.ErrorField(err))
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		logger.Error("could not watch track file", log.ErrorField(err))
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	logger.Info("watching track file", log.String("file", path))
	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping track watch")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				logger.Info("watcher events channel closed, stopping track watch")
				return nil
			}
			logger.Debug("change detected",
				log.String("file", event.Name), log.Any("event", event))
			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Chmod == fsnotify.Chmod {
				//nolint:errcheck // keep watching, the log entry is the report
				validateOnce(path)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				logger.Info("watcher errors channel closed, stopping track watch")
				return nil
			}
			logger.Error("watcher error", log.ErrorField(err))
		}
	}
}
