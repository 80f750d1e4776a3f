package track

import (
	"time"

	"github.com/pitlane-dev/gridrace/log"
	"github.com/pitlane-dev/gridrace/pkg/utils/cache"
	"github.com/pitlane-dev/gridrace/pkg/utils/cache/loadercache"
)

// NewIndexCache returns a cache mapping track file paths to built indexes.
// An index is immutable and safe to share across sessions, so hosts running
// many races off the same file build it once.
func NewIndexCache() cache.Cache[string, Index] {
	return loadercache.New(
		loadercache.WithLoader[string, Index](func(path string) (*Index, error) {
			data, err := LoadFile(path)
			if err != nil {
				return nil, err
			}
			return NewIndex(data), nil
		}),
		loadercache.WithExpiration[string, Index](time.Hour),
		loadercache.WithLogger[string, Index](log.Default().Named("track.cache")),
	)
}
