package repositories

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// OpenStore opens the in-memory badger store that holds instance state.
// Nothing is written to disk; everything is gone once the store is closed.
func OpenStore(log zerolog.Logger) (*badger.DB, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(badgerLogger{log: log.With().Str("component", "badger").Logger()}).
		WithNumVersionsToKeep(1).
		WithNumGoroutines(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open instance store: %w", err)
	}
	return db, nil
}

// badgerLogger forwards badger's internal logging to zerolog.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msgf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Trace().Msgf(format, args...)
}
