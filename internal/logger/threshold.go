package logger

import (
	"sync/atomic"

	prilog "github.com/gxo-labs/prilog/pkg/prilog/v1/log"
)

// threshold holds the level a logger gates on. It is written when the logger
// is built and read on every call. Reads and writes are single atomic word
// operations with no ordering beyond that: a store made while other
// goroutines are logging becomes visible to them at some later point, with
// no deadline. Set the level before starting goroutines that log.
type threshold struct {
	v atomic.Int32
}

func newThreshold(level prilog.Level) *threshold {
	t := &threshold{}
	t.store(level)
	return t
}

func (t *threshold) load() prilog.Level {
	return prilog.Level(t.v.Load())
}

func (t *threshold) store(level prilog.Level) {
	t.v.Store(int32(level))
}
