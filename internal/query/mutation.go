package query

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// MutationStatus is the state of a write.
type MutationStatus int32

const (
	MutationIdle MutationStatus = iota
	MutationPending
	MutationSuccess
	MutationError
)

func (s MutationStatus) String() string {
	switch s {
	case MutationPending:
		return "pending"
	case MutationSuccess:
		return "success"
	case MutationError:
		return "error"
	default:
		return "idle"
	}
}

// Result is the terminal outcome of one Execute call. Exactly one of Value
// and Err is meaningful, selected by Status.
type Result[Out any] struct {
	Status MutationStatus
	Value  Out
	Err    error
}

// OK reports whether the write succeeded.
func (r Result[Out]) OK() bool { return r.Status == MutationSuccess }

// Mutation runs a write and, when it succeeds, invalidates the cache keys
// that depend on it.
type Mutation[In, Out any] struct {
	name        string
	run         func(ctx context.Context, in In) (Out, error)
	cache       *Cache
	invalidates []Matcher
	log         zerolog.Logger
	status      atomic.Int32
}

// NewMutation builds a write named name. cache may be nil when nothing
// depends on the write.
func NewMutation[In, Out any](name string, cache *Cache, run func(context.Context, In) (Out, error), invalidates ...Matcher) *Mutation[In, Out] {
	m := &Mutation[In, Out]{
		name:        name,
		run:         run,
		cache:       cache,
		invalidates: invalidates,
		log:         zerolog.Nop(),
	}
	if cache != nil {
		m.log = cache.log
	}
	return m
}

// Status reports the state of the latest Execute call.
func (m *Mutation[In, Out]) Status() MutationStatus {
	return MutationStatus(m.status.Load())
}

// Reset returns the mutation to idle.
func (m *Mutation[In, Out]) Reset() {
	m.status.Store(int32(MutationIdle))
}

// Execute performs the write. On error the cache is left untouched.
func (m *Mutation[In, Out]) Execute(ctx context.Context, in In) Result[Out] {
	m.status.Store(int32(MutationPending))

	out, err := m.run(ctx, in)
	if err != nil {
		m.status.Store(int32(MutationError))
		m.log.Warn().Err(err).Str("mutation", m.name).Msg("mutation failed")
		return Result[Out]{Status: MutationError, Err: err}
	}

	if m.cache != nil {
		for _, match := range m.invalidates {
			m.cache.Invalidate(ctx, match)
		}
	}
	m.status.Store(int32(MutationSuccess))
	m.log.Info().Str("mutation", m.name).Msg("mutation succeeded")
	return Result[Out]{Status: MutationSuccess, Value: out}
}
