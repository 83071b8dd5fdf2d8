package bindiff

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/qdiff/pkg/bytesource"
	"github.com/yaklabco/qdiff/pkg/resync"
)

var (
	// ErrInvariant indicates an internal inconsistency of the diff loop.
	ErrInvariant = errors.New("internal error")

	// ErrMinMatch indicates a minimum match length below 1. Such a length
	// resynchronizes on nothing and the loop would never advance.
	ErrMinMatch = errors.New("minimum match length must be at least 1")
)

// Sink consumes events in order.
type Sink interface {
	Render(ev Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ev Event) error

// Render implements Sink.
func (f SinkFunc) Render(ev Event) error { return f(ev) }

// Options configures a diff run.
type Options struct {
	// MinMatch is the number of equal bytes needed to resynchronize.
	MinMatch int64

	// Heuristics enables the accelerated, trimmed search.
	Heuristics bool

	// ByteByByte reports only substitutions, like cmp.
	ByteByByte bool

	// StopOnEOF ends the run when the shorter stream is exhausted and
	// reports the remainder of the longer one only as a count.
	StopOnEOF bool

	// Meter receives progress notifications. Nil disables them.
	Meter *resync.Meter
}

// Result summarizes a finished run.
type Result struct {
	// Events is the number of events delivered to the sink.
	Events int

	// Stats totals the delivered events per kind.
	Stats Stats

	// Uncompared is the number of trailing bytes left out under StopOnEOF.
	Uncompared int64

	// UncomparedSide is 1 or 2 when Uncompared > 0: the stream that still
	// had bytes when the other one ended.
	UncomparedSide int
}

// Run compares s1 and s2 and feeds every event to sink as soon as it is
// known. Byte source faults raised while reading are returned as errors.
// opts.MinMatch must be at least 1.
func Run(ctx context.Context, s1, s2 resync.Stream, sink Sink, opts Options) (res Result, err error) {
	defer bytesource.Guard(&err)

	if opts.MinMatch < 1 {
		return res, fmt.Errorf("%w (was %d)", ErrMinMatch, opts.MinMatch)
	}

	size1, size2 := s1.Size(), s2.Size()
	if size1 == 0 && size2 == 0 {
		return res, nil
	}

	emit := func(ev Event) error {
		res.Events++
		res.Stats.Add(ev)
		if err := sink.Render(ev); err != nil {
			return fmt.Errorf("render %s: %w", ev, err)
		}
		return nil
	}

	syncOpts := resync.Options{MinMatch: opts.MinMatch, Heuristics: opts.Heuristics, Meter: opts.Meter}

	var o1, o2 int64
	for o1 != size1 && o2 != size2 {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("diff cancelled: %w", err)
		}

		if opts.ByteByByte {
			n := resync.SynchronizeSubstOnly(s1, o1, s2, o2, opts.MinMatch, opts.Meter)
			if n > 0 {
				if err := emit(Substitute(n, 0, 0)); err != nil {
					return res, err
				}
			}
			o1 += n
			o2 += n
		} else {
			r := resync.Synchronize(s1, o1, s2, o2, syncOpts)
			for _, ev := range syncEvents(r) {
				if err := emit(ev); err != nil {
					return res, err
				}
			}
			o1 += r.Sub + r.Del
			o2 += r.Sub + r.Ins
		}

		n := resync.MatchRun(s1, o1, s2, o2, opts.Meter)
		if n > 0 {
			if err := emit(Match(n)); err != nil {
				return res, err
			}
		}
		o1 += n
		o2 += n
	}

	if o1 != size1 && o2 != size2 {
		return res, fmt.Errorf("%w: both streams unfinished at %d/%d", ErrInvariant, o1, o2)
	}

	switch {
	case o1 != size1 && opts.StopOnEOF:
		res.Uncompared, res.UncomparedSide = size1-o1, 1
	case o1 != size1:
		err = emit(Delete(size1 - o1))
	case o2 != size2 && opts.StopOnEOF:
		res.Uncompared, res.UncomparedSide = size2-o2, 2
	case o2 != size2:
		err = emit(Insert(size2 - o2))
	}

	return res, err
}

// syncEvents turns a resynchronization result into events: a substitution
// carries any deletion or insertion with it, otherwise the deletion comes
// before the insertion.
func syncEvents(r resync.Result) []Event {
	if r.Sub > 0 {
		return []Event{Substitute(r.Sub, r.Ins, r.Del)}
	}
	var evs []Event
	if r.Del > 0 {
		evs = append(evs, Delete(r.Del))
	}
	if r.Ins > 0 {
		evs = append(evs, Insert(r.Ins))
	}
	return evs
}
