package interpreter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rickb777/date/v2/timespan"
)

// Handler performs the effect an instruction describes and returns the value
// to resume the program with.
//
// Failures of the collaborator behind an instruction belong in the returned
// value, where the program can inspect them. A non-nil error means the
// instruction could not be handled at all and stops the run.
type Handler[I any] func(ctx context.Context, instr I) (any, error)

// ErrInterrupted is returned when a run stops before its program finished.
var ErrInterrupted = errors.New("interpreter: run interrupted")

// Step is one handled instruction.
type Step[I any] struct {
	Index       int
	Instruction I
	Result      any
	Span        timespan.TimeSpan
}

// Trace lists the steps of a run in execution order.
type Trace[I any] struct {
	RunID string
	Steps []Step[I]
}

// Instructions returns the handled instructions in order.
func (t Trace[I]) Instructions() []I {
	instrs := make([]I, 0, len(t.Steps))
	for _, s := range t.Steps {
		instrs = append(instrs, s.Instruction)
	}
	return instrs
}

// Run drives program to completion, dispatching every yielded instruction to
// handle and resuming the program with the result.
//
// The returned value and error are the ones the program body returned,
// unless the run was interrupted, in which case the error wraps
// ErrInterrupted. ctx is checked before every instruction is dispatched, so a
// program that finishes without yielding again is not interrupted by a late
// cancellation. The program is stopped when Run returns.
func Run[I, R any](ctx context.Context, program *Program[I, R], handle Handler[I]) (R, Trace[I], error) {
	var zero R
	trace := Trace[I]{RunID: uuid.NewString()}
	defer program.Stop()

	var resumed any
	for {
		instr, ok := program.Next(resumed)
		if !ok {
			res, err := program.Result()
			return res, trace, err
		}

		if err := ctx.Err(); err != nil {
			return zero, trace, fmt.Errorf("%w: %w", ErrInterrupted, err)
		}

		start := time.Now()
		out, err := handle(ctx, instr)
		if err != nil {
			return zero, trace, fmt.Errorf("%w: step %d (%T): %w", ErrInterrupted, len(trace.Steps), instr, err)
		}
		trace.Steps = append(trace.Steps, Step[I]{
			Index:       len(trace.Steps),
			Instruction: instr,
			Result:      out,
			Span:        timespan.BetweenTimes(start, time.Now()),
		})
		resumed = out
	}
}
