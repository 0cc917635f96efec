package interpreter_test

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/on-the-ground/effect_ive_profile/interpreter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type instr struct {
	op  string
	arg int
}

func doubler() *interpreter.Program[instr, int] {
	return interpreter.New(func(yield interpreter.Yield[instr]) (int, error) {
		n := yield(instr{op: "read"}).(int)
		yield(instr{op: "print", arg: n * 2})
		return n * 2, nil
	})
}

func TestProgram_NextResumesWithPreviousResult(t *testing.T) {
	p := doubler()

	first, ok := p.Next("ignored on first call")
	require.True(t, ok)
	assert.Equal(t, instr{op: "read"}, first)

	second, ok := p.Next(21)
	require.True(t, ok)
	assert.Equal(t, instr{op: "print", arg: 42}, second)

	_, ok = p.Next(nil)
	require.False(t, ok)
	assert.True(t, p.Done())

	res, err := p.Result()
	require.NoError(t, err)
	assert.Equal(t, 42, res)

	// finished programs stay finished
	_, ok = p.Next(nil)
	assert.False(t, ok)
}

func TestProgram_EmptyBodyFinishesImmediately(t *testing.T) {
	p := interpreter.New(func(interpreter.Yield[instr]) (string, error) {
		return "done", nil
	})

	_, ok := p.Next(nil)
	require.False(t, ok)
	res, err := p.Result()
	require.NoError(t, err)
	assert.Equal(t, "done", res)
}

func TestProgram_StopUnwindsSuspendedBody(t *testing.T) {
	before := runtime.NumGoroutine()
	reachedEnd := false
	p := interpreter.New(func(yield interpreter.Yield[instr]) (int, error) {
		yield(instr{op: "read"})
		reachedEnd = true
		return 0, nil
	})

	_, ok := p.Next(nil)
	require.True(t, ok)
	p.Stop()

	assert.True(t, p.Done())
	assert.False(t, reachedEnd)
	_, err := p.Result()
	assert.ErrorIs(t, err, interpreter.ErrProgramStopped)

	// counted on this goroutine, not inside a checker goroutine
	deadline := time.Now().Add(time.Second)
	for runtime.NumGoroutine() > before && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.LessOrEqual(t, runtime.NumGoroutine(), before)

	// idempotent
	assert.NotPanics(t, p.Stop)
}

func TestProgram_StopBeforeStartNeverRunsBody(t *testing.T) {
	ran := false
	p := interpreter.New(func(interpreter.Yield[instr]) (int, error) {
		ran = true
		return 0, nil
	})
	p.Stop()

	_, ok := p.Next(nil)
	assert.False(t, ok)
	assert.False(t, ran)
	_, err := p.Result()
	assert.ErrorIs(t, err, interpreter.ErrProgramStopped)
}

func TestProgram_PanicBecomesError(t *testing.T) {
	p := interpreter.New(func(yield interpreter.Yield[instr]) (int, error) {
		yield(instr{op: "read"})
		panic("kaboom")
	})

	_, ok := p.Next(nil)
	require.True(t, ok)
	_, ok = p.Next(nil)
	require.False(t, ok)

	_, err := p.Result()
	assert.ErrorIs(t, err, interpreter.ErrProgramPanicked)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestRun_DispatchesInOrderAndTraces(t *testing.T) {
	var printed []int
	handle := func(_ context.Context, in instr) (any, error) {
		switch in.op {
		case "read":
			return 5, nil
		case "print":
			printed = append(printed, in.arg)
			return nil, nil
		}
		return nil, errors.New("unknown op")
	}

	res, trace, err := interpreter.Run(context.Background(), doubler(), handle)
	require.NoError(t, err)
	assert.Equal(t, 10, res)
	assert.Equal(t, []int{10}, printed)

	assert.NotEmpty(t, trace.RunID)
	require.Len(t, trace.Steps, 2)
	assert.Equal(t, []instr{{op: "read"}, {op: "print", arg: 10}}, trace.Instructions())
	assert.Equal(t, 0, trace.Steps[0].Index)
	assert.Equal(t, 5, trace.Steps[0].Result)
	assert.Equal(t, 1, trace.Steps[1].Index)
	assert.False(t, trace.Steps[1].Span.Start().After(trace.Steps[1].Span.End()))
}

func TestRun_ProgramErrorIsReturned(t *testing.T) {
	notFound := errors.New("not found")
	p := interpreter.New(func(yield interpreter.Yield[instr]) (int, error) {
		if err, ok := yield(instr{op: "read"}).(error); ok {
			return 0, err
		}
		yield(instr{op: "print"})
		return 1, nil
	})

	_, trace, err := interpreter.Run(context.Background(), p, func(context.Context, instr) (any, error) {
		return notFound, nil
	})
	assert.ErrorIs(t, err, notFound)
	assert.NotErrorIs(t, err, interpreter.ErrInterrupted)
	assert.Len(t, trace.Steps, 1)
}

func TestRun_HandlerFaultInterrupts(t *testing.T) {
	fault := errors.New("no handler")
	p := doubler()

	_, trace, err := interpreter.Run(context.Background(), p, func(context.Context, instr) (any, error) {
		return nil, fault
	})
	assert.ErrorIs(t, err, interpreter.ErrInterrupted)
	assert.ErrorIs(t, err, fault)
	assert.Empty(t, trace.Steps)
	assert.True(t, p.Done())
}

func TestRun_CancelledContextInterrupts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	_, trace, err := interpreter.Run(ctx, doubler(), func(context.Context, instr) (any, error) {
		cancel()
		return 3, nil
	})
	assert.ErrorIs(t, err, interpreter.ErrInterrupted)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, trace.Steps, 1)
}

func TestRun_CancelledAfterLastInstructionFinishes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	res, trace, err := interpreter.Run(ctx, doubler(), func(_ context.Context, in instr) (any, error) {
		if in.op == "print" {
			cancel()
			return nil, nil
		}
		return 4, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 8, res)
	assert.Len(t, trace.Steps, 2)
}

func TestRun_CancelledBeforeStartDispatchesNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	_, trace, err := interpreter.Run(ctx, doubler(), func(context.Context, instr) (any, error) {
		called = true
		return 1, nil
	})
	assert.ErrorIs(t, err, interpreter.ErrInterrupted)
	assert.Empty(t, trace.Steps)
	assert.False(t, called)
}
