package handlers

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrHandlerClosed is reported to effects performed after their handler was closed.
var ErrHandlerClosed = errors.New("effect handler closed")

// effectScope owns the workers of one registered handler.
// Performing effects through it is safe from several goroutines; Close
// should be called once the scope that registered the handler ends.
type effectScope[T any] struct {
	EffectId   string
	dispatcher WorkerDispatcher[T]
	cancelFn   context.CancelFunc
	teardown   func()
	closeOnce  sync.Once
}

// Close stops the workers, waits for them to exit and runs the teardown.
func (es *effectScope[T]) Close() {
	es.closeOnce.Do(func() {
		es.cancelFn()
		es.dispatcher.Wait()
		es.teardown()
		zap.L().Debug("effect scope closed", zap.String("effectId", es.EffectId))
	})
}

// newEffectScope derives a cancellable context for the workers started by
// newDispatcher.
func newEffectScope[T any](
	ctx context.Context,
	newDispatcher func(context.Context) WorkerDispatcher[T],
	teardown func(),
) *effectScope[T] {
	ctx, cancelFn := context.WithCancel(ctx)
	return &effectScope[T]{
		EffectId:   uuid.New().String(),
		dispatcher: newDispatcher(ctx),
		cancelFn:   cancelFn,
		teardown:   teardown,
	}
}

// send delivers msg to its worker unless ctx ends first. It reports
// ErrHandlerClosed when the worker channel was already closed.
func (es *effectScope[T]) send(ctx context.Context, msg T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Warn("effect sent to closed handler", zap.String("effectId", es.EffectId))
			err = ErrHandlerClosed
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case es.dispatcher.GetChannelOf(msg) <- msg:
		return nil
	}
}
