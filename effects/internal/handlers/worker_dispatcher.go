package handlers

import (
	"context"
	"sync"

	"github.com/on-the-ground/effect_ive_profile/effects/model"
)

// WorkerDispatcher routes a message to the channel of the worker that handles it.
type WorkerDispatcher[T any] interface {
	GetChannelOf(msg T) chan T
	// Wait blocks until every worker has exited.
	Wait()
}

// NewSingleQueue starts one worker; messages are handled in arrival order.
func NewSingleQueue[T any](
	ctx context.Context,
	bufferSize int,
	handleFn func(context.Context, T),
) WorkerDispatcher[T] {
	return startWorkers(ctx, 1, bufferSize, func(T, int) int { return 0 }, handleFn)
}

// NewPartitionedQueue starts numWorkers workers. Messages sharing a
// PartitionKey always reach the same worker.
func NewPartitionedQueue[T model.Partitionable](
	ctx context.Context,
	numWorkers, bufferSize int,
	handleFn func(context.Context, T),
) WorkerDispatcher[T] {
	route := func(msg T, numChs int) int {
		return getIndexByHash(msg, numChs)
	}
	return startWorkers(ctx, numWorkers, bufferSize, route, handleFn)
}

type workerPool[T any] struct {
	chs    []chan T
	route  func(msg T, numChs int) int
	exited sync.WaitGroup
}

func (wp *workerPool[T]) GetChannelOf(msg T) chan T {
	return wp.chs[wp.route(msg, len(wp.chs))]
}

func (wp *workerPool[T]) Wait() {
	wp.exited.Wait()
}

// startWorkers returns once every worker is receiving. When ctx is done a
// worker closes its channel, so late senders panic instead of blocking
// forever, and then handles what was already queued.
func startWorkers[T any](
	ctx context.Context,
	numWorkers, bufferSize int,
	route func(msg T, numChs int) int,
	handleFn func(context.Context, T),
) *workerPool[T] {
	wp := &workerPool[T]{
		chs:   make([]chan T, numWorkers),
		route: route,
	}

	var ready sync.WaitGroup
	ready.Add(numWorkers)
	wp.exited.Add(numWorkers)
	for i := range wp.chs {
		ch := make(chan T, bufferSize)
		wp.chs[i] = ch
		go func() {
			defer wp.exited.Done()
			ready.Done()
			serve(ctx, ch, handleFn)
			close(ch)
			drain(context.WithoutCancel(ctx), ch, handleFn)
		}()
	}
	ready.Wait()
	return wp
}

func serve[T any](ctx context.Context, ch <-chan T, handleFn func(context.Context, T)) {
	for {
		select {
		case msg := <-ch:
			handleFn(ctx, msg)
		case <-ctx.Done():
			return
		}
	}
}

func drain[T any](ctx context.Context, ch <-chan T, handleFn func(context.Context, T)) {
	for msg := range ch {
		handleFn(ctx, msg)
	}
}
