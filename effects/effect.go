package effects

import (
	"context"

	"github.com/on-the-ground/effect_ive_profile/effects/internal/handlers"
	"github.com/on-the-ground/effect_ive_profile/effects/internal/helper"
	"github.com/on-the-ground/effect_ive_profile/effects/model"
	sharedHelper "github.com/on-the-ground/effect_ive_profile/shared/helper"
	"go.uber.org/zap"
)

// ErrHandlerClosed is returned by effects performed after their handler was torn down.
var ErrHandlerClosed = handlers.ErrHandlerClosed

// WithResumablePartitionableEffectHandler registers a resumable effect handler for a given effect enum.
//
// This handler supports hash-based partitioning via PartitionKey(), and is suitable for effects
// like profile store access where per-user ordering matters.
//
// Usage:
//
//	ctx, end := WithResumablePartitionableEffectHandler(ctx, config, MyEffectEnum, handleFn)
//	defer end()
func WithResumablePartitionableEffectHandler[P model.Partitionable, R any](
	ctx context.Context,
	config model.EffectScopeConfig,
	enum model.EffectEnum,
	handleFn func(context.Context, P) (R, error),
	teardown ...func(),
) (context.Context, func() context.Context) {
	handler := handlers.NewPartitionableResumableHandler(ctx, config, handleFn, normalizeTeardown(teardown))
	return register(ctx, enum, "resumable", handler.EffectId, handler.Close, handler)
}

// WithResumableEffectHandler registers a resumable effect handler for a given effect enum.
//
// A single worker answers every payload, in arrival order.
func WithResumableEffectHandler[P any, R any](
	ctx context.Context,
	bufferSize int,
	enum model.EffectEnum,
	handleFn func(context.Context, P) (R, error),
	teardown ...func(),
) (context.Context, func() context.Context) {
	handler := handlers.NewResumableHandler(ctx, bufferSize, handleFn, normalizeTeardown(teardown))
	return register(ctx, enum, "resumable", handler.EffectId, handler.Close, handler)
}

// PerformResumableEffect sends a payload to the resumable effect handler and waits for the result.
//
// It returns ctx.Err() if ctx ends first, and ErrHandlerClosed if the handler
// went away before answering.
// Panics if no handler is registered for the given effect enum.
func PerformResumableEffect[P any, R any](
	ctx context.Context,
	enum model.EffectEnum,
	payload P,
) (R, error) {
	var zero R
	handler := sharedHelper.MustGetTypedValue[handlers.ResumableHandler[P, R]](
		func() (any, error) {
			return helper.GetHandler(ctx, enum)
		},
	)

	select {
	case res, ok := <-handler.PerformEffect(ctx, payload):
		if ok {
			return res.Value, res.Err
		}
	case <-ctx.Done():
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	return zero, ErrHandlerClosed
}

// WithFireAndForgetEffectHandler registers a fire-and-forget effect handler for a given effect enum.
//
// Suitable for one-shot effects like logging or telemetry.
// This handler executes without returning a result.
func WithFireAndForgetEffectHandler[P any](
	ctx context.Context,
	bufferSize int,
	enum model.EffectEnum,
	handleFn func(context.Context, P),
	teardown ...func(),
) (context.Context, func() context.Context) {
	handler := handlers.NewFireAndForgetHandler(ctx, bufferSize, handleFn, normalizeTeardown(teardown))
	return register(ctx, enum, "fire/forget", handler.EffectId, handler.Close, handler)
}

// WithFireAndForgetPartitionableEffectHandler registers a partitioned fire-and-forget handler.
//
// Hash-based dispatching ensures that effects with the same PartitionKey() are handled
// by the same goroutine.
func WithFireAndForgetPartitionableEffectHandler[P model.Partitionable](
	ctx context.Context,
	config model.EffectScopeConfig,
	enum model.EffectEnum,
	handleFn func(context.Context, P),
	teardown ...func(),
) (context.Context, func() context.Context) {
	handler := handlers.NewPartitionableFireAndForgetHandler(ctx, config, handleFn, normalizeTeardown(teardown))
	return register(ctx, enum, "fire/forget", handler.EffectId, handler.Close, handler)
}

// FireAndForgetEffect triggers a fire-and-forget effect for the given enum and payload.
//
// The handler will process the payload asynchronously.
// Panics if no handler is registered for the given enum.
func FireAndForgetEffect[P any](
	ctx context.Context,
	enum model.EffectEnum,
	payload P,
) {
	handler := sharedHelper.MustGetTypedValue[handlers.FireAndForgetHandler[P]](
		func() (any, error) {
			return helper.GetHandler(ctx, enum)
		},
	)
	handler.FireAndForgetEffect(ctx, payload)
}

// HasHandler reports whether a handler for enum is registered in ctx.
func HasHandler(ctx context.Context, enum model.EffectEnum) bool {
	_, err := helper.GetHandler(ctx, enum)
	return err == nil
}

// register stores handler under enum and returns the teardown that closes it
// and hands back the context from before registration.
func register(
	ctx context.Context,
	enum model.EffectEnum,
	kind string,
	effectID string,
	closeFn func(),
	handler any,
) (context.Context, func() context.Context) {
	ctxWith := context.WithValue(ctx, enum, handler)
	zap.L().Debug("created effect handler",
		zap.String("kind", kind),
		zap.String("effectId", effectID),
		zap.String("enum", string(enum)),
	)

	return ctxWith, func() context.Context {
		closeFn()
		zap.L().Debug("closed effect handler",
			zap.String("kind", kind),
			zap.String("effectId", effectID),
			zap.String("enum", string(enum)),
		)
		return ctx
	}
}

// normalizeTeardown flattens optional teardown functions into a single callable.
//
// Accepts either 0 or 1 teardown functions. Panics if more than one is passed.
func normalizeTeardown(teardown []func()) func() {
	switch len(teardown) {
	case 1:
		return teardown[0]
	case 0:
		return func() {}
	default:
		panic("normalizeTeardown: only one or zero teardown functions allowed")
	}
}
