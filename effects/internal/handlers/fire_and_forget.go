package handlers

import (
	"context"

	"github.com/on-the-ground/effect_ive_profile/effects/model"
	"go.uber.org/zap"
)

// NewFireAndForgetHandler starts a single worker handling payloads in order.
func NewFireAndForgetHandler[P any](
	ctx context.Context,
	bufferSize int,
	handleFn func(context.Context, P),
	teardown func(),
) FireAndForgetHandler[P] {
	return FireAndForgetHandler[P]{
		effectScope: newEffectScope(
			ctx,
			func(ctx context.Context) WorkerDispatcher[fireAndForgetEffectMessage[P]] {
				return NewSingleQueue(ctx, bufferSize, forget(handleFn))
			},
			teardown,
		),
	}
}

// NewPartitionableFireAndForgetHandler hashes PartitionKey to pick a worker.
func NewPartitionableFireAndForgetHandler[P model.Partitionable](
	ctx context.Context,
	config model.EffectScopeConfig,
	handleFn func(context.Context, P),
	teardown func(),
) FireAndForgetHandler[P] {
	return FireAndForgetHandler[P]{
		effectScope: newEffectScope(
			ctx,
			func(ctx context.Context) WorkerDispatcher[fireAndForgetEffectMessage[P]] {
				return NewPartitionedQueue(ctx, config.NumWorkers, config.BufferSize, forget(handleFn))
			},
			teardown,
		),
	}
}

func forget[P any](handleFn func(context.Context, P)) func(context.Context, fireAndForgetEffectMessage[P]) {
	return func(ctx context.Context, msg fireAndForgetEffectMessage[P]) {
		handleFn(ctx, msg.payload)
	}
}

type FireAndForgetHandler[P any] struct {
	*effectScope[fireAndForgetEffectMessage[P]]
}

// FireAndForgetEffect queues payload without waiting for it to be handled.
// Payloads sent to a closed handler are dropped.
func (ffh FireAndForgetHandler[P]) FireAndForgetEffect(ctx context.Context, payload P) {
	if err := ffh.send(ctx, fireAndForgetEffectMessage[P]{payload: payload}); err != nil {
		zap.L().Debug("fire/forget effect dropped",
			zap.String("effectId", ffh.EffectId),
			zap.Error(err),
		)
	}
}

type fireAndForgetEffectMessage[P any] struct {
	payload P
}

func (msg fireAndForgetEffectMessage[P]) PartitionKey() string {
	if p, ok := any(msg.payload).(model.Partitionable); ok {
		return p.PartitionKey()
	}
	return ""
}
