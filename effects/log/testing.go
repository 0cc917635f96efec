package log

import (
	"context"

	"github.com/on-the-ground/effect_ive_profile/effects/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// WithTestEffectHandler registers a log handler that records every entry.
// Entries are only complete once the returned teardown has run.
func WithTestEffectHandler(
	ctx context.Context,
) (context.Context, func() context.Context, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	ctx, end := WithZapEffectHandler(ctx, model.NewEffectScopeConfig(16, 1), zap.New(core))
	return ctx, end, logs
}
