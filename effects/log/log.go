package log

import (
	"context"

	"github.com/on-the-ground/effect_ive_profile/effects"
	"github.com/on-the-ground/effect_ive_profile/effects/model"
	"go.uber.org/zap"
)

// LogLevel defines the severity level for log messages.
type LogLevel string

const (
	// LogInfo is used for general informational messages.
	LogInfo LogLevel = "info"

	// LogWarn is used for potentially harmful situations.
	LogWarn LogLevel = "warn"

	// LogError is used for error events that might still allow the application to continue running.
	LogError LogLevel = "error"

	// LogDebug is used for debugging messages with detailed internal information.
	LogDebug LogLevel = "debug"
)

// LogPayload is the payload structure for logging effect.
// Lines sharing a Partition (usually a run id) are written in order.
type LogPayload struct {
	Level     LogLevel
	Message   string
	Fields    map[string]any
	Partition string
}

func (lp LogPayload) PartitionKey() string {
	return lp.Partition
}

// WithZapEffectHandler registers a fire-and-forget log effect handler writing to logger.
// The teardown syncs the logger; the context it returns should be used afterwards.
func WithZapEffectHandler(
	ctx context.Context,
	config model.EffectScopeConfig,
	logger *zap.Logger,
) (context.Context, func() context.Context) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return effects.WithFireAndForgetPartitionableEffectHandler(
		ctx,
		config,
		model.EffectLog,
		func(ctx context.Context, payload LogPayload) {
			write(logger, payload)
		},
		func() {
			// stdout/stderr sinks return EINVAL on sync
			_ = logger.Sync()
		},
	)
}

func write(logger *zap.Logger, payload LogPayload) {
	fields := make([]zap.Field, 0, len(payload.Fields)+1)
	for k, v := range payload.Fields {
		fields = append(fields, zap.Any(k, v))
	}
	if payload.Partition != "" {
		fields = append(fields, zap.String("partition", payload.Partition))
	}

	switch payload.Level {
	case LogInfo:
		logger.Info(payload.Message, fields...)
	case LogWarn:
		logger.Warn(payload.Message, fields...)
	case LogError:
		logger.Error(payload.Message, fields...)
	case LogDebug:
		logger.Debug(payload.Message, fields...)
	default:
		logger.Info(payload.Message, fields...)
	}
}

// Effect performs a fire-and-forget log effect using the EffectLog handler in the context.
func Effect(ctx context.Context, level LogLevel, msg string, fields map[string]any) {
	EffectIn(ctx, "", level, msg, fields)
}

// EffectIn is Effect with an explicit partition.
func EffectIn(ctx context.Context, partition string, level LogLevel, msg string, fields map[string]any) {
	effects.FireAndForgetEffect(ctx, model.EffectLog, LogPayload{
		Level:     level,
		Message:   msg,
		Fields:    fields,
		Partition: partition,
	})
}
