package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/on-the-ground/effect_ive_profile/approaches/monadmix"
	"github.com/on-the-ground/effect_ive_profile/approaches/parameterization"
	"github.com/on-the-ground/effect_ive_profile/approaches/reader"
	"github.com/on-the-ground/effect_ive_profile/approaches/rejection"
	"github.com/on-the-ground/effect_ive_profile/approaches/retention"
	"github.com/on-the-ground/effect_ive_profile/config"
	"github.com/on-the-ground/effect_ive_profile/effects/log"
	"github.com/on-the-ground/effect_ive_profile/effects/notification"
	effectstore "github.com/on-the-ground/effect_ive_profile/effects/store"
	"github.com/on-the-ground/effect_ive_profile/interpreter"
	"github.com/on-the-ground/effect_ive_profile/profile"
	"github.com/on-the-ground/effect_ive_profile/services"
	"github.com/on-the-ground/effect_ive_profile/store"
	"github.com/on-the-ground/effect_ive_profile/workflow"
	"go.uber.org/zap"
)

type Approach string

const (
	Retention        Approach = "retention"
	Rejection        Approach = "rejection"
	Parameterization Approach = "parameterization"
	Reader           Approach = "reader"
	MonadMix         Approach = "monadmix"
	Interpretation   Approach = "interpretation"
	Effects          Approach = "effects"
)

var approaches = []Approach{Retention, Rejection, Parameterization, Reader, MonadMix, Interpretation, Effects}

func approachList() string {
	names := make([]string, 0, len(approaches))
	for _, a := range approaches {
		names = append(names, string(a))
	}
	return strings.Join(names, "|")
}

// Run updates newProfile the way a names.
func (a Approach) Run(
	ctx context.Context,
	cfg config.Config,
	logger *zap.Logger,
	newProfile profile.Profile,
) (services.Report, error) {
	if a == Retention {
		return retention.New().UpdateCustomerProfile(ctx, newProfile)
	}

	db, err := store.NewMemDB(cfg.SeedProfiles()...)
	if err != nil {
		return services.Report{}, err
	}
	svc := services.Services{
		Logger: services.NewZapLogger(logger),
		Store:  db,
		Sender: services.NewOutbox(),
	}
	opts := []workflow.Option{workflow.WithProgressLoggingIf(cfg.Workflow.ProgressLogging)}

	switch a {
	case Rejection:
		return rejection.NewUpdater(svc).UpdateCustomerProfile(ctx, newProfile)
	case Parameterization:
		return parameterization.UpdateCustomerProfile(ctx, svc, newProfile)
	case Reader:
		return reader.Run(ctx, svc, reader.UpdateCustomerProfile(newProfile))
	case MonadMix:
		report, outcomes, err := monadmix.Execute(ctx, svc, newProfile)
		for _, o := range outcomes {
			logger.Debug("outcome", zap.String("step", string(o.Step)), zap.Error(o.Err))
		}
		return report, err
	case Interpretation:
		report, trace, err := workflow.Execute(ctx, newProfile, workflow.Interpret(svc), opts...)
		logTrace(logger, trace)
		return report, err
	case Effects:
		ctx, endLog := log.WithZapEffectHandler(ctx, cfg.Effects.Log.ScopeConfig(), logger)
		defer endLog()
		ctx, endStore := effectstore.WithEffectHandler(ctx, cfg.Effects.Store.ScopeConfig(), db)
		defer endStore()
		ctx, endNotification := notification.WithEffectHandler(ctx, cfg.Effects.Notification.ScopeConfig(), svc.Sender)
		defer endNotification()

		report, trace, err := workflow.Execute(ctx, newProfile, workflow.InterpretEffects(), opts...)
		logTrace(logger, trace)
		return report, err
	default:
		return services.Report{}, fmt.Errorf("unknown approach %q, want one of %s", a, approachList())
	}
}

func logTrace(logger *zap.Logger, trace interpreter.Trace[workflow.Instruction]) {
	for _, step := range trace.Steps {
		logger.Debug("step",
			zap.String("runId", trace.RunID),
			zap.Int("index", step.Index),
			zap.String("instruction", string(step.Instruction.Tag())),
			zap.Duration("took", step.Span.Duration()),
		)
	}
}
