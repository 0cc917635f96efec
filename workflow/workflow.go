// Package workflow defines the profile update as a program of instructions
// and the handlers that interpret them.
package workflow

import (
	"context"
	"fmt"

	"github.com/on-the-ground/effect_ive_profile/interpreter"
	"github.com/on-the-ground/effect_ive_profile/profile"
	"github.com/on-the-ground/effect_ive_profile/pure"
	"github.com/on-the-ground/effect_ive_profile/services"
	"github.com/on-the-ground/effect_ive_profile/shared/helper"
)

type options struct {
	progressLogging bool
}

// Option configures UpdateProfile.
type Option func(*options)

// WithProgressLogging makes the program yield Info instructions describing
// what it is about to do, and an Error instruction when the lookup fails.
func WithProgressLogging() Option {
	return func(o *options) { o.progressLogging = true }
}

// WithProgressLoggingIf is WithProgressLogging when enabled is true.
func WithProgressLoggingIf(enabled bool) Option {
	return func(o *options) { o.progressLogging = enabled }
}

// UpdateProfile returns the program updating the stored profile of
// newProfile.UserID.
//
// The program yields Query first. A failed lookup ends it with the lookup
// error. Otherwise it yields Update for a changed profile, followed by
// SendChangeNotification when the email address changed. Update and send
// results are recorded in the Report and never change what comes next.
func UpdateProfile(newProfile profile.Profile, opts ...Option) *interpreter.Program[Instruction, services.Report] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return interpreter.New(func(yield interpreter.Yield[Instruction]) (services.Report, error) {
		var report services.Report

		current, err := resumeAs[services.Result[profile.Profile]](yield, Query{UserID: newProfile.UserID})
		if err != nil {
			return report, err
		}
		if current.Failed() {
			if o.progressLogging {
				yield(Error{Message: current.Err.Error()})
			}
			return report, fmt.Errorf("lookup profile %s: %w", newProfile.UserID, current.Err)
		}

		report.Decision = pure.Decide(newProfile, current.Value)
		if o.progressLogging {
			for _, msg := range pure.DecisionLogs(report.Decision) {
				yield(Info{Message: msg})
			}
		}

		return pure.Match(report.Decision,
			func() resumed {
				return resumed{report: report}
			},
			func(d pure.UpdateProfileOnly) resumed {
				return persist(yield, report, d.Profile)
			},
			func(d pure.UpdateProfileAndNotify) resumed {
				res := persist(yield, report, d.Profile)
				if res.err != nil {
					return res
				}
				return notify(yield, res.report, d.EmailMessage)
			},
		).unpack()
	})
}

// resumed carries a body's partial outcome through pure.Match.
type resumed struct {
	report services.Report
	err    error
}

func (r resumed) unpack() (services.Report, error) {
	return r.report, r.err
}

func persist(yield interpreter.Yield[Instruction], report services.Report, p profile.Profile) resumed {
	res, err := resumeAs[services.Result[struct{}]](yield, Update{Profile: p})
	if err != nil {
		return resumed{report: report, err: err}
	}
	report.Persisted = !res.Failed()
	report.PersistErr = res.Err
	return resumed{report: report}
}

func notify(yield interpreter.Yield[Instruction], report services.Report, msg profile.EmailMessage) resumed {
	res, err := resumeAs[services.Result[struct{}]](yield, SendChangeNotification{Message: msg})
	if err != nil {
		return resumed{report: report, err: err}
	}
	report.Notified = !res.Failed()
	report.NotifyErr = res.Err
	return resumed{report: report}
}

// resumeAs yields instr and asserts the resumed value to T.
func resumeAs[T any](yield interpreter.Yield[Instruction], instr Instruction) (T, error) {
	v, err := helper.GetTypedValueOf[T](func() (any, error) {
		return yield(instr), nil
	})
	if err != nil {
		return v, fmt.Errorf("resume %s: %w", instr.Tag(), err)
	}
	return v, nil
}

// Execute runs the UpdateProfile program with handle.
func Execute(
	ctx context.Context,
	newProfile profile.Profile,
	handle interpreter.Handler[Instruction],
	opts ...Option,
) (services.Report, interpreter.Trace[Instruction], error) {
	return interpreter.Run(ctx, UpdateProfile(newProfile, opts...), handle)
}
