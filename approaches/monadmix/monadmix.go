// Package monadmix mixes two techniques: the decision is a Reader over the
// logger only, and the I/O around it runs in a program that yields the
// outcome of every collaborator call.
//
// The program does its own I/O; its driver only observes the outcomes and
// decides whether to let it continue.
package monadmix

import (
	"context"
	"fmt"

	"github.com/on-the-ground/effect_ive_profile/approaches/reader"
	"github.com/on-the-ground/effect_ive_profile/interpreter"
	"github.com/on-the-ground/effect_ive_profile/profile"
	"github.com/on-the-ground/effect_ive_profile/pure"
	"github.com/on-the-ground/effect_ive_profile/services"
)

// Step names the collaborator call an Outcome comes from.
type Step string

const (
	StepLookup  Step = "lookup"
	StepPersist Step = "persist"
	StepSend    Step = "send"
)

// Outcome is the result of one collaborator call.
type Outcome struct {
	Step Step
	Err  error
}

// Decide is pure.Decide as a Reader over the logger: running it writes the
// progress messages of the decision.
func Decide(newProfile, current profile.Profile) reader.Reader[services.Logger, pure.Decision] {
	return reader.Map(reader.Ask[services.Logger](), func(logger services.Logger) pure.Decision {
		decision := pure.Decide(newProfile, current)
		for _, msg := range pure.DecisionLogs(decision) {
			logger.Info(msg)
		}
		return decision
	})
}

// UpdateCustomerProfile binds svc and returns the program factory. Each
// program looks the profile up, runs Decide with svc.Logger, then persists
// and sends as decided, yielding after every call.
func UpdateCustomerProfile(ctx context.Context, svc services.Services) func(profile.Profile) *interpreter.Program[Outcome, services.Report] {
	return func(newProfile profile.Profile) *interpreter.Program[Outcome, services.Report] {
		return interpreter.New(func(yield interpreter.Yield[Outcome]) (services.Report, error) {
			var report services.Report

			current, err := svc.Store.Lookup(ctx, newProfile.UserID)
			yield(Outcome{Step: StepLookup, Err: err})
			if err != nil {
				return report, fmt.Errorf("lookup profile %s: %w", newProfile.UserID, err)
			}

			report.Decision, err = reader.Run(ctx, svc.Logger, Decide(newProfile, current))
			if err != nil {
				return report, err
			}

			switch d := report.Decision.(type) {
			case pure.NoAction:
			case pure.UpdateProfileOnly:
				report.PersistErr = svc.Store.Persist(ctx, d.Profile)
				report.Persisted = report.PersistErr == nil
				yield(Outcome{Step: StepPersist, Err: report.PersistErr})
			case pure.UpdateProfileAndNotify:
				report.PersistErr = svc.Store.Persist(ctx, d.Profile)
				report.Persisted = report.PersistErr == nil
				yield(Outcome{Step: StepPersist, Err: report.PersistErr})
				report.NotifyErr = svc.Sender.Send(ctx, d.EmailMessage)
				report.Notified = report.NotifyErr == nil
				yield(Outcome{Step: StepSend, Err: report.NotifyErr})
			default:
				panic(fmt.Sprintf("exhaustive match fallback, decision type: %T", d))
			}
			return report, nil
		})
	}
}

// observe lets the program continue after every outcome.
func observe(context.Context, Outcome) (any, error) {
	return nil, nil
}

// Execute runs one update to completion and returns the outcomes in order.
func Execute(ctx context.Context, svc services.Services, newProfile profile.Profile) (services.Report, []Outcome, error) {
	report, trace, err := interpreter.Run(ctx, UpdateCustomerProfile(ctx, svc)(newProfile), observe)
	return report, trace.Instructions(), err
}
