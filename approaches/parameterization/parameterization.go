// Package parameterization passes every collaborator in explicitly.
package parameterization

import (
	"context"
	"fmt"

	"github.com/on-the-ground/effect_ive_profile/profile"
	"github.com/on-the-ground/effect_ive_profile/pure"
	"github.com/on-the-ground/effect_ive_profile/services"
)

// UpdateFunc updates one profile with collaborators bound earlier.
type UpdateFunc func(ctx context.Context, newProfile profile.Profile) (services.Report, error)

// UpdateCustomerProfile looks up the stored profile through svc, decides,
// and applies the decision through svc.
func UpdateCustomerProfile(ctx context.Context, svc services.Services, newProfile profile.Profile) (services.Report, error) {
	current, err := svc.Store.Lookup(ctx, newProfile.UserID)
	if err != nil {
		return services.Report{}, fmt.Errorf("lookup profile %s: %w", newProfile.UserID, err)
	}

	decision := decide(newProfile, current, svc.Logger)
	return pure.Match(decision,
		func() services.Report {
			return services.Report{Decision: decision}
		},
		func(d pure.UpdateProfileOnly) services.Report {
			return persist(ctx, svc.Store, services.Report{Decision: d}, d.Profile)
		},
		func(d pure.UpdateProfileAndNotify) services.Report {
			report := persist(ctx, svc.Store, services.Report{Decision: d}, d.Profile)
			report.NotifyErr = svc.Sender.Send(ctx, d.EmailMessage)
			report.Notified = report.NotifyErr == nil
			return report
		},
	), nil
}

// NewUpdater binds svc once and returns the per-profile update.
func NewUpdater(svc services.Services) UpdateFunc {
	return func(ctx context.Context, newProfile profile.Profile) (services.Report, error) {
		return UpdateCustomerProfile(ctx, svc, newProfile)
	}
}

// decide is pure.Decide plus the progress messages, written to logger.
func decide(newProfile, current profile.Profile, logger services.Logger) pure.Decision {
	decision := pure.Decide(newProfile, current)
	for _, msg := range pure.DecisionLogs(decision) {
		logger.Info(msg)
	}
	return decision
}

func persist(ctx context.Context, store services.ProfileStore, report services.Report, p profile.Profile) services.Report {
	report.PersistErr = store.Persist(ctx, p)
	report.Persisted = report.PersistErr == nil
	return report
}
