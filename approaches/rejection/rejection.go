// Package rejection keeps the decision pure and does the I/O around it:
// lookup, pure.Decide, then a switch on the decision.
package rejection

import (
	"context"
	"fmt"

	"github.com/on-the-ground/effect_ive_profile/profile"
	"github.com/on-the-ground/effect_ive_profile/pure"
	"github.com/on-the-ground/effect_ive_profile/services"
)

// Updater holds the collaborators chosen at construction; calls cannot
// override them.
type Updater struct {
	svc services.Services
}

func NewUpdater(svc services.Services) *Updater {
	return &Updater{svc: svc}
}

func (u *Updater) UpdateCustomerProfile(ctx context.Context, newProfile profile.Profile) (services.Report, error) {
	current, err := u.svc.Store.Lookup(ctx, newProfile.UserID)
	if err != nil {
		u.svc.Logger.Error(err.Error())
		return services.Report{}, fmt.Errorf("lookup profile %s: %w", newProfile.UserID, err)
	}

	report := services.Report{Decision: pure.Decide(newProfile, current)}
	for _, msg := range pure.DecisionLogs(report.Decision) {
		u.svc.Logger.Info(msg)
	}

	switch d := report.Decision.(type) {
	case pure.NoAction:
	case pure.UpdateProfileOnly:
		report.PersistErr = u.svc.Store.Persist(ctx, d.Profile)
		report.Persisted = report.PersistErr == nil
	case pure.UpdateProfileAndNotify:
		report.PersistErr = u.svc.Store.Persist(ctx, d.Profile)
		report.Persisted = report.PersistErr == nil
		report.NotifyErr = u.svc.Sender.Send(ctx, d.EmailMessage)
		report.Notified = report.NotifyErr == nil
	default:
		panic(fmt.Sprintf("exhaustive match fallback, decision type: %T", d))
	}
	return report, nil
}
