// Package retention updates profiles with collaborators it builds itself.
//
// Nothing can be substituted: the store is canned, mails go to an in-memory
// outbox and progress is logged through the global zap logger.
package retention

import (
	"context"
	"fmt"

	"github.com/on-the-ground/effect_ive_profile/profile"
	"github.com/on-the-ground/effect_ive_profile/pure"
	"github.com/on-the-ground/effect_ive_profile/services"
	"go.uber.org/zap"
)

type Updater struct {
	store  services.CannedStore
	outbox *services.Outbox
}

func New() *Updater {
	return &Updater{outbox: services.NewOutbox()}
}

// Outbox returns the messages sent so far.
func (u *Updater) Outbox() []profile.EmailMessage {
	return u.outbox.Sent()
}

func (u *Updater) UpdateCustomerProfile(ctx context.Context, newProfile profile.Profile) (services.Report, error) {
	report := services.Report{Decision: pure.NoAction{}}

	current, err := u.store.Lookup(ctx, newProfile.UserID)
	if err != nil {
		return report, fmt.Errorf("lookup profile %s: %w", newProfile.UserID, err)
	}

	if current != newProfile {
		zap.L().Info(pure.LogUpdatingProfile, zap.String("userId", newProfile.UserID))
		report.Decision = pure.UpdateProfileOnly{Profile: newProfile}
		report.PersistErr = u.store.Persist(ctx, newProfile)
		report.Persisted = report.PersistErr == nil
	}

	if current.EmailAddress != newProfile.EmailAddress {
		msg := profile.EmailMessage{To: newProfile.EmailAddress, Body: profile.VerificationBody}
		zap.L().Info(pure.LogSendingEmail, zap.String("to", msg.To))
		report.Decision = pure.UpdateProfileAndNotify{Profile: newProfile, EmailMessage: msg}
		report.NotifyErr = u.outbox.Send(ctx, msg)
		report.Notified = report.NotifyErr == nil
	}

	return report, nil
}
