package reader

import (
	"context"
	"fmt"

	"github.com/on-the-ground/effect_ive_profile/profile"
	"github.com/on-the-ground/effect_ive_profile/pure"
	"github.com/on-the-ground/effect_ive_profile/services"
)

// App is a use case step waiting for services.
type App[T any] = Reader[services.Services, T]

func logInfo(message string) App[struct{}] {
	return func(_ context.Context, env services.Services) (struct{}, error) {
		env.Logger.Info(message)
		return struct{}{}, nil
	}
}

func queryProfile(userID profile.UserID) App[services.Result[profile.Profile]] {
	return func(ctx context.Context, env services.Services) (services.Result[profile.Profile], error) {
		return services.ResultFrom(env.Store.Lookup(ctx, userID)), nil
	}
}

func update(report services.Report, p profile.Profile) App[services.Report] {
	return func(ctx context.Context, env services.Services) (services.Report, error) {
		report.PersistErr = env.Store.Persist(ctx, p)
		report.Persisted = report.PersistErr == nil
		return report, nil
	}
}

func sendChangeNotification(report services.Report, msg profile.EmailMessage) App[services.Report] {
	return func(ctx context.Context, env services.Services) (services.Report, error) {
		report.NotifyErr = env.Sender.Send(ctx, msg)
		report.Notified = report.NotifyErr == nil
		return report, nil
	}
}

// UpdateCustomerProfile describes the profile update. Nothing happens until
// the returned Reader is run with services.
func UpdateCustomerProfile(newProfile profile.Profile) App[services.Report] {
	return FlatMap(queryProfile(newProfile.UserID), func(current services.Result[profile.Profile]) App[services.Report] {
		if current.Failed() {
			return Fail[services.Services, services.Report](
				fmt.Errorf("lookup profile %s: %w", newProfile.UserID, current.Err),
			)
		}

		decision := pure.Decide(newProfile, current.Value)
		report := services.Report{Decision: decision}
		return pure.Match(decision,
			func() App[services.Report] {
				return Of[services.Services](report)
			},
			func(d pure.UpdateProfileOnly) App[services.Report] {
				return Then(logInfo(pure.LogUpdatingProfile), update(report, d.Profile))
			},
			func(d pure.UpdateProfileAndNotify) App[services.Report] {
				return Then(logInfo(pure.LogUpdatingProfile),
					Then(logInfo(pure.LogSendingEmail),
						FlatMap(update(report, d.Profile), func(r services.Report) App[services.Report] {
							return sendChangeNotification(r, d.EmailMessage)
						}),
					),
				)
			},
		)
	})
}
