package notification

import (
	"context"

	"github.com/on-the-ground/effect_ive_profile/effects"
	"github.com/on-the-ground/effect_ive_profile/effects/model"
	"github.com/on-the-ground/effect_ive_profile/profile"
	"github.com/on-the-ground/effect_ive_profile/services"
)

// Payload asks the handler to deliver Message.
type Payload struct {
	Message profile.EmailMessage
}

// PartitionKey keeps messages to one address in order.
func (p Payload) PartitionKey() string {
	return p.Message.To
}

// WithEffectHandler registers a resumable notification handler delivering
// through sender.
func WithEffectHandler(
	ctx context.Context,
	config model.EffectScopeConfig,
	sender services.NotificationSender,
) (context.Context, func() context.Context) {
	return effects.WithResumablePartitionableEffectHandler(
		ctx,
		config,
		model.EffectNotification,
		func(ctx context.Context, p Payload) (struct{}, error) {
			return struct{}{}, sender.Send(ctx, p.Message)
		},
	)
}

// Effect sends msg and waits for the sender's answer.
func Effect(ctx context.Context, msg profile.EmailMessage) error {
	_, err := effects.PerformResumableEffect[Payload, struct{}](
		ctx,
		model.EffectNotification,
		Payload{Message: msg},
	)
	return err
}
