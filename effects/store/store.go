package store

import (
	"context"

	"github.com/on-the-ground/effect_ive_profile/effects"
	"github.com/on-the-ground/effect_ive_profile/effects/model"
	"github.com/on-the-ground/effect_ive_profile/profile"
	"github.com/on-the-ground/effect_ive_profile/services"
	"github.com/on-the-ground/effect_ive_profile/shared/helper"
)

// WithEffectHandler registers a resumable, partitionable profile store handler
// backed by repo. Operations on the same user id are handled in order by one
// worker; different users may be served concurrently.
// The context returned by the teardown function should be used for further operations.
func WithEffectHandler(
	ctx context.Context,
	config model.EffectScopeConfig,
	repo services.ProfileStore,
) (context.Context, func() context.Context) {
	h := storeHandler{repo: repo}
	return effects.WithResumablePartitionableEffectHandler(
		ctx,
		config,
		model.EffectProfileStore,
		h.handle,
	)
}

type storeHandler struct {
	repo services.ProfileStore
}

func (h storeHandler) handle(ctx context.Context, payload Payload) (any, error) {
	type result = services.Result[any]
	res := matchPayload(payload,
		func(p Lookup) result {
			v, err := h.repo.Lookup(ctx, p.UserID)
			return result{Value: v, Err: err}
		},
		func(p Persist) result {
			return result{Err: h.repo.Persist(ctx, p.Profile)}
		},
	)
	return res.Value, res.Err
}

// EffectLookup reads the profile of userID through the registered store handler.
func EffectLookup(ctx context.Context, userID profile.UserID) (profile.Profile, error) {
	return helper.GetTypedValueOf[profile.Profile](func() (any, error) {
		return effect(ctx, Lookup{UserID: userID})
	})
}

// EffectPersist writes p through the registered store handler.
func EffectPersist(ctx context.Context, p profile.Profile) error {
	_, err := effect(ctx, Persist{Profile: p})
	return err
}

func effect(ctx context.Context, payload Payload) (any, error) {
	return effects.PerformResumableEffect[Payload, any](ctx, model.EffectProfileStore, payload)
}
