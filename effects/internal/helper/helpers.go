package helper

import (
	"context"
	"fmt"

	"github.com/on-the-ground/effect_ive_profile/effects/model"
)

// GetHandler checks whether a handler for the given EffectEnum is registered in the context.
// Returns an error wrapping model.ErrNoEffectHandler if not found.
func GetHandler(ctx context.Context, enum model.EffectEnum) (any, error) {
	raw := ctx.Value(enum)
	if raw == nil {
		return nil, fmt.Errorf("%w: %v", model.ErrNoEffectHandler, enum)
	}
	return raw, nil
}
