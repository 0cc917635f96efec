// Package effects registers effect handlers on a context and performs effects
// against them.
//
// A handler is bound to an effect enum with one of the WithXxxEffectHandler
// functions. The returned teardown closes the handler's workers and hands back
// the parent context:
//
//	ctx, end := effects.WithResumableEffectHandler(ctx, 1, model.EffectProfileStore, lookup)
//	defer end()
//
//	p, err := effects.PerformResumableEffect[store.Payload, profile.Profile](ctx, model.EffectProfileStore, store.Lookup{UserID: id})
//
// Resumable effects wait for a result; fire-and-forget effects return
// immediately. Partitionable payloads with the same PartitionKey are handled by
// the same worker, in order.
//
// Performing an effect without a registered handler panics with an error
// wrapping model.ErrNoEffectHandler.
//
// Profile specific effects live in the log, store and notification
// subpackages.
package effects
