package model

import "errors"

type EffectEnum string

const (
	EffectLog          EffectEnum = "effect_ive_profile_effect_enum_log"
	EffectProfileStore EffectEnum = "effect_ive_profile_effect_enum_profile_store"
	EffectNotification EffectEnum = "effect_ive_profile_effect_enum_notification"
)

var ErrNoEffectHandler = errors.New("no effect handler registered for this effect")

type EffectScopeConfig struct {
	BufferSize int // default: 1
	NumWorkers int // default: 1
}

func NewEffectScopeConfig(bufferSize int, numWorkers int) EffectScopeConfig {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return EffectScopeConfig{
		BufferSize: bufferSize,
		NumWorkers: numWorkers,
	}
}

// Partitionable payloads with equal keys are handled by the same worker, in order.
type Partitionable interface {
	PartitionKey() string
}
