package store

import (
	"fmt"

	"github.com/on-the-ground/effect_ive_profile/profile"
)

var (
	_ Payload = Lookup{}
	_ Payload = Persist{}
)

// Payload is a sealed interface for profile store operations.
// Only Lookup and Persist implement it.
type Payload interface {
	PartitionKey() string
	payload()
}

// Lookup reads the profile stored for UserID.
type Lookup struct {
	UserID profile.UserID
}

// PartitionKey routes every operation on one user to the same worker.
func (p Lookup) PartitionKey() string { return p.UserID }
func (p Lookup) payload()             {}

// Persist writes Profile, replacing any profile with the same user id.
type Persist struct {
	Profile profile.Profile
}

func (p Persist) PartitionKey() string { return p.Profile.UserID }
func (p Persist) payload()             {}

func matchPayload[T any](
	payload Payload,
	onLookup func(Lookup) T,
	onPersist func(Persist) T,
) T {
	switch p := payload.(type) {
	case Lookup:
		return onLookup(p)
	case Persist:
		return onPersist(p)
	}
	panic(fmt.Sprintf("exhaustive match fallback, payload type: %T", payload))
}
