package services

import (
	"context"
	"sync"

	"github.com/on-the-ground/effect_ive_profile/profile"
)

var (
	_ ProfileStore       = CannedStore{}
	_ NotificationSender = (*Outbox)(nil)
)

// CannedStore answers every lookup with the same stored profile and accepts
// every write.
type CannedStore struct{}

const (
	CannedName  = "MarcoPolo"
	CannedEmail = "marcopolo@mp.com"
)

func (CannedStore) Lookup(_ context.Context, userID profile.UserID) (profile.Profile, error) {
	return profile.Profile{
		UserID:       userID,
		Name:         CannedName,
		EmailAddress: CannedEmail,
	}, nil
}

func (CannedStore) Persist(context.Context, profile.Profile) error {
	return nil
}

// Outbox keeps every message it is asked to send.
type Outbox struct {
	mu   sync.Mutex
	sent []profile.EmailMessage
}

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Send(_ context.Context, msg profile.EmailMessage) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, msg)
	return nil
}

// Sent returns a copy of the delivered messages, oldest first.
func (o *Outbox) Sent() []profile.EmailMessage {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]profile.EmailMessage(nil), o.sent...)
}

// Default returns the canned store, an empty outbox and a discarding logger.
func Default() Services {
	return Services{
		Logger: NewZapLogger(nil),
		Store:  CannedStore{},
		Sender: NewOutbox(),
	}
}
