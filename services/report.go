package services

import (
	"github.com/on-the-ground/effect_ive_profile/pure"
	"go.uber.org/multierr"
)

// Report records what one profile update did.
//
// PersistErr and NotifyErr are recorded after the fact; a failed persist does
// not prevent the notification from being sent.
type Report struct {
	Decision   pure.Decision
	Persisted  bool
	Notified   bool
	PersistErr error
	NotifyErr  error
}

// Err combines the persistence and notification failures, if any.
func (r Report) Err() error {
	return multierr.Combine(r.PersistErr, r.NotifyErr)
}

// Errors lists the individual failures combined by Err.
func (r Report) Errors() []error {
	return multierr.Errors(r.Err())
}
