// Package services declares the collaborators the profile update needs from
// its environment, plus small in-memory implementations of them.
package services

import (
	"context"

	"github.com/on-the-ground/effect_ive_profile/profile"
)

// Logger is fire-and-forget: nothing it returns is observed.
type Logger interface {
	Info(message string)
	Error(message string)
}

// ProfileStore reads and writes profiles.
type ProfileStore interface {
	Lookup(ctx context.Context, userID profile.UserID) (profile.Profile, error)
	Persist(ctx context.Context, p profile.Profile) error
}

// NotificationSender delivers email messages.
type NotificationSender interface {
	Send(ctx context.Context, msg profile.EmailMessage) error
}

// Services bundles every collaborator of the use case.
type Services struct {
	Logger Logger
	Store  ProfileStore
	Sender NotificationSender
}

// Result is a success or failure value handed back to a workflow.
type Result[T any] struct {
	Value T
	Err   error
}

// ResultFrom adapts a Go (value, error) pair.
func ResultFrom[T any](v T, err error) Result[T] {
	return Result[T]{Value: v, Err: err}
}

// Unit wraps the outcome of an operation that returns nothing but an error.
func Unit(err error) Result[struct{}] {
	return Result[struct{}]{Err: err}
}

// Failed reports whether the result carries an error.
func (r Result[T]) Failed() bool {
	return r.Err != nil
}
