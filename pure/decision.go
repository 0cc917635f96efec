package pure

import (
	"fmt"

	"github.com/on-the-ground/effect_ive_profile/profile"
)

// Decision is a sealed interface describing what an update should do.
// Only NoAction, UpdateProfileOnly and UpdateProfileAndNotify implement it.
type Decision interface {
	sealedDecision()
}

var (
	_ Decision = NoAction{}
	_ Decision = UpdateProfileOnly{}
	_ Decision = UpdateProfileAndNotify{}
)

// NoAction means the stored profile already matches the proposed one.
type NoAction struct{}

func (NoAction) sealedDecision() {}

// UpdateProfileOnly means the profile changed but its email address did not.
type UpdateProfileOnly struct {
	Profile profile.Profile
}

func (UpdateProfileOnly) sealedDecision() {}

// UpdateProfileAndNotify means the email address changed and must be verified.
type UpdateProfileAndNotify struct {
	Profile      profile.Profile
	EmailMessage profile.EmailMessage
}

func (UpdateProfileAndNotify) sealedDecision() {}

// Decide compares the proposed profile with the stored one.
//
// Profiles are compared field by field and email addresses by exact string
// equality; nothing is trimmed or case folded.
func Decide(newProfile, currentProfile profile.Profile) Decision {
	if currentProfile == newProfile {
		return NoAction{}
	}
	if currentProfile.EmailAddress == newProfile.EmailAddress {
		return UpdateProfileOnly{Profile: newProfile}
	}
	return UpdateProfileAndNotify{
		Profile:      newProfile,
		EmailMessage: profile.NewVerificationEmail(newProfile),
	}
}

// Match runs the callback of the decision's variant.
func Match[T any](
	decision Decision,
	onNoAction func() T,
	onUpdateOnly func(UpdateProfileOnly) T,
	onUpdateAndNotify func(UpdateProfileAndNotify) T,
) T {
	switch d := decision.(type) {
	case NoAction:
		return onNoAction()
	case UpdateProfileOnly:
		return onUpdateOnly(d)
	case UpdateProfileAndNotify:
		return onUpdateAndNotify(d)
	default:
		panic(fmt.Sprintf("exhaustive match fallback, decision type: %T", decision))
	}
}

const (
	// LogUpdatingProfile is logged before a profile is persisted.
	LogUpdatingProfile = "Updating Profile"
	// LogSendingEmail is logged before a verification mail is sent.
	LogSendingEmail = "Sending email"
)

// DecisionLogs returns the progress messages a decision implies, in order.
func DecisionLogs(decision Decision) []string {
	return Match(decision,
		func() []string { return nil },
		func(UpdateProfileOnly) []string {
			return []string{LogUpdatingProfile}
		},
		func(UpdateProfileAndNotify) []string {
			return []string{LogUpdatingProfile, LogSendingEmail}
		},
	)
}
