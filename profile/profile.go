// Package profile holds the business types of the profile update use case.
package profile

// UserID identifies a user.
type UserID = string

// Profile is the user-facing record that an update replaces as a whole.
// It is a plain value: two profiles are the same when every field is equal.
type Profile struct {
	UserID       UserID
	Name         string
	EmailAddress string
}

// EmailMessage is a message addressed to a single recipient.
type EmailMessage struct {
	To   string
	Body string
}

// VerificationBody is the body of the mail sent when an email address changes.
const VerificationBody = "Please verify your email"

// NewVerificationEmail builds the verification mail for the profile's address.
func NewVerificationEmail(p Profile) EmailMessage {
	return EmailMessage{
		To:   p.EmailAddress,
		Body: VerificationBody,
	}
}
