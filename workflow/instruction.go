package workflow

import (
	"github.com/on-the-ground/effect_ive_profile/profile"
)

// Tag names the effect an instruction asks for.
type Tag string

const (
	TagInfo                   Tag = "Info"
	TagError                  Tag = "Error"
	TagQuery                  Tag = "Query"
	TagUpdate                 Tag = "Update"
	TagSendChangeNotification Tag = "SendChangeNotification"
)

// Instruction describes one effect. It carries data only; an interpreter
// decides how to perform it.
type Instruction interface {
	Tag() Tag
	instruction()
}

var (
	_ Instruction = Info{}
	_ Instruction = Error{}
	_ Instruction = Query{}
	_ Instruction = Update{}
	_ Instruction = SendChangeNotification{}
)

// Info logs Message. Resumed with nil.
type Info struct {
	Message string
}

func (Info) Tag() Tag     { return TagInfo }
func (Info) instruction() {}

// Error logs Message as an error. Resumed with nil.
type Error struct {
	Message string
}

func (Error) Tag() Tag     { return TagError }
func (Error) instruction() {}

// Query reads the stored profile of UserID.
// Resumed with a services.Result[profile.Profile].
type Query struct {
	UserID profile.UserID
}

func (Query) Tag() Tag     { return TagQuery }
func (Query) instruction() {}

// Update persists Profile. Resumed with a services.Result[struct{}].
type Update struct {
	Profile profile.Profile
}

func (Update) Tag() Tag     { return TagUpdate }
func (Update) instruction() {}

// SendChangeNotification delivers Message. Resumed with a services.Result[struct{}].
type SendChangeNotification struct {
	Message profile.EmailMessage
}

func (SendChangeNotification) Tag() Tag     { return TagSendChangeNotification }
func (SendChangeNotification) instruction() {}

// Tags returns the tag of every instruction, in order.
func Tags(instrs []Instruction) []Tag {
	tags := make([]Tag, 0, len(instrs))
	for _, i := range instrs {
		tags = append(tags, i.Tag())
	}
	return tags
}
