package message

import (
	"encoding/json"
	"errors"
	"fmt"
)

// The error returned when a decoded frame carries a type that is not one of
// the recognized client message kinds.
var ErrUnknownType = errors.New("unrecognized message type")

// Wire values for the type field, shared by both directions.
const (
	TypeJoin       = "join"
	TypeChat       = "chat"
	TypeJoke       = "joke"
	TypeMembers    = "members"
	TypePrivate    = "priv"
	TypeNameChange = "nameChange"
	TypeNote       = "note"
	TypeAlert      = "alert"
)

// Inbound is a client-to-server message, one of the six recognized kinds.
type Inbound interface {
	inbound()
}

// Join sets the sender's display name and adds it to the room.
type Join struct {
	Name string `json:"name"`
}

// Chat is a public message to the sender's room.
type Chat struct {
	Text string `json:"text"`
}

// Joke requests a joke from the external provider, sent back to the sender
// only.
type Joke struct{}

// Members requests the list of display names in the sender's room.
type Members struct{}

// Private is a message to a single named member of the room.
type Private struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

// NameChange replaces the sender's display name.
type NameChange struct {
	NewName string `json:"newName"`
}

func (Join) inbound()       {}
func (Chat) inbound()       {}
func (Joke) inbound()       {}
func (Members) inbound()    {}
func (Private) inbound()    {}
func (NameChange) inbound() {}

type envelope struct {
	Type string `json:"type"`
}

// Decode parses a raw frame into one of the Inbound kinds. A frame that is
// not valid JSON is a protocol violation and returns the unmarshal error; a
// valid frame with an unknown type returns ErrUnknownType.
func Decode(data []byte) (Inbound, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("malformed frame: %w", err)
	}

	switch env.Type {
	case TypeJoin:
		var m Join
		err := json.Unmarshal(data, &m)
		return m, err
	case TypeChat:
		var m Chat
		err := json.Unmarshal(data, &m)
		return m, err
	case TypeJoke:
		return Joke{}, nil
	case TypeMembers:
		return Members{}, nil
	case TypePrivate:
		var m Private
		err := json.Unmarshal(data, &m)
		return m, err
	case TypeNameChange:
		var m NameChange
		err := json.Unmarshal(data, &m)
		return m, err
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
}

// Outbound is a server-to-client message that can serialize itself for the
// wire.
type Outbound interface {
	Encode() ([]byte, error)
}

// ChatMsg is a chat line shown with a sender name. Also used for
// server-generated lines attributed to sentinel names.
type ChatMsg struct {
	Type string `json:"type"`
	Name string `json:"name"`
	Text string `json:"text"`
}

// NewChatMsg creates a chat message from the given name.
func NewChatMsg(name, text string) ChatMsg {
	return ChatMsg{Type: TypeChat, Name: name, Text: text}
}

func (m ChatMsg) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// NoteMsg is a system announcement, like a join or leave event.
type NoteMsg struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewNoteMsg creates a note announcement.
func NewNoteMsg(text string) NoteMsg {
	return NoteMsg{Type: TypeNote, Text: text}
}

func (m NoteMsg) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// AlertMsg is an emphasized system announcement, like a name change.
type AlertMsg struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewAlertMsg creates an alert announcement.
func NewAlertMsg(text string) AlertMsg {
	return AlertMsg{Type: TypeAlert, Text: text}
}

func (m AlertMsg) Encode() ([]byte, error) {
	return json.Marshal(m)
}
