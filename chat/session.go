package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"wschat/chat/message"
)

// The error returned when an action requires a joined session.
var ErrNotJoined = errors.New("session has not joined")

// Sentinel display names for server-generated chat lines.
const (
	BotName     = "Jokester Bot"
	MembersName = "In room"
	ErrorName   = "ERROR"
)

// JokeProvider fetches one line of text from an external source. May block
// on the network and may fail.
type JokeProvider interface {
	FetchJoke(ctx context.Context) (string, error)
}

// Session is the server-side state for one client connection: its screen,
// its room, and its chosen display name. A session belongs to exactly one
// room for its whole lifetime.
//
// The screen receives one outbound frame per Write. The session does not own
// the underlying connection, the transport layer closes it.
type Session struct {
	id     string
	room   *Room
	screen io.Writer
	jokes  JokeProvider

	mu        sync.RWMutex
	name      string
	closeOnce sync.Once
}

// NewSession creates a session for a connection in the given room. The
// session starts unjoined, with no display name.
func NewSession(id string, room *Room, screen io.Writer, jokes JokeProvider) *Session {
	return &Session{
		id:     id,
		room:   room,
		screen: screen,
		jokes:  jokes,
	}
}

// ID returns the session's connection-scoped identifier.
func (s *Session) ID() string {
	return s.id
}

// Name returns the current display name, empty until the session joins.
func (s *Session) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

// Joined reports whether the session has joined its room.
func (s *Session) Joined() bool {
	return s.Name() != ""
}

// Room returns the room this session belongs to.
func (s *Session) Room() *Room {
	return s.room
}

// HandleMessage decodes one inbound frame and runs the matching action to
// completion. A malformed frame or an unrecognized type returns an error;
// the transport layer decides whether that closes the connection. Action
// level misses, like a private message to an absent user, are reported to
// the sender and do not return an error.
func (s *Session) HandleMessage(ctx context.Context, data []byte) error {
	m, err := message.Decode(data)
	if err != nil {
		return err
	}

	switch m := m.(type) {
	case message.Join:
		return s.handleJoin(m.Name)
	case message.Chat:
		return s.handleChat(m.Text)
	case message.Joke:
		return s.handleJoke(ctx)
	case message.Members:
		return s.handleMembers()
	case message.Private:
		return s.handlePrivate(m.To, m.Text)
	case message.NameChange:
		return s.handleNameChange(m.NewName)
	}
	return fmt.Errorf("%w: %T", message.ErrUnknownType, m)
}

// handleJoin sets the display name, adds the session to the room and
// announces it.
func (s *Session) handleJoin(name string) error {
	s.mu.Lock()
	s.name = name
	s.mu.Unlock()

	s.room.Join(s)
	s.room.Broadcast(message.NewNoteMsg(fmt.Sprintf("%s joined %q.", name, s.room.Name())))
	return nil
}

// handleChat broadcasts a public chat line to the room.
func (s *Session) handleChat(text string) error {
	name := s.Name()
	if name == "" {
		return ErrNotJoined
	}
	s.room.Broadcast(message.NewChatMsg(name, text))
	return nil
}

// handleJoke asks the external provider for a joke and sends it to this
// session only. A provider failure is surfaced to the user as an error
// styled chat line, never as a dropped or broken session.
func (s *Session) handleJoke(ctx context.Context) error {
	joke, err := s.jokes.FetchJoke(ctx)
	if err != nil {
		logger.Printf("joke fetch failed for %s: %v", s.id, err)
		s.sendMsg(message.NewChatMsg(ErrorName, "Could not fetch a joke. Try again later."))
		return nil
	}
	s.sendMsg(message.NewChatMsg(BotName, joke))
	return nil
}

// handleMembers sends the room's member names to this session only.
func (s *Session) handleMembers() error {
	names := s.room.Names()
	s.sendMsg(message.NewChatMsg(MembersName, strings.Join(names, ", ")))
	return nil
}

// handlePrivate delivers a chat line to a single named member. When no
// member has that name, the sender gets an error styled chat line instead.
func (s *Session) handlePrivate(to, text string) error {
	target, ok := s.room.Member(to)
	if !ok {
		s.sendMsg(message.NewChatMsg(ErrorName, fmt.Sprintf("No user found with username: %s", to)))
		return nil
	}
	target.sendMsg(message.NewChatMsg("PRIVATE FROM "+s.Name(), text))
	return nil
}

// handleNameChange replaces the display name and announces the change.
func (s *Session) handleNameChange(newName string) error {
	s.mu.Lock()
	prevName := s.name
	if prevName == "" {
		s.mu.Unlock()
		return ErrNotJoined
	}
	s.name = newName
	s.mu.Unlock()

	s.room.Broadcast(message.NewAlertMsg(fmt.Sprintf("%s changed username to %s.", prevName, newName)))
	return nil
}

// Close leaves the room and announces the departure, exactly once even if
// closure races with an in-flight action. A session that never joined
// leaves silently, there is no name to announce.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		name := s.Name()
		s.room.Leave(s)
		if name == "" {
			return
		}
		s.room.Broadcast(message.NewNoteMsg(fmt.Sprintf("%s left %s.", name, s.room.Name())))
	})
}

// sendMsg serializes m and sends it to this session only.
func (s *Session) sendMsg(m message.Outbound) {
	data, err := m.Encode()
	if err != nil {
		logger.Printf("dropping message to %s: %v", s.id, err)
		return
	}
	s.send(data)
}

// send delivers one raw frame to the owning transport. Send is best-effort:
// a failure, like a remote that already disconnected, is logged and
// discarded.
func (s *Session) send(data []byte) {
	if _, err := s.screen.Write(data); err != nil {
		logger.Printf("write failed to %s: %v", s.id, err)
	}
}
