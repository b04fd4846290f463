package chat

import (
	"wschat/chat/message"
)

// Room is a named set of sessions sharing broadcast scope. Rooms are created
// through a Registry and never destroyed.
type Room struct {
	name    string
	members *memberSet
}

func newRoom(name string) *Room {
	return &Room{
		name:    name,
		members: newMemberSet(),
	}
}

// Name of the room, its key in the registry.
func (r *Room) Name() string {
	return r.name
}

// Join adds a session to the room's members. The caller announces.
func (r *Room) Join(s *Session) {
	r.members.Add(s)
}

// Leave removes a session from the room's members. Leaving a room the
// session is not in is a no-op, error paths may leave twice.
func (r *Room) Leave(s *Session) {
	r.members.Remove(s.ID())
}

// Broadcast serializes m once and delivers the identical bytes to every
// member present at call time. Each delivery is best-effort, a dead member
// does not abort the rest.
func (r *Room) Broadcast(m message.Outbound) {
	data, err := m.Encode()
	if err != nil {
		logger.Printf("dropping broadcast to %q: %v", r.name, err)
		return
	}
	r.members.Each(func(s *Session) {
		s.send(data)
	})
}

// Member returns the first member whose display name equals name. Display
// names are not unique, first match wins.
func (r *Room) Member(name string) (*Session, bool) {
	var found *Session
	r.members.Each(func(s *Session) {
		if found == nil && s.Name() == name {
			found = s
		}
	})
	return found, found != nil
}

// Names returns the display names of all current members. Sessions that have
// not joined yet are not listed.
func (r *Room) Names() []string {
	names := make([]string, 0, r.members.Len())
	r.members.Each(func(s *Session) {
		if name := s.Name(); name != "" {
			names = append(names, name)
		}
	})
	return names
}

// Len returns the number of members right now.
func (r *Room) Len() int {
	return r.members.Len()
}
