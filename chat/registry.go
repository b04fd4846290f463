package chat

import (
	"sync"
)

// Registry is a mapping of room names to live Room instances. It is owned by
// whatever component accepts connections and handed down explicitly, there
// is no package-level instance.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms: map[string]*Room{},
	}
}

// GetOrCreate returns the room with the given name, creating it on first
// reference. Rooms live for the registry's lifetime.
func (reg *Registry) GetOrCreate(name string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[name]
	if !ok {
		room = newRoom(name)
		reg.rooms[name] = room
		logger.Printf("created room %q", name)
	}
	return room
}

// Len returns the number of rooms created so far.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.rooms)
}
