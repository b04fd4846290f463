package chat

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryGetOrCreate(t *testing.T) {
	reg := NewRegistry()
	assert.Equal(t, 0, reg.Len())

	lobby := reg.GetOrCreate("lobby")
	assert.Equal(t, "lobby", lobby.Name())
	assert.Equal(t, 1, reg.Len())

	// Same name yields the same instance.
	assert.Same(t, lobby, reg.GetOrCreate("lobby"))
	assert.Equal(t, 1, reg.Len())

	other := reg.GetOrCreate("other")
	assert.NotSame(t, lobby, other)
	assert.Equal(t, 2, reg.Len())
}

func TestRegistryConcurrent(t *testing.T) {
	reg := NewRegistry()

	var wg sync.WaitGroup
	rooms := make([]*Room, 32)
	for i := range rooms {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rooms[i] = reg.GetOrCreate("lobby")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, reg.Len())
	for _, room := range rooms {
		assert.Same(t, rooms[0], room)
	}
}
