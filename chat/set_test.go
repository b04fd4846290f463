package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAddRemove(t *testing.T) {
	s := newMemberSet()
	assert.Equal(t, 0, s.Len())

	a := NewSession("id-a", newRoom("test"), &MockScreen{}, nil)
	s.Add(a)
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.In("id-a"))

	// Re-adding the same session keeps one entry.
	s.Add(a)
	assert.Equal(t, 1, s.Len())

	s.Remove("id-a")
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.In("id-a"))

	// Double-remove is a no-op.
	s.Remove("id-a")
	assert.Equal(t, 0, s.Len())
}

func TestSetEach(t *testing.T) {
	s := newMemberSet()
	room := newRoom("test")
	s.Add(NewSession("id-a", room, &MockScreen{}, nil))
	s.Add(NewSession("id-b", room, &MockScreen{}, nil))

	seen := map[string]int{}
	s.Each(func(sess *Session) {
		seen[sess.ID()]++
	})
	assert.Equal(t, map[string]int{"id-a": 1, "id-b": 1}, seen)
}

func TestSetClear(t *testing.T) {
	s := newMemberSet()
	room := newRoom("test")
	s.Add(NewSession("id-a", room, &MockScreen{}, nil))
	s.Add(NewSession("id-b", room, &MockScreen{}, nil))

	assert.Equal(t, 2, s.Clear())
	assert.Equal(t, 0, s.Len())
}
