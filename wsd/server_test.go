package wsd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoomFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/chat/lobby", "lobby"},
		{"/chat/lobby/", "lobby"},
		{"/chat/some-room", "some-room"},
		{"/chat/a/b", "b"},
		{"/chat/", ""},
		{"/chat", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, roomFromPath(tt.path), tt.path)
	}
}
