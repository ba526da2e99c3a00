package crate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemStore(t *testing.T) {
	s := NewMemStore()
	_, ok, err := s.Get("missing")
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, s.Put("key", "value"))
	val, ok, err := s.Get("key")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", val)

	assert.NoError(t, s.Delete("key"))
	assert.NoError(t, s.Delete("key"), "Deleting a missing key is not an error")
	_, ok, _ = s.Get("key")
	assert.False(t, ok)
}
