package xor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey_Copies(t *testing.T) {
	raw := []byte{0xde, 0xad, 0xbe, 0xef}
	key, err := NewKey(raw)
	require.NoError(t, err)
	raw[0] = 0
	assert.Equal(t, byte(0xde), key.At(0))

	out := key.Bytes()
	out[1] = 0
	assert.Equal(t, byte(0xad), key.At(1))
	assert.Equal(t, byte(0xde), key.At(4), "Key positions should wrap around")
	assert.Equal(t, 4, key.Len())
}

func TestNewKey_Neg(t *testing.T) {
	_, err := NewKey(nil)
	assert.ErrorIs(t, err, ErrEmptyKey)
	assert.True(t, Key{}.IsZero())
	assert.Panics(t, func() {
		MustKey([]byte{})
	})
}

func TestParseHexKey(t *testing.T) {
	key, err := ParseHexKey("deadBEEF")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, key.Bytes())
	assert.Equal(t, "deadbeef", key.Hex())
	assert.NotContains(t, key.String(), "dead")

	_, err = ParseHexKey("xyz")
	assert.Error(t, err)
	_, err = ParseHexKey("")
	assert.ErrorIs(t, err, ErrEmptyKey)
}
