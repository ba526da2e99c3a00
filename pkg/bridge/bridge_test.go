package bridge

import (
	"strings"
	"testing"

	"github.com/saylorsolutions/blacksmith/pkg/forger"
	"github.com/saylorsolutions/blacksmith/pkg/xor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string {
	return &s
}

func TestAbsentInput(t *testing.T) {
	ops := map[string]func(*string) (string, error){
		"Mold":    Mold,
		"Unmold":  Unmold,
		"Forge":   Forge,
		"Unforge": Unforge,
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			out, err := op(nil)
			assert.NoError(t, err)
			assert.Equal(t, "", out)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	molded, err := Mold(ptr("hello"))
	require.NoError(t, err)
	assert.Equal(t, "I1JaIgc=", molded)
	unmolded, err := Unmold(&molded)
	require.NoError(t, err)
	assert.Equal(t, "hello", unmolded)

	forged, err := Forge(ptr("password123"))
	require.NoError(t, err)
	unforged, err := Unforge(&forged)
	require.NoError(t, err)
	assert.Equal(t, "password123", unforged)
}

func TestErrorsSurface(t *testing.T) {
	_, err := Forge(ptr(strings.Repeat("a", forger.DefaultMaxLen+1)))
	assert.ErrorIs(t, err, forger.ErrBufferOverflow)

	_, err = Unforge(ptr("!!!!,"))
	var decErr *forger.DecodeError
	assert.ErrorAs(t, err, &decErr)
}

func TestSetDefault(t *testing.T) {
	defer SetDefault(nil)
	f, err := forger.New(forger.WithKey(xor.MustKey([]byte{0})))
	require.NoError(t, err)
	SetDefault(f)
	assert.Same(t, f, Default())

	molded, err := Mold(ptr("A"))
	require.NoError(t, err)
	assert.Equal(t, "QQ==", molded)

	SetDefault(nil)
	molded, err = Mold(ptr("hello"))
	require.NoError(t, err)
	assert.Equal(t, "I1JaIgc=", molded)
}
