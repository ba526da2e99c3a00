package forger

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/saylorsolutions/blacksmith/pkg/xor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestForger(t *testing.T, opts ...Option) *Forger {
	t.Helper()
	f, err := New(opts...)
	require.NoError(t, err)
	return f
}

func TestMold_Hello(t *testing.T) {
	f := newTestForger(t)
	molded, err := f.Mold("hello")
	require.NoError(t, err)
	assert.Equal(t, "I1JaIgc=", molded)

	unmolded, err := f.Unmold(molded)
	require.NoError(t, err)
	assert.Equal(t, "hello", unmolded)
}

func TestMold_RoundTrip(t *testing.T) {
	f := newTestForger(t)
	tests := map[string]string{
		"Empty":    "",
		"Single":   "x",
		"Repeated": "aaaaaaaaaaaaaaaa",
		"Unicode":  "héllo wörld ✓",
		"Longer":   strings.Repeat("The quick brown fox jumps over the lazy dog. ", 10),
		"Max":      strings.Repeat("m", DefaultMaxLen),
		"KeyBytes": string(DefaultKey().Bytes()),
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			molded, err := f.Mold(text)
			require.NoError(t, err)
			if len(text) > 0 {
				assert.NotEqual(t, text, molded)
			}
			unmolded, err := f.Unmold(molded)
			require.NoError(t, err)
			assert.Equal(t, text, unmolded)
		})
	}
}

func TestMold_Deterministic(t *testing.T) {
	f := newTestForger(t)
	a, err := f.Mold("password123")
	require.NoError(t, err)
	b, err := f.Mold("password123")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other := newTestForger(t)
	c, err := other.Mold("password123")
	require.NoError(t, err)
	assert.Equal(t, a, c, "Separate instances with the same key should agree")
}

func TestMold_CustomKey(t *testing.T) {
	f := newTestForger(t, WithKey(xor.MustKey([]byte{0})))
	molded, err := f.Mold("A")
	require.NoError(t, err)
	assert.Equal(t, "QQ==", molded, "A zero key should leave only the Base64 encoding")

	def := newTestForger(t)
	_, err = def.Unmold(molded)
	assert.NoError(t, err, "A different key garbles the output, but doesn't fail")
}

func TestMold_WrapsKey(t *testing.T) {
	f := newTestForger(t)
	text := strings.Repeat("0123456789", 30)
	molded, err := f.Mold(text)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(molded)
	require.NoError(t, err)
	assert.Equal(t, xor.Screen([]byte(text), DefaultKey()), raw)

	unmolded, err := f.Unmold(molded)
	require.NoError(t, err)
	assert.Equal(t, text, unmolded, "Streaming Unmold should undo the one-shot screen past the key length")
}

func TestMold_Overflow(t *testing.T) {
	f := newTestForger(t)
	_, err := f.Mold(strings.Repeat("a", DefaultMaxLen))
	assert.NoError(t, err)
	_, err = f.Mold(strings.Repeat("a", DefaultMaxLen+1))
	assert.ErrorIs(t, err, ErrBufferOverflow)
}

func TestUnmold_Overflow(t *testing.T) {
	large := newTestForger(t)
	small := newTestForger(t, WithMaxLen(4))
	molded, err := large.Mold("0123456789")
	require.NoError(t, err)

	_, err = small.Unmold(molded)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, 0, decErr.Index)
	assert.ErrorIs(t, err, ErrBufferOverflow)
}

func TestUnmold_Malformed(t *testing.T) {
	f := newTestForger(t)
	tests := map[string]string{
		"BadChars":  "!!!!",
		"Truncated": "I1JaIgc",
		"Separator": "I1Ja,gc=",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := f.Unmold(input)
			var decErr *DecodeError
			require.ErrorAs(t, err, &decErr)
			assert.Equal(t, input, decErr.Fragment)
			assert.NotErrorIs(t, err, ErrBufferOverflow)
		})
	}
}

func TestNew_Neg(t *testing.T) {
	_, err := New(WithKey(xor.Key{}))
	assert.ErrorIs(t, err, xor.ErrEmptyKey)
	_, err = New(WithMaxLen(0))
	assert.Error(t, err)
	_, err = New(WithFraming(nil))
	assert.Error(t, err)

	f, err := New(WithLogger(nil), WithMaxLen(12))
	assert.NoError(t, err)
	assert.Equal(t, 12, f.MaxLen())
	assert.Equal(t, DefaultKey().Bytes(), f.Key().Bytes())
}

func TestDefaultKey(t *testing.T) {
	assert.Equal(t, 128, DefaultKey().Len())
}
