package xor

import (
	"fmt"
)

// Screen returns a new slice where every byte of value has been XORed with the key, starting at the first key byte.
// Calling Screen on the output with the same key returns the original value.
// Screen panics if key is the zero Key.
func Screen(value []byte, key Key) []byte {
	if key.IsZero() {
		panic(ErrEmptyKey)
	}
	out := make([]byte, len(value))
	for i := 0; i < len(value); i++ {
		out[i] = value[i] ^ key.At(i)
	}
	return out
}

type xorScreen struct {
	key  Key
	init int
	cur  int
}

func newXorScreen(key Key, offset ...int) (*xorScreen, error) {
	if key.IsZero() {
		return nil, ErrEmptyKey
	}
	s := &xorScreen{
		key: key,
	}
	if len(offset) > 0 {
		if offset[0] < 0 || offset[0] >= key.Len() {
			return nil, fmt.Errorf("offset %d out of range for provided key of len %d", offset[0], key.Len())
		}
		s.init = offset[0]
		s.cur = s.init
	}
	return s, nil
}

func (s *xorScreen) screen(b byte) byte {
	b ^= s.key.At(s.cur)
	s.cur = (s.cur + 1) % s.key.Len()
	return b
}

func (s *xorScreen) reset() {
	s.cur = s.init
}
