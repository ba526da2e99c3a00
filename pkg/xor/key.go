package xor

import (
	"encoding/hex"
	"errors"
	"fmt"
)

var (
	ErrEmptyKey = errors.New("cannot use empty key")
)

// Key is an immutable XOR key.
// The zero value is not usable, construct a Key with NewKey, ParseHexKey, GenKey, or DeriveKey.
type Key struct {
	data string
}

// NewKey creates a Key by copying the given bytes.
func NewKey(key []byte) (Key, error) {
	if len(key) == 0 {
		return Key{}, ErrEmptyKey
	}
	return Key{data: string(key)}, nil
}

// MustKey is like NewKey, but panics if the key is empty.
// It's intended for package level key literals.
func MustKey(key []byte) Key {
	k, err := NewKey(key)
	if err != nil {
		panic(err)
	}
	return k
}

// ParseHexKey decodes a hex string into a Key.
func ParseHexKey(s string) (Key, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return Key{}, fmt.Errorf("failed to decode key, must be a hex string with only the characters a-f, A-F, or 0-9: %w", err)
	}
	return NewKey(data)
}

// Len returns the number of bytes in the key.
func (k Key) Len() int {
	return len(k.data)
}

// IsZero reports whether the key is the unusable zero value.
func (k Key) IsZero() bool {
	return len(k.data) == 0
}

// At returns the key byte used for position i of a screened payload.
func (k Key) At(i int) byte {
	return k.data[i%len(k.data)]
}

// Bytes returns a copy of the key material.
func (k Key) Bytes() []byte {
	return []byte(k.data)
}

// Hex returns the key as a lower case hex string.
func (k Key) Hex() string {
	return hex.EncodeToString([]byte(k.data))
}

// String never exposes key material.
func (k Key) String() string {
	return fmt.Sprintf("xor.Key(len=%d)", len(k.data))
}
