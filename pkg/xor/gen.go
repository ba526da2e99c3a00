package xor

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

const (
	deriveCost      = 1 << 15
	deriveBlockSize = 8
	deriveParallel  = 1
)

// GenKey will generate an XOR key with the given length.
func GenKey(length int) (Key, error) {
	if length <= 0 {
		return Key{}, errors.New("asked to generate a 0-length key")
	}
	buf := make([]byte, length)
	n, err := rand.Read(buf)
	if n < length {
		return Key{}, fmt.Errorf("failed to read requested bytes: %v", err)
	}
	return NewKey(buf)
}

// GenKeyAndOffset generates a key like GenKey, along with a random offset within it.
func GenKeyAndOffset(length int) (Key, int, error) {
	key, err := GenKey(length)
	if err != nil {
		return Key{}, 0, err
	}
	buf := make([]byte, 4)
	_, err = rand.Read(buf)
	if err != nil {
		return Key{}, 0, err
	}
	return key, int(binary.BigEndian.Uint32(buf) % uint32(length)), nil
}

// DeriveKey deterministically derives a key of the given length from a passphrase and salt using scrypt.
// The same passphrase and salt will always produce the same key, which makes it possible to rotate a key without shipping a new literal.
func DeriveKey(passphrase, salt []byte, length int) (Key, error) {
	if len(passphrase) == 0 {
		return Key{}, errors.New("cannot derive a key from an empty passphrase")
	}
	if length <= 0 {
		return Key{}, errors.New("asked to derive a 0-length key")
	}
	data, err := scrypt.Key(passphrase, salt, deriveCost, deriveBlockSize, deriveParallel, length)
	if err != nil {
		return Key{}, fmt.Errorf("failed to derive key: %w", err)
	}
	return NewKey(data)
}
