package forger

import (
	"errors"
	"fmt"
)

var (
	ErrBufferOverflow     = errors.New("input exceeds buffer capacity")
	ErrNoProgress         = errors.New("forge round made no progress")
	ErrSeparatorCollision = errors.New("fragment contains the separator character")
	ErrMalformedFrame     = errors.New("malformed fragment frame")
)

// DecodeError reports a fragment that couldn't be decoded.
type DecodeError struct {
	// Index is the position of the fragment within the forged sequence, and is always 0 for Unmold.
	Index    int
	Fragment string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode fragment %d: %v", e.Index, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func overflow(length, limit int) error {
	return fmt.Errorf("%w: %d bytes exceeds the limit of %d", ErrBufferOverflow, length, limit)
}
