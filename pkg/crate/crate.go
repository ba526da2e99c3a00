package crate

import (
	"fmt"
)

// Crate binds a key in a Store to a typed value.
type Crate[T any] struct {
	store Store
	key   string
	def   T
	codec Codec[T]
}

// NewCrate creates a Crate for key, returning def when the key isn't present in the store.
func NewCrate[T any](store Store, key string, def T, codec Codec[T]) *Crate[T] {
	return &Crate[T]{
		store: store,
		key:   key,
		def:   def,
		codec: codec,
	}
}

func NewIntCrate(store Store, key string, def int) *Crate[int] {
	return NewCrate[int](store, key, def, IntCodec{})
}

func NewInt64Crate(store Store, key string, def int64) *Crate[int64] {
	return NewCrate[int64](store, key, def, Int64Codec{})
}

func NewFloatCrate(store Store, key string, def float64) *Crate[float64] {
	return NewCrate[float64](store, key, def, FloatCodec{})
}

func NewBoolCrate(store Store, key string, def bool) *Crate[bool] {
	return NewCrate[bool](store, key, def, BoolCodec{})
}

func NewStringCrate(store Store, key string, def string) *Crate[string] {
	return NewCrate[string](store, key, def, StringCodec{})
}

func (c *Crate[T]) Key() string {
	return c.key
}

// Value returns the stored value, or the default if there is none.
func (c *Crate[T]) Value() (T, error) {
	raw, ok, err := c.store.Get(c.key)
	if err != nil {
		return c.def, err
	}
	if !ok {
		return c.def, nil
	}
	val, err := c.codec.Decode(raw)
	if err != nil {
		return c.def, fmt.Errorf("failed to decode value for '%s': %w", c.key, err)
	}
	return val, nil
}

// Set stores the value, skipping the write if the stored value is already the same.
func (c *Crate[T]) Set(val T) error {
	encoded := c.codec.Encode(val)
	current, ok, err := c.store.Get(c.key)
	if err != nil {
		return err
	}
	if ok && current == encoded {
		return nil
	}
	return c.store.Put(c.key, encoded)
}

// Clear removes the stored value, so Value will return the default.
func (c *Crate[T]) Clear() error {
	return c.store.Delete(c.key)
}
