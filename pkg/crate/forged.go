package crate

import (
	"fmt"
	"sync"

	"github.com/saylorsolutions/blacksmith/pkg/bridge"
	"github.com/saylorsolutions/blacksmith/pkg/forger"
)

// ForgedCrate stores a string value forged, so it never reaches the Store as plain text.
type ForgedCrate struct {
	store  Store
	key    string
	forger *forger.Forger
}

// NewForgedCrate creates a ForgedCrate for key.
// If f is nil, then the bridge default Forger is used.
func NewForgedCrate(store Store, key string, f *forger.Forger) *ForgedCrate {
	if f == nil {
		f = bridge.Default()
	}
	return &ForgedCrate{
		store:  store,
		key:    key,
		forger: f,
	}
}

func (c *ForgedCrate) Key() string {
	return c.key
}

// Value unforges the stored value. A missing value is returned as an empty string.
func (c *ForgedCrate) Value() (string, error) {
	raw, ok, err := c.store.Get(c.key)
	if err != nil || !ok {
		return "", err
	}
	val, err := c.forger.Unforge(raw)
	if err != nil {
		return "", fmt.Errorf("failed to unforge value for '%s': %w", c.key, err)
	}
	return val, nil
}

// Set forges and stores the value, skipping the write if the stored value is already the same.
func (c *ForgedCrate) Set(val string) error {
	forged, err := c.forger.Forge(val)
	if err != nil {
		return err
	}
	current, ok, err := c.store.Get(c.key)
	if err != nil {
		return err
	}
	if ok && current == forged {
		return nil
	}
	return c.store.Put(c.key, forged)
}

func (c *ForgedCrate) Clear() error {
	return c.store.Delete(c.key)
}

// TokenCrate is a ForgedCrate that keeps changes in memory until Save is called.
// This suits values like session tokens that change often but only matter once committed.
type TokenCrate struct {
	crate *ForgedCrate
	mux   sync.RWMutex
	value string
}

// NewTokenCrate creates a TokenCrate, loading the current value from the store.
func NewTokenCrate(store Store, key string, f *forger.Forger) (*TokenCrate, error) {
	crate := NewForgedCrate(store, key, f)
	val, err := crate.Value()
	if err != nil {
		return nil, err
	}
	return &TokenCrate{
		crate: crate,
		value: val,
	}, nil
}

func (c *TokenCrate) Key() string {
	return c.crate.Key()
}

// Value returns the in-memory value, which may not have been saved yet.
func (c *TokenCrate) Value() string {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.value
}

// Set changes the in-memory value without persisting it.
func (c *TokenCrate) Set(val string) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.value = val
}

// Save persists the in-memory value.
func (c *TokenCrate) Save() error {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.crate.Set(c.value)
}

// Clear empties the value and saves it.
func (c *TokenCrate) Clear() error {
	c.Set("")
	return c.Save()
}
