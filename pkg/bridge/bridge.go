// Package bridge exposes the forger operations to a host boundary, such as a cgo or mobile binding, where text may be absent.
// An absent (nil) input always yields an empty string and no error.
package bridge

import (
	"sync"

	"github.com/saylorsolutions/blacksmith/pkg/forger"
)

var (
	mux        sync.RWMutex
	configured *forger.Forger
	fallback   = sync.OnceValue(func() *forger.Forger {
		f, err := forger.New()
		if err != nil {
			panic(err)
		}
		return f
	})
)

// Default returns the Forger used by the package level functions.
// Unless SetDefault has been called, this uses forger.DefaultKey.
func Default() *forger.Forger {
	mux.RLock()
	defer mux.RUnlock()
	if configured != nil {
		return configured
	}
	return fallback()
}

// SetDefault replaces the Forger used by the package level functions.
// Passing nil restores the built-in default.
func SetDefault(f *forger.Forger) {
	mux.Lock()
	defer mux.Unlock()
	configured = f
}

func apply(text *string, op func(string) (string, error)) (string, error) {
	if text == nil {
		return "", nil
	}
	return op(*text)
}

// Mold hides text with the default Forger.
func Mold(text *string) (string, error) {
	return apply(text, Default().Mold)
}

// Unmold reveals text hidden by Mold.
func Unmold(text *string) (string, error) {
	return apply(text, Default().Unmold)
}

// Forge hides text with the default Forger, producing a framed sequence of fragments.
func Forge(text *string) (string, error) {
	return apply(text, Default().Forge)
}

// Unforge reveals text hidden by Forge.
func Unforge(text *string) (string, error) {
	return apply(text, Default().Unforge)
}
