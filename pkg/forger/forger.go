package forger

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/saylorsolutions/blacksmith/pkg/xor"
)

// Forger performs the mold and forge operations with a fixed key and length limit.
type Forger struct {
	key     xor.Key
	maxLen  int
	framing Framing
	logger  hclog.Logger
}

// Option operates on a Forger during construction.
// If any Option returns an error, then New returns that error.
type Option = func(*Forger) error

// WithKey sets the key used to screen text.
func WithKey(key xor.Key) Option {
	return func(f *Forger) error {
		if key.IsZero() {
			return xor.ErrEmptyKey
		}
		f.key = key
		return nil
	}
}

// WithMaxLen sets the largest plaintext, in bytes, that will be accepted.
func WithMaxLen(n int) Option {
	return func(f *Forger) error {
		if n <= 0 {
			return fmt.Errorf("max length must be positive, got %d", n)
		}
		f.maxLen = n
		return nil
	}
}

// WithFraming sets the Framing used by Forge.
// Unforge detects the framing of its input regardless of this setting.
func WithFraming(framing Framing) Option {
	return func(f *Forger) error {
		if framing == nil {
			return errors.New("framing cannot be nil")
		}
		f.framing = framing
		return nil
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger hclog.Logger) Option {
	return func(f *Forger) error {
		if logger == nil {
			logger = hclog.NewNullLogger()
		}
		f.logger = logger
		return nil
	}
}

// New creates a Forger using the options provided as zero or more Option.
// By default, the Forger uses DefaultKey, DefaultMaxLen, and NetstringFraming, and doesn't log.
func New(opts ...Option) (*Forger, error) {
	f := &Forger{
		key:     DefaultKey(),
		maxLen:  DefaultMaxLen,
		framing: NetstringFraming,
		logger:  hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// MaxLen returns the largest plaintext accepted by this Forger.
func (f *Forger) MaxLen() int {
	return f.maxLen
}

// Key returns the key used by this Forger.
func (f *Forger) Key() xor.Key {
	return f.key
}
