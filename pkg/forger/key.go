package forger

import "github.com/saylorsolutions/blacksmith/pkg/xor"

const (
	// DefaultMaxLen is the largest plaintext accepted by default, in bytes.
	DefaultMaxLen = 1023
)

var defaultKey = xor.MustKey([]byte("K76NhYbhtxuRvaNSXqHQ2JcWnC6jKdyye57QG4KaRrHpJkGBkYmCjCFTbhtEGSUhY5FxhjfKupzrEyJntb8gzPqa8hGSQxcF5bBKuwZpyyvvnWJg8RpTBqrtFZ9xnjr3"))

// DefaultKey returns the 128 byte key used when WithKey isn't given.
// Values molded by older releases can only be recovered with this key.
func DefaultKey() xor.Key {
	return defaultKey
}
