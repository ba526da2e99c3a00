package main

import (
	"errors"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/saylorsolutions/blacksmith/pkg/forger"
	"github.com/saylorsolutions/blacksmith/pkg/xor"
	flag "github.com/spf13/pflag"
)

const (
	defaultSalt   = "blacksmith"
	derivedKeyLen = 128
)

type options struct {
	keyHex     string
	passphrase string
	salt       string
	maxLen     int
	legacy     bool
	logLevel   string

	logOutput io.Writer
}

func (o *options) bind(flags *flag.FlagSet) {
	flags.StringVarP(&o.keyHex, "key", "k", "", "Hex encoded XOR key to use instead of the built-in key.")
	flags.StringVar(&o.passphrase, "passphrase", "", "Derive the XOR key from this passphrase instead of using the built-in key.")
	flags.StringVar(&o.salt, "salt", defaultSalt, "Salt used with --passphrase.")
	flags.IntVar(&o.maxLen, "max-len", forger.DefaultMaxLen, "Largest plaintext accepted, in bytes.")
	flags.BoolVarP(&o.legacy, "legacy", "L", false, "Forge with comma separated fragments, as older releases did.")
	flags.StringVar(&o.logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error).")
}

func (o *options) logger() hclog.Logger {
	out := o.logOutput
	if out == nil {
		out = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "forger",
		Level:  hclog.LevelFromString(o.logLevel),
		Output: out,
	})
}

func (o *options) key() (xor.Key, error) {
	switch {
	case len(o.keyHex) > 0 && len(o.passphrase) > 0:
		return xor.Key{}, errors.New("only one of --key or --passphrase may be given")
	case len(o.keyHex) > 0:
		return xor.ParseHexKey(o.keyHex)
	case len(o.passphrase) > 0:
		return xor.DeriveKey([]byte(o.passphrase), []byte(o.salt), derivedKeyLen)
	default:
		return forger.DefaultKey(), nil
	}
}

func (o *options) forger() (*forger.Forger, error) {
	key, err := o.key()
	if err != nil {
		return nil, err
	}
	opts := []forger.Option{
		forger.WithKey(key),
		forger.WithMaxLen(o.maxLen),
		forger.WithLogger(o.logger()),
	}
	if o.legacy {
		opts = append(opts, forger.WithFraming(forger.LegacyFraming))
	}
	return forger.New(opts...)
}
