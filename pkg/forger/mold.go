package forger

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/saylorsolutions/blacksmith/pkg/xor"
)

// Mold screens the bytes of text with the key and returns them Base64 encoded.
func (f *Forger) Mold(text string) (string, error) {
	if len(text) > f.maxLen {
		return "", overflow(len(text), f.maxLen)
	}
	return base64.StdEncoding.EncodeToString(xor.Screen([]byte(text), f.key)), nil
}

// Unmold reverses Mold.
// Input that isn't valid Base64, or that decodes to more than the length limit, fails with a *DecodeError.
func (f *Forger) Unmold(encoded string) (string, error) {
	return f.unmold(0, encoded)
}

func (f *Forger) unmold(index int, encoded string) (string, error) {
	if len(encoded) > base64.StdEncoding.EncodedLen(f.maxLen) {
		return "", &DecodeError{Index: index, Fragment: encoded, Err: overflow(base64.StdEncoding.DecodedLen(len(encoded)), f.maxLen)}
	}
	r, err := xor.NewReader(base64.NewDecoder(base64.StdEncoding, strings.NewReader(encoded)), f.key)
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(io.LimitReader(r, int64(f.maxLen)+1))
	if err != nil {
		return "", &DecodeError{Index: index, Fragment: encoded, Err: fmt.Errorf("invalid base64: %w", err)}
	}
	if len(data) > f.maxLen {
		return "", &DecodeError{Index: index, Fragment: encoded, Err: overflow(len(data), f.maxLen)}
	}
	return string(data), nil
}
