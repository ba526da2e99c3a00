package forger

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	separator   = ','
	lengthDelim = ':'
)

// Framing joins forged fragments into a single string, and splits them apart again.
type Framing interface {
	Join(fragments []string) (string, error)
	Split(text string) ([]string, error)
}

var (
	// LegacyFraming terminates every fragment with a comma, and can't represent fragments containing a comma.
	LegacyFraming Framing = legacyFraming{}
	// NetstringFraming prefixes every fragment with its length, as in "5:abcde,".
	NetstringFraming Framing = netstringFraming{}
)

// DetectFraming returns the Framing that most likely produced text.
// Base64 never produces the length delimiter, so its presence indicates NetstringFraming.
func DetectFraming(text string) Framing {
	if strings.IndexByte(text, lengthDelim) >= 0 {
		return NetstringFraming
	}
	return LegacyFraming
}

type legacyFraming struct{}

func (legacyFraming) Join(fragments []string) (string, error) {
	var buf strings.Builder
	for i, frag := range fragments {
		if strings.IndexByte(frag, separator) >= 0 {
			return "", fmt.Errorf("%w: fragment %d", ErrSeparatorCollision, i)
		}
		buf.WriteString(frag)
		buf.WriteByte(separator)
	}
	return buf.String(), nil
}

// Split skips empty fragments, so "a,,b," yields two fragments.
func (legacyFraming) Split(text string) ([]string, error) {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == separator
	}), nil
}

type netstringFraming struct{}

func (netstringFraming) Join(fragments []string) (string, error) {
	var buf strings.Builder
	for _, frag := range fragments {
		buf.WriteString(strconv.Itoa(len(frag)))
		buf.WriteByte(lengthDelim)
		buf.WriteString(frag)
		buf.WriteByte(separator)
	}
	return buf.String(), nil
}

func (netstringFraming) Split(text string) ([]string, error) {
	var fragments []string
	for rest := text; len(rest) > 0; {
		index := len(fragments)
		malformed := func(msg string) error {
			return &DecodeError{Index: index, Fragment: rest, Err: fmt.Errorf("%w: %s", ErrMalformedFrame, msg)}
		}
		delim := strings.IndexByte(rest, lengthDelim)
		if delim <= 0 {
			return nil, malformed("missing length prefix")
		}
		n, err := strconv.ParseUint(rest[:delim], 10, 31)
		if err != nil {
			return nil, malformed(fmt.Sprintf("invalid length prefix %q", rest[:delim]))
		}
		body := rest[delim+1:]
		if uint64(len(body)) <= n || body[n] != separator {
			return nil, malformed("fragment is truncated or unterminated")
		}
		fragments = append(fragments, body[:n])
		rest = body[n+1:]
	}
	return fragments, nil
}
