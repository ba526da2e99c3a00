package forger

import (
	"fmt"
	"strings"
)

// Forge molds progressively shorter suffixes of text until all of it has been consumed, and returns the framed fragments.
// Each round strips the prefix that survives a mold and unmold round trip, so a round that consumes nothing is reported as ErrNoProgress instead of looping.
// Text that molds to itself, which is only the empty string, is returned molded and unframed.
func (f *Forger) Forge(text string) (string, error) {
	if len(text) > f.maxLen {
		return "", overflow(len(text), f.maxLen)
	}
	hidden, err := f.Mold(text)
	if err != nil {
		return "", err
	}
	unhidden, err := f.Unmold(hidden)
	if err != nil {
		return "", err
	}
	if unhidden == hidden {
		return hidden, nil
	}

	var (
		fragments []string
		remaining = text
	)
	for len(remaining) > 0 {
		fragment, err := f.Mold(remaining)
		if err != nil {
			return "", err
		}
		decoded, err := f.unmold(len(fragments), fragment)
		if err != nil {
			return "", err
		}
		n := commonPrefixLen(remaining, decoded)
		if n == 0 {
			return "", fmt.Errorf("%w: round %d with %d bytes remaining", ErrNoProgress, len(fragments), len(remaining))
		}
		fragments = append(fragments, fragment)
		remaining = remaining[n:]
	}

	forged, err := f.framing.Join(fragments)
	if err != nil {
		return "", err
	}
	f.logger.Trace("Forged text", "length", len(text), "fragments", len(fragments))
	return forged, nil
}

// Unforge reverses Forge, accepting either NetstringFraming or LegacyFraming.
// Unmolded fragments are concatenated in order.
func (f *Forger) Unforge(text string) (string, error) {
	if len(text) == 0 {
		return "", nil
	}
	fragments, err := DetectFraming(text).Split(text)
	if err != nil {
		return "", err
	}
	var buf strings.Builder
	for i, frag := range fragments {
		plain, err := f.unmold(i, frag)
		if err != nil {
			return "", err
		}
		if buf.Len()+len(plain) > f.maxLen {
			return "", overflow(buf.Len()+len(plain), f.maxLen)
		}
		buf.WriteString(plain)
	}
	f.logger.Trace("Unforged text", "fragments", len(fragments), "length", buf.Len())
	return buf.String(), nil
}

func commonPrefixLen(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// Report describes the result of Dismantle.
type Report struct {
	Before string
	Forged string
	// Check is true if unforging Forged yields Before.
	Check bool
}

// Dismantle forges text and verifies that it can be unforged again, logging both values at debug level.
// This is meant for checking values during development, since it logs the plaintext.
func (f *Forger) Dismantle(text string) (Report, error) {
	forged, err := f.Forge(text)
	if err != nil {
		return Report{}, err
	}
	unforged, err := f.Unforge(forged)
	if err != nil {
		return Report{}, err
	}
	report := Report{
		Before: text,
		Forged: forged,
		Check:  unforged == text,
	}
	f.logger.Debug("Forger begin to dismantle", "before", report.Before, "forged", report.Forged, "check", report.Check)
	return report, nil
}

// Reforge unmolds each of the given parts and concatenates the results.
//
// Deprecated: values split across several molded parts should be stored with Forge, and read with Unforge.
func (f *Forger) Reforge(first string, rest ...string) (string, error) {
	var buf strings.Builder
	for i, part := range append([]string{first}, rest...) {
		plain, err := f.unmold(i, part)
		if err != nil {
			return "", err
		}
		if buf.Len()+len(plain) > f.maxLen {
			return "", overflow(buf.Len()+len(plain), f.maxLen)
		}
		buf.WriteString(plain)
	}
	return buf.String(), nil
}
