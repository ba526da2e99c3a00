/*
Package forger hides short strings from passive inspection by screening them with a static XOR key and Base64 encoding the result.

Note that this is NOT encryption.
The key ships with the program, and anyone with the key can reverse every operation in this package.

# Operations:

Mold screens text with the key and Base64 encodes it, and Unmold reverses that.
Forge builds on Mold by producing a framed sequence of molded fragments, and Unforge splits such a sequence and unmolds each fragment in order.
Forge output is framed with netstrings by default (for example "8:I1JaIgc=,"), which can't collide with fragment content.
The comma separated format produced by older releases is available as LegacyFraming, and Unforge accepts both.

# Limits:

Every operation is bounded by a maximum plaintext length, DefaultMaxLen unless WithMaxLen is used.
Input beyond that limit fails with ErrBufferOverflow rather than being truncated.
Fragments that can't be decoded fail with a *DecodeError naming the index of the offending fragment.

A Forger is immutable once constructed and safe for concurrent use.
*/
package forger
