/*
Package xor provides the byte-level screen used by forger to obfuscate strings.

Note that this is NOT encryption, since it is easily reversible.
This falls squarely under the obfuscation category, and the key usually ships in the same binary as the screened data.

# How it works:

A Key is applied with a bitwise XOR to every byte of the input.
Byte i of the input is combined with byte i mod len(key) of the key, so the key operates like a ring buffer.
Applying the same Key twice returns the original input, since XOR is its own inverse.

Screen performs this on a whole slice in one call.
Reader and Writer do the same for streams, optionally starting at an offset within the key.

# Keys:

A Key is immutable once constructed. NewKey copies its input, and Key.Bytes returns a copy.
Keys may be generated randomly with GenKey or GenKeyAndOffset, or derived deterministically from a passphrase with DeriveKey.
The same key and offset parameters must be provided to accurately reverse the process.
*/
package xor
