/*
Package crate persists small preference values, optionally forged so they aren't stored as plain text.

# Stores:

A Store is a flat string key/value map.
MemStore keeps values in memory only, and FileStore writes every change to a single binary file.
A FileStore may be sealed with a passphrase, in which case the file contents are encrypted with AES-256-GCM using a key derived with scrypt.

# Crates:

A Crate binds a Store key to a typed value with a default, using a Codec to convert to and from the stored string.
A ForgedCrate stores its string value forged, and unforges it when read.
A TokenCrate is a ForgedCrate that holds changes in memory until Save is called.

# General guidelines:
  - Forging is obfuscation, not encryption. Seal the FileStore if values must be protected at rest.
  - The same KeyGenerator settings that sealed a file are recorded in the file, so only the passphrase must be supplied to open it again.
  - Prefer SetShortDelayIterations for stores that are opened frequently, like on every application start.
*/
package crate
