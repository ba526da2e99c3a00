package crate

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"

	bin "github.com/saylorsolutions/binmap"
)

const (
	fileMagic   uint16 = 0xb5f0
	fileVersion uint8  = 1
)

var (
	ErrInvalidFile = errors.New("invalid crate file")
	ErrSealed      = errors.New("crate file is sealed and no passphrase was given")
)

var fileEndian = binary.BigEndian

var _ Store = (*FileStore)(nil)

// FileStore is a Store that rewrites its backing file on every change.
type FileStore struct {
	mux    sync.RWMutex
	path   string
	sealer *Sealer
	values map[string]string
}

// FileOpt operates on a FileStore before its file is loaded.
type FileOpt = func(*FileStore) error

// SealWith will seal the file with a key derived from the passphrase.
// If gen is nil, then a default KeyGenerator is used.
func SealWith(passphrase []byte, gen *KeyGenerator) FileOpt {
	return func(s *FileStore) error {
		sealer, err := NewSealer(passphrase, gen)
		if err != nil {
			return err
		}
		s.sealer = sealer
		return nil
	}
}

// OpenFileStore loads the file at path, or starts an empty store if the file doesn't exist yet.
// The file won't be created until the first change is made.
func OpenFileStore(path string, opts ...FileOpt) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		values: map[string]string{},
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	if err := s.read(f); err != nil {
		return nil, fmt.Errorf("failed to load crate file '%s': %w", path, err)
	}
	return s, nil
}

// Path returns the location of the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Keys returns the stored keys in sorted order.
func (s *FileStore) Keys() []string {
	s.mux.RLock()
	defer s.mux.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (s *FileStore) Get(key string) (string, bool, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	val, ok := s.values[key]
	return val, ok, nil
}

func (s *FileStore) Put(key, value string) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	prev, existed := s.values[key]
	s.values[key] = value
	if err := s.persist(); err != nil {
		if existed {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) Delete(key string) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	prev, existed := s.values[key]
	if !existed {
		return nil
	}
	delete(s.values, key)
	if err := s.persist(); err != nil {
		s.values[key] = prev
		return err
	}
	return nil
}

type fileHeader struct {
	magic   uint16
	version uint8
	sealed  uint8
}

func (h *fileHeader) mapper() bin.Mapper {
	return bin.MapSequence(
		bin.Int(&h.magic),
		bin.Byte(&h.version),
		bin.Byte(&h.sealed),
	)
}

func (s *FileStore) read(r io.Reader) error {
	var hdr fileHeader
	if err := hdr.mapper().Read(r, fileEndian); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	if hdr.magic != fileMagic {
		return fmt.Errorf("%w: unrecognized magic bytes %#04x", ErrInvalidFile, hdr.magic)
	}
	if hdr.version != fileVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidFile, hdr.version)
	}
	if hdr.sealed != 0 {
		if s.sealer == nil {
			return ErrSealed
		}
		gen := new(KeyGenerator)
		if err := gen.mapper().Read(r, fileEndian); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFile, err)
		}
		sealed, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		payload, err := s.sealer.Unseal(gen, sealed)
		if err != nil {
			return err
		}
		r = bytes.NewReader(payload)
	}
	values, err := readEntries(r)
	if err != nil {
		return err
	}
	s.values = values
	return nil
}

// entryString maps a string as its uint32 byte length followed by the raw bytes, so any value survives.
func entryString(s *string) bin.Mapper {
	return bin.Any(
		func(r io.Reader, endian binary.ByteOrder) error {
			var (
				buf    []byte
				length uint32
			)
			if err := bin.LenBytes(&buf, &length).Read(r, endian); err != nil {
				return err
			}
			*s = string(buf)
			return nil
		},
		func(w io.Writer, endian binary.ByteOrder) error {
			buf := []byte(*s)
			length := uint32(len(buf))
			return bin.LenBytes(&buf, &length).Write(w, endian)
		},
	)
}

func readEntries(r io.Reader) (map[string]string, error) {
	var values map[string]string
	if err := bin.Map(&values, entryString, entryString).Read(r, fileEndian); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	return values, nil
}

func (s *FileStore) writeEntries(w io.Writer) error {
	return bin.Map(&s.values, entryString, entryString).Write(w, fileEndian)
}

func (s *FileStore) encode() ([]byte, error) {
	var (
		buf bytes.Buffer
		hdr = fileHeader{magic: fileMagic, version: fileVersion}
	)
	if s.sealer == nil {
		if err := hdr.mapper().Write(&buf, fileEndian); err != nil {
			return nil, err
		}
		if err := s.writeEntries(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	var payload bytes.Buffer
	if err := s.writeEntries(&payload); err != nil {
		return nil, err
	}
	sealed, err := s.sealer.Seal(payload.Bytes())
	if err != nil {
		return nil, err
	}
	hdr.sealed = 1
	if err := hdr.mapper().Write(&buf, fileEndian); err != nil {
		return nil, err
	}
	if err := s.sealer.gen.mapper().Write(&buf, fileEndian); err != nil {
		return nil, err
	}
	buf.Write(sealed)
	return buf.Bytes(), nil
}

// persist must be called with the write lock held.
func (s *FileStore) persist() error {
	data, err := s.encode()
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, s.path)
}
