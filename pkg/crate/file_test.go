package crate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Persist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.crate")
	s, err := OpenFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist, "File shouldn't be created until a change is made")

	require.NoError(t, s.Put("b", "second"))
	require.NoError(t, s.Put("a", "first"))
	require.NoError(t, s.Put("empty", ""))
	require.NoError(t, s.Put("gone", "soon"))
	require.NoError(t, s.Delete("gone"))

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "empty"}, reopened.Keys())
	val, ok, err := reopened.Get("a")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "first", val)
	val, ok, _ = reopened.Get("empty")
	assert.True(t, ok)
	assert.Equal(t, "", val)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "Temp files should be cleaned up")
}

func TestFileStore_RawValues(t *testing.T) {
	tests := map[string]string{
		"Nul":       "before\x00after",
		"Comma":     "a,b,c,",
		"Mixed":     "\x00,\x00,",
		"Netstring": "16:O1ZFPR82EAxFSkY=,",
		"Utf8":      "h\u00e9llo, w\u00f6rld",
	}
	path := filepath.Join(t.TempDir(), "raw.crate")
	s, err := OpenFileStore(path)
	require.NoError(t, err)
	for name, val := range tests {
		require.NoError(t, s.Put(name, val))
	}
	require.NoError(t, s.Put("key\x00with,nul", "ok"))

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)
	for name, expected := range tests {
		t.Run(name, func(t *testing.T) {
			val, ok, err := reopened.Get(name)
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, expected, val)
		})
	}
	val, ok, err := reopened.Get("key\x00with,nul")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ok", val)
}

func TestFileStore_Sealed(t *testing.T) {
	var (
		path = filepath.Join(t.TempDir(), "sealed.crate")
		pass = []byte("s3cre+")
		gen  = testGenerator(t)
	)
	s, err := OpenFileStore(path, SealWith(pass, gen))
	require.NoError(t, err)
	require.NoError(t, s.Put("token", "very secret value"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "very secret value")
	assert.NotContains(t, string(raw), "token")

	reopened, err := OpenFileStore(path, SealWith(pass, nil))
	require.NoError(t, err, "Generator settings should be read from the file")
	val, ok, err := reopened.Get("token")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "very secret value", val)

	_, err = OpenFileStore(path)
	assert.ErrorIs(t, err, ErrSealed)

	_, err = OpenFileStore(path, SealWith([]byte("wrong"), nil))
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestFileStore_SealExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.crate")
	plain, err := OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, plain.Put("key", "value"))

	sealed, err := OpenFileStore(path, SealWith([]byte("pass"), testGenerator(t)))
	require.NoError(t, err, "An unsealed file can be opened with a passphrase")
	require.NoError(t, sealed.Put("other", "value"))

	_, err = OpenFileStore(path)
	assert.ErrorIs(t, err, ErrSealed, "The file should be sealed after the next write")
}

func TestFileStore_Invalid(t *testing.T) {
	tests := map[string][]byte{
		"Empty":      {},
		"BadMagic":   {0x00, 0x01, 0x01, 0x00},
		"BadVersion": {0xb5, 0xf0, 0x09, 0x00},
		"Truncated":  {0xb5, 0xf0, 0x01, 0x00, 0x00, 0x00, 0x00, 0x02},
		"ShortEntry": {0xb5, 0xf0, 0x01, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x05, 'a', 'b'},
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.crate")
			require.NoError(t, os.WriteFile(path, data, 0600))
			_, err := OpenFileStore(path)
			assert.ErrorIs(t, err, ErrInvalidFile)
		})
	}
}

func TestFileStore_PutFailureRollsBack(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	s, err := OpenFileStore(filepath.Join(dir, "prefs.crate"))
	require.NoError(t, err)
	assert.Error(t, s.Put("key", "value"))
	_, ok, _ := s.Get("key")
	assert.False(t, ok)
}
