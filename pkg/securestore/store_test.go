package securestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Store, string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.bin")
	keyPath := filepath.Join(dir, "prefs.key")

	s, err := Open(path, keyPath)
	require.NoError(t, err)
	return s, path, keyPath
}

func TestStore_RoundTripAcrossReopen(t *testing.T) {
	s, path, keyPath := openTemp(t)

	require.NoError(t, s.Set(KeyShopName, "Ali Mobiles"))
	require.NoError(t, s.SetBool(KeySetupCompleted, true))
	require.NoError(t, s.Close())

	s, err := Open(path, keyPath)
	require.NoError(t, err)
	defer s.Close()

	name, ok, err := s.Get(KeyShopName)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Ali Mobiles", name)

	done, err := s.GetBool(KeySetupCompleted)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestStore_EncryptedAtRest(t *testing.T) {
	s, path, keyPath := openTemp(t)
	defer s.Close()

	require.NoError(t, s.Set(KeyOwnerName, "plaintext-owner"))

	blob, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(blob), "plaintext-owner")

	info, err := os.Stat(keyPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_WrongKeyIsCorrupted(t *testing.T) {
	s, path, _ := openTemp(t)
	require.NoError(t, s.Set(KeyShopName, "x"))
	require.NoError(t, s.Close())

	_, err := Open(path, filepath.Join(t.TempDir(), "other.key"))
	assert.ErrorIs(t, err, ErrCorrupted)
}

func TestStore_DeleteAndClear(t *testing.T) {
	s, _, _ := openTemp(t)
	defer s.Close()

	require.NoError(t, s.SetMany(map[string]string{KeyShopName: "a", KeyOwnerName: "b"}))
	require.NoError(t, s.Delete(KeyShopName))

	_, ok, err := s.Get(KeyShopName)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Clear())
	_, ok, err = s.Get(KeyOwnerName)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_MissingFlagIsFalse(t *testing.T) {
	s, _, _ := openTemp(t)
	defer s.Close()

	done, err := s.GetBool(KeySetupCompleted)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestStore_ClosedRejectsCalls(t *testing.T) {
	s, _, _ := openTemp(t)
	require.NoError(t, s.Close())

	_, _, err := s.Get(KeyShopName)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Set(KeyShopName, "x"), ErrClosed)
}
