// Package securestore keeps small secrets (the PIN hash, setup flags, the
// session signing secret) in a file encrypted with XChaCha20-Poly1305.
//
// The whole key/value map is sealed as one blob. The 256-bit key lives in a
// separate 0600 file created on first open.
package securestore

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
)

// Well-known keys
const (
	KeyUserPin        = "user_pin"
	KeySetupCompleted = "setup_completed"
	KeyShopName       = "shop_name"
	KeyOwnerName      = "owner_name"
	KeySessionSecret  = "session_secret"
)

var (
	// ErrClosed is returned by every operation after Close
	ErrClosed = errors.New("securestore: store is closed")
	// ErrCorrupted means the data file could not be decrypted with the key
	ErrCorrupted = errors.New("securestore: data file is corrupted or was sealed with another key")
)

var associatedData = []byte("mobileshop-secure-prefs-v1")

// Store is an encrypted key/value file. It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	path   string
	key    []byte
	values map[string]string
	closed bool
}

// Open loads the store at path, creating the key at keyPath if it does not exist yet.
func Open(path, keyPath string) (*Store, error) {
	key, err := loadOrCreateKey(keyPath)
	if err != nil {
		return nil, err
	}

	s := &Store{
		path:   path,
		key:    key,
		values: map[string]string{},
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func loadOrCreateKey(keyPath string) ([]byte, error) {
	key, err := os.ReadFile(keyPath)
	if err == nil {
		if len(key) != chacha20poly1305.KeySize {
			return nil, fmt.Errorf("securestore: key file %s has %d bytes, want %d", keyPath, len(key), chacha20poly1305.KeySize)
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("securestore: failed to read key: %w", err)
	}

	key = make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("securestore: failed to generate key: %w", err)
	}
	if err := writeFile(keyPath, key); err != nil {
		return nil, err
	}
	return key, nil
}

func (s *Store) load() error {
	blob, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("securestore: failed to read data: %w", err)
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return err
	}
	if len(blob) < aead.NonceSize() {
		return ErrCorrupted
	}

	nonce, sealed := blob[:aead.NonceSize()], blob[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, sealed, associatedData)
	if err != nil {
		return ErrCorrupted
	}

	if err := json.Unmarshal(plain, &s.values); err != nil {
		return ErrCorrupted
	}
	return nil
}

// persist seals the current map under a fresh nonce. Caller holds mu.
func (s *Store) persist() error {
	plain, err := json.Marshal(s.values)
	if err != nil {
		return err
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return err
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plain)+aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("securestore: failed to generate nonce: %w", err)
	}

	return writeFile(s.path, aead.Seal(nonce, nonce, plain, associatedData))
}

// writeFile replaces path atomically with a 0600 file
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("securestore: failed to create directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("securestore: failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("securestore: failed to replace %s: %w", path, err)
	}
	return nil
}

// Get returns the value stored under key
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", false, ErrClosed
	}
	v, ok := s.values[key]
	return v, ok, nil
}

// GetBool reads a flag; a missing or unparsable value is false
func (s *Store) GetBool(key string) (bool, error) {
	v, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	b, _ := strconv.ParseBool(v)
	return b, nil
}

// Set stores value under key and writes the file
func (s *Store) Set(key, value string) error {
	return s.SetMany(map[string]string{key: value})
}

// SetBool stores a flag
func (s *Store) SetBool(key string, value bool) error {
	return s.Set(key, strconv.FormatBool(value))
}

// SetMany stores several values with a single write
func (s *Store) SetMany(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	prev := make(map[string]string, len(s.values))
	for k, v := range s.values {
		prev[k] = v
	}
	for k, v := range values {
		s.values[k] = v
	}
	if err := s.persist(); err != nil {
		s.values = prev
		return err
	}
	return nil
}

// Delete removes key
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	v, ok := s.values[key]
	if !ok {
		return nil
	}
	delete(s.values, key)
	if err := s.persist(); err != nil {
		s.values[key] = v
		return err
	}
	return nil
}

// Clear removes every value. The key file is kept.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	prev := s.values
	s.values = map[string]string{}
	if err := s.persist(); err != nil {
		s.values = prev
		return err
	}
	return nil
}

// Close forgets the key and the decrypted values
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	for i := range s.key {
		s.key[i] = 0
	}
	s.values = nil
	s.closed = true
	return nil
}
