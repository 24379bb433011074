package filestore

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jrsteele09/podmixer-console/internal/errors"
	"github.com/jrsteele09/podmixer-console/session"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	sealedPrefix = "sealed:"
	nonceSize    = 24
	fileMode     = 0o600
)

// Store keeps the token in a single file named session.StorageKey inside a
// folder. With a secret the file holds a secretbox-sealed copy instead of the
// raw token.
type Store struct {
	mu   sync.Mutex
	path string
	key  *[32]byte
}

var _ session.Store = (*Store)(nil)

// New creates a file store rooted at folder, creating it if needed. An empty
// secret stores the token as plain text.
func New(folder, secret string) (*Store, error) {
	if err := os.MkdirAll(folder, 0o700); err != nil {
		return nil, fmt.Errorf("[filestore New] failed to create %s: %w", folder, err)
	}
	s := &Store{path: filepath.Join(folder, session.StorageKey)}
	if secret != "" {
		key := sha256.Sum256([]byte(secret))
		s.key = &key
	}
	return s, nil
}

// Path returns the file holding the token.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Get(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", errors.ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("[filestore Get] %w", err)
	}

	value := strings.TrimSpace(string(content))
	if value == "" {
		return "", errors.ErrTokenNotFound
	}
	return s.open(value)
}

func (s *Store) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, err := s.seal(token)
	if err != nil {
		return err
	}

	// Write to a sibling file and rename so readers never see a partial token
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+session.StorageKey+"-*")
	if err != nil {
		return fmt.Errorf("[filestore Set] %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("[filestore Set] %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("[filestore Set] %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("[filestore Set] %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("[filestore Set] %w", err)
	}
	return nil
}

func (s *Store) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("[filestore Delete] %w", err)
	}
	return nil
}

func (s *Store) seal(token string) (string, error) {
	if s.key == nil {
		return token, nil
	}
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := secretbox.Seal(nonce[:], []byte(token), &nonce, s.key)
	return sealedPrefix + base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (s *Store) open(value string) (string, error) {
	if !strings.HasPrefix(value, sealedPrefix) {
		if s.key != nil {
			return "", errors.ErrSealedToken
		}
		return value, nil
	}
	if s.key == nil {
		return "", errors.ErrSealedToken
	}

	sealed, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(value, sealedPrefix))
	if err != nil || len(sealed) < nonceSize {
		return "", errors.ErrSealedToken
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	opened, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, s.key)
	if !ok {
		return "", errors.ErrSealedToken
	}
	return string(opened), nil
}
