package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// The two durable keys the front-end keeps in local storage.
const (
	tokenKey = "authToken"
	userKey  = "authUser"
)

// CredentialStorage persists the auth token and user info across restarts.
// It is read once when the client starts and written on auth transitions.
type CredentialStorage interface {
	Load() (token string, user *UserInfo, err error)
	Save(token string, user UserInfo) error
	Clear() error
}

// MemoryStorage holds credentials for the lifetime of the process. Useful
// in tests and for callers that manage persistence themselves.
type MemoryStorage struct {
	mu    sync.Mutex
	token string
	user  *UserInfo
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Load() (string, *UserInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.user, nil
}

func (s *MemoryStorage) Save(token string, user UserInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = &user
	return nil
}

func (s *MemoryStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	return nil
}

// FileStorage keeps the token and the serialized user as two files in a
// directory, mirroring the browser's two local-storage keys.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStorage{dir: dir}, nil
}

func (s *FileStorage) Load() (string, *UserInfo, error) {
	tokenBytes, err := os.ReadFile(filepath.Join(s.dir, tokenKey))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, err
	}

	userBytes, err := os.ReadFile(filepath.Join(s.dir, userKey))
	if errors.Is(err, fs.ErrNotExist) {
		return string(tokenBytes), nil, nil
	}
	if err != nil {
		return "", nil, err
	}

	var user UserInfo
	if err := json.Unmarshal(userBytes, &user); err != nil {
		// Corrupt user blob, treat as signed out.
		return "", nil, nil
	}
	return string(tokenBytes), &user, nil
}

func (s *FileStorage) Save(token string, user UserInfo) error {
	userBytes, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenKey), []byte(token), 0o600); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, userKey), userBytes, 0o600)
}

func (s *FileStorage) Clear() error {
	for _, name := range []string{tokenKey, userKey} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
