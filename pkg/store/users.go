package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/linkedvault/linkedvault/pkg/codec"
)

// UserStore persists accounts in an append-oriented fixed-width file with
// the same access discipline as the ledger: one mutex, linear scans.
type UserStore struct {
	path string
	mu   sync.Mutex
}

// NewUserStore creates a user store backed by the given file.
func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

// Create appends a new user and returns the assigned id. Usernames are
// unique; a duplicate reports ErrUsernameTaken.
func (s *UserStore) Create(username, passwordHash string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readAllLocked()
	if err != nil {
		return 0, err
	}

	maxID := int32(0)
	for _, u := range users {
		if u.Username == username {
			return 0, ErrUsernameTaken
		}
		if u.ID > maxID {
			maxID = u.ID
		}
	}

	entry := codec.UserEntry{
		ID:           maxID + 1,
		Username:     username,
		PasswordHash: passwordHash,
	}
	data, err := codec.EncodeUserEntry(entry)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return 0, fmt.Errorf("failed to create data dir: %w", err)
	}
	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return 0, fmt.Errorf("failed to open user file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return 0, fmt.Errorf("failed to append user: %w", err)
	}
	if err := file.Close(); err != nil {
		return 0, err
	}
	return int(entry.ID), nil
}

// FindByName returns the user with the given username, or ErrNotFound.
func (s *UserStore) FindByName(username string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readAllLocked()
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if u.Username == username {
			return User{ID: int(u.ID), Username: u.Username, PasswordHash: u.PasswordHash}, nil
		}
	}
	return User{}, ErrNotFound
}

// readAllLocked reads every fixed-size user entry until EOF. Caller holds
// s.mu.
func (s *UserStore) readAllLocked() ([]codec.UserEntry, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open user file: %w", err)
	}
	defer file.Close()

	var users []codec.UserEntry
	reader := bufio.NewReader(file)
	buf := make([]byte, codec.UserEntrySize)
	for {
		if _, err := io.ReadFull(reader, buf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return users, nil
			}
			return nil, fmt.Errorf("failed to read user file: %w", err)
		}
		u, err := codec.DecodeUserEntry(buf)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
}
