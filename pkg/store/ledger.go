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

// ReservedFloor is the lowest value table ids are allocated above, keeping
// the table id space disjoint from user ids.
const ReservedFloor = 1000

// Ledger is the durable registry of table ownership, independent of whether
// a table is currently loaded. Entries are appended on registration and the
// whole file is compacted on permanent deletion. One mutex admits all file
// access; there is no OS-level file locking.
type Ledger struct {
	path string
	mu   sync.Mutex
}

// NewLedger creates a ledger backed by the given file. The file is created
// lazily on first registration.
func NewLedger(path string) *Ledger {
	return &Ledger{path: path}
}

// Register appends a new active entry for the owner and returns the new
// table id: max(existing ids, ReservedFloor) + 1. The allocation scan is
// O(n) on every creation, acceptable at expected ledger sizes.
func (l *Ledger) Register(ownerID int, displayName string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.readAllLocked()
	if err != nil {
		return 0, err
	}

	maxID := int32(ReservedFloor)
	for _, e := range entries {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	newID := maxID + 1

	entry := codec.LedgerEntry{
		ID:      newID,
		OwnerID: int32(ownerID),
		Active:  true,
		Name:    displayName,
	}
	data, err := codec.EncodeLedgerEntry(entry)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0750); err != nil {
		return 0, fmt.Errorf("failed to create data dir: %w", err)
	}
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return 0, fmt.Errorf("failed to open ledger: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return 0, fmt.Errorf("failed to append ledger entry: %w", err)
	}
	if err := file.Close(); err != nil {
		return 0, err
	}
	return int(newID), nil
}

// ListForOwner returns every active entry owned by ownerID, in file order.
func (l *Ledger) ListForOwner(ownerID int) ([]TableInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.readAllLocked()
	if err != nil {
		return nil, err
	}

	var out []TableInfo
	for _, e := range entries {
		if e.Active && e.OwnerID == int32(ownerID) {
			out = append(out, TableInfo{ID: int(e.ID), Name: e.Name})
		}
	}
	return out, nil
}

// IsOwner reports whether an active entry matches both the table id and the
// owner id exactly.
func (l *Ledger) IsOwner(ownerID, tableID int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.readAllLocked()
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.Active && e.ID == int32(tableID) && e.OwnerID == int32(ownerID) {
			return true, nil
		}
	}
	return false, nil
}

// Remove compacts the ledger, dropping the active entry matching the table
// and owner. The rewrite goes to a temp file which then atomically replaces
// the ledger. Returns ErrNotFound if no matching active entry existed.
func (l *Ledger) Remove(tableID, ownerID int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.readAllLocked()
	if err != nil {
		return err
	}

	kept := make([]codec.LedgerEntry, 0, len(entries))
	found := false
	for _, e := range entries {
		if e.Active && e.ID == int32(tableID) && e.OwnerID == int32(ownerID) {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return ErrNotFound
	}

	tmpPath := l.path + ".tmp"
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open ledger temp file: %w", err)
	}
	writer := bufio.NewWriter(file)
	for _, e := range kept {
		data, err := codec.EncodeLedgerEntry(e)
		if err != nil {
			file.Close()
			return err
		}
		if _, err := writer.Write(data); err != nil {
			file.Close()
			return fmt.Errorf("failed to write ledger temp file: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, l.path); err != nil {
		return fmt.Errorf("failed to replace ledger: %w", err)
	}
	return nil
}

// readAllLocked reads every fixed-size entry until EOF. An absent ledger
// file is an empty ledger. Caller holds l.mu.
func (l *Ledger) readAllLocked() ([]codec.LedgerEntry, error) {
	file, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer file.Close()

	var entries []codec.LedgerEntry
	reader := bufio.NewReader(file)
	buf := make([]byte, codec.LedgerEntrySize)
	for {
		if _, err := io.ReadFull(reader, buf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return entries, nil
			}
			return nil, fmt.Errorf("failed to read ledger: %w", err)
		}
		entry, err := codec.DecodeLedgerEntry(buf)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
}
