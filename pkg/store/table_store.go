// Package store provides the table registry, per-table record storage and
// the durable ownership ledger and user file backing LinkedVault.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/linkedvault/linkedvault/pkg/employee"
)

// TableStore maps table ids to live, lazily-loaded tables and enforces
// ownership on every access. The registry mutex only guards the map of
// loaded tables; record mutations run under each table's own mutex, so
// different tables mutate concurrently. Ledger lookups complete before any
// per-table lock is taken, which keeps the lock order acyclic.
type TableStore struct {
	config Config
	ledger *Ledger
	mu     sync.Mutex
	tables map[int]*Table
}

// NewTableStore creates a store rooted at config.DataDir, creating the
// directory if needed.
func NewTableStore(config Config) (*TableStore, error) {
	if err := os.MkdirAll(filepath.Join(config.DataDir, "tables"), 0750); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &TableStore{
		config: config,
		ledger: NewLedger(filepath.Join(config.DataDir, "ledger.dat")),
		tables: make(map[int]*Table),
	}, nil
}

// Ledger exposes the ownership ledger.
func (s *TableStore) Ledger() *Ledger {
	return s.ledger
}

// Create registers a new table for the owner and returns its id. No table
// file is written until the first record mutation.
func (s *TableStore) Create(ownerID int, displayName string) (int, error) {
	return s.ledger.Register(ownerID, displayName)
}

// ListForOwner returns the owner's active tables in ledger order.
func (s *TableStore) ListForOwner(ownerID int) ([]TableInfo, error) {
	return s.ledger.ListForOwner(ownerID)
}

// GetOrLoad resolves a table for an owner. The ledger decides ownership: a
// table that exists but belongs to someone else fails exactly like a table
// that does not exist, so existence never leaks. On a miss the table is
// loaded from disk under the registry lock; an absent backing file is a new
// empty table.
func (s *TableStore) GetOrLoad(tableID, ownerID int) (*Table, error) {
	ok, err := s.ledger.IsOwner(ownerID, tableID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAccessDenied
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t, loaded := s.tables[tableID]; loaded {
		if t.ownerID == ownerID {
			return t, nil
		}
		// The ledger just confirmed this owner holds the id, so a cached
		// table under another owner is stale: the id was deleted and
		// reissued. Evict it and load fresh.
		delete(s.tables, tableID)
	}

	t := &Table{
		id:      tableID,
		ownerID: ownerID,
		path:    tablePath(s.config.DataDir, tableID),
		records: &employee.List{},
	}
	if err := t.loadLocked(); err != nil {
		return nil, err
	}
	s.tables[tableID] = t
	return t, nil
}

// Unload drops a table from the live registry so no stale in-memory state
// survives a permanent deletion or an ownership change.
func (s *TableStore) Unload(tableID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, tableID)
}

// DeletePermanently removes a table for good: the ledger is compacted
// first, then the live copy is unloaded and the physical file dropped.
// Compacting first means no GetOrLoad started after this point can
// re-admit the table into the registry. The ledger is the source of
// truth, so a file that fails to delete is tolerated. Fails with
// ErrNotFound if no matching active entry exists.
func (s *TableStore) DeletePermanently(tableID, ownerID int) error {
	if err := s.ledger.Remove(tableID, ownerID); err != nil {
		return err
	}

	s.Unload(tableID)

	// Best effort; the ledger decides existence.
	_ = os.Remove(tablePath(s.config.DataDir, tableID))

	return nil
}
