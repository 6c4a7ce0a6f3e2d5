package store

import (
	"sync"

	"github.com/linkedvault/linkedvault/pkg/employee"
)

// Table is one live, loaded table: its identity, its record list and the
// mutex that serializes every operation touching the list or its backing
// file. Tables are created only by the TableStore.
type Table struct {
	// mu guards records and the backing file. Every method below takes it
	// for the full traversal or mutation, including the persistence write,
	// and releases it on every exit path.
	mu      sync.Mutex
	id      int
	ownerID int
	path    string
	records *employee.List
}

// ID returns the table's ledger-assigned id.
func (t *Table) ID() int {
	return t.id
}

// OwnerID returns the id of the user owning this table.
func (t *Table) OwnerID() int {
	return t.ownerID
}

// Insert validates and places a record, then rewrites the backing file.
// A validation failure leaves both the list and the file untouched.
func (t *Table) Insert(e employee.Employee, position int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.records.Insert(e, position); err != nil {
		return err
	}
	return t.saveLocked()
}

// Update replaces the record holding originalID, re-inserting at position,
// and rewrites the backing file. Collision and validation checks run before
// the original record is detached.
func (t *Table) Update(originalID int, e employee.Employee, position int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.records.Update(originalID, e, position); err != nil {
		return err
	}
	return t.saveLocked()
}

// Delete removes the record with the given id and rewrites the backing file.
func (t *Table) Delete(id int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.records.DeleteByID(id); err != nil {
		return err
	}
	return t.saveLocked()
}

// Reverse flips the record order in place and rewrites the backing file.
func (t *Table) Reverse() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.records.Reverse()
	return t.saveLocked()
}

// Snapshot returns every record in list order.
func (t *Table) Snapshot() []employee.Employee {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.records.All()
}

// ReversedSnapshot returns the records in tail-to-head order without
// mutating the list.
func (t *Table) ReversedSnapshot() []employee.Employee {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.records.Reversed()
}

// Find returns the record with the given id.
func (t *Table) Find(id int) (employee.Employee, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.records.FindByID(id)
}

// Search returns every record matching a case-insensitive substring query
// across all fields. Linear scan; tables are expected to be small.
func (t *Table) Search(query string) []employee.Employee {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.records.Filter(func(e employee.Employee) bool {
		return employee.MatchesQuery(e, query)
	})
}

// Import appends every valid record in one critical section, then rewrites
// the backing file once. Invalid or colliding records are skipped, not
// fatal; the added/skipped counts are reported back.
func (t *Table) Import(records []employee.Employee) (added, skipped int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, e := range records {
		if employee.Validate(e) != nil || t.records.ContainsID(e.ID) {
			skipped++
			continue
		}
		t.records.Append(e)
		added++
	}
	if added > 0 {
		if err := t.saveLocked(); err != nil {
			return added, skipped, err
		}
	}
	return added, skipped, nil
}

// Len returns the current record count.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.records.Len()
}
