package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/linkedvault/linkedvault/pkg/codec"
	"github.com/linkedvault/linkedvault/pkg/employee"
)

// tablePath derives the backing file name for a table id.
func tablePath(dataDir string, tableID int) string {
	return filepath.Join(dataDir, "tables", fmt.Sprintf("%d.tbl", tableID))
}

// saveLocked truncates and rewrites the table's backing file from the
// current record list, head to tail, one fixed-size record per node. Full
// rewrite on every mutation keeps position-based edits stable across
// restarts. Caller holds t.mu.
func (t *Table) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0750); err != nil {
		return fmt.Errorf("failed to create tables dir: %w", err)
	}

	file, err := os.OpenFile(t.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open table file: %w", err)
	}

	writer := bufio.NewWriter(file)
	for _, e := range t.records.All() {
		data, err := codec.EncodeEmployee(employee.ToRecord(e))
		if err != nil {
			file.Close()
			return fmt.Errorf("failed to encode record %d: %w", e.ID, err)
		}
		if _, err := writer.Write(data); err != nil {
			file.Close()
			return fmt.Errorf("failed to write table file: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to flush table file: %w", err)
	}
	return file.Close()
}

// loadLocked reads the backing file sequentially until EOF, appending each
// record in file order. An absent file means a new empty table, not an
// error. Caller holds t.mu (or owns the table exclusively during creation).
func (t *Table) loadLocked() error {
	file, err := os.Open(t.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to open table file: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	buf := make([]byte, codec.EmployeeRecordSize)
	for {
		if _, err := io.ReadFull(reader, buf); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if errors.Is(err, io.ErrUnexpectedEOF) {
				// Trailing partial record; keep what loaded cleanly.
				return nil
			}
			return fmt.Errorf("failed to read table file: %w", err)
		}
		rec, err := codec.DecodeEmployee(buf)
		if err != nil {
			return fmt.Errorf("failed to decode record: %w", err)
		}
		t.records.Append(employee.FromRecord(rec))
	}
}
