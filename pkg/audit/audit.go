// Package audit records per-user activity in an embedded pebble database.
// Entries are write-once and keyed by owner plus a ksuid, so a prefix scan
// returns one user's history in creation order.
package audit

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// Entry is one recorded action.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
}

// Logger appends audit entries and serves per-user history.
type Logger struct {
	db *pebble.DB
}

// NewLogger opens (or creates) the audit database at path.
func NewLogger(path string) (*Logger, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open audit db: %w", err)
	}
	return &Logger{db: db}, nil
}

// auditKey orders one owner's entries by wall clock. Ksuids alone only
// carry second resolution, so the nanosecond timestamp leads the key and
// the ksuid breaks ties.
func auditKey(ownerID int, now time.Time, id ksuid.KSUID) []byte {
	return []byte(fmt.Sprintf("audit/%d/%020d-%s", ownerID, now.UnixNano(), id.String()))
}

func ownerPrefix(ownerID int) []byte {
	return []byte(fmt.Sprintf("audit/%d/", ownerID))
}

// Record writes one entry for the owner.
func (l *Logger) Record(ownerID int, action, detail string) error {
	now := time.Now()
	value := fmt.Sprintf("%d|%s|%s", now.Unix(), action, detail)
	return l.db.Set(auditKey(ownerID, now, ksuid.New()), []byte(value), pebble.NoSync)
}

// History returns the owner's entries oldest first.
func (l *Logger) History(ownerID int) ([]Entry, error) {
	prefix := ownerPrefix(ownerID)
	upper := append(append([]byte{}, prefix...), 0xff)
	iter, err := l.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upper,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan audit db: %w", err)
	}
	defer iter.Close()

	var entries []Entry
	for iter.First(); iter.Valid(); iter.Next() {
		entry, err := parseEntry(iter.Value())
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to scan audit db: %w", err)
	}
	return entries, nil
}

// parseEntry splits a stored "unix|action|detail" value. Details may contain
// further pipes, so only the first two are delimiters.
func parseEntry(value []byte) (Entry, error) {
	parts := strings.SplitN(string(value), "|", 3)
	if len(parts) != 3 {
		return Entry{}, fmt.Errorf("malformed audit value %q", value)
	}
	unix, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("malformed audit timestamp %q", parts[0])
	}
	return Entry{
		Timestamp: time.Unix(unix, 0).UTC(),
		Action:    parts[1],
		Detail:    parts[2],
	}, nil
}

// Close flushes and closes the underlying database.
func (l *Logger) Close() error {
	return l.db.Close()
}
