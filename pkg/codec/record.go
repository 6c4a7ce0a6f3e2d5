package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Field widths shared by every on-disk layout.
const (
	// StringWidth is the full width of a string field: 49 usable bytes plus
	// a terminator byte that is always zero.
	StringWidth = 50

	// MaxStringLen is the longest string a field can carry.
	MaxStringLen = StringWidth - 1

	// HashWidth holds a bcrypt hash (60 bytes) with room to spare.
	HashWidth = 64

	// EmployeeRecordSize is the encoded size of one employee record.
	EmployeeRecordSize = 4 + 4 + 4 + StringWidth + StringWidth // 112

	// LedgerEntrySize is the encoded size of one table ledger entry.
	LedgerEntrySize = 4 + 4 + 4 + StringWidth // 62

	// UserEntrySize is the encoded size of one user entry.
	UserEntrySize = 4 + StringWidth + HashWidth // 118
)

// EmployeeRecord is the wire form of one employee. It carries no links and no
// padding beyond the fixed string fields.
type EmployeeRecord struct {
	ID         int32
	Age        int32
	Salary     int32
	Name       string
	Department string
}

// LedgerEntry is the wire form of one table-ownership record.
type LedgerEntry struct {
	ID      int32
	OwnerID int32
	Active  bool
	Name    string
}

// UserEntry is the wire form of one user account.
type UserEntry struct {
	ID           int32
	Username     string
	PasswordHash string
}

// EncodeEmployee serializes a record into its fixed 112-byte layout.
// String fields longer than MaxStringLen are rejected, never truncated.
func EncodeEmployee(r EmployeeRecord) ([]byte, error) {
	buf := make([]byte, EmployeeRecordSize)
	binary.LittleEndian.PutUint32(buf[0:], uint32(r.ID))
	binary.LittleEndian.PutUint32(buf[4:], uint32(r.Age))
	binary.LittleEndian.PutUint32(buf[8:], uint32(r.Salary))
	if err := putString(buf[12:12+StringWidth], r.Name); err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}
	if err := putString(buf[62:62+StringWidth], r.Department); err != nil {
		return nil, fmt.Errorf("department: %w", err)
	}
	return buf, nil
}

// DecodeEmployee deserializes one fixed-width employee record.
func DecodeEmployee(data []byte) (EmployeeRecord, error) {
	if len(data) < EmployeeRecordSize {
		return EmployeeRecord{}, fmt.Errorf("short employee record: %d < %d bytes", len(data), EmployeeRecordSize)
	}
	return EmployeeRecord{
		ID:         int32(binary.LittleEndian.Uint32(data[0:4])),
		Age:        int32(binary.LittleEndian.Uint32(data[4:8])),
		Salary:     int32(binary.LittleEndian.Uint32(data[8:12])),
		Name:       getString(data[12 : 12+StringWidth]),
		Department: getString(data[62 : 62+StringWidth]),
	}, nil
}

// EncodeLedgerEntry serializes a ledger entry into its fixed 62-byte layout.
func EncodeLedgerEntry(e LedgerEntry) ([]byte, error) {
	buf := make([]byte, LedgerEntrySize)
	binary.LittleEndian.PutUint32(buf[0:], uint32(e.ID))
	binary.LittleEndian.PutUint32(buf[4:], uint32(e.OwnerID))
	if e.Active {
		binary.LittleEndian.PutUint32(buf[8:], 1)
	}
	if err := putString(buf[12:12+StringWidth], e.Name); err != nil {
		return nil, fmt.Errorf("table name: %w", err)
	}
	return buf, nil
}

// DecodeLedgerEntry deserializes one fixed-width ledger entry.
func DecodeLedgerEntry(data []byte) (LedgerEntry, error) {
	if len(data) < LedgerEntrySize {
		return LedgerEntry{}, fmt.Errorf("short ledger entry: %d < %d bytes", len(data), LedgerEntrySize)
	}
	return LedgerEntry{
		ID:      int32(binary.LittleEndian.Uint32(data[0:4])),
		OwnerID: int32(binary.LittleEndian.Uint32(data[4:8])),
		Active:  binary.LittleEndian.Uint32(data[8:12]) != 0,
		Name:    getString(data[12 : 12+StringWidth]),
	}, nil
}

// EncodeUserEntry serializes a user entry into its fixed 118-byte layout.
func EncodeUserEntry(u UserEntry) ([]byte, error) {
	buf := make([]byte, UserEntrySize)
	binary.LittleEndian.PutUint32(buf[0:], uint32(u.ID))
	if err := putString(buf[4:4+StringWidth], u.Username); err != nil {
		return nil, fmt.Errorf("username: %w", err)
	}
	if len(u.PasswordHash) >= HashWidth {
		return nil, fmt.Errorf("password hash: %d bytes exceeds field width %d", len(u.PasswordHash), HashWidth-1)
	}
	copy(buf[54:54+HashWidth], u.PasswordHash)
	return buf, nil
}

// DecodeUserEntry deserializes one fixed-width user entry.
func DecodeUserEntry(data []byte) (UserEntry, error) {
	if len(data) < UserEntrySize {
		return UserEntry{}, fmt.Errorf("short user entry: %d < %d bytes", len(data), UserEntrySize)
	}
	return UserEntry{
		ID:           int32(binary.LittleEndian.Uint32(data[0:4])),
		Username:     getString(data[4 : 4+StringWidth]),
		PasswordHash: getString(data[54 : 54+HashWidth]),
	}, nil
}

// putString writes s into a null-padded fixed field. The final byte stays
// zero so a decoder can never read past the field.
func putString(field []byte, s string) error {
	if len(s) > len(field)-1 {
		return fmt.Errorf("%d bytes exceeds field width %d", len(s), len(field)-1)
	}
	copy(field, s)
	return nil
}

// getString reads a null-padded fixed field back into a string.
func getString(field []byte) string {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		return string(field[:i])
	}
	return string(field)
}
