package codec

import (
	"strings"
	"testing"
)

func TestEncodeDecodeEmployeeRoundTrip(t *testing.T) {
	testCases := []struct {
		name   string
		record EmployeeRecord
	}{
		{
			name:   "typical record",
			record: EmployeeRecord{ID: 1, Age: 30, Salary: 1000, Name: "Ann", Department: "Eng"},
		},
		{
			name:   "zero values",
			record: EmployeeRecord{},
		},
		{
			name:   "names with spaces",
			record: EmployeeRecord{ID: 7, Age: 45, Salary: 90000, Name: "Mary Jane Watson", Department: "Human Resources"},
		},
		{
			name:   "max length strings",
			record: EmployeeRecord{ID: 9, Age: 100, Salary: 1, Name: strings.Repeat("a", MaxStringLen), Department: strings.Repeat("b", MaxStringLen)},
		},
		{
			name:   "negative id survives",
			record: EmployeeRecord{ID: -5, Age: 16, Salary: 0, Name: "x", Department: "y"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := EncodeEmployee(tc.record)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if len(encoded) != EmployeeRecordSize {
				t.Fatalf("encoded size: got %d, want %d", len(encoded), EmployeeRecordSize)
			}

			decoded, err := DecodeEmployee(encoded)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if decoded != tc.record {
				t.Errorf("round trip mismatch: got %+v, want %+v", decoded, tc.record)
			}
		})
	}
}

func TestEncodeEmployeeRejectsOversizeStrings(t *testing.T) {
	long := strings.Repeat("z", StringWidth)

	if _, err := EncodeEmployee(EmployeeRecord{Name: long}); err == nil {
		t.Error("expected encode to fail for oversize name")
	}
	if _, err := EncodeEmployee(EmployeeRecord{Department: long}); err == nil {
		t.Error("expected encode to fail for oversize department")
	}
}

func TestDecodeEmployeeShortData(t *testing.T) {
	if _, err := DecodeEmployee(make([]byte, EmployeeRecordSize-1)); err == nil {
		t.Error("expected decode to fail for short data")
	}
	if _, err := DecodeEmployee(nil); err == nil {
		t.Error("expected decode to fail for nil data")
	}
}

func TestEncodeDecodeLedgerEntryRoundTrip(t *testing.T) {
	testCases := []struct {
		name  string
		entry LedgerEntry
	}{
		{
			name:  "active entry",
			entry: LedgerEntry{ID: 1001, OwnerID: 3, Active: true, Name: "Payroll"},
		},
		{
			name:  "inactive entry",
			entry: LedgerEntry{ID: 1002, OwnerID: 3, Active: false, Name: "Archived"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := EncodeLedgerEntry(tc.entry)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if len(encoded) != LedgerEntrySize {
				t.Fatalf("encoded size: got %d, want %d", len(encoded), LedgerEntrySize)
			}

			decoded, err := DecodeLedgerEntry(encoded)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if decoded != tc.entry {
				t.Errorf("round trip mismatch: got %+v, want %+v", decoded, tc.entry)
			}
		})
	}
}

func TestEncodeDecodeUserEntryRoundTrip(t *testing.T) {
	entry := UserEntry{
		ID:           4,
		Username:     "frigg",
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
	}

	encoded, err := EncodeUserEntry(entry)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(encoded) != UserEntrySize {
		t.Fatalf("encoded size: got %d, want %d", len(encoded), UserEntrySize)
	}

	decoded, err := DecodeUserEntry(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded != entry {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, entry)
	}
}

func TestEncodeUserEntryRejectsOversizeHash(t *testing.T) {
	entry := UserEntry{ID: 1, Username: "u", PasswordHash: strings.Repeat("h", HashWidth)}
	if _, err := EncodeUserEntry(entry); err == nil {
		t.Error("expected encode to fail for oversize hash")
	}
}
