// Package codec provides the fixed-width binary layouts LinkedVault persists
// to disk: employee records, table ledger entries and user entries.
//
// # Employee Record Format
//
// Each employee is serialized to exactly 112 bytes:
//
//	[ID(4)][Age(4)][Salary(4)][Name(50)][Department(50)]
//
// Fields:
//   - ID, Age, Salary: 32-bit signed integers (little-endian)
//   - Name, Department: null-padded byte fields, 49 usable bytes plus a
//     guaranteed terminator byte
//
// A table file is a plain concatenation of these records in list order; the
// file carries no header, no links and no per-record framing, so the record
// count is the file size divided by the record width.
//
// # Ledger Entry Format (62 bytes)
//
//	[ID(4)][OwnerID(4)][Active(4)][Name(50)]
//
// # User Entry Format (118 bytes)
//
//	[ID(4)][Username(50)][PasswordHash(64)]
//
// All three layouts share the same string convention and byte order. The
// layouts are the on-disk contract: changing any width breaks every existing
// data file.
package codec
