// Package employee holds the in-memory record model: the Employee tuple, the
// field validation applied at the construction boundary, and the ordered
// List every table carries.
package employee

import (
	"fmt"

	"github.com/linkedvault/linkedvault/pkg/codec"
)

// Age bounds enforced on every insert, update and import.
const (
	MinAge = 16
	MaxAge = 100
)

// Employee is one record in a table. IDs are caller-assigned and unique
// within a table; no ordering by any field is maintained.
type Employee struct {
	ID         int    `json:"id"`
	Age        int    `json:"age"`
	Salary     int    `json:"salary"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// ValidationError reports a rejected field. Oversize strings are rejected
// outright rather than truncated, so a record either round-trips through the
// codec exactly or never enters a list.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks every field constraint. It does not check ID uniqueness;
// that is a per-list property enforced by List.Insert and List.Update.
func Validate(e Employee) error {
	if e.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if !isAlphaSpaces(e.Name) {
		return &ValidationError{Field: "name", Reason: "must contain only alphabets and spaces"}
	}
	if len(e.Name) > codec.MaxStringLen {
		return &ValidationError{Field: "name", Reason: fmt.Sprintf("too long, max %d characters", codec.MaxStringLen)}
	}
	if e.Department == "" {
		return &ValidationError{Field: "department", Reason: "is required"}
	}
	if !isAlphaSpaces(e.Department) {
		return &ValidationError{Field: "department", Reason: "must contain only alphabets and spaces"}
	}
	if len(e.Department) > codec.MaxStringLen {
		return &ValidationError{Field: "department", Reason: fmt.Sprintf("too long, max %d characters", codec.MaxStringLen)}
	}
	if e.Age < MinAge || e.Age > MaxAge {
		return &ValidationError{Field: "age", Reason: fmt.Sprintf("must be between %d and %d", MinAge, MaxAge)}
	}
	if e.Salary < 0 {
		return &ValidationError{Field: "salary", Reason: "must not be negative"}
	}
	return nil
}

// isAlphaSpaces reports whether s contains only ASCII letters and spaces.
func isAlphaSpaces(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
			continue
		}
		return false
	}
	return true
}

// ToRecord converts an Employee to its wire form.
func ToRecord(e Employee) codec.EmployeeRecord {
	return codec.EmployeeRecord{
		ID:         int32(e.ID),
		Age:        int32(e.Age),
		Salary:     int32(e.Salary),
		Name:       e.Name,
		Department: e.Department,
	}
}

// FromRecord converts a wire record back to an Employee.
func FromRecord(r codec.EmployeeRecord) Employee {
	return Employee{
		ID:         int(r.ID),
		Age:        int(r.Age),
		Salary:     int(r.Salary),
		Name:       r.Name,
		Department: r.Department,
	}
}
