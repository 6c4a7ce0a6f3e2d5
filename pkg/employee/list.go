package employee

import (
	"fmt"
	"strconv"
	"strings"
)

// List errors.
var (
	ErrNotFound  = &ListError{"record not found"}
	ErrEmptyList = &ListError{"list is empty"}
)

// ListError represents a record list error.
type ListError struct {
	Message string
}

func (e *ListError) Error() string {
	return e.Message
}

type node struct {
	emp  Employee
	next *node
}

// List is an ordered sequence of employees with head and tail access. Order
// is insertion/position order; the zero value is an empty list ready to use.
// A List is not safe for concurrent use; the owning table's mutex guards it.
type List struct {
	head   *node
	tail   *node
	length int
}

// Len returns the number of records in the list.
func (l *List) Len() int {
	return l.length
}

// Append adds a record at the tail without any validation or uniqueness
// check. Load paths and callers that have already validated use it.
func (l *List) Append(e Employee) {
	n := &node{emp: e}
	if l.head == nil {
		l.head = n
		l.tail = n
	} else {
		l.tail.next = n
		l.tail = n
	}
	l.length++
}

// InsertAt places a record at the given position. Any negative position
// (or an empty list) appends at the tail, position 0 prepends at the head,
// and any position at or past the end clamps to the tail. Clamp-to-tail is
// the contract, not an error, and it holds on both sides so no position
// value can leave the walk in a bad state.
func (l *List) InsertAt(e Employee, position int) {
	if l.head == nil || position < 0 {
		l.Append(e)
		return
	}

	n := &node{emp: e}
	if position == 0 {
		n.next = l.head
		l.head = n
		l.length++
		return
	}

	curr := l.head
	var prev *node
	for pos := 0; curr != nil && pos < position; pos++ {
		prev = curr
		curr = curr.next
	}
	if curr == nil {
		// Ran off the end: clamp to tail.
		l.tail.next = n
		l.tail = n
	} else {
		prev.next = n
		n.next = curr
	}
	l.length++
}

// Insert validates the record, enforces per-list ID uniqueness and then
// places it via InsertAt. The list is unchanged on any failure.
func (l *List) Insert(e Employee, position int) error {
	if err := Validate(e); err != nil {
		return err
	}
	if l.ContainsID(e.ID) {
		return &ValidationError{Field: "id", Reason: fmt.Sprintf("employee ID %d already exists", e.ID)}
	}
	l.InsertAt(e, position)
	return nil
}

// DeleteByID unlinks the first record with the given id. Deleting from an
// empty list reports ErrEmptyList; a missing id reports ErrNotFound.
func (l *List) DeleteByID(id int) error {
	if l.head == nil {
		return ErrEmptyList
	}

	if l.head.emp.ID == id {
		l.head = l.head.next
		if l.head == nil {
			l.tail = nil
		}
		l.length--
		return nil
	}

	prev := l.head
	curr := l.head.next
	for curr != nil && curr.emp.ID != id {
		prev = curr
		curr = curr.next
	}
	if curr == nil {
		return ErrNotFound
	}
	prev.next = curr.next
	if curr == l.tail {
		l.tail = prev
	}
	l.length--
	return nil
}

// Reverse flips the list in place with a single prev/curr/next walk. The old
// head becomes the new tail.
func (l *List) Reverse() {
	var prev *node
	curr := l.head
	oldHead := l.head
	for curr != nil {
		next := curr.next
		curr.next = prev
		prev = curr
		curr = next
	}
	l.head = prev
	l.tail = oldHead
}

// Reversed returns the records in tail-to-head order without mutating the
// list, by recursing to the end and collecting on the way back.
func (l *List) Reversed() []Employee {
	out := make([]Employee, 0, l.length)
	collectReversed(l.head, &out)
	return out
}

func collectReversed(n *node, out *[]Employee) {
	if n == nil {
		return
	}
	collectReversed(n.next, out)
	*out = append(*out, n.emp)
}

// FindByID returns the first record with the given id.
func (l *List) FindByID(id int) (Employee, bool) {
	for curr := l.head; curr != nil; curr = curr.next {
		if curr.emp.ID == id {
			return curr.emp, true
		}
	}
	return Employee{}, false
}

// ContainsID reports whether any record holds the given id.
func (l *List) ContainsID(id int) bool {
	_, ok := l.FindByID(id)
	return ok
}

// Filter returns the records matching pred, in list order.
func (l *List) Filter(pred func(Employee) bool) []Employee {
	var out []Employee
	for curr := l.head; curr != nil; curr = curr.next {
		if pred(curr.emp) {
			out = append(out, curr.emp)
		}
	}
	return out
}

// All returns every record in list order.
func (l *List) All() []Employee {
	out := make([]Employee, 0, l.length)
	for curr := l.head; curr != nil; curr = curr.next {
		out = append(out, curr.emp)
	}
	return out
}

// Update replaces the record holding originalID with e, re-inserting at the
// given position. If e changes the id, the new id must not collide with any
// other record; on a rejected update the original record stays in place.
func (l *List) Update(originalID int, e Employee, position int) error {
	if err := Validate(e); err != nil {
		return err
	}
	if e.ID != originalID && l.ContainsID(e.ID) {
		return &ValidationError{Field: "id", Reason: fmt.Sprintf("employee ID %d already exists", e.ID)}
	}
	if !l.ContainsID(originalID) {
		return ErrNotFound
	}
	// Validation passed and the target exists: detach then re-insert.
	if err := l.DeleteByID(originalID); err != nil {
		return err
	}
	l.InsertAt(e, position)
	return nil
}

// MatchesQuery reports whether the record matches a case-insensitive
// substring search across name, department and the decimal renderings of
// id, age and salary.
func MatchesQuery(e Employee, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(e.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(e.Department), q) {
		return true
	}
	return strings.Contains(strconv.Itoa(e.ID), query) ||
		strings.Contains(strconv.Itoa(e.Age), query) ||
		strings.Contains(strconv.Itoa(e.Salary), query)
}
