package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emp(id int) Employee {
	return Employee{ID: id, Age: 30, Salary: 1000, Name: "Ann", Department: "Eng"}
}

func ids(list *List) []int {
	var out []int
	for _, e := range list.All() {
		out = append(out, e.ID)
	}
	return out
}

func TestInsertAtPositions(t *testing.T) {
	list := &List{}

	// Position -1 into empty list appends.
	list.InsertAt(emp(1), -1)
	assert.Equal(t, []int{1}, ids(list))

	// Position 0 prepends.
	list.InsertAt(emp(2), 0)
	assert.Equal(t, []int{2, 1}, ids(list))

	// Position 1 lands in the middle.
	list.InsertAt(emp(3), 1)
	assert.Equal(t, []int{2, 3, 1}, ids(list))
	assert.Equal(t, 3, list.Len())
}

func TestInsertClampLaw(t *testing.T) {
	// Any position >= length, and any negative position, behaves exactly
	// like appending at the tail.
	for _, position := range []int{-1, -2, -100, 3, 4, 100} {
		list := &List{}
		list.Append(emp(1))
		list.Append(emp(2))
		list.Append(emp(3))

		list.InsertAt(emp(9), position)
		assert.Equal(t, []int{1, 2, 3, 9}, ids(list), "position %d", position)

		// Tail must point at the appended record.
		list.Append(emp(10))
		assert.Equal(t, []int{1, 2, 3, 9, 10}, ids(list), "position %d", position)
	}
}

func TestInsertEnforcesUniqueIDs(t *testing.T) {
	list := &List{}
	require.NoError(t, list.Insert(emp(1), -1))

	err := list.Insert(emp(1), -1)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "id", verr.Field)
	assert.Equal(t, []int{1}, ids(list))
}

func TestInsertRejectsInvalidRecord(t *testing.T) {
	list := &List{}
	bad := emp(1)
	bad.Age = 12

	err := list.Insert(bad, -1)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, list.Len())
}

func TestDeleteByID(t *testing.T) {
	list := &List{}
	for _, id := range []int{2, 3, 1} {
		list.Append(emp(id))
	}

	// Delete from the middle; tail must stay on record 1.
	require.NoError(t, list.DeleteByID(3))
	assert.Equal(t, []int{2, 1}, ids(list))
	list.Append(emp(4))
	assert.Equal(t, []int{2, 1, 4}, ids(list))

	// Delete the head.
	require.NoError(t, list.DeleteByID(2))
	assert.Equal(t, []int{1, 4}, ids(list))

	// Delete the tail; tail repoints to the survivor.
	require.NoError(t, list.DeleteByID(4))
	assert.Equal(t, []int{1}, ids(list))
	list.Append(emp(5))
	assert.Equal(t, []int{1, 5}, ids(list))
}

func TestDeleteByIDErrors(t *testing.T) {
	list := &List{}
	assert.ErrorIs(t, list.DeleteByID(1), ErrEmptyList)

	list.Append(emp(1))
	assert.ErrorIs(t, list.DeleteByID(2), ErrNotFound)
	assert.Equal(t, []int{1}, ids(list))
}

func TestDeleteLastRecordClearsTail(t *testing.T) {
	list := &List{}
	list.Append(emp(1))
	require.NoError(t, list.DeleteByID(1))

	assert.Equal(t, 0, list.Len())
	assert.Empty(t, list.All())

	// Appending into the emptied list must work (head and tail were reset).
	list.Append(emp(2))
	assert.Equal(t, []int{2}, ids(list))
}

func TestReverseInvolution(t *testing.T) {
	list := &List{}
	for _, id := range []int{1, 2, 3, 4, 5} {
		list.Append(emp(id))
	}

	list.Reverse()
	assert.Equal(t, []int{5, 4, 3, 2, 1}, ids(list))

	list.Reverse()
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(list))

	// Tail is live again after the double reverse.
	list.Append(emp(6))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids(list))
}

func TestReverseEmptyAndSingle(t *testing.T) {
	list := &List{}
	list.Reverse()
	assert.Equal(t, 0, list.Len())

	list.Append(emp(1))
	list.Reverse()
	assert.Equal(t, []int{1}, ids(list))
	list.Append(emp(2))
	assert.Equal(t, []int{1, 2}, ids(list))
}

func TestReversedMatchesReverseWithoutMutating(t *testing.T) {
	list := &List{}
	for _, id := range []int{7, 8, 9} {
		list.Append(emp(id))
	}

	reversed := list.Reversed()
	var got []int
	for _, e := range reversed {
		got = append(got, e.ID)
	}
	assert.Equal(t, []int{9, 8, 7}, got)

	// Original untouched.
	assert.Equal(t, []int{7, 8, 9}, ids(list))

	// Same order as an in-place reverse read head-to-tail.
	list.Reverse()
	assert.Equal(t, got, ids(list))
}

func TestReversedEmpty(t *testing.T) {
	list := &List{}
	assert.Empty(t, list.Reversed())
}

func TestUpdateMovesRecord(t *testing.T) {
	list := &List{}
	list.Append(emp(2))
	list.Append(emp(1))

	updated := emp(9)
	require.NoError(t, list.Update(2, updated, -1))
	assert.Equal(t, []int{1, 9}, ids(list))
}

func TestInsertBelowMinusOneAppends(t *testing.T) {
	list := &List{}
	require.NoError(t, list.Insert(emp(1), -1))

	// Positions below -1 must not derail the walk on a non-empty list.
	require.NoError(t, list.Insert(emp(2), -2))
	assert.Equal(t, []int{1, 2}, ids(list))

	// Tail stays consistent afterwards.
	list.Append(emp(3))
	assert.Equal(t, []int{1, 2, 3}, ids(list))
}

func TestUpdateBelowMinusOneKeepsRecord(t *testing.T) {
	list := &List{}
	list.Append(emp(1))
	list.Append(emp(2))

	// The detach-then-reinsert sequence must never lose the record, even
	// for positions below -1.
	updated := emp(1)
	updated.Salary = 2000
	require.NoError(t, list.Update(1, updated, -2))

	assert.Equal(t, []int{2, 1}, ids(list))
	got, ok := list.FindByID(1)
	require.True(t, ok)
	assert.Equal(t, 2000, got.Salary)
	assert.Equal(t, 2, list.Len())
}

func TestUpdateIDCollisionLeavesListUnchanged(t *testing.T) {
	list := &List{}
	list.Append(emp(1))
	list.Append(emp(9))

	// Try to rename 9 to 1 while 1 still exists elsewhere.
	renamed := emp(1)
	err := list.Update(9, renamed, -1)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []int{1, 9}, ids(list))
}

func TestUpdateSameIDAllowed(t *testing.T) {
	list := &List{}
	list.Append(emp(1))

	changed := emp(1)
	changed.Salary = 2000
	require.NoError(t, list.Update(1, changed, -1))

	got, ok := list.FindByID(1)
	require.True(t, ok)
	assert.Equal(t, 2000, got.Salary)
}

func TestUpdateMissingOriginal(t *testing.T) {
	list := &List{}
	list.Append(emp(1))

	assert.ErrorIs(t, list.Update(5, emp(6), -1), ErrNotFound)
	assert.Equal(t, []int{1}, ids(list))
}

func TestUpdateInvalidRecordLeavesListUnchanged(t *testing.T) {
	list := &List{}
	list.Append(emp(1))

	bad := emp(2)
	bad.Name = "n0t valid!"
	var verr *ValidationError
	require.ErrorAs(t, list.Update(1, bad, -1), &verr)
	assert.Equal(t, []int{1}, ids(list))
}

func TestFindAndFilter(t *testing.T) {
	list := &List{}
	a := Employee{ID: 1, Age: 30, Salary: 50000, Name: "Ann Lee", Department: "Engineering"}
	b := Employee{ID: 2, Age: 41, Salary: 65000, Name: "Bob Ray", Department: "Sales"}
	list.Append(a)
	list.Append(b)

	got, ok := list.FindByID(2)
	require.True(t, ok)
	assert.Equal(t, b, got)

	_, ok = list.FindByID(3)
	assert.False(t, ok)

	matches := list.Filter(func(e Employee) bool { return e.Age > 35 })
	assert.Equal(t, []Employee{b}, matches)
}

func TestMatchesQuery(t *testing.T) {
	e := Employee{ID: 42, Age: 30, Salary: 77000, Name: "Ann Lee", Department: "Engineering"}

	assert.True(t, MatchesQuery(e, "ann"))
	assert.True(t, MatchesQuery(e, "GINEER"))
	assert.True(t, MatchesQuery(e, "42"))
	assert.True(t, MatchesQuery(e, "770"))
	assert.False(t, MatchesQuery(e, "zzz"))
}
