package symtab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSymbolTable_InsertAndLookUp(t *testing.T) {
	table := New()

	require.True(t, table.Insert("a", 1, 1))
	require.True(t, table.Insert("b", 2, 1))

	a := table.LookUp("a")
	require.NotNil(t, a)
	require.Equal(t, "a", a.Name)
	require.Equal(t, 1, a.Line)
	require.Equal(t, 1, a.Column)

	require.Nil(t, table.LookUp("missing"))
}

func TestSymbolTable_MonotonicMemoryIndices(t *testing.T) {
	table := New()

	names := []string{"a", "b", "c", "d"}
	for _, name := range names {
		require.True(t, table.Insert(name, 1, 1))
	}

	for i, name := range names {
		require.Equal(t, i, table.LookUp(name).MemoryIndex, name)
	}
	require.Equal(t, len(names), table.Size())
}

func TestSymbolTable_DuplicateInsertRejected(t *testing.T) {
	table := New()

	require.True(t, table.Insert("a", 1, 1))
	require.False(t, table.Insert("a", 3, 9))

	// The original record is untouched.
	a := table.LookUp("a")
	require.Equal(t, 1, a.Line)
	require.Equal(t, 0, a.MemoryIndex)
	require.Equal(t, 1, table.Size())
}

func TestSymbolTable_Clear(t *testing.T) {
	table := New()
	table.Insert("a", 1, 1)
	table.Insert("b", 1, 8)

	table.Clear()

	require.Zero(t, table.Size())
	require.Nil(t, table.LookUp("a"))

	// Index assignment restarts from zero.
	require.True(t, table.Insert("c", 2, 1))
	require.Equal(t, 0, table.LookUp("c").MemoryIndex)
}

func TestSymbolTable_Records(t *testing.T) {
	table := New()
	table.Insert("a", 1, 1)
	table.Insert("b", 1, 8)

	records := table.Records()
	require.Len(t, records, 2)

	seen := map[string]bool{}
	for _, r := range records {
		seen[r.Name] = true
	}
	require.True(t, seen["a"] && seen["b"])
}
