package twalk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsert(t *testing.T) {
	t.Run("into existing table", func(t *testing.T) {
		doc := TableOf(map[string]*Value{"table": Table()})
		prev, err := doc.Insert("table.a", Integer(1))
		require.NoError(t, err)
		require.Nil(t, prev)

		got, err := doc.ReadInt("table.a")
		require.NoError(t, err)
		require.Equal(t, int64(1), got)
	})

	t.Run("into empty array at index zero", func(t *testing.T) {
		doc := TableOf(map[string]*Value{"array": Array()})
		prev, err := doc.Insert("array.[0]", Integer(1))
		require.NoError(t, err)
		require.Nil(t, prev)

		arr, err := doc.Read("array")
		require.NoError(t, err)
		require.Equal(t, Array(Integer(1)), arr)
	})

	t.Run("into nested tables", func(t *testing.T) {
		doc := TableOf(map[string]*Value{
			"a": TableOf(map[string]*Value{
				"b": TableOf(map[string]*Value{
					"c": Table(),
				}),
			}),
		})
		prev, err := doc.Insert("a.b.c.d", Integer(1))
		require.NoError(t, err)
		require.Nil(t, prev)

		got, err := doc.ReadInt("a.b.c.d")
		require.NoError(t, err)
		require.Equal(t, int64(1), got)
	})

	t.Run("replacing a leaf returns the previous value", func(t *testing.T) {
		doc := TableOf(map[string]*Value{"key": String("old")})
		prev, err := doc.Insert("key", String("new"))
		require.NoError(t, err)
		require.Equal(t, String("old"), prev)

		got, err := doc.ReadString("key")
		require.NoError(t, err)
		require.Equal(t, "new", got)
	})

	t.Run("deeply missing path synthesizes tables", func(t *testing.T) {
		doc := Table()
		prev, err := doc.Insert("a.b.c", Integer(1))
		require.NoError(t, err)
		require.Nil(t, prev)

		b, err := doc.Read("a.b")
		require.NoError(t, err)
		require.True(t, b.Is(KindTable))

		got, err := doc.ReadInt("a.b.c")
		require.NoError(t, err)
		require.Equal(t, int64(1), got)
	})

	t.Run("index token after missing key creates an array", func(t *testing.T) {
		doc := Table()
		prev, err := doc.Insert("list.[4].name", String("first"))
		require.NoError(t, err)
		require.Nil(t, prev)

		list, err := doc.Read("list")
		require.NoError(t, err)
		require.True(t, list.Is(KindArray))
		// the fresh array places its first element at position 0 no matter
		// the requested index
		require.Equal(t, 1, list.Len())

		got, err := doc.ReadString("list.[0].name")
		require.NoError(t, err)
		require.Equal(t, "first", got)
	})

	t.Run("index past the end appends", func(t *testing.T) {
		doc := TableOf(map[string]*Value{"array": Array(Integer(1), Integer(2))})
		prev, err := doc.Insert("array.[1000]", Integer(3))
		require.NoError(t, err)
		require.Nil(t, prev)

		arr, err := doc.Read("array")
		require.NoError(t, err)
		require.Equal(t, Array(Integer(1), Integer(2), Integer(3)), arr)
	})

	t.Run("negative index appends", func(t *testing.T) {
		doc := TableOf(map[string]*Value{"array": Array(Integer(1))})
		prev, err := doc.Insert("array.[-1]", Integer(2))
		require.NoError(t, err)
		require.Nil(t, prev)

		arr, err := doc.Read("array")
		require.NoError(t, err)
		require.Equal(t, Array(Integer(1), Integer(2)), arr)
	})

	t.Run("final index in range replaces and returns previous", func(t *testing.T) {
		doc := TableOf(map[string]*Value{"array": Array(Integer(1), Integer(2))})
		prev, err := doc.Insert("array.[0]", Integer(9))
		require.NoError(t, err)
		require.Equal(t, Integer(1), prev)

		arr, err := doc.Read("array")
		require.NoError(t, err)
		require.Equal(t, Array(Integer(9), Integer(2)), arr)
	})

	t.Run("index into table fails", func(t *testing.T) {
		doc := TableOf(map[string]*Value{"table": Table()})
		_, err := doc.Insert("table.[0]", Integer(1))
		require.ErrorIs(t, err, ErrNoIndexInTable)
	})

	t.Run("descending into a scalar fails", func(t *testing.T) {
		doc := TableOf(map[string]*Value{"n": Integer(1)})
		_, err := doc.Insert("n.a", Integer(2))
		require.ErrorIs(t, err, ErrExpectedTable)
		_, err = doc.Insert("n.[0]", Integer(2))
		require.ErrorIs(t, err, ErrExpectedArray)
	})

	t.Run("final identifier on a non-table fails", func(t *testing.T) {
		doc := TableOf(map[string]*Value{"list": Array()})
		_, err := doc.Insert("list.a", Integer(1))
		require.ErrorIs(t, err, ErrExpectedTable)
	})

	t.Run("auto-vivified intermediates persist across failing calls", func(t *testing.T) {
		doc := TableOf(map[string]*Value{
			"a": TableOf(map[string]*Value{
				"leaf": Integer(1),
			}),
		})
		_, err := doc.Insert("a.b.x.y", Integer(2))
		require.NoError(t, err)

		// a later failing insert does not retract anything
		_, err = doc.Insert("a.leaf.x", Integer(3))
		require.ErrorIs(t, err, ErrExpectedTable)

		b, err := doc.Read("a.b.x")
		require.NoError(t, err)
		require.True(t, b.Is(KindTable))
	})

	t.Run("failure on existing structure leaves the document unchanged", func(t *testing.T) {
		doc := TableOf(map[string]*Value{"list": Array(Integer(1))})
		before := doc.Clone()

		_, err := doc.Insert("list.[0].x", Integer(2))
		require.ErrorIs(t, err, ErrExpectedTable)
		require.Equal(t, before, doc)
	})

	t.Run("tokenizer errors never touch the document", func(t *testing.T) {
		doc := Table()
		_, err := doc.Insert("a..b", Integer(1))
		require.ErrorIs(t, err, ErrEmptyIdentifier)
		require.Equal(t, 0, doc.Len())
	})

	t.Run("custom separator", func(t *testing.T) {
		doc := Table()
		_, err := doc.InsertWithSeparator("a/b", '/', Integer(1))
		require.NoError(t, err)

		got, err := doc.ReadWithSeparator("a/b", '/')
		require.NoError(t, err)
		require.Equal(t, Integer(1), got)
	})
}
