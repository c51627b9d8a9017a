package twalk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAs(t *testing.T) {
	t.Run("scalars map directly", func(t *testing.T) {
		s, err := As[string](String("x"))
		require.NoError(t, err)
		require.Equal(t, "x", s)

		i, err := As[int64](Integer(7))
		require.NoError(t, err)
		require.Equal(t, int64(7), i)

		n, err := As[int](Integer(7))
		require.NoError(t, err)
		require.Equal(t, 7, n)

		f, err := As[float64](Float(1.5))
		require.NoError(t, err)
		require.Equal(t, 1.5, f)

		b, err := As[bool](Boolean(true))
		require.NoError(t, err)
		require.True(t, b)
	})

	t.Run("datetime converts to string or time", func(t *testing.T) {
		dt := Datetime("2023-10-01T12:00:00Z")

		s, err := As[string](dt)
		require.NoError(t, err)
		require.Equal(t, "2023-10-01T12:00:00Z", s)

		ts, err := As[time.Time](dt)
		require.NoError(t, err)
		require.Equal(t, time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC), ts)
	})

	t.Run("scalar mismatch is a type error", func(t *testing.T) {
		var te *TypeError
		_, err := As[string](Integer(1))
		require.ErrorAs(t, err, &te)
		require.Equal(t, KindString, te.Expected)
		require.Equal(t, KindInteger, te.Actual)

		_, err = As[int64](Float(1.5))
		require.ErrorAs(t, err, &te)
		_, err = As[bool](String("true"))
		require.ErrorAs(t, err, &te)
		_, err = As[time.Time](String("2023-10-01T12:00:00Z"))
		require.ErrorAs(t, err, &te)
	})

	t.Run("arrays convert element by element", func(t *testing.T) {
		got, err := As[[]int64](Array(Integer(1), Integer(2), Integer(3)))
		require.NoError(t, err)
		require.Equal(t, []int64{1, 2, 3}, got)
	})

	t.Run("first bad element stops the conversion", func(t *testing.T) {
		_, err := As[[]int64](Array(Integer(1), String("two")))
		var te *TypeError
		require.ErrorAs(t, err, &te)
		require.ErrorContains(t, err, "element 1")
	})

	t.Run("tables convert entry by entry", func(t *testing.T) {
		got, err := As[map[string]string](TableOf(map[string]*Value{
			"a": String("x"),
			"b": String("y"),
		}))
		require.NoError(t, err)
		require.Equal(t, map[string]string{"a": "x", "b": "y"}, got)
	})

	t.Run("bad entry stops the conversion", func(t *testing.T) {
		_, err := As[map[string]int64](TableOf(map[string]*Value{
			"bad": Boolean(true),
		}))
		var te *TypeError
		require.ErrorAs(t, err, &te)
		require.ErrorContains(t, err, `entry "bad"`)
	})

	t.Run("nested shapes convert recursively", func(t *testing.T) {
		doc := TableOf(map[string]*Value{
			"groups": TableOf(map[string]*Value{
				"evens": Array(Integer(2), Integer(4)),
				"odds":  Array(Integer(1), Integer(3)),
			}),
		})
		node, err := doc.Read("groups")
		require.NoError(t, err)

		got, err := As[map[string][]int64](node)
		require.NoError(t, err)
		require.Equal(t, map[string][]int64{
			"evens": {2, 4},
			"odds":  {1, 3},
		}, got)
	})

	t.Run("any target produces generic data", func(t *testing.T) {
		got, err := As[any](TableOf(map[string]*Value{"n": Integer(1)}))
		require.NoError(t, err)
		require.Equal(t, map[string]any{"n": int64(1)}, got)
	})

	t.Run("value pointer target passes through", func(t *testing.T) {
		v := Integer(1)
		got, err := As[*Value](v)
		require.NoError(t, err)
		require.Same(t, v, got)
	})

	t.Run("overflow is an error", func(t *testing.T) {
		_, err := As[int8](Integer(1000))
		require.ErrorContains(t, err, "overflows")
	})

	t.Run("absent value is an error", func(t *testing.T) {
		_, err := As[string](nil)
		require.Error(t, err)
	})
}

func TestDecode(t *testing.T) {
	t.Run("target must be a non-nil pointer", func(t *testing.T) {
		err := Decode(Integer(1), 5)
		require.Error(t, err)

		var p *int64
		err = Decode(Integer(1), p)
		require.Error(t, err)
	})

	t.Run("pointer element targets are allocated", func(t *testing.T) {
		var out *int64
		err := Decode(Integer(7), &out)
		require.NoError(t, err)
		require.NotNil(t, out)
		require.Equal(t, int64(7), *out)
	})
}
