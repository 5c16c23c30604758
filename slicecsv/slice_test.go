package slicecsv

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type triple struct {
	a, b, c string
}

// tripleDecoder fails on absent cells but accepts present-but-empty ones,
// mirroring the vocabulary decoder's leniency policy.
func tripleDecoder() Decoder[triple] {
	return NewDecoder(3, func(row Row, start int) (triple, error) {
		a, ok := row.Get(start)
		if !ok {
			return triple{}, errors.New("missing first field")
		}
		b, ok := row.Get(start + 1)
		if !ok {
			return triple{}, errors.New("missing second field")
		}
		c, ok := row.Get(start + 2)
		if !ok {
			return triple{}, errors.New("missing third field")
		}

		return triple{a: a, b: b, c: c}, nil
	})
}

// countingDecoder wraps tripleDecoder and records how many decode calls
// actually happened.
func countingDecoder(calls *int) Decoder[triple] {
	inner := tripleDecoder()

	return NewDecoder(3, func(row Row, start int) (triple, error) {
		*calls++
		return inner.Decode(row, start)
	})
}

func mustLoad(t *testing.T, csv string, opts ...Option) *Table {
	t.Helper()
	table, err := Load(strings.NewReader(csv), opts...)
	require.NoError(t, err)

	return table
}

func TestSliceCount(t *testing.T) {
	tests := []struct {
		header string
		width  int
		want   int
	}{
		{"A,B,C,D,E,F", 3, 2},
		{"A,B,C,D,E", 3, 1},
		{"A,B", 3, 0},
		{"A,B,C", 1, 3},
		{"A,B,C", 0, 0},
		{"A,B,C", -2, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_w%d", tt.header, tt.width), func(t *testing.T) {
			table := mustLoad(t, tt.header+"\n")
			require.Equal(t, tt.want, table.SliceCount(tt.width))
		})
	}
}

func TestSliceBounds(t *testing.T) {
	table := mustLoad(t, "A,B,C,D,E\n")

	t.Run("valid slice", func(t *testing.T) {
		start, end, err := table.SliceBounds(0, 3)
		require.NoError(t, err)
		require.Equal(t, 0, start)
		require.Equal(t, 3, end)
	})

	t.Run("out of bounds carries the computed range", func(t *testing.T) {
		_, _, err := table.SliceBounds(1, 3)
		require.Error(t, err)

		var oob *OutOfBoundsError
		require.ErrorAs(t, err, &oob)
		require.Equal(t, 1, oob.Slice)
		require.Equal(t, 3, oob.Start)
		require.Equal(t, 6, oob.End)
		require.Equal(t, 5, oob.HeaderLen)
	})

	t.Run("negative index", func(t *testing.T) {
		_, _, err := table.SliceBounds(-1, 3)
		var oob *OutOfBoundsError
		require.ErrorAs(t, err, &oob)
	})

	t.Run("non-positive width", func(t *testing.T) {
		_, _, err := table.SliceBounds(0, 0)
		var oob *OutOfBoundsError
		require.ErrorAs(t, err, &oob)
	})

	t.Run("every index below SliceCount succeeds", func(t *testing.T) {
		wide := mustLoad(t, "A,B,C,D,E,F,G,H,I\n")
		for i := 0; i < wide.SliceCount(3); i++ {
			start, end, err := wide.SliceBounds(i, 3)
			require.NoError(t, err)
			require.Equal(t, i*3, start)
			require.Equal(t, i*3+3, end)
		}
	})
}

func TestSliceHeaders(t *testing.T) {
	table := mustLoad(t, "Verbs,,,Adjectives,,\n")

	names, ok := table.SliceHeaders(0, 3)
	require.True(t, ok)
	require.Equal(t, []string{"Verbs", "", ""}, names)

	names, ok = table.SliceHeaders(1, 3)
	require.True(t, ok)
	require.Equal(t, []string{"Adjectives", "", ""}, names)

	names, ok = table.SliceHeaders(2, 3)
	require.False(t, ok, "probe past the header must not fail, just decline")
	require.Nil(t, names)
}

func TestNewDecoder_PanicsOnBadWidth(t *testing.T) {
	require.Panics(t, func() {
		NewDecoder(0, func(Row, int) (triple, error) { return triple{}, nil })
	})
}

func TestParseSlice(t *testing.T) {
	const csv = "A,B,C,D,,\n" +
		"1,2,3,x,,\n" +
		"4,5,6,,,\n"

	t.Run("first slice", func(t *testing.T) {
		table := mustLoad(t, csv)
		got, err := ParseSlice(table, tripleDecoder(), 0)
		require.NoError(t, err)
		require.Equal(t, []triple{{"1", "2", "3"}, {"4", "5", "6"}}, got)
	})

	t.Run("second slice filters the blank row", func(t *testing.T) {
		table := mustLoad(t, csv)
		got, err := ParseSlice(table, tripleDecoder(), 1)
		require.NoError(t, err)
		require.Equal(t, []triple{{"x", "", ""}}, got, "present-but-empty cells decode as empty strings")
	})

	t.Run("filter disabled passes blank rows to the decoder", func(t *testing.T) {
		table := mustLoad(t, csv, WithSkipEmptyRows(false))
		got, err := ParseSlice(table, tripleDecoder(), 1)
		require.NoError(t, err)
		require.Equal(t, []triple{{"x", "", ""}, {"", "", ""}}, got)
	})

	t.Run("absent cell is a DecodeError", func(t *testing.T) {
		// Second row is short: slice 1 has no cells at all.
		table := mustLoad(t, "A,B,C,D,E,F\n1,2,3,x,y,z\n4,5,6\n", WithSkipEmptyRows(false))
		_, err := ParseSlice(table, tripleDecoder(), 1)
		require.Error(t, err)

		var decErr *DecodeError
		require.ErrorAs(t, err, &decErr)
		require.Equal(t, 1, decErr.Slice)
		require.Equal(t, 1, decErr.Row)
		require.Contains(t, decErr.Error(), "missing first field")
	})

	t.Run("out of bounds slice", func(t *testing.T) {
		table := mustLoad(t, csv)
		_, err := ParseSlice(table, tripleDecoder(), 2)
		var oob *OutOfBoundsError
		require.ErrorAs(t, err, &oob)
	})

	t.Run("idempotent", func(t *testing.T) {
		table := mustLoad(t, csv)
		first, err := ParseSlice(table, tripleDecoder(), 0)
		require.NoError(t, err)
		second, err := ParseSlice(table, tripleDecoder(), 0)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})

	t.Run("reserve capacity disabled yields same records", func(t *testing.T) {
		table := mustLoad(t, csv, WithReserveCapacity(false))
		got, err := ParseSlice(table, tripleDecoder(), 0)
		require.NoError(t, err)
		require.Equal(t, []triple{{"1", "2", "3"}, {"4", "5", "6"}}, got)
	})
}

func TestParseSliceIter(t *testing.T) {
	const csv = "A,B,C,D,,\n" +
		"1,2,3,x,,\n" +
		"4,5,6,,,\n"

	t.Run("fully consumed equals eager", func(t *testing.T) {
		table := mustLoad(t, csv)
		for slice := 0; slice < table.SliceCount(3); slice++ {
			eager, err := ParseSlice(table, tripleDecoder(), slice)
			require.NoError(t, err)

			seq, err := ParseSliceIter(table, tripleDecoder(), slice)
			require.NoError(t, err)

			var lazy []triple
			for rec, err := range seq {
				require.NoError(t, err)
				lazy = append(lazy, rec)
			}
			require.Equal(t, eager, lazy, "slice %d", slice)
		}
	})

	t.Run("partial consumption decodes nothing extra", func(t *testing.T) {
		table := mustLoad(t, csv)
		calls := 0
		seq, err := ParseSliceIter(table, countingDecoder(&calls), 0)
		require.NoError(t, err)

		for _, err := range seq {
			require.NoError(t, err)
			break
		}
		require.Equal(t, 1, calls, "stopping after one pull must not decode remaining rows")
	})

	t.Run("re-invokable", func(t *testing.T) {
		table := mustLoad(t, csv)
		seq, err := ParseSliceIter(table, tripleDecoder(), 0)
		require.NoError(t, err)

		count := func() int {
			n := 0
			for range seq {
				n++
			}
			return n
		}
		require.Equal(t, 2, count())
		require.Equal(t, 2, count(), "the sequence may be ranged over again")
	})

	t.Run("bounds checked before iteration", func(t *testing.T) {
		table := mustLoad(t, csv)
		_, err := ParseSliceIter(table, tripleDecoder(), 5)
		var oob *OutOfBoundsError
		require.ErrorAs(t, err, &oob)
	})

	t.Run("decode failure surfaces at its position", func(t *testing.T) {
		table := mustLoad(t, "A,B,C\n1,2,3\n4\n5,6,7\n", WithSkipEmptyRows(false))
		seq, err := ParseSliceIter(table, tripleDecoder(), 0)
		require.NoError(t, err)

		var errs int
		var got []triple
		for rec, err := range seq {
			if err != nil {
				errs++
				var decErr *DecodeError
				require.ErrorAs(t, err, &decErr)
				require.Equal(t, 1, decErr.Row)

				continue
			}
			got = append(got, rec)
		}
		require.Equal(t, 1, errs)
		require.Equal(t, []triple{{"1", "2", "3"}, {"5", "6", "7"}}, got)
	})
}

func TestParseAllSlices(t *testing.T) {
	t.Run("one collection per slice in order", func(t *testing.T) {
		table := mustLoad(t, "A,B,C,D,E,F\n1,2,3,x,y,z\n")
		all, err := ParseAllSlices(table, tripleDecoder())
		require.NoError(t, err)
		require.Len(t, all, 2)
		require.Equal(t, []triple{{"1", "2", "3"}}, all[0])
		require.Equal(t, []triple{{"x", "y", "z"}}, all[1])
	})

	t.Run("trailing partial group is ignored", func(t *testing.T) {
		table := mustLoad(t, "A,B,C,D,E\n1,2,3,4,5\n")
		all, err := ParseAllSlices(table, tripleDecoder())
		require.NoError(t, err)
		require.Len(t, all, 1, "five columns hold exactly one width-3 slice")
	})

	t.Run("first failing slice aborts", func(t *testing.T) {
		table := mustLoad(t, "A,B,C,D,E,F\n1,2,3\n", WithSkipEmptyRows(false))
		_, err := ParseAllSlices(table, tripleDecoder())
		var decErr *DecodeError
		require.ErrorAs(t, err, &decErr)
		require.Equal(t, 1, decErr.Slice)
	})

	t.Run("empty table yields no slices", func(t *testing.T) {
		table := mustLoad(t, "")
		all, err := ParseAllSlices(table, tripleDecoder())
		require.NoError(t, err)
		require.Empty(t, all)
	})
}
