package slicecsv

import (
	"iter"
	"strings"
)

// Decoder turns the cells of one column slice of one row into a value of
// type T. Implementations declare a fixed width (the number of columns their
// type occupies) and a decode operation starting at a given column.
//
// Decode must treat the row as read-only and must not retain it. The package
// never inspects field semantics; a Decode failure is wrapped in a
// *DecodeError and returned to the caller as-is.
type Decoder[T any] interface {
	// Width returns the number of columns one record of T occupies. Must be
	// positive and constant for the lifetime of the decoder.
	Width() int

	// Decode reads W cells beginning at column start and produces a record.
	Decode(row Row, start int) (T, error)
}

type funcDecoder[T any] struct {
	width  int
	decode func(Row, int) (T, error)
}

func (d funcDecoder[T]) Width() int { return d.width }

func (d funcDecoder[T]) Decode(row Row, start int) (T, error) {
	return d.decode(row, start)
}

// NewDecoder builds a Decoder from a fixed width and a decode function.
// It panics if width is not positive, since a zero or negative width decoder
// is a programming error rather than an input condition.
func NewDecoder[T any](width int, decode func(Row, int) (T, error)) Decoder[T] {
	if width <= 0 {
		panic("slicecsv: decoder width must be positive")
	}

	return funcDecoder[T]{width: width, decode: decode}
}

// SliceCount returns how many complete slices of the given width fit in the
// header: floor(header length / width). It returns 0 when the header is
// narrower than one slice, and 0 for non-positive widths.
func (t *Table) SliceCount(width int) int {
	if width <= 0 {
		return 0
	}

	return len(t.headers) / width
}

// SliceBounds computes the half-open column range [start, end) of the slice
// at index. It returns an *OutOfBoundsError when the range extends past the
// header or when index or width is invalid.
func (t *Table) SliceBounds(index, width int) (start, end int, err error) {
	if index < 0 || width <= 0 {
		return 0, 0, &OutOfBoundsError{Slice: index, HeaderLen: len(t.headers)}
	}

	start = index * width
	end = start + width
	if end > len(t.headers) {
		return 0, 0, &OutOfBoundsError{Slice: index, Start: start, End: end, HeaderLen: len(t.headers)}
	}

	return start, end, nil
}

// SliceHeaders returns the header names covered by the slice at index, or
// (nil, false) when the slice is out of bounds. It is the non-failing probe
// counterpart of SliceBounds.
func (t *Table) SliceHeaders(index, width int) ([]string, bool) {
	start, end, err := t.SliceBounds(index, width)
	if err != nil {
		return nil, false
	}

	return t.headers[start:end], true
}

// sliceBlank reports whether every cell of row in [start, end) is absent or
// trims to the empty string. Absent cells count as blank, not as an error;
// strictness about missing fields belongs to the decoder.
func sliceBlank(row Row, start, end int) bool {
	for i := start; i < end; i++ {
		cell, ok := row.Get(i)
		if ok && strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

// ParseSlice eagerly decodes every row of the slice at index into a []T, in
// row order. Blank rows are skipped when the table was loaded with
// WithSkipEmptyRows(true) (the default). The first decode failure aborts the
// parse and is returned as a *DecodeError; partial results are discarded.
func ParseSlice[T any](t *Table, dec Decoder[T], index int) ([]T, error) {
	start, end, err := t.SliceBounds(index, dec.Width())
	if err != nil {
		return nil, err
	}

	var results []T
	if t.cfg.reserveCapacity {
		results = make([]T, 0, len(t.rows))
	}

	for rowIdx, row := range t.rows {
		if t.cfg.skipEmptyRows && sliceBlank(row, start, end) {
			continue
		}

		rec, err := dec.Decode(row, start)
		if err != nil {
			return nil, &DecodeError{Slice: index, Row: rowIdx, Err: err}
		}
		results = append(results, rec)
	}

	return results, nil
}

// ParseSliceIter returns a lazy sequence over the slice at index. Filtering
// and decoding happen per pull, so partial consumption never decodes the
// remaining rows. Each element carries either a record or a *DecodeError for
// that row; iteration continues past decode failures, leaving the stop
// decision to the consumer.
//
// Bounds are validated up front: an out-of-bounds slice fails here, before
// any iteration, with the same error shape as ParseSlice. The returned
// sequence is finite and may be ranged over more than once.
func ParseSliceIter[T any](t *Table, dec Decoder[T], index int) (iter.Seq2[T, error], error) {
	start, end, err := t.SliceBounds(index, dec.Width())
	if err != nil {
		return nil, err
	}

	seq := func(yield func(T, error) bool) {
		for rowIdx, row := range t.rows {
			if t.cfg.skipEmptyRows && sliceBlank(row, start, end) {
				continue
			}

			rec, err := dec.Decode(row, start)
			if err != nil {
				var zero T
				if !yield(zero, &DecodeError{Slice: index, Row: rowIdx, Err: err}) {
					return
				}

				continue
			}
			if !yield(rec, nil) {
				return
			}
		}
	}

	return seq, nil
}

// ParseAllSlices eagerly decodes every slice, returning one []T per slice
// index in increasing order. Equivalent to calling ParseSlice for each index
// in [0, SliceCount); the first failing slice aborts the whole parse.
func ParseAllSlices[T any](t *Table, dec Decoder[T]) ([][]T, error) {
	count := t.SliceCount(dec.Width())
	all := make([][]T, 0, count)
	for i := 0; i < count; i++ {
		records, err := ParseSlice(t, dec, i)
		if err != nil {
			return nil, err
		}
		all = append(all, records)
	}

	return all, nil
}
