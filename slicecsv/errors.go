package slicecsv

import "fmt"

// FormatError indicates that the input could not be tokenized as delimited
// records (malformed quoting, ragged quoting, etc.). It wraps the underlying
// csv parse error.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed csv: %v", e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// OutOfBoundsError indicates that a requested slice extends past the header.
// It carries the requested slice index, the computed column range, and the
// actual header length so callers can diagnose the mismatch.
type OutOfBoundsError struct {
	Slice     int
	Start     int
	End       int
	HeaderLen int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("slice %d out of bounds: columns [%d,%d) requested, header has %d columns",
		e.Slice, e.Start, e.End, e.HeaderLen)
}

// DecodeError indicates that the caller-supplied decoder rejected one row of
// one slice. It wraps the decoder's error and records where decoding stopped.
type DecodeError struct {
	Slice int
	Row   int
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("slice %d row %d: %v", e.Slice, e.Row, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
