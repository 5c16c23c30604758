package slicecsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Lindamust/csv-to-anki/internal/options"
)

// Row is one data row of a Table. It may be shorter than the header; absent
// cells are tolerated and surfaced through Get.
type Row []string

// Get returns the cell at index i and whether it is present. A row shorter
// than the header reports trailing cells as absent rather than failing.
func (r Row) Get(i int) (string, bool) {
	if i < 0 || i >= len(r) {
		return "", false
	}

	return r[i], true
}

// Field returns the cell at index i, or the empty string if it is absent.
func (r Row) Field(i int) string {
	s, _ := r.Get(i)
	return s
}

type config struct {
	skipEmptyRows   bool
	trimFields      bool
	reserveCapacity bool
	comma           rune
}

func defaultConfig() config {
	return config{
		skipEmptyRows:   true,
		trimFields:      true,
		reserveCapacity: true,
		comma:           ',',
	}
}

// Option configures table loading and parsing behaviour.
type Option = options.Option[*config]

// WithSkipEmptyRows controls whether rows whose slice cells are all blank are
// omitted from parse results. Enabled by default.
func WithSkipEmptyRows(skip bool) Option {
	return options.Setter(func(c *config) {
		c.skipEmptyRows = skip
	})
}

// WithTrimFields controls whether surrounding whitespace is stripped from
// every cell (headers included) during load. Enabled by default.
func WithTrimFields(trim bool) Option {
	return options.Setter(func(c *config) {
		c.trimFields = trim
	})
}

// WithReserveCapacity controls whether parse results are pre-sized to the
// table's row count. A performance hint, not a correctness setting. Enabled
// by default.
func WithReserveCapacity(reserve bool) Option {
	return options.Setter(func(c *config) {
		c.reserveCapacity = reserve
	})
}

// WithComma sets the field delimiter. The default is ','.
func WithComma(comma rune) Option {
	return options.New(func(c *config) error {
		if comma == 0 {
			return fmt.Errorf("invalid field delimiter %q", comma)
		}
		c.comma = comma

		return nil
	})
}

// Table is an immutable, in-memory CSV table: one header row plus zero or
// more data rows. All slice operations are pure queries against it, so a
// Table is safe for concurrent readers.
type Table struct {
	headers []string
	rows    []Row
	cfg     config
}

// Load reads delimited text from r. The first record becomes the header, all
// subsequent records become rows. Malformed input yields a *FormatError;
// read failures from the underlying reader are returned wrapped.
func Load(r io.Reader, opts ...Option) (*Table, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.Comma = cfg.comma
	// Repeating column groups produce ragged-looking rows; length
	// enforcement happens at decode time, not tokenization time.
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, &FormatError{Err: err}
		}

		return nil, fmt.Errorf("read csv: %w", err)
	}

	t := &Table{cfg: cfg}
	if len(records) == 0 {
		return t, nil
	}

	t.headers = records[0]
	t.rows = make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		t.rows = append(t.rows, Row(rec))
	}

	if cfg.trimFields {
		t.trimAll()
	}

	return t, nil
}

// LoadFile opens path and delegates to Load. Files ending in ".gz" or ".zst"
// are decompressed transparently.
func LoadFile(path string, opts ...Option) (*Table, error) {
	in, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	t, err := Load(in, opts...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return t, nil
}

// FromRecords builds a Table from already-tokenized records. The slices are
// retained, not copied; callers must not mutate them afterwards.
func FromRecords(headers []string, rows [][]string, opts ...Option) (*Table, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	t := &Table{headers: headers, cfg: cfg}
	t.rows = make([]Row, len(rows))
	for i, rec := range rows {
		t.rows[i] = Row(rec)
	}

	if cfg.trimFields {
		t.trimAll()
	}

	return t, nil
}

func (t *Table) trimAll() {
	for i, h := range t.headers {
		t.headers[i] = strings.TrimSpace(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			row[i] = strings.TrimSpace(cell)
		}
	}
}

// Headers returns the header row. The returned slice must not be modified.
func (t *Table) Headers() []string {
	return t.headers
}

// Rows returns all data rows. The returned slice must not be modified.
func (t *Table) Rows() []Row {
	return t.rows
}

// Width returns the number of header columns.
func (t *Table) Width() int {
	return len(t.headers)
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}
