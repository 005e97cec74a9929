// Package recordio reads and writes delimited text files row by row.
//
// A file is a header row followed by zero or more data rows, all using the
// same field delimiter. Rows are decoded with the RFC 4180 quoting dialect
// (via encoding/csv) so fields may contain the delimiter or embedded
// newlines when quoted; no further interpretation of field bytes is
// performed.
package recordio

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/klauspost/compress/gzip"
)

// Row is an ordered sequence of opaque byte fields. Rows returned by Reader
// are owned: callers may retain them past the next Scan call.
type Row [][]byte

// DefaultDelimiter is the field delimiter used when Options.Delimiter is
// the zero value.
const DefaultDelimiter = '\t'

// Options configures a Reader or Writer.
type Options struct {
	// Delimiter is the field separator. Defaults to DefaultDelimiter.
	Delimiter rune
}

func (o Options) delimiter() rune {
	if o.Delimiter == 0 {
		return DefaultDelimiter
	}
	return o.Delimiter
}

// Reader reads a header row followed by a lazy sequence of data rows.
type Reader struct {
	cr     *csv.Reader
	closer io.Closer
	header []string
	err    error
}

// Open opens path for reading. If path ends in ".gz" the content is
// transparently gunzipped. The caller must call Close when done.
func Open(path string, opts Options) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.E(err, "recordio: open", path)
	}
	var r io.Reader = f
	var closer io.Closer = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close() // nolint: errcheck
			return nil, errors.E(err, "recordio: gzip open", path)
		}
		r = gz
		closer = multiCloser{gz, f}
	}
	return NewReader(r, closer, opts)
}

// NewReader constructs a Reader over r, reading the header row immediately.
// closer, if non-nil, is invoked by Close; it may be nil when the caller
// owns the underlying stream's lifetime.
func NewReader(r io.Reader, closer io.Closer, opts Options) (*Reader, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.Comma = opts.delimiter()
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	header, err := cr.Read()
	if err != nil {
		return nil, errors.E(err, "recordio: read header")
	}
	return &Reader{cr: cr, closer: closer, header: append([]string(nil), header...)}, nil
}

// Header returns the column names from the first row.
func (r *Reader) Header() []string { return r.header }

// Scan reads the next data row into row, returning whether a row was read.
// Once Scan returns false the caller should check Err. A Row returned by a
// successful Scan is owned by the caller.
func (r *Reader) Scan() (Row, bool) {
	if r.err != nil {
		return nil, false
	}
	fields, err := r.cr.Read()
	if err != nil {
		if err != io.EOF {
			r.err = errors.E(err, "recordio: read row")
		}
		return nil, false
	}
	row := make(Row, len(fields))
	for i, f := range fields {
		row[i] = []byte(f)
	}
	return row, true
}

// Err returns the error that stopped scanning, if any.
func (r *Reader) Err() error { return r.err }

// Close releases the underlying stream.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Writer writes a header row followed by data rows. Call Flush (or Close)
// when done.
type Writer struct {
	w      *csv.Writer
	closer io.Closer
	err    error
}

// Create creates path for writing, truncating any existing file. If path
// ends in ".gz" the output is transparently gzipped.
func Create(path string, opts Options) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.E(err, "recordio: create", path)
	}
	var w io.Writer = f
	var closer io.Closer = f
	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(f)
		w = gz
		closer = multiCloser{gz, f}
	}
	return NewWriter(w, closer, opts), nil
}

// NewWriter constructs a Writer over w. closer, if non-nil, is invoked by
// Close after the underlying csv.Writer is flushed.
func NewWriter(w io.Writer, closer io.Closer, opts Options) *Writer {
	cw := csv.NewWriter(w)
	cw.Comma = opts.delimiter()
	return &Writer{w: cw, closer: closer}
}

// WriteHeader writes the header row. It must be called exactly once, before
// any WriteRow calls.
func (w *Writer) WriteHeader(header []string) error {
	return w.WriteRow(stringsToRow(header))
}

// WriteRow writes a single data row.
func (w *Writer) WriteRow(row Row) error {
	if w.err != nil {
		return w.err
	}
	fields := make([]string, len(row))
	for i, f := range row {
		fields[i] = string(f)
	}
	if err := w.w.Write(fields); err != nil {
		w.err = errors.E(err, "recordio: write row")
	}
	return w.err
}

// Flush flushes buffered output to the underlying writer.
func (w *Writer) Flush() error {
	w.w.Flush()
	if err := w.w.Error(); err != nil && w.err == nil {
		w.err = errors.E(err, "recordio: flush")
	}
	return w.err
}

// Close flushes and closes the underlying stream.
func (w *Writer) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

func stringsToRow(ss []string) Row {
	row := make(Row, len(ss))
	for i, s := range ss {
		row[i] = []byte(s)
	}
	return row
}

// IsEmpty reports whether path names a zero-byte file. It is used by the
// orchestrator's empty-input shortcut, since a header-less reader would
// otherwise fail to open a genuinely empty input.
func IsEmpty(path string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return false, errors.E(err, "recordio: stat", path)
	}
	return fi.Size() == 0, nil
}

// CreateEmpty creates a zero-byte file at path, for the empty-input
// shortcut's output side.
func CreateEmpty(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.E(err, "recordio: create", path)
	}
	return f.Close()
}
