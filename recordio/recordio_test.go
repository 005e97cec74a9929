package recordio

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTempFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "in.tsv")
	assert.NoError(t, ioutil.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestReaderHeaderAndRows(t *testing.T) {
	path := writeTempFile(t, "key\tL\n1\ta\n2\tb\n")
	r, err := Open(path, Options{})
	assert.NoError(t, err)
	defer r.Close() // nolint: errcheck

	assert.Equal(t, []string{"key", "L"}, r.Header())

	row, ok := r.Scan()
	assert.True(t, ok)
	assert.Equal(t, Row{[]byte("1"), []byte("a")}, row)

	row, ok = r.Scan()
	assert.True(t, ok)
	assert.Equal(t, Row{[]byte("2"), []byte("b")}, row)

	_, ok = r.Scan()
	assert.False(t, ok)
	assert.NoError(t, r.Err())
}

func TestReaderOwnsRows(t *testing.T) {
	path := writeTempFile(t, "a\n1\n2\n")
	r, err := Open(path, Options{})
	assert.NoError(t, err)
	defer r.Close() // nolint: errcheck

	row1, ok := r.Scan()
	assert.True(t, ok)
	row2, ok := r.Scan()
	assert.True(t, ok)
	assert.Equal(t, Row{[]byte("1")}, row1)
	assert.Equal(t, Row{[]byte("2")}, row2)
}

func TestWriterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.tsv")
	w, err := Create(path, Options{})
	assert.NoError(t, err)
	assert.NoError(t, w.WriteHeader([]string{"key", "L"}))
	assert.NoError(t, w.WriteRow(Row{[]byte("1"), []byte("a")}))
	assert.NoError(t, w.Close())

	got, err := ioutil.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "key\tL\n1\ta\n", string(got))
}

func TestGzipRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.tsv.gz")
	w, err := Create(path, Options{})
	assert.NoError(t, err)
	assert.NoError(t, w.WriteHeader([]string{"key"}))
	assert.NoError(t, w.WriteRow(Row{[]byte("1")}))
	assert.NoError(t, w.Close())

	r, err := Open(path, Options{})
	assert.NoError(t, err)
	defer r.Close() // nolint: errcheck
	assert.Equal(t, []string{"key"}, r.Header())
	row, ok := r.Scan()
	assert.True(t, ok)
	assert.Equal(t, Row{[]byte("1")}, row)
}

func TestCustomDelimiter(t *testing.T) {
	path := writeTempFile(t, "a,b\n1,2\n")
	r, err := Open(path, Options{Delimiter: ','})
	assert.NoError(t, err)
	defer r.Close() // nolint: errcheck
	assert.Equal(t, []string{"a", "b"}, r.Header())
}

func TestIsEmpty(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.tsv")
	assert.NoError(t, ioutil.WriteFile(empty, nil, 0644))
	isEmpty, err := IsEmpty(empty)
	assert.NoError(t, err)
	assert.True(t, isEmpty)

	nonEmpty := writeTempFile(t, "a\n1\n")
	isEmpty, err = IsEmpty(nonEmpty)
	assert.NoError(t, err)
	assert.False(t, isEmpty)
}

func TestCreateEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.tsv")
	assert.NoError(t, CreateEmpty(path))
	got, err := ioutil.ReadFile(path)
	assert.NoError(t, err)
	assert.True(t, bytes.Equal(got, nil))
}
