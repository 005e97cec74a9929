package mergejoin

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grailbio/tabmerge/dedup"
	"github.com/grailbio/tabmerge/keycmp"
	"github.com/grailbio/tabmerge/recordio"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newReader(t *testing.T, tsv string) *recordio.Reader {
	t.Helper()
	r, err := recordio.NewReader(io.NopCloser(strings.NewReader(tsv)), nopCloser{}, recordio.Options{})
	if err != nil {
		t.Fatalf("building test reader: %v", err)
	}
	return r
}

type pushed struct {
	key  string
	val  string
	side dedup.Side
}

type collectSink struct {
	got []pushed
}

func (s *collectSink) Push(row recordio.Row, side dedup.Side, key []byte) error {
	s.got = append(s.got, pushed{key: string(key), val: string(row[1]), side: side})
	return nil
}

func mustCursor(t *testing.T, r *recordio.Reader, keyIdx int) *Cursor {
	t.Helper()
	c, err := NewCursor(r, keyIdx)
	if err != nil {
		t.Fatalf("building cursor: %v", err)
	}
	return c
}

func TestOrInterleavesBothSidesInKeyOrder(t *testing.T) {
	left := newReader(t, "key\tv\n1\tL1\n2\tL2\n3\tL3\n")
	right := newReader(t, "key\tv\n2\tR2\n3\tR3\n4\tR4\n")

	sink := &collectSink{}
	err := Run(mustCursor(t, left, 0), mustCursor(t, right, 0), Or, keycmp.Numeric, sink)
	assert.NoError(t, err)

	assert.Equal(t, []pushed{
		{"1", "L1", dedup.Left},
		{"2", "L2", dedup.Left},
		{"2", "R2", dedup.Right},
		{"3", "L3", dedup.Left},
		{"3", "R3", dedup.Right},
		{"4", "R4", dedup.Right},
	}, sink.got)
}

func TestAndKeepsOnlyMatchingKeys(t *testing.T) {
	left := newReader(t, "key\tv\n1\tL1\n2\tL2\n3\tL3\n")
	right := newReader(t, "key\tv\n2\tR2\n3\tR3\n4\tR4\n")

	sink := &collectSink{}
	err := Run(mustCursor(t, left, 0), mustCursor(t, right, 0), And, keycmp.Numeric, sink)
	assert.NoError(t, err)

	assert.Equal(t, []pushed{
		{"2", "L2", dedup.Left},
		{"2", "R2", dedup.Right},
		{"3", "L3", dedup.Left},
		{"3", "R3", dedup.Right},
	}, sink.got)
}

func TestAndNotKeepsOnlyUnmatchedLeftKeys(t *testing.T) {
	left := newReader(t, "key\tv\n1\tL1\n2\tL2\n3\tL3\n")
	right := newReader(t, "key\tv\n2\tR2\n3\tR3\n4\tR4\n")

	sink := &collectSink{}
	err := Run(mustCursor(t, left, 0), mustCursor(t, right, 0), AndNot, keycmp.Numeric, sink)
	assert.NoError(t, err)

	assert.Equal(t, []pushed{
		{"1", "L1", dedup.Left},
	}, sink.got)
}

func TestOrDrainsTailWhenOneSideExhaustsFirst(t *testing.T) {
	left := newReader(t, "key\tv\n1\tL1\n")
	right := newReader(t, "key\tv\n1\tR1\n2\tR2\n3\tR3\n")

	sink := &collectSink{}
	err := Run(mustCursor(t, left, 0), mustCursor(t, right, 0), Or, keycmp.Numeric, sink)
	assert.NoError(t, err)

	assert.Equal(t, []pushed{
		{"1", "L1", dedup.Left},
		{"1", "R1", dedup.Right},
		{"2", "R2", dedup.Right},
		{"3", "R3", dedup.Right},
	}, sink.got)
}
