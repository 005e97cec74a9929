package dedup

import (
	"github.com/grailbio/tabmerge/keycmp"
	"github.com/grailbio/tabmerge/recordio"
)

type bufferedRow struct {
	row  recordio.Row
	side Side
	key  []byte
}

// runBuffer accumulates the rows of the currently-open run and reports the
// previous run's rows once a new key arrives. It never closes a run on its
// own: the caller decides when the final run (if any) should be flushed.
type runBuffer struct {
	mode           keycmp.Mode
	haveLookBehind bool
	lookBehindKey  []byte
	buf            []bufferedRow
}

// add appends row to the open run, closing and returning the previous run
// first if key differs from the run's current key. A nil closed slice means
// no run was closed.
func (r *runBuffer) add(row recordio.Row, side Side, key []byte) (closed []bufferedRow, err error) {
	isEqual := false
	if r.haveLookBehind {
		isEqual, err = keycmp.Equal(r.mode, r.lookBehindKey, key)
		if err != nil {
			return nil, err
		}
	}
	if len(r.buf) > 0 && !isEqual {
		closed = r.buf
		r.buf = nil
	}
	r.buf = append(r.buf, bufferedRow{row: row, side: side, key: key})
	r.lookBehindKey = key
	r.haveLookBehind = true
	return closed, nil
}

// flush returns whatever run is currently open and clears it.
func (r *runBuffer) flush() []bufferedRow {
	run := r.buf
	r.buf = nil
	return run
}
