package dedup

import (
	"github.com/grailbio/tabmerge/keycmp"
	"github.com/grailbio/tabmerge/recordio"
)

// keepFirst emits exactly the rows whose key is unique across the whole
// run sequence: a run of length one passes through untouched, and a run of
// length two or more is suppressed entirely. This is not "first row of
// every run" -- a key seen twice loses both occurrences.
//
// It holds a one-row look-behind plus a counter of how many times the
// look-behind's key has repeated so far. The look-behind is only replaced
// when a genuinely new key arrives, so a run's repeats never overwrite the
// row that might still need emitting.
type keepFirst struct {
	w    *recordio.Writer
	mode keycmp.Mode

	have    bool
	lastKey []byte
	lastRow recordio.Row
	repeats int
}

func (h *keepFirst) Add(row recordio.Row, side Side, key []byte) error {
	isEqual := false
	if h.have {
		var err error
		isEqual, err = keycmp.Equal(h.mode, h.lastKey, key)
		if err != nil {
			return err
		}
	}
	if isEqual {
		h.repeats++
	} else {
		if h.have && h.repeats == 0 {
			if err := h.w.WriteRow(h.lastRow); err != nil {
				return err
			}
		}
		h.repeats = 0
		h.lastKey = key
		h.lastRow = row
		h.have = true
	}
	return nil
}

func (h *keepFirst) Flush() error {
	if h.have && h.repeats == 0 {
		if err := h.w.WriteRow(h.lastRow); err != nil {
			return err
		}
	}
	return h.w.Flush()
}
