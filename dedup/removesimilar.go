package dedup

import (
	"bytes"
	"sort"

	"github.com/grailbio/tabmerge/recordio"
)

// removeSimilar stable-sorts each run by full row content and drops
// adjacent rows that are byte-for-byte identical across every field. Side
// is not part of the equality test: a left row and a right row with
// identical bytes are considered similar.
type removeSimilar struct {
	w   *recordio.Writer
	run runBuffer
}

func (h *removeSimilar) Add(row recordio.Row, side Side, key []byte) error {
	closed, err := h.run.add(row, side, key)
	if err != nil {
		return err
	}
	return h.emit(closed)
}

func (h *removeSimilar) Flush() error {
	if err := h.emit(h.run.flush()); err != nil {
		return err
	}
	return h.w.Flush()
}

func (h *removeSimilar) emit(run []bufferedRow) error {
	if len(run) == 0 {
		return nil
	}
	sort.SliceStable(run, func(i, j int) bool {
		return compareRow(run[i].row, run[j].row) < 0
	})
	var prev recordio.Row
	havePrev := false
	for _, br := range run {
		if havePrev && rowEqual(prev, br.row) {
			continue
		}
		if err := h.w.WriteRow(br.row); err != nil {
			return err
		}
		prev = br.row
		havePrev = true
	}
	return nil
}

func compareRow(a, b recordio.Row) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := bytes.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

func rowEqual(a, b recordio.Row) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
