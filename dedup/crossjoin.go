package dedup

import "github.com/grailbio/tabmerge/recordio"

// crossJoin emits the cartesian product of a run's left rows against its
// right rows, left-major. A run with rows on only one side passes through
// unchanged: there is nothing to cross. When removeSimilar is set, the
// run's (row, side) pairs are deduplicated before the product is taken,
// implementing CrossJoinAndRemoveSimilar.
type crossJoin struct {
	w             *recordio.Writer
	run           runBuffer
	removeSimilar bool
}

func (h *crossJoin) Add(row recordio.Row, side Side, key []byte) error {
	closed, err := h.run.add(row, side, key)
	if err != nil {
		return err
	}
	return h.emit(closed)
}

func (h *crossJoin) Flush() error {
	if err := h.emit(h.run.flush()); err != nil {
		return err
	}
	return h.w.Flush()
}

func (h *crossJoin) emit(run []bufferedRow) error {
	if len(run) == 0 {
		return nil
	}
	if h.removeSimilar {
		run = dedupeRunBySideAndRow(run)
	}
	var lefts, rights []recordio.Row
	for _, br := range run {
		if br.side == Left {
			lefts = append(lefts, br.row)
		} else {
			rights = append(rights, br.row)
		}
	}
	if len(lefts) == 0 || len(rights) == 0 {
		for _, br := range run {
			if err := h.w.WriteRow(br.row); err != nil {
				return err
			}
		}
		return nil
	}
	for _, l := range lefts {
		for _, r := range rights {
			if err := h.w.WriteRow(combineRow(l, r)); err != nil {
				return err
			}
		}
	}
	return nil
}

// combineRow produces one output row from a left/right pair already
// projected to the union schema: the right value wins wherever it is
// non-empty, otherwise the left value is kept.
func combineRow(l, r recordio.Row) recordio.Row {
	out := append(recordio.Row(nil), l...)
	for i, field := range r {
		if i >= len(out) {
			out = append(out, field)
			continue
		}
		if len(field) > 0 {
			out[i] = field
		}
	}
	return out
}

func dedupeRunBySideAndRow(run []bufferedRow) []bufferedRow {
	out := make([]bufferedRow, 0, len(run))
	for _, br := range run {
		dup := false
		for _, seen := range out {
			if seen.side == br.side && rowEqual(seen.row, br.row) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, br)
		}
	}
	return out
}
