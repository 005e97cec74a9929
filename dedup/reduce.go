package dedup

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/tabmerge/keycmp"
	"github.com/grailbio/tabmerge/recordio"
)

// preconditionError is the sentinel cause for Reduce's internal invariant
// check. It should never actually trigger: runBuffer only ever closes a
// run on a key change, so every run it hands to emit (and on to mergeRun)
// already shares one key. It exists as a fail-fast backstop rather than a reachable code
// path.
type preconditionError string

func (e preconditionError) Error() string { return string(e) }

// ErrPrecondition is wrapped into any error Reduce returns when a run
// somehow contains rows with differing keys.
const ErrPrecondition = preconditionError("dedup: reduce: mismatched keys within a run")

// reduce collapses each run into a single row via a field-wise merge: for
// each output field, the last non-empty value across the run's rows wins.
// A run of one row is copied through unchanged.
type reduce struct {
	w    *recordio.Writer
	mode keycmp.Mode
	run  runBuffer
}

func (h *reduce) Add(row recordio.Row, side Side, key []byte) error {
	closed, err := h.run.add(row, side, key)
	if err != nil {
		return err
	}
	return h.emit(closed)
}

func (h *reduce) Flush() error {
	if err := h.emit(h.run.flush()); err != nil {
		return err
	}
	return h.w.Flush()
}

func (h *reduce) emit(run []bufferedRow) error {
	if len(run) == 0 {
		return nil
	}
	merged, err := mergeRun(h.mode, run)
	if err != nil {
		return err
	}
	return h.w.WriteRow(merged)
}

func mergeRun(mode keycmp.Mode, run []bufferedRow) (recordio.Row, error) {
	base := append(recordio.Row(nil), run[0].row...)
	for _, br := range run[1:] {
		eq, err := keycmp.Equal(mode, run[0].key, br.key)
		if err != nil {
			return nil, err
		}
		if !eq {
			return nil, errors.E(ErrPrecondition, "reduce")
		}
		for i, field := range br.row {
			if i >= len(base) {
				base = append(base, field)
				continue
			}
			if len(field) > 0 {
				base[i] = field
			}
		}
	}
	return base, nil
}
