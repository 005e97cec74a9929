// Package dedup collapses runs of rows that share a join key into output
// rows, according to one of six deduplication policies. Each policy is a
// small streaming state machine over the active run; only the rows of the
// currently-open run are ever buffered.
package dedup

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/tabmerge/keycmp"
	"github.com/grailbio/tabmerge/recordio"
)

// Side tags a row's provenance as it crosses from the merge-join driver
// into the dedup layer.
type Side int

const (
	// Left identifies a row that came from the left input.
	Left Side = iota
	// Right identifies a row that came from the right input.
	Right
)

// Strategy names one of the six deduplication policies.
type Strategy int

const (
	// KeepAll passes every row through unchanged.
	KeepAll Strategy = iota
	// KeepFirst suppresses every run of length >= 2 entirely, and passes
	// through runs of length 1 (isolated keys).
	KeepFirst
	// RemoveSimilar stable-sorts each run by full row content and drops
	// adjacent byte-equal rows.
	RemoveSimilar
	// Reduce collapses each run into one row via a field-wise right-biased
	// merge over the run's rows.
	Reduce
	// CrossJoin emits the cartesian product of a run's left rows and right
	// rows (or passes rows through unchanged if only one side is present).
	CrossJoin
	// CrossJoinAndRemoveSimilar is CrossJoin after first deduplicating the
	// run's buffered (row, side) pairs.
	CrossJoinAndRemoveSimilar
)

// Handler is the shared contract implemented by every deduplication
// strategy. Rows arrive in merge-join order; within a run, order is
// preserved. add/flush write directly to the handler's writer.
type Handler interface {
	// Add processes one row. key is that row's raw key-column bytes.
	Add(row recordio.Row, side Side, key []byte) error
	// Flush closes any open run and flushes the underlying writer.
	Flush() error
}

// New constructs the Handler for strategy, writing output through w. mode
// governs how key-bytes are compared when detecting run boundaries.
func New(strategy Strategy, w *recordio.Writer, mode keycmp.Mode) (Handler, error) {
	switch strategy {
	case KeepAll:
		return &keepAll{w: w}, nil
	case KeepFirst:
		return &keepFirst{w: w, mode: mode}, nil
	case RemoveSimilar:
		return &removeSimilar{w: w, run: runBuffer{mode: mode}}, nil
	case Reduce:
		return &reduce{w: w, mode: mode, run: runBuffer{mode: mode}}, nil
	case CrossJoin:
		return &crossJoin{w: w, run: runBuffer{mode: mode}}, nil
	case CrossJoinAndRemoveSimilar:
		return &crossJoin{w: w, run: runBuffer{mode: mode}, removeSimilar: true}, nil
	default:
		return nil, errors.E("dedup: unknown strategy")
	}
}

func writeRow(w *recordio.Writer, row recordio.Row) error {
	return w.WriteRow(row)
}
