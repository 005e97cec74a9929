// Package mergejoin drives a streaming sort-merge join over two cursors
// already sorted on their respective key columns, applying one of three
// set-algebra combination rules. It has no notion of dedup policy or
// output schema: it only decides, in key order, which raw side-tagged rows
// participate in the result, and hands each one to a Sink.
package mergejoin

import (
	"github.com/grailbio/tabmerge/dedup"
	"github.com/grailbio/tabmerge/keycmp"
	"github.com/grailbio/tabmerge/recordio"
)

// Strategy names one of the three combination rules.
type Strategy int

const (
	// Or keeps every row from both sides (full outer union on key).
	Or Strategy = iota
	// And keeps only rows whose key appears on both sides.
	And
	// AndNot keeps only left rows whose key does not appear on the right.
	AndNot
)

// Sink receives rows in the order the driver decides to emit them. Side and
// key identify which input the row came from and its join-key bytes; the
// row itself is unprojected, in its source file's own column order.
type Sink interface {
	Push(row recordio.Row, side dedup.Side, key []byte) error
}

// Run drives left and right to exhaustion, pushing the rows that strategy
// selects, in the order they become eligible. Both cursors must already be
// positioned at their first row (or Done) by NewCursor.
func Run(left, right *Cursor, strategy Strategy, mode keycmp.Mode, sink Sink) error {
	leftNew := true
	rightNew := true
	var oldLeftValue []byte
	haveOldLeft := false

	for !left.Done() && !right.Done() {
		cmp, err := keycmp.Compare(mode, left.Key(), right.Key())
		if err != nil {
			return err
		}

		oldLeftEqRight := false
		if haveOldLeft {
			oldLeftEqRight, err = keycmp.Equal(mode, oldLeftValue, right.Key())
			if err != nil {
				return err
			}
		}
		needReadLeft := oldLeftEqRight && cmp != 0

		needLeftPush := false
		switch strategy {
		case And:
			needLeftPush = leftNew && cmp == 0
		case Or:
			needLeftPush = leftNew && cmp <= 0 && !needReadLeft
		case AndNot:
			needLeftPush = leftNew && cmp < 0 && !needReadLeft
		}
		if needLeftPush {
			if err := sink.Push(left.Row(), dedup.Left, left.Key()); err != nil {
				return err
			}
			leftNew = false
		}

		needRightPush := false
		switch strategy {
		case Or:
			needRightPush = rightNew && cmp >= 0
		case AndNot:
			needRightPush = false
		case And:
			needRightPush = rightNew && (cmp == 0 || oldLeftEqRight)
		}
		if needRightPush {
			if err := sink.Push(right.Row(), dedup.Right, right.Key()); err != nil {
				return err
			}
			rightNew = false
		}

		if (cmp <= 0) && !needReadLeft {
			leftNew = true
			oldLeftValue = append(oldLeftValue[:0], left.Key()...)
			haveOldLeft = true
			if err := left.Advance(); err != nil {
				return err
			}
		} else {
			rightNew = true
			if err := right.Advance(); err != nil {
				return err
			}
		}
	}

	if strategy != And {
		for !left.Done() {
			if leftNew {
				switch strategy {
				case Or, AndNot:
					if err := sink.Push(left.Row(), dedup.Left, left.Key()); err != nil {
						return err
					}
				}
			}
			if err := left.Advance(); err != nil {
				return err
			}
			leftNew = true
		}
	}

	if strategy != And {
		for !right.Done() {
			if rightNew {
				if strategy == Or {
					if err := sink.Push(right.Row(), dedup.Right, right.Key()); err != nil {
						return err
					}
				}
			}
			if err := right.Advance(); err != nil {
				return err
			}
			rightNew = true
		}
	}

	return nil
}
