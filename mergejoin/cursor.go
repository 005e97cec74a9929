package mergejoin

import (
	"github.com/pkg/errors"

	"github.com/grailbio/tabmerge/recordio"
)

// Cursor is a one-row lookahead over a sorted recordio.Reader, exposing the
// current row's key bytes so the driver can compare both sides without
// re-scanning.
type Cursor struct {
	r      *recordio.Reader
	keyIdx int

	row  recordio.Row
	key  []byte
	done bool
}

// NewCursor wraps r, reading its first data row immediately. keyIdx is the
// row index of the join key column, resolved against r's own header.
func NewCursor(r *recordio.Reader, keyIdx int) (*Cursor, error) {
	c := &Cursor{r: r, keyIdx: keyIdx}
	if err := c.advance(); err != nil {
		return nil, err
	}
	return c, nil
}

// Row returns the current row. Valid only when Done is false.
func (c *Cursor) Row() recordio.Row { return c.row }

// Key returns the current row's key-column bytes. Valid only when Done is
// false.
func (c *Cursor) Key() []byte { return c.key }

// Done reports whether the cursor has been exhausted.
func (c *Cursor) Done() bool { return c.done }

// Advance discards the current row and reads the next one.
func (c *Cursor) Advance() error { return c.advance() }

func (c *Cursor) advance() error {
	row, ok := c.r.Scan()
	if !ok {
		c.done = true
		return c.r.Err()
	}
	if c.keyIdx >= len(row) {
		return errors.New("mergejoin: row is shorter than the key column index")
	}
	c.row = row
	c.key = row[c.keyIdx]
	return nil
}
