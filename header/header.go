// Package header computes the output schema for a two-sided join: the
// ordered union of both sides' column names, and per-side projection
// tables mapping a union column back to its source index.
package header

import "github.com/pkg/errors"

// Absent marks a union column that has no corresponding source column on a
// given side. The zero-length byte field is the in-band stand-in for this
// sentinel when a row is actually projected.
const Absent = -1

// Callback transforms a source column name before it participates in the
// union: it returns the (possibly renamed) name and whether to keep the
// column at all. A nil Callback keeps every column unchanged.
type Callback func(name string) (newName string, keep bool)

func apply(cb Callback, names []string) []string {
	if cb == nil {
		return names
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if newName, keep := cb(n); keep {
			out = append(out, newName)
		}
	}
	return out
}

// Union computes the ordered, deduplicated union of left and right (first
// occurrence wins), along with projection tables from each union index to
// that side's column index, or Absent. cb, if non-nil, is applied to each
// side's raw header names before union; a dropped column has no projection
// entry pointing to it, so its data never reaches the output.
func Union(left, right []string, cb Callback) (out []string, leftIdx, rightIdx []int) {
	leftNames := apply(cb, left)
	rightNames := apply(cb, right)

	seen := make(map[string]bool, len(leftNames)+len(rightNames))
	for _, n := range leftNames {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	for _, n := range rightNames {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}

	leftPos := indexOf(cb, left)
	rightPos := indexOf(cb, right)
	leftIdx = make([]int, len(out))
	rightIdx = make([]int, len(out))
	for i, name := range out {
		leftIdx[i] = lookup(leftPos, name)
		rightIdx[i] = lookup(rightPos, name)
	}
	return out, leftIdx, rightIdx
}

// indexOf maps each kept (possibly renamed) column name to its index in the
// raw source header names, so projection picks the right source field even
// when cb drops earlier columns.
func indexOf(cb Callback, names []string) map[string]int {
	m := make(map[string]int, len(names))
	for i, n := range names {
		if cb != nil {
			newName, keep := cb(n)
			if !keep {
				continue
			}
			n = newName
		}
		if _, ok := m[n]; !ok {
			m[n] = i
		}
	}
	return m
}

func lookup(m map[string]int, name string) int {
	if i, ok := m[name]; ok {
		return i
	}
	return Absent
}

// ResolveKey finds name's index in header h, returning a schema error if
// it is not present.
func ResolveKey(h []string, name string) (int, error) {
	for i, n := range h {
		if n == name {
			return i, nil
		}
	}
	return Absent, errors.Errorf("header: key column %q not found", name)
}

// Project widens a source row to the union schema width, given that side's
// projection table. Absent positions become zero-length fields.
func Project(row [][]byte, idx []int) [][]byte {
	out := make([][]byte, len(idx))
	for i, j := range idx {
		if j == Absent {
			out[i] = []byte{}
			continue
		}
		if j < len(row) {
			out[i] = row[j]
		} else {
			out[i] = []byte{}
		}
	}
	return out
}
