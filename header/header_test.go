package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnionNoOverlap(t *testing.T) {
	out, leftIdx, rightIdx := Union([]string{"key", "A"}, []string{"key", "B"}, nil)
	assert.Equal(t, []string{"key", "A", "B"}, out)
	assert.Equal(t, []int{0, 1, Absent}, leftIdx)
	assert.Equal(t, []int{0, Absent, 1}, rightIdx)
}

func TestUnionFirstOccurrenceWins(t *testing.T) {
	out, _, _ := Union([]string{"a", "b", "a"}, []string{"b", "c"}, nil)
	assert.Equal(t, []string{"a", "b", "c"}, out)
}

func TestUnionCallbackRenameAndDrop(t *testing.T) {
	cb := func(name string) (string, bool) {
		if name == "drop" {
			return "", false
		}
		if name == "old" {
			return "new", true
		}
		return name, true
	}
	out, leftIdx, rightIdx := Union([]string{"old", "drop", "keep"}, []string{"keep"}, cb)
	assert.Equal(t, []string{"new", "keep"}, out)
	assert.Equal(t, []int{0, 2}, leftIdx)
	assert.Equal(t, []int{Absent, 0}, rightIdx)
}

func TestResolveKey(t *testing.T) {
	idx, err := ResolveKey([]string{"key", "A"}, "A")
	assert.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = ResolveKey([]string{"key", "A"}, "missing")
	assert.Error(t, err)
}

func TestProject(t *testing.T) {
	row := [][]byte{[]byte("1"), []byte("a")}
	out := Project(row, []int{0, Absent, 1})
	assert.Equal(t, [][]byte{[]byte("1"), {}, []byte("a")}, out)
}
