package keycmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytesCompare(t *testing.T) {
	c, err := Compare(Bytes, []byte("10"), []byte("9"))
	assert.NoError(t, err)
	assert.True(t, c < 0) // lexicographic: "10" < "9"
}

func TestNumericCompare(t *testing.T) {
	c, err := Compare(Numeric, []byte("10"), []byte("9"))
	assert.NoError(t, err)
	assert.True(t, c > 0) // numeric: 10 > 9

	c, err = Compare(Numeric, []byte("-5"), []byte("5"))
	assert.NoError(t, err)
	assert.True(t, c < 0)

	c, err = Compare(Numeric, []byte("7"), []byte("7"))
	assert.NoError(t, err)
	assert.Equal(t, 0, c)
}

func TestNumericParseFailure(t *testing.T) {
	_, err := Compare(Numeric, []byte("abc"), []byte("1"))
	assert.Error(t, err)
}

func TestEqual(t *testing.T) {
	eq, err := Equal(Bytes, []byte("a"), []byte("a"))
	assert.NoError(t, err)
	assert.True(t, eq)

	eq, err = Equal(Bytes, []byte("a"), []byte("b"))
	assert.NoError(t, err)
	assert.False(t, eq)
}
