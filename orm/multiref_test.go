package orm

import (
	"testing"

	"github.com/iov-one/solquad/errors"
	"github.com/iov-one/solquad/weavetest/assert"
)

func TestMultiRef(t *testing.T) {
	m, err := NewMultiRef([]byte("c"), []byte("a"), []byte("b"))
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, m.Refs)

	assert.IsErr(t, errors.ErrDuplicate, m.Add([]byte("b")))
	assert.Nil(t, m.Remove([]byte("b")))
	assert.IsErr(t, errors.ErrNotFound, m.Remove([]byte("b")))
	assert.Equal(t, 2, m.Size())

	raw, err := m.Marshal()
	assert.Nil(t, err)
	var loaded MultiRef
	assert.Nil(t, loaded.Unmarshal(raw))
	assert.Equal(t, m.Refs, loaded.Refs)

	cpy := m.Copy().(*MultiRef)
	assert.Nil(t, cpy.Remove([]byte("a")))
	assert.Equal(t, 2, m.Size())

	assert.IsErr(t, errors.ErrEmpty, (&MultiRef{}).Validate())
}

func TestPrefixRange(t *testing.T) {
	cases := map[string]struct {
		prefix []byte
		start  []byte
		end    []byte
	}{
		"nil":      {},
		"empty":    {prefix: []byte{}},
		"simple":   {prefix: []byte("abc"), start: []byte("abc"), end: []byte("abd")},
		"overflow": {prefix: []byte{1, 255}, start: []byte{1, 255}, end: []byte{2, 0}},
		"all ones": {prefix: []byte{255, 255}, start: []byte{255, 255}},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			start, end := prefixRange(tc.prefix)
			assert.Equal(t, tc.start, start)
			assert.Equal(t, tc.end, end)
		})
	}
}
