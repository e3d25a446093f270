package store

import (
	"testing"

	"github.com/iov-one/solquad/weavetest/assert"
)

func assertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

func TestCacheWrapWriteAndDiscard(t *testing.T) {
	base := MemStore()
	assert.Nil(t, base.Set([]byte("a"), []byte("1")))
	assert.Nil(t, base.Set([]byte("b"), []byte("2")))

	discarded := base.CacheWrap()
	assert.Nil(t, discarded.Set([]byte("a"), []byte("changed")))
	assert.Nil(t, discarded.Delete([]byte("b")))
	assertGetHas(t, discarded, []byte("a"), []byte("changed"), true)
	assertGetHas(t, discarded, []byte("b"), nil, false)
	discarded.Discard()

	// Parent must not see any change of a discarded cache.
	assertGetHas(t, base, []byte("a"), []byte("1"), true)
	assertGetHas(t, base, []byte("b"), []byte("2"), true)

	written := base.CacheWrap()
	assert.Nil(t, written.Set([]byte("c"), []byte("3")))
	assert.Nil(t, written.Delete([]byte("a")))
	// Not visible before the write.
	assertGetHas(t, base, []byte("c"), nil, false)
	assert.Nil(t, written.Write())

	assertGetHas(t, base, []byte("a"), nil, false)
	assertGetHas(t, base, []byte("b"), []byte("2"), true)
	assertGetHas(t, base, []byte("c"), []byte("3"), true)
}

func TestNestedCacheWrap(t *testing.T) {
	base := MemStore()
	outer := base.CacheWrap()
	assert.Nil(t, outer.Set([]byte("k"), []byte("outer")))

	inner := outer.CacheWrap()
	assertGetHas(t, inner, []byte("k"), []byte("outer"), true)
	assert.Nil(t, inner.Set([]byte("k"), []byte("inner")))
	inner.Discard()
	assertGetHas(t, outer, []byte("k"), []byte("outer"), true)

	inner = outer.CacheWrap()
	assert.Nil(t, inner.Set([]byte("k"), []byte("inner")))
	assert.Nil(t, inner.Write())
	assertGetHas(t, outer, []byte("k"), []byte("inner"), true)
	assertGetHas(t, base, []byte("k"), nil, false)
}

func TestIteratorCombinesLayers(t *testing.T) {
	base := MemStore()
	for _, k := range []string{"a", "c", "e", "g"} {
		assert.Nil(t, base.Set([]byte(k), []byte("base-"+k)))
	}
	cache := base.CacheWrap()
	assert.Nil(t, cache.Set([]byte("b"), []byte("cache-b")))
	assert.Nil(t, cache.Set([]byte("e"), []byte("cache-e")))
	assert.Nil(t, cache.Delete([]byte("c")))

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		wantKeys   []string
		wantValues []string
	}{
		"full range ascending": {
			wantKeys:   []string{"a", "b", "e", "g"},
			wantValues: []string{"base-a", "cache-b", "cache-e", "base-g"},
		},
		"full range descending": {
			reverse:    true,
			wantKeys:   []string{"g", "e", "b", "a"},
			wantValues: []string{"base-g", "cache-e", "cache-b", "base-a"},
		},
		"bounded range, end exclusive": {
			start:      []byte("b"),
			end:        []byte("g"),
			wantKeys:   []string{"b", "e"},
			wantValues: []string{"cache-b", "cache-e"},
		},
		"open end": {
			start:      []byte("d"),
			wantKeys:   []string{"e", "g"},
			wantValues: []string{"cache-e", "base-g"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var it Iterator
			var err error
			if tc.reverse {
				it, err = cache.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = cache.Iterator(tc.start, tc.end)
			}
			assert.Nil(t, err)
			models, err := ReadAll(it)
			assert.Nil(t, err)

			var keys, values []string
			for _, m := range models {
				keys = append(keys, string(m.Key))
				values = append(values, string(m.Value))
			}
			assert.Equal(t, tc.wantKeys, keys)
			assert.Equal(t, tc.wantValues, values)
		})
	}
}
