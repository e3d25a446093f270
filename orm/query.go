package orm

import (
	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/errors"
)

// queryPrefix returns all models stored under keys starting with prefix.
func queryPrefix(db weave.ReadOnlyKVStore, prefix []byte) ([]weave.Model, error) {
	itr, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return consumeIterator(itr)
}

// consumeIterator reads all remaining data into a slice and releases the
// iterator.
func consumeIterator(itr weave.Iterator) ([]weave.Model, error) {
	defer itr.Release()

	var res []weave.Model
	key, value, err := itr.Next()
	for err == nil {
		res = append(res, weave.Pair(key, value))
		key, value, err = itr.Next()
	}
	if !errors.ErrIteratorDone.Is(err) {
		return nil, err
	}
	return res, nil
}

// prefixRange turns a prefix into (start, end) to create
// an iterator over all keys that share it.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if prefix == nil {
		return nil, nil
	}
	start := append([]byte(nil), prefix...)
	// special case: no prefix is whole range
	if len(prefix) == 0 {
		return start, nil
	}

	// copy the prefix and update last byte
	end := append([]byte(nil), prefix...)
	l := len(end) - 1
	end[l]++

	// wait, what if that overflowed?....
	for end[l] == 0 && l > 0 {
		l--
		end[l]++
	}

	// okay, funny guy, you gave us FFF, no end to this range...
	if l == 0 && end[0] == 0 {
		end = nil
	}
	return start, end
}
