package orm

import (
	"bytes"

	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/errors"
)

// Indexer calculates the secondary index key for a given object.
// Returning a nil key leaves the object out of the index.
type Indexer func(Object) ([]byte, error)

// Index represents a secondary index on some data.
// It is indexed by an arbitrary key returned by Indexer.
// The value is one primary key (unique),
// Or an array of primary keys (!unique).
//
// All references are serialized and stored under a single key, so it
// should be used only for small collections.
type Index struct {
	name   string
	id     []byte
	unique bool
	index  Indexer
	refKey func([]byte) []byte
}

var _ weave.QueryHandler = Index{}

// NewIndex constructs an index
// Indexer calculates the index for an object
// unique enforces a unique constraint on the index
// refKey calculates the absolute dbkey for a ref
func NewIndex(name string, indexer Indexer, unique bool, refKey func([]byte) []byte) Index {
	return Index{
		name:   name,
		id:     []byte("_i." + name + ":"),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

// indexKey is the full key we store in the db, including prefix
func (i Index) indexKey(key []byte) []byte {
	out := make([]byte, len(i.id)+len(key))
	copy(out, i.id)
	copy(out[len(i.id):], key)
	return out
}

// Update handles updating the reference to the object in
// the secondary index.
//
// prev == nil means insert
// save == nil means delete
// both == nil is error
// if both != nil and prev.Key() != save.Key() this is an error
func (i Index) Update(db weave.KVStore, prev Object, save Object) error {
	switch {
	case prev == nil && save == nil:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case prev == nil:
		key, err := i.index(save)
		if err != nil {
			return err
		}
		return i.insert(db, key, save.Key())
	case save == nil:
		key, err := i.index(prev)
		if err != nil {
			return err
		}
		return i.remove(db, key, prev.Key())
	}

	if !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrImmutable, "cannot modify the primary key of an object")
	}
	oldKey, err := i.index(prev)
	if err != nil {
		return err
	}
	newKey, err := i.index(save)
	if err != nil {
		return err
	}
	if bytes.Equal(oldKey, newKey) {
		return nil
	}
	if err := i.remove(db, oldKey, prev.Key()); err != nil {
		return err
	}
	return i.insert(db, newKey, save.Key())
}

// GetAt returns a list of all pk at that index (may be empty), or an error
func (i Index) GetAt(db weave.ReadOnlyKVStore, index []byte) ([][]byte, error) {
	val, err := db.Get(i.indexKey(index))
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	if i.unique {
		return [][]byte{val}, nil
	}
	var data MultiRef
	if err := data.Unmarshal(val); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "index %s: %s", i.name, err)
	}
	return data.Refs, nil
}

// Query handles queries from the QueryRouter
func (i Index) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	switch mod {
	case weave.KeyQueryMod:
		refs, err := i.GetAt(db, data)
		if err != nil {
			return nil, err
		}
		return i.loadRefs(db, refs)
	default:
		return nil, errors.Wrapf(errors.ErrHuman, "not implemented: %s", mod)
	}
}

func (i Index) loadRefs(db weave.ReadOnlyKVStore, refs [][]byte) ([]weave.Model, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	res := make([]weave.Model, len(refs))
	for j, ref := range refs {
		key := i.refKey(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		res[j] = weave.Pair(key, value)
	}
	return res, nil
}

func (i Index) remove(db weave.KVStore, index []byte, pk []byte) error {
	// don't deal with empty keys
	if len(index) == 0 {
		return nil
	}

	key := i.indexKey(index)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}
	if cur == nil {
		return errors.Wrap(errors.ErrNotFound, "cannot remove index from nothing")
	}
	if i.unique {
		if !bytes.Equal(cur, pk) {
			return errors.Wrap(errors.ErrNotFound, "cannot remove index from invalid object")
		}
		return db.Delete(key)
	}

	var data MultiRef
	if err := data.Unmarshal(cur); err != nil {
		return err
	}
	if err := data.Remove(pk); err != nil {
		return err
	}
	if data.Size() == 0 {
		return db.Delete(key)
	}
	raw, err := data.Marshal()
	if err != nil {
		return err
	}
	return db.Set(key, raw)
}

func (i Index) insert(db weave.KVStore, index []byte, pk []byte) error {
	// don't deal with empty keys
	if len(index) == 0 {
		return nil
	}

	key := i.indexKey(index)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}
	if i.unique {
		if cur != nil {
			return errors.Wrap(errors.ErrDuplicate, i.name)
		}
		return db.Set(key, pk)
	}

	var data MultiRef
	if cur != nil {
		if err := data.Unmarshal(cur); err != nil {
			return err
		}
	}
	if err := data.Add(pk); err != nil {
		return err
	}
	raw, err := data.Marshal()
	if err != nil {
		return err
	}
	return db.Set(key, raw)
}
