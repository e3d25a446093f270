package app

import (
	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/errors"
)

// _wv: is a prefix for data owned by the application frame rather than by
// any extension.
const (
	chainIDKey = "_wv:chainID"
	appNameKey = "_wv:appName"
)

// CommitStore wraps the persisted state of a single application. It keeps
// separate caches for DeliverTx and CheckTx and owns the chain identity:
// the chain ID and the name of the application that initialized the data.
type CommitStore struct {
	name      string
	chainID   string
	committed weave.CommitKVStore
	deliver   weave.KVCacheWrap
	check     weave.KVCacheWrap
}

// NewCommitStore loads the latest version of the store for the named
// application. Data written by an application with a different name is
// refused.
func NewCommitStore(name string, store weave.CommitKVStore) (*CommitStore, error) {
	if name == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "application name")
	}
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	cs := &CommitStore{
		name:      name,
		committed: store,
		deliver:   store.CacheWrap(),
		check:     store.CacheWrap(),
	}

	owner, err := cs.deliver.Get([]byte(appNameKey))
	if err != nil {
		return nil, errors.Wrap(err, "load application name")
	}
	if owner != nil && string(owner) != name {
		return nil, errors.Wrapf(errors.ErrState, "database belongs to %q, not %q", owner, name)
	}
	chainID, err := cs.deliver.Get([]byte(chainIDKey))
	if err != nil {
		return nil, errors.Wrap(err, "load chain id")
	}
	cs.chainID = string(chainID)
	return cs, nil
}

// ChainID returns the chain ID this store was initialized for, or an empty
// string before genesis.
func (cs *CommitStore) ChainID() string {
	return cs.chainID
}

// InitChain binds the store to a chain. It can be called once, during
// genesis, and the result becomes persistent with the next Commit.
func (cs *CommitStore) InitChain(chainID string) error {
	if !weave.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	if cs.chainID != "" {
		return errors.Wrapf(errors.ErrUnauthorized, "chain id %q set at genesis cannot be modified", cs.chainID)
	}
	if err := cs.deliver.Set([]byte(chainIDKey), []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	if err := cs.deliver.Set([]byte(appNameKey), []byte(cs.name)); err != nil {
		return errors.Wrap(err, "save application name")
	}
	cs.chainID = chainID
	return nil
}

// CommitInfo returns the current height and hash
func (cs *CommitStore) CommitInfo() (weave.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit flushes the deliver cache to disk and starts fresh caches on top
// of the new version. Anything written to the check cache is dropped.
func (cs *CommitStore) Commit() (weave.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return weave.CommitID{}, err
	}
	cs.check.Discard()

	res, err := cs.committed.Commit()
	if err != nil {
		return res, err
	}

	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	return res, nil
}

// CommittedView returns a read view of the last committed version. Queries
// use it so that they never observe a block in progress. The caller must
// Discard it.
func (cs *CommitStore) CommittedView() weave.KVCacheWrap {
	return cs.committed.CacheWrap()
}

// CheckStore returns a store implementation that must be used during the
// checking phase.
func (cs *CommitStore) CheckStore() weave.CacheableKVStore {
	return cs.check
}

// DeliverStore returns a store implementation that must be used during the
// delivery phase.
func (cs *CommitStore) DeliverStore() weave.CacheableKVStore {
	return cs.deliver
}
