package app

import (
	"testing"

	"github.com/iov-one/solquad/errors"
	"github.com/iov-one/solquad/store/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dbm "github.com/tendermint/tendermint/libs/db"
)

func TestCommitStoreChainIdentity(t *testing.T) {
	db := dbm.NewMemDB()

	cs, err := NewCommitStore("qfund", iavl.NewCommitStoreFromDB(db))
	require.NoError(t, err)
	assert.Equal(t, "", cs.ChainID())

	err = cs.InitChain("bad chain id!")
	assert.True(t, errors.ErrInput.Is(err), "%+v", err)

	require.NoError(t, cs.InitChain("qfund-test-1"))
	err = cs.InitChain("qfund-test-2")
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
	assert.Equal(t, "qfund-test-1", cs.ChainID())

	// the check cache sees genesis data only after the commit
	val, err := cs.CheckStore().Get([]byte(chainIDKey))
	require.NoError(t, err)
	assert.Nil(t, val)
	_, err = cs.Commit()
	require.NoError(t, err)
	val, err = cs.CheckStore().Get([]byte(chainIDKey))
	require.NoError(t, err)
	assert.Equal(t, []byte("qfund-test-1"), val)

	view := cs.CommittedView()
	val, err = view.Get([]byte(appNameKey))
	view.Discard()
	require.NoError(t, err)
	assert.Equal(t, []byte("qfund"), val)

	reopened, err := NewCommitStore("qfund", iavl.NewCommitStoreFromDB(db))
	require.NoError(t, err)
	assert.Equal(t, "qfund-test-1", reopened.ChainID())

	_, err = NewCommitStore("other-app", iavl.NewCommitStoreFromDB(db))
	assert.True(t, errors.ErrState.Is(err), "%+v", err)

	_, err = NewCommitStore("", iavl.NewCommitStoreFromDB(dbm.NewMemDB()))
	assert.True(t, errors.ErrEmpty.Is(err), "%+v", err)
}
