package app

import (
	"testing"

	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/app"
	"github.com/iov-one/solquad/crypto"
	"github.com/iov-one/solquad/errors"
	"github.com/iov-one/solquad/x/batch"
	"github.com/iov-one/solquad/x/quadfund"
	"github.com/iov-one/solquad/x/sigs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

const testChainID = "qfund-test-chain"

type account struct {
	key *crypto.PrivateKey
	seq int64
}

func newAccount(seed byte) *account {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = seed
	}
	return &account{key: crypto.PrivKeyEd25519FromSeed(raw)}
}

func (a *account) Address() weave.Address {
	return a.key.PublicKey().Address()
}

// signTx serializes msg into a transaction signed by all given accounts.
// Sequences are only incremented on successful delivery.
func signTx(t *testing.T, msg weave.Msg, signers ...*account) []byte {
	t.Helper()
	tx, err := app.NewTx(msg)
	require.NoError(t, err)
	for _, s := range signers {
		sig, err := sigs.SignTx(s.key, tx, testChainID, s.seq)
		require.NoError(t, err)
		tx.Signatures = append(tx.Signatures, sig)
	}
	raw, err := tx.Marshal()
	require.NoError(t, err)
	return raw
}

func deliverOK(t *testing.T, qfund app.BaseApp, msg weave.Msg, signers ...*account) abci.ResponseDeliverTx {
	t.Helper()
	raw := signTx(t, msg, signers...)

	chres := qfund.CheckTx(raw)
	require.Equal(t, uint32(0), chres.Code, chres.Log)

	res := qfund.DeliverTx(raw)
	require.Equal(t, uint32(0), res.Code, res.Log)
	for _, s := range signers {
		s.seq++
	}
	return res
}

func newTestApp(t *testing.T, admin weave.Address, balance string) app.BaseApp {
	t.Helper()
	kv, err := CommitKVStore("")
	require.NoError(t, err)
	qfund := Application(kv, log.NewNopLogger(), true)

	state, err := GenInitOptions([]string{admin.String(), balance})
	require.NoError(t, err)
	qfund.InitChain(abci.RequestInitChain{ChainId: testChainID, AppStateBytes: state})

	// genesis state becomes visible to CheckTx only once committed
	qfund.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1}})
	qfund.EndBlock(abci.RequestEndBlock{Height: 1})
	qfund.Commit()
	return qfund
}

func queryOne(t *testing.T, qfund app.BaseApp, path string, key []byte, dest weave.Persistent) {
	t.Helper()
	res := qfund.Query(abci.RequestQuery{Path: path, Data: key})
	require.Equal(t, uint32(0), res.Code, res.Log)
	require.NoError(t, app.UnmarshalOneResult(res.Value, dest))
}

func TestApp(t *testing.T) {
	admin := newAccount(1)
	alice := newAccount(2)
	bob := newAccount(3)

	qfund := newTestApp(t, admin.Address(), "1000")
	assert.Equal(t, testChainID, qfund.GetChainID())
	meta := &weave.Metadata{Schema: 1}
	poolKey := quadfund.PoolKey(admin.Address())

	qfund.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 2}})

	res := deliverOK(t, qfund, &quadfund.InitializeProjectMsg{
		Metadata: meta,
		Owner:    alice.Address(),
		Pool:     poolKey,
		Name:     "garden",
	}, alice)
	aliceProject := weave.Address(res.Data)
	assert.Equal(t, quadfund.ProjectKey(poolKey, alice.Address()), aliceProject)

	res = deliverOK(t, qfund, &quadfund.InitializeProjectMsg{
		Metadata: meta,
		Owner:    bob.Address(),
		Pool:     poolKey,
		Name:     "library",
	}, bob)
	bobProject := weave.Address(res.Data)

	// a project cannot be created on behalf of another owner
	raw := signTx(t, &quadfund.InitializeProjectMsg{
		Metadata: meta,
		Owner:    alice.Address(),
		Pool:     quadfund.PoolKey(bob.Address()),
		Name:     "stolen",
	}, bob)
	dres := qfund.DeliverTx(raw)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), dres.Code)

	batchMsg, err := batch.NewExecuteBatchMsg(
		&quadfund.AddProjectToPoolMsg{Metadata: meta, Admin: admin.Address(), Project: aliceProject},
		&quadfund.AddProjectToPoolMsg{Metadata: meta, Admin: admin.Address(), Project: bobProject},
		&quadfund.VoteForProjectMsg{Metadata: meta, Admin: admin.Address(), Project: aliceProject, Weight: 1},
		&quadfund.VoteForProjectMsg{Metadata: meta, Admin: admin.Address(), Project: bobProject, Weight: 3},
	)
	require.NoError(t, err)
	deliverOK(t, qfund, batchMsg, admin)

	qfund.EndBlock(abci.RequestEndBlock{Height: 2})
	qfund.Commit()

	var pool quadfund.Pool
	queryOne(t, qfund, "/pools", poolKey, &pool)
	assert.Equal(t, []weave.Address{aliceProject, bobProject}, pool.Projects)
	assert.Equal(t, uint64(4), pool.TotalWeight)

	qfund.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 3}})

	res = deliverOK(t, qfund, &quadfund.DistributeEscrowAmountMsg{
		Metadata: meta,
		Admin:    admin.Address(),
		Project:  bobProject,
	}, admin)
	paid, err := quadfund.DecodeAmount(res.Data)
	require.NoError(t, err)
	assert.Equal(t, uint64(750), paid)

	// replaying a signed transaction is rejected
	replay := signTx(t, &quadfund.DistributeRoundMsg{Metadata: meta, Admin: admin.Address()}, admin)
	deliverOK(t, qfund, &quadfund.DistributeRoundMsg{Metadata: meta, Admin: admin.Address()}, admin)
	dres = qfund.DeliverTx(replay)
	assert.Equal(t, sigs.ErrInvalidSequence.ABCICode(), dres.Code)

	qfund.EndBlock(abci.RequestEndBlock{Height: 3})
	qfund.Commit()

	var escrow quadfund.Escrow
	queryOne(t, qfund, "/escrows", quadfund.EscrowKey(admin.Address()), &escrow)
	// 250 left after the first payment: alice receives 62, bob 187
	assert.Equal(t, uint64(1), escrow.Balance)

	var project quadfund.Project
	queryOne(t, qfund, "/projects", aliceProject, &project)
	assert.Equal(t, uint64(62), project.DistributedAmount)
	queryOne(t, qfund, "/projects", bobProject, &project)
	assert.Equal(t, uint64(937), project.DistributedAmount)

	var user sigs.UserData
	queryOne(t, qfund, "/auth", admin.Address(), &user)
	assert.Equal(t, int64(3), user.Sequence)

	info := qfund.Info(abci.RequestInfo{})
	assert.Equal(t, int64(3), info.LastBlockHeight)
	assert.Equal(t, Name, info.Data)
	assert.Equal(t, Version(), info.Version)
}

func TestAppRejectsUnsignedTx(t *testing.T) {
	admin := newAccount(1)
	qfund := newTestApp(t, admin.Address(), "0")
	qfund.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 2}})

	raw := signTx(t, &quadfund.FundEscrowMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Admin:    admin.Address(),
		Amount:   10,
	})
	res := qfund.DeliverTx(raw)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code)

	chres := qfund.CheckTx([]byte("not a transaction"))
	assert.Equal(t, errors.ErrInput.ABCICode(), chres.Code)
}
