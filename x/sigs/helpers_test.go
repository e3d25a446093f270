package sigs

import (
	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/weavetest"
)

// StdTx is a signed transaction used by the tests of this package.
type StdTx struct {
	weavetest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ weave.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &weavetest.Msg{RoutePath: "test/sigs", Serialized: payload}
	return &StdTx{Tx: weavetest.Tx{Msg: msg}}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return msg.Marshal()
}
