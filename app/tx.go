package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/errors"
	"github.com/iov-one/solquad/x/sigs"
)

// Tx is the transaction format accepted by the application: an enveloped
// message together with the signatures authorizing it.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures" json:"signatures"`
	Msg        *weave.Envelope      `protobuf:"bytes,2,opt,name=msg,proto3" json:"msg"`
}

var _ weave.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx wraps given message into a transaction without signatures.
func NewTx(msg weave.Msg) (*Tx, error) {
	env, err := weave.WrapMsg(msg)
	if err != nil {
		return nil, err
	}
	return &Tx{Msg: env}, nil
}

// GetMsg returns the message carried by the transaction.
func (tx *Tx) GetMsg() (weave.Msg, error) {
	return tx.Msg.Unwrap()
}

// GetSignatures returns the signatures of the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the serialized transaction without signatures.
// This is the payload every signature is created for.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Msg: tx.Msg}
	raw, err := unsigned.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal unsigned tx")
	}
	return raw, nil
}

// Marshal serializes the transaction.
func (tx *Tx) Marshal() ([]byte, error) {
	return proto.Marshal((*txWire)(tx))
}

// Unmarshal loads the transaction from its serialized form.
func (tx *Tx) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*txWire)(tx))
}

// DecodeTx is the weave.TxDecoder of the application.
func DecodeTx(raw []byte) (weave.Tx, error) {
	var tx Tx
	if err := tx.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "decode tx: %s", err)
	}
	if err := tx.Msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "tx message")
	}
	for i, sig := range tx.Signatures {
		if err := sig.Validate(); err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
	}
	return &tx, nil
}

// ResultSet contains a list of keys or values
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results" json:"results"`
}

// Marshal serializes the result set.
func (r *ResultSet) Marshal() ([]byte, error) {
	return proto.Marshal((*resultSetWire)(r))
}

// Unmarshal loads the result set from its serialized form.
func (r *ResultSet) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*resultSetWire)(r))
}

type txWire Tx

func (tx *txWire) Reset()         { *tx = txWire{} }
func (tx *txWire) String() string { return proto.CompactTextString(tx) }
func (*txWire) ProtoMessage()     {}

type resultSetWire ResultSet

func (r *resultSetWire) Reset()         { *r = resultSetWire{} }
func (r *resultSetWire) String() string { return proto.CompactTextString(r) }
func (*resultSetWire) ProtoMessage()    {}
