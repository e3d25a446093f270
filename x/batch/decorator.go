package batch

import (
	"strings"

	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/errors"
)

// Decorator iterates through batch transaction messages and passes them down the stack
type Decorator struct{}

var _ weave.Decorator = Decorator{}

// NewDecorator returns a batch transaction decorator
func NewDecorator() Decorator {
	return Decorator{}
}

// BatchTx exposes a single message of a batch as a transaction, keeping
// everything else of the original transaction.
type BatchTx struct {
	weave.Tx
	Msg weave.Msg
}

// GetMsg returns the batched message.
func (tx *BatchTx) GetMsg() (weave.Msg, error) {
	return tx.Msg, nil
}

// Results is the data returned by a batch: the data of every message in
// execution order.
type Results struct {
	Data [][]byte `json:"data"`
}

// DecodeResults unpacks the data returned by a batch.
func DecodeResults(raw []byte) (*Results, error) {
	var r Results
	if err := cdc.UnmarshalBinaryBare(raw, &r); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "batch results: %s", err)
	}
	return &r, nil
}

// Check iterates through messages in a batch transaction and passes them
// down the stack
func (d Decorator) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	msgs, ok, err := batchMsgs(tx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return next.Check(ctx, store, tx)
	}

	var (
		res  weave.CheckResult
		data = make([][]byte, len(msgs))
		logs = make([]string, len(msgs))
	)
	for i, msg := range msgs {
		r, err := next.Check(ctx, store, &BatchTx{Tx: tx, Msg: msg})
		if err != nil {
			return nil, errors.Wrapf(err, "batch message %d", i)
		}
		data[i] = r.Data
		logs[i] = r.Log
		res.GasAllocated += r.GasAllocated
	}
	res.Data = cdc.MustMarshalBinaryBare(Results{Data: data})
	res.Log = strings.Join(logs, "\n")
	return &res, nil
}

// Deliver iterates through messages in a batch transaction and passes them
// down the stack
func (d Decorator) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	msgs, ok, err := batchMsgs(tx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return next.Deliver(ctx, store, tx)
	}

	var (
		res  weave.DeliverResult
		data = make([][]byte, len(msgs))
		logs = make([]string, len(msgs))
	)
	for i, msg := range msgs {
		r, err := next.Deliver(ctx, store, &BatchTx{Tx: tx, Msg: msg})
		if err != nil {
			weave.GetLogger(ctx).Debug("batch aborted", "index", i, "path", msg.Path(), "err", err)
			return nil, errors.Wrapf(err, "batch message %d", i)
		}
		data[i] = r.Data
		logs[i] = r.Log
		res.GasUsed += r.GasUsed
	}
	res.Data = cdc.MustMarshalBinaryBare(Results{Data: data})
	res.Log = strings.Join(logs, "\n")
	return &res, nil
}

// batchMsgs returns the messages of a batch transaction. The second value
// is false when the transaction does not carry a batch.
func batchMsgs(tx weave.Tx) ([]weave.Msg, bool, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, false, err
	}
	batch, ok := msg.(*ExecuteBatchMsg)
	if !ok {
		return nil, false, nil
	}
	msgs, err := batch.MsgList()
	if err != nil {
		return nil, false, err
	}
	return msgs, true, nil
}
