package batch

import (
	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/errors"
	amino "github.com/tendermint/go-amino"
)

const (
	// PathExecuteBatchMsg is the route of a batch message.
	PathExecuteBatchMsg = "batch/execute"

	// MaxBatchMessages is the maximum number of messages in a single batch.
	MaxBatchMessages = 10
)

var cdc = amino.NewCodec()

func init() {
	weave.MustRegisterMsg(&ExecuteBatchMsg{})
}

// ExecuteBatchMsg carries a list of messages executed as a single
// transaction.
type ExecuteBatchMsg struct {
	Metadata *weave.Metadata   `json:"metadata"`
	Messages []*weave.Envelope `json:"messages"`
}

var _ weave.Msg = (*ExecuteBatchMsg)(nil)

// Path returns the routing path for this message
func (*ExecuteBatchMsg) Path() string {
	return PathExecuteBatchMsg
}

// Validate ensures the batch is not empty, not too long, does not nest
// another batch and that every message is valid.
func (m *ExecuteBatchMsg) Validate() error {
	_, err := m.MsgList()
	return err
}

// MsgList validates the batch and returns the messages it carries in
// execution order.
func (m *ExecuteBatchMsg) MsgList() ([]weave.Msg, error) {
	if err := m.Metadata.Validate(); err != nil {
		return nil, errors.Wrap(err, "metadata")
	}
	switch n := len(m.Messages); {
	case n == 0:
		return nil, errors.Wrap(errors.ErrEmpty, "no messages")
	case n > MaxBatchMessages:
		return nil, errors.Wrapf(errors.ErrInput, "transaction is too large, max: %d", MaxBatchMessages)
	}

	msgs := make([]weave.Msg, len(m.Messages))
	for i, env := range m.Messages {
		if env != nil && env.Path == PathExecuteBatchMsg {
			return nil, errors.Wrapf(errors.ErrInput, "message %d: nested batch", i)
		}
		msg, err := env.Unwrap()
		if err != nil {
			return nil, errors.Wrapf(err, "message %d", i)
		}
		if err := msg.Validate(); err != nil {
			return nil, errors.Wrapf(err, "message %d", i)
		}
		msgs[i] = msg
	}
	return msgs, nil
}

// Marshal serializes the message.
func (m *ExecuteBatchMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

// Unmarshal loads the message from its serialized form.
func (m *ExecuteBatchMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, m)
}

// NewExecuteBatchMsg wraps given messages into a batch.
func NewExecuteBatchMsg(msgs ...weave.Msg) (*ExecuteBatchMsg, error) {
	envs := make([]*weave.Envelope, len(msgs))
	for i, msg := range msgs {
		env, err := weave.WrapMsg(msg)
		if err != nil {
			return nil, errors.Wrapf(err, "message %d", i)
		}
		envs[i] = env
	}
	return &ExecuteBatchMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Messages: envs,
	}, nil
}
