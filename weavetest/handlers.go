package weavetest

import "github.com/iov-one/solquad"

// Handler is a mock implementation of the weave.Handler interface.
//
// Optionally it writes WriteKey/WriteValue into the store before returning,
// which lets tests observe whether the change survived a failed transaction.
type Handler struct {
	checkCall   int
	CheckResult weave.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult weave.DeliverResult
	DeliverErr    error

	WriteKey   []byte
	WriteValue []byte
}

var _ weave.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	h.checkCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	h.deliverCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) write(db weave.KVStore) error {
	if h.WriteKey == nil {
		return nil
	}
	return db.Set(h.WriteKey, h.WriteValue)
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
