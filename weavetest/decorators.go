package weavetest

import "github.com/iov-one/solquad"

// Decorator is a mock implementation of the weave.Decorator interface.
//
// Set CheckErr or DeliverErr to force error response for corresponding method.
// Otherwise the wrapped handler is called. Every call is counted.
type Decorator struct {
	checkCall   int
	CheckErr    error
	deliverCall int
	DeliverErr  error
}

var _ weave.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	d.checkCall++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	d.deliverCall++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

func (d *Decorator) CheckCallCount() int {
	return d.checkCall
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

// Decorate returns a handler that passes every call through the decorator.
func Decorate(h weave.Handler, d weave.Decorator) weave.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn weave.Handler
	dc weave.Decorator
}

func (d *decoratedHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
