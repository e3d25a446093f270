package app

import (
	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp adds DeliverTx and CheckTx handlers to the storage and query
// functionality of StoreApp
type BaseApp struct {
	*StoreApp
	decoder weave.TxDecoder
	handler weave.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application
func NewBaseApp(store *StoreApp, decoder weave.TxDecoder, handler weave.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store.WithDebug(debug),
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx - ABCI - dispatches to the handler
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		b.logger.Debug("deliver_tx: cannot load tx", "err", err)
		return DeliverTxError(err, b.debug)
	}

	ctx := weave.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", weave.GetPath(tx))

	cache := b.DeliverStore().CacheWrap()
	res, err := b.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		weave.GetLogger(ctx).Debug("tx failed", "err", err)
		return DeliverTxError(err, b.debug)
	}
	if err := cache.Write(); err != nil {
		return DeliverTxError(errors.Wrap(err, "write tx changes"), b.debug)
	}
	return DeliverOrError(res, nil, b.debug)
}

// CheckTx - ABCI - dispatches to the handler
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return CheckTxError(err, b.debug)
	}

	ctx := weave.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", weave.GetPath(tx))

	cache := b.CheckStore().CacheWrap()
	res, err := b.handler.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return CheckTxError(err, b.debug)
	}
	if err := cache.Write(); err != nil {
		return CheckTxError(errors.Wrap(err, "write tx changes"), b.debug)
	}
	return CheckOrError(res, nil, b.debug)
}

// loadTx calls the decoder, and capture any panics
func (b BaseApp) loadTx(txBytes []byte) (tx weave.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(txBytes)
}
