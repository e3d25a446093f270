package app

import (
	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// CheckOrError returns an abci response for CheckTx. If err is not nil it
// takes precedence over the result.
func CheckOrError(res *weave.CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return abci.ResponseCheckTx{
		Data:      res.Data,
		Log:       res.Log,
		GasWanted: res.GasAllocated,
	}
}

// CheckTxError converts an error into an abci CheckTx response.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseCheckTx{
		Code: code,
		Log:  log,
	}
}

// DeliverOrError returns an abci response for DeliverTx. If err is not nil
// it takes precedence over the result.
func DeliverOrError(res *weave.DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return abci.ResponseDeliverTx{
		Data:    res.Data,
		Log:     res.Log,
		GasUsed: res.GasUsed,
	}
}

// DeliverTxError converts an error into an abci DeliverTx response.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseDeliverTx{
		Code: code,
		Log:  log,
	}
}

// QueryError converts an error into an abci Query response.
func QueryError(err error, debug bool) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseQuery{
		Code: code,
		Log:  log,
	}
}
