/*
Package app links together all the various components
to construct the qfund application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/app"
	"github.com/iov-one/solquad/errors"
	"github.com/iov-one/solquad/store/iavl"
	"github.com/iov-one/solquad/x"
	"github.com/iov-one/solquad/x/batch"
	"github.com/iov-one/solquad/x/quadfund"
	"github.com/iov-one/solquad/x/sigs"
	abci "github.com/tendermint/tendermint/abci/types"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is returned by the abci Info call.
const Name = "qfund"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle recovery,
// authentication and batching.
func Chain() app.Decorators {
	return app.ChainDecorators(
		app.NewRecovery(),
		sigs.NewDecorator(),
		batch.NewDecorator(),
	)
}

// Router returns a router dispatching all quadfund messages.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	quadfund.RegisterRoutes(r, authFn)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/escrows", "/pools", "/projects" and "/auth"
func QueryRouter() weave.QueryRouter {
	r := weave.NewQueryRouter()
	r.RegisterAll(
		quadfund.RegisterQuery,
		sigs.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() weave.Handler {
	return Chain().WithHandler(Router(Authenticator()))
}

// Initializers returns all genesis initializers of the application.
func Initializers() weave.Initializer {
	return app.ChainInitializers(
		&quadfund.Initializer{},
	)
}

// Application constructs a basic ABCI application on top of given store.
func Application(kv weave.CommitKVStore, logger log.Logger, debug bool) app.BaseApp {
	store := app.NewStoreApp(Name, kv, QueryRouter(), context.Background()).
		WithInit(Initializers()).
		WithVersion(Version()).
		WithLogger(logger)
	return app.NewBaseApp(store, app.DecodeTx, Stack(), debug)
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path. An empty path results in a memory backed
// store.
func CommitKVStore(dbPath string) (weave.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewCommitStoreFromDB(dbm.NewMemDB()), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name)
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "qfund.db")
	}

	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	return Application(kv, logger, debug), nil
}
