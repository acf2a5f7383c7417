/*
Package custodyd links together all the various components
to construct the custodyd application.
*/
package custodyd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store/iavl"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/escrow"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/token"
	"github.com/iov-one/custody/x/utils"
	"github.com/iov-one/custody/x/vault"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is returned by the abci Info call.
const Name = "custodyd"

// Authenticator returns the authentication of user transactions: public
// key signatures only. Program authorities never come from a transaction.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		utils.NewActionTagger(),
		// on DeliverTx, a failed message is rolled back as a whole, the
		// signer sequence is still incremented
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to all extensions.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	cashctrl := cash.NewController(cash.NewBucket())
	tokens := token.NewController(cashctrl)
	cash.RegisterRoutes(r, authFn, cashctrl)
	token.RegisterRoutes(r, authFn, tokens)
	escrow.RegisterRoutes(r, authFn, tokens, cashctrl)
	vault.RegisterRoutes(r, authFn, cashctrl)
	return r
}

// QueryRouter returns a default query router, allowing access to "/wallets",
// "/auth", "/mints", "/holdings", "/offers" and "/vaults".
func QueryRouter() custody.QueryRouter {
	r := custody.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		token.RegisterQuery,
		escrow.RegisterQuery,
		vault.RegisterQuery,
	)
	return r
}

// Initializers returns the genesis initializers, in the order they must run.
func Initializers() custody.Initializer {
	return custody.ChainInitializers(
		cash.Initializer{},
		token.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() custody.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Application constructs a basic ABCI application with
// the given arguments.
func Application(name string, h custody.Handler, tx custody.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx)
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path. An empty path keeps the data in memory.
func CommitKVStore(dbPath string) (custody.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}
	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	store, err := iavl.NewCommitStore(dir, name)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// GenerateApp creates the application stored in the home directory.
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "custody.db")
	}

	application, err := Application(Name, Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializers())
	application.WithLogger(logger)
	return application, nil
}
