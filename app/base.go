package app

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp adds DeliverTx and CheckTx handlers to the storage and query
// functionality of StoreApp.
type BaseApp struct {
	*StoreApp
	decoder custody.TxDecoder
	handler custody.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp constructs a basic abci application
func NewBaseApp(store *StoreApp, decoder custody.TxDecoder, handler custody.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx - ABCI - dispatches to the handler
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return custody.DeliverTxError(err, b.debug)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	ctx := custody.WithLogInfo(b.BlockContext(),
		"call", "deliver_tx",
		"path", custody.GetPath(tx))

	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return custody.DeliverOrError(res, err, b.debug)
}

// CheckTx - ABCI - dispatches to the handler
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.loadTx(txBytes)
	if err != nil {
		return custody.CheckTxError(err, b.debug)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	ctx := custody.WithLogInfo(b.BlockContext(),
		"call", "check_tx",
		"path", custody.GetPath(tx))

	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return custody.CheckOrError(res, err, b.debug)
}

// loadTx calls the decoder, and capture any panics
func (b BaseApp) loadTx(txBytes []byte) (tx custody.Tx, err error) {
	defer errors.Recover(&err)
	tx, err = b.decoder(txBytes)
	return
}
