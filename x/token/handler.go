package token

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r custody.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(pathTransferMsg, TransferHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathCreateHoldingMsg, CreateHoldingHandler{auth: auth, ctrl: ctrl})
}

// RegisterQuery will register the buckets as "/mints" and "/holdings".
func RegisterQuery(qr custody.QueryRouter) {
	NewMintBucket().Register("mints", qr)
	NewHoldingBucket().Register("holdings", qr)
}

// TransferHandler moves assets between holdings.
type TransferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ custody.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	var msg TransferMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	holding, err := h.ctrl.Holding(db, msg.Source)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, holding.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "holding owner")
	}
	return &custody.CheckResult{}, nil
}

func (h TransferHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	var msg TransferMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ctrl.Transfer(ctx, h.auth, db, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{}, nil
}

// CreateHoldingHandler creates associated holdings.
type CreateHoldingHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ custody.Handler = CreateHoldingHandler{}

func (h CreateHoldingHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

// Deliver returns the address of the holding as the result data.
func (h CreateHoldingHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	addr, err := h.ctrl.EnsureAssociatedHolding(db, msg.Payer, msg.Owner, msg.Mint)
	if err != nil {
		return nil, err
	}
	return &custody.DeliverResult{Data: addr}, nil
}

func (h CreateHoldingHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*CreateHoldingMsg, error) {
	var msg CreateHoldingMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Payer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "payer signature missing")
	}
	if _, err := h.ctrl.Mint(db, msg.Mint); err != nil {
		return nil, err
	}
	return &msg, nil
}
