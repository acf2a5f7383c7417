package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r custody.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathSendMsg, NewSendHandler(auth, control))
}

// RegisterQuery will register this bucket as "/wallets".
func RegisterQuery(qr custody.QueryRouter) {
	NewBucket().Register("wallets", qr)
}

// SendHandler will handle sending lamports.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ custody.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg.
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and authorized.
func (h SendHandler) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

// Deliver moves the lamports from source to destination if all
// preconditions are met.
func (h SendHandler) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(store, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx custody.Context, tx custody.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source signature missing")
	}
	return &msg, nil
}
