package vault

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/cash"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r custody.Registry, auth x.Authenticator, cashctrl cash.Controller) {
	c := newCustodian(cashctrl)
	r.Handle(pathInitializeMsg, InitializeHandler{auth: auth, custodian: c})
	r.Handle(pathDepositMsg, DepositHandler{auth: auth, custodian: c})
	r.Handle(pathWithdrawMsg, WithdrawHandler{auth: auth, custodian: c})
	r.Handle(pathCloseMsg, CloseHandler{auth: auth, custodian: c})
}

// RegisterQuery will register this bucket as "/vaults".
func RegisterQuery(qr custody.QueryRouter) {
	NewBucket().Register("vaults", qr)
}

// loadUserMsg loads the message and requires the signature of its user.
func loadUserMsg(ctx custody.Context, auth x.Authenticator, tx custody.Tx, msg interface{}, user func() custody.Address) error {
	if err := custody.LoadMsg(tx, msg); err != nil {
		return errors.Wrap(err, "load msg")
	}
	if !auth.HasAddress(ctx, user()) {
		return errors.Wrap(errors.ErrUnauthorized, "user signature missing")
	}
	return nil
}

// InitializeHandler opens vaults.
type InitializeHandler struct {
	auth      x.Authenticator
	custodian custodian
}

var _ custody.Handler = InitializeHandler{}

func (h InitializeHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

// Deliver returns the address of the vault state as the result data.
func (h InitializeHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	stateAddr, err := h.custodian.initialize(db, msg.User)
	if err != nil {
		return nil, err
	}
	return &custody.DeliverResult{Data: stateAddr}, nil
}

func (h InitializeHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*InitializeMsg, error) {
	var msg InitializeMsg
	if err := loadUserMsg(ctx, h.auth, tx, &msg, func() custody.Address { return msg.User }); err != nil {
		return nil, err
	}
	stateAddr, _, err := StateAddress(msg.User)
	if err != nil {
		return nil, err
	}
	switch has, err := h.custodian.bucket.Has(db, stateAddr); {
	case err != nil:
		return nil, err
	case has:
		return nil, errors.Wrap(errors.ErrDuplicate, "vault already initialized")
	}

	stateReserve, accountReserve, err := h.custodian.initializeCost(db)
	if err != nil {
		return nil, err
	}
	// The user wallet must afford both reserves and stay rent exempt, or
	// be emptied by them.
	switch err := h.custodian.cash.CanSpend(db, msg.User, stateReserve+accountReserve); {
	case errors.ErrInsufficientAmount.Is(err):
		return nil, errors.Wrapf(ErrInsufficientUserBalance, "required %d: %s", stateReserve+accountReserve, err)
	case err != nil:
		return nil, err
	}
	return &msg, nil
}

// DepositHandler moves lamports into a vault.
type DepositHandler struct {
	auth      x.Authenticator
	custodian custodian
}

var _ custody.Handler = DepositHandler{}

func (h DepositHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	var msg DepositMsg
	if err := loadUserMsg(ctx, h.auth, tx, &msg, func() custody.Address { return msg.User }); err != nil {
		return nil, err
	}
	if _, _, _, err := h.custodian.vaultOf(db, msg.User); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

func (h DepositHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	var msg DepositMsg
	if err := loadUserMsg(ctx, h.auth, tx, &msg, func() custody.Address { return msg.User }); err != nil {
		return nil, err
	}
	if err := h.custodian.deposit(db, msg.User, msg.Amount); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{}, nil
}

// WithdrawHandler moves lamports out of a vault, back to its user.
type WithdrawHandler struct {
	auth      x.Authenticator
	custodian custodian
}

var _ custody.Handler = WithdrawHandler{}

func (h WithdrawHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	var msg WithdrawMsg
	if err := loadUserMsg(ctx, h.auth, tx, &msg, func() custody.Address { return msg.User }); err != nil {
		return nil, err
	}
	if _, _, _, err := h.custodian.vaultOf(db, msg.User); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

func (h WithdrawHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	var msg WithdrawMsg
	if err := loadUserMsg(ctx, h.auth, tx, &msg, func() custody.Address { return msg.User }); err != nil {
		return nil, err
	}
	if err := h.custodian.withdraw(db, msg.User, msg.Amount); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{}, nil
}

// CloseHandler empties and removes a vault.
type CloseHandler struct {
	auth      x.Authenticator
	custodian custodian
}

var _ custody.Handler = CloseHandler{}

func (h CloseHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	var msg CloseMsg
	if err := loadUserMsg(ctx, h.auth, tx, &msg, func() custody.Address { return msg.User }); err != nil {
		return nil, err
	}
	if _, _, _, err := h.custodian.vaultOf(db, msg.User); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

func (h CloseHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	var msg CloseMsg
	if err := loadUserMsg(ctx, h.auth, tx, &msg, func() custody.Address { return msg.User }); err != nil {
		return nil, err
	}
	if _, err := h.custodian.close(db, msg.User); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{}, nil
}
