package escrow

import (
	"encoding/hex"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/token"
	"github.com/iov-one/custody/x/utils"
	"github.com/tendermint/tendermint/libs/common"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r custody.Registry, auth x.Authenticator, tokens token.Controller, cashctrl cash.Controller) {
	ctrl := newController(tokens, cashctrl)
	r.Handle(pathCreateOfferMsg, CreateOfferHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathFulfillOfferMsg, FulfillOfferHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathCancelOfferMsg, CancelOfferHandler{auth: auth, ctrl: ctrl})
}

// RegisterQuery will register this bucket as "/offers".
func RegisterQuery(qr custody.QueryRouter) {
	NewBucket().Register("offers", qr)
}

func offerTags(offerAddr custody.Address) []common.KVPair {
	return []common.KVPair{
		{Key: []byte("offer"), Value: []byte(hex.EncodeToString(offerAddr))},
	}
}

// CreateOfferHandler opens new offers.
type CreateOfferHandler struct {
	auth x.Authenticator
	ctrl controller
}

var _ custody.Handler = CreateOfferHandler{}

// Check verifies the message, the maker signature and the maker balance.
func (h CreateOfferHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

// Deliver stores the offer and funds its vault. The offer address is
// returned as the result data.
func (h CreateOfferHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	var offerAddr custody.Address
	err = utils.Atomic(db, func(db custody.KVStore) error {
		addr, err := h.ctrl.open(ctx, h.auth, db, msg)
		offerAddr = addr
		return err
	})
	if err != nil {
		return nil, err
	}
	return &custody.DeliverResult{Data: offerAddr, Tags: offerTags(offerAddr)}, nil
}

func (h CreateOfferHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*CreateOfferMsg, error) {
	var msg CreateOfferMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Maker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}
	if _, err := h.ctrl.tokens.Mint(db, msg.MintA); err != nil {
		return nil, errors.Wrap(err, "mint A")
	}
	if _, err := h.ctrl.tokens.Mint(db, msg.MintB); err != nil {
		return nil, errors.Wrap(err, "mint B")
	}

	offerAddr, _, err := OfferAddress(msg.Maker, msg.Nonce)
	if err != nil {
		return nil, err
	}
	switch has, err := h.ctrl.bucket.Has(db, offerAddr); {
	case err != nil:
		return nil, err
	case has:
		return nil, errors.Wrapf(errors.ErrDuplicate, "offer with nonce %d", msg.Nonce)
	}

	if err := requireBalance(db, h.ctrl.tokens, msg.Maker, msg.MintA, msg.Deposit); err != nil {
		return nil, errors.Wrap(err, "maker")
	}
	return &msg, nil
}

// FulfillOfferHandler settles offers.
type FulfillOfferHandler struct {
	auth x.Authenticator
	ctrl controller
}

var _ custody.Handler = FulfillOfferHandler{}

func (h FulfillOfferHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

// Deliver pays the maker first and only then releases the vault to the
// taker. Missing holdings of the maker for asset B and of the taker for
// asset A are created at the taker's expense.
func (h FulfillOfferHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, offer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	err = utils.Atomic(db, func(db custody.KVStore) error {
		return h.settle(ctx, db, msg, offer)
	})
	if err != nil {
		return nil, err
	}
	return &custody.DeliverResult{Tags: offerTags(msg.Offer)}, nil
}

func (h FulfillOfferHandler) settle(ctx custody.Context, db custody.KVStore, msg *FulfillOfferMsg, offer *Offer) error {
	makerB, err := h.ctrl.tokens.EnsureAssociatedHolding(db, msg.Taker, offer.Maker, offer.MintB)
	if err != nil {
		return errors.Wrap(err, "maker holding")
	}
	takerB, err := token.AssociatedHolding(msg.Taker, offer.MintB)
	if err != nil {
		return err
	}
	if err := h.ctrl.tokens.Transfer(ctx, h.auth, db, takerB, makerB, offer.RequestedAmount); err != nil {
		return errors.Wrap(err, "payment")
	}

	takerA, err := h.ctrl.tokens.EnsureAssociatedHolding(db, msg.Taker, msg.Taker, offer.MintA)
	if err != nil {
		return errors.Wrap(err, "taker holding")
	}
	return h.ctrl.release(ctx, db, msg.Offer, offer, takerA)
}

func (h FulfillOfferHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*FulfillOfferMsg, *Offer, error) {
	var msg FulfillOfferMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Taker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "taker signature missing")
	}
	offer, err := h.ctrl.bucket.GetOffer(db, msg.Offer)
	if err != nil {
		return nil, nil, err
	}
	if err := requireBalance(db, h.ctrl.tokens, msg.Taker, offer.MintB, offer.RequestedAmount); err != nil {
		return nil, nil, errors.Wrap(err, "taker")
	}
	if err := h.requireReserves(db, msg.Taker, offer); err != nil {
		return nil, nil, errors.Wrap(err, "taker reserves")
	}
	return &msg, offer, nil
}

// requireReserves checks that the taker can pay the reserves of the
// holdings that settling the offer creates.
func (h FulfillOfferHandler) requireReserves(db custody.ReadOnlyKVStore, taker custody.Address, offer *Offer) error {
	var missing uint64
	for _, want := range [][2]custody.Address{
		{offer.Maker, offer.MintB},
		{taker, offer.MintA},
	} {
		addr, err := token.AssociatedHolding(want[0], want[1])
		if err != nil {
			return err
		}
		switch _, err := h.ctrl.tokens.Holding(db, addr); {
		case errors.ErrNotFound.Is(err):
			missing++
		case err != nil:
			return err
		}
	}
	if missing == 0 {
		return nil
	}
	reserve, err := h.ctrl.cash.MinimumBalance(db, token.HoldingSize)
	if err != nil {
		return err
	}
	return h.ctrl.cash.CanSpend(db, taker, missing*reserve)
}

// CancelOfferHandler returns the vault of an offer to its maker.
type CancelOfferHandler struct {
	auth x.Authenticator
	ctrl controller
}

var _ custody.Handler = CancelOfferHandler{}

func (h CancelOfferHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

// Deliver moves the vault balance back to the maker's holding, which is
// created again if the maker closed it in the meantime.
func (h CancelOfferHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, offer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	err = utils.Atomic(db, func(db custody.KVStore) error {
		makerA, err := h.ctrl.tokens.EnsureAssociatedHolding(db, offer.Maker, offer.Maker, offer.MintA)
		if err != nil {
			return errors.Wrap(err, "maker holding")
		}
		return h.ctrl.release(ctx, db, msg.Offer, offer, makerA)
	})
	if err != nil {
		return nil, err
	}
	return &custody.DeliverResult{Tags: offerTags(msg.Offer)}, nil
}

func (h CancelOfferHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*CancelOfferMsg, *Offer, error) {
	var msg CancelOfferMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	offer, err := h.ctrl.bucket.GetOffer(db, msg.Offer)
	if err != nil {
		return nil, nil, err
	}
	if !offer.Maker.Equals(msg.Maker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "not the maker")
	}
	if !h.auth.HasAddress(ctx, offer.Maker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}
	return &msg, offer, nil
}

// requireBalance fails with ErrInsufficientAmount unless the associated
// holding of owner for mint holds at least amount.
func requireBalance(db custody.ReadOnlyKVStore, tokens token.Controller, owner, mint custody.Address, amount uint64) error {
	addr, err := token.AssociatedHolding(owner, mint)
	if err != nil {
		return err
	}
	holding, err := tokens.Holding(db, addr)
	switch {
	case errors.ErrNotFound.Is(err):
		return errors.Wrap(errors.ErrInsufficientAmount, "no holding")
	case err != nil:
		return err
	case holding.Amount < amount:
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, required %d", holding.Amount, amount)
	}
	return nil
}
