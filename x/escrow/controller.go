package escrow

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/token"
)

// controller owns the offers and their vaults. A vault is a token holding
// owned by the offer authority, so only the controller can move its
// balance.
type controller struct {
	bucket Bucket
	tokens token.Controller
	cash   cash.Controller
}

func newController(tokens token.Controller, cashctrl cash.Controller) controller {
	return controller{
		bucket: NewBucket(),
		tokens: tokens,
		cash:   cashctrl,
	}
}

// open stores the offer and its vault, and moves the deposit from the
// maker's holding into the vault. The maker pays both storage reserves.
func (c controller) open(ctx custody.Context, auth x.Authenticator, db custody.KVStore, msg *CreateOfferMsg) (custody.Address, error) {
	offerAddr, offerBump, err := OfferAddress(msg.Maker, msg.Nonce)
	if err != nil {
		return nil, err
	}
	authority, authorityBump, err := AuthorityAddress(offerAddr)
	if err != nil {
		return nil, err
	}
	vault, err := VaultAddress(offerAddr)
	if err != nil {
		return nil, err
	}

	reserve, err := c.cash.MinimumBalance(db, OfferSize)
	if err != nil {
		return nil, err
	}
	if err := c.cash.Transfer(db, msg.Maker, offerAddr, reserve); err != nil {
		return nil, errors.Wrap(err, "offer reserve")
	}
	offer := &Offer{
		Maker:           msg.Maker,
		MintA:           msg.MintA,
		MintB:           msg.MintB,
		Nonce:           msg.Nonce,
		RequestedAmount: msg.Receive,
		AuthorityBump:   authorityBump,
		OfferBump:       offerBump,
	}
	if err := c.bucket.Save(db, orm.NewSimpleObj(offerAddr, offer)); err != nil {
		return nil, errors.Wrap(err, "cannot store offer")
	}

	if err := c.tokens.CreateHolding(db, msg.Maker, vault, authority, msg.MintA); err != nil {
		return nil, errors.Wrap(err, "vault")
	}
	source, err := token.AssociatedHolding(msg.Maker, msg.MintA)
	if err != nil {
		return nil, err
	}
	if err := c.tokens.Transfer(ctx, auth, db, source, vault, msg.Deposit); err != nil {
		return nil, errors.Wrap(err, "deposit")
	}
	return offerAddr, nil
}

// release moves the whole vault balance to the destination holding, acting
// as the offer authority. Then it closes the vault and the offer, sending
// both storage reserves to the maker.
func (c controller) release(ctx custody.Context, db custody.KVStore, offerAddr custody.Address, offer *Offer, destination custody.Address) error {
	authority, err := offer.Authority(offerAddr)
	if err != nil {
		return err
	}
	vault, err := VaultAddress(offerAddr)
	if err != nil {
		return err
	}
	held, err := c.tokens.Holding(db, vault)
	if err != nil {
		return errors.Wrap(err, "vault")
	}

	ctx = withAuthority(ctx, authority)
	if held.Amount > 0 {
		if err := c.tokens.Transfer(ctx, Authenticate{}, db, vault, destination, held.Amount); err != nil {
			return errors.Wrap(err, "release vault")
		}
	}
	if err := c.tokens.CloseHolding(ctx, Authenticate{}, db, vault, offer.Maker); err != nil {
		return errors.Wrap(err, "close vault")
	}

	if err := c.bucket.Delete(db, offerAddr); err != nil {
		return errors.Wrap(err, "cannot delete offer")
	}
	if _, err := c.cash.CloseAccount(db, offerAddr, offer.Maker); err != nil {
		return errors.Wrap(err, "offer reserve")
	}
	return nil
}
