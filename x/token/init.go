package token

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x/cash"
)

// GenesisMint is used to parse the mints from the genesis file.
type GenesisMint struct {
	Address   custody.Address `json:"address"`
	Authority custody.Address `json:"authority"`
	Decimals  uint8           `json:"decimals"`
}

// GenesisHolding is used to parse the holdings from the genesis file. The
// holding is stored at the associated address of the owner.
type GenesisHolding struct {
	Owner  custody.Address `json:"owner"`
	Mint   custody.Address `json:"mint"`
	Amount uint64          `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file. It must run after the cash initializer, as the storage
// reserves depend on its configuration.
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis stores the mints and holdings. Storage reserves are issued
// to the new records.
func (Initializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	cashctrl := cash.NewController(cash.NewBucket())
	ctrl := NewController(cashctrl)

	var mints []GenesisMint
	if err := opts.ReadOptions("mints", &mints); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	mintReserve, err := cashctrl.MinimumBalance(db, MintSize)
	if err != nil {
		return err
	}
	bucket := NewMintBucket()
	for i, m := range mints {
		if err := m.Address.Validate(); err != nil {
			return errors.Wrapf(err, "mint #%d", i)
		}
		obj := orm.NewSimpleObj(m.Address, &Mint{Authority: m.Authority, Decimals: m.Decimals})
		if err := bucket.Save(db, obj); err != nil {
			return errors.Wrapf(err, "mint #%d", i)
		}
		if err := cashctrl.Issue(db, m.Address, mintReserve); err != nil {
			return err
		}
	}

	var holdings []GenesisHolding
	if err := opts.ReadOptions("holdings", &holdings); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	holdingReserve, err := cashctrl.MinimumBalance(db, HoldingSize)
	if err != nil {
		return err
	}
	for i, h := range holdings {
		if err := h.Owner.Validate(); err != nil {
			return errors.Wrapf(err, "holding #%d owner", i)
		}
		addr, err := AssociatedHolding(h.Owner, h.Mint)
		if err != nil {
			return errors.Wrapf(err, "holding #%d", i)
		}
		// The holding pays its own reserve, issued just before.
		if err := cashctrl.Issue(db, addr, holdingReserve); err != nil {
			return err
		}
		if err := ctrl.CreateHolding(db, addr, addr, h.Owner, h.Mint); err != nil {
			return errors.Wrapf(err, "holding #%d", i)
		}
		if h.Amount > 0 {
			if err := ctrl.Issue(db, addr, h.Amount); err != nil {
				return errors.Wrapf(err, "holding #%d", i)
			}
		}
	}
	return nil
}
