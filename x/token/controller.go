package token

import (
	"math"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x"
	"github.com/iov-one/custody/x/cash"
)

// Controller is the only way to modify mints and holdings.
type Controller interface {
	// Mint returns the mint stored under addr or ErrNotFound.
	Mint(db custody.ReadOnlyKVStore, addr custody.Address) (*Mint, error)

	// Holding returns the holding stored under addr or ErrNotFound.
	Holding(db custody.ReadOnlyKVStore, addr custody.Address) (*Holding, error)

	// CreateHolding stores an empty holding at addr. The payer funds its
	// storage reserve.
	CreateHolding(db custody.KVStore, payer, addr, owner, mint custody.Address) error

	// EnsureAssociatedHolding returns the associated holding of owner for
	// mint, creating it at the payer's expense if it does not exist.
	EnsureAssociatedHolding(db custody.KVStore, payer, owner, mint custody.Address) (custody.Address, error)

	// Transfer moves amount between two holdings of the same mint. The
	// owner of the source holding must be authenticated.
	Transfer(ctx custody.Context, auth x.Authenticator, db custody.KVStore, src, dst custody.Address, amount uint64) error

	// CloseHolding deletes an empty holding and moves its storage reserve
	// to the recipient. The owner must be authenticated.
	CloseHolding(ctx custody.Context, auth x.Authenticator, db custody.KVStore, addr, recipient custody.Address) error

	// Issue creates amount new units of the holding's mint.
	Issue(db custody.KVStore, holding custody.Address, amount uint64) error
}

// BaseController is the default Controller implementation.
type BaseController struct {
	mints    MintBucket
	holdings HoldingBucket
	cash     cash.Controller
}

var _ Controller = BaseController{}

// NewController returns a controller paying the storage reserves through
// the given cash controller.
func NewController(cashctrl cash.Controller) BaseController {
	return BaseController{
		mints:    NewMintBucket(),
		holdings: NewHoldingBucket(),
		cash:     cashctrl,
	}
}

func (c BaseController) Mint(db custody.ReadOnlyKVStore, addr custody.Address) (*Mint, error) {
	obj, err := c.mints.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "mint %s", addr)
	}
	return AsMint(obj), nil
}

func (c BaseController) Holding(db custody.ReadOnlyKVStore, addr custody.Address) (*Holding, error) {
	obj, err := c.holdings.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "holding %s", addr)
	}
	return AsHolding(obj), nil
}

func (c BaseController) CreateHolding(db custody.KVStore, payer, addr, owner, mint custody.Address) error {
	if _, err := c.Mint(db, mint); err != nil {
		return err
	}
	switch has, err := c.holdings.Has(db, addr); {
	case err != nil:
		return err
	case has:
		return errors.Wrapf(errors.ErrDuplicate, "holding %s", addr)
	}

	reserve, err := c.cash.MinimumBalance(db, HoldingSize)
	if err != nil {
		return err
	}
	if err := c.cash.Transfer(db, payer, addr, reserve); err != nil {
		return errors.Wrap(err, "holding reserve")
	}
	holding := &Holding{Owner: owner, Mint: mint}
	return c.holdings.Save(db, orm.NewSimpleObj(addr, holding))
}

func (c BaseController) EnsureAssociatedHolding(db custody.KVStore, payer, owner, mint custody.Address) (custody.Address, error) {
	addr, err := AssociatedHolding(owner, mint)
	if err != nil {
		return nil, err
	}
	switch has, err := c.holdings.Has(db, addr); {
	case err != nil:
		return nil, err
	case has:
		return addr, nil
	}
	if err := c.CreateHolding(db, payer, addr, owner, mint); err != nil {
		return nil, err
	}
	return addr, nil
}

func (c BaseController) Transfer(ctx custody.Context, auth x.Authenticator, db custody.KVStore, src, dst custody.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive transfer")
	}
	srcObj, err := c.holdings.Get(db, src)
	if err != nil {
		return err
	}
	if srcObj == nil {
		return errors.Wrapf(errors.ErrNotFound, "source holding %s", src)
	}
	from := AsHolding(srcObj)
	if !auth.HasAddress(ctx, from.Owner) {
		return errors.Wrap(errors.ErrUnauthorized, "holding owner")
	}

	dstObj, err := c.holdings.Get(db, dst)
	if err != nil {
		return err
	}
	if dstObj == nil {
		return errors.Wrapf(errors.ErrNotFound, "destination holding %s", dst)
	}
	to := AsHolding(dstObj)
	if !from.Mint.Equals(to.Mint) {
		return errors.Wrap(errors.ErrInput, "mint mismatch")
	}
	if from.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, transfer %d", from.Amount, amount)
	}
	if src.Equals(dst) {
		return nil
	}
	if to.Amount > math.MaxUint64-amount {
		return errors.Wrapf(errors.ErrOverflow, "holding %s", dst)
	}

	from.Amount -= amount
	to.Amount += amount
	if err := c.holdings.Save(db, srcObj); err != nil {
		return err
	}
	return c.holdings.Save(db, dstObj)
}

func (c BaseController) CloseHolding(ctx custody.Context, auth x.Authenticator, db custody.KVStore, addr, recipient custody.Address) error {
	holding, err := c.Holding(db, addr)
	if err != nil {
		return err
	}
	if !auth.HasAddress(ctx, holding.Owner) {
		return errors.Wrap(errors.ErrUnauthorized, "holding owner")
	}
	if holding.Amount != 0 {
		return errors.Wrapf(errors.ErrState, "holding %s not empty", addr)
	}
	if err := c.holdings.Delete(db, addr); err != nil {
		return err
	}
	_, err = c.cash.CloseAccount(db, addr, recipient)
	return err
}

func (c BaseController) Issue(db custody.KVStore, holding custody.Address, amount uint64) error {
	obj, err := c.holdings.Get(db, holding)
	if err != nil {
		return err
	}
	if obj == nil {
		return errors.Wrapf(errors.ErrNotFound, "holding %s", holding)
	}
	h := AsHolding(obj)
	mintObj, err := c.mints.Get(db, h.Mint)
	if err != nil {
		return err
	}
	if mintObj == nil {
		return errors.Wrapf(errors.ErrNotFound, "mint %s", h.Mint)
	}
	mint := AsMint(mintObj)
	if mint.Supply > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "supply")
	}
	mint.Supply += amount
	h.Amount += amount
	if err := c.mints.Save(db, mintObj); err != nil {
		return err
	}
	return c.holdings.Save(db, obj)
}
