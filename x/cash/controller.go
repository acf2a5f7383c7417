package cash

import (
	"math"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// Controller is the interface other extensions use to move lamports. It
// is the only way to modify a wallet.
type Controller interface {
	// Balance returns the lamports held by the address. A missing wallet
	// holds nothing.
	Balance(db custody.ReadOnlyKVStore, addr custody.Address) (uint64, error)

	// Transfer moves amount lamports from src to dst. The source must
	// keep either nothing or at least the reserve of an empty account.
	Transfer(db custody.KVStore, src, dst custody.Address, amount uint64) error

	// CanSpend returns the error Transfer would fail with when src pays
	// amount in total, without changing any state.
	CanSpend(db custody.ReadOnlyKVStore, src custody.Address, amount uint64) error

	// Issue credits the address with newly created lamports.
	Issue(db custody.KVStore, dst custody.Address, amount uint64) error

	// CloseAccount moves all lamports of addr to recipient and deletes the
	// wallet. It returns the amount moved.
	CloseAccount(db custody.KVStore, addr, recipient custody.Address) (uint64, error)

	// MinimumBalance returns the reserve required to store size bytes.
	MinimumBalance(db custody.ReadOnlyKVStore, size int) (uint64, error)
}

// BaseController is the default Controller implementation backed by a
// wallet Bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on the given bucket.
func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

func (c BaseController) Balance(db custody.ReadOnlyKVStore, addr custody.Address) (uint64, error) {
	obj, err := c.bucket.Get(db, addr)
	if err != nil || obj == nil {
		return 0, err
	}
	return AsWallet(obj).Lamports, nil
}

func (c BaseController) MinimumBalance(db custody.ReadOnlyKVStore, size int) (uint64, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return 0, err
	}
	return conf.MinimumBalance(size), nil
}

func (c BaseController) Transfer(db custody.KVStore, src, dst custody.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive transfer")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dst.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	if err := c.CanSpend(db, src, amount); err != nil {
		return err
	}
	if src.Equals(dst) {
		return nil
	}
	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return err
	}
	if err := c.debit(db, sender, amount); err != nil {
		return err
	}
	return c.Issue(db, dst, amount)
}

func (c BaseController) CanSpend(db custody.ReadOnlyKVStore, src custody.Address, amount uint64) error {
	balance, err := c.Balance(db, src)
	if err != nil {
		return err
	}
	if balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, required %d", balance, amount)
	}
	remaining := balance - amount
	if remaining == 0 {
		return nil
	}
	reserve, err := c.MinimumBalance(db, 0)
	if err != nil {
		return err
	}
	if remaining < reserve {
		return errors.Wrapf(errors.ErrInsufficientAmount,
			"remaining balance %d below reserve %d", remaining, reserve)
	}
	return nil
}

func (c BaseController) Issue(db custody.KVStore, dst custody.Address, amount uint64) error {
	recipient, err := c.bucket.GetOrCreate(db, dst)
	if err != nil {
		return err
	}
	wallet := AsWallet(recipient)
	if wallet.Lamports > math.MaxUint64-amount {
		return errors.Wrapf(errors.ErrOverflow, "wallet %s", dst)
	}
	wallet.Lamports += amount
	return c.bucket.Save(db, recipient)
}

func (c BaseController) CloseAccount(db custody.KVStore, addr, recipient custody.Address) (uint64, error) {
	obj, err := c.bucket.Get(db, addr)
	if err != nil {
		return 0, err
	}
	if obj == nil {
		return 0, nil
	}
	amount := AsWallet(obj).Lamports
	if addr.Equals(recipient) {
		return amount, nil
	}
	if err := c.bucket.Delete(db, addr); err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, nil
	}
	if err := c.Issue(db, recipient, amount); err != nil {
		return 0, err
	}
	return amount, nil
}

// debit removes lamports from a wallet already checked for the balance. A
// wallet left empty is removed.
func (c BaseController) debit(db custody.KVStore, obj orm.Object, amount uint64) error {
	wallet := AsWallet(obj)
	wallet.Lamports -= amount
	if wallet.Lamports == 0 {
		return c.bucket.Delete(db, obj.Key())
	}
	return c.bucket.Save(db, obj)
}
