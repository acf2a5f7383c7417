package vault

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x/cash"
)

// custodian is the only mutator of the custody accounts. Callers reach it
// through the four vault operations and never get hold of the account.
type custodian struct {
	bucket Bucket
	cash   cash.Controller
}

func newCustodian(cashctrl cash.Controller) custodian {
	return custodian{bucket: NewBucket(), cash: cashctrl}
}

// vaultOf loads the state of the user's vault and re-creates its custody
// account from the stored bump.
func (c custodian) vaultOf(db custody.ReadOnlyKVStore, user custody.Address) (custody.Address, *State, custody.Address, error) {
	stateAddr, _, err := StateAddress(user)
	if err != nil {
		return nil, nil, nil, err
	}
	obj, err := c.bucket.Get(db, stateAddr)
	if err != nil {
		return nil, nil, nil, err
	}
	if obj == nil {
		return nil, nil, nil, errors.Wrapf(errors.ErrNotFound, "vault of %s", user)
	}
	state := AsState(obj)
	account, err := state.CustodyAccount(stateAddr)
	if err != nil {
		return nil, nil, nil, err
	}
	return stateAddr, state, account, nil
}

// initializeCost returns the lamports a user pays to open a vault: the
// reserve of the state and the funding of the empty custody account.
func (c custodian) initializeCost(db custody.ReadOnlyKVStore) (stateReserve, accountReserve uint64, err error) {
	stateReserve, err = c.cash.MinimumBalance(db, StateSize)
	if err != nil {
		return 0, 0, err
	}
	accountReserve, err = c.cash.MinimumBalance(db, 0)
	if err != nil {
		return 0, 0, err
	}
	return stateReserve, accountReserve, nil
}

func (c custodian) initialize(db custody.KVStore, user custody.Address) (custody.Address, error) {
	stateAddr, stateBump, err := StateAddress(user)
	if err != nil {
		return nil, err
	}
	account, authorityBump, err := CustodyAddress(stateAddr)
	if err != nil {
		return nil, err
	}
	stateReserve, accountReserve, err := c.initializeCost(db)
	if err != nil {
		return nil, err
	}

	if err := c.cash.Transfer(db, user, stateAddr, stateReserve); err != nil {
		return nil, errors.Wrap(err, "state reserve")
	}
	state := &State{AuthorityBump: authorityBump, StateBump: stateBump}
	if err := c.bucket.Save(db, orm.NewSimpleObj(stateAddr, state)); err != nil {
		return nil, err
	}
	if err := c.cash.Transfer(db, user, account, accountReserve); err != nil {
		return nil, errors.Wrap(err, "custody account")
	}
	return stateAddr, nil
}

func (c custodian) deposit(db custody.KVStore, user custody.Address, amount uint64) error {
	_, _, account, err := c.vaultOf(db, user)
	if err != nil {
		return err
	}
	return c.cash.Transfer(db, user, account, amount)
}

func (c custodian) withdraw(db custody.KVStore, user custody.Address, amount uint64) error {
	_, _, account, err := c.vaultOf(db, user)
	if err != nil {
		return err
	}
	return c.cash.Transfer(db, account, user, amount)
}

// close moves the whole custody balance to the user and removes the state,
// returning its reserve to the user. It returns the amount withdrawn.
func (c custodian) close(db custody.KVStore, user custody.Address) (uint64, error) {
	stateAddr, _, account, err := c.vaultOf(db, user)
	if err != nil {
		return 0, err
	}
	balance, err := c.cash.Balance(db, account)
	if err != nil {
		return 0, err
	}
	if balance == 0 {
		return 0, errors.Wrap(ErrInsufficientVaultBalance, "empty vault")
	}
	if _, err := c.cash.CloseAccount(db, account, user); err != nil {
		return 0, err
	}
	if err := c.bucket.Delete(db, stateAddr); err != nil {
		return 0, err
	}
	if _, err := c.cash.CloseAccount(db, stateAddr, user); err != nil {
		return 0, err
	}
	return balance, nil
}
