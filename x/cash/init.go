package cash

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

const optKey = "wallets"

// GenesisAccount is used to parse the json from genesis file.
type GenesisAccount struct {
	Address  custody.Address `json:"address"`
	Lamports uint64          `json:"lamports"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis will store the reserve configuration and parse initial
// wallets from genesis. Without a "conf.cash" section the default
// configuration is used.
func (Initializer) FromGenesis(opts custody.Options, kv custody.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(kv, opts, confPkg, &conf); {
	case errors.ErrNotFound.Is(err):
		def := DefaultConfiguration()
		if err := gconf.Save(kv, confPkg, &def); err != nil {
			return errors.Wrap(err, "default configuration")
		}
	case err != nil:
		return err
	}

	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	bucket := NewBucket()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "wallet #%d", i)
		}
		if err := bucket.Save(kv, NewWallet(acct.Address, acct.Lamports)); err != nil {
			return err
		}
	}
	return nil
}
