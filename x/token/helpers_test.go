package token

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/x/cash"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    custody.CacheableKVStore
	cash  cash.BaseController
	ctrl  BaseController
	mintA custody.Address
	mintB custody.Address
}

func newFixture(t testing.TB) fixture {
	t.Helper()
	db := store.MemStore()
	conf := cash.DefaultConfiguration()
	require.NoError(t, gconf.Save(db, "cash", &conf))

	cashctrl := cash.NewController(cash.NewBucket())
	f := fixture{
		db:    db,
		cash:  cashctrl,
		ctrl:  NewController(cashctrl),
		mintA: custodytest.NewAddress(),
		mintB: custodytest.NewAddress(),
	}
	mints := NewMintBucket()
	for _, m := range []custody.Address{f.mintA, f.mintB} {
		mint := &Mint{Authority: custodytest.NewAddress(), Decimals: 6}
		require.NoError(t, mints.Save(db, orm.NewSimpleObj(m, mint)))
	}
	return f
}

// fund gives the owner lamports and an associated holding of mint with the
// given amount. It returns the holding address.
func (f fixture) fund(t testing.TB, owner, mint custody.Address, amount uint64) custody.Address {
	t.Helper()
	require.NoError(t, f.cash.Issue(f.db, owner, 10*cash.DefaultConfiguration().MinimumBalance(HoldingSize)))
	addr, err := f.ctrl.EnsureAssociatedHolding(f.db, owner, owner, mint)
	require.NoError(t, err)
	if amount > 0 {
		require.NoError(t, f.ctrl.Issue(f.db, addr, amount))
	}
	return addr
}

func (f fixture) amount(t testing.TB, holding custody.Address) uint64 {
	t.Helper()
	h, err := f.ctrl.Holding(f.db, holding)
	require.NoError(t, err)
	return h.Amount
}
