package escrow

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/token"
	"github.com/stretchr/testify/require"
)

const initialLamports = 10000000

type fixture struct {
	db     custody.CacheableKVStore
	cash   cash.BaseController
	tokens token.BaseController
	ctrl   controller

	mintA custody.Address
	mintB custody.Address
	maker custody.Condition
	taker custody.Condition
}

// newFixture returns a state where the maker holds 100 units of asset A and
// the taker holds 50 units of asset B.
func newFixture(t testing.TB) *fixture {
	t.Helper()
	db := store.MemStore()
	conf := cash.DefaultConfiguration()
	require.NoError(t, gconf.Save(db, "cash", &conf))

	cashctrl := cash.NewController(cash.NewBucket())
	tokens := token.NewController(cashctrl)
	f := &fixture{
		db:     db,
		cash:   cashctrl,
		tokens: tokens,
		ctrl:   newController(tokens, cashctrl),
		mintA:  custodytest.NewAddress(),
		mintB:  custodytest.NewAddress(),
		maker:  custodytest.NewCondition(),
		taker:  custodytest.NewCondition(),
	}
	mints := token.NewMintBucket()
	for _, m := range []custody.Address{f.mintA, f.mintB} {
		mint := &token.Mint{Authority: custodytest.NewAddress()}
		require.NoError(t, mints.Save(db, orm.NewSimpleObj(m, mint)))
	}

	f.fund(t, f.maker.Address(), f.mintA, 100)
	f.fund(t, f.taker.Address(), f.mintB, 50)
	return f
}

func (f *fixture) fund(t testing.TB, owner, mint custody.Address, amount uint64) {
	t.Helper()
	reserve := cash.DefaultConfiguration().MinimumBalance(token.HoldingSize)
	require.NoError(t, f.cash.Issue(f.db, owner, initialLamports+reserve))
	addr, err := f.tokens.EnsureAssociatedHolding(f.db, owner, owner, mint)
	require.NoError(t, err)
	require.NoError(t, f.tokens.Issue(f.db, addr, amount))
}

// balance returns the amount of the associated holding, or zero if it does
// not exist.
func (f *fixture) balance(t testing.TB, owner, mint custody.Address) uint64 {
	t.Helper()
	addr, err := token.AssociatedHolding(owner, mint)
	require.NoError(t, err)
	obj, err := token.NewHoldingBucket().Get(f.db, addr)
	require.NoError(t, err)
	if obj == nil {
		return 0
	}
	return token.AsHolding(obj).Amount
}

func (f *fixture) lamports(t testing.TB, addr custody.Address) uint64 {
	t.Helper()
	bal, err := f.cash.Balance(f.db, addr)
	require.NoError(t, err)
	return bal
}

func (f *fixture) create(t testing.TB, nonce, deposit, receive uint64) custody.Address {
	t.Helper()
	h := CreateOfferHandler{auth: &custodytest.Auth{Signer: f.maker}, ctrl: f.ctrl}
	msg := &CreateOfferMsg{
		Maker:   f.maker.Address(),
		MintA:   f.mintA,
		MintB:   f.mintB,
		Nonce:   nonce,
		Deposit: deposit,
		Receive: receive,
	}
	res, err := h.Deliver(context.Background(), f.db, &custodytest.Tx{Msg: msg})
	require.NoError(t, err)
	return custody.Address(res.Data)
}
