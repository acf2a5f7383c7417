package escrow

import (
	"context"
	"math"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOffer(t *testing.T) {
	f := newFixture(t)
	offerAddr := f.create(t, 7, 100, 50)

	want, _, err := OfferAddress(f.maker.Address(), 7)
	require.NoError(t, err)
	assert.Equal(t, want, offerAddr)

	offer, err := f.ctrl.bucket.GetOffer(f.db, offerAddr)
	require.NoError(t, err)
	assert.Equal(t, f.maker.Address(), offer.Maker)
	assert.Equal(t, f.mintA, offer.MintA)
	assert.Equal(t, f.mintB, offer.MintB)
	assert.EqualValues(t, 7, offer.Nonce)
	assert.EqualValues(t, 50, offer.RequestedAmount)

	authority, bump, err := AuthorityAddress(offerAddr)
	require.NoError(t, err)
	assert.Equal(t, bump, offer.AuthorityBump)
	recreated, err := offer.Authority(offerAddr)
	require.NoError(t, err)
	assert.Equal(t, authority, recreated)

	vault, err := VaultAddress(offerAddr)
	require.NoError(t, err)
	held, err := f.tokens.Holding(f.db, vault)
	require.NoError(t, err)
	assert.EqualValues(t, 100, held.Amount)
	assert.Equal(t, authority, held.Owner)
	assert.Equal(t, f.mintA, held.Mint)
	assert.EqualValues(t, 0, f.balance(t, f.maker.Address(), f.mintA))

	// maker paid both storage reserves
	conf := cash.DefaultConfiguration()
	assert.Equal(t, conf.MinimumBalance(OfferSize), f.lamports(t, offerAddr))
	assert.Equal(t, conf.MinimumBalance(token.HoldingSize), f.lamports(t, vault))
	wantMaker := uint64(initialLamports) - conf.MinimumBalance(OfferSize) - conf.MinimumBalance(token.HoldingSize)
	assert.Equal(t, wantMaker, f.lamports(t, f.maker.Address()))

	objs, err := f.ctrl.bucket.GetIndexed(f.db, "maker", f.maker.Address())
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Equal(t, []byte(offerAddr), objs[0].Key())
}

func TestCreateOfferErrors(t *testing.T) {
	cases := map[string]struct {
		signer  bool
		mutate  func(f *fixture, msg *CreateOfferMsg)
		wantErr *errors.Error
	}{
		"not signed by the maker": {
			wantErr: errors.ErrUnauthorized,
		},
		"zero deposit": {
			signer:  true,
			mutate:  func(f *fixture, msg *CreateOfferMsg) { msg.Deposit = 0 },
			wantErr: errors.ErrAmount,
		},
		"zero request": {
			signer:  true,
			mutate:  func(f *fixture, msg *CreateOfferMsg) { msg.Receive = 0 },
			wantErr: errors.ErrAmount,
		},
		"same mints": {
			signer:  true,
			mutate:  func(f *fixture, msg *CreateOfferMsg) { msg.MintB = f.mintA },
			wantErr: errors.ErrInput,
		},
		"unknown mint": {
			signer:  true,
			mutate:  func(f *fixture, msg *CreateOfferMsg) { msg.MintB = custodytest.NewAddress() },
			wantErr: errors.ErrNotFound,
		},
		"deposit above balance": {
			signer:  true,
			mutate:  func(f *fixture, msg *CreateOfferMsg) { msg.Deposit = 101 },
			wantErr: errors.ErrInsufficientAmount,
		},
		"maker without holding": {
			signer: true,
			mutate: func(f *fixture, msg *CreateOfferMsg) {
				msg.MintA, msg.MintB = f.mintB, f.mintA
			},
			wantErr: errors.ErrInsufficientAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			msg := &CreateOfferMsg{
				Maker:   f.maker.Address(),
				MintA:   f.mintA,
				MintB:   f.mintB,
				Nonce:   1,
				Deposit: 100,
				Receive: 50,
			}
			if tc.mutate != nil {
				tc.mutate(f, msg)
			}
			auth := &custodytest.Auth{}
			if tc.signer {
				auth.Signer = f.maker
			}
			h := CreateOfferHandler{auth: auth, ctrl: f.ctrl}
			tx := &custodytest.Tx{Msg: msg}

			_, err := h.Check(context.Background(), f.db, tx)
			require.True(t, tc.wantErr.Is(err), "check: %+v", err)
			_, err = h.Deliver(context.Background(), f.db, tx)
			require.True(t, tc.wantErr.Is(err), "deliver: %+v", err)

			assert.EqualValues(t, 100, f.balance(t, f.maker.Address(), f.mintA))
			assert.EqualValues(t, initialLamports, f.lamports(t, f.maker.Address()))
		})
	}
}

func TestNonceReuse(t *testing.T) {
	f := newFixture(t)
	offerAddr := f.create(t, 1, 60, 10)

	h := CreateOfferHandler{auth: &custodytest.Auth{Signer: f.maker}, ctrl: f.ctrl}
	msg := &CreateOfferMsg{Maker: f.maker.Address(), MintA: f.mintA, MintB: f.mintB, Nonce: 1, Deposit: 10, Receive: 10}
	_, err := h.Deliver(context.Background(), f.db, &custodytest.Tx{Msg: msg})
	assert.True(t, errors.ErrDuplicate.Is(err), "got %+v", err)

	// another nonce is a different offer
	other := f.create(t, 2, 10, 10)
	assert.NotEqual(t, offerAddr, other)

	cancel := CancelOfferHandler{auth: &custodytest.Auth{Signer: f.maker}, ctrl: f.ctrl}
	_, err = cancel.Deliver(context.Background(), f.db, &custodytest.Tx{
		Msg: &CancelOfferMsg{Maker: f.maker.Address(), Offer: offerAddr},
	})
	require.NoError(t, err)

	// the nonce is free again once the offer is closed
	again := f.create(t, 1, 10, 10)
	assert.Equal(t, offerAddr, again)
}

func TestFulfillOffer(t *testing.T) {
	f := newFixture(t)
	offerAddr := f.create(t, 3, 100, 50)
	vault, err := VaultAddress(offerAddr)
	require.NoError(t, err)

	h := FulfillOfferHandler{auth: &custodytest.Auth{Signer: f.taker}, ctrl: f.ctrl}
	tx := &custodytest.Tx{Msg: &FulfillOfferMsg{Taker: f.taker.Address(), Offer: offerAddr}}

	_, err = h.Check(context.Background(), f.db, tx)
	require.NoError(t, err)
	_, err = h.Deliver(context.Background(), f.db, tx)
	require.NoError(t, err)

	assert.EqualValues(t, 50, f.balance(t, f.maker.Address(), f.mintB))
	assert.EqualValues(t, 0, f.balance(t, f.taker.Address(), f.mintB))
	assert.EqualValues(t, 100, f.balance(t, f.taker.Address(), f.mintA))
	assert.EqualValues(t, 0, f.balance(t, f.maker.Address(), f.mintA))

	_, err = f.ctrl.bucket.GetOffer(f.db, offerAddr)
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = f.tokens.Holding(f.db, vault)
	assert.True(t, errors.ErrNotFound.Is(err))
	assert.EqualValues(t, 0, f.lamports(t, offerAddr))
	assert.EqualValues(t, 0, f.lamports(t, vault))

	// both reserves went back to the maker, the taker paid for the new holdings
	conf := cash.DefaultConfiguration()
	assert.EqualValues(t, initialLamports, f.lamports(t, f.maker.Address()))
	assert.Equal(t, initialLamports-2*conf.MinimumBalance(token.HoldingSize), f.lamports(t, f.taker.Address()))

	// no second payout
	_, err = h.Deliver(context.Background(), f.db, tx)
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)
	assert.EqualValues(t, 100, f.balance(t, f.taker.Address(), f.mintA))
}

func TestFulfillOfferErrors(t *testing.T) {
	cases := map[string]struct {
		request uint64
		signer  bool
		offer   func(created custody.Address) custody.Address
		wantErr *errors.Error
	}{
		"taker underfunded": {
			request: 51,
			signer:  true,
			wantErr: errors.ErrInsufficientAmount,
		},
		"not signed by the taker": {
			request: 50,
			wantErr: errors.ErrUnauthorized,
		},
		"unknown offer": {
			request: 50,
			signer:  true,
			offer:   func(custody.Address) custody.Address { return custodytest.NewAddress() },
			wantErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			offerAddr := f.create(t, 1, 100, tc.request)
			target := offerAddr
			if tc.offer != nil {
				target = tc.offer(offerAddr)
			}
			auth := &custodytest.Auth{}
			if tc.signer {
				auth.Signer = f.taker
			}
			h := FulfillOfferHandler{auth: auth, ctrl: f.ctrl}
			tx := &custodytest.Tx{Msg: &FulfillOfferMsg{Taker: f.taker.Address(), Offer: target}}

			_, err := h.Check(context.Background(), f.db, tx)
			require.True(t, tc.wantErr.Is(err), "check: %+v", err)
			_, err = h.Deliver(context.Background(), f.db, tx)
			require.True(t, tc.wantErr.Is(err), "deliver: %+v", err)

			// nothing moved
			vault, err := VaultAddress(offerAddr)
			require.NoError(t, err)
			held, err := f.tokens.Holding(f.db, vault)
			require.NoError(t, err)
			assert.EqualValues(t, 100, held.Amount)
			assert.EqualValues(t, 50, f.balance(t, f.taker.Address(), f.mintB))
			assert.EqualValues(t, 0, f.balance(t, f.maker.Address(), f.mintB))
		})
	}
}

func TestFulfillOfferReserves(t *testing.T) {
	f := newFixture(t)
	offerAddr := f.create(t, 2, 100, 50)
	conf := cash.DefaultConfiguration()
	reserve := conf.MinimumBalance(token.HoldingSize)

	// This taker can hold asset B but cannot pay for the two holdings that
	// settling the offer creates.
	taker := custodytest.NewCondition()
	require.NoError(t, f.cash.Issue(f.db, taker.Address(), conf.MinimumBalance(0)+reserve))
	takerB, err := f.tokens.EnsureAssociatedHolding(f.db, taker.Address(), taker.Address(), f.mintB)
	require.NoError(t, err)
	require.NoError(t, f.tokens.Issue(f.db, takerB, 50))

	h := FulfillOfferHandler{auth: &custodytest.Auth{Signer: taker}, ctrl: f.ctrl}
	tx := &custodytest.Tx{Msg: &FulfillOfferMsg{Taker: taker.Address(), Offer: offerAddr}}

	for _, topUp := range []uint64{0, reserve} {
		require.NoError(t, f.cash.Issue(f.db, taker.Address(), topUp))
		_, err = h.Check(context.Background(), f.db, tx)
		assert.True(t, errors.ErrInsufficientAmount.Is(err), "check: %+v", err)
		_, err = h.Deliver(context.Background(), f.db, tx)
		assert.True(t, errors.ErrInsufficientAmount.Is(err), "deliver: %+v", err)
		assert.EqualValues(t, 50, f.balance(t, taker.Address(), f.mintB))
		assert.EqualValues(t, 0, f.balance(t, f.maker.Address(), f.mintB))
	}

	require.NoError(t, f.cash.Issue(f.db, taker.Address(), reserve))
	_, err = h.Deliver(context.Background(), f.db, tx)
	require.NoError(t, err)
	assert.EqualValues(t, 100, f.balance(t, taker.Address(), f.mintA))
	assert.EqualValues(t, 50, f.balance(t, f.maker.Address(), f.mintB))
	assert.Equal(t, conf.MinimumBalance(0), f.lamports(t, taker.Address()))
}

func TestFulfillOfferRollsBack(t *testing.T) {
	f := newFixture(t)
	offerAddr := f.create(t, 4, 100, 50)
	vault, err := VaultAddress(offerAddr)
	require.NoError(t, err)

	// The taker already holds so much of asset A that the payout overflows
	// after the maker was paid.
	takerA, err := token.AssociatedHolding(f.taker.Address(), f.mintA)
	require.NoError(t, err)
	full := &token.Holding{Owner: f.taker.Address(), Mint: f.mintA, Amount: math.MaxUint64 - 50}
	require.NoError(t, token.NewHoldingBucket().Save(f.db, orm.NewSimpleObj(takerA, full)))
	lamports := f.lamports(t, f.taker.Address())

	h := FulfillOfferHandler{auth: &custodytest.Auth{Signer: f.taker}, ctrl: f.ctrl}
	tx := &custodytest.Tx{Msg: &FulfillOfferMsg{Taker: f.taker.Address(), Offer: offerAddr}}
	_, err = h.Deliver(context.Background(), f.db, tx)
	require.True(t, errors.ErrOverflow.Is(err), "got %+v", err)

	assert.EqualValues(t, 50, f.balance(t, f.taker.Address(), f.mintB))
	assert.EqualValues(t, 0, f.balance(t, f.maker.Address(), f.mintB))
	assert.EqualValues(t, uint64(math.MaxUint64-50), f.balance(t, f.taker.Address(), f.mintA))
	held, err := f.tokens.Holding(f.db, vault)
	require.NoError(t, err)
	assert.EqualValues(t, 100, held.Amount)
	assert.Equal(t, lamports, f.lamports(t, f.taker.Address()))
	_, err = f.ctrl.bucket.GetOffer(f.db, offerAddr)
	assert.NoError(t, err)
}

func TestCancelOffer(t *testing.T) {
	f := newFixture(t)
	offerAddr := f.create(t, 9, 80, 50)
	assert.EqualValues(t, 20, f.balance(t, f.maker.Address(), f.mintA))

	msg := &CancelOfferMsg{Maker: f.maker.Address(), Offer: offerAddr}
	tx := &custodytest.Tx{Msg: msg}

	// the taker cannot cancel, neither in its own name nor in the maker's
	intruder := CancelOfferHandler{auth: &custodytest.Auth{Signer: f.taker}, ctrl: f.ctrl}
	_, err := intruder.Deliver(context.Background(), f.db, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)
	_, err = intruder.Deliver(context.Background(), f.db, &custodytest.Tx{
		Msg: &CancelOfferMsg{Maker: f.taker.Address(), Offer: offerAddr},
	})
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)
	assert.EqualValues(t, 20, f.balance(t, f.maker.Address(), f.mintA))

	h := CancelOfferHandler{auth: &custodytest.Auth{Signer: f.maker}, ctrl: f.ctrl}
	_, err = h.Check(context.Background(), f.db, tx)
	require.NoError(t, err)
	_, err = h.Deliver(context.Background(), f.db, tx)
	require.NoError(t, err)

	assert.EqualValues(t, 100, f.balance(t, f.maker.Address(), f.mintA))
	assert.EqualValues(t, initialLamports, f.lamports(t, f.maker.Address()))
	assert.EqualValues(t, 50, f.balance(t, f.taker.Address(), f.mintB))
	assert.EqualValues(t, initialLamports, f.lamports(t, f.taker.Address()))

	_, err = h.Deliver(context.Background(), f.db, tx)
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)
}

func TestVaultOnlyMovedByEscrow(t *testing.T) {
	f := newFixture(t)
	offerAddr := f.create(t, 1, 100, 50)
	vault, err := VaultAddress(offerAddr)
	require.NoError(t, err)
	makerA, err := token.AssociatedHolding(f.maker.Address(), f.mintA)
	require.NoError(t, err)

	// a regular transfer signed by the maker cannot touch the vault
	transfer := &custodytest.Tx{Msg: &token.TransferMsg{Source: vault, Destination: makerA, Amount: 100}}
	router := app.NewRouter()
	token.RegisterRoutes(router, &custodytest.Auth{Signer: f.maker}, f.tokens)
	_, err = router.Deliver(context.Background(), f.db, transfer)
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)

	// neither can the escrow authenticator outside of a settlement
	err = f.tokens.Transfer(context.Background(), Authenticate{}, f.db, vault, makerA, 100)
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)

	held, err := f.tokens.Holding(f.db, vault)
	require.NoError(t, err)
	assert.EqualValues(t, 100, held.Amount)
}
