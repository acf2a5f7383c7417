package token

import (
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHolding(t *testing.T) {
	f := newFixture(t)
	reserve := cash.DefaultConfiguration().MinimumBalance(HoldingSize)
	payer := custodytest.NewAddress()
	owner := custodytest.NewAddress()
	require.NoError(t, f.cash.Issue(f.db, payer, 3*reserve))

	addr, err := f.ctrl.EnsureAssociatedHolding(f.db, payer, owner, f.mintA)
	require.NoError(t, err)
	want, err := AssociatedHolding(owner, f.mintA)
	require.NoError(t, err)
	assert.Equal(t, want, addr)

	h, err := f.ctrl.Holding(f.db, addr)
	require.NoError(t, err)
	assert.Equal(t, owner, h.Owner)
	assert.Equal(t, f.mintA, h.Mint)
	assert.EqualValues(t, 0, h.Amount)

	// the payer funded the reserve, kept by the holding address
	bal, err := f.cash.Balance(f.db, payer)
	require.NoError(t, err)
	assert.Equal(t, 2*reserve, bal)
	bal, err = f.cash.Balance(f.db, addr)
	require.NoError(t, err)
	assert.Equal(t, reserve, bal)

	// second call is a no-op
	again, err := f.ctrl.EnsureAssociatedHolding(f.db, payer, owner, f.mintA)
	require.NoError(t, err)
	assert.Equal(t, addr, again)
	bal, err = f.cash.Balance(f.db, payer)
	require.NoError(t, err)
	assert.Equal(t, 2*reserve, bal)

	err = f.ctrl.CreateHolding(f.db, payer, addr, owner, f.mintA)
	assert.True(t, errors.ErrDuplicate.Is(err))

	_, err = f.ctrl.EnsureAssociatedHolding(f.db, payer, owner, custodytest.NewAddress())
	assert.True(t, errors.ErrNotFound.Is(err))

	poor := custodytest.NewAddress()
	_, err = f.ctrl.EnsureAssociatedHolding(f.db, poor, owner, f.mintB)
	assert.True(t, errors.ErrInsufficientAmount.Is(err))
}

func TestTransfer(t *testing.T) {
	alice := custodytest.NewCondition()
	bob := custodytest.NewCondition()

	cases := map[string]struct {
		signer    custody.Condition
		amount    uint64
		otherMint bool
		wantErr   *errors.Error
		wantAlice uint64
		wantBob   uint64
	}{
		"success": {
			signer:    alice,
			amount:    30,
			wantAlice: 70,
			wantBob:   30,
		},
		"whole balance": {
			signer:    alice,
			amount:    100,
			wantAlice: 0,
			wantBob:   100,
		},
		"not the owner": {
			signer:    bob,
			amount:    30,
			wantErr:   errors.ErrUnauthorized,
			wantAlice: 100,
		},
		"insufficient": {
			signer:    alice,
			amount:    101,
			wantErr:   errors.ErrInsufficientAmount,
			wantAlice: 100,
		},
		"zero": {
			signer:    alice,
			wantErr:   errors.ErrAmount,
			wantAlice: 100,
		},
		"different mints": {
			signer:    alice,
			amount:    1,
			otherMint: true,
			wantErr:   errors.ErrInput,
			wantAlice: 100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			src := f.fund(t, alice.Address(), f.mintA, 100)
			dstMint := f.mintA
			if tc.otherMint {
				dstMint = f.mintB
			}
			dst := f.fund(t, bob.Address(), dstMint, 0)

			auth := &custodytest.Auth{Signer: tc.signer}
			err := f.ctrl.Transfer(context.Background(), auth, f.db, src, dst, tc.amount)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %+v", err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.wantAlice, f.amount(t, src))
			assert.Equal(t, tc.wantBob, f.amount(t, dst))
		})
	}
}

func TestTransferMissingHolding(t *testing.T) {
	f := newFixture(t)
	alice := custodytest.NewCondition()
	src := f.fund(t, alice.Address(), f.mintA, 10)
	auth := &custodytest.Auth{Signer: alice}

	err := f.ctrl.Transfer(context.Background(), auth, f.db, src, custodytest.NewAddress(), 5)
	assert.True(t, errors.ErrNotFound.Is(err))
	err = f.ctrl.Transfer(context.Background(), auth, f.db, custodytest.NewAddress(), src, 5)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestCloseHolding(t *testing.T) {
	f := newFixture(t)
	reserve := cash.DefaultConfiguration().MinimumBalance(HoldingSize)
	alice := custodytest.NewCondition()
	bob := custodytest.NewCondition()
	holding := f.fund(t, alice.Address(), f.mintA, 10)
	empty := f.fund(t, bob.Address(), f.mintA, 0)
	ctx := context.Background()

	err := f.ctrl.CloseHolding(ctx, &custodytest.Auth{Signer: alice}, f.db, holding, alice.Address())
	assert.True(t, errors.ErrState.Is(err))

	err = f.ctrl.CloseHolding(ctx, &custodytest.Auth{Signer: alice}, f.db, empty, alice.Address())
	assert.True(t, errors.ErrUnauthorized.Is(err))

	before, err := f.cash.Balance(f.db, bob.Address())
	require.NoError(t, err)
	require.NoError(t, f.ctrl.CloseHolding(ctx, &custodytest.Auth{Signer: bob}, f.db, empty, bob.Address()))
	after, err := f.cash.Balance(f.db, bob.Address())
	require.NoError(t, err)
	assert.Equal(t, before+reserve, after)

	_, err = f.ctrl.Holding(f.db, empty)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestHoldingsByOwner(t *testing.T) {
	f := newFixture(t)
	owner := custodytest.NewAddress()
	a := f.fund(t, owner, f.mintA, 1)
	b := f.fund(t, owner, f.mintB, 2)
	f.fund(t, custodytest.NewAddress(), f.mintA, 3)

	objs, err := NewHoldingBucket().ByOwner(f.db, owner)
	require.NoError(t, err)
	require.Len(t, objs, 2)
	keys := [][]byte{objs[0].Key(), objs[1].Key()}
	assert.Contains(t, keys, []byte(a))
	assert.Contains(t, keys, []byte(b))
}
