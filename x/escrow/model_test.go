package escrow

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferLayout(t *testing.T) {
	offer := Offer{
		Maker:           custodytest.NewAddress(),
		MintA:           custodytest.NewAddress(),
		MintB:           custodytest.NewAddress(),
		Nonce:           1,
		RequestedAmount: 0x0200,
		AuthorityBump:   254,
		OfferBump:       255,
	}
	raw, err := offer.Marshal()
	require.NoError(t, err)
	require.Len(t, raw, 114)
	assert.Equal(t, []byte(offer.Maker), raw[:32])
	assert.Equal(t, []byte(offer.MintA), raw[32:64])
	assert.Equal(t, []byte(offer.MintB), raw[64:96])
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, raw[96:104])
	assert.Equal(t, []byte{0, 2, 0, 0, 0, 0, 0, 0}, raw[104:112])
	assert.Equal(t, []byte{254, 255}, raw[112:])

	var got Offer
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, offer, got)

	assert.True(t, errors.ErrSchema.Is(got.Unmarshal(raw[:113])))
	_, err = (&Offer{Maker: custody.Address{1}}).Marshal()
	assert.True(t, errors.ErrModel.Is(err))
}

func TestDerivedAddresses(t *testing.T) {
	maker := custodytest.NewAddress()

	offerA, bumpA, err := OfferAddress(maker, 1)
	require.NoError(t, err)
	again, bumpAgain, err := OfferAddress(maker, 1)
	require.NoError(t, err)
	assert.Equal(t, offerA, again)
	assert.Equal(t, bumpA, bumpAgain)

	offerB, _, err := OfferAddress(maker, 2)
	require.NoError(t, err)
	assert.NotEqual(t, offerA, offerB)

	other, _, err := OfferAddress(custodytest.NewAddress(), 1)
	require.NoError(t, err)
	assert.NotEqual(t, offerA, other)

	authority, _, err := AuthorityAddress(offerA)
	require.NoError(t, err)
	vault, err := VaultAddress(offerA)
	require.NoError(t, err)

	for _, addr := range []custody.Address{offerA, offerB, authority, vault} {
		assert.False(t, custody.IsOnCurve(addr))
	}
	assert.NotEqual(t, authority, vault)
}
