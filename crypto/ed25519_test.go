package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	key := GenPrivKeyEd25519()
	pub := key.PublicKey()
	require.NoError(t, pub.Validate())

	msg := PrehashMessage([]byte("fulfill offer"))
	sig := key.Sign(msg)
	assert.True(t, pub.Verify(msg, sig))
	assert.False(t, pub.Verify(PrehashMessage([]byte("cancel offer")), sig))
	assert.False(t, GenPrivKeyEd25519().PublicKey().Verify(msg, sig))
}

func TestKeyFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a, err := PrivKeyEd25519FromSeed(seed)
	require.NoError(t, err)
	b, err := PrivKeyEd25519FromSeed(a.Seed())
	require.NoError(t, err)
	assert.Equal(t, a.PublicKey(), b.PublicKey())

	_, err = PrivKeyEd25519FromSeed(seed[:10])
	assert.Error(t, err)
}

func TestCondition(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	cond := pub.Condition()
	require.NoError(t, cond.Validate())
	assert.Equal(t, pub.Address(), cond.Address())

	ext, typ, _, err := cond.Parse()
	require.NoError(t, err)
	assert.Equal(t, "sigs", ext)
	assert.Equal(t, "ed25519", typ)
}
