package sigs

import (
	"testing"

	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSignBytes(t *testing.T) {
	a, err := BuildSignBytes([]byte("foo"), "my-chain", 0)
	require.NoError(t, err)
	b, err := BuildSignBytes([]byte("foo"), "my-chain", 1)
	require.NoError(t, err)
	c, err := BuildSignBytes([]byte("foo"), "other-chain", 0)
	require.NoError(t, err)
	again, err := BuildSignBytes([]byte("foo"), "my-chain", 0)
	require.NoError(t, err)

	assert.Equal(t, a, again)
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)

	_, err = BuildSignBytes([]byte("foo"), "bad", 0)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestVerifySignature(t *testing.T) {
	kv := store.MemStore()
	priv := crypto.GenPrivKeyEd25519()
	other := crypto.GenPrivKeyEd25519()
	chainID := "emo-music-2345"
	tx := NewStdTx([]byte("foobar"))

	sig0, err := SignTx(priv, tx, chainID, 0)
	require.NoError(t, err)
	sig1, err := SignTx(priv, tx, chainID, 1)
	require.NoError(t, err)

	// signature made by another key
	forged := *sig0
	forged.Pubkey = other.PublicKey()
	_, err = VerifySignature(kv, &forged, []byte("foobar"), chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// out of order
	_, err = VerifySignature(kv, sig1, []byte("foobar"), chainID)
	assert.True(t, ErrInvalidSequence.Is(err))

	cond, err := VerifySignature(kv, sig0, []byte("foobar"), chainID)
	require.NoError(t, err)
	assert.Equal(t, priv.PublicKey().Condition(), cond)

	// payload does not match
	_, err = VerifySignature(kv, sig1, []byte("other"), chainID)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	cond, err = VerifySignature(kv, sig1, []byte("foobar"), chainID)
	require.NoError(t, err)
	assert.Equal(t, priv.PublicKey().Condition(), cond)

	tx.Signatures = []*StdSignature{sig0}
	_, err = VerifyTxSignatures(kv, tx, chainID)
	assert.True(t, ErrInvalidSequence.Is(err))
}

func TestStdSignatureSerialization(t *testing.T) {
	priv := crypto.GenPrivKeyEd25519()
	sig, err := SignTx(priv, NewStdTx([]byte("data")), "test-chain", 7)
	require.NoError(t, err)
	require.NoError(t, sig.Validate())

	raw, err := sig.Marshal()
	require.NoError(t, err)
	var got StdSignature
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, *sig, got)

	assert.Error(t, (&StdSignature{Signature: []byte("x")}).Validate())
	assert.Error(t, (&StdSignature{Pubkey: priv.PublicKey()}).Validate())
}
