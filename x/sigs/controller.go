package sigs

import (
	"encoding/binary"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
)

// SignCodeV1 is the current way to prefix the bytes we use to build a
// signature.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures checks all the signatures on the tx, which must have
// at least one.
//
// returns list of signer conditions on success or error
func VerifyTxSignatures(db custody.KVStore, tx SignedTx, chainID string) ([]custody.Condition, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()

	signers := make([]custody.Condition, 0, len(sigs))
	for _, sig := range sigs {
		signer, err := VerifySignature(db, sig, bz, chainID)
		if err != nil {
			return nil, err
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// VerifySignature checks one signature against signbytes, check chain and
// updates state in the store.
func VerifySignature(db custody.KVStore, sig *StdSignature, signBytes []byte, chainID string) (custody.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}

	bucket := NewBucket()
	obj, err := bucket.GetOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}

	toSign, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}

	user := AsUser(obj)
	if !user.Pubkey.Verify(toSign, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := bucket.Save(db, obj); err != nil {
		return nil, err
	}
	return user.Pubkey.Condition(), nil
}

/*
BuildSignBytes combines all info on the actual tx before signing.

We use the following format:

version | len(chainID) | chainID      | sequence           | signBytes
4bytes  | uint8        | ascii string | uint64 (bigendian) | serialized transaction

This is then prehashed with sha512 before fed into the public key
signing/verification step.
*/
func BuildSignBytes(signBytes []byte, chainID string, seq uint64) ([]byte, error) {
	if !custody.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}

	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, seq)

	output := make([]byte, 0, 4+1+len(chainID)+8+len(signBytes))
	output = append(output, SignCodeV1...)
	output = append(output, uint8(len(chainID)))
	output = append(output, []byte(chainID)...)
	output = append(output, nonce...)
	output = append(output, signBytes...)
	return crypto.PrehashMessage(output), nil
}

// SignTx creates a signature for the given tx.
func SignTx(signer *crypto.PrivKey, tx SignedTx, chainID string, seq uint64) (*StdSignature, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	toSign, err := BuildSignBytes(signBytes, chainID, seq)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		Pubkey:    signer.PublicKey(),
		Signature: signer.Sign(toSign),
		Sequence:  seq,
	}, nil
}

// NextSequence returns the sequence the signer must use for the next
// transaction.
func NextSequence(db custody.ReadOnlyKVStore, signer custody.Address) (uint64, error) {
	obj, err := NewBucket().Get(db, signer)
	if err != nil || obj == nil {
		return 0, err
	}
	return AsUser(obj).Sequence, nil
}
