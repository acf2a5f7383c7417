/*
Package crypto holds the ed25519 keys used to sign transactions. The public
key of a signer is also its address on the ledger.
*/
package crypto

import (
	"crypto/sha512"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the Conditions of signature checks.
const ExtensionName = "sigs"

// PubKey is an ed25519 public key.
type PubKey []byte

// Verify returns true if the signature was made for the message by the
// private key matching this public key.
func (p PubKey) Verify(message, sig []byte) bool {
	if len(p) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p), message, sig)
}

// Address returns the ledger address of the key holder.
func (p PubKey) Address() custody.Address {
	return custody.Address(p)
}

// Condition returns the condition fulfilled by a valid signature of this key.
func (p PubKey) Condition() custody.Condition {
	return custody.NewCondition(ExtensionName, "ed25519", custody.Address(p))
}

// Validate checks the key length.
func (p PubKey) Validate() error {
	if len(p) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrInput, "public key length %d", len(p))
	}
	return nil
}

// PrivKey is an ed25519 private key.
type PrivKey struct {
	key ed25519.PrivateKey
}

// GenPrivKeyEd25519 creates a new random key.
func GenPrivKeyEd25519() *PrivKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivKey{key: priv}
}

// PrivKeyEd25519FromSeed creates a deterministic key from a 32 byte seed.
func PrivKeyEd25519FromSeed(seed []byte) (*PrivKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Wrapf(errors.ErrInput, "seed length %d", len(seed))
	}
	return &PrivKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// Sign returns the signature of the message.
func (p *PrivKey) Sign(message []byte) []byte {
	return ed25519.Sign(p.key, message)
}

// PublicKey returns the matching public key.
func (p *PrivKey) PublicKey() PubKey {
	return PubKey(p.key.Public().(ed25519.PublicKey))
}

// Seed returns the seed this key can be recreated from.
func (p *PrivKey) Seed() []byte {
	return p.key.Seed()
}

// PrehashMessage hashes the message before it is signed. Signing a fixed
// size digest keeps the signature cost independent of the transaction size.
func PrehashMessage(message []byte) []byte {
	h := sha512.Sum512(message)
	return h[:]
}
