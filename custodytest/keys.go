package custodytest

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
)

// NewKey returns a new random private key.
func NewKey() *crypto.PrivKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a new random key.
func NewCondition() custody.Condition {
	return NewKey().PublicKey().Condition()
}

// NewAddress returns the address of a new random key holder.
func NewAddress() custody.Address {
	return NewKey().PublicKey().Address()
}
