package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
)

// SignedTx represents a transaction that contains signatures, which can be
// verified by the Decorator.
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the
	// Msg. Equivalent to Marshal() with all signatures removed.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signatures on the tx.
	GetSignatures() []*StdSignature
}

// StdSignature is the signature of a single key holder over a
// transaction.
type StdSignature struct {
	Pubkey    crypto.PubKey `protobuf:"bytes,1,opt,name=pubkey,proto3"`
	Signature []byte        `protobuf:"bytes,2,opt,name=signature,proto3"`
	Sequence  uint64        `protobuf:"varint,3,opt,name=sequence,proto3"`
}

// Validate ensures that the signature is well formed.
func (s *StdSignature) Validate() error {
	if len(s.Pubkey) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if err := s.Pubkey.Validate(); err != nil {
		return errors.Wrap(errors.ErrUnauthorized, err.Error())
	}
	if len(s.Signature) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

func (s *StdSignature) Marshal() ([]byte, error) {
	return proto.Marshal((*stdSignaturePB)(s))
}

func (s *StdSignature) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*stdSignaturePB)(s))
}
