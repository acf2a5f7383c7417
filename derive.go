package custody

import (
	"crypto/sha256"

	"filippo.io/edwards25519"
	"github.com/iov-one/custody/errors"
)

const (
	// MaxSeeds is the maximum number of seeds a derived address can be
	// computed from, including the bump seed.
	MaxSeeds = 16

	// MaxSeedLength is the maximum length of a single seed.
	MaxSeedLength = 32

	derivedAddressMarker = "ProgramDerivedAddress"
)

// ProgramID returns the address identifying a program (an extension) of the
// ledger. Derived addresses are always computed relative to a program.
func ProgramID(name string) Address {
	h := sha256.Sum256([]byte("program:" + name))
	return h[:]
}

// CreateDerivedAddress computes an address from the given seeds and program.
// The result is rejected if it is a valid ed25519 public key, because someone
// could hold the matching private key and sign for the address.
func CreateDerivedAddress(program Address, seeds ...[]byte) (Address, error) {
	if len(seeds) > MaxSeeds {
		return nil, errors.Wrapf(errors.ErrInput, "too many seeds: %d", len(seeds))
	}
	h := sha256.New()
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return nil, errors.Wrapf(errors.ErrInput, "seed %d too long: %d", i, len(s))
		}
		h.Write(s)
	}
	h.Write(program)
	h.Write([]byte(derivedAddressMarker))
	addr := Address(h.Sum(nil))
	if IsOnCurve(addr) {
		return nil, errors.Wrap(errors.ErrState, "derived address on curve")
	}
	return addr, nil
}

// FindDerivedAddress searches for a bump seed that, appended to the given
// seeds, gives a valid derived address. Bumps are tried starting from 255
// down to 0, so the returned bump is the canonical one.
func FindDerivedAddress(program Address, seeds ...[]byte) (Address, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return nil, 0, errors.Wrapf(errors.ErrInput, "too many seeds: %d", len(seeds))
	}
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{uint8(bump)}
		addr, err := CreateDerivedAddress(program, withBump...)
		if err == nil {
			return addr, uint8(bump), nil
		}
		if !errors.ErrState.Is(err) {
			return nil, 0, err
		}
	}
	return nil, 0, errors.Wrap(errors.ErrState, "no viable bump seed")
}

// MustFindDerivedAddress is FindDerivedAddress for seeds known to be valid.
func MustFindDerivedAddress(program Address, seeds ...[]byte) (Address, uint8) {
	addr, bump, err := FindDerivedAddress(program, seeds...)
	if err != nil {
		panic(err)
	}
	return addr, bump
}

// IsOnCurve returns true if given bytes are an encoding of a point of the
// ed25519 curve.
func IsOnCurve(b []byte) bool {
	if len(b) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
