package vault

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// StateSize is the length of a serialized State.
const StateSize = 2

// ProgramID is the identity of this extension.
var ProgramID = custody.ProgramID("vault")

// State keeps the bumps needed to re-create the vault addresses of a user.
type State struct {
	AuthorityBump uint8
	StateBump     uint8
}

var _ orm.Model = (*State)(nil)

func (s *State) Validate() error {
	return nil
}

func (s *State) Marshal() ([]byte, error) {
	return []byte{s.AuthorityBump, s.StateBump}, nil
}

func (s *State) Unmarshal(raw []byte) error {
	if len(raw) != StateSize {
		return errors.Wrapf(errors.ErrSchema, "state length %d", len(raw))
	}
	s.AuthorityBump = raw[0]
	s.StateBump = raw[1]
	return nil
}

// CustodyAccount re-creates the address of the custody account using the
// stored bump.
func (s *State) CustodyAccount(stateAddr custody.Address) (custody.Address, error) {
	addr, err := custody.CreateDerivedAddress(ProgramID, []byte("vault"), stateAddr, []byte{s.AuthorityBump})
	if err != nil {
		return nil, errors.Wrap(errors.ErrState, "custody account")
	}
	return addr, nil
}

// StateAddress returns the address of the vault state of the user.
func StateAddress(user custody.Address) (custody.Address, uint8, error) {
	return custody.FindDerivedAddress(ProgramID, []byte("state"), user)
}

// CustodyAddress returns the address of the custody account of the vault
// state.
func CustodyAddress(stateAddr custody.Address) (custody.Address, uint8, error) {
	return custody.FindDerivedAddress(ProgramID, []byte("vault"), stateAddr)
}

// AsState will safely type-cast any value from Bucket.
func AsState(obj orm.Object) *State {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*State)
}

// Bucket stores vault states keyed by their address.
type Bucket struct {
	orm.Bucket
}

// NewBucket returns a bucket for vault states.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket("vaults", orm.NewSimpleObj(nil, new(State))),
	}
}
