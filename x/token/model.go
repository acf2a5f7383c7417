package token

import (
	"encoding/binary"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const (
	// MintSize is the length of a serialized Mint.
	MintSize = custody.AddressLength + 1 + 8
	// HoldingSize is the length of a serialized Holding.
	HoldingSize = 2*custody.AddressLength + 8
)

// ProgramID is the identity of this extension, used to derive the
// associated holding addresses.
var ProgramID = custody.ProgramID("token")

// AssociatedHolding returns the address of the holding that keeps the
// balance of owner for the given mint.
func AssociatedHolding(owner, mint custody.Address) (custody.Address, error) {
	addr, _, err := custody.FindDerivedAddress(ProgramID, []byte("holding"), owner, mint)
	return addr, err
}

// Mint declares an asset type.
type Mint struct {
	Authority custody.Address
	Decimals  uint8
	Supply    uint64
}

var _ orm.Model = (*Mint)(nil)

func (m *Mint) Validate() error {
	return errors.Field("Authority", m.Authority.Validate(), "")
}

func (m *Mint) Marshal() ([]byte, error) {
	if len(m.Authority) != custody.AddressLength {
		return nil, errors.Wrap(errors.ErrModel, "authority")
	}
	raw := make([]byte, MintSize)
	copy(raw, m.Authority)
	raw[custody.AddressLength] = m.Decimals
	binary.LittleEndian.PutUint64(raw[custody.AddressLength+1:], m.Supply)
	return raw, nil
}

func (m *Mint) Unmarshal(raw []byte) error {
	if len(raw) != MintSize {
		return errors.Wrapf(errors.ErrSchema, "mint length %d", len(raw))
	}
	m.Authority = custody.Address(raw[:custody.AddressLength]).Clone()
	m.Decimals = raw[custody.AddressLength]
	m.Supply = binary.LittleEndian.Uint64(raw[custody.AddressLength+1:])
	return nil
}

// Holding is the balance of one owner for one asset.
type Holding struct {
	Owner  custody.Address
	Mint   custody.Address
	Amount uint64
}

var _ orm.Model = (*Holding)(nil)

func (h *Holding) Validate() error {
	var err error
	err = errors.AppendField(err, "Owner", h.Owner.Validate())
	err = errors.AppendField(err, "Mint", h.Mint.Validate())
	return err
}

func (h *Holding) Marshal() ([]byte, error) {
	if len(h.Owner) != custody.AddressLength || len(h.Mint) != custody.AddressLength {
		return nil, errors.Wrap(errors.ErrModel, "holding addresses")
	}
	raw := make([]byte, HoldingSize)
	copy(raw, h.Owner)
	copy(raw[custody.AddressLength:], h.Mint)
	binary.LittleEndian.PutUint64(raw[2*custody.AddressLength:], h.Amount)
	return raw, nil
}

func (h *Holding) Unmarshal(raw []byte) error {
	if len(raw) != HoldingSize {
		return errors.Wrapf(errors.ErrSchema, "holding length %d", len(raw))
	}
	h.Owner = custody.Address(raw[:custody.AddressLength]).Clone()
	h.Mint = custody.Address(raw[custody.AddressLength : 2*custody.AddressLength]).Clone()
	h.Amount = binary.LittleEndian.Uint64(raw[2*custody.AddressLength:])
	return nil
}

// AsMint will safely type-cast any value from MintBucket.
func AsMint(obj orm.Object) *Mint {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Mint)
}

// AsHolding will safely type-cast any value from HoldingBucket.
func AsHolding(obj orm.Object) *Holding {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Holding)
}

// MintBucket stores mints keyed by their address.
type MintBucket struct {
	orm.Bucket
}

// NewMintBucket returns a bucket for mints.
func NewMintBucket() MintBucket {
	return MintBucket{
		Bucket: orm.NewBucket("mints", orm.NewSimpleObj(nil, new(Mint))),
	}
}

// HoldingBucket stores holdings keyed by their address, indexed by owner.
type HoldingBucket struct {
	orm.Bucket
}

// NewHoldingBucket returns a bucket for holdings.
func NewHoldingBucket() HoldingBucket {
	b := orm.NewBucket("holdings", orm.NewSimpleObj(nil, new(Holding))).
		WithIndex("owner", idxOwner, false)
	return HoldingBucket{Bucket: b}
}

func idxOwner(obj orm.Object) ([]byte, error) {
	h, ok := obj.Value().(*Holding)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	return h.Owner, nil
}

// ByOwner returns all holdings of the given owner.
func (b HoldingBucket) ByOwner(db custody.ReadOnlyKVStore, owner custody.Address) ([]orm.Object, error) {
	return b.GetIndexed(db, "owner", owner)
}
