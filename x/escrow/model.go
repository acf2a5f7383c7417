package escrow

import (
	"encoding/binary"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// OfferSize is the length of a serialized Offer.
const OfferSize = 3*custody.AddressLength + 8 + 8 + 1 + 1

// ProgramID is the identity of this extension, used to derive the offer,
// authority and vault addresses.
var ProgramID = custody.ProgramID("escrow")

// Offer is a maker's escrowed intent to exchange the asset A locked in the
// vault for a fixed amount of asset B.
type Offer struct {
	Maker           custody.Address
	MintA           custody.Address
	MintB           custody.Address
	Nonce           uint64
	RequestedAmount uint64
	AuthorityBump   uint8
	OfferBump       uint8
}

var _ orm.Model = (*Offer)(nil)

func (o *Offer) Validate() error {
	var err error
	err = errors.AppendField(err, "Maker", o.Maker.Validate())
	err = errors.AppendField(err, "MintA", o.MintA.Validate())
	err = errors.AppendField(err, "MintB", o.MintB.Validate())
	if o.RequestedAmount == 0 {
		err = errors.AppendField(err, "RequestedAmount", errors.ErrAmount)
	}
	return err
}

// Marshal serializes the offer in its fixed layout:
//
//   maker | mintA | mintB | nonce (LE) | requestedAmount (LE) | authorityBump | offerBump
func (o *Offer) Marshal() ([]byte, error) {
	for _, a := range []custody.Address{o.Maker, o.MintA, o.MintB} {
		if len(a) != custody.AddressLength {
			return nil, errors.Wrapf(errors.ErrModel, "address length %d", len(a))
		}
	}
	raw := make([]byte, OfferSize)
	n := copy(raw, o.Maker)
	n += copy(raw[n:], o.MintA)
	n += copy(raw[n:], o.MintB)
	binary.LittleEndian.PutUint64(raw[n:], o.Nonce)
	binary.LittleEndian.PutUint64(raw[n+8:], o.RequestedAmount)
	raw[n+16] = o.AuthorityBump
	raw[n+17] = o.OfferBump
	return raw, nil
}

func (o *Offer) Unmarshal(raw []byte) error {
	if len(raw) != OfferSize {
		return errors.Wrapf(errors.ErrSchema, "offer length %d", len(raw))
	}
	const a = custody.AddressLength
	o.Maker = custody.Address(raw[:a]).Clone()
	o.MintA = custody.Address(raw[a : 2*a]).Clone()
	o.MintB = custody.Address(raw[2*a : 3*a]).Clone()
	o.Nonce = binary.LittleEndian.Uint64(raw[3*a:])
	o.RequestedAmount = binary.LittleEndian.Uint64(raw[3*a+8:])
	o.AuthorityBump = raw[3*a+16]
	o.OfferBump = raw[3*a+17]
	return nil
}

// Authority re-creates the address of the authority owning the vault of
// the offer stored at offerAddr.
func (o *Offer) Authority(offerAddr custody.Address) (custody.Address, error) {
	addr, err := custody.CreateDerivedAddress(ProgramID, []byte("authority"), offerAddr, []byte{o.AuthorityBump})
	if err != nil {
		return nil, errors.Wrap(errors.ErrState, "offer authority")
	}
	return addr, nil
}

// OfferAddress returns the address of the offer of maker created with the
// given nonce.
func OfferAddress(maker custody.Address, nonce uint64) (custody.Address, uint8, error) {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint64(raw, nonce)
	return custody.FindDerivedAddress(ProgramID, []byte("offer"), maker, raw)
}

// AuthorityAddress returns the address of the authority owning the vault
// of the offer.
func AuthorityAddress(offerAddr custody.Address) (custody.Address, uint8, error) {
	return custody.FindDerivedAddress(ProgramID, []byte("authority"), offerAddr)
}

// VaultAddress returns the address of the holding that keeps the deposit
// of the offer.
func VaultAddress(offerAddr custody.Address) (custody.Address, error) {
	addr, _, err := custody.FindDerivedAddress(ProgramID, []byte("vault"), offerAddr)
	return addr, err
}

// AsOffer will safely type-cast any value from Bucket.
func AsOffer(obj orm.Object) *Offer {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Offer)
}

// Bucket stores offers keyed by their address.
type Bucket struct {
	orm.Bucket
}

// NewBucket returns a bucket for offers, indexed by maker and both mints.
func NewBucket() Bucket {
	b := orm.NewBucket("offers", orm.NewSimpleObj(nil, new(Offer))).
		WithIndex("maker", idxMaker, false).
		WithIndex("mint_a", idxMintA, false).
		WithIndex("mint_b", idxMintB, false)
	return Bucket{Bucket: b}
}

// GetOffer loads the offer stored at addr or returns ErrNotFound.
func (b Bucket) GetOffer(db custody.ReadOnlyKVStore, addr custody.Address) (*Offer, error) {
	obj, err := b.Get(db, addr)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "offer %s", addr)
	}
	return AsOffer(obj), nil
}

func toOffer(obj orm.Object) (*Offer, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	o, ok := obj.Value().(*Offer)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "can only take index of Offer")
	}
	return o, nil
}

func idxMaker(obj orm.Object) ([]byte, error) {
	o, err := toOffer(obj)
	if err != nil {
		return nil, err
	}
	return o.Maker, nil
}

func idxMintA(obj orm.Object) ([]byte, error) {
	o, err := toOffer(obj)
	if err != nil {
		return nil, err
	}
	return o.MintA, nil
}

func idxMintB(obj orm.Object) ([]byte, error) {
	o, err := toOffer(obj)
	if err != nil {
		return nil, err
	}
	return o.MintB, nil
}
