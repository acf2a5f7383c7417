package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const (
	pathCreateOfferMsg  = "escrow/create"
	pathFulfillOfferMsg = "escrow/fulfill"
	pathCancelOfferMsg  = "escrow/cancel"
)

// CreateOfferMsg locks Deposit of MintA and asks for Receive of MintB.
type CreateOfferMsg struct {
	Maker   custody.Address `protobuf:"bytes,1,opt,name=maker,proto3"`
	MintA   custody.Address `protobuf:"bytes,2,opt,name=mint_a,json=mintA,proto3"`
	MintB   custody.Address `protobuf:"bytes,3,opt,name=mint_b,json=mintB,proto3"`
	Nonce   uint64          `protobuf:"varint,4,opt,name=nonce,proto3"`
	Deposit uint64          `protobuf:"varint,5,opt,name=deposit,proto3"`
	Receive uint64          `protobuf:"varint,6,opt,name=receive,proto3"`
}

var _ custody.Msg = (*CreateOfferMsg)(nil)

func (CreateOfferMsg) Path() string {
	return pathCreateOfferMsg
}

func (m *CreateOfferMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Maker", m.Maker.Validate())
	err = errors.AppendField(err, "MintA", m.MintA.Validate())
	err = errors.AppendField(err, "MintB", m.MintB.Validate())
	if m.MintA.Equals(m.MintB) {
		err = errors.Append(err, errors.Field("MintB", errors.ErrInput, "same as MintA"))
	}
	if m.Deposit == 0 {
		err = errors.AppendField(err, "Deposit", errors.ErrAmount)
	}
	if m.Receive == 0 {
		err = errors.AppendField(err, "Receive", errors.ErrAmount)
	}
	return err
}

func (m *CreateOfferMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createOfferMsgPB)(m))
}

func (m *CreateOfferMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*createOfferMsgPB)(m))
}

// FulfillOfferMsg pays the requested amount to the maker of Offer and
// releases its vault to the taker.
type FulfillOfferMsg struct {
	Taker custody.Address `protobuf:"bytes,1,opt,name=taker,proto3"`
	Offer custody.Address `protobuf:"bytes,2,opt,name=offer,proto3"`
}

var _ custody.Msg = (*FulfillOfferMsg)(nil)

func (FulfillOfferMsg) Path() string {
	return pathFulfillOfferMsg
}

func (m *FulfillOfferMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Taker", m.Taker.Validate())
	err = errors.AppendField(err, "Offer", m.Offer.Validate())
	return err
}

func (m *FulfillOfferMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*fulfillOfferMsgPB)(m))
}

func (m *FulfillOfferMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*fulfillOfferMsgPB)(m))
}

// CancelOfferMsg returns the vault of Offer to its maker.
type CancelOfferMsg struct {
	Maker custody.Address `protobuf:"bytes,1,opt,name=maker,proto3"`
	Offer custody.Address `protobuf:"bytes,2,opt,name=offer,proto3"`
}

var _ custody.Msg = (*CancelOfferMsg)(nil)

func (CancelOfferMsg) Path() string {
	return pathCancelOfferMsg
}

func (m *CancelOfferMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Maker", m.Maker.Validate())
	err = errors.AppendField(err, "Offer", m.Offer.Validate())
	return err
}

func (m *CancelOfferMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*cancelOfferMsgPB)(m))
}

func (m *CancelOfferMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*cancelOfferMsgPB)(m))
}
