package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const (
	pathTransferMsg      = "token/transfer"
	pathCreateHoldingMsg = "token/create_holding"
)

// TransferMsg moves assets between two holdings of the same mint.
type TransferMsg struct {
	Source      custody.Address `protobuf:"bytes,1,opt,name=source,proto3"`
	Destination custody.Address `protobuf:"bytes,2,opt,name=destination,proto3"`
	Amount      uint64          `protobuf:"varint,3,opt,name=amount,proto3"`
}

var _ custody.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (m *TransferMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Source", m.Source.Validate())
	err = errors.AppendField(err, "Destination", m.Destination.Validate())
	if m.Amount == 0 {
		err = errors.AppendField(err, "Amount", errors.ErrAmount)
	}
	return err
}

func (m *TransferMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*transferMsgPB)(m))
}

func (m *TransferMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*transferMsgPB)(m))
}

// CreateHoldingMsg creates the associated holding of Owner for Mint. The
// payer funds the storage reserve. Creating an existing holding is a no-op.
type CreateHoldingMsg struct {
	Payer custody.Address `protobuf:"bytes,1,opt,name=payer,proto3"`
	Owner custody.Address `protobuf:"bytes,2,opt,name=owner,proto3"`
	Mint  custody.Address `protobuf:"bytes,3,opt,name=mint,proto3"`
}

var _ custody.Msg = (*CreateHoldingMsg)(nil)

func (CreateHoldingMsg) Path() string {
	return pathCreateHoldingMsg
}

func (m *CreateHoldingMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Payer", m.Payer.Validate())
	err = errors.AppendField(err, "Owner", m.Owner.Validate())
	err = errors.AppendField(err, "Mint", m.Mint.Validate())
	return err
}

func (m *CreateHoldingMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createHoldingMsgPB)(m))
}

func (m *CreateHoldingMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*createHoldingMsgPB)(m))
}
