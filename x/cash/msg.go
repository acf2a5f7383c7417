package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const pathSendMsg = "cash/send"

// SendMsg moves lamports between two wallets. The source must sign.
type SendMsg struct {
	Source      custody.Address `protobuf:"bytes,1,opt,name=source,proto3"`
	Destination custody.Address `protobuf:"bytes,2,opt,name=destination,proto3"`
	Amount      uint64          `protobuf:"varint,3,opt,name=amount,proto3"`
}

var _ custody.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message.
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible.
func (m *SendMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Source", m.Source.Validate())
	err = errors.AppendField(err, "Destination", m.Destination.Validate())
	if m.Amount == 0 {
		err = errors.AppendField(err, "Amount", errors.ErrAmount)
	}
	return err
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*sendMsgPB)(m))
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*sendMsgPB)(m))
}
