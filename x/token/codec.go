package token

import "github.com/gogo/protobuf/proto"

// Method-less copies of the message structs. The proto package would call
// back into a Marshal method, so encoding goes through these.

type transferMsgPB TransferMsg

func (m *transferMsgPB) Reset()         { *m = transferMsgPB{} }
func (m *transferMsgPB) String() string { return proto.CompactTextString(m) }
func (*transferMsgPB) ProtoMessage()    {}

type createHoldingMsgPB CreateHoldingMsg

func (m *createHoldingMsgPB) Reset()         { *m = createHoldingMsgPB{} }
func (m *createHoldingMsgPB) String() string { return proto.CompactTextString(m) }
func (*createHoldingMsgPB) ProtoMessage()    {}
