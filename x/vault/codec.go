package vault

import "github.com/gogo/protobuf/proto"

// Method-less copies of the message structs. The proto package would call
// back into a Marshal method, so encoding goes through these.

type initializeMsgPB InitializeMsg

func (m *initializeMsgPB) Reset()         { *m = initializeMsgPB{} }
func (m *initializeMsgPB) String() string { return proto.CompactTextString(m) }
func (*initializeMsgPB) ProtoMessage()    {}

type depositMsgPB DepositMsg

func (m *depositMsgPB) Reset()         { *m = depositMsgPB{} }
func (m *depositMsgPB) String() string { return proto.CompactTextString(m) }
func (*depositMsgPB) ProtoMessage()    {}

type withdrawMsgPB WithdrawMsg

func (m *withdrawMsgPB) Reset()         { *m = withdrawMsgPB{} }
func (m *withdrawMsgPB) String() string { return proto.CompactTextString(m) }
func (*withdrawMsgPB) ProtoMessage()    {}

type closeMsgPB CloseMsg

func (m *closeMsgPB) Reset()         { *m = closeMsgPB{} }
func (m *closeMsgPB) String() string { return proto.CompactTextString(m) }
func (*closeMsgPB) ProtoMessage()    {}
