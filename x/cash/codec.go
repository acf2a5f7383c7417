package cash

import "github.com/gogo/protobuf/proto"

// Method-less copies of the message structs. The proto package would call
// back into a Marshal method, so encoding goes through these.

type sendMsgPB SendMsg

func (m *sendMsgPB) Reset()         { *m = sendMsgPB{} }
func (m *sendMsgPB) String() string { return proto.CompactTextString(m) }
func (*sendMsgPB) ProtoMessage()    {}

type configurationPB Configuration

func (m *configurationPB) Reset()         { *m = configurationPB{} }
func (m *configurationPB) String() string { return proto.CompactTextString(m) }
func (*configurationPB) ProtoMessage()    {}
