package escrow

import "github.com/gogo/protobuf/proto"

// The message types marshal themselves, which the proto package would call
// back into. Encoding goes through these method-less copies of the structs.

type createOfferMsgPB CreateOfferMsg

func (m *createOfferMsgPB) Reset()         { *m = createOfferMsgPB{} }
func (m *createOfferMsgPB) String() string { return proto.CompactTextString(m) }
func (*createOfferMsgPB) ProtoMessage()    {}

type fulfillOfferMsgPB FulfillOfferMsg

func (m *fulfillOfferMsgPB) Reset()         { *m = fulfillOfferMsgPB{} }
func (m *fulfillOfferMsgPB) String() string { return proto.CompactTextString(m) }
func (*fulfillOfferMsgPB) ProtoMessage()    {}

type cancelOfferMsgPB CancelOfferMsg

func (m *cancelOfferMsgPB) Reset()         { *m = cancelOfferMsgPB{} }
func (m *cancelOfferMsgPB) String() string { return proto.CompactTextString(m) }
func (*cancelOfferMsgPB) ProtoMessage()    {}
