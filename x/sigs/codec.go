package sigs

import "github.com/gogo/protobuf/proto"

// Method-less copies of the persisted structs for the proto package.

type userDataPB UserData

func (m *userDataPB) Reset()         { *m = userDataPB{} }
func (m *userDataPB) String() string { return proto.CompactTextString(m) }
func (*userDataPB) ProtoMessage()    {}

type stdSignaturePB StdSignature

func (m *stdSignaturePB) Reset()         { *m = stdSignaturePB{} }
func (m *stdSignaturePB) String() string { return proto.CompactTextString(m) }
func (*stdSignaturePB) ProtoMessage()    {}
