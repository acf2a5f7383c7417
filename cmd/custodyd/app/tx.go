package custodyd

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/escrow"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/token"
	"github.com/iov-one/custody/x/vault"
)

// messages lists every message the application understands, by path.
var messages = map[string]func() custody.Msg{}

func registerMsg(fns ...func() custody.Msg) {
	for _, fn := range fns {
		path := fn().Path()
		if _, ok := messages[path]; ok {
			panic("message registered twice: " + path)
		}
		messages[path] = fn
	}
}

func init() {
	registerMsg(
		func() custody.Msg { return new(cash.SendMsg) },
		func() custody.Msg { return new(token.TransferMsg) },
		func() custody.Msg { return new(token.CreateHoldingMsg) },
		func() custody.Msg { return new(escrow.CreateOfferMsg) },
		func() custody.Msg { return new(escrow.FulfillOfferMsg) },
		func() custody.Msg { return new(escrow.CancelOfferMsg) },
		func() custody.Msg { return new(vault.InitializeMsg) },
		func() custody.Msg { return new(vault.DepositMsg) },
		func() custody.Msg { return new(vault.WithdrawMsg) },
		func() custody.Msg { return new(vault.CloseMsg) },
	)
}

// Tx is the transaction format of the application: a routed message with
// the signatures of the key holders that authorize it.
type Tx struct {
	MsgPath    string               `protobuf:"bytes,1,opt,name=msg_path,json=msgPath,proto3"`
	MsgBytes   []byte               `protobuf:"bytes,2,opt,name=msg_bytes,json=msgBytes,proto3"`
	Signatures []*sigs.StdSignature `protobuf:"bytes,3,rep,name=signatures,proto3"`
}

// make sure tx fulfills all interfaces
var _ custody.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx wraps the message in an unsigned transaction.
func NewTx(msg custody.Msg) (*Tx, error) {
	raw, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal msg")
	}
	return &Tx{MsgPath: msg.Path(), MsgBytes: raw}, nil
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (custody.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(errors.ErrSchema, err.Error())
	}
	return tx, nil
}

// GetMsg decodes the message registered for the transaction path.
func (tx *Tx) GetMsg() (custody.Msg, error) {
	fn, ok := messages[tx.MsgPath]
	if !ok {
		return nil, errors.Wrapf(errors.ErrMsg, "unknown message path %q", tx.MsgPath)
	}
	msg := fn()
	if err := msg.Unmarshal(tx.MsgBytes); err != nil {
		return nil, errors.Wrapf(errors.ErrSchema, "decode %s: %s", tx.MsgPath, err)
	}
	return msg, nil
}

// GetSignatures returns the signatures on the tx.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign: the transaction without any
// signature.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{MsgPath: tx.MsgPath, MsgBytes: tx.MsgBytes}
	return unsigned.Marshal()
}

func (tx *Tx) Marshal() ([]byte, error) {
	return proto.Marshal((*txPB)(tx))
}

func (tx *Tx) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*txPB)(tx))
}

// txPB lets the proto package encode a Tx without calling back into
// Tx.Marshal.
type txPB Tx

func (tx *txPB) Reset()         { *tx = txPB{} }
func (tx *txPB) String() string { return proto.CompactTextString(tx) }
func (*txPB) ProtoMessage()     {}
