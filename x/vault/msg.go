package vault

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

const (
	pathInitializeMsg = "vault/initialize"
	pathDepositMsg    = "vault/deposit"
	pathWithdrawMsg   = "vault/withdraw"
	pathCloseMsg      = "vault/close"
)

// InitializeMsg creates the vault of User.
type InitializeMsg struct {
	User custody.Address `protobuf:"bytes,1,opt,name=user,proto3"`
}

var _ custody.Msg = (*InitializeMsg)(nil)

func (InitializeMsg) Path() string { return pathInitializeMsg }

func (m *InitializeMsg) Validate() error {
	return errors.Field("User", m.User.Validate(), "")
}

func (m *InitializeMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*initializeMsgPB)(m))
}

func (m *InitializeMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*initializeMsgPB)(m))
}

// DepositMsg moves Amount lamports from User into the custody account.
type DepositMsg struct {
	User   custody.Address `protobuf:"bytes,1,opt,name=user,proto3"`
	Amount uint64          `protobuf:"varint,2,opt,name=amount,proto3"`
}

var _ custody.Msg = (*DepositMsg)(nil)

func (DepositMsg) Path() string { return pathDepositMsg }

func (m *DepositMsg) Validate() error {
	return validateAmount(m.User, m.Amount)
}

func (m *DepositMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*depositMsgPB)(m))
}

func (m *DepositMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*depositMsgPB)(m))
}

// WithdrawMsg moves Amount lamports from the custody account to User.
type WithdrawMsg struct {
	User   custody.Address `protobuf:"bytes,1,opt,name=user,proto3"`
	Amount uint64          `protobuf:"varint,2,opt,name=amount,proto3"`
}

var _ custody.Msg = (*WithdrawMsg)(nil)

func (WithdrawMsg) Path() string { return pathWithdrawMsg }

func (m *WithdrawMsg) Validate() error {
	return validateAmount(m.User, m.Amount)
}

func (m *WithdrawMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*withdrawMsgPB)(m))
}

func (m *WithdrawMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*withdrawMsgPB)(m))
}

// CloseMsg empties the custody account and removes the vault of User.
type CloseMsg struct {
	User custody.Address `protobuf:"bytes,1,opt,name=user,proto3"`
}

var _ custody.Msg = (*CloseMsg)(nil)

func (CloseMsg) Path() string { return pathCloseMsg }

func (m *CloseMsg) Validate() error {
	return errors.Field("User", m.User.Validate(), "")
}

func (m *CloseMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*closeMsgPB)(m))
}

func (m *CloseMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*closeMsgPB)(m))
}

func validateAmount(user custody.Address, amount uint64) error {
	err := errors.AppendField(nil, "User", user.Validate())
	if amount == 0 {
		err = errors.AppendField(err, "Amount", errors.ErrAmount)
	}
	return err
}
