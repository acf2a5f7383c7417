package custodytest

import (
	"github.com/iov-one/custody"
)

// Tx represents a custody transaction with a message. This implementation
// is intended to be used only in tests and cannot be serialized.
type Tx struct {
	Msg custody.Msg
	Err error
}

var _ custody.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (custody.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Unmarshal([]byte) error {
	panic("not implemented")
}

func (tx *Tx) Marshal() ([]byte, error) {
	panic("not implemented")
}

// Msg represents a message that can be used in tests to route a
// transaction to a handler.
type Msg struct {
	// RoutePath is the value returned by Path.
	RoutePath string
	// Serialized is the raw data returned by Marshal.
	Serialized []byte
	// Err is returned by validation and serialization methods.
	Err error
}

var _ custody.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}
