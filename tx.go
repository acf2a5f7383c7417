package custody

import (
	"reflect"

	"github.com/iov-one/custody/errors"
)

// Marshaller is anything that can be represented in binary.
//
// Marshal may validate the data before serializing it and unless you
// previously validated the struct, errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal.
//
// This is separated from Marshal, as this almost always requires a pointer,
// and functions that only need to marshal bytes can use the Marshaller
// interface to access non-pointers.
//
// As with Marshaller, this may do internal validation on the data and errors
// should be expected.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Msg is message for the blockchain to take an action (Make a state
// transition). It is just the request, and must be validated by the
// Handlers. All authentication information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Path returns the path of the message, which is used to route it to
	// the right handler.
	Path() string

	// Validate performs a sanity checks on this message. It returns an
	// error if at least one test does not pass and the message is not
	// valid.
	Validate() error
}

// Tx represent the data sent from the user to the chain. It includes the
// actual message, along with information needed to authenticate the sender
// (cryptographic signatures), and anything else needed to pass through
// middleware.
//
// Each Application must define their own tx type, which embeds all the
// middlewares that we wish to use. auth.SignedTx and token.FeeTx are common
// interfaces that many apps will wish to support.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// TxDecoder can parse bytes into a Tx.
type TxDecoder func(txBytes []byte) (Tx, error)

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning message validation method is called.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return assignMsg(msg, destination)
}

// assignMsg copies msg into destination, which must be a pointer either to
// a value of the message type or to the message struct it points to.
func assignMsg(msg Msg, destination interface{}) error {
	dst := reflect.ValueOf(destination)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return errors.Wrap(errors.ErrHuman, "destination must be a non nil pointer")
	}
	src := reflect.ValueOf(msg)
	target := dst.Elem()
	switch {
	case src.Type().AssignableTo(target.Type()):
		target.Set(src)
	case src.Kind() == reflect.Ptr && src.Elem().Type().AssignableTo(target.Type()):
		target.Set(src.Elem())
	default:
		return errors.Wrapf(errors.ErrType, "want %s message, got %T", target.Type(), msg)
	}
	return nil
}
