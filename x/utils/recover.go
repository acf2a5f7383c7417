package utils

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Recovery turns a panic raised while processing a transaction into an
// ErrPanic error. The error names the path of the message that was being
// handled, so a panicking escrow or vault handler can be told apart in the
// logs. Clients only ever see the redacted form of the error.
//
// Recovery must be the outermost decorator after logging, so that a panic
// in any other decorator is caught as well.
type Recovery struct{}

var _ custody.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (r Recovery) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (_ *custody.CheckResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = panicError(p, tx)
		}
	}()
	return next.Check(ctx, db, tx)
}

func (r Recovery) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (_ *custody.DeliverResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = panicError(p, tx)
		}
	}()
	return next.Deliver(ctx, db, tx)
}

// panicError wraps the recovered value in ErrPanic and adds the path of
// the message when the transaction carries a readable one.
func panicError(p interface{}, tx custody.Tx) error {
	err := errors.Wrapf(errors.ErrPanic, "%v", p)
	if tx == nil {
		return err
	}
	msg, e := tx.GetMsg()
	if e != nil || msg == nil {
		return err
	}
	return errors.Wrapf(err, "msg %s", msg.Path())
}
