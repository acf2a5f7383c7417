package sigs

import (
	"github.com/iov-one/custody/errors"
)

// ErrInvalidSequence is returned when a signature sequence does not match
// the next expected sequence of the signer.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
