/*
Package errors implements the coded errors used across the custody ledger.

Every failure returned by a handler should wrap one of the root errors declared
in this package (or one registered by an extension with Register). The root
error determines the ABCI code returned to the client, while the wrapping
layers only add context.

	if balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "need %d, have %d", amount, balance)
	}

Use Is to test an error kind, independent of how many times it was wrapped.

	if errors.ErrNotFound.Is(err) { ... }

The first Wrap attaches a stack trace. Format the error with %+v to print it.
*/
package errors
