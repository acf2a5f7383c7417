package vault

import (
	"github.com/iov-one/custody/errors"
)

var (
	// ErrInsufficientUserBalance is returned when the user cannot pay the
	// reserves of a new vault.
	ErrInsufficientUserBalance = errors.Register(1100, "insufficient user balance")

	// ErrInsufficientVaultBalance is returned when closing an empty vault.
	ErrInsufficientVaultBalance = errors.Register(1101, "insufficient vault balance")
)
