package sigs

import (
	"context"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module can add a signer.
func withSigners(ctx custody.Context, signers []custody.Condition) custody.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate gets/sets permissions on the given context key.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the conditions of all valid signatures.
func (a Authenticate) GetConditions(ctx custody.Context) []custody.Condition {
	val, _ := ctx.Value(contextKeySigners).([]custody.Condition)
	return val
}

// HasAddress returns true iff this address is in GetConditions.
func (a Authenticate) HasAddress(ctx custody.Context, addr custody.Address) bool {
	return x.HasConditionAddress(a.GetConditions(ctx), addr)
}
