package escrow

import (
	"context"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/x"
)

type contextKey int // local to the escrow module

const (
	contextKeyAuthority contextKey = iota
)

// withAuthority is private, so that only this extension can act as the
// authority of an offer.
func withAuthority(ctx custody.Context, authority custody.Address) custody.Context {
	return context.WithValue(ctx, contextKeyAuthority, AuthorityCondition(authority))
}

// AuthorityCondition returns the condition vouching for an offer authority.
func AuthorityCondition(authority custody.Address) custody.Condition {
	return custody.NewCondition("escrow", "authority", authority)
}

// Authenticate exposes the offer authority set by this extension.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx custody.Context) []custody.Condition {
	val, ok := ctx.Value(contextKeyAuthority).(custody.Condition)
	if !ok {
		return nil
	}
	return []custody.Condition{val}
}

func (a Authenticate) HasAddress(ctx custody.Context, addr custody.Address) bool {
	return x.HasConditionAddress(a.GetConditions(ctx), addr)
}
