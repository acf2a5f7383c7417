/*
Package x contains some standard extensions and helpers shared by all
extensions of the custody ledger.

The subpackages implement the actual business logic, while this package
defines how they share information about who authorized a transaction.
*/
package x

import (
	"github.com/iov-one/custody"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of handlers,
// so we can plug in another authentication system, rather than hardcoding
// x/sigs for all extensions.
type Authenticator interface {
	// GetConditions reveals all Conditions fulfilled, you may want
	// GetAddresses helper.
	GetConditions(custody.Context) []custody.Condition

	// HasAddress checks if any condition matches this address.
	HasAddress(custody.Context, custody.Address) bool
}

// MultiAuth chains together many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetConditions combines all Conditions from all Authenticators.
func (m MultiAuth) GetConditions(ctx custody.Context) []custody.Condition {
	var res []custody.Condition
	for _, impl := range m.impls {
		res = append(res, impl.GetConditions(ctx)...)
	}
	return res
}

// HasAddress returns true iff any Authenticator support this.
func (m MultiAuth) HasAddress(ctx custody.Context, addr custody.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// GetAddresses wraps the GetConditions method of any Authenticator.
func GetAddresses(ctx custody.Context, auth Authenticator) []custody.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]custody.Address, 0, len(perms))
	for _, p := range perms {
		if a := p.Address(); a != nil {
			addrs = append(addrs, a)
		}
	}
	return addrs
}

// MainSigner returns the first permission if any, otherwise nil.
func MainSigner(ctx custody.Context, auth Authenticator) custody.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// HasAllAddresses returns true if all elements in required are also in
// context.
func HasAllAddresses(ctx custody.Context, auth Authenticator, required []custody.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// HasConditionAddress is the HasAddress implementation for an
// authenticator that only knows its list of conditions.
func HasConditionAddress(conds []custody.Condition, addr custody.Address) bool {
	for _, c := range conds {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
