package custody

import (
	"encoding/json"
)

// Handler is a core engine that can process a few specific messages. This
// could represent "escrow" or "vault", which process a few types of messages
// each.
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction. It is its own
// interface to allow better type controls in the next arguments in
// Decorator.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality like
// authentication, or fee-handling, to many Handlers.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register your handler, the setup logic is
// pretty much the same for any Router.
type Registry interface {
	Handle(path string, h Handler)
}

// Options are the app state json options passed in genesis.
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key, and parses the json
// into the given obj. Returns nil if it is not there (eg. just uses zero
// values).
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Initializer implementations actually handle the parsing of the genesis
// state for one extension.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers lets you initialize many extensions with one function.
func ChainInitializers(inits ...Initializer) Initializer {
	return MultiInitializer(inits)
}

// MultiInitializer calls all initializers in turn.
type MultiInitializer []Initializer

var _ Initializer = MultiInitializer(nil)

// FromGenesis calls all initializers in order, aborting on the first error.
func (m MultiInitializer) FromGenesis(opts Options, kv KVStore) error {
	for _, i := range m {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
