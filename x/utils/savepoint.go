package utils

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Savepoint will isolate all data inside of the call,
// and commit/rollback to savepoint based on if error.
//
// A transaction that moves funds in several steps (reserve, record, token
// transfer) must either apply all of them or none.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ custody.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator,
// but you must call OnCheck/OnDeliver so it will be triggered
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on CheckTx
func (s Savepoint) OnCheck() Savepoint {
	return Savepoint{
		onCheck:   true,
		onDeliver: s.onDeliver,
	}
}

// OnDeliver returns a savepoint that will trigger on DeliverTx
func (s Savepoint) OnDeliver() Savepoint {
	return Savepoint{
		onCheck:   s.onCheck,
		onDeliver: true,
	}
}

// Check will optionally set a checkpoint
func (s Savepoint) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, db, tx)
	}
	cache, ok := cacheOf(db)
	if !ok {
		return next.Check(ctx, db, tx)
	}
	res, err := next.Check(ctx, cache, tx)
	if err := settle(cache, err); err != nil {
		return nil, err
	}
	return res, nil
}

// Deliver will optionally set a checkpoint
func (s Savepoint) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, db, tx)
	}
	cache, ok := cacheOf(db)
	if !ok {
		return next.Deliver(ctx, db, tx)
	}
	res, err := next.Deliver(ctx, cache, tx)
	if err := settle(cache, err); err != nil {
		return nil, err
	}
	return res, nil
}

func cacheOf(db custody.KVStore) (custody.KVCacheWrap, bool) {
	cdb, ok := db.(custody.CacheableKVStore)
	if !ok {
		return nil, false
	}
	return cdb.CacheWrap(), true
}

// settle discards the cache if the call failed, otherwise writes it.
func settle(cache custody.KVCacheWrap, callErr error) error {
	if callErr != nil {
		cache.Discard()
		return callErr
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}

// Atomic runs fn on a cache of db and writes the cache only if fn succeeds.
// Handlers use it for operations made of several steps, so that a failing
// step never leaves the earlier ones applied. A db that cannot be cache
// wrapped is passed through.
func Atomic(db custody.KVStore, fn func(custody.KVStore) error) error {
	cache, ok := cacheOf(db)
	if !ok {
		return fn(db)
	}
	return settle(cache, fn(cache))
}
