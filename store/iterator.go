package store

import (
	"bytes"

	"github.com/iov-one/custody/errors"
)

// mergeIterator combines the items cached in a btree with the results of the
// iterator of the backing store. Cached items shadow the parent values with
// the same key and deleted items hide them.
type mergeIterator struct {
	cached  []keyer
	parent  Iterator
	reverse bool

	// one item lookahead of the parent iterator
	pKey, pValue []byte
	pDone        bool
	pErr         error
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(cached []keyer, parent Iterator, reverse bool) *mergeIterator {
	it := &mergeIterator{
		cached:  cached,
		parent:  parent,
		reverse: reverse,
	}
	it.advanceParent()
	return it
}

func (it *mergeIterator) advanceParent() {
	if it.pDone {
		return
	}
	it.pKey, it.pValue, it.pErr = it.parent.Next()
	if it.pErr != nil {
		it.pDone = true
		if errors.ErrIteratorDone.Is(it.pErr) {
			it.pErr = nil
		}
	}
}

// before returns true if key a must be returned before key b.
func (it *mergeIterator) before(a, b []byte) bool {
	if it.reverse {
		return bytes.Compare(a, b) > 0
	}
	return bytes.Compare(a, b) < 0
}

// Next returns the next key-value pair, or ErrIteratorDone.
func (it *mergeIterator) Next() ([]byte, []byte, error) {
	for {
		if it.pErr != nil {
			return nil, nil, it.pErr
		}

		if len(it.cached) == 0 {
			if it.pDone {
				return nil, nil, errors.ErrIteratorDone
			}
			key, value := it.pKey, it.pValue
			it.advanceParent()
			return key, value, nil
		}

		item := it.cached[0]
		if !it.pDone && it.before(it.pKey, item.Key()) {
			key, value := it.pKey, it.pValue
			it.advanceParent()
			return key, value, nil
		}

		// The cached item goes first. When both have the same key,
		// the cached item shadows the parent one.
		if !it.pDone && bytes.Equal(it.pKey, item.Key()) {
			it.advanceParent()
		}
		it.cached = it.cached[1:]
		if set, ok := item.(setItem); ok {
			return set.key, set.value, nil
		}
		// deleted item, skip it
	}
}

// Release releases the parent iterator.
func (it *mergeIterator) Release() {
	it.parent.Release()
	it.cached = nil
}
