package orm

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// ConsumeIterator will read all remaining data into an array and release
// the iterator.
func ConsumeIterator(itr custody.Iterator) ([]custody.Model, error) {
	defer itr.Release()

	var res []custody.Model
	for {
		key, value, err := itr.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, custody.Pair(key, value))
	}
}

func queryPrefix(db custody.ReadOnlyKVStore, prefix []byte) ([]custody.Model, error) {
	itr, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(itr)
}

// prefixRange turns a prefix into a (start, end) range. The end is the
// smallest key that is larger than all keys with the prefix, or nil if
// there is none.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return prefix, end[:i+1]
		}
	}
	return prefix, nil
}
