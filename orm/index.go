package orm

import (
	"bytes"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Index is a secondary index of a bucket.
type Index interface {
	custody.QueryHandler

	// Update updates the index. It should be called when any of the
	// bucket entities has changed in the store.
	//
	// prev == nil means insert
	// save == nil means delete
	// both == nil is error
	// if both != nil and prev.Key() != save.Key() this is an error
	Update(db custody.KVStore, prev Object, save Object) error

	// GetAt returns the keys of all objects indexed under given value.
	GetAt(db custody.ReadOnlyKVStore, value []byte) ([][]byte, error)
}

const indexPrefix = "_i."

// compactIndex stores all references indexed under a value as a sorted set,
// serialized and stored under single key. Unique indexes store a single
// reference only.
type compactIndex struct {
	name   string
	id     []byte
	unique bool
	index  Indexer
	refKey func([]byte) []byte
}

var _ Index = compactIndex{}

// NewIndex constructs an index.
// Indexer calculates the index for an object, a nil index value means the
// object is not indexed.
// unique enforces a unique constraint on the index.
// refKey calculates the absolute dbkey for a ref.
func NewIndex(name string, indexer Indexer, unique bool, refKey func([]byte) []byte) Index {
	return compactIndex{
		name:   name,
		id:     []byte(indexPrefix + name + ":"),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

func (i compactIndex) indexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update handles updating the reference to the object in the secondary
// index.
func (i compactIndex) Update(db custody.KVStore, prev Object, save Object) error {
	switch {
	case prev == nil && save == nil:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case prev == nil:
		key, err := i.index(save)
		if err != nil || key == nil {
			return err
		}
		return i.insert(db, key, save.Key())
	case save == nil:
		key, err := i.index(prev)
		if err != nil || key == nil {
			return err
		}
		return i.remove(db, key, prev.Key())
	default:
		return i.move(db, prev, save)
	}
}

func (i compactIndex) move(db custody.KVStore, prev Object, save Object) error {
	if !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrHuman, "cannot modify the primary key of an object")
	}
	oldKey, err := i.index(prev)
	if err != nil {
		return err
	}
	newKey, err := i.index(save)
	if err != nil {
		return err
	}
	if bytes.Equal(oldKey, newKey) {
		return nil
	}
	if oldKey != nil {
		if err := i.remove(db, oldKey, prev.Key()); err != nil {
			return err
		}
	}
	if newKey != nil {
		return i.insert(db, newKey, save.Key())
	}
	return nil
}

func (i compactIndex) insert(db custody.KVStore, key []byte, pk []byte) error {
	dbKey := i.indexKey(key)
	cur, err := db.Get(dbKey)
	if err != nil {
		return err
	}

	if i.unique {
		if cur != nil {
			return errors.Wrapf(errors.ErrDuplicate, "unique index %s", i.name)
		}
		return db.Set(dbKey, pk)
	}

	var refs MultiRef
	if err := refs.Unmarshal(cur); err != nil {
		return err
	}
	if err := refs.Add(pk); err != nil {
		return err
	}
	raw, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(dbKey, raw)
}

func (i compactIndex) remove(db custody.KVStore, key []byte, pk []byte) error {
	dbKey := i.indexKey(key)
	cur, err := db.Get(dbKey)
	if err != nil {
		return err
	}
	if cur == nil {
		return errors.Wrapf(errors.ErrNotFound, "index %s", i.name)
	}

	if i.unique {
		if !bytes.Equal(cur, pk) {
			return errors.Wrapf(errors.ErrState, "index %s points to another object", i.name)
		}
		return db.Delete(dbKey)
	}

	var refs MultiRef
	if err := refs.Unmarshal(cur); err != nil {
		return err
	}
	if err := refs.Remove(pk); err != nil {
		return err
	}
	if len(refs.Refs) == 0 {
		return db.Delete(dbKey)
	}
	raw, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(dbKey, raw)
}

// GetAt returns a list of all pk at that index, nil if none.
func (i compactIndex) GetAt(db custody.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	cur, err := db.Get(i.indexKey(value))
	if err != nil || cur == nil {
		return nil, err
	}
	if i.unique {
		return [][]byte{cur}, nil
	}
	var refs MultiRef
	if err := refs.Unmarshal(cur); err != nil {
		return nil, err
	}
	return refs.Refs, nil
}

// Query handles queries from the QueryRouter. The referenced objects are
// returned.
func (i compactIndex) Query(db custody.ReadOnlyKVStore, mod string, data []byte) ([]custody.Model, error) {
	switch mod {
	case custody.KeyQueryMod:
		refs, err := i.GetAt(db, data)
		if err != nil {
			return nil, err
		}
		return i.loadRefs(db, refs)
	case custody.PrefixQueryMod:
		models, err := queryPrefix(db, i.indexKey(data))
		if err != nil {
			return nil, err
		}
		var refs [][]byte
		for _, m := range models {
			if i.unique {
				refs = append(refs, m.Value)
				continue
			}
			var mr MultiRef
			if err := mr.Unmarshal(m.Value); err != nil {
				return nil, err
			}
			refs = append(refs, mr.Refs...)
		}
		return i.loadRefs(db, refs)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

func (i compactIndex) loadRefs(db custody.ReadOnlyKVStore, refs [][]byte) ([]custody.Model, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	res := make([]custody.Model, len(refs))
	for j, ref := range refs {
		key := i.refKey(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		res[j] = custody.Pair(key, value)
	}
	return res, nil
}
