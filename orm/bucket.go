/*
Package orm provides an easy to use db wrapper.

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* It has a primary index (the object key) and may possess secondary indexes.
* Easy queries for one and iteration.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is a generic holder that stores data as well as references to
// secondary indexes and sequences.
//
// This is a generic building block that should generally be embedded in a
// type-safe wrapper to ensure all data is the same type.
type Bucket struct {
	name    string
	prefix  []byte
	proto   Cloneable
	indexes map[string]Index
}

var _ custody.QueryHandler = Bucket{}

// NewBucket creates a bucket to store data.
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Name returns the name of the bucket.
func (b Bucket) Name() string {
	return b.name
}

// Register registers this Bucket and all indexes. You can define a name
// here for queries, which is different than the bucket name used to prefix
// the data.
func (b Bucket) Register(name string, r custody.QueryRouter) {
	if name == "" {
		name = b.name
	}
	root := "/" + name
	r.Register(root, b)
	for iname, idx := range b.indexes {
		r.Register(root+"/"+iname, idx)
	}
}

// Query handles queries from the QueryRouter.
func (b Bucket) Query(db custody.ReadOnlyKVStore, mod string, data []byte) ([]custody.Model, error) {
	switch mod {
	case custody.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil || value == nil {
			return nil, err
		}
		return []custody.Model{{Key: key, Value: value}}, nil
	case custody.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

// DBKey is the full key we store in the db, including prefix. We copy into
// a new array rather than use append, as we don't want consecutive calls to
// overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get one element.
func (b Bucket) Get(db custody.ReadOnlyKVStore, key []byte) (Object, error) {
	bz, err := db.Get(b.DBKey(key))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if bz == nil {
		return nil, nil
	}
	return b.Parse(key, bz)
}

// Has returns true if an element is stored under the key.
func (b Bucket) Has(db custody.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Parse takes a key and value data (custody.Persistent) and reconstructs the
// data contained in the Object.
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, errors.Wrapf(err, "cannot parse %s", b.name)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save will write a model, it must be of the same type as the proto value
// in the bucket.
func (b Bucket) Save(db custody.KVStore, model Object) error {
	if err := model.Validate(); err != nil {
		return errors.Wrapf(err, "invalid %s", b.name)
	}
	bz, err := model.Value().Marshal()
	if err != nil {
		return err
	}
	if err := b.updateIndexes(db, model.Key(), model); err != nil {
		return err
	}
	return db.Set(b.DBKey(model.Key()), bz)
}

// Delete will remove the value at a key.
func (b Bucket) Delete(db custody.KVStore, key []byte) error {
	if err := b.updateIndexes(db, key, nil); err != nil {
		return err
	}
	return db.Delete(b.DBKey(key))
}

func (b Bucket) updateIndexes(db custody.KVStore, key []byte, model Object) error {
	if len(b.indexes) == 0 {
		return nil
	}
	prev, err := b.Get(db, key)
	if err != nil {
		return err
	}
	if prev == nil && model == nil {
		return nil
	}
	for _, idx := range b.indexes {
		if err := idx.Update(db, prev, model); err != nil {
			return err
		}
	}
	return nil
}

// WithIndex returns a copy of this bucket with given index, panics if it
// an index with that name is already registered.
//
// Designed to be chained.
func (b Bucket) WithIndex(name string, indexer Indexer, unique bool) Bucket {
	if _, ok := b.indexes[name]; ok {
		panic(fmt.Sprintf("Index %s registered twice", name))
	}
	add := NewIndex(b.name+"_"+name, indexer, unique, b.DBKey)
	indexes := make(map[string]Index, len(b.indexes)+1)
	for n, i := range b.indexes {
		indexes[n] = i
	}
	indexes[name] = add
	b.indexes = indexes
	return b
}

// GetIndexed queries the named index for the given key.
func (b Bucket) GetIndexed(db custody.ReadOnlyKVStore, name string, key []byte) ([]Object, error) {
	idx, ok := b.indexes[name]
	if !ok {
		return nil, errors.Wrap(ErrInvalidIndex, name)
	}
	refs, err := idx.GetAt(db, key)
	if err != nil {
		return nil, err
	}
	objs := make([]Object, 0, len(refs))
	for _, key := range refs {
		obj, err := b.Get(db, key)
		if err != nil {
			return nil, err
		}
		if obj != nil {
			objs = append(objs, obj)
		}
	}
	return objs, nil
}
