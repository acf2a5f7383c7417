package custody

// ReadOnlyKVStore is a simple interface to query data.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist. Panics on nil key.
	Get(key []byte) ([]byte, error)

	// Has checks if a key exists. Panics on nil key.
	Has(key []byte) (bool, error)

	// Iterator over a domain of keys in ascending order. End is
	// exclusive. Start must be less than end, or the Iterator is
	// invalid. A nil start or end means no limit on that side.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator over a domain of keys in descending order. End is
	// exclusive.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is a minimal interface for writing, unifying KVStore and Batch.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is a simple interface to get/set data.
//
// For simplicity, we require all backing stores to implement this interface.
// They may internally optimize various operations, but this is all that is
// needed for the business logic.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	// NewBatch returns a batch that can write multiple ops atomically.
	NewBatch() Batch
}

// Batch can write multiple ops atomically to an underlying KVStore.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator allows us to access a set of items within a range of keys.
//
//   itr, err := db.Iterator(start, end)
//   defer itr.Release()
//   for {
//       key, value, err := itr.Next()
//       if errors.ErrIteratorDone.Is(err) {
//           break
//       }
//       ...
//   }
type Iterator interface {
	// Next moves the iterator to the next item and returns it. Once the
	// iterator is exhausted, ErrIteratorDone is returned.
	Next() (key, value []byte, err error)

	// Release releases the Iterator, allowing it to do any cleanup.
	Release()
}

// CacheableKVStore is a KVStore that supports cache wrapping.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap allows us to maintain a scratch-pad of uncommitted data that we
// can view with all queries.
//
// At the end, call Write to use the cached data, or Discard to drop it.
type KVCacheWrap interface {
	// CacheableKVStore allows us to use this Cache recursively.
	CacheableKVStore

	// Write syncs with the underlying store. Applies all pending writes
	// atomically.
	Write() error

	// Discard invalidates this CacheWrap and releases all data.
	Discard()
}

// CommitKVStore is a root store that can make atomic commits to disk. We
// modify it in batch by getting a CacheWrap and then Write. Commit will
// persist all changes to disk.
//
// This store should also be able to roll back to a previous version
// (used only on a crash and restart).
type CommitKVStore interface {
	// Get returns the value at last committed state.
	Get(key []byte) ([]byte, error)

	// CacheWrap returns a wrap on top of the working state.
	CacheWrap() KVCacheWrap

	// Commit the next version to disk, and returns info.
	Commit() (CommitID, error)

	// LoadLatestVersion loads the latest persisted version. Called once
	// after all calls to Mount*Store().
	LoadLatestVersion() error

	// LatestVersion returns info on the latest version saved to disk.
	LatestVersion() (CommitID, error)
}

// CommitID contains the tree version number and its merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
