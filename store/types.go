package store

import (
	"github.com/iov-one/custody"
)

// Move references for all storage types into this package for shorter names
// everywhere.

type ReadOnlyKVStore = custody.ReadOnlyKVStore
type SetDeleter = custody.SetDeleter
type KVStore = custody.KVStore
type Batch = custody.Batch
type Iterator = custody.Iterator
type CacheableKVStore = custody.CacheableKVStore
type KVCacheWrap = custody.KVCacheWrap
type CommitKVStore = custody.CommitKVStore
type CommitID = custody.CommitID
type Model = custody.Model
