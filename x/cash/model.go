package cash

import (
	"encoding/binary"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// BucketName is where we store the wallets.
const BucketName = "wallets"

// walletSize is the length of the serialized Wallet.
const walletSize = 8

// Wallet holds the lamports of a single address.
type Wallet struct {
	Lamports uint64
}

var _ orm.Model = (*Wallet)(nil)

// Validate accepts any wallet, an empty one included.
func (w *Wallet) Validate() error {
	return nil
}

func (w *Wallet) Marshal() ([]byte, error) {
	raw := make([]byte, walletSize)
	binary.LittleEndian.PutUint64(raw, w.Lamports)
	return raw, nil
}

func (w *Wallet) Unmarshal(raw []byte) error {
	if len(raw) != walletSize {
		return errors.Wrapf(errors.ErrSchema, "wallet length %d", len(raw))
	}
	w.Lamports = binary.LittleEndian.Uint64(raw)
	return nil
}

// AsWallet will safely type-cast any value from Bucket.
func AsWallet(obj orm.Object) *Wallet {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Wallet)
}

// NewWallet returns a wallet object with the given balance.
func NewWallet(addr custody.Address, lamports uint64) orm.Object {
	return orm.NewSimpleObj(addr, &Wallet{Lamports: lamports})
}

// Bucket is a type-safe wrapper around orm.Bucket.
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a Bucket with default name.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, new(Wallet))),
	}
}

// GetOrCreate will return the wallet if found, or create a new one with
// no balance.
func (b Bucket) GetOrCreate(db custody.ReadOnlyKVStore, addr custody.Address) (orm.Object, error) {
	obj, err := b.Get(db, addr)
	if err != nil || obj != nil {
		return obj, err
	}
	return NewWallet(addr, 0), nil
}

// Save enforces the proper type.
func (b Bucket) Save(db custody.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Wallet); !ok {
		return errors.WithType(errors.ErrModel, obj.Value())
	}
	return b.Bucket.Save(db, obj)
}
