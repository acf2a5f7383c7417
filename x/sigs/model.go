package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// BucketName is where we store the accounts.
const BucketName = "sigs"

// UserData keeps the sequence of the next transaction that a key holder
// may sign.
type UserData struct {
	Pubkey   crypto.PubKey `protobuf:"bytes,1,opt,name=pubkey,proto3"`
	Sequence uint64        `protobuf:"varint,2,opt,name=sequence,proto3"`
}

var _ orm.Model = (*UserData)(nil)

// Validate requires that all fields are set.
func (u *UserData) Validate() error {
	return u.Pubkey.Validate()
}

func (u *UserData) Marshal() ([]byte, error) {
	return proto.Marshal((*userDataPB)(u))
}

func (u *UserData) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*userDataPB)(u))
}

// CheckAndIncrementSequence checks if the current Sequence matches the
// expected value. If so, it will increase the sequence by one and return
// nil. If not, it will return an error and not modify anything.
func (u *UserData) CheckAndIncrementSequence(check uint64) error {
	if u.Sequence != check {
		return errors.Wrapf(ErrInvalidSequence, "mismatch: expected %d, got %d", u.Sequence, check)
	}
	u.Sequence++
	return nil
}

// AsUser will safely type-cast any value from Bucket to a UserData.
func AsUser(obj orm.Object) *UserData {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*UserData)
}

// Bucket stores UserData keyed by the signer address.
type Bucket struct {
	orm.Bucket
}

// NewBucket creates the proper bucket for this extension.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, new(UserData))),
	}
}

// GetOrCreate initializes a UserData if none exist for that key.
func (b Bucket) GetOrCreate(db custody.KVStore, pubkey crypto.PubKey) (orm.Object, error) {
	obj, err := b.Get(db, pubkey.Address())
	if err != nil || obj != nil {
		return obj, err
	}
	return orm.NewSimpleObj(pubkey.Address(), &UserData{Pubkey: pubkey}), nil
}
