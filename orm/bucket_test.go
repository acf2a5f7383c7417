package orm

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type balance struct {
	Owner  []byte `protobuf:"bytes,1,opt,name=owner,proto3"`
	Amount uint64 `protobuf:"varint,2,opt,name=amount,proto3"`
}

type balancePB balance

func (b *balancePB) Reset()         { *b = balancePB{} }
func (b *balancePB) String() string { return proto.CompactTextString(b) }
func (*balancePB) ProtoMessage()    {}

func (b *balance) Marshal() ([]byte, error) {
	return proto.Marshal((*balancePB)(b))
}

func (b *balance) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*balancePB)(b))
}

func (b *balance) Validate() error {
	if len(b.Owner) == 0 {
		return errors.Wrap(errors.ErrEmpty, "owner")
	}
	return nil
}

func byOwner(obj Object) ([]byte, error) {
	return obj.Value().(*balance).Owner, nil
}

func newBalanceBucket(unique bool) Bucket {
	return NewBucket("balance", NewSimpleObj(nil, new(balance))).
		WithIndex("owner", byOwner, unique)
}

func TestBucketSaveGetDelete(t *testing.T) {
	db := store.MemStore()
	b := newBalanceBucket(false)

	obj := NewSimpleObj([]byte("one"), &balance{Owner: []byte("alice"), Amount: 5})
	require.NoError(t, b.Save(db, obj))

	got, err := b.Get(db, []byte("one"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, &balance{Owner: []byte("alice"), Amount: 5}, got.Value())
	assert.Equal(t, []byte("one"), got.Key())

	has, err := b.Has(db, []byte("one"))
	require.NoError(t, err)
	assert.True(t, has)

	missing, err := b.Get(db, []byte("two"))
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, b.Delete(db, []byte("one")))
	got, err = b.Get(db, []byte("one"))
	require.NoError(t, err)
	assert.Nil(t, got)

	invalid := NewSimpleObj([]byte("bad"), &balance{})
	assert.True(t, errors.ErrEmpty.Is(b.Save(db, invalid)))
}

func TestBucketIndex(t *testing.T) {
	cases := map[string]struct {
		unique     bool
		second     []byte
		wantSave   *errors.Error
		wantAlice  int
		wantSecond int
	}{
		"multi index groups owners": {
			unique:    false,
			second:    []byte("alice"),
			wantAlice: 2,
		},
		"unique index rejects duplicates": {
			unique:    true,
			second:    []byte("alice"),
			wantSave:  errors.ErrDuplicate,
			wantAlice: 1,
		},
		"unique index accepts another owner": {
			unique:     true,
			second:     []byte("bobby"),
			wantAlice:  1,
			wantSecond: 1,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			b := newBalanceBucket(tc.unique)

			require.NoError(t, b.Save(db, NewSimpleObj([]byte("k1"), &balance{Owner: []byte("alice")})))
			err := b.Save(db, NewSimpleObj([]byte("k2"), &balance{Owner: tc.second}))
			if !tc.wantSave.Is(err) {
				t.Fatalf("want %v error, got %v", tc.wantSave, err)
			}

			objs, err := b.GetIndexed(db, "owner", []byte("alice"))
			require.NoError(t, err)
			assert.Len(t, objs, tc.wantAlice)

			if tc.wantSecond > 0 {
				objs, err := b.GetIndexed(db, "owner", tc.second)
				require.NoError(t, err)
				assert.Len(t, objs, tc.wantSecond)
			}

			_, err = b.GetIndexed(db, "unknown", []byte("alice"))
			assert.True(t, ErrInvalidIndex.Is(err))
		})
	}
}

func TestIndexFollowsUpdates(t *testing.T) {
	db := store.MemStore()
	b := newBalanceBucket(false)

	require.NoError(t, b.Save(db, NewSimpleObj([]byte("k1"), &balance{Owner: []byte("alice")})))
	require.NoError(t, b.Save(db, NewSimpleObj([]byte("k1"), &balance{Owner: []byte("bobby")})))

	objs, err := b.GetIndexed(db, "owner", []byte("alice"))
	require.NoError(t, err)
	assert.Empty(t, objs)
	objs, err = b.GetIndexed(db, "owner", []byte("bobby"))
	require.NoError(t, err)
	assert.Len(t, objs, 1)

	require.NoError(t, b.Delete(db, []byte("k1")))
	objs, err = b.GetIndexed(db, "owner", []byte("bobby"))
	require.NoError(t, err)
	assert.Empty(t, objs)
}

func TestBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := newBalanceBucket(false)
	for _, k := range []string{"aa", "ab", "b"} {
		require.NoError(t, b.Save(db, NewSimpleObj([]byte(k), &balance{Owner: []byte("carol")})))
	}

	qr := custody.NewQueryRouter()
	b.Register("balances", qr)

	res, err := qr.Handler("/balances").Query(db, custody.KeyQueryMod, []byte("ab"))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, []byte("balance:ab"), res[0].Key)

	res, err = qr.Handler("/balances").Query(db, custody.PrefixQueryMod, []byte("a"))
	require.NoError(t, err)
	assert.Len(t, res, 2)

	res, err = qr.Handler("/balances/owner").Query(db, custody.KeyQueryMod, []byte("carol"))
	require.NoError(t, err)
	assert.Len(t, res, 3)
}

func TestPrefixRange(t *testing.T) {
	start, end := prefixRange([]byte{1, 0xff})
	assert.Equal(t, []byte{1, 0xff}, start)
	assert.Equal(t, []byte{2}, end)

	_, end = prefixRange([]byte{0xff, 0xff})
	assert.Nil(t, end)
}
