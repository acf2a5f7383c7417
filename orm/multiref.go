package orm

import (
	"bytes"
	"sort"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/errors"
)

// MultiRef contains a sorted set of references (primary keys) to objects in
// the same bucket.
type MultiRef struct {
	Refs [][]byte `protobuf:"bytes,1,rep,name=refs,proto3"`
}

// NewMultiRef creates a MultiRef with any number of initial references.
func NewMultiRef(refs ...[]byte) (*MultiRef, error) {
	m := new(MultiRef)
	for _, r := range refs {
		if err := m.Add(r); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Add inserts this reference in the multiref, sorted by order. Returns an
// error if already there.
func (m *MultiRef) Add(ref []byte) error {
	i, found := m.findRef(ref)
	if found {
		return errors.Wrap(errors.ErrDuplicate, "ref already in set")
	}
	m.Refs = append(m.Refs, nil)
	copy(m.Refs[i+1:], m.Refs[i:])
	m.Refs[i] = ref
	return nil
}

// Remove removes this reference from the multiref. Returns an error if not
// there.
func (m *MultiRef) Remove(ref []byte) error {
	i, found := m.findRef(ref)
	if !found {
		return errors.Wrap(errors.ErrNotFound, "ref not in set")
	}
	m.Refs = append(m.Refs[:i], m.Refs[i+1:]...)
	return nil
}

// findRef returns the index of the ref, or the position where it should be
// inserted.
func (m *MultiRef) findRef(ref []byte) (int, bool) {
	i := sort.Search(len(m.Refs), func(i int) bool {
		return bytes.Compare(m.Refs[i], ref) >= 0
	})
	return i, i < len(m.Refs) && bytes.Equal(m.Refs[i], ref)
}

// Marshal encodes the references as a repeated bytes field.
func (m *MultiRef) Marshal() ([]byte, error) {
	return proto.Marshal((*multiRefPB)(m))
}

// Unmarshal loads the references. Nil data is an empty set.
func (m *MultiRef) Unmarshal(data []byte) error {
	return proto.Unmarshal(data, (*multiRefPB)(m))
}

// multiRefPB is MultiRef without its own Marshal method, which the proto
// package would otherwise call back into.
type multiRefPB MultiRef

func (m *multiRefPB) Reset()         { *m = multiRefPB{} }
func (m *multiRefPB) String() string { return proto.CompactTextString(m) }
func (*multiRefPB) ProtoMessage()    {}
