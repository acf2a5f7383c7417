package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// ResultSet is the list of keys or values returned by a query. Both are
// sent in separate sets of the same length.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3"`
}

// Marshal encodes every result as field 1.
func (r *ResultSet) Marshal() ([]byte, error) {
	return proto.Marshal((*resultSetPB)(r))
}

// Unmarshal decodes a result set.
func (r *ResultSet) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*resultSetPB)(r))
}

type resultSetPB ResultSet

func (r *resultSetPB) Reset()         { *r = resultSetPB{} }
func (r *resultSetPB) String() string { return proto.CompactTextString(r) }
func (*resultSetPB) ProtoMessage()    {}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []custody.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []custody.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]custody.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrap(errors.ErrState, "mismatched result set size")
	}
	mods := make([]custody.Model, len(kref))
	for i := range mods {
		mods[i] = custody.Pair(kref[i], vref[i])
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o
func UnmarshalOneResult(bz []byte, o custody.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return err
	}
	if len(res.Results) == 0 {
		return nil
	}
	return o.Unmarshal(res.Results[0])
}
