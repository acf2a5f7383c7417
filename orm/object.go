package orm

import (
	"reflect"

	"github.com/iov-one/custody/errors"
)

// SimpleObj wraps a Model and key into an Object.
type SimpleObj struct {
	key   []byte
	value Model
}

var _ Object = (*SimpleObj)(nil)

// NewSimpleObj will combine a key and value into an object.
func NewSimpleObj(key []byte, value Model) *SimpleObj {
	return &SimpleObj{
		key:   key,
		value: value,
	}
}

// Value gets the value stored in the object.
func (o SimpleObj) Value() Model {
	return o.value
}

// Key returns the key to store the object under.
func (o SimpleObj) Key() []byte {
	return o.key
}

// Validate makes sure the fields aren't empty. And delegates to the value
// validator if present.
func (o SimpleObj) Validate() error {
	if len(o.key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "missing key")
	}
	if o.value == nil {
		return errors.Wrap(errors.ErrEmpty, "missing value")
	}
	return o.value.Validate()
}

// SetKey may be used to modify the key of the object.
func (o *SimpleObj) SetKey(key []byte) {
	o.key = key
}

// Clone will make a copy of this object. The value is a fresh zero value of
// the same type, ready to be loaded into.
func (o *SimpleObj) Clone() Object {
	cpy := reflect.New(reflect.TypeOf(o.value).Elem()).Interface().(Model)
	res := &SimpleObj{
		value: cpy,
	}
	if len(o.key) > 0 {
		res.key = append([]byte(nil), o.key...)
	}
	return res
}
