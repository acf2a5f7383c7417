package gconf

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// ReadStore is a subset of the KVStore that allows reading.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is a subset of the KVStore that allows reading and writing.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// ValidMarshaler is a configuration that can be validated and persisted.
type ValidMarshaler interface {
	Marshal() ([]byte, error)
	Validate() error
}

// Unmarshaler is a configuration that can be loaded.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

// Configuration is implemented by the configuration of every extension.
type Configuration interface {
	ValidMarshaler
	Unmarshaler
}

func confKey(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save will Validate the object, before writing it to a special "singleton"
// key for this package name.
func Save(db Store, pkg string, src ValidMarshaler) error {
	key := confKey(pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", key)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal: key %q", key)
	}
	return db.Set(key, raw)
}

// Load will load the configuration of a given package into dst. Missing
// configuration results in ErrNotFound.
func Load(db ReadStore, pkg string, dst Unmarshaler) error {
	key := confKey(pkg)
	raw, err := db.Get(key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %q", key)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal: key %q", key)
	}
	return nil
}

// InitConfig will take opts["conf"][pkg], parse it into the given
// configuration and save it to the store. It is meant to be called from the
// genesis initializer of an extension.
func InitConfig(db Store, opts custody.Options, pkg string, conf Configuration) error {
	var confOptions custody.Options
	if err := opts.ReadOptions("conf", &confOptions); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if confOptions[pkg] == nil {
		return errors.Wrapf(errors.ErrNotFound, "no configuration in genesis for %q package", pkg)
	}
	if err := confOptions.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(errors.ErrInput, "read configuration for %s: %s", pkg, err)
	}
	if err := Save(db, pkg, conf); err != nil {
		return errors.Wrapf(err, "save configuration for %s", pkg)
	}
	return nil
}
