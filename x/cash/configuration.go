package cash

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

// confPkg is the name under which the configuration is stored.
const confPkg = "cash"

// Configuration holds the parameters of the storage reserve.
type Configuration struct {
	LamportsPerByteYear uint64 `json:"lamports_per_byte_year" protobuf:"varint,1,opt,name=lamports_per_byte_year,proto3"`
	ExemptionYears      uint64 `json:"exemption_years" protobuf:"varint,2,opt,name=exemption_years,proto3"`
	// AccountOverhead is the number of bytes charged for every stored
	// account on top of its data.
	AccountOverhead uint64 `json:"account_overhead" protobuf:"varint,3,opt,name=account_overhead,proto3"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// DefaultConfiguration returns the reserve parameters used when genesis
// does not declare any.
func DefaultConfiguration() Configuration {
	return Configuration{
		LamportsPerByteYear: 3480,
		ExemptionYears:      2,
		AccountOverhead:     128,
	}
}

func (c *Configuration) Validate() error {
	var err error
	if c.LamportsPerByteYear == 0 {
		err = errors.AppendField(err, "LamportsPerByteYear", errors.ErrEmpty)
	}
	if c.ExemptionYears == 0 {
		err = errors.AppendField(err, "ExemptionYears", errors.ErrEmpty)
	}
	return err
}

func (c *Configuration) Marshal() ([]byte, error) {
	return proto.Marshal((*configurationPB)(c))
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*configurationPB)(c))
}

// MinimumBalance returns the lamports an account storing size bytes must
// hold to be exempt from rent.
func (c Configuration) MinimumBalance(size int) uint64 {
	return (c.AccountOverhead + uint64(size)) * c.LamportsPerByteYear * c.ExemptionYears
}

// LoadConfiguration returns the configuration stored in the database.
func LoadConfiguration(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return conf, errors.Wrap(err, "load configuration")
	}
	return conf, nil
}
