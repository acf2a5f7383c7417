package custody

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/iov-one/custody/errors"
)

// AddressLength is the length of all addresses. It matches the size of an
// ed25519 public key, so that a key holder is addressed by its public key.
const AddressLength = 32

// Extension and type names are 3 to 16 characters. The (?s) flag lets the
// address section contain a newline byte.
var perm = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,16})/([a-zA-Z0-9_\-]{3,16})/(.+)$`)

// Condition is a specially formatted array, containing information on who
// can authorize an action. It is of the format:
//
//   sprintf("%s/%s/%s", extension, type, address)
//
// A signature check produces a condition carrying the signer public key,
// while an extension produces conditions for the addresses it derived.
type Condition []byte

// NewCondition returns a condition for the given extension, type and address.
func NewCondition(ext, typ string, addr Address) Condition {
	pre := fmt.Sprintf("%s/%s/", ext, typ)
	return append([]byte(pre), addr...)
}

// Parse will extract the sections from the Condition bytes and verify it is
// properly formatted.
func (c Condition) Parse() (string, string, []byte, error) {
	chunks := perm.FindSubmatch(c)
	if len(chunks) == 0 {
		return "", "", nil, errors.Wrapf(errors.ErrInput, "condition: %X", []byte(c))
	}
	return string(chunks[1]), string(chunks[2]), chunks[3], nil
}

// Address returns the address that this condition is vouching for. Nil is
// returned for a malformed condition.
func (c Condition) Address() Address {
	_, _, data, err := c.Parse()
	if err != nil || len(data) != AddressLength {
		return nil
	}
	return Address(data)
}

// Equals checks if two conditions are the same.
func (c Condition) Equals(b Condition) bool {
	return bytes.Equal(c, b)
}

// String returns a human readable string. We keep the extension and type in
// ascii and encode the address.
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("Invalid Condition: %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%s", ext, typ, Address(data))
}

// Validate returns an error if the Condition is not the proper format.
func (c Condition) Validate() error {
	_, _, data, err := c.Parse()
	if err != nil {
		return err
	}
	return Address(data).Validate()
}

// Address identifies an account of the ledger: a key holder (its public key)
// or a record derived by a program.
type Address []byte

// Equals checks if two addresses are the same.
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Clone returns an independent copy of the address.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	return append(Address(nil), a...)
}

// String returns the base58 representation of the address.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return base58.Encode(a)
}

// MarshalJSON provides a base58 representation for JSON, to override the
// standard base64 []byte encoding.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(base58.Encode(a))
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	if len(enc) == 0 {
		*a = nil
		return nil
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress decodes a human readable address. The encoding can be
// specified with a "base58:" or "hex:" prefix. Base58 is the default.
func ParseAddress(enc string) (Address, error) {
	format := "base58"
	if chunks := strings.SplitN(enc, ":", 2); len(chunks) == 2 {
		format, enc = chunks[0], chunks[1]
	}

	var addr Address
	switch format {
	case "base58":
		addr = base58.Decode(enc)
		if len(addr) == 0 {
			return nil, errors.Wrapf(errors.ErrInput, "invalid base58 %q", enc)
		}
	case "hex":
		raw, err := hex.DecodeString(enc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, err.Error())
		}
		addr = raw
	default:
		return nil, errors.Wrapf(errors.ErrType, "unknown format %q", format)
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

// Validate returns an error if the address is not the valid size.
func (a Address) Validate() error {
	if len(a) == 0 {
		return errors.Wrap(errors.ErrEmpty, "address")
	}
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address length %d", len(a))
	}
	return nil
}
