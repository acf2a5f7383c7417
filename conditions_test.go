package custody

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/iov-one/custody/errors"
)

func TestValidConditions(t *testing.T) {
	addr := make(Address, AddressLength)
	addr[0] = 7

	cases := []struct {
		cond Condition
		ext  string
		typ  string
	}{
		{NewCondition("sigs", "ed25519", addr), "sigs", "ed25519"},
		{NewCondition("escrow", "authority", addr), "escrow", "authority"},
		{NewCondition("vault", "custody", addr), "vault", "custody"},
	}

	for _, tc := range cases {
		t.Run(tc.cond.String(), func(t *testing.T) {
			ext, typ, data, err := tc.cond.Parse()
			if err != nil {
				t.Fatalf("cannot parse: %s", err)
			}
			if ext != tc.ext || typ != tc.typ {
				t.Fatalf("unexpected %s/%s", ext, typ)
			}
			if !Address(data).Equals(addr) {
				t.Fatalf("unexpected data %X", data)
			}
			if !tc.cond.Address().Equals(addr) {
				t.Fatal("condition must vouch for the address")
			}
			if err := tc.cond.Validate(); err != nil {
				t.Fatalf("invalid condition: %s", err)
			}
		})
	}
}

func TestInvalidConditions(t *testing.T) {
	Convey("Given malformed conditions", t, func() {
		Convey("A missing type is invalid", func() {
			c := Condition("sigs//12345678901234567890123456789012")
			So(c.Validate(), ShouldNotBeNil)
			So(c.Address(), ShouldBeNil)
		})
		Convey("A short address is invalid", func() {
			c := NewCondition("sigs", "ed25519", Address("short"))
			So(errors.ErrInput.Is(c.Validate()), ShouldBeTrue)
			So(c.Address(), ShouldBeNil)
		})
		Convey("A type longer than 16 characters is invalid", func() {
			c := NewCondition("escrow", "authority-of-the-offer", ProgramID("escrow"))
			So(errors.ErrInput.Is(c.Validate()), ShouldBeTrue)
			So(c.Address(), ShouldBeNil)
		})
		Convey("Garbage is invalid", func() {
			c := Condition("no-slashes-here")
			So(errors.ErrInput.Is(c.Validate()), ShouldBeTrue)
		})
	})
}

func TestAddressEncoding(t *testing.T) {
	addr := ProgramID("token")

	cases := map[string]struct {
		json    string
		want    Address
		wantErr *errors.Error
	}{
		"default base58": {
			json: `"` + addr.String() + `"`,
			want: addr,
		},
		"explicit base58": {
			json: `"base58:` + addr.String() + `"`,
			want: addr,
		},
		"hex": {
			json: `"hex:` + "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20" + `"`,
			want: Address{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32},
		},
		"empty": {
			json: `""`,
			want: nil,
		},
		"unknown format": {
			json:    `"bech32:abc"`,
			wantErr: errors.ErrType,
		},
		"too short": {
			json:    `"hex:0102"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got Address
			err := json.Unmarshal([]byte(tc.json), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %v error, got %v", tc.wantErr, err)
			}
			if tc.wantErr == nil && !got.Equals(tc.want) {
				t.Fatalf("want %s, got %s", tc.want, got)
			}
		})
	}
}
