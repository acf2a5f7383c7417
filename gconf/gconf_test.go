package gconf

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

type limit struct {
	Max int `json:"max"`
}

func (l *limit) Marshal() ([]byte, error) {
	return []byte(strconv.Itoa(l.Max)), nil
}

func (l *limit) Unmarshal(raw []byte) error {
	n, err := strconv.Atoi(string(raw))
	l.Max = n
	return err
}

func (l *limit) Validate() error {
	if l.Max <= 0 {
		return errors.Wrap(errors.ErrInput, "max must be positive")
	}
	return nil
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
		wantMax int
	}{
		"valid configuration": {
			genesis: `{"conf": {"limits": {"max": 7}}}`,
			wantMax: 7,
		},
		"missing package configuration": {
			genesis: `{"conf": {"other": {"max": 7}}}`,
			wantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			genesis: `{"conf": {"limits": {"max": 0}}}`,
			wantErr: errors.ErrInput,
		},
		"malformed configuration": {
			genesis: `{"conf": {"limits": {"max": "seven"}}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts custody.Options
			if err := json.Unmarshal([]byte(tc.genesis), &opts); err != nil {
				t.Fatalf("cannot decode genesis: %s", err)
			}
			db := store.MemStore()
			err := InitConfig(db, opts, "limits", &limit{})
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %v error, got %v", tc.wantErr, err)
			}
			if tc.wantErr != nil {
				return
			}
			var got limit
			if err := Load(db, "limits", &got); err != nil {
				t.Fatalf("cannot load: %s", err)
			}
			if got.Max != tc.wantMax {
				t.Fatalf("want %d, got %d", tc.wantMax, got.Max)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	var l limit
	if err := Load(store.MemStore(), "limits", &l); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %v", err)
	}
}
