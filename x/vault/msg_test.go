package vault

import (
	"encoding/hex"
	"testing"

	"github.com/iov-one/custody"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMsgWireFormat(t *testing.T) {
	cases := map[string]struct {
		msg   custody.Msg
		empty custody.Msg
		want  string
	}{
		"deposit": {
			msg:   &DepositMsg{User: custody.Address{1, 2, 3}, Amount: 42},
			empty: &DepositMsg{},
			want:  "0a03010203102a",
		},
		"zero amount is omitted": {
			msg:   &WithdrawMsg{User: custody.Address{1, 2, 3}},
			empty: &WithdrawMsg{},
			want:  "0a03010203",
		},
		"close": {
			msg:   &CloseMsg{User: custody.Address{0xff}},
			empty: &CloseMsg{},
			want:  "0a01ff",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			raw, err := tc.msg.Marshal()
			require.NoError(t, err)
			assert.Equal(t, tc.want, hex.EncodeToString(raw))

			require.NoError(t, tc.empty.Unmarshal(raw))
			assert.Equal(t, tc.msg, tc.empty)
		})
	}
}

func TestMsgUnmarshalResets(t *testing.T) {
	msg := &DepositMsg{User: custody.Address{9}, Amount: 7}
	require.NoError(t, msg.Unmarshal([]byte{0x0a, 0x01, 0x01}))
	assert.Equal(t, &DepositMsg{User: custody.Address{1}}, msg)

	assert.Error(t, msg.Unmarshal([]byte{0x0a, 0x05, 0x01}))
}
