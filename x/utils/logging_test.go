package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var out bytes.Buffer
	ctx := custody.WithLogger(context.Background(), log.NewTMLogger(&out))
	tx := &custodytest.Tx{Msg: &custodytest.Msg{RoutePath: "vault/deposit"}}
	db := store.MemStore()

	ok := &custodytest.Handler{DeliverResult: custody.DeliverResult{Log: "deposited"}}
	_, err := NewLogging().Deliver(ctx, db, tx, ok)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "deposited")
	assert.Contains(t, out.String(), "path=vault/deposit")

	out.Reset()
	failing := &custodytest.Handler{DeliverErr: errors.ErrInsufficientAmount}
	_, err = NewLogging().Deliver(ctx, db, tx, failing)
	assert.True(t, errors.ErrInsufficientAmount.Is(err))
	assert.Contains(t, out.String(), "insufficient amount")
}
