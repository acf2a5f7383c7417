package custody

import (
	"context"
	"regexp"
	"time"

	"github.com/tendermint/tendermint/libs/log"
)

// Context is just an alias for the standard implementation. We use functions
// to extend it to our domain.
type Context = context.Context

type contextKey int // local to the custody package

const (
	contextKeyHeight contextKey = iota
	contextKeyChainID
	contextKeyLogger
	contextKeyBlockTime
)

var (
	// DefaultLogger is used for all context that have not set anything
	// themselves.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID is the RegExp to ensure valid chain IDs.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// WithHeight sets the block height for the context. It panics if the height
// was already set.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := ctx.Value(contextKeyHeight).(int64); ok {
		panic("Tried to modify height")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height. If none was set, returns
// false.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithBlockTime sets the block time for the context.
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, contextKeyBlockTime, t)
}

// BlockTime returns current block wall clock time as declared in the context.
// An error is returned if a block time is not present in the context.
func BlockTime(ctx Context) (time.Time, bool) {
	t, ok := ctx.Value(contextKeyBlockTime).(time.Time)
	return t, ok
}

// WithChainID sets the chain id for the context. It panics if the chain id
// was already set or is not valid.
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("Tried to modify chain id")
	}
	if !IsValidChainID(chainID) {
		panic("Invalid chain id")
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the current chain id. Panics if chain id not already
// set (should never happen).
func GetChainID(ctx Context) string {
	if x := ctx.Value(contextKeyChainID); x == nil {
		panic("Chain id not set")
	}
	return ctx.Value(contextKeyChainID).(string)
}

// WithLogger sets the logger for this context.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another context like this,
// after passing all the keyvals to the Logger.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or DefaultLogger if none was
// set.
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}
