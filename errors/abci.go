package errors

import (
	"errors"
	"fmt"
	"reflect"
)

const (
	// SuccessABCICode is the code of a response that carries no error.
	SuccessABCICode = 0

	// Errors that do not wrap a registered root error share this code and,
	// outside of debug mode, this log.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log to put into an ABCI response for err.
//
// Errors without a registered code get code 1. In debug mode the log is the
// full error with its stack trace. Otherwise unregistered errors and panics
// are reported as "internal error" so that no system details leak to the
// client.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	if debug {
		return code, fmt.Sprintf("%+v", err)
	}
	if code == internalABCICode || ErrPanic.Is(err) {
		return code, internalABCILog
	}
	return code, err.Error()
}

type coder interface {
	ABCICode() uint32
}

// abciCode unwraps err until it finds a layer that declares a code.
func abciCode(err error) uint32 {
	if errIsNil(err) {
		return SuccessABCICode
	}
	for !errIsNil(err) {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return internalABCICode
}

// errIsNil is true for a nil interface as well as for a typed nil pointer.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	if val := reflect.ValueOf(err); val.Kind() == reflect.Ptr {
		return val.IsNil()
	}
	return false
}

// Redact returns err unchanged if it wraps a registered error. Anything else,
// and any panic, is replaced by a generic internal error. In debug mode err
// is always returned as is.
func Redact(err error, debug bool) error {
	if debug || errIsNil(err) {
		return err
	}
	if ErrPanic.Is(err) || abciCode(err) == internalABCICode {
		return errors.New(internalABCILog)
	}
	return err
}
