package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Field returns an error instance that wraps the original error with
// additional information. It returns `nil` if provided error is `nil`.
// Use this function to create an error instance describing a field error.
//
// Use Go naming for the field name. For example, Maker or RequestedAmount.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if errIsNil(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{
		parent: err,
		field:  fieldName,
		desc:   description,
	}
}

// AppendField is a shortcut function to club together error(s) with a given
// field error.
func AppendField(errorsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errorsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (err *fieldError) Error() string {
	if err.desc == "" {
		return fmt.Sprintf("field %q: %s", err.field, err.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", err.field, err.desc, err.parent)
}

// Cause implements the causer interface.
func (err *fieldError) Cause() error {
	return err.parent
}

// Field returns the name of the field this error was created for.
func (err *fieldError) Field() string {
	return err.field
}

// FieldErrors returns the list of all errors that are created for the given
// field name.
func FieldErrors(err error, fieldName string) []error {
	if errIsNil(err) {
		return nil
	}

	var res []error
	for err != nil {
		if f, ok := err.(*fieldError); ok && f.Field() == fieldName {
			return append(res, err)
		}
		if m, ok := err.(multiErr); ok {
			for _, e := range m {
				res = append(res, FieldErrors(e, fieldName)...)
			}
			return res
		}
		c, ok := err.(causer)
		if !ok {
			return res
		}
		err = c.Cause()
	}
	return res
}

// Append clubs together all provided errors. Nil values are ignored.
//
// If no non-nil error is given, nil is returned. A single non-nil error is
// returned unchanged. Cause and ABCICode of the result are taken from the
// first error, consistent with a fail-fast approach.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if errIsNil(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

type multiErr []error

func (m multiErr) Error() string {
	msgs := make([]string, len(m))
	for i, e := range m {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d errors occurred: %s", len(m), strings.Join(msgs, "; "))
}

// Cause implements the causer interface.
func (m multiErr) Cause() error {
	return m[0]
}
