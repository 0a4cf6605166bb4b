package e

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// ExtendedError is our custom error. The InnerError accumulates the chain of
// error codes as the error propagates up, the Message holds the first
// human readable message assigned to it and original keeps the originating
// error for errors.Is/As checks.
type ExtendedError struct {
	InnerError error
	Message    string
	original   error
}

// Error returns the string of the inner error
func (ee *ExtendedError) Error() string {
	return fmt.Sprintf("%+v", ee.InnerError)
}

// IsError checks if the originating error is the specified target
func (ee *ExtendedError) IsError(tgt error) bool {
	return errors.Is(ee.original, tgt)
}

// AsError calls errors.As on the original error with the specified target.
// If it is the target error, it will set the target as the original error
// value and return true, otherwise it returns false
func (ee *ExtendedError) AsError(tgt interface{}) bool {
	return errors.As(ee.original, tgt)
}

// NewStr creates a new error string based on the code and messages
func NewStr(code string, msgList ...string) (s string) {
	if len(msgList) == 0 {
		return code
	}
	return fmt.Sprintf("%s: %s", code, strings.Join(msgList, "|"))
}

// N creates a new error based on the code and message
func N(code, msg string) (err error) {
	return W(nil, code, msg)
}

// W checks if the passed error has been wrapped before by this func and
// either wraps the original error as an ExtendedError or adds the code and
// debug messages to the already existing ExtendedError's InnerError. This
// function always returns an extended error, but the signature is error
func W(err error, code string, debugMessages ...string) error {
	msg := NewStr(code, debugMessages...)

	// If the error is already an extended error, then just update the
	// inner error
	if ee := AsExtendedError(err); ee != nil {
		ee.InnerError = fmt.Errorf("[%s]%+v", msg, ee)
		return ee
	}

	ee := &ExtendedError{
		original: err,
	}

	if err == nil {
		ee.InnerError = pkgerrors.New(msg)
		ee.Message = msg
	} else {
		ee.InnerError = fmt.Errorf("[%s]%+v", msg, pkgerrors.Wrap(err, ""))
	}

	return ee
}

// AsExtendedError helper function that returns the error as an ExtendedError
// if it is one. Otherwise it returns nil
func AsExtendedError(err error) (ee *ExtendedError) {
	if errors.As(err, &ee) {
		return ee
	}
	return nil
}

// Msg returns the human readable message assigned to the error, falling back
// to the full error text if none was set
func Msg(err error) string {
	if ee := AsExtendedError(err); ee != nil && ee.Message != "" {
		return ee.Message
	}
	return err.Error()
}

// ContainsError checks if the error contains the specified error message
func ContainsError(err error, msg string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), msg)
}
