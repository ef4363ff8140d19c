// Copyright © 2025 jackelyj <dreamerlyj@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
//

package loader

import (
	"errors"
	"fmt"
)

// Error codes, one per failure kind a run can end with.
const (
	ErrCodeArgument       = "ARGUMENT_ERROR"
	ErrCodeIO             = "IO_ERROR"
	ErrCodeMalformedInput = "MALFORMED_INPUT"
	ErrCodeConnection     = "CONNECTION_ERROR"
	ErrCodeRemoteCommand  = "REMOTE_COMMAND_ERROR"
)

// LoaderError is a failure of a loader run. Two LoaderErrors match with
// errors.Is when their codes are equal.
type LoaderError struct {
	Code    string // Error code
	Message string // Human-readable message
	Cause   error  // Underlying cause
}

// Sentinels for errors.Is.
var (
	ErrArgument       = &LoaderError{Code: ErrCodeArgument}
	ErrIO             = &LoaderError{Code: ErrCodeIO}
	ErrMalformedInput = &LoaderError{Code: ErrCodeMalformedInput}
	ErrConnection     = &LoaderError{Code: ErrCodeConnection}
	ErrRemoteCommand  = &LoaderError{Code: ErrCodeRemoteCommand}
)

// Error implements the error interface.
func (e *LoaderError) Error() string {
	switch {
	case e.Message != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Code, e.Cause)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Code
}

// Unwrap returns the underlying cause error.
func (e *LoaderError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a LoaderError with the same code.
func (e *LoaderError) Is(target error) bool {
	t, ok := target.(*LoaderError)
	return ok && t.Code == e.Code
}

// CodeOf returns the code of the first LoaderError in err's chain, or "".
func CodeOf(err error) string {
	var le *LoaderError
	if errors.As(err, &le) {
		return le.Code
	}
	return ""
}

// NewArgumentError creates an error for missing or invalid command-line input.
func NewArgumentError(message string, cause error) *LoaderError {
	return &LoaderError{Code: ErrCodeArgument, Message: message, Cause: cause}
}

// NewIOError creates an error for local file or output failures.
func NewIOError(message string, cause error) *LoaderError {
	return &LoaderError{Code: ErrCodeIO, Message: message, Cause: cause}
}

// NewMalformedInputError creates an error for content that is not valid JSON.
func NewMalformedInputError(message string, cause error) *LoaderError {
	return &LoaderError{Code: ErrCodeMalformedInput, Message: message, Cause: cause}
}

// NewConnectionError creates an error for an unreachable store.
func NewConnectionError(message string, cause error) *LoaderError {
	return &LoaderError{Code: ErrCodeConnection, Message: message, Cause: cause}
}

// NewRemoteCommandError creates an error for a failed store command.
func NewRemoteCommandError(message string, cause error) *LoaderError {
	return &LoaderError{Code: ErrCodeRemoteCommand, Message: message, Cause: cause}
}
