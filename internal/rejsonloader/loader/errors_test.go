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
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoaderError_Error(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  *LoaderError
		want string
	}{
		{name: "message and cause", err: NewIOError("cannot read file", cause), want: "IO_ERROR: cannot read file: boom"},
		{name: "cause only", err: NewConnectionError("", cause), want: "CONNECTION_ERROR: boom"},
		{name: "message only", err: NewArgumentError("FILE is required", nil), want: "ARGUMENT_ERROR: FILE is required"},
		{name: "code only", err: ErrRemoteCommand, want: "REMOTE_COMMAND_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestLoaderError_IsMatchesCode(t *testing.T) {
	err := fmt.Errorf("run: %w", NewIOError("cannot read", fs.ErrNotExist))

	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NotErrorIs(t, err, ErrMalformedInput)
	assert.NotErrorIs(t, err, ErrConnection)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeMalformedInput, CodeOf(fmt.Errorf("x: %w", NewMalformedInputError("bad", nil))))
	assert.Equal(t, ErrCodeRemoteCommand, CodeOf(NewRemoteCommandError("JSON.SET", nil)))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
	assert.Equal(t, "", CodeOf(nil))
}
