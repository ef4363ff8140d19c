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

// Package document reads JSON documents from disk and derives their storage keys.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"
)

var (
	// ErrRead indicates that the document file could not be opened or read.
	ErrRead = errors.New("cannot read document file")

	// ErrMalformed indicates that the file content is not a single valid JSON value.
	ErrMalformed = errors.New("malformed JSON document")

	// ErrInvalidKey indicates that no usable key can be derived from the path.
	ErrInvalidKey = errors.New("cannot derive document key from path")
)

// Document is a JSON value loaded from a file together with its storage key.
type Document struct {
	// Key is the base name of the source file, extension included.
	Key string
	// Path is the path the document was read from.
	Path string
	// Value is the decoded JSON value. Numbers are kept as json.Number.
	Value interface{}
	// Size is the number of bytes read from the file.
	Size int
}

// KeyFromPath returns the final path segment of path.
func KeyFromPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidKey)
	}
	key := filepath.Base(path)
	if key == "." || key == string(filepath.Separator) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, path)
	}
	return key, nil
}

// Load reads path and decodes its content.
func Load(path string) (*Document, error) {
	key, err := KeyFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRead, path, err)
	}

	value, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Document{
		Key:   key,
		Path:  path,
		Value: value,
		Size:  len(data),
	}, nil
}

// Parse decodes exactly one JSON value from data. Input that is not valid
// UTF-8 is rejected rather than decoded with replacement characters.
func Parse(data []byte) (interface{}, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrMalformed)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var value interface{}
	if err := dec.Decode(&value); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrMalformed)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after top-level value at offset %d", ErrMalformed, dec.InputOffset())
	}

	return value, nil
}

// Encode serializes value to compact JSON text.
func Encode(value interface{}) (string, error) {
	data, err := marshal(value, "")
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return string(data), nil
}

// Indent renders value as indented JSON for display.
func Indent(value interface{}) (string, error) {
	data, err := marshal(value, "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}
	return string(data), nil
}

// marshal encodes value without HTML escaping so <, > and & stay as written.
func marshal(value interface{}, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
