// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"errors"
	"os"
)

var ErrInvalidSize = errors.New("invalid size")

// SaveBytes writes [b] to [filename], truncating any previous content.
// Used for private keys, so the file is owner read/write only.
func SaveBytes(filename string, b []byte) error {
	return os.WriteFile(filename, b, 0o600)
}

// LoadBytes reads [filename] and errors if the content is not exactly
// [expectedSize] bytes. Pass -1 to skip the size check.
func LoadBytes(filename string, expectedSize int) ([]byte, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if expectedSize != -1 && len(bytes) != expectedSize {
		return nil, ErrInvalidSize
	}
	return bytes, nil
}
