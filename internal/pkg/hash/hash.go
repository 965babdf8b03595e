//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

// Package hash fingerprints timeline files so reports can be matched with the trace they come from.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// shortLen is the number of hexadecimal characters of a short fingerprint
const shortLen = 12

// File returns the SHA-256 of the content of a file
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return Reader(f)
}

// Reader returns the SHA-256 of everything that can be read from r
func Reader(r io.Reader) (string, error) {
	hasher := sha256.New()
	_, err := io.Copy(hasher, r)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Short returns an abbreviated fingerprint of a file, suitable for display
func Short(path string) (string, error) {
	h, err := File(path)
	if err != nil {
		return "", err
	}
	return h[:shortLen], nil
}
