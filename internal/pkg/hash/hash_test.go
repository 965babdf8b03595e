//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package hash

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "")
	if err != nil {
		t.Fatalf("unable to create temporary directory")
	}
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "profile.json")
	err = os.WriteFile(path, []byte("[]"), 0644)
	if err != nil {
		t.Fatalf("unable to write %s: %s", path, err)
	}

	h, err := File(path)
	if err != nil {
		t.Fatalf("File() failed: %s", err)
	}
	h2, err := Reader(strings.NewReader("[]"))
	if err != nil {
		t.Fatalf("Reader() failed: %s", err)
	}
	if h != h2 || len(h) != 64 {
		t.Fatalf("File() returned %s while Reader() returned %s", h, h2)
	}

	s, err := Short(path)
	if err != nil {
		t.Fatalf("Short() failed: %s", err)
	}
	if !strings.HasPrefix(h, s) || len(s) != shortLen {
		t.Fatalf("Short() returned %s for %s", s, h)
	}

	_, err = File(filepath.Join(tempDir, "missing.json"))
	if err == nil {
		t.Fatalf("File() succeeded on a missing file")
	}
}
