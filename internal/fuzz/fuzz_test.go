// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fuzz

import (
	"math/rand"
	"os"
	"path"
	"strings"
	"testing"
)

const fuzzInputDir = "testdata/fuzz/crashers"

// TestFuzz replays any inputs previously saved as crashers, the way a
// go-fuzz corpus would be checked on CI. Absence of the directory is
// not a failure: nothing has crashed yet.
func TestFuzz(t *testing.T) {
	infos, err := os.ReadDir(fuzzInputDir)
	if err != nil {
		if os.IsNotExist(err) {
			t.Log(err)
			return
		}
		t.Fatal(err)
	}

	for _, info := range infos {
		if !strings.Contains(info.Name(), ".") {
			testFuzz(t, path.Join(fuzzInputDir, info.Name()))
		}
	}
}

func testFuzz(t *testing.T, filename string) {
	t.Log(filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Errorf("%s: %v", filename, err)
		return
	}

	Fuzz(data)
}

// TestFuzzRandom runs Fuzz over a spread of pseudo-random inputs,
// standing in for a corpus this repository doesn't ship.
func TestFuzzRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		data := make([]byte, 1+rng.Intn(64))
		rng.Read(data)
		Fuzz(data)
	}
}

func TestFuzzEmpty(t *testing.T) {
	if Fuzz(nil) != 0 {
		t.Fatal("expected Fuzz(nil) to report uninteresting input")
	}
}
