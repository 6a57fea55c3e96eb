// Copyright 2023 The Sivkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package random provides functions that generate random bytes.
package random

import (
	"crypto/rand"
	"fmt"
	"io"
)

// Reader is the source of random bytes used by this module. It defaults to
// the operating system random source and may be replaced in tests to make
// key and nonce generation deterministic.
var Reader io.Reader = rand.Reader

// GetRandomBytes returns a slice of size random bytes drawn from Reader.
func GetRandomBytes(size uint32) ([]byte, error) {
	b := make([]byte, size)
	if _, err := io.ReadFull(Reader, b); err != nil {
		return nil, fmt.Errorf("random: cannot read %d bytes: %v", size, err)
	}
	return b, nil
}
