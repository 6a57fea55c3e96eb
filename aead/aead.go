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

// Package aead provides implementations of the AEAD primitive.
//
// Importing the package registers the built-in AEAD key managers with the
// global registry.
package aead

import (
	"fmt"

	"github.com/sivkit/sivkit/aead/aesgcmsiv"
	"github.com/sivkit/sivkit/core/registry"
)

func init() {
	if err := registry.RegisterKeyManager(aesgcmsiv.New()); err != nil {
		panic(fmt.Sprintf("aead.init() failed: %v", err))
	}
}
