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

// Package subtle provides subtle implementations of the AEAD primitive.
package subtle

import (
	"fmt"

	"github.com/sivkit/sivkit"
)

// ValidateAESKeySize checks whether the given key size is a supported AES
// key size.
func ValidateAESKeySize(sizeInBytes uint32) error {
	switch sizeInBytes {
	case 16, 32:
		return nil
	default:
		return fmt.Errorf("invalid AES key size: %d bytes; supported sizes: 16 or 32 bytes: %w", sizeInBytes, sivkit.ErrInvalidArgument)
	}
}
