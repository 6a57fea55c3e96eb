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

package sivkit

import "errors"

var (
	// ErrInvalidArgument is wrapped by every error that reports a
	// malformed or unsupported input: wrong type URL, wrong key size,
	// wrong key version, bytes that do not parse, and failed
	// authentication during decryption. These rejections are
	// deterministic; retrying the call cannot succeed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInternal is wrapped by errors caused by a failure of the
	// operating system random source during key or nonce generation.
	ErrInternal = errors.New("internal error")
)

// IsInvalidArgument reports whether err is or wraps ErrInvalidArgument.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsInternal reports whether err is or wraps ErrInternal.
func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}
