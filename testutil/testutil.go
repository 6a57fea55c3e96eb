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

// Package testutil provides common fixtures for tests across the module.
package testutil

import (
	"bytes"

	"github.com/sivkit/sivkit/proto/sivpb"
)

const (
	// AESGCMSIVKeyVersion is the maximal version of AES-GCM-SIV keys
	// this module understands.
	AESGCMSIVKeyVersion = 0
	// AESGCMSIVTypeURL is the type URL of AES-GCM-SIV keys.
	AESGCMSIVTypeURL = "type.sivkit.dev/sivkit.AesGcmSivKey"
)

// NewAESGCMSIVKey creates an AesGcmSivKey with the given version and a key
// value of keySize fixed bytes.
func NewAESGCMSIVKey(version, keySize uint32) *sivpb.AesGcmSivKey {
	return &sivpb.AesGcmSivKey{
		Version:  version,
		KeyValue: bytes.Repeat([]byte{'a'}, int(keySize)),
	}
}

// NewAESGCMSIVKeyFormat creates an AesGcmSivKeyFormat requesting the given
// key size.
func NewAESGCMSIVKeyFormat(keySize uint32) *sivpb.AesGcmSivKeyFormat {
	return &sivpb.AesGcmSivKeyFormat{KeySize: keySize}
}
