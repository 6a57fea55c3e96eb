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

package aead

import (
	"fmt"

	"github.com/sivkit/sivkit/proto/sivpb"
)

// AES128GCMSIVKeyTemplate is a KeyTemplate that generates an AES-GCM-SIV
// key with a 16-byte key.
func AES128GCMSIVKeyTemplate() *sivpb.KeyTemplate {
	return createAESGCMSIVKeyTemplate(16)
}

// AES256GCMSIVKeyTemplate is a KeyTemplate that generates an AES-GCM-SIV
// key with a 32-byte key.
func AES256GCMSIVKeyTemplate() *sivpb.KeyTemplate {
	return createAESGCMSIVKeyTemplate(32)
}

func createAESGCMSIVKeyTemplate(keySize uint32) *sivpb.KeyTemplate {
	format := &sivpb.AesGcmSivKeyFormat{
		KeySize: keySize,
	}
	serializedFormat, err := sivpb.Marshal(format)
	if err != nil {
		// Marshalling a fixed in-memory format message cannot fail.
		panic(fmt.Sprintf("aead: failed to marshal key format: %v", err))
	}
	return &sivpb.KeyTemplate{
		TypeURL: sivpb.TypeURLPrefix + "sivkit.AesGcmSivKey",
		Value:   serializedFormat,
	}
}
