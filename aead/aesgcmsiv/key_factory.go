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

package aesgcmsiv

import (
	"fmt"

	"github.com/sivkit/sivkit"
	"github.com/sivkit/sivkit/aead/subtle"
	"github.com/sivkit/sivkit/proto/sivpb"
	"github.com/sivkit/sivkit/subtle/random"
)

// KeyFactory manufactures new AES-GCM-SIV keys and key containers from key
// generation parameters.
type KeyFactory struct{}

// NewKey generates a new [sivpb.AesGcmSivKey] from the given serialized
// [sivpb.AesGcmSivKeyFormat].
func (f *KeyFactory) NewKey(serializedKeyFormat []byte) (sivpb.Message, error) {
	format := new(sivpb.AesGcmSivKeyFormat)
	if err := sivpb.Unmarshal(serializedKeyFormat, format); err != nil {
		return nil, fmt.Errorf("aes_gcm_siv_key_manager: could not parse AesGcmSivKeyFormat: %v: %w", err, sivkit.ErrInvalidArgument)
	}
	return f.NewKeyFromFormat(format)
}

// NewKeyFromFormat generates a new [sivpb.AesGcmSivKey] from the given key
// format message, which must be a [sivpb.AesGcmSivKeyFormat].
func (f *KeyFactory) NewKeyFromFormat(m sivpb.Message) (*sivpb.AesGcmSivKey, error) {
	if m == nil {
		return nil, fmt.Errorf("aes_gcm_siv_key_manager: key format is nil: %w", sivkit.ErrInvalidArgument)
	}
	format, ok := m.(*sivpb.AesGcmSivKeyFormat)
	if !ok {
		return nil, fmt.Errorf("aes_gcm_siv_key_manager: key format type %s is not supported: %w", m.TypeName(), sivkit.ErrInvalidArgument)
	}
	if err := f.validateKeyFormat(format); err != nil {
		return nil, err
	}
	keyValue, err := random.GetRandomBytes(format.KeySize)
	if err != nil {
		return nil, fmt.Errorf("aes_gcm_siv_key_manager: cannot generate key material (%v): %w", err, sivkit.ErrInternal)
	}
	return &sivpb.AesGcmSivKey{
		Version:  keyVersion,
		KeyValue: keyValue,
	}, nil
}

// NewKeyData generates a new [sivpb.KeyData] holding a freshly generated
// serialized [sivpb.AesGcmSivKey].
func (f *KeyFactory) NewKeyData(serializedKeyFormat []byte) (*sivpb.KeyData, error) {
	key, err := f.NewKey(serializedKeyFormat)
	if err != nil {
		return nil, err
	}
	serializedKey, err := sivpb.Marshal(key)
	if err != nil {
		return nil, err
	}
	return &sivpb.KeyData{
		TypeURL:         typeURL,
		Value:           serializedKey,
		KeyMaterialType: sivpb.KeyMaterialSymmetric,
	}, nil
}

func (f *KeyFactory) validateKeyFormat(format *sivpb.AesGcmSivKeyFormat) error {
	if err := subtle.ValidateAESKeySize(format.KeySize); err != nil {
		return fmt.Errorf("aes_gcm_siv_key_manager: %w", err)
	}
	return nil
}
