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

// Package aesgcmsiv provides the key manager for AES-GCM-SIV keys.
package aesgcmsiv

import (
	"fmt"

	"github.com/sivkit/sivkit"
	"github.com/sivkit/sivkit/aead/subtle"
	"github.com/sivkit/sivkit/core/registry"
	"github.com/sivkit/sivkit/proto/sivpb"
)

const (
	keyVersion = 0
	typeURL    = sivpb.TypeURLPrefix + "sivkit.AesGcmSivKey"
)

// KeyManager generates [sivpb.AesGcmSivKey] keys and produces instances of
// [subtle.AESGCMSIV] for them.
//
// A KeyManager is stateless; a single instance may be used concurrently.
type KeyManager struct {
	factory KeyFactory
}

var _ registry.KeyManager = (*KeyManager)(nil)

// New returns a key manager for AES-GCM-SIV keys.
func New() *KeyManager { return &KeyManager{} }

// Primitive constructs a [subtle.AESGCMSIV] for the given serialized
// [sivpb.AesGcmSivKey].
func (km *KeyManager) Primitive(serializedKey []byte) (any, error) {
	return km.primitive(serializedKey)
}

// PrimitiveFromKey constructs a [subtle.AESGCMSIV] for the given key
// message, which must be a [sivpb.AesGcmSivKey].
func (km *KeyManager) PrimitiveFromKey(m sivpb.Message) (sivkit.AEAD, error) {
	if m == nil {
		return nil, fmt.Errorf("aes_gcm_siv_key_manager: key is nil: %w", sivkit.ErrInvalidArgument)
	}
	key, ok := m.(*sivpb.AesGcmSivKey)
	if !ok {
		return nil, fmt.Errorf("aes_gcm_siv_key_manager: key type %s is not supported: %w", m.TypeName(), sivkit.ErrInvalidArgument)
	}
	if err := km.validateKey(key); err != nil {
		return nil, err
	}
	ret, err := subtle.NewAESGCMSIV(key.KeyValue)
	if err != nil {
		return nil, fmt.Errorf("aes_gcm_siv_key_manager: cannot create new primitive: %w", err)
	}
	return ret, nil
}

// PrimitiveFromKeyData constructs a [subtle.AESGCMSIV] for the key material
// held in keyData, whose type URL must match this manager.
func (km *KeyManager) PrimitiveFromKeyData(keyData *sivpb.KeyData) (sivkit.AEAD, error) {
	if keyData == nil {
		return nil, fmt.Errorf("aes_gcm_siv_key_manager: key data is nil: %w", sivkit.ErrInvalidArgument)
	}
	if keyData.TypeURL != typeURL {
		return nil, fmt.Errorf("aes_gcm_siv_key_manager: key type %s is not supported: %w", keyData.TypeURL, sivkit.ErrInvalidArgument)
	}
	return km.primitive(keyData.Value)
}

func (km *KeyManager) primitive(serializedKey []byte) (*subtle.AESGCMSIV, error) {
	key := new(sivpb.AesGcmSivKey)
	if err := sivpb.Unmarshal(serializedKey, key); err != nil {
		return nil, fmt.Errorf("aes_gcm_siv_key_manager: could not parse AesGcmSivKey: %v: %w", err, sivkit.ErrInvalidArgument)
	}
	if err := km.validateKey(key); err != nil {
		return nil, err
	}
	ret, err := subtle.NewAESGCMSIV(key.KeyValue)
	if err != nil {
		return nil, fmt.Errorf("aes_gcm_siv_key_manager: cannot create new primitive: %w", err)
	}
	return ret, nil
}

// NewKey generates a new [sivpb.AesGcmSivKey] from the given serialized
// [sivpb.AesGcmSivKeyFormat].
func (km *KeyManager) NewKey(serializedKeyFormat []byte) (sivpb.Message, error) {
	return km.factory.NewKey(serializedKeyFormat)
}

// NewKeyData generates a new [sivpb.KeyData] from the given serialized
// [sivpb.AesGcmSivKeyFormat]. It should be used solely by the key
// management API.
func (km *KeyManager) NewKeyData(serializedKeyFormat []byte) (*sivpb.KeyData, error) {
	return km.factory.NewKeyData(serializedKeyFormat)
}

// KeyFactory returns the key factory of this key manager.
func (km *KeyManager) KeyFactory() *KeyFactory { return &km.factory }

// DoesSupport reports whether this key manager supports the given key type.
func (km *KeyManager) DoesSupport(typeURL string) bool { return km.TypeURL() == typeURL }

// TypeURL returns the key type of keys managed by this key manager.
func (km *KeyManager) TypeURL() string { return typeURL }

// Version returns the version of the key schema this manager understands.
func (km *KeyManager) Version() uint32 { return keyVersion }

func (km *KeyManager) validateKey(key *sivpb.AesGcmSivKey) error {
	if key.Version > keyVersion {
		return fmt.Errorf("aes_gcm_siv_key_manager: key has version %d; only versions in range [0..%d] are supported: %w", key.Version, keyVersion, sivkit.ErrInvalidArgument)
	}
	if err := subtle.ValidateAESKeySize(uint32(len(key.KeyValue))); err != nil {
		return fmt.Errorf("aes_gcm_siv_key_manager: %w", err)
	}
	return nil
}
