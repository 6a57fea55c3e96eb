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

// Package registry provides the process-wide mapping from key type URLs to
// the key managers that handle them.
//
// Built-in key managers are registered from init functions of the packages
// that provide them; the mapping is not mutated afterwards. Clients obtain
// primitives through the dispatch functions of this package rather than by
// reaching into manager internals.
package registry

import (
	"fmt"
	"sync"

	"github.com/sivkit/sivkit"
	"github.com/sivkit/sivkit/proto/sivpb"
)

var (
	keyManagersMu sync.RWMutex
	keyManagers   = make(map[string]KeyManager)
)

// RegisterKeyManager registers km under its type URL. Registering a
// different manager for an already registered type URL is an error;
// re-registering the same manager is a no-op.
func RegisterKeyManager(km KeyManager) error {
	keyManagersMu.Lock()
	defer keyManagersMu.Unlock()
	typeURL := km.TypeURL()
	if existing, found := keyManagers[typeURL]; found {
		if existing != km {
			return fmt.Errorf("registry: a different key manager is already registered for type URL %s", typeURL)
		}
		return nil
	}
	keyManagers[typeURL] = km
	return nil
}

// GetKeyManager returns the key manager registered under typeURL.
func GetKeyManager(typeURL string) (KeyManager, error) {
	keyManagersMu.RLock()
	defer keyManagersMu.RUnlock()
	km, found := keyManagers[typeURL]
	if !found {
		return nil, fmt.Errorf("registry: unsupported key type: %s: %w", typeURL, sivkit.ErrInvalidArgument)
	}
	return km, nil
}

// Primitive creates a new primitive for the key type identified by typeURL
// and the key given in serializedKey.
func Primitive(typeURL string, serializedKey []byte) (any, error) {
	km, err := GetKeyManager(typeURL)
	if err != nil {
		return nil, err
	}
	return km.Primitive(serializedKey)
}

// PrimitiveFromKeyData creates a new primitive for the key in keyData.
func PrimitiveFromKeyData(keyData *sivpb.KeyData) (any, error) {
	if keyData == nil {
		return nil, fmt.Errorf("registry: key data is nil: %w", sivkit.ErrInvalidArgument)
	}
	return Primitive(keyData.TypeURL, keyData.Value)
}

// NewKey generates a new key for the given key template.
func NewKey(template *sivpb.KeyTemplate) (sivpb.Message, error) {
	if template == nil {
		return nil, fmt.Errorf("registry: key template is nil: %w", sivkit.ErrInvalidArgument)
	}
	km, err := GetKeyManager(template.TypeURL)
	if err != nil {
		return nil, err
	}
	return km.NewKey(template.Value)
}

// NewKeyData generates a new KeyData for the given key template.
func NewKeyData(template *sivpb.KeyTemplate) (*sivpb.KeyData, error) {
	if template == nil {
		return nil, fmt.Errorf("registry: key template is nil: %w", sivkit.ErrInvalidArgument)
	}
	km, err := GetKeyManager(template.TypeURL)
	if err != nil {
		return nil, err
	}
	return km.NewKeyData(template.Value)
}
