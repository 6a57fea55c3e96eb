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

package registry

import "github.com/sivkit/sivkit/proto/sivpb"

// KeyManager processes the key material of the single key type it is
// registered under, and produces primitives for the corresponding keys.
type KeyManager interface {
	// Primitive constructs a primitive instance for the key given in
	// serializedKey, which must be a serialized key message of the type
	// handled by this manager.
	Primitive(serializedKey []byte) (any, error)

	// NewKey generates a new key according to specification in
	// serializedKeyFormat, which must be a serialized key format message
	// of the type handled by this manager.
	NewKey(serializedKeyFormat []byte) (sivpb.Message, error)

	// DoesSupport reports whether this KeyManager supports the key type
	// identified by typeURL.
	DoesSupport(typeURL string) bool

	// TypeURL returns the type URL that identifies the key type of keys
	// managed by this key manager.
	TypeURL() string

	// NewKeyData generates a new KeyData according to specification in
	// serializedKeyFormat. This should be used solely by the key
	// management API.
	NewKeyData(serializedKeyFormat []byte) (*sivpb.KeyData, error)
}
