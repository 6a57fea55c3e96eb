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

package sivpb

import "google.golang.org/protobuf/encoding/protowire"

// KeyMaterialType describes the nature of the key material held by a
// KeyData message.
type KeyMaterialType uint32

// Key material types.
const (
	KeyMaterialUnknown KeyMaterialType = iota
	KeyMaterialSymmetric
	KeyMaterialAsymmetricPrivate
	KeyMaterialAsymmetricPublic
	KeyMaterialRemote
)

// String returns the name of the key material type.
func (t KeyMaterialType) String() string {
	switch t {
	case KeyMaterialSymmetric:
		return "SYMMETRIC"
	case KeyMaterialAsymmetricPrivate:
		return "ASYMMETRIC_PRIVATE"
	case KeyMaterialAsymmetricPublic:
		return "ASYMMETRIC_PUBLIC"
	case KeyMaterialRemote:
		return "REMOTE"
	default:
		return "UNKNOWN_KEYMATERIAL"
	}
}

// KeyData is the container for key material of any type: the type URL
// identifying the key schema, the serialized key message, and the nature of
// the material.
//
// Wire format:
//
//	string type_url          = 1;
//	bytes  value             = 2;
//	uint32 key_material_type = 3;
type KeyData struct {
	TypeURL         string
	Value           []byte
	KeyMaterialType KeyMaterialType
}

var _ Message = (*KeyData)(nil)

// TypeName returns the fully qualified name of the message.
func (d *KeyData) TypeName() string { return "sivkit.KeyData" }

func (d *KeyData) appendMarshal(b []byte) []byte {
	if d.TypeURL != "" {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, d.TypeURL)
	}
	if len(d.Value) > 0 {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, d.Value)
	}
	if d.KeyMaterialType != KeyMaterialUnknown {
		b = protowire.AppendTag(b, 3, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(d.KeyMaterialType))
	}
	return b
}

func (d *KeyData) unmarshal(b []byte) error {
	*d = KeyData{}
	return forEachField(b, func(f field) {
		switch {
		case f.num == 1 && f.typ == protowire.BytesType:
			d.TypeURL = string(f.raw)
		case f.num == 2 && f.typ == protowire.BytesType:
			d.Value = append([]byte(nil), f.raw...)
		case f.num == 3 && f.typ == protowire.VarintType:
			d.KeyMaterialType = KeyMaterialType(f.val)
		}
	})
}

// KeyTemplate names a key type together with serialized generation
// parameters for it. Templates are the input of key generation through the
// registry.
//
// Wire format:
//
//	string type_url = 1;
//	bytes  value    = 2;
type KeyTemplate struct {
	TypeURL string
	Value   []byte
}

var _ Message = (*KeyTemplate)(nil)

// TypeName returns the fully qualified name of the message.
func (t *KeyTemplate) TypeName() string { return "sivkit.KeyTemplate" }

func (t *KeyTemplate) appendMarshal(b []byte) []byte {
	if t.TypeURL != "" {
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendString(b, t.TypeURL)
	}
	if len(t.Value) > 0 {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, t.Value)
	}
	return b
}

func (t *KeyTemplate) unmarshal(b []byte) error {
	*t = KeyTemplate{}
	return forEachField(b, func(f field) {
		switch {
		case f.num == 1 && f.typ == protowire.BytesType:
			t.TypeURL = string(f.raw)
		case f.num == 2 && f.typ == protowire.BytesType:
			t.Value = append([]byte(nil), f.raw...)
		}
	})
}
