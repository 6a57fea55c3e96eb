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

// AesGcmSivKey holds the raw key material of an AES-GCM-SIV key.
//
// Wire format:
//
//	uint32 version   = 1;
//	bytes  key_value = 3;
type AesGcmSivKey struct {
	Version  uint32
	KeyValue []byte
}

var _ Message = (*AesGcmSivKey)(nil)

// TypeName returns the fully qualified name of the message.
func (k *AesGcmSivKey) TypeName() string { return "sivkit.AesGcmSivKey" }

func (k *AesGcmSivKey) appendMarshal(b []byte) []byte {
	if k.Version != 0 {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(k.Version))
	}
	if len(k.KeyValue) > 0 {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, k.KeyValue)
	}
	return b
}

func (k *AesGcmSivKey) unmarshal(b []byte) error {
	*k = AesGcmSivKey{}
	return forEachField(b, func(f field) {
		switch {
		case f.num == 1 && f.typ == protowire.VarintType:
			k.Version = uint32(f.val)
		case f.num == 3 && f.typ == protowire.BytesType:
			k.KeyValue = append([]byte(nil), f.raw...)
		}
	})
}

// AesGcmSivKeyFormat describes the parameters of AES-GCM-SIV key
// generation.
//
// Wire format:
//
//	uint32 version  = 1;
//	uint32 key_size = 2;
type AesGcmSivKeyFormat struct {
	Version uint32
	// KeySize is the requested size of the key in bytes.
	KeySize uint32
}

var _ Message = (*AesGcmSivKeyFormat)(nil)

// TypeName returns the fully qualified name of the message.
func (f *AesGcmSivKeyFormat) TypeName() string { return "sivkit.AesGcmSivKeyFormat" }

func (f *AesGcmSivKeyFormat) appendMarshal(b []byte) []byte {
	if f.Version != 0 {
		b = protowire.AppendTag(b, 1, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(f.Version))
	}
	if f.KeySize != 0 {
		b = protowire.AppendTag(b, 2, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(f.KeySize))
	}
	return b
}

func (f *AesGcmSivKeyFormat) unmarshal(b []byte) error {
	*f = AesGcmSivKeyFormat{}
	return forEachField(b, func(fd field) {
		switch {
		case fd.num == 1 && fd.typ == protowire.VarintType:
			f.Version = uint32(fd.val)
		case fd.num == 2 && fd.typ == protowire.VarintType:
			f.KeySize = uint32(fd.val)
		}
	})
}
