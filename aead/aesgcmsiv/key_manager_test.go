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

package aesgcmsiv_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sivkit/sivkit"
	"github.com/sivkit/sivkit/aead/aesgcmsiv"
	"github.com/sivkit/sivkit/proto/sivpb"
	"github.com/sivkit/sivkit/testutil"
)

func TestKeyManagerBasics(t *testing.T) {
	km := aesgcmsiv.New()
	if got, want := km.Version(), uint32(testutil.AESGCMSIVKeyVersion); got != want {
		t.Errorf("km.Version() = %d, want %d", got, want)
	}
	if got, want := km.TypeURL(), testutil.AESGCMSIVTypeURL; got != want {
		t.Errorf("km.TypeURL() = %q, want %q", got, want)
	}
	if !km.DoesSupport(testutil.AESGCMSIVTypeURL) {
		t.Errorf("km.DoesSupport(%q) = false, want true", testutil.AESGCMSIVTypeURL)
	}
	if km.DoesSupport("some bad type url") {
		t.Errorf("km.DoesSupport(%q) = true, want false", "some bad type url")
	}
}

func TestPrimitiveRejectsBadKeySizes(t *testing.T) {
	km := aesgcmsiv.New()
	for keySize := uint32(0); keySize < 42; keySize++ {
		if keySize == 16 || keySize == 32 {
			continue
		}
		t.Run(fmt.Sprintf("keySize=%d", keySize), func(t *testing.T) {
			key := testutil.NewAESGCMSIVKey(testutil.AESGCMSIVKeyVersion, keySize)
			if _, err := km.PrimitiveFromKey(key); err == nil {
				t.Errorf("km.PrimitiveFromKey(key of %d bytes) err = nil, want error", keySize)
			} else {
				if !strings.Contains(err.Error(), fmt.Sprintf("%d bytes", keySize)) {
					t.Errorf("km.PrimitiveFromKey() err = %q, want substring %q", err, fmt.Sprintf("%d bytes", keySize))
				}
				if !strings.Contains(err.Error(), "supported sizes") {
					t.Errorf("km.PrimitiveFromKey() err = %q, want substring %q", err, "supported sizes")
				}
			}

			serializedKey, err := sivpb.Marshal(key)
			if err != nil {
				t.Fatalf("sivpb.Marshal() err = %v, want nil", err)
			}
			if _, err := km.Primitive(serializedKey); err == nil {
				t.Errorf("km.Primitive(key of %d bytes) err = nil, want error", keySize)
			} else if !strings.Contains(err.Error(), "supported sizes") {
				t.Errorf("km.Primitive() err = %q, want substring %q", err, "supported sizes")
			}
		})
	}
}

func TestPrimitiveRejectsBadVersion(t *testing.T) {
	km := aesgcmsiv.New()
	key := testutil.NewAESGCMSIVKey(testutil.AESGCMSIVKeyVersion+1, 16)
	if _, err := km.PrimitiveFromKey(key); err == nil {
		t.Errorf("km.PrimitiveFromKey(key with version 1) err = nil, want error")
	} else {
		if !strings.Contains(err.Error(), "version") {
			t.Errorf("km.PrimitiveFromKey() err = %q, want substring %q", err, "version")
		}
		if !errors.Is(err, sivkit.ErrInvalidArgument) {
			t.Errorf("km.PrimitiveFromKey() err = %v, want ErrInvalidArgument", err)
		}
	}
}

func TestPrimitiveRejectsWrongKeyType(t *testing.T) {
	km := aesgcmsiv.New()
	format := testutil.NewAESGCMSIVKeyFormat(16)
	if _, err := km.PrimitiveFromKey(format); err == nil {
		t.Errorf("km.PrimitiveFromKey(key format) err = nil, want error")
	} else {
		if !strings.Contains(err.Error(), "AesGcmSivKeyFormat") {
			t.Errorf("km.PrimitiveFromKey() err = %q, want substring %q", err, "AesGcmSivKeyFormat")
		}
		if !strings.Contains(err.Error(), "not supported") {
			t.Errorf("km.PrimitiveFromKey() err = %q, want substring %q", err, "not supported")
		}
	}
	if _, err := km.PrimitiveFromKey(nil); err == nil {
		t.Errorf("km.PrimitiveFromKey(nil) err = nil, want error")
	}
}

func TestPrimitiveRejectsBadSerialization(t *testing.T) {
	km := aesgcmsiv.New()
	if _, err := km.Primitive([]byte("some bad serialized proto")); err == nil {
		t.Errorf("km.Primitive(bad serialized proto) err = nil, want error")
	} else if !strings.Contains(err.Error(), "could not parse") {
		t.Errorf("km.Primitive() err = %q, want substring %q", err, "could not parse")
	}
}

func TestPrimitiveFromKeyDataErrors(t *testing.T) {
	km := aesgcmsiv.New()
	if _, err := km.PrimitiveFromKeyData(nil); err == nil {
		t.Errorf("km.PrimitiveFromKeyData(nil) err = nil, want error")
	}

	badTypeURL := "type.sivkit.dev/some.other.KeyType"
	keyData := &sivpb.KeyData{
		TypeURL:         badTypeURL,
		Value:           []byte{},
		KeyMaterialType: sivpb.KeyMaterialSymmetric,
	}
	if _, err := km.PrimitiveFromKeyData(keyData); err == nil {
		t.Errorf("km.PrimitiveFromKeyData(key data with bad type url) err = nil, want error")
	} else {
		if !strings.Contains(err.Error(), badTypeURL) {
			t.Errorf("km.PrimitiveFromKeyData() err = %q, want substring %q", err, badTypeURL)
		}
		if !strings.Contains(err.Error(), "not supported") {
			t.Errorf("km.PrimitiveFromKeyData() err = %q, want substring %q", err, "not supported")
		}
	}

	keyData = &sivpb.KeyData{
		TypeURL:         testutil.AESGCMSIVTypeURL,
		Value:           []byte("some bad serialized proto"),
		KeyMaterialType: sivpb.KeyMaterialSymmetric,
	}
	if _, err := km.PrimitiveFromKeyData(keyData); err == nil {
		t.Errorf("km.PrimitiveFromKeyData(key data with bad value) err = nil, want error")
	} else if !strings.Contains(err.Error(), "could not parse") {
		t.Errorf("km.PrimitiveFromKeyData() err = %q, want substring %q", err, "could not parse")
	}

	// An empty value parses to an empty key message, which fails the key
	// size check rather than the parsing step.
	keyData = &sivpb.KeyData{
		TypeURL:         testutil.AESGCMSIVTypeURL,
		Value:           nil,
		KeyMaterialType: sivpb.KeyMaterialSymmetric,
	}
	if _, err := km.PrimitiveFromKeyData(keyData); err == nil {
		t.Errorf("km.PrimitiveFromKeyData(key data with empty value) err = nil, want error")
	} else if !strings.Contains(err.Error(), "0 bytes") {
		t.Errorf("km.PrimitiveFromKeyData() err = %q, want substring %q", err, "0 bytes")
	}
}

func TestPrimitiveEncryptDecrypt(t *testing.T) {
	km := aesgcmsiv.New()
	plaintext := []byte("some plaintext")
	aad := []byte("some aad")
	for _, keyValue := range [][]byte{
		[]byte("16 bytes of key "),
		[]byte("32 bytes of key material here!!!"),
	} {
		t.Run(fmt.Sprintf("keySize=%d", len(keyValue)), func(t *testing.T) {
			key := &sivpb.AesGcmSivKey{
				Version:  testutil.AESGCMSIVKeyVersion,
				KeyValue: keyValue,
			}
			encryptor, err := km.PrimitiveFromKey(key)
			if err != nil {
				t.Fatalf("km.PrimitiveFromKey() err = %v, want nil", err)
			}
			ct, err := encryptor.Encrypt(plaintext, aad)
			if err != nil {
				t.Fatalf("encryptor.Encrypt() err = %v, want nil", err)
			}

			serializedKey, err := sivpb.Marshal(key)
			if err != nil {
				t.Fatalf("sivpb.Marshal() err = %v, want nil", err)
			}
			keyData := &sivpb.KeyData{
				TypeURL:         testutil.AESGCMSIVTypeURL,
				Value:           serializedKey,
				KeyMaterialType: sivpb.KeyMaterialSymmetric,
			}
			decryptor, err := km.PrimitiveFromKeyData(keyData)
			if err != nil {
				t.Fatalf("km.PrimitiveFromKeyData() err = %v, want nil", err)
			}
			decrypted, err := decryptor.Decrypt(ct, aad)
			if err != nil {
				t.Fatalf("decryptor.Decrypt() err = %v, want nil", err)
			}
			if !bytes.Equal(decrypted, plaintext) {
				t.Errorf("decryptor.Decrypt() = %q, want %q", decrypted, plaintext)
			}
		})
	}
}

func TestNewKeyErrors(t *testing.T) {
	factory := aesgcmsiv.New().KeyFactory()

	key := testutil.NewAESGCMSIVKey(testutil.AESGCMSIVKeyVersion, 16)
	if _, err := factory.NewKeyFromFormat(key); err == nil {
		t.Errorf("factory.NewKeyFromFormat(key message) err = nil, want error")
	} else {
		if !strings.Contains(err.Error(), "AesGcmSivKey") {
			t.Errorf("factory.NewKeyFromFormat() err = %q, want substring %q", err, "AesGcmSivKey")
		}
		if !strings.Contains(err.Error(), "not supported") {
			t.Errorf("factory.NewKeyFromFormat() err = %q, want substring %q", err, "not supported")
		}
	}
	if _, err := factory.NewKeyFromFormat(nil); err == nil {
		t.Errorf("factory.NewKeyFromFormat(nil) err = nil, want error")
	}

	if _, err := factory.NewKey([]byte("some bad serialized proto")); err == nil {
		t.Errorf("factory.NewKey(bad serialized proto) err = nil, want error")
	} else if !strings.Contains(err.Error(), "could not parse") {
		t.Errorf("factory.NewKey() err = %q, want substring %q", err, "could not parse")
	}

	format := testutil.NewAESGCMSIVKeyFormat(8)
	if _, err := factory.NewKeyFromFormat(format); err == nil {
		t.Errorf("factory.NewKeyFromFormat(format with key size 8) err = nil, want error")
	} else {
		if !strings.Contains(err.Error(), "8 bytes") {
			t.Errorf("factory.NewKeyFromFormat() err = %q, want substring %q", err, "8 bytes")
		}
		if !strings.Contains(err.Error(), "supported sizes") {
			t.Errorf("factory.NewKeyFromFormat() err = %q, want substring %q", err, "supported sizes")
		}
	}
}

func TestNewKeyBasics(t *testing.T) {
	km := aesgcmsiv.New()
	for _, keySize := range []uint32{16, 32} {
		t.Run(fmt.Sprintf("keySize=%d", keySize), func(t *testing.T) {
			format := testutil.NewAESGCMSIVKeyFormat(keySize)
			serializedFormat, err := sivpb.Marshal(format)
			if err != nil {
				t.Fatalf("sivpb.Marshal() err = %v, want nil", err)
			}

			m, err := km.NewKey(serializedFormat)
			if err != nil {
				t.Fatalf("km.NewKey() err = %v, want nil", err)
			}
			key, ok := m.(*sivpb.AesGcmSivKey)
			if !ok {
				t.Fatalf("km.NewKey() returned %T, want *sivpb.AesGcmSivKey", m)
			}
			if key.Version != testutil.AESGCMSIVKeyVersion {
				t.Errorf("key.Version = %d, want %d", key.Version, testutil.AESGCMSIVKeyVersion)
			}
			if got, want := len(key.KeyValue), int(keySize); got != want {
				t.Errorf("len(key.KeyValue) = %d, want %d", got, want)
			}
			if got, want := sivpb.TypeURLPrefix+key.TypeName(), testutil.AESGCMSIVTypeURL; got != want {
				t.Errorf("type url of new key = %q, want %q", got, want)
			}

			keyData, err := km.NewKeyData(serializedFormat)
			if err != nil {
				t.Fatalf("km.NewKeyData() err = %v, want nil", err)
			}
			if keyData.TypeURL != testutil.AESGCMSIVTypeURL {
				t.Errorf("keyData.TypeURL = %q, want %q", keyData.TypeURL, testutil.AESGCMSIVTypeURL)
			}
			if keyData.KeyMaterialType != sivpb.KeyMaterialSymmetric {
				t.Errorf("keyData.KeyMaterialType = %v, want %v", keyData.KeyMaterialType, sivpb.KeyMaterialSymmetric)
			}
			unmarshaled := new(sivpb.AesGcmSivKey)
			if err := sivpb.Unmarshal(keyData.Value, unmarshaled); err != nil {
				t.Fatalf("sivpb.Unmarshal(keyData.Value) err = %v, want nil", err)
			}
			if got, want := len(unmarshaled.KeyValue), int(keySize); got != want {
				t.Errorf("len(unmarshaled.KeyValue) = %d, want %d", got, want)
			}
		})
	}
}

func TestNewKeyMultipleTimes(t *testing.T) {
	km := aesgcmsiv.New()
	serializedFormat, err := sivpb.Marshal(testutil.NewAESGCMSIVKeyFormat(16))
	if err != nil {
		t.Fatalf("sivpb.Marshal() err = %v, want nil", err)
	}
	keys := make(map[string]bool)
	n := 26
	for i := 0; i < n; i++ {
		m, err := km.NewKey(serializedFormat)
		if err != nil {
			t.Fatalf("km.NewKey() err = %v, want nil", err)
		}
		key := m.(*sivpb.AesGcmSivKey)
		keys[string(key.KeyValue)] = true

		keyData, err := km.NewKeyData(serializedFormat)
		if err != nil {
			t.Fatalf("km.NewKeyData() err = %v, want nil", err)
		}
		unmarshaled := new(sivpb.AesGcmSivKey)
		if err := sivpb.Unmarshal(keyData.Value, unmarshaled); err != nil {
			t.Fatalf("sivpb.Unmarshal(keyData.Value) err = %v, want nil", err)
		}
		keys[string(unmarshaled.KeyValue)] = true
	}
	if len(keys) != n*2 {
		t.Errorf("generated %d distinct keys, want %d", len(keys), n*2)
	}
}
