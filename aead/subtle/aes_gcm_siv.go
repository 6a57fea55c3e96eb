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

package subtle

import (
	"crypto/aes"
	"crypto/cipher"
	cryptosubtle "crypto/subtle"
	"encoding/binary"
	"fmt"

	"github.com/sivkit/sivkit"
	"github.com/sivkit/sivkit/subtle/random"
)

const (
	// AESGCMSIVNonceSize is the nonce size of AES-GCM-SIV defined by
	// RFC 8452.
	AESGCMSIVNonceSize = 12

	// AESGCMSIVTagSize is the tag size of AES-GCM-SIV defined by
	// RFC 8452.
	AESGCMSIVTagSize = 16

	// aesGCMSIVMaxPlaintextSize is the maximum plaintext and associated
	// data size defined by RFC 8452.
	aesGCMSIVMaxPlaintextSize = 1 << 36

	intSize = 32 << (^uint(0) >> 63) // 32 or 64
	maxInt  = 1<<(intSize-1) - 1
)

// AESGCMSIV is an implementation of AES-GCM-SIV as defined in RFC 8452.
//
// AES-GCM-SIV is nonce-misuse resistant: the tag doubles as a synthetic IV
// derived from the message itself, so repeating a nonce across messages
// only reveals whether two messages were equal, instead of breaking the
// scheme the way it does for AES-GCM.
//
// Encrypt draws a fresh random 12-byte nonce for every message; the output
// is nonce || ciphertext || tag. An AESGCMSIV value is immutable after
// construction and safe for concurrent use.
type AESGCMSIV struct {
	key []byte
}

var _ sivkit.AEAD = (*AESGCMSIV)(nil)

// NewAESGCMSIV returns an AESGCMSIV instance for the given key, which must
// be 16 or 32 bytes long.
func NewAESGCMSIV(key []byte) (*AESGCMSIV, error) {
	if err := ValidateAESKeySize(uint32(len(key))); err != nil {
		return nil, fmt.Errorf("aes_gcm_siv: %w", err)
	}
	return &AESGCMSIV{key: append([]byte(nil), key...)}, nil
}

// Close wipes the key material held by the instance. The instance must not
// be used afterwards.
func (a *AESGCMSIV) Close() {
	zero(a.key)
}

// Encrypt encrypts plaintext with associatedData. The returned ciphertext
// is nonce (12 bytes) || encrypted plaintext || tag (16 bytes).
func (a *AESGCMSIV) Encrypt(plaintext, associatedData []byte) ([]byte, error) {
	if len(plaintext) > maxInt-AESGCMSIVNonceSize-AESGCMSIVTagSize || uint64(len(plaintext)) > aesGCMSIVMaxPlaintextSize {
		return nil, fmt.Errorf("aes_gcm_siv: plaintext too long: %w", sivkit.ErrInvalidArgument)
	}
	if uint64(len(associatedData)) > aesGCMSIVMaxPlaintextSize {
		return nil, fmt.Errorf("aes_gcm_siv: associated data too long: %w", sivkit.ErrInvalidArgument)
	}
	nonce, err := random.GetRandomBytes(AESGCMSIVNonceSize)
	if err != nil {
		return nil, fmt.Errorf("aes_gcm_siv: cannot generate nonce (%v): %w", err, sivkit.ErrInternal)
	}

	authKey, encKey, err := a.deriveKeys(nonce)
	if err != nil {
		return nil, err
	}
	defer zero(authKey)
	defer zero(encKey)

	enc, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, fmt.Errorf("aes_gcm_siv: aes.NewCipher() failed: %v", err)
	}
	tag, err := computeTag(enc, authKey, nonce, plaintext, associatedData)
	if err != nil {
		return nil, err
	}

	ct := make([]byte, AESGCMSIVNonceSize+len(plaintext)+AESGCMSIVTagSize)
	copy(ct, nonce)
	ctrCrypt(enc, tag, ct[AESGCMSIVNonceSize:AESGCMSIVNonceSize+len(plaintext)], plaintext)
	copy(ct[AESGCMSIVNonceSize+len(plaintext):], tag)
	return ct, nil
}

// Decrypt decrypts ciphertext with associatedData. The ciphertext must be
// in the format nonce || encrypted plaintext || tag.
func (a *AESGCMSIV) Decrypt(ciphertext, associatedData []byte) ([]byte, error) {
	if len(ciphertext) < AESGCMSIVNonceSize+AESGCMSIVTagSize {
		return nil, fmt.Errorf("aes_gcm_siv: ciphertext is too short: %w", sivkit.ErrInvalidArgument)
	}
	if uint64(len(ciphertext)) > aesGCMSIVMaxPlaintextSize+AESGCMSIVNonceSize+AESGCMSIVTagSize {
		return nil, fmt.Errorf("aes_gcm_siv: ciphertext too long: %w", sivkit.ErrInvalidArgument)
	}
	nonce := ciphertext[:AESGCMSIVNonceSize]
	body := ciphertext[AESGCMSIVNonceSize : len(ciphertext)-AESGCMSIVTagSize]
	tag := ciphertext[len(ciphertext)-AESGCMSIVTagSize:]

	authKey, encKey, err := a.deriveKeys(nonce)
	if err != nil {
		return nil, err
	}
	defer zero(authKey)
	defer zero(encKey)

	enc, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, fmt.Errorf("aes_gcm_siv: aes.NewCipher() failed: %v", err)
	}
	pt := make([]byte, len(body))
	ctrCrypt(enc, tag, pt, body)

	expectedTag, err := computeTag(enc, authKey, nonce, pt, associatedData)
	if err != nil {
		return nil, err
	}
	if cryptosubtle.ConstantTimeCompare(expectedTag, tag) != 1 {
		zero(pt)
		return nil, fmt.Errorf("aes_gcm_siv: message authentication failed: %w", sivkit.ErrInvalidArgument)
	}
	return pt, nil
}

// deriveKeys derives the per-nonce POLYVAL key and AES encryption key from
// the key-generating key, per RFC 8452, Section 4.
func (a *AESGCMSIV) deriveKeys(nonce []byte) (authKey, encKey []byte, err error) {
	block, err := aes.NewCipher(a.key)
	if err != nil {
		return nil, nil, fmt.Errorf("aes_gcm_siv: aes.NewCipher() failed: %v", err)
	}
	var in, out [aes.BlockSize]byte
	copy(in[4:], nonce)
	derive := func(dst []byte, counter uint32) {
		for i := 0; i < len(dst)/8; i++ {
			binary.LittleEndian.PutUint32(in[:4], counter)
			block.Encrypt(out[:], in[:])
			copy(dst[8*i:8*i+8], out[:8])
			counter++
		}
	}
	authKey = make([]byte, polyvalBlockSize)
	encKey = make([]byte, len(a.key))
	derive(authKey, 0)
	derive(encKey, 2)
	zero(out[:])
	return authKey, encKey, nil
}

// computeTag evaluates POLYVAL over the associated data and the plaintext
// and turns the result into the synthetic tag, per RFC 8452, Section 5.
func computeTag(enc cipher.Block, authKey, nonce, plaintext, associatedData []byte) ([]byte, error) {
	p, err := newPolyval(authKey)
	if err != nil {
		return nil, fmt.Errorf("aes_gcm_siv: %v", err)
	}
	p.updatePadded(associatedData)
	p.updatePadded(plaintext)
	var lengthBlock [polyvalBlockSize]byte
	binary.LittleEndian.PutUint64(lengthBlock[:8], uint64(len(associatedData))*8)
	binary.LittleEndian.PutUint64(lengthBlock[8:], uint64(len(plaintext))*8)
	p.update(lengthBlock[:])

	tag := make([]byte, AESGCMSIVTagSize)
	p.sum(tag)
	for i := 0; i < AESGCMSIVNonceSize; i++ {
		tag[i] ^= nonce[i]
	}
	tag[15] &= 0x7f
	enc.Encrypt(tag, tag)
	return tag, nil
}

// ctrCrypt XORs in into out with the AES-CTR keystream derived from tag.
// The initial counter block is the tag with its most significant bit set;
// the counter occupies the first four bytes, little-endian, and wraps
// without carrying into the remainder of the block (RFC 8452, Section 5).
func ctrCrypt(enc cipher.Block, tag []byte, out, in []byte) {
	var counterBlock, keystream [aes.BlockSize]byte
	copy(counterBlock[:], tag)
	counterBlock[15] |= 0x80
	counter := binary.LittleEndian.Uint32(counterBlock[:4])
	for len(in) > 0 {
		binary.LittleEndian.PutUint32(counterBlock[:4], counter)
		enc.Encrypt(keystream[:], counterBlock[:])
		n := cryptosubtle.XORBytes(out, in, keystream[:])
		out, in = out[n:], in[n:]
		counter++
	}
	zero(keystream[:])
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
