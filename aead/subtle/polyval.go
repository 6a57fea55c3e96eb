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
	"encoding/binary"
	"fmt"
)

// polyval is the POLYVAL universal hash function defined in RFC 8452,
// Section 3. It operates in GF(2^128) modulo
// x^128 + x^127 + x^126 + x^121 + 1 and absorbs the input in 16-byte
// blocks: S_j = (S_{j-1} XOR X_j) * H * x^-128.
//
// The x^-128 factor of the dot operation is folded into the key element at
// construction time, so each block costs one field multiplication.
type polyval struct {
	h fieldElement
	s fieldElement
}

const polyvalBlockSize = 16

func newPolyval(key []byte) (*polyval, error) {
	if len(key) != polyvalBlockSize {
		return nil, fmt.Errorf("polyval: invalid key size %d", len(key))
	}
	h := newFieldElement(key)
	for i := 0; i < 128; i++ {
		h = h.divX()
	}
	return &polyval{h: h}, nil
}

// update absorbs one 16-byte block.
func (p *polyval) update(block []byte) {
	x := newFieldElement(block)
	p.s = fieldElement{lo: p.s.lo ^ x.lo, hi: p.s.hi ^ x.hi}.mul(p.h)
}

// updatePadded absorbs data, zero-padding the final partial block.
func (p *polyval) updatePadded(data []byte) {
	for len(data) >= polyvalBlockSize {
		p.update(data[:polyvalBlockSize])
		data = data[polyvalBlockSize:]
	}
	if len(data) > 0 {
		var block [polyvalBlockSize]byte
		copy(block[:], data)
		p.update(block[:])
	}
}

// sum writes the current hash value to dst, which must be 16 bytes long.
func (p *polyval) sum(dst []byte) {
	binary.LittleEndian.PutUint64(dst[:8], p.s.lo)
	binary.LittleEndian.PutUint64(dst[8:16], p.s.hi)
}

// fieldElement is an element of GF(2^128) in POLYVAL's little-endian
// convention: bit i of lo is the coefficient of x^i and bit i of hi the
// coefficient of x^(64+i).
type fieldElement struct {
	lo, hi uint64
}

func newFieldElement(b []byte) fieldElement {
	return fieldElement{
		lo: binary.LittleEndian.Uint64(b[:8]),
		hi: binary.LittleEndian.Uint64(b[8:16]),
	}
}

// Reduction constants: x^128 = x^127 + x^126 + x^121 + 1 for mulX, and
// x^-1 = x^127 + x^126 + x^125 + x^120 for divX.
const (
	polyvalMulXMask = 0xc200000000000000
	polyvalDivXMask = 0xe100000000000000
)

// mulX multiplies the element by x. Constant time.
func (e fieldElement) mulX() fieldElement {
	carry := e.hi >> 63
	out := fieldElement{
		lo: e.lo << 1,
		hi: e.hi<<1 | e.lo>>63,
	}
	out.lo ^= carry
	out.hi ^= polyvalMulXMask & (-carry)
	return out
}

// divX multiplies the element by x^-1. Constant time.
func (e fieldElement) divX() fieldElement {
	carry := e.lo & 1
	out := fieldElement{
		lo: e.lo>>1 | e.hi<<63,
		hi: e.hi >> 1,
	}
	out.hi ^= polyvalDivXMask & (-carry)
	return out
}

// mul multiplies two field elements with a bit-serial schoolbook product.
// Constant time: the operands are derived from secret key material.
func (e fieldElement) mul(other fieldElement) fieldElement {
	var z fieldElement
	v := other
	for i := 0; i < 64; i++ {
		mask := -(e.lo >> uint(i) & 1)
		z.lo ^= v.lo & mask
		z.hi ^= v.hi & mask
		v = v.mulX()
	}
	for i := 0; i < 64; i++ {
		mask := -(e.hi >> uint(i) & 1)
		z.lo ^= v.lo & mask
		z.hi ^= v.hi & mask
		v = v.mulX()
	}
	return z
}
