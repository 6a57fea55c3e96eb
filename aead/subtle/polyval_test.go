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
	"bytes"
	"encoding/hex"
	"testing"
)

func mustDecodeHex(t *testing.T, hexStr string) []byte {
	t.Helper()
	x, err := hex.DecodeString(hexStr)
	if err != nil {
		t.Fatalf("hex.DecodeString(%v) err = %v, want nil", hexStr, err)
	}
	return x
}

func TestFieldElementMulX(t *testing.T) {
	// mulX_POLYVAL examples from RFC 8452, Appendix A.
	for _, tc := range []struct {
		in   string
		want string
	}{
		{
			in:   "01000000000000000000000000000000",
			want: "02000000000000000000000000000000",
		},
		{
			in:   "9c98c04df9387ded828175a92ba652d8",
			want: "3931819bf271fada0503eb52574ca572",
		},
	} {
		got := newFieldElement(mustDecodeHex(t, tc.in)).mulX()
		want := newFieldElement(mustDecodeHex(t, tc.want))
		if got != want {
			t.Errorf("mulX(%s) = %+v, want %+v", tc.in, got, want)
		}
	}
}

func TestFieldElementDivXInvertsMulX(t *testing.T) {
	e := newFieldElement(mustDecodeHex(t, "9c98c04df9387ded828175a92ba652d8"))
	if got := e.mulX().divX(); got != e {
		t.Errorf("divX(mulX(e)) = %+v, want %+v", got, e)
	}
	if got := e.divX().mulX(); got != e {
		t.Errorf("mulX(divX(e)) = %+v, want %+v", got, e)
	}
}

func TestPolyvalRFC8452Vectors(t *testing.T) {
	// POLYVAL examples from RFC 8452, Appendix A.
	key := "25629347589242761d31f826ba4b757b"
	blocks := []string{
		"4f4f95668c83dfb6401762bb2d01a262",
		"d1a24ddd2721d006bbe45f20d3c9f362",
	}
	for _, tc := range []struct {
		name      string
		numBlocks int
		want      string
	}{
		{
			name:      "one block",
			numBlocks: 1,
			want:      "cedac64537ff50989c16011551086d77",
		},
		{
			name:      "two blocks",
			numBlocks: 2,
			want:      "f7a3b47b846119fae5b7866cf5e5b77e",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p, err := newPolyval(mustDecodeHex(t, key))
			if err != nil {
				t.Fatalf("newPolyval() err = %v, want nil", err)
			}
			for _, block := range blocks[:tc.numBlocks] {
				p.update(mustDecodeHex(t, block))
			}
			got := make([]byte, polyvalBlockSize)
			p.sum(got)
			if want := mustDecodeHex(t, tc.want); !bytes.Equal(got, want) {
				t.Errorf("polyval sum = %x, want %x", got, want)
			}
		})
	}
}

func TestPolyvalUpdatePaddedMatchesExplicitPadding(t *testing.T) {
	key := mustDecodeHex(t, "25629347589242761d31f826ba4b757b")
	data := mustDecodeHex(t, "4f4f95668c83dfb6401762")

	p1, err := newPolyval(key)
	if err != nil {
		t.Fatalf("newPolyval() err = %v, want nil", err)
	}
	p1.updatePadded(data)
	got := make([]byte, polyvalBlockSize)
	p1.sum(got)

	var padded [polyvalBlockSize]byte
	copy(padded[:], data)
	p2, err := newPolyval(key)
	if err != nil {
		t.Fatalf("newPolyval() err = %v, want nil", err)
	}
	p2.update(padded[:])
	want := make([]byte, polyvalBlockSize)
	p2.sum(want)

	if !bytes.Equal(got, want) {
		t.Errorf("updatePadded sum = %x, want %x", got, want)
	}
}

func TestNewPolyvalRejectsWrongKeySize(t *testing.T) {
	for _, size := range []int{0, 8, 15, 17, 32} {
		if _, err := newPolyval(make([]byte, size)); err == nil {
			t.Errorf("newPolyval(key of %d bytes) err = nil, want error", size)
		}
	}
}
