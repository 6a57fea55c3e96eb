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

// Package sivpb defines the wire messages exchanged with key managers:
// key material, key generation parameters, key containers and key
// templates.
//
// The messages use the protocol buffer wire format, encoded and decoded
// with [google.golang.org/protobuf/encoding/protowire]. Unknown fields are
// skipped on parsing, as required by proto semantics.
package sivpb

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// TypeURLPrefix is the namespace prefix of all type URLs understood by this
// module.
const TypeURLPrefix = "type.sivkit.dev/"

// Message is implemented by all message types in this package.
//
// The interface is sealed: the set of recognized messages is fixed, and
// dispatch on a Message value is an exhaustive type switch rather than an
// open-ended runtime type comparison.
type Message interface {
	// TypeName returns the fully qualified name of the message,
	// e.g. "sivkit.AesGcmSivKey".
	TypeName() string

	appendMarshal(b []byte) []byte
	unmarshal(b []byte) error
}

// Marshal returns the wire encoding of m.
func Marshal(m Message) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("sivpb: cannot marshal a nil message")
	}
	return m.appendMarshal(nil), nil
}

// Unmarshal parses the wire encoding b into m, replacing its contents.
func Unmarshal(b []byte, m Message) error {
	if m == nil {
		return fmt.Errorf("sivpb: cannot unmarshal into a nil message")
	}
	if err := m.unmarshal(b); err != nil {
		return fmt.Errorf("sivpb: cannot parse %s: %v", m.TypeName(), err)
	}
	return nil
}

// field is one tag-delimited field of an encoded message.
type field struct {
	num protowire.Number
	typ protowire.Type
	// val holds the field payload: the varint value for VarintType
	// fields, unused otherwise.
	val uint64
	// raw holds the field payload for BytesType fields. It aliases the
	// input buffer; callers that retain it must copy.
	raw []byte
}

// forEachField iterates over the fields of b. Fields of a wire type the
// message does not expect, and fields fn does not recognize, are skipped.
func forEachField(b []byte, fn func(f field)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			f.val = v
			b = b[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			f.raw = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}
		fn(f)
	}
	return nil
}
