/***********************************************************************************************************************
 *
 *   MIT License
 *
 *   Copyright (c) 2022 Nicolas JUHEL
 *
 *   Permission is hereby granted, free of charge, to any person obtaining a copy
 *   of this software and associated documentation files (the "Software"), to deal
 *   in the Software without restriction, including without limitation the rights
 *   to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *   copies of the Software, and to permit persons to whom the Software is
 *   furnished to do so, subject to the following conditions:
 *
 *   The above copyright notice and this permission notice shall be included in all
 *   copies or substantial portions of the Software.
 *
 *   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *   AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *   LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *   OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *   SOFTWARE.
 *
 *
 **********************************************************************************************************************/

package size

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidFormat is returned when unmarshalling a value that is neither
// a size string nor a size byte slice.
var ErrInvalidFormat = errors.New("value is not in valid format")

func (s *Size) unmarshall(val []byte) error {
	if tmp, err := ParseByte(val); err != nil {
		return err
	} else {
		*s = tmp
		return nil
	}
}

// MarshalText implements encoding.TextMarshaler with the String notation.
func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler accepting any notation
// understood by Parse.
func (s *Size) UnmarshalText(p []byte) error {
	return s.unmarshall(p)
}

// MarshalJSON implements json.Marshaler as a quoted String notation.
func (s Size) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler accepting a quoted notation
// understood by Parse.
func (s *Size) UnmarshalJSON(p []byte) error {
	var v string

	if err := json.Unmarshal(p, &v); err != nil {
		return err
	}

	return s.parseString(v)
}

// MarshalYAML implements yaml.Marshaler with the String notation.
func (s Size) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler accepting a scalar notation
// understood by Parse.
func (s *Size) UnmarshalYAML(value *yaml.Node) error {
	return s.parseString(value.Value)
}

// MarshalTOML returns the quoted String notation for TOML encoders.
func (s Size) MarshalTOML() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", s.String())), nil
}

// UnmarshalTOML accepts a string or byte slice notation understood by Parse.
func (s *Size) UnmarshalTOML(i interface{}) error {
	switch v := i.(type) {
	case string:
		return s.parseString(v)
	case []byte:
		return s.unmarshall(v)
	}

	return ErrInvalidFormat
}

// MarshalCBOR implements cbor.Marshaler with the String notation.
func (s Size) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(s.String())
}

// UnmarshalCBOR implements cbor.Unmarshaler accepting a text notation
// understood by Parse.
func (s *Size) UnmarshalCBOR(p []byte) error {
	var v string

	if err := cbor.Unmarshal(p, &v); err != nil {
		return err
	}

	return s.parseString(v)
}

// MarshalBinary encodes the size as a big-endian uint64.
func (s Size) MarshalBinary() ([]byte, error) {
	p := make([]byte, 8)
	binary.BigEndian.PutUint64(p, s.Uint64())
	return p, nil
}

// UnmarshalBinary decodes a big-endian uint64 size.
func (s *Size) UnmarshalBinary(p []byte) error {
	if len(p) != 8 {
		return ErrInvalidFormat
	}

	*s = Size(binary.BigEndian.Uint64(p))
	return nil
}

func (s *Size) parseString(val string) error {
	if tmp, err := parseString(val); err != nil {
		return err
	} else {
		*s = tmp
		return nil
	}
}
