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

package duration

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidFormat is returned when unmarshalling a value that is neither
// a duration string nor a duration byte slice.
var ErrInvalidFormat = errors.New("value is not in valid format")

// MarshalText implements encoding.TextMarshaler with the String notation.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler accepting any notation
// understood by Parse.
func (d *Duration) UnmarshalText(p []byte) error {
	return d.unmarshall(p)
}

// MarshalJSON implements json.Marshaler as a quoted String notation.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler accepting a quoted notation
// understood by Parse.
func (d *Duration) UnmarshalJSON(p []byte) error {
	var v string

	if err := json.Unmarshal(p, &v); err != nil {
		return err
	}

	return d.parseString(v)
}

// MarshalYAML implements yaml.Marshaler with the String notation.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler accepting a scalar notation
// understood by Parse.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.parseString(value.Value)
}

// MarshalTOML returns the quoted String notation for TOML encoders.
func (d Duration) MarshalTOML() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

// UnmarshalTOML accepts a string or byte slice notation understood by Parse.
func (d *Duration) UnmarshalTOML(i interface{}) error {
	switch v := i.(type) {
	case string:
		return d.parseString(v)
	case []byte:
		return d.unmarshall(v)
	}

	return ErrInvalidFormat
}

// MarshalCBOR implements cbor.Marshaler with the String notation.
func (d Duration) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(d.String())
}

// UnmarshalCBOR implements cbor.Unmarshaler accepting a text notation
// understood by Parse.
func (d *Duration) UnmarshalCBOR(p []byte) error {
	var v string

	if err := cbor.Unmarshal(p, &v); err != nil {
		return err
	}

	return d.parseString(v)
}

// ViperDecoderHook returns a mapstructure decode hook converting raw
// string configuration values into a Duration when the target field is
// a Duration.
func ViperDecoderHook() func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(Duration(0)) || from.Kind() != reflect.String {
			return data, nil
		}

		if v, ok := data.(string); !ok {
			return data, nil
		} else {
			return Parse(v)
		}
	}
}
