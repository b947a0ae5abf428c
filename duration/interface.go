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

// Package duration wraps time.Duration with days notation and the
// encodings configuration documents need.
//
// A Duration parses and renders the "5d23h15m13s" notation (days on top
// of the standard units), marshals to JSON, YAML, TOML, CBOR and text,
// and plugs into viper decoding. Timeouts and delays in the settings
// document use this type.
package duration

import (
	"math"
	"time"
)

// Duration is a time.Duration with days notation support.
type Duration time.Duration

// Parse parses a duration notation, accepting a leading days component
// ("2d12h") on top of the standard time.ParseDuration units. Quotes and
// inner whitespace are ignored.
func Parse(s string) (Duration, error) {
	return parseString(s)
}

// ParseByte parses a duration notation from a byte slice.
func ParseByte(p []byte) (Duration, error) {
	return parseString(string(p))
}

// ParseDuration converts a time.Duration.
func ParseDuration(d time.Duration) Duration {
	return Duration(d)
}

// ParseFloat64 converts a number of nanoseconds, capped to the int64
// range and rounded to the nearest integer.
func ParseFloat64(f float64) Duration {
	const mx float64 = math.MaxInt64

	if f > mx {
		return Duration(math.MaxInt64)
	} else if f < -mx {
		return Duration(-math.MaxInt64)
	}

	return Duration(math.Round(f))
}

// Seconds returns a Duration of i seconds.
func Seconds(i int64) Duration {
	return Duration(time.Duration(i) * time.Second)
}

// Minutes returns a Duration of i minutes.
func Minutes(i int64) Duration {
	return Duration(time.Duration(i) * time.Minute)
}

// Hours returns a Duration of i hours.
func Hours(i int64) Duration {
	return Duration(time.Duration(i) * time.Hour)
}

// Days returns a Duration of i days of 24 hours.
func Days(i int64) Duration {
	return Duration(time.Duration(i) * 24 * time.Hour)
}
