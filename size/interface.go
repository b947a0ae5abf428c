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

// Package size provides a byte-count type with human-readable parsing, formatting
// and multiple encoding formats.
//
// The Size type is an uint64 number of bytes extended with:
//   - Human notation parsing ("5MB", "1.5KB", "10G", ...)
//   - Unit-scaled formatting (String, Format, Unit, Code)
//   - Saturating arithmetic helpers (Add, Sub, Mul, Div)
//   - Multiple encoding support (JSON, YAML, TOML, CBOR, text, binary)
//   - Viper configuration integration
//
// Units follow the binary progression (1KB = 1024 bytes).
//
// Example usage:
//
//	import libsiz "github.com/jincoder/serialtool/size"
//
//	// Parse a human-readable size
//	s, _ := libsiz.Parse("5MB")
//	fmt.Println(s.String())  // Output: 5.00MB
//
//	// Use constants in expressions
//	capa := 512 * libsiz.SizeKilo
//
//	// Use in JSON
//	type Config struct {
//	    MaxSize libsiz.Size `json:"max-size"`
//	}
package size

import "math"

// Size is a number of bytes stored as an uint64.
type Size uint64

const (
	// SizeNul is the zero Size.
	SizeNul Size = 0
	// SizeUnit is one byte.
	SizeUnit Size = 1
	// SizeKilo is one kilobyte (1024 bytes).
	SizeKilo Size = 1 << 10
	// SizeMega is one megabyte (1024 kilobytes).
	SizeMega Size = 1 << 20
	// SizeGiga is one gigabyte (1024 megabytes).
	SizeGiga Size = 1 << 30
	// SizeTera is one terabyte (1024 gigabytes).
	SizeTera Size = 1 << 40
	// SizePeta is one petabyte (1024 terabytes).
	SizePeta Size = 1 << 50
	// SizeExa is one exabyte (1024 petabytes).
	SizeExa Size = 1 << 60
)

// defUnit is the rune appended to the magnitude letter when formatting
// with a zero unit parameter. See SetDefaultUnit.
var defUnit rune = 'B'

// SetDefaultUnit changes the default unit suffix rune used by Unit, Code and
// String when the caller passes a zero unit. Passing a zero rune restores the
// default 'B' suffix.
func SetDefaultUnit(unit rune) {
	if unit == 0 {
		unit = 'B'
	}

	defUnit = unit
}

// ParseInt64 returns a Size representing the absolute value of i bytes.
func ParseInt64(i int64) Size {
	if i == math.MinInt64 {
		return Size(1) << 63
	} else if i < 0 {
		return Size(-i)
	}

	return Size(i)
}

// SizeFromInt64 returns a Size representing the absolute value of i bytes.
//
// Deprecated: use ParseInt64.
func SizeFromInt64(i int64) Size {
	return ParseInt64(i)
}

// ParseUint64 returns a Size representing i bytes.
func ParseUint64(i uint64) Size {
	return Size(i)
}

// ParseFloat64 returns a Size representing the absolute value of f floored
// to the previous integer number of bytes. Values beyond the uint64 range
// are capped to math.MaxUint64.
func ParseFloat64(f float64) Size {
	if math.IsNaN(f) {
		return SizeNul
	}

	f = math.Abs(math.Floor(f))

	if f >= float64(math.MaxUint64) {
		return Size(math.MaxUint64)
	}

	return Size(f)
}

// SizeFromFloat64 returns a Size representing the absolute value of f bytes.
//
// Deprecated: use ParseFloat64.
func SizeFromFloat64(f float64) Size {
	return ParseFloat64(f)
}

// Parse parses a human-readable size string ("5MB", "1.5KB", "10G", ...)
// and returns the matching Size.
//
// The number part accepts an optional leading '+' sign and a fractional part.
// The unit part accepts single letters (B, K, M, G, T, P, E) or letter pairs
// (KB, MB, GB, TB, PB, EB), case-insensitive. Surrounding whitespace and
// quotes are ignored. Compound notations like "5GB2MB" sum their segments.
//
// Negative sizes, missing or unknown units, and values overflowing an uint64
// are rejected with an error.
func Parse(s string) (Size, error) {
	return parseString(s)
}

// ParseSize parses a human-readable size string.
//
// Deprecated: use Parse.
func ParseSize(s string) (Size, error) {
	return parseString(s)
}

// ParseByte parses a human-readable size byte slice.
func ParseByte(p []byte) (Size, error) {
	return parseString(string(p))
}

// ParseByteAsSize parses a human-readable size byte slice.
//
// Deprecated: use ParseByte.
func ParseByteAsSize(p []byte) (Size, error) {
	return parseString(string(p))
}

// GetSize parses a human-readable size string and returns the matching Size
// with true, or SizeNul with false if the string is not a valid size.
//
// Deprecated: use Parse.
func GetSize(s string) (Size, bool) {
	if v, e := parseString(s); e != nil {
		return SizeNul, false
	} else {
		return v, true
	}
}
