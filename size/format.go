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

import "fmt"

const (
	// FormatRound0 formats the scaled value without decimals.
	FormatRound0 = "%.0f"
	// FormatRound1 formats the scaled value with 1 decimal.
	FormatRound1 = "%.1f"
	// FormatRound2 formats the scaled value with 2 decimals.
	FormatRound2 = "%.2f"
	// FormatRound3 formats the scaled value with 3 decimals.
	FormatRound3 = "%.3f"
)

// scale returns the magnitude the Size belongs to, as the magnitude Size
// value and its letter ("" for plain bytes).
func (s Size) scale() (Size, string) {
	switch {
	case s >= SizeExa:
		return SizeExa, "E"
	case s >= SizePeta:
		return SizePeta, "P"
	case s >= SizeTera:
		return SizeTera, "T"
	case s >= SizeGiga:
		return SizeGiga, "G"
	case s >= SizeMega:
		return SizeMega, "M"
	case s >= SizeKilo:
		return SizeKilo, "K"
	}

	return SizeUnit, ""
}

// String returns the size formatted with 2 decimals and its unit code,
// like "5.00MB" or "512.00B".
func (s Size) String() string {
	return s.Format(FormatRound2) + s.Unit(0)
}

// Format applies the given fmt verb to the size value scaled to its
// magnitude. For example Format(FormatRound1) on 1536 bytes returns "1.5".
func (s Size) Format(format string) string {
	m, _ := s.scale()
	return fmt.Sprintf(format, s.Float64()/m.Float64())
}

// Unit returns the unit code of the size's magnitude, like "KB" or "MB",
// suffixed with the given unit rune. A zero unit rune uses the default
// suffix configured by SetDefaultUnit.
func (s Size) Unit(unit rune) string {
	if unit == 0 {
		unit = defUnit
	}

	_, l := s.scale()

	return l + string(unit)
}

// Code returns the unit code of the size's magnitude, like "KB" or "MB",
// suffixed with the given unit rune. A zero unit rune uses the default
// suffix configured by SetDefaultUnit.
func (s Size) Code(unit rune) string {
	return s.Unit(unit)
}

// KiloBytes returns the size as a whole number of kilobytes, rounded down.
func (s Size) KiloBytes() uint64 {
	return uint64(s / SizeKilo)
}

// MegaBytes returns the size as a whole number of megabytes, rounded down.
func (s Size) MegaBytes() uint64 {
	return uint64(s / SizeMega)
}

// GigaBytes returns the size as a whole number of gigabytes, rounded down.
func (s Size) GigaBytes() uint64 {
	return uint64(s / SizeGiga)
}

// TeraBytes returns the size as a whole number of terabytes, rounded down.
func (s Size) TeraBytes() uint64 {
	return uint64(s / SizeTera)
}

// PetaBytes returns the size as a whole number of petabytes, rounded down.
func (s Size) PetaBytes() uint64 {
	return uint64(s / SizePeta)
}

// ExaBytes returns the size as a whole number of exabytes, rounded down.
func (s Size) ExaBytes() uint64 {
	return uint64(s / SizeExa)
}
