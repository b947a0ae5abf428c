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
	"errors"
	"math"
)

var (
	// ErrOverflow is returned when an arithmetic result exceeds the uint64 range.
	ErrOverflow = errors.New("size overflow")
	// ErrInvalidDiviser is returned when dividing by a zero or negative diviser.
	ErrInvalidDiviser = errors.New("invalid diviser")
	// ErrInvalidSubstractor is returned when subtracting more than the stored size.
	ErrInvalidSubstractor = errors.New("invalid substractor")
)

// Mul multiplies the size by the given factor, rounding the result to the
// nearest byte. The result saturates at zero and math.MaxUint64.
func (s *Size) Mul(factor float64) {
	_ = s.MulErr(factor)
}

// MulErr multiplies the size by the given factor, rounding the result to the
// nearest byte. The result saturates at zero and math.MaxUint64; an error is
// returned when saturation occurred.
func (s *Size) MulErr(factor float64) error {
	r := math.Round(s.Float64() * factor)

	if r < 0 {
		*s = SizeNul
		return ErrOverflow
	} else if r >= float64(math.MaxUint64) {
		*s = Size(math.MaxUint64)
		return ErrOverflow
	}

	*s = Size(r)
	return nil
}

// Div divides the size by the given diviser, rounding the result to the
// nearest byte. Zero or negative divisers leave the size unchanged.
func (s *Size) Div(diviser float64) {
	_ = s.DivErr(diviser)
}

// DivErr divides the size by the given diviser, rounding the result to the
// nearest byte. Zero or negative divisers leave the size unchanged and
// return an error.
func (s *Size) DivErr(diviser float64) error {
	if diviser <= 0 {
		return ErrInvalidDiviser
	}

	r := math.Round(s.Float64() / diviser)

	if r >= float64(math.MaxUint64) {
		*s = Size(math.MaxUint64)
		return ErrOverflow
	}

	*s = Size(r)
	return nil
}

// Add increments the size by the given number of bytes, saturating at
// math.MaxUint64.
func (s *Size) Add(val uint64) {
	_ = s.AddErr(val)
}

// AddErr increments the size by the given number of bytes, saturating at
// math.MaxUint64; an error is returned when saturation occurred.
func (s *Size) AddErr(val uint64) error {
	if uint64(*s) > math.MaxUint64-val {
		*s = Size(math.MaxUint64)
		return ErrOverflow
	}

	*s += Size(val)
	return nil
}

// Sub decrements the size by the given number of bytes, saturating at zero.
func (s *Size) Sub(val uint64) {
	_ = s.SubErr(val)
}

// SubErr decrements the size by the given number of bytes, saturating at
// zero; an error is returned when saturation occurred.
func (s *Size) SubErr(val uint64) error {
	if uint64(*s) < val {
		*s = SizeNul
		return ErrInvalidSubstractor
	}

	*s -= Size(val)
	return nil
}
