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
	"strconv"
	"strings"
)

var (
	// ErrInvalidSize is returned when the input is empty or not a size notation.
	ErrInvalidSize = errors.New("invalid size")
	// ErrMissingUnit is returned when the input carries a number without any unit.
	ErrMissingUnit = errors.New("invalid size: missing unit")
	// ErrUnknownUnit is returned when the input unit is not a recognized unit.
	ErrUnknownUnit = errors.New("invalid size: unknown unit")
	// ErrNegativeSize is returned when the input describes a negative size.
	ErrNegativeSize = errors.New("invalid size: negative size")
	// ErrOverflowSize is returned when the input exceeds the uint64 range.
	ErrOverflowSize = errors.New("invalid size: overflow")
)

func unitScale(u string) (Size, bool) {
	switch u {
	case "B", "O":
		return SizeUnit, true
	case "K", "KB", "KO":
		return SizeKilo, true
	case "M", "MB", "MO":
		return SizeMega, true
	case "G", "GB", "GO":
		return SizeGiga, true
	case "T", "TB", "TO":
		return SizeTera, true
	case "P", "PB", "PO":
		return SizePeta, true
	case "E", "EB", "EO":
		return SizeExa, true
	}

	return SizeNul, false
}

func parseString(s string) (Size, error) {
	s = strings.Replace(s, "\"", "", -1)
	s = strings.Replace(s, "'", "", -1)
	s = strings.TrimSpace(s)
	s = strings.ToUpper(s)

	if s == "" {
		return SizeNul, ErrInvalidSize
	}

	if strings.HasPrefix(s, "-") {
		return SizeNul, ErrNegativeSize
	}

	s = strings.TrimPrefix(s, "+")

	var res float64

	for len(s) > 0 {
		var (
			i int
			d bool
		)

		for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
			if s[i] == '.' {
				if d {
					return SizeNul, ErrInvalidSize
				}
				d = true
			}
			i++
		}

		if i == 0 {
			return SizeNul, ErrInvalidSize
		} else if strings.HasSuffix(s[:i], ".") {
			return SizeNul, ErrInvalidSize
		}

		num, err := strconv.ParseFloat(s[:i], 64)
		if err != nil {
			return SizeNul, ErrInvalidSize
		}

		s = s[i:]

		i = 0
		for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
			i++
		}

		if i == 0 {
			return SizeNul, ErrMissingUnit
		}

		scl, ok := unitScale(s[:i])
		if !ok {
			return SizeNul, ErrUnknownUnit
		}

		s = s[i:]
		res += num * scl.Float64()
	}

	if res >= float64(math.MaxUint64) {
		return SizeNul, ErrOverflowSize
	}

	return Size(math.Round(res)), nil
}
