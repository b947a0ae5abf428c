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

import "math"

// Uint64 returns the size as an uint64 number of bytes.
func (s Size) Uint64() uint64 {
	return uint64(s)
}

// Uint32 returns the size as an uint32, capped to math.MaxUint32.
func (s Size) Uint32() uint32 {
	if s > math.MaxUint32 {
		return math.MaxUint32
	}

	return uint32(s)
}

// Uint returns the size as an uint, capped to math.MaxUint.
func (s Size) Uint() uint {
	if uint64(s) > uint64(math.MaxUint) {
		return math.MaxUint
	}

	return uint(s)
}

// Int64 returns the size as an int64, capped to math.MaxInt64.
func (s Size) Int64() int64 {
	if s > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(s)
}

// Int32 returns the size as an int32, capped to math.MaxInt32.
func (s Size) Int32() int32 {
	if s > math.MaxInt32 {
		return math.MaxInt32
	}

	return int32(s)
}

// Int returns the size as an int, capped to math.MaxInt.
func (s Size) Int() int {
	if uint64(s) > uint64(math.MaxInt) {
		return math.MaxInt
	}

	return int(s)
}

// Float64 returns the size as a float64 number of bytes.
func (s Size) Float64() float64 {
	return float64(s)
}

// Float32 returns the size as a float32, capped to math.MaxFloat32.
func (s Size) Float32() float32 {
	if float64(s) > math.MaxFloat32 {
		return math.MaxFloat32
	}

	return float32(s)
}
