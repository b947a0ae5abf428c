/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package hexa provides the hexadecimal codec used by the hex parser
// view, the command formatter and the capture dump.
//
// Encoding emits lowercase pairs; decoding accepts any case and rejects
// odd lengths or invalid digits. The coder is stateless and safe for
// concurrent use.
package hexa

// Coder encodes and decodes one representation of a byte stream.
type Coder interface {
	// Encode returns the hex representation of p, two lowercase digits
	// per input byte.
	Encode(p []byte) []byte

	// Decode returns the bytes of the hex representation p, accepting
	// uppercase, lowercase or mixed digits.
	Decode(p []byte) ([]byte, error)
}

// New returns a hexadecimal Coder.
func New() Coder {
	return &crt{}
}
