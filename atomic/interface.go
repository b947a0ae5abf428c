/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

// Package atomic provides typed wrappers over sync primitives: a
// generic-typed concurrent map and a safe cast helper.
package atomic

// MapTyped is a concurrent map with typed keys and values, backed by
// sync.Map. A zero value is not usable; construct with NewMapTyped.
type MapTyped[K comparable, V any] interface {
	// Load returns the value stored for key and whether it was present.
	Load(key K) (value V, ok bool)

	// Store sets the value for key, overwriting any present value.
	Store(key K, value V)

	// LoadOrStore returns the present value for key, or stores and
	// returns the given value. loaded reports which happened.
	LoadOrStore(key K, value V) (actual V, loaded bool)

	// LoadAndDelete removes key and returns the value it held, if any.
	LoadAndDelete(key K) (value V, loaded bool)

	// Delete removes key.
	Delete(key K)

	// Swap stores value for key and returns the previous value, if any.
	Swap(key K, value V) (previous V, loaded bool)

	// Range visits every entry until f returns false. It reflects the
	// map at no single moment in time.
	Range(f func(key K, value V) bool)
}

// NewMapTyped returns an empty typed concurrent map.
func NewMapTyped[K comparable, V any]() MapTyped[K, V] {
	return &mt[K, V]{}
}
