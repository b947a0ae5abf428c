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

package atomic

import "sync"

// mt is the internal implementation of the MapTyped interface.
type mt[K comparable, V any] struct {
	m sync.Map
}

func (o *mt[K, V]) cast(in any, ok bool) (V, bool) {
	if !ok || in == nil {
		var z V
		return z, false
	}

	if v, k := in.(V); k {
		return v, true
	}

	var z V
	return z, false
}

func (o *mt[K, V]) Load(key K) (V, bool) {
	return o.cast(o.m.Load(key))
}

func (o *mt[K, V]) Store(key K, value V) {
	o.m.Store(key, value)
}

func (o *mt[K, V]) LoadOrStore(key K, value V) (V, bool) {
	in, loaded := o.m.LoadOrStore(key, value)

	if v, ok := o.cast(in, true); ok {
		return v, loaded
	}

	return value, loaded
}

func (o *mt[K, V]) LoadAndDelete(key K) (V, bool) {
	return o.cast(o.m.LoadAndDelete(key))
}

func (o *mt[K, V]) Delete(key K) {
	o.m.Delete(key)
}

func (o *mt[K, V]) Swap(key K, value V) (V, bool) {
	return o.cast(o.m.Swap(key, value))
}

func (o *mt[K, V]) Range(f func(key K, value V) bool) {
	if f == nil {
		return
	}

	o.m.Range(func(key, value any) bool {
		k, ok := key.(K)
		if !ok {
			return true
		}

		v, ok := o.cast(value, true)
		if !ok {
			return true
		}

		return f(k, v)
	})
}
