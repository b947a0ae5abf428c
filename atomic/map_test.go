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

package atomic_test

import (
	"sync"

	libatm "github.com/jincoder/serialtool/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("MapTyped", func() {
	It("should load what was stored", func() {
		m := libatm.NewMapTyped[string, int]()
		m.Store("a", 1)

		v, ok := m.Load("a")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(1))

		_, ok = m.Load("missing")
		Expect(ok).To(BeFalse())
	})

	It("should keep the first value on LoadOrStore", func() {
		m := libatm.NewMapTyped[string, int]()

		v, loaded := m.LoadOrStore("k", 1)
		Expect(loaded).To(BeFalse())
		Expect(v).To(Equal(1))

		v, loaded = m.LoadOrStore("k", 2)
		Expect(loaded).To(BeTrue())
		Expect(v).To(Equal(1))
	})

	It("should remove entries on LoadAndDelete", func() {
		m := libatm.NewMapTyped[string, int]()
		m.Store("k", 7)

		v, loaded := m.LoadAndDelete("k")
		Expect(loaded).To(BeTrue())
		Expect(v).To(Equal(7))

		_, loaded = m.LoadAndDelete("k")
		Expect(loaded).To(BeFalse())
	})

	It("should swap values", func() {
		m := libatm.NewMapTyped[string, int]()
		m.Store("k", 1)

		prev, loaded := m.Swap("k", 2)
		Expect(loaded).To(BeTrue())
		Expect(prev).To(Equal(1))

		v, _ := m.Load("k")
		Expect(v).To(Equal(2))
	})

	It("should range over every entry", func() {
		m := libatm.NewMapTyped[int, string]()
		m.Store(1, "a")
		m.Store(2, "b")

		seen := map[int]string{}
		m.Range(func(k int, v string) bool {
			seen[k] = v
			return true
		})

		Expect(seen).To(HaveLen(2))
		Expect(seen[1]).To(Equal("a"))
		Expect(seen[2]).To(Equal("b"))
	})

	It("should survive concurrent writers", func() {
		m := libatm.NewMapTyped[int, int]()

		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				for i := 0; i < 200; i++ {
					m.Store(g*1000+i, i)
				}
			}(g)
		}
		wg.Wait()

		n := 0
		m.Range(func(int, int) bool { n++; return true })
		Expect(n).To(Equal(8 * 200))
	})
})

var _ = Describe("Cast", func() {
	It("should assert matching types", func() {
		v, ok := libatm.Cast[int](42)
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(42))
	})

	It("should refuse mismatched types and nil", func() {
		_, ok := libatm.Cast[int]("42")
		Expect(ok).To(BeFalse())

		_, ok = libatm.Cast[int](nil)
		Expect(ok).To(BeFalse())
	})

	It("should report emptiness", func() {
		Expect(libatm.IsEmpty[int]("x")).To(BeTrue())
		Expect(libatm.IsEmpty[int](3)).To(BeFalse())
	})
})
