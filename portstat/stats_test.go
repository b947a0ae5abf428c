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

package portstat_test

import (
	"sync"
	"time"

	libpst "github.com/jincoder/serialtool/portstat"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Stats", func() {
	Context("counters", func() {
		It("should accumulate both directions independently", func() {
			s := libpst.New(0)
			s.AddRx(100)
			s.AddRx(50)
			s.AddTx(7)

			Expect(s.RxBytes()).To(Equal(uint64(150)))
			Expect(s.TxBytes()).To(Equal(uint64(7)))
		})

		It("should ignore non-positive increments", func() {
			s := libpst.New(0)
			s.AddRx(0)
			s.AddRx(-5)

			Expect(s.RxBytes()).To(Equal(uint64(0)))
		})

		It("should clear on reset", func() {
			s := libpst.New(0)
			s.AddRx(10)
			s.AddTx(10)
			s.Reset()

			Expect(s.RxBytes()).To(Equal(uint64(0)))
			Expect(s.TxBytes()).To(Equal(uint64(0)))
			Expect(s.RxRate()).To(Equal(0.0))
		})
	})

	Context("windowed rate", func() {
		It("should average recent bytes over the window", func() {
			s := libpst.New(2 * time.Second)
			s.AddRx(1000)

			Expect(s.RxRate()).To(BeNumerically("~", 500.0, 1.0))
		})

		It("should report zero on an idle tracker", func() {
			s := libpst.New(2 * time.Second)
			Expect(s.RxRate()).To(Equal(0.0))
			Expect(s.TxRate()).To(Equal(0.0))
		})
	})

	Context("concurrency", func() {
		It("should keep totals exact under concurrent updates", func() {
			s := libpst.New(0)

			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 1000; j++ {
						s.AddRx(3)
					}
				}()
			}
			wg.Wait()

			Expect(s.RxBytes()).To(Equal(uint64(8 * 1000 * 3)))
		})
	})
})
