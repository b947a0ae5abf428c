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

package dispatcher_test

import (
	"sync"
	"time"

	libdsp "github.com/jincoder/serialtool/dispatcher"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type capture struct {
	m sync.Mutex
	d map[string][][]byte
}

func newCapture() *capture {
	return &capture{d: make(map[string][][]byte)}
}

func (c *capture) sink(port string, p []byte, _ time.Time) {
	c.m.Lock()
	defer c.m.Unlock()
	c.d[port] = append(c.d[port], append([]byte(nil), p...))
}

func (c *capture) flushes(port string) [][]byte {
	c.m.Lock()
	defer c.m.Unlock()
	return append([][]byte(nil), c.d[port]...)
}

func (c *capture) joined(port string) []byte {
	var res []byte
	for _, f := range c.flushes(port) {
		res = append(res, f...)
	}
	return res
}

var _ = Describe("Dispatcher", func() {
	Context("drain", func() {
		It("should deliver pending entries synchronously", func() {
			cap := newCapture()
			d := libdsp.New(time.Hour, cap.sink)

			d.Push("P1", time.Now(), []byte("abc"))
			d.Push("P1", time.Now(), []byte("def"))
			d.Drain()

			Expect(cap.flushes("P1")).To(HaveLen(1))
			Expect(cap.flushes("P1")[0]).To(Equal([]byte("abcdef")))
		})

		It("should coalesce per port", func() {
			cap := newCapture()
			d := libdsp.New(time.Hour, cap.sink)

			d.Push("P1", time.Now(), []byte("one"))
			d.Push("P2", time.Now(), []byte("two"))
			d.Drain()

			Expect(cap.joined("P1")).To(Equal([]byte("one")))
			Expect(cap.joined("P2")).To(Equal([]byte("two")))
		})

		It("should be a no-op with nothing pending", func() {
			cap := newCapture()
			d := libdsp.New(time.Hour, cap.sink)

			d.Drain()
			Expect(cap.flushes("P1")).To(BeEmpty())
		})
	})

	Context("timed flushing", func() {
		It("should flush on the interval after start", func() {
			cap := newCapture()
			d := libdsp.New(10*time.Millisecond, cap.sink)
			d.Start()
			defer d.Stop()

			d.Push("P1", time.Now(), []byte("x"))

			Eventually(func() []byte {
				return cap.joined("P1")
			}, "500ms", "5ms").Should(Equal([]byte("x")))
		})

		It("should preserve arrival order within one port", func() {
			cap := newCapture()
			d := libdsp.New(5*time.Millisecond, cap.sink)
			d.Start()
			defer d.Stop()

			for i := byte(0); i < 100; i++ {
				d.Push("P1", time.Now(), []byte{i})
				if i%10 == 0 {
					time.Sleep(2 * time.Millisecond)
				}
			}

			Eventually(func() int {
				return len(cap.joined("P1"))
			}, "1s", "10ms").Should(Equal(100))

			got := cap.joined("P1")
			for i := 1; i < len(got); i++ {
				Expect(got[i]).To(BeNumerically(">", got[i-1]))
			}
		})
	})

	Context("pause and resume", func() {
		It("should accumulate while paused and flush after resume", func() {
			cap := newCapture()
			d := libdsp.New(5*time.Millisecond, cap.sink)
			d.Start()
			defer d.Stop()

			d.Pause()
			d.Push("P1", time.Now(), []byte("held"))

			Consistently(func() []byte {
				return cap.joined("P1")
			}, "50ms", "10ms").Should(BeEmpty())

			d.Resume()
			Eventually(func() []byte {
				return cap.joined("P1")
			}, "500ms", "5ms").Should(Equal([]byte("held")))
		})
	})

	Context("stop", func() {
		It("should discard pending entries", func() {
			cap := newCapture()
			d := libdsp.New(time.Hour, cap.sink)
			d.Start()

			d.Push("P1", time.Now(), []byte("gone"))
			d.Stop()
			d.Drain()

			Expect(cap.joined("P1")).To(BeEmpty())
		})
	})
})
