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

package handler_test

import (
	"errors"
	"sync"

	errhdl "github.com/jincoder/serialtool/errors/handler"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Handler", func() {
	Context("capture", func() {
		It("should collect faults in order", func() {
			h := errhdl.New(nil)

			h.Capture("a", errors.New("first"))
			h.Capture("b", errors.New("second"))

			Expect(h.Errors()).To(HaveLen(2))
			Expect(h.Last().Error()).To(ContainSubstring("second"))
		})

		It("should ignore nil faults", func() {
			h := errhdl.New(nil)
			h.Capture("a", nil)

			Expect(h.Errors()).To(BeEmpty())
			Expect(h.Last()).To(BeNil())
		})

		It("should clear collected faults", func() {
			h := errhdl.New(nil)
			h.Capture("a", errors.New("x"))
			h.Clear()

			Expect(h.Errors()).To(BeEmpty())
		})
	})

	Context("toast", func() {
		It("should raise the toast per captured fault", func() {
			var (
				m    sync.Mutex
				comp string
				msg  string
			)

			h := errhdl.New(nil)
			h.SetToast(func(component, message string) {
				m.Lock()
				comp = component
				msg = message
				m.Unlock()
			})

			h.Capture("worker:P1", errors.New("gone"))

			m.Lock()
			defer m.Unlock()
			Expect(comp).To(Equal("worker:P1"))
			Expect(msg).To(ContainSubstring("gone"))
		})
	})

	Context("goroutine isolation", func() {
		It("should capture a panic without terminating the process", func() {
			h := errhdl.New(nil)

			done := make(chan struct{})
			h.Go("macro", func() {
				defer close(done)
				panic("boom")
			})

			Eventually(done, "2s").Should(BeClosed())
			Eventually(func() int {
				return len(h.Errors())
			}, "2s", "10ms").Should(Equal(1))
			Expect(h.Last().Error()).To(ContainSubstring("macro"))
		})

		It("should run a clean function without capturing", func() {
			h := errhdl.New(nil)

			done := make(chan struct{})
			h.Go("job", func() {
				close(done)
			})

			Eventually(done, "2s").Should(BeClosed())
			Expect(h.Errors()).To(BeEmpty())
		})

		It("should capture panics from deferred recovery", func() {
			h := errhdl.New(nil)

			func() {
				defer h.Recover("inline")
				panic(errors.New("typed"))
			}()

			Expect(h.Errors()).To(HaveLen(1))
		})
	})
})
