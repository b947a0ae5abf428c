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

package transport_test

import (
	"time"

	liberr "github.com/jincoder/serialtool/errors"
	libtpt "github.com/jincoder/serialtool/transport"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Loopback", func() {
	var t libtpt.Loopback

	BeforeEach(func() {
		t = libtpt.NewLoopback()
		Expect(t.Open()).To(BeNil())
	})

	AfterEach(func() {
		t.Close()
	})

	Context("echo behavior", func() {
		It("should feed written bytes back to the read side", func() {
			n, err := t.Write([]byte("AT\r\n"))
			Expect(err).To(BeNil())
			Expect(n).To(Equal(4))

			buf := make([]byte, 64)
			n, err = t.Read(buf)
			Expect(err).To(BeNil())
			Expect(buf[:n]).To(Equal([]byte("AT\r\n")))
		})

		It("should record every byte written", func() {
			_, _ = t.Write([]byte("one"))
			_, _ = t.Write([]byte("two"))
			Expect(t.Sent()).To(Equal([]byte("onetwo")))
		})

		It("should return zero bytes when idle", func() {
			buf := make([]byte, 16)
			n, err := t.Read(buf)
			Expect(err).To(BeNil())
			Expect(n).To(Equal(0))
		})
	})

	Context("responder", func() {
		It("should feed back the responder result instead of the echo", func() {
			t.SetResponder(func(p []byte) []byte {
				return []byte("OK\r\n")
			})

			_, err := t.Write([]byte("AT\r\n"))
			Expect(err).To(BeNil())

			buf := make([]byte, 16)
			n, rerr := t.Read(buf)
			Expect(rerr).To(BeNil())
			Expect(buf[:n]).To(Equal([]byte("OK\r\n")))
		})

		It("should silence the endpoint with a nil responder", func() {
			t.SetResponder(nil)

			_, _ = t.Write([]byte("AT\r\n"))

			buf := make([]byte, 16)
			n, err := t.Read(buf)
			Expect(err).To(BeNil())
			Expect(n).To(Equal(0))
		})

		It("should delay the feedback when a response delay is set", func() {
			t.SetResponder(func(p []byte) []byte {
				return []byte("OK\r\n")
			})
			t.SetResponseDelay(50 * time.Millisecond)

			_, _ = t.Write([]byte("AT\r\n"))

			buf := make([]byte, 16)
			n, _ := t.Read(buf)
			Expect(n).To(Equal(0))

			Eventually(func() int {
				n, _ := t.Read(buf)
				return n
			}, "500ms", "10ms").Should(BeNumerically(">", 0))
		})
	})

	Context("failure injection", func() {
		It("should surface write failures as typed errors", func() {
			t.SetFailWrite(true)

			_, err := t.Write([]byte("X"))
			Expect(err).ToNot(BeNil())
			Expect(err.IsCode(libtpt.ErrorIOWrite)).To(BeTrue())
		})

		It("should refuse I/O when closed", func() {
			t.Close()

			_, err := t.Write([]byte("X"))
			Expect(err).ToNot(BeNil())
			Expect(err.IsCode(libtpt.ErrorNotOpen)).To(BeTrue())

			var e liberr.Error
			buf := make([]byte, 4)
			_, e = t.Read(buf)
			Expect(e).ToNot(BeNil())
			Expect(e.IsCode(libtpt.ErrorNotOpen)).To(BeTrue())
		})

		It("should reopen after close", func() {
			t.Close()
			Expect(t.Open()).To(BeNil())
			Expect(t.IsOpen()).To(BeTrue())
		})
	})

	Context("write pacing", func() {
		It("should slow down writes when a write delay is set", func() {
			t.SetWriteDelay(30 * time.Millisecond)

			start := time.Now()
			_, _ = t.Write([]byte("A"))
			_, _ = t.Write([]byte("B"))
			Expect(time.Since(start)).To(BeNumerically(">=", 60*time.Millisecond))
		})
	})
})

var _ = Describe("Serial", func() {
	It("should refuse to open an empty device", func() {
		t := libtpt.New(libtpt.Config{})
		err := t.Open()
		Expect(err).ToNot(BeNil())
		Expect(err.IsCode(libtpt.ErrorOpenInvalid)).To(BeTrue())
	})

	It("should refuse I/O before open", func() {
		t := libtpt.New(libtpt.Config{Device: "/dev/null", Baud: 115200})
		buf := make([]byte, 4)
		_, err := t.Read(buf)
		Expect(err).ToNot(BeNil())
		Expect(err.IsCode(libtpt.ErrorNotOpen)).To(BeTrue())
	})
})

var _ = Describe("Modes", func() {
	It("should round-trip parity notations", func() {
		for _, p := range []libtpt.Parity{
			libtpt.ParityNone, libtpt.ParityEven, libtpt.ParityOdd,
			libtpt.ParityMark, libtpt.ParitySpace,
		} {
			Expect(libtpt.ParseParity(p.String())).To(Equal(p))
		}
	})

	It("should round-trip stop bits notations", func() {
		for _, s := range []libtpt.StopBits{
			libtpt.StopBitsOne, libtpt.StopBitsOneHalf, libtpt.StopBitsTwo,
		} {
			Expect(libtpt.ParseStopBits(s.String())).To(Equal(s))
		}
	})

	It("should round-trip flow control notations", func() {
		for _, f := range []libtpt.FlowControl{
			libtpt.FlowNone, libtpt.FlowRTSCTS, libtpt.FlowXonXoff, libtpt.FlowDSRDTR,
		} {
			Expect(libtpt.ParseFlowControl(f.String())).To(Equal(f))
		}
	})
})
