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

package connection_test

import (
	"context"
	"sync"
	"time"

	libcnn "github.com/jincoder/serialtool/connection"
	errhdl "github.com/jincoder/serialtool/errors/handler"
	libbus "github.com/jincoder/serialtool/eventbus"
	libpsr "github.com/jincoder/serialtool/parser"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func portCfg(id string) libcnn.PortConfig {
	return libcnn.PortConfig{
		ID:   id,
		Baud: 115200,
	}
}

var _ = Describe("Controller", func() {
	var (
		bus libbus.Bus
		fac *loopFactory
		ctl libcnn.Controller
	)

	BeforeEach(func() {
		bus = libbus.New()
		fac = newLoopFactory()
		ctl = libcnn.New(bus, nil, fac.factory, errhdl.New(nil))
	})

	AfterEach(func() {
		ctl.Shutdown(context.Background())
	})

	Context("open", func() {
		It("should open a valid port and publish port.opened", func() {
			rec := newRecorder(bus, "port.opened")

			Expect(ctl.Open(portCfg("P1"))).To(BeNil())
			Expect(ctl.IsOpen("P1")).To(BeTrue())
			Expect(ctl.State("P1")).To(Equal(libcnn.StateOpen))
			Expect(rec.count("port.opened")).To(Equal(1))

			ev := rec.payloads("port.opened")[0].(libcnn.EventOpened)
			Expect(ev.Port).To(Equal("P1"))
			Expect(ev.Config.Baud).To(Equal(115200))
		})

		It("should reject an invalid configuration", func() {
			err := ctl.Open(libcnn.PortConfig{ID: "P1", Baud: 10})
			Expect(err).ToNot(BeNil())
			Expect(err.IsCode(libcnn.ErrorBadConfig)).To(BeTrue())
			Expect(ctl.IsOpen("P1")).To(BeFalse())
		})

		It("should reject a duplicate identifier", func() {
			Expect(ctl.Open(portCfg("P1"))).To(BeNil())

			err := ctl.Open(portCfg("P1"))
			Expect(err).ToNot(BeNil())
			Expect(err.IsCode(libcnn.ErrorAlreadyOpen)).To(BeTrue())
		})

		It("should apply defaults to unset fields", func() {
			cfg := portCfg("P1")
			Expect(cfg.Validate()).To(BeNil())

			tc := cfg.Transport()
			Expect(tc.DataBits).To(Equal(8))
			Expect(tc.Device).To(Equal("P1"))
		})
	})

	Context("loopback round trip", func() {
		It("should send bytes and deliver the echo on both paths", func() {
			var (
				m    sync.Mutex
				fast []byte
			)

			ctl.SetFastPath(func(port string, _ time.Time, p []byte) {
				m.Lock()
				fast = append(fast, p...)
				m.Unlock()
			})

			rec := newRecorder(bus, "port.data_sent", "port.data_received", "port.packet")

			Expect(ctl.Open(portCfg("P1"))).To(BeNil())
			Expect(ctl.Send("P1", []byte("AT\r\n"))).To(BeNil())

			Eventually(func() int {
				return rec.count("port.data_sent")
			}, "2s", "5ms").Should(Equal(1))

			sent := rec.payloads("port.data_sent")[0].(libcnn.EventData)
			Expect(sent.Bytes).To(Equal([]byte("AT\r\n")))

			Eventually(func() []byte {
				m.Lock()
				defer m.Unlock()
				return append([]byte(nil), fast...)
			}, "2s", "5ms").Should(Equal([]byte("AT\r\n")))

			Eventually(func() int {
				return rec.count("port.packet")
			}, "2s", "5ms").Should(Equal(1))

			pkt := rec.payloads("port.packet")[0].(libpsr.Packet)
			Expect(pkt.Category).To(Equal(libpsr.CategoryRaw))
			Expect(pkt.Bytes).To(Equal([]byte("AT\r\n")))

			Eventually(func() int {
				return rec.count("port.data_received")
			}, "2s", "5ms").Should(BeNumerically(">=", 1))

			Expect(ctl.TxBytes("P1")).To(Equal(uint64(4)))
			Eventually(func() uint64 {
				return ctl.RxBytes("P1")
			}, "2s", "5ms").Should(Equal(uint64(4)))
		})

		It("should deliver injected bytes in arrival order", func() {
			var (
				m    sync.Mutex
				fast []byte
			)

			ctl.SetFastPath(func(_ string, _ time.Time, p []byte) {
				m.Lock()
				fast = append(fast, p...)
				m.Unlock()
			})

			Expect(ctl.Open(portCfg("P1"))).To(BeNil())

			lp := fac.get("P1")
			for i := byte(0); i < 50; i++ {
				lp.Inject([]byte{i})
			}

			Eventually(func() int {
				m.Lock()
				defer m.Unlock()
				return len(fast)
			}, "2s", "5ms").Should(Equal(50))

			m.Lock()
			defer m.Unlock()
			for i := 0; i < 50; i++ {
				Expect(fast[i]).To(Equal(byte(i)))
			}
		})

		It("should expose buffered bytes through the ring", func() {
			Expect(ctl.Open(portCfg("P1"))).To(BeNil())

			fac.get("P1").Inject([]byte("ring data"))

			Eventually(func() []byte {
				return ctl.ReadBuffered("P1", 64)
			}, "2s", "5ms").Should(Equal([]byte("ring data")))
		})
	})

	Context("send failures", func() {
		It("should fail on an unknown port", func() {
			err := ctl.Send("nope", []byte("x"))
			Expect(err).ToNot(BeNil())
			Expect(err.IsCode(libcnn.ErrorUnknownPort)).To(BeTrue())
		})

		It("should surface queue saturation without blocking", func() {
			cfg := portCfg("P1")
			cfg.TxQueueSize = 2

			Expect(ctl.Open(cfg)).To(BeNil())
			fac.get("P1").SetWriteDelay(200 * time.Millisecond)

			var failed bool
			for i := 0; i < 64; i++ {
				if err := ctl.Send("P1", []byte("chunk")); err != nil {
					Expect(err.IsCode(libcnn.ErrorQueueFull)).To(BeTrue())
					failed = true
					break
				}
			}

			Expect(failed).To(BeTrue())
		})
	})

	Context("broadcast", func() {
		It("should send to every open connection from a snapshot", func() {
			rec := newRecorder(bus, "port.data_sent")

			Expect(ctl.Open(portCfg("P1"))).To(BeNil())
			Expect(ctl.Open(portCfg("P2"))).To(BeNil())

			ids := ctl.Broadcast([]byte("X"))
			Expect(ids).To(ConsistOf("P1", "P2"))

			Eventually(func() int {
				return rec.count("port.data_sent")
			}, "2s", "5ms").Should(Equal(2))
		})

		It("should report only the connections that accepted", func() {
			Expect(ctl.Open(portCfg("P1"))).To(BeNil())

			ids := ctl.Broadcast([]byte("X"))
			Expect(ids).To(Equal([]string{"P1"}))

			Expect(ctl.Broadcast([]byte("X"))).To(HaveLen(1))
		})
	})

	Context("current connection hint", func() {
		It("should track the designated connection", func() {
			Expect(ctl.Open(portCfg("P1"))).To(BeNil())
			Expect(ctl.SetCurrent("P1")).To(BeNil())
			Expect(ctl.Current()).To(Equal("P1"))
		})

		It("should refuse an unknown designation", func() {
			err := ctl.SetCurrent("nope")
			Expect(err).ToNot(BeNil())
			Expect(err.IsCode(libcnn.ErrorUnknownPort)).To(BeTrue())
		})

		It("should clear the designation when the port closes", func() {
			Expect(ctl.Open(portCfg("P1"))).To(BeNil())
			Expect(ctl.SetCurrent("P1")).To(BeNil())
			Expect(ctl.Close("P1")).To(BeNil())
			Expect(ctl.Current()).To(Equal(""))
		})
	})

	Context("close", func() {
		It("should stop the worker and publish port.closed", func() {
			rec := newRecorder(bus, "port.closed")

			Expect(ctl.Open(portCfg("P1"))).To(BeNil())
			Expect(ctl.Close("P1")).To(BeNil())

			Expect(ctl.State("P1")).To(Equal(libcnn.StateClosed))
			Expect(ctl.IsOpen("P1")).To(BeFalse())
			Expect(rec.count("port.closed")).To(Equal(1))
		})

		It("should fail on an unknown port", func() {
			err := ctl.Close("nope")
			Expect(err).ToNot(BeNil())
			Expect(err.IsCode(libcnn.ErrorUnknownPort)).To(BeTrue())
		})

		It("should cancel the registered transfer before closing", func() {
			var (
				m         sync.Mutex
				cancelled bool
			)

			Expect(ctl.Open(portCfg("P1"))).To(BeNil())
			Expect(ctl.RegisterTransfer("P1", func() {
				m.Lock()
				cancelled = true
				m.Unlock()
			})).To(BeNil())

			Expect(ctl.Close("P1")).To(BeNil())

			m.Lock()
			defer m.Unlock()
			Expect(cancelled).To(BeTrue())
		})

		It("should allow reopening after close", func() {
			Expect(ctl.Open(portCfg("P1"))).To(BeNil())
			Expect(ctl.Close("P1")).To(BeNil())
			Expect(ctl.Open(portCfg("P1"))).To(BeNil())
			Expect(ctl.IsOpen("P1")).To(BeTrue())
		})
	})

	Context("worker failure", func() {
		It("should resolve a write failure to port.error then port.closed", func() {
			rec := newRecorder(bus, "port.error", "port.closed")

			Expect(ctl.Open(portCfg("P1"))).To(BeNil())
			fac.get("P1").SetFailWrite(true)

			Expect(ctl.Send("P1", []byte("doomed"))).To(BeNil())

			Eventually(func() int {
				return rec.count("port.error")
			}, "2s", "5ms").Should(Equal(1))

			ev := rec.payloads("port.error")[0].(libcnn.EventError)
			Expect(ev.Kind).To(Equal("write"))

			Eventually(func() int {
				return rec.count("port.closed")
			}, "2s", "5ms").Should(Equal(1))

			Eventually(func() bool {
				return ctl.IsOpen("P1")
			}, "2s", "5ms").Should(BeFalse())
		})

		It("should cancel the registered transfer on write failure", func() {
			var (
				m         sync.Mutex
				cancelled bool
			)

			Expect(ctl.Open(portCfg("P1"))).To(BeNil())
			Expect(ctl.RegisterTransfer("P1", func() {
				m.Lock()
				cancelled = true
				m.Unlock()
			})).To(BeNil())

			fac.get("P1").SetFailWrite(true)
			Expect(ctl.Send("P1", []byte("doomed"))).To(BeNil())

			Eventually(func() bool {
				m.Lock()
				defer m.Unlock()
				return cancelled
			}, "2s", "5ms").Should(BeTrue())
		})
	})

	Context("transfer registry", func() {
		It("should allow one transfer per port", func() {
			Expect(ctl.Open(portCfg("P1"))).To(BeNil())
			Expect(ctl.RegisterTransfer("P1", func() {})).To(BeNil())

			err := ctl.RegisterTransfer("P1", func() {})
			Expect(err).ToNot(BeNil())
			Expect(err.IsCode(libcnn.ErrorTransferBusy)).To(BeTrue())

			ctl.UnregisterTransfer("P1")
			Expect(ctl.RegisterTransfer("P1", func() {})).To(BeNil())
		})

		It("should refuse a transfer on a closed port", func() {
			err := ctl.RegisterTransfer("nope", func() {})
			Expect(err).ToNot(BeNil())
			Expect(err.IsCode(libcnn.ErrorUnknownPort)).To(BeTrue())
		})
	})

	Context("shutdown", func() {
		It("should close every connection in parallel", func() {
			Expect(ctl.Open(portCfg("P1"))).To(BeNil())
			Expect(ctl.Open(portCfg("P2"))).To(BeNil())
			Expect(ctl.Open(portCfg("P3"))).To(BeNil())

			ctl.Shutdown(context.Background())

			Expect(ctl.List()).To(BeEmpty())
		})
	})
})
