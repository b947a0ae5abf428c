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

package filetransfer_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	libcnn "github.com/jincoder/serialtool/connection"
	errhdl "github.com/jincoder/serialtool/errors/handler"
	libbus "github.com/jincoder/serialtool/eventbus"
	libftr "github.com/jincoder/serialtool/filetransfer"
	libsiz "github.com/jincoder/serialtool/size"
	libtpt "github.com/jincoder/serialtool/transport"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// loopFactory mirrors the connection test double: loopback transports
// addressable by port id.
type loopFactory struct {
	m sync.Mutex
	t map[string]libtpt.Loopback
}

func newLoopFactory() *loopFactory {
	return &loopFactory{t: make(map[string]libtpt.Loopback)}
}

func (f *loopFactory) factory(cfg libcnn.PortConfig) libtpt.Transport {
	f.m.Lock()
	defer f.m.Unlock()

	t := libtpt.NewLoopback()
	t.SetResponder(nil)
	f.t[cfg.ID] = t
	return t
}

func (f *loopFactory) get(id string) libtpt.Loopback {
	f.m.Lock()
	defer f.m.Unlock()
	return f.t[id]
}

var _ = Describe("Engine", func() {
	var (
		bus libbus.Bus
		fac *loopFactory
		ctl libcnn.Controller
		eng libftr.Engine
	)

	open := func(id string, queue int) {
		cfg := libcnn.PortConfig{ID: id, Baud: 115200, TxQueueSize: queue}
		Expect(ctl.Open(cfg)).To(BeNil())
	}

	BeforeEach(func() {
		bus = libbus.New()
		fac = newLoopFactory()
		ctl = libcnn.New(bus, nil, fac.factory, errhdl.New(nil))
		eng = libftr.New(ctl, bus, nil, errhdl.New(nil))
	})

	AfterEach(func() {
		ctl.Shutdown(context.Background())
	})

	Context("chunk size table", func() {
		It("should adapt to the baud rate", func() {
			Expect(libftr.ChunkSize(9600)).To(Equal(256 * libsiz.SizeUnit))
			Expect(libftr.ChunkSize(57600)).To(Equal(256 * libsiz.SizeUnit))
			Expect(libftr.ChunkSize(115200)).To(Equal(libsiz.SizeKilo))
			Expect(libftr.ChunkSize(921600)).To(Equal(8 * libsiz.SizeKilo))
		})
	})

	Context("successful transfer", func() {
		It("should deliver every byte and publish file.completed", func() {
			open("P1", 0)
			rec := newRecorder(bus, "file.completed", "file.progress")

			payload := bytes.Repeat([]byte("serialtool"), 1000)
			j, err := eng.Start(io.NopCloser(bytes.NewReader(payload)), int64(len(payload)), "P1")
			Expect(err).To(BeNil())

			Eventually(j.Done(), "5s").Should(BeClosed())
			Expect(j.Status()).To(Equal(libftr.StatusCompleted))
			Expect(j.SentBytes()).To(Equal(int64(len(payload))))

			Eventually(func() []byte {
				return fac.get("P1").Sent()
			}, "5s", "10ms").Should(Equal(payload))

			Expect(rec.count("file.completed")).To(Equal(1))
			res := rec.payloads("file.completed")[0].(libftr.EventResult)
			Expect(res.Success).To(BeTrue())
			Expect(res.Port).To(Equal("P1"))
		})

		It("should publish monotonic progress", func() {
			open("P1", 0)
			rec := newRecorder(bus, "file.progress")

			payload := make([]byte, 256*1024)
			j, err := eng.Start(io.NopCloser(bytes.NewReader(payload)), int64(len(payload)), "P1")
			Expect(err).To(BeNil())
			Eventually(j.Done(), "10s").Should(BeClosed())

			var prev int64 = -1
			for _, p := range rec.payloads("file.progress") {
				ev := p.(libftr.EventProgress)
				Expect(ev.SentBytes).To(BeNumerically(">=", prev))
				Expect(ev.TotalBytes).To(Equal(int64(len(payload))))
				prev = ev.SentBytes
			}
		})
	})

	Context("backpressure", func() {
		It("should survive a slow line without losing bytes", func() {
			open("P1", 4)
			fac.get("P1").SetWriteDelay(10 * time.Millisecond)
			rec := newRecorder(bus, "file.error")

			payload := bytes.Repeat([]byte{0xA5}, 16*1024)
			j, err := eng.Start(io.NopCloser(bytes.NewReader(payload)), int64(len(payload)), "P1")
			Expect(err).To(BeNil())

			Eventually(j.Done(), "30s").Should(BeClosed())
			Expect(j.Status()).To(Equal(libftr.StatusCompleted))
			Expect(rec.count("file.error")).To(Equal(0))

			Eventually(func() int {
				return len(fac.get("P1").Sent())
			}, "5s", "10ms").Should(Equal(len(payload)))
		})
	})

	Context("registration", func() {
		It("should refuse a closed port", func() {
			_, err := eng.Start(io.NopCloser(bytes.NewReader([]byte("x"))), 1, "nope")
			Expect(err).ToNot(BeNil())
			Expect(err.IsCode(libftr.ErrorPortNotOpen)).To(BeTrue())
		})

		It("should refuse a second transfer on the same port", func() {
			open("P1", 0)
			fac.get("P1").SetWriteDelay(20 * time.Millisecond)

			payload := bytes.Repeat([]byte{1}, 512*1024)
			j, err := eng.Start(io.NopCloser(bytes.NewReader(payload)), int64(len(payload)), "P1")
			Expect(err).To(BeNil())

			_, err = eng.Start(io.NopCloser(bytes.NewReader([]byte("x"))), 1, "P1")
			Expect(err).ToNot(BeNil())
			Expect(err.IsCode(libftr.ErrorPortBusy)).To(BeTrue())

			j.Cancel()
			Eventually(j.Done(), "5s").Should(BeClosed())
		})

		It("should free the port after completion", func() {
			open("P1", 0)

			j, err := eng.Start(io.NopCloser(bytes.NewReader([]byte("one"))), 3, "P1")
			Expect(err).To(BeNil())
			Eventually(j.Done(), "5s").Should(BeClosed())

			j, err = eng.Start(io.NopCloser(bytes.NewReader([]byte("two"))), 3, "P1")
			Expect(err).To(BeNil())
			Eventually(j.Done(), "5s").Should(BeClosed())
		})
	})

	Context("cancellation", func() {
		It("should stop on cancel and publish file.cancelled", func() {
			open("P1", 4)
			fac.get("P1").SetWriteDelay(10 * time.Millisecond)
			rec := newRecorder(bus, "file.cancelled")

			payload := bytes.Repeat([]byte{1}, 1024*1024)
			j, err := eng.Start(io.NopCloser(bytes.NewReader(payload)), int64(len(payload)), "P1")
			Expect(err).To(BeNil())

			time.Sleep(50 * time.Millisecond)
			j.Cancel()

			Eventually(j.Done(), "2s").Should(BeClosed())
			Expect(j.Status()).To(Equal(libftr.StatusCancelled))
			Eventually(func() int {
				return rec.count("file.cancelled")
			}, "2s", "10ms").Should(Equal(1))
		})

		It("should be cancelled by closing its port", func() {
			open("P1", 4)
			fac.get("P1").SetWriteDelay(10 * time.Millisecond)
			rec := newRecorder(bus, "file.cancelled", "port.closed")

			payload := bytes.Repeat([]byte{1}, 1024*1024)
			j, err := eng.Start(io.NopCloser(bytes.NewReader(payload)), int64(len(payload)), "P1")
			Expect(err).To(BeNil())

			time.Sleep(50 * time.Millisecond)
			Expect(ctl.Close("P1")).To(BeNil())

			Eventually(j.Done(), "2s").Should(BeClosed())
			Expect(j.Status()).To(Equal(libftr.StatusCancelled))
			Eventually(func() int {
				return rec.count("file.cancelled")
			}, "2s", "10ms").Should(Equal(1))
			Expect(rec.count("port.closed")).To(Equal(1))
		})

		It("should not be cancelled by closing a different port", func() {
			open("P1", 4)
			open("P2", 4)
			fac.get("P1").SetWriteDelay(5 * time.Millisecond)

			payload := bytes.Repeat([]byte{1}, 64*1024)
			j, err := eng.Start(io.NopCloser(bytes.NewReader(payload)), int64(len(payload)), "P1")
			Expect(err).To(BeNil())

			Expect(ctl.Close("P2")).To(BeNil())

			Eventually(j.Done(), "60s").Should(BeClosed())
			Expect(j.Status()).To(Equal(libftr.StatusCompleted))
		})
	})

	Context("pause and resume", func() {
		It("should hold submission while paused", func() {
			open("P1", 0)
			fac.get("P1").SetWriteDelay(5 * time.Millisecond)

			payload := bytes.Repeat([]byte{1}, 256*1024)
			j, err := eng.Start(io.NopCloser(bytes.NewReader(payload)), int64(len(payload)), "P1")
			Expect(err).To(BeNil())

			Eventually(func() int64 {
				return j.SentBytes()
			}, "2s", "5ms").Should(BeNumerically(">", 0))

			j.Pause()
			Eventually(func() libftr.Status {
				return j.Status()
			}, "1s", "5ms").Should(Equal(libftr.StatusPaused))

			frozen := j.SentBytes()
			Consistently(func() int64 {
				return j.SentBytes()
			}, "100ms", "10ms").Should(Equal(frozen))

			j.Resume()
			Eventually(j.Done(), "60s").Should(BeClosed())
			Expect(j.Status()).To(Equal(libftr.StatusCompleted))
		})
	})

	Context("file sources", func() {
		It("should stream a file through the instrumented source", func() {
			open("P1", 0)

			dir := GinkgoT().TempDir()
			path := filepath.Join(dir, "payload.bin")
			payload := bytes.Repeat([]byte("file-transfer"), 512)
			Expect(os.WriteFile(path, payload, 0o600)).To(Succeed())

			j, err := eng.StartFile(path, "P1")
			Expect(err).To(BeNil())
			Expect(j.TotalBytes()).To(Equal(int64(len(payload))))

			Eventually(j.Done(), "10s").Should(BeClosed())
			Expect(j.Status()).To(Equal(libftr.StatusCompleted))

			Eventually(func() []byte {
				return fac.get("P1").Sent()
			}, "5s", "10ms").Should(Equal(payload))
		})

		It("should fail on a missing file", func() {
			open("P1", 0)

			_, err := eng.StartFile("/does/not/exist.bin", "P1")
			Expect(err).ToNot(BeNil())
			Expect(err.IsCode(libftr.ErrorSourceOpen)).To(BeTrue())
		})

		It("should stream an in-memory payload", func() {
			open("P1", 0)

			payload := []byte("buffered payload")
			j, err := eng.StartBytes(payload, "P1")
			Expect(err).To(BeNil())
			Expect(j.TotalBytes()).To(Equal(int64(len(payload))))

			Eventually(j.Done(), "5s").Should(BeClosed())
			Eventually(func() []byte {
				return fac.get("P1").Sent()
			}, "5s", "10ms").Should(Equal(payload))
		})

		It("should stream a script one line per chunk", func() {
			open("P1", 0)

			dir := GinkgoT().TempDir()
			path := filepath.Join(dir, "script.txt")
			Expect(os.WriteFile(path, []byte("AT\nAT+CSQ\nAT+CREG?\n"), 0o600)).To(Succeed())

			j, err := eng.StartLines(path, "P1", '\n')
			Expect(err).To(BeNil())

			Eventually(j.Done(), "5s").Should(BeClosed())
			Expect(j.Status()).To(Equal(libftr.StatusCompleted))

			Eventually(func() []byte {
				return fac.get("P1").Sent()
			}, "5s", "10ms").Should(Equal([]byte("AT\nAT+CSQ\nAT+CREG?\n")))
		})
	})
})
