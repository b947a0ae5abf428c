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

package datalog_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	libcnn "github.com/jincoder/serialtool/connection"
	libdlg "github.com/jincoder/serialtool/datalog"
	libbus "github.com/jincoder/serialtool/eventbus"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// safeWriter collects written bytes under a lock.
type safeWriter struct {
	m sync.Mutex
	b []byte
}

func (s *safeWriter) Write(p []byte) (int, error) {
	s.m.Lock()
	defer s.m.Unlock()
	s.b = append(s.b, p...)
	return len(p), nil
}

func (s *safeWriter) Bytes() []byte {
	s.m.Lock()
	defer s.m.Unlock()
	return append([]byte(nil), s.b...)
}

var _ = Describe("Logger", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	capturePath := func() string {
		return filepath.Join(dir, "capture.log")
	}

	Context("raw format", func() {
		It("should concatenate payloads with no framing", func() {
			l, err := libdlg.New(libdlg.Config{Path: capturePath()}, nil)
			Expect(err).To(BeNil())

			Expect(l.Record(libdlg.DirRX, "P1", time.Now(), []byte("abc"))).To(BeNil())
			Expect(l.Record(libdlg.DirRX, "P1", time.Now(), []byte("def"))).To(BeNil())
			Expect(l.Close()).To(Succeed())

			got, rerr := os.ReadFile(capturePath())
			Expect(rerr).ToNot(HaveOccurred())
			Expect(got).To(Equal([]byte("abcdef")))
		})

		It("should drop TX records unless included", func() {
			l, err := libdlg.New(libdlg.Config{Path: capturePath()}, nil)
			Expect(err).To(BeNil())

			Expect(l.Record(libdlg.DirTX, "P1", time.Now(), []byte("tx"))).To(BeNil())
			Expect(l.Close()).To(Succeed())

			got, _ := os.ReadFile(capturePath())
			Expect(got).To(BeEmpty())
		})

		It("should refuse records after close", func() {
			l, err := libdlg.New(libdlg.Config{Path: capturePath()}, nil)
			Expect(err).To(BeNil())
			Expect(l.Close()).To(Succeed())

			rerr := l.Record(libdlg.DirRX, "P1", time.Now(), []byte("x"))
			Expect(rerr).ToNot(BeNil())
			Expect(rerr.IsCode(libdlg.ErrorClosed)).To(BeTrue())
		})
	})

	Context("hex dump format", func() {
		It("should prefix each line with direction and port", func() {
			l, err := libdlg.New(libdlg.Config{
				Path:      capturePath(),
				Format:    libdlg.FormatHexDump,
				IncludeTx: true,
			}, nil)
			Expect(err).To(BeNil())

			Expect(l.Record(libdlg.DirRX, "P1", time.Now(), []byte("hello"))).To(BeNil())
			Expect(l.Record(libdlg.DirTX, "P1", time.Now(), []byte("world"))).To(BeNil())
			Expect(l.Close()).To(Succeed())

			got, _ := os.ReadFile(capturePath())
			lines := strings.Split(strings.TrimRight(string(got), "\n"), "\n")

			Expect(lines).To(HaveLen(2))
			Expect(lines[0]).To(HavePrefix("RX P1 "))
			Expect(lines[0]).To(ContainSubstring("|hello|"))
			Expect(lines[1]).To(HavePrefix("TX P1 "))
			Expect(lines[1]).To(ContainSubstring("|world|"))
		})

		It("should advance per-direction offsets", func() {
			l, err := libdlg.New(libdlg.Config{
				Path:   capturePath(),
				Format: libdlg.FormatHexDump,
			}, nil)
			Expect(err).To(BeNil())

			window := make([]byte, 16)
			Expect(l.Record(libdlg.DirRX, "P1", time.Now(), window)).To(BeNil())
			Expect(l.Record(libdlg.DirRX, "P1", time.Now(), window)).To(BeNil())
			Expect(l.Close()).To(Succeed())

			got, _ := os.ReadFile(capturePath())
			Expect(string(got)).To(ContainSubstring("00000000"))
			Expect(string(got)).To(ContainSubstring("00000010"))
		})
	})

	Context("pcap format", func() {
		It("should write a valid global header and direction-tagged records", func() {
			l, err := libdlg.New(libdlg.Config{
				Path:      capturePath(),
				Format:    libdlg.FormatPcap,
				IncludeTx: true,
			}, nil)
			Expect(err).To(BeNil())

			ts := time.Unix(1700000000, 123456000)
			Expect(l.Record(libdlg.DirRX, "P1", ts, []byte("rx-payload"))).To(BeNil())
			Expect(l.Record(libdlg.DirTX, "P1", ts, []byte("tx"))).To(BeNil())
			Expect(l.Close()).To(Succeed())

			got, _ := os.ReadFile(capturePath())
			Expect(len(got)).To(BeNumerically(">", 24))

			Expect(binary.LittleEndian.Uint32(got[0:4])).To(Equal(uint32(0xa1b2c3d4)))
			Expect(binary.LittleEndian.Uint16(got[4:6])).To(Equal(uint16(2)))
			Expect(binary.LittleEndian.Uint16(got[6:8])).To(Equal(uint16(4)))
			Expect(binary.LittleEndian.Uint32(got[20:24])).To(Equal(uint32(147)))

			rec := got[24:]
			Expect(binary.LittleEndian.Uint32(rec[0:4])).To(Equal(uint32(1700000000)))
			Expect(binary.LittleEndian.Uint32(rec[4:8])).To(Equal(uint32(123456)))

			n := binary.LittleEndian.Uint32(rec[8:12])
			Expect(n).To(Equal(uint32(len("rx-payload") + 1)))
			Expect(rec[16]).To(Equal(byte(0x00)))
			Expect(rec[17 : 17+len("rx-payload")]).To(Equal([]byte("rx-payload")))

			rec2 := rec[16+n:]
			Expect(rec2[16]).To(Equal(byte(0x01)))
			Expect(rec2[17:19]).To(Equal([]byte("tx")))
		})
	})

	Context("rotation", func() {
		It("should rotate past the size bound and compress the backlog", func() {
			l, err := libdlg.New(libdlg.Config{
				Path:         capturePath(),
				MaxFileBytes: 64,
				KeepFiles:    2,
			}, nil)
			Expect(err).To(BeNil())

			payload := make([]byte, 48)
			for i := 0; i < 6; i++ {
				Expect(l.Record(libdlg.DirRX, "P1", time.Now(), payload)).To(BeNil())
			}
			Expect(l.Close()).To(Succeed())

			_, serr := os.Stat(capturePath() + ".1.gz")
			Expect(serr).ToNot(HaveOccurred())

			_, serr = os.Stat(capturePath() + ".3.gz")
			Expect(serr).To(HaveOccurred())
		})
	})

	Context("mirrors", func() {
		It("should tee records to registered mirrors", func() {
			var mirror safeWriter

			l, err := libdlg.New(libdlg.Config{Path: capturePath()}, nil)
			Expect(err).To(BeNil())
			l.AddMirror(&mirror)

			Expect(l.Record(libdlg.DirRX, "P1", time.Now(), []byte("teed"))).To(BeNil())
			Expect(l.Close()).To(Succeed())

			got, _ := os.ReadFile(capturePath())
			Expect(got).To(Equal([]byte("teed")))
			Expect(mirror.Bytes()).To(Equal([]byte("teed")))
		})
	})

	Context("bus subscription", func() {
		It("should capture bus data events", func() {
			bus := libbus.New()

			l, err := libdlg.New(libdlg.Config{
				Path:      capturePath(),
				IncludeTx: true,
			}, nil)
			Expect(err).To(BeNil())
			l.SubscribeTo(bus)

			bus.Publish(libcnn.TopicDataReceived, libcnn.EventData{
				Port:  "P1",
				Time:  time.Now(),
				Bytes: []byte("in"),
			})
			bus.Publish(libcnn.TopicDataSent, libcnn.EventData{
				Port:  "P1",
				Time:  time.Now(),
				Bytes: []byte("out"),
			})
			Expect(l.Close()).To(Succeed())

			got, _ := os.ReadFile(capturePath())
			Expect(got).To(Equal([]byte("inout")))
		})
	})
})
