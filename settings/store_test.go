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

package settings_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	libbus "github.com/jincoder/serialtool/eventbus"
	libcfg "github.com/jincoder/serialtool/settings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Store", func() {
	var (
		dir  string
		path string
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		path = filepath.Join(dir, "settings.json")
	})

	Context("defaults", func() {
		It("should load defaults when the file is missing", func() {
			s := libcfg.New(path, nil)
			Expect(s.Load()).To(BeNil())

			cfg := s.Config()
			Expect(cfg.SchemaVersion).To(Equal(libcfg.SchemaVersion))
			Expect(cfg.Serial.DefaultBaudrate).To(Equal(115200))
			Expect(cfg.UI.Theme).To(Equal("dark"))
			Expect(s.WasReset()).To(BeFalse())
		})

		It("should expose catalog keys", func() {
			s := libcfg.New(path, nil)
			Expect(s.Load()).To(BeNil())

			Expect(s.Get(libcfg.KeySerialDefaultBaud)).To(BeNumerically("==", 115200))
			Expect(s.Get(libcfg.KeyUITheme)).To(Equal("dark"))
			Expect(s.Get("unknown.key")).To(BeNil())
		})
	})

	Context("round trip", func() {
		It("should load what it saved, idempotently", func() {
			s := libcfg.New(path, nil)
			Expect(s.Load()).To(BeNil())
			Expect(s.Save()).To(BeNil())

			s2 := libcfg.New(path, nil)
			Expect(s2.Load()).To(BeNil())
			once := s2.Config()

			Expect(s2.Save()).To(BeNil())
			s3 := libcfg.New(path, nil)
			Expect(s3.Load()).To(BeNil())

			Expect(s3.Config()).To(Equal(once))
		})

		It("should preserve explicit values across the round trip", func() {
			s := libcfg.New(path, nil)
			Expect(s.Load()).To(BeNil())

			s.Set(libcfg.KeyUITheme, "light")
			s.Set(libcfg.KeySerialDefaultBaud, 9600)
			Expect(s.Save()).To(BeNil())

			s2 := libcfg.New(path, nil)
			Expect(s2.Load()).To(BeNil())

			Expect(s2.Config().UI.Theme).To(Equal("light"))
			Expect(s2.Config().Serial.DefaultBaudrate).To(Equal(9600))
		})
	})

	Context("safe casts", func() {
		It("should convert loosely-typed fields and keep defaults for absent ones", func() {
			doc := `{
				"schema_version": 2,
				"serial": {"default_baudrate": "9600"},
				"ui": {"theme": "light", "log_max_lines": "2000"}
			}`
			Expect(os.WriteFile(path, []byte(doc), 0o600)).To(Succeed())

			s := libcfg.New(path, nil)
			Expect(s.Load()).To(BeNil())

			cfg := s.Config()
			Expect(cfg.Serial.DefaultBaudrate).To(Equal(9600))
			Expect(cfg.UI.LogMaxLines).To(Equal(2000))
			Expect(cfg.UI.Theme).To(Equal("light"))
			Expect(cfg.Logging.Format).To(Equal("raw"))
		})
	})

	Context("corrupt documents", func() {
		It("should back up an unparseable document and reset to defaults", func() {
			Expect(os.WriteFile(path, []byte("{not json"), 0o600)).To(Succeed())

			s := libcfg.New(path, nil)
			Expect(s.Load()).To(BeNil())

			Expect(s.Config().UI.Theme).To(Equal("dark"))
			Expect(s.WasReset()).To(BeTrue())
			Expect(s.WasReset()).To(BeFalse())

			_, err := os.Stat(path + ".corrupt")
			Expect(err).ToNot(HaveOccurred())

			_, err = os.Stat(path)
			Expect(err).ToNot(HaveOccurred())
		})

		It("should reset a document failing schema validation", func() {
			doc := `{"schema_version": 2, "ui": {"theme": "purple"}}`
			Expect(os.WriteFile(path, []byte(doc), 0o600)).To(Succeed())

			s := libcfg.New(path, nil)
			Expect(s.Load()).To(BeNil())

			Expect(s.Config().UI.Theme).To(Equal("dark"))
			Expect(s.WasReset()).To(BeTrue())
		})
	})

	Context("migration", func() {
		It("should lift a legacy flat layout into groups", func() {
			doc := `{
				"last_port": "COM3",
				"default_baudrate": 57600,
				"prefix": "AT+",
				"suffix": "\\r\\n",
				"theme": "light"
			}`
			Expect(os.WriteFile(path, []byte(doc), 0o600)).To(Succeed())

			s := libcfg.New(path, nil)
			Expect(s.Load()).To(BeNil())

			cfg := s.Config()
			Expect(cfg.SchemaVersion).To(Equal(libcfg.SchemaVersion))
			Expect(cfg.Serial.LastPort).To(Equal("COM3"))
			Expect(cfg.Serial.DefaultBaudrate).To(Equal(57600))
			Expect(cfg.Command.Prefix).To(Equal("AT+"))
			Expect(cfg.UI.Theme).To(Equal("light"))
		})

		It("should not overwrite grouped values with legacy leftovers", func() {
			doc := `{
				"theme": "light",
				"ui": {"theme": "dark"}
			}`
			Expect(os.WriteFile(path, []byte(doc), 0o600)).To(Succeed())

			s := libcfg.New(path, nil)
			Expect(s.Load()).To(BeNil())
			Expect(s.Config().UI.Theme).To(Equal("dark"))
		})
	})

	Context("change notification", func() {
		It("should publish settings.changed on Set", func() {
			var (
				m     sync.Mutex
				delta map[string]interface{}
			)

			bus := libbus.New()
			_, _ = bus.Subscribe(libcfg.TopicChanged, func(_ string, payload interface{}) {
				if ev, k := payload.(libcfg.EventChanged); k {
					m.Lock()
					delta = ev.Delta
					m.Unlock()
				}
			})

			s := libcfg.New(path, nil)
			s.SetBus(bus)
			Expect(s.Load()).To(BeNil())

			s.Set(libcfg.KeyUITheme, "light")

			m.Lock()
			defer m.Unlock()
			Expect(delta).To(HaveKeyWithValue(libcfg.KeyUITheme, "light"))
		})

		It("should skip the event when the value is unchanged", func() {
			var n int

			bus := libbus.New()
			_, _ = bus.Subscribe(libcfg.TopicChanged, func(string, interface{}) { n++ })

			s := libcfg.New(path, nil)
			s.SetBus(bus)
			Expect(s.Load()).To(BeNil())

			s.Set(libcfg.KeyUITheme, "dark")
			Expect(n).To(Equal(0))
		})
	})

	Context("watch", func() {
		It("should reload and publish when the file changes externally", func() {
			var (
				m     sync.Mutex
				delta map[string]interface{}
			)

			bus := libbus.New()
			_, _ = bus.Subscribe(libcfg.TopicChanged, func(_ string, payload interface{}) {
				if ev, k := payload.(libcfg.EventChanged); k {
					m.Lock()
					delta = ev.Delta
					m.Unlock()
				}
			})

			s := libcfg.New(path, nil)
			s.SetBus(bus)
			Expect(s.Load()).To(BeNil())
			Expect(s.Save()).To(BeNil())

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			Expect(s.Watch(ctx)).To(BeNil())

			time.Sleep(50 * time.Millisecond)

			raw := `{"schema_version": 2, "ui": {"theme": "light"}}`
			Expect(os.WriteFile(path, []byte(raw), 0o600)).To(Succeed())

			Eventually(func() interface{} {
				m.Lock()
				defer m.Unlock()
				if delta == nil {
					return nil
				}
				return delta[libcfg.KeyUITheme]
			}, "3s", "20ms").Should(Equal("light"))

			Expect(s.Config().UI.Theme).To(Equal("light"))
		})
	})
})
