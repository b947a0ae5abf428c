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

package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"sync/atomic"

	libfsn "github.com/fsnotify/fsnotify"
	libval "github.com/go-playground/validator/v10"
	libdur "github.com/jincoder/serialtool/duration"
	liberr "github.com/jincoder/serialtool/errors"
	libbus "github.com/jincoder/serialtool/eventbus"
	libiot "github.com/jincoder/serialtool/ioutils"
	liblog "github.com/jincoder/serialtool/logger"
	loglvl "github.com/jincoder/serialtool/logger/level"
	libsiz "github.com/jincoder/serialtool/size"
	"github.com/mitchellh/mapstructure"
	spfvpr "github.com/spf13/viper"
)

// str is the internal implementation of the Store interface.
type str struct {
	p string
	l liblog.FuncLog

	m sync.RWMutex
	c Config

	b atomic.Value // libbus.Bus
	r atomic.Bool  // reset-on-start flag
}

func (o *str) log() liblog.Logger {
	if o.l != nil {
		return o.l()
	}

	return nil
}

func (o *str) bus() libbus.Bus {
	if i := o.b.Load(); i != nil {
		if b, k := i.(libbus.Bus); k {
			return b
		}
	}

	return nil
}

func (o *str) SetBus(bus libbus.Bus) {
	if bus != nil {
		o.b.Store(bus)
	}
}

func (o *str) WasReset() bool {
	return o.r.Swap(false)
}

// decode unmarshals a raw document into a typed config seeded with the
// defaults, so absent fields keep their schema value. Safe casts convert
// loosely-typed fields; a field that cannot convert at all falls back to
// its group decoded in isolation, keeping the defaults of the failing
// group only.
func decode(doc map[string]interface{}, cfg *Config) error {
	v := spfvpr.New()
	if err := v.MergeConfigMap(doc); err != nil {
		return err
	}

	hook := spfvpr.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		libsiz.ViperDecoderHook(),
		libdur.ViperDecoderHook(),
	))

	weak := func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = true
	}

	if err := v.Unmarshal(cfg, hook, weak); err == nil {
		return nil
	}

	// group-wise fallback: one bad group must not discard the others
	groups := map[string]interface{}{
		"serial":  &cfg.Serial,
		"command": &cfg.Command,
		"logging": &cfg.Logging,
		"ui":      &cfg.UI,
		"parser":  &cfg.Parser,
		"macro":   &cfg.Macro,
	}

	for key, dst := range groups {
		if !v.IsSet(key) {
			continue
		}

		_ = v.UnmarshalKey(key, dst, hook, weak)
	}

	return nil
}

func (o *str) Load() liberr.Error {
	raw, err := os.ReadFile(o.p)
	if os.IsNotExist(err) {
		o.m.Lock()
		o.c = Default()
		o.m.Unlock()
		return nil
	} else if err != nil {
		return ErrorFileRead.Error(err)
	}

	var doc map[string]interface{}
	if err = json.Unmarshal(raw, &doc); err != nil {
		return o.reset(err)
	}

	doc = migrate(doc)

	cfg := Default()
	if err = decode(doc, &cfg); err != nil {
		return o.reset(err)
	}
	cfg.SchemaVersion = SchemaVersion

	if err = libval.New().Struct(cfg); err != nil {
		return o.reset(ErrorValidate.Error(err))
	}

	o.m.Lock()
	o.c = cfg
	o.m.Unlock()

	return nil
}

// reset preserves the corrupt document as a backup, restores the embedded
// defaults and raises the reset-on-start flag. The failure is recovered
// locally: Load still succeeds.
func (o *str) reset(cause error) liberr.Error {
	if err := os.Rename(o.p, o.p+".corrupt"); err != nil && !os.IsNotExist(err) {
		return ErrorFileWrite.Error(err)
	}

	o.m.Lock()
	o.c = Default()
	o.m.Unlock()

	o.r.Store(true)

	if log := o.log(); log != nil {
		log.Entry(loglvl.WarnLevel, "settings document reset to defaults, backup kept at '%s'", o.p+".corrupt").ErrorAdd(true, cause).Log()
	}

	return o.Save()
}

func (o *str) Save() liberr.Error {
	o.m.RLock()
	cfg := o.c
	o.m.RUnlock()

	if err := libiot.PathCheckCreate(false, filepath.Dir(o.p), 0o644, 0o755); err != nil {
		return ErrorFileWrite.Error(err)
	}

	raw, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return ErrorFileWrite.Error(err)
	}

	if err = os.WriteFile(o.p, append(raw, '\n'), 0o600); err != nil {
		return ErrorFileWrite.Error(err)
	}

	return nil
}

func (o *str) Config() Config {
	o.m.RLock()
	defer o.m.RUnlock()

	return o.c
}

// snapshot renders the current document as a flat key map of the catalog
// notation.
func (o *str) snapshot() map[string]interface{} {
	o.m.RLock()
	cfg := o.c
	o.m.RUnlock()

	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil
	}

	var doc map[string]interface{}
	if err = json.Unmarshal(raw, &doc); err != nil {
		return nil
	}

	res := make(map[string]interface{})
	flatten("", doc, res)
	return res
}

func flatten(prefix string, doc map[string]interface{}, res map[string]interface{}) {
	for k, v := range doc {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		if sub, ok := v.(map[string]interface{}); ok {
			flatten(key, sub, res)
			continue
		}

		res[key] = v
	}
}

func (o *str) Get(key string) interface{} {
	return o.snapshot()[key]
}

func (o *str) Set(key string, value interface{}) {
	doc := o.snapshot()
	if doc == nil {
		return
	}

	old, had := doc[key]
	if had && reflect.DeepEqual(old, value) {
		return
	}

	nested := make(map[string]interface{})
	for k, v := range doc {
		nested[k] = v
	}
	nested[key] = value

	// flat catalog keys merge through viper's dotted-key handling
	v := spfvpr.New()
	for k, val := range nested {
		v.Set(k, val)
	}

	cfg := Default()
	if err := decode(v.AllSettings(), &cfg); err != nil {
		return
	}
	cfg.SchemaVersion = SchemaVersion

	o.m.Lock()
	o.c = cfg
	o.m.Unlock()

	if b := o.bus(); b != nil {
		b.Publish(TopicChanged, EventChanged{Delta: map[string]interface{}{key: value}})
	}
}

func (o *str) Watch(ctx context.Context) liberr.Error {
	w, err := libfsn.NewWatcher()
	if err != nil {
		return ErrorWatch.Error(err)
	}

	if err = w.Add(filepath.Dir(o.p)); err != nil {
		_ = w.Close()
		return ErrorWatch.Error(err)
	}

	go func() {
		defer func() {
			_ = w.Close()
		}()

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-w.Events:
				if !ok {
					return
				}

				if ev.Name != o.p || !ev.Op.Has(libfsn.Write) && !ev.Op.Has(libfsn.Create) {
					continue
				}

				before := o.snapshot()
				if err := o.Load(); err != nil {
					continue
				}
				after := o.snapshot()

				delta := diff(before, after)
				if len(delta) == 0 {
					continue
				}

				if b := o.bus(); b != nil {
					b.Publish(TopicChanged, EventChanged{Delta: delta})
				}

			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return nil
}

// diff returns the keys whose values changed between two flat snapshots,
// mapped to their new value.
func diff(before, after map[string]interface{}) map[string]interface{} {
	res := make(map[string]interface{})

	for k, v := range after {
		if old, ok := before[k]; !ok || fmt.Sprintf("%v", old) != fmt.Sprintf("%v", v) {
			res[k] = v
		}
	}

	for k := range before {
		if _, ok := after[k]; !ok {
			res[k] = nil
		}
	}

	return res
}
