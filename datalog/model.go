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

package datalog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	libcnn "github.com/jincoder/serialtool/connection"
	liberr "github.com/jincoder/serialtool/errors"
	libbus "github.com/jincoder/serialtool/eventbus"
	libiot "github.com/jincoder/serialtool/ioutils"
	libmlt "github.com/jincoder/serialtool/ioutils/multi"
	liblog "github.com/jincoder/serialtool/logger"
	loglvl "github.com/jincoder/serialtool/logger/level"
	libpsr "github.com/jincoder/serialtool/parser"
)

// dlg is the internal implementation of the Logger interface.
// Records go through a fan-out writer so live mirrors (an inspector view,
// a tee file) see the same stream as the capture file.
type dlg struct {
	c Config
	l liblog.FuncLog

	m sync.Mutex
	f *os.File
	w libmlt.Multi
	x []io.Writer // registered mirrors
	n int64       // bytes written to the active file
	o int64       // per-direction running offsets for the hex dump
	i int64
}

func (o *dlg) log() liblog.Logger {
	if o.l != nil {
		return o.l()
	}

	return nil
}

// open creates the destination directory and the active file, writing the
// format preamble when the format has one.
func (o *dlg) open() liberr.Error {
	if err := libiot.PathCheckCreate(false, filepath.Dir(o.c.Path), 0o644, 0o755); err != nil {
		return ErrorFileOpen.Error(err)
	}

	f, err := os.OpenFile(o.c.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return ErrorFileOpen.Error(err)
	}

	st, serr := f.Stat()
	if serr != nil {
		_ = f.Close()
		return ErrorFileOpen.Error(serr)
	}

	o.f = f
	o.n = st.Size()

	if o.w == nil {
		o.w = libmlt.New()
	}

	o.w.Clean()
	o.w.AddWriter(f)
	o.w.AddWriter(o.x...)

	if o.c.Format == FormatPcap && o.n == 0 {
		if err := o.writeRaw(pcapGlobalHeader()); err != nil {
			return err
		}
	}

	return nil
}

func (o *dlg) Record(dir Direction, port string, ts time.Time, p []byte) liberr.Error {
	if len(p) == 0 {
		return nil
	}

	if dir == DirTX && !o.c.IncludeTx {
		return nil
	}

	o.m.Lock()
	defer o.m.Unlock()

	if o.f == nil {
		return ErrorClosed.Error(nil)
	}

	var err liberr.Error

	switch o.c.Format {
	case FormatHexDump:
		err = o.writeRaw(o.hexRecord(dir, port, p))
	case FormatPcap:
		err = o.writeRaw(pcapRecord(dir, ts, p))
	default:
		err = o.writeRaw(p)
	}

	if err != nil {
		return err
	}

	if o.n >= o.c.MaxFileBytes.Int64() {
		return o.rotate()
	}

	return nil
}

func (o *dlg) writeRaw(p []byte) liberr.Error {
	n, err := o.w.Write(p)
	o.n += int64(n)

	if err != nil {
		if log := o.log(); log != nil {
			log.Entry(loglvl.ErrorLevel, "capture write failed on '%s'", o.c.Path).ErrorAdd(true, err).Log()
		}

		return ErrorFileWrite.Error(err)
	}

	return nil
}

// hexRecord renders one directional payload as hex dump lines with the
// direction prefix, advancing that direction's running offset.
func (o *dlg) hexRecord(dir Direction, port string, p []byte) []byte {
	var base *int64
	if dir == DirTX {
		base = &o.i
	} else {
		base = &o.o
	}

	var res []byte
	for _, line := range splitLines(libpsr.Dump(p, *base)) {
		res = append(res, []byte(fmt.Sprintf("%s %s %s\n", dir.String(), port, line))...)
	}

	*base += int64(len(p))
	return res
}

// rotate trims the backlog to the retention count, shifts the numbered
// backlog up, compresses the active file into <path>.1.gz and reopens a
// fresh active file.
func (o *dlg) rotate() liberr.Error {
	if err := o.f.Close(); err != nil {
		return ErrorFileRotate.Error(err)
	}
	o.f = nil

	_ = os.Remove(fmt.Sprintf("%s.%d.gz", o.c.Path, o.c.KeepFiles))

	for i := o.c.KeepFiles; i > 1; i-- {
		prev := fmt.Sprintf("%s.%d.gz", o.c.Path, i-1)
		next := fmt.Sprintf("%s.%d.gz", o.c.Path, i)

		if _, err := os.Stat(prev); err == nil {
			_ = os.Rename(prev, next)
		}
	}

	if err := compressFile(o.c.Path, o.c.Path+".1.gz"); err != nil {
		return ErrorFileRotate.Error(err)
	}

	if err := os.Remove(o.c.Path); err != nil {
		return ErrorFileRotate.Error(err)
	}

	o.n = 0
	o.o = 0
	o.i = 0

	if log := o.log(); log != nil {
		log.Entry(loglvl.InfoLevel, "capture file '%s' rotated", o.c.Path).Log()
	}

	return o.open()
}

func (o *dlg) SubscribeTo(bus libbus.Bus) {
	_, _ = bus.Subscribe(libcnn.TopicDataReceived, handler(o, DirRX))

	if o.c.IncludeTx {
		_, _ = bus.Subscribe(libcnn.TopicDataSent, handler(o, DirTX))
	}
}

// AddMirror registers an additional live destination receiving the same
// record stream as the capture file.
func (o *dlg) AddMirror(w io.Writer) {
	if w == nil {
		return
	}

	o.m.Lock()
	defer o.m.Unlock()

	o.x = append(o.x, w)

	if o.w != nil {
		o.w.AddWriter(w)
	}
}

func (o *dlg) Close() error {
	o.m.Lock()
	defer o.m.Unlock()

	if o.f == nil {
		return nil
	}

	if o.w != nil {
		o.w.Clean()
	}

	err := o.f.Close()
	o.f = nil
	return err
}

func splitLines(s string) []string {
	var (
		res  []string
		last int
	)

	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			res = append(res, s[last:i])
			last = i + 1
		}
	}

	if last < len(s) {
		res = append(res, s[last:])
	}

	return res
}
