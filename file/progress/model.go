/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package progress

import (
	"errors"
	"io"
	"os"
	"sync"
)

// prg is the internal implementation of the Progress interface.
type prg struct {
	m sync.Mutex
	f *os.File
	n string

	fi FctIncrement
	fr FctReset
	fe FctEOF
	eo bool // EOF already fired
}

// ErrClosed is returned by operations on a closed Progress.
var ErrClosed = errors.New("file is closed")

func (o *prg) file() (*os.File, error) {
	if o.f == nil {
		return nil, ErrClosed
	}

	return o.f, nil
}

func (o *prg) increment(n int) {
	if n > 0 && o.fi != nil {
		o.fi(int64(n))
	}
}

func (o *prg) eof() {
	if !o.eo && o.fe != nil {
		o.fe()
	}

	o.eo = true
}

func (o *prg) Read(p []byte) (int, error) {
	o.m.Lock()
	defer o.m.Unlock()

	f, err := o.file()
	if err != nil {
		return 0, err
	}

	n, err := f.Read(p)
	o.increment(n)

	if errors.Is(err, io.EOF) {
		o.eof()
	}

	return n, err
}

func (o *prg) Write(p []byte) (int, error) {
	o.m.Lock()
	defer o.m.Unlock()

	f, err := o.file()
	if err != nil {
		return 0, err
	}

	n, err := f.Write(p)
	o.increment(n)
	return n, err
}

func (o *prg) Seek(offset int64, whence int) (int64, error) {
	o.m.Lock()
	defer o.m.Unlock()

	f, err := o.file()
	if err != nil {
		return 0, err
	}

	return f.Seek(offset, whence)
}

func (o *prg) Close() error {
	o.m.Lock()
	defer o.m.Unlock()

	if o.f == nil {
		return nil
	}

	err := o.f.Close()
	o.f = nil
	return err
}

func (o *prg) Path() string {
	return o.n
}

func (o *prg) Stat() (os.FileInfo, error) {
	o.m.Lock()
	defer o.m.Unlock()

	f, err := o.file()
	if err != nil {
		return nil, err
	}

	return f.Stat()
}

func (o *prg) SizeBOF() (int64, error) {
	o.m.Lock()
	defer o.m.Unlock()

	f, err := o.file()
	if err != nil {
		return 0, err
	}

	return f.Seek(0, io.SeekCurrent)
}

func (o *prg) SizeEOF() (int64, error) {
	o.m.Lock()
	defer o.m.Unlock()

	f, err := o.file()
	if err != nil {
		return 0, err
	}

	cur, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}

	st, err := f.Stat()
	if err != nil {
		return 0, err
	}

	return st.Size() - cur, nil
}

func (o *prg) Truncate(size int64) error {
	o.m.Lock()
	defer o.m.Unlock()

	f, err := o.file()
	if err != nil {
		return err
	}

	return f.Truncate(size)
}

func (o *prg) Sync() error {
	o.m.Lock()
	defer o.m.Unlock()

	f, err := o.file()
	if err != nil {
		return err
	}

	return f.Sync()
}

func (o *prg) RegisterFctIncrement(fct FctIncrement) {
	o.m.Lock()
	o.fi = fct
	o.m.Unlock()
}

func (o *prg) RegisterFctReset(fct FctReset) {
	o.m.Lock()
	o.fr = fct
	o.m.Unlock()
}

func (o *prg) RegisterFctEOF(fct FctEOF) {
	o.m.Lock()
	o.fe = fct
	o.m.Unlock()
}

func (o *prg) Reset(max int64) {
	o.m.Lock()
	defer o.m.Unlock()

	o.eo = false

	if o.fr == nil {
		return
	}

	var cur int64
	if o.f != nil {
		cur, _ = o.f.Seek(0, io.SeekCurrent)
	}

	o.fr(max, cur)
}
