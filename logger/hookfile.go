/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
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

package logger

import (
	"os"
	"sync"

	libiot "github.com/jincoder/serialtool/ioutils"
	"github.com/sirupsen/logrus"
)

// hookFile appends entries to one log file without colors.
type hookFile struct {
	m sync.Mutex
	f *os.File
	t logrus.Formatter
}

func newHookFile(opt OptionsFile) (*hookFile, error) {
	if opt.FileMode == 0 {
		opt.FileMode = 0o644
	}
	if opt.PathMode == 0 {
		opt.PathMode = 0o755
	}

	if err := libiot.PathCheckCreate(true, opt.Filepath, opt.FileMode, opt.PathMode); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(opt.Filepath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, opt.FileMode)
	if err != nil {
		return nil, err
	}

	return &hookFile{
		f: f,
		t: &logrus.TextFormatter{
			DisableColors:          true,
			FullTimestamp:          true,
			DisableLevelTruncation: true,
			QuoteEmptyFields:       true,
		},
	}, nil
}

func (o *hookFile) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (o *hookFile) Fire(e *logrus.Entry) error {
	p, err := o.t.Format(e)
	if err != nil {
		return err
	}

	o.m.Lock()
	defer o.m.Unlock()

	if o.f == nil {
		return nil
	}

	_, err = o.f.Write(p)
	return err
}

func (o *hookFile) Close() error {
	o.m.Lock()
	defer o.m.Unlock()

	if o.f == nil {
		return nil
	}

	err := o.f.Close()
	o.f = nil
	return err
}
