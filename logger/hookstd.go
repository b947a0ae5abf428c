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
	"io"

	libcol "github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
)

// hookStd writes entries to the standard output pair: warnings and
// worse to stderr, the rest to stdout, through ANSI-aware writers.
type hookStd struct {
	o io.Writer
	e io.Writer
	f logrus.Formatter
}

func newHookStd(opt *OptionsStd) *hookStd {
	return &hookStd{
		o: libcol.NewColorableStdout(),
		e: libcol.NewColorableStderr(),
		f: &logrus.TextFormatter{
			ForceColors:            !opt.DisableColor,
			DisableColors:          opt.DisableColor,
			FullTimestamp:          true,
			DisableLevelTruncation: true,
			PadLevelText:           true,
			QuoteEmptyFields:       true,
		},
	}
}

func (o *hookStd) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (o *hookStd) Fire(e *logrus.Entry) error {
	p, err := o.f.Format(e)
	if err != nil {
		return err
	}

	if e.Level <= logrus.WarnLevel {
		_, err = o.e.Write(p)
	} else {
		_, err = o.o.Write(p)
	}

	return err
}
