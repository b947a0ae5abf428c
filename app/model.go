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

package app

import (
	"context"
	"path/filepath"
	"sync"

	libcnn "github.com/jincoder/serialtool/connection"
	libdlg "github.com/jincoder/serialtool/datalog"
	libdsp "github.com/jincoder/serialtool/dispatcher"
	liberr "github.com/jincoder/serialtool/errors"
	errhdl "github.com/jincoder/serialtool/errors/handler"
	libbus "github.com/jincoder/serialtool/eventbus"
	libftr "github.com/jincoder/serialtool/filetransfer"
	liblog "github.com/jincoder/serialtool/logger"
	loglvl "github.com/jincoder/serialtool/logger/level"
	libmac "github.com/jincoder/serialtool/macro"
	libcfg "github.com/jincoder/serialtool/settings"
)

// logFileName is the application log inside the configured log directory.
const logFileName = "serialtool.log"

// apl is the internal implementation of the App interface.
type apl struct {
	p string

	g  liblog.Logger
	fl liblog.FuncLog
	b  libbus.Bus
	h  errhdl.Handler
	s  libcfg.Store
	c  libcnn.Controller
	m  libmac.Runner
	t  libftr.Engine
	d  libdsp.Dispatcher

	mu sync.Mutex
	k  libdlg.Logger // capture, nil before Start
	cl bool          // closed
}

func (o *apl) Start(ctx context.Context) liberr.Error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := o.s.Load(); err != nil {
		return ErrorSettings.Error(err)
	}

	cfg := o.s.Config()

	if err := o.g.SetOptions(&liblog.Options{
		LogFile: []liblog.OptionsFile{{
			Filepath: filepath.Join(cfg.Logging.LogDir, logFileName),
		}},
	}); err != nil {
		return ErrorLogger.Error(err)
	}

	if o.s.WasReset() {
		o.g.Warning("settings were reset to defaults, backup kept next to the document", nil)
	}

	capture, err := libdlg.New(libdlg.Config{
		Path:         filepath.Join(cfg.Logging.LogDir, "capture."+cfg.Logging.Format),
		Format:       libdlg.ParseFormat(cfg.Logging.Format),
		MaxFileBytes: cfg.Logging.MaxFileBytes,
		KeepFiles:    cfg.Logging.KeepFiles,
		IncludeTx:    true,
	}, o.fl)
	if err != nil {
		return ErrorCapture.Error(err)
	}

	capture.SubscribeTo(o.b)

	o.mu.Lock()
	o.k = capture
	o.mu.Unlock()

	o.s.SetBus(o.b)

	if err := o.s.Watch(ctx); err != nil {
		o.g.Entry(loglvl.WarnLevel, "settings watch unavailable").ErrorAdd(true, err).Log()
	}

	o.d.Start()

	o.g.Info("application started, settings at '%s'", nil, o.p)
	return nil
}

func (o *apl) Close() {
	o.mu.Lock()

	if o.cl {
		o.mu.Unlock()
		return
	}

	o.cl = true
	capture := o.k
	o.mu.Unlock()

	o.m.Stop()
	o.c.Shutdown(context.Background())

	o.d.Drain()
	o.d.Stop()

	if capture != nil {
		_ = capture.Close()
	}

	o.g.Info("application stopped", nil)
	_ = o.g.Close()
}

func (o *apl) Bus() libbus.Bus {
	return o.b
}

func (o *apl) Logger() liblog.Logger {
	return o.g
}

func (o *apl) Log() liblog.FuncLog {
	return o.fl
}

func (o *apl) Faults() errhdl.Handler {
	return o.h
}

func (o *apl) Settings() libcfg.Store {
	return o.s
}

func (o *apl) Controller() libcnn.Controller {
	return o.c
}

func (o *apl) Macro() libmac.Runner {
	return o.m
}

func (o *apl) Transfers() libftr.Engine {
	return o.t
}

func (o *apl) Dispatcher() libdsp.Dispatcher {
	return o.d
}

func (o *apl) Capture() libdlg.Logger {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.k
}
