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

package transport

import (
	"errors"
	"io"

	liberr "github.com/jincoder/serialtool/errors"
	libser "go.bug.st/serial"
)

// srl is the serial implementation of the Transport interface, backed by
// go.bug.st/serial.
type srl struct {
	c Config
	p libser.Port
}

func (o *srl) mode() *libser.Mode {
	m := &libser.Mode{
		BaudRate: o.c.Baud,
		DataBits: o.c.DataBits,
	}

	switch o.c.Parity {
	case ParityEven:
		m.Parity = libser.EvenParity
	case ParityOdd:
		m.Parity = libser.OddParity
	case ParityMark:
		m.Parity = libser.MarkParity
	case ParitySpace:
		m.Parity = libser.SpaceParity
	default:
		m.Parity = libser.NoParity
	}

	switch o.c.StopBits {
	case StopBitsOneHalf:
		m.StopBits = libser.OnePointFiveStopBits
	case StopBitsTwo:
		m.StopBits = libser.TwoStopBits
	default:
		m.StopBits = libser.OneStopBit
	}

	return m
}

func (o *srl) openError(e error) liberr.Error {
	var pe *libser.PortError

	if errors.As(e, &pe) {
		switch pe.Code() {
		case libser.PermissionDenied:
			return ErrorOpenPermission.Error(e)
		case libser.PortBusy:
			return ErrorOpenBusy.Error(e)
		case libser.PortNotFound:
			return ErrorOpenNotFound.Error(e)
		case libser.InvalidSerialPort, libser.InvalidSpeed, libser.InvalidDataBits, libser.InvalidParity, libser.InvalidStopBits:
			return ErrorOpenInvalid.Error(e)
		}
	}

	return ErrorOpenOther.Error(e)
}

func (o *srl) Open() liberr.Error {
	if o.p != nil {
		return nil
	}

	if o.c.Device == "" || o.c.Baud < 1 {
		return ErrorOpenInvalid.Error(nil)
	}

	p, e := libser.Open(o.c.Device, o.mode())
	if e != nil {
		return o.openError(e)
	}

	if e = p.SetReadTimeout(o.c.ReadTimeout.Time()); e != nil {
		_ = p.Close()
		return ErrorOpenOther.Error(e)
	}

	// go.bug.st/serial exposes no handshake mode: assert the modem lines
	// the peer expects and leave software flow control to the device.
	switch o.c.FlowControl {
	case FlowRTSCTS:
		_ = p.SetRTS(true)
	case FlowDSRDTR:
		_ = p.SetDTR(true)
	}

	o.p = p
	return nil
}

func (o *srl) Close() {
	if o.p == nil {
		return
	}

	_ = o.p.Close()
	o.p = nil
}

func (o *srl) IsOpen() bool {
	return o != nil && o.p != nil
}

func (o *srl) Read(p []byte) (int, liberr.Error) {
	if o.p == nil {
		return 0, ErrorNotOpen.Error(nil)
	}

	n, e := o.p.Read(p)

	if e == nil {
		return n, nil
	} else if errors.Is(e, io.EOF) {
		return n, ErrorDisconnected.Error(e)
	}

	var pe *libser.PortError
	if errors.As(e, &pe) && pe.Code() == libser.PortClosed {
		return n, ErrorDisconnected.Error(e)
	}

	return n, ErrorIORead.Error(e)
}

func (o *srl) Write(p []byte) (int, liberr.Error) {
	if o.p == nil {
		return 0, ErrorNotOpen.Error(nil)
	}

	n, e := o.p.Write(p)

	if e == nil {
		return n, nil
	} else if errors.Is(e, io.EOF) {
		return n, ErrorDisconnected.Error(e)
	}

	return n, ErrorIOWrite.Error(e)
}
