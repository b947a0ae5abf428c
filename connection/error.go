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

package connection

import "github.com/jincoder/serialtool/errors"

const (
	ErrorParamsEmpty errors.CodeError = iota + errors.MinPkgConnection
	ErrorBadConfig
	ErrorAlreadyOpen
	ErrorUnknownPort
	ErrorNotOpen
	ErrorQueueFull
	ErrorCloseTimeout
	ErrorTransferBusy
	ErrorWorkerPanic
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = errors.ExistInMapMessage(ErrorParamsEmpty)
	errors.RegisterIdFctMessage(ErrorParamsEmpty, getMessage)
}

func getMessage(code errors.CodeError) (message string) {
	switch code {
	case errors.UnknownError:
		return ""
	case ErrorParamsEmpty:
		return "given parameters is empty"
	case ErrorBadConfig:
		return "invalid port configuration"
	case ErrorAlreadyOpen:
		return "port identifier is already registered"
	case ErrorUnknownPort:
		return "unknown port identifier"
	case ErrorNotOpen:
		return "port is not open"
	case ErrorQueueFull:
		return "transmit queue is full"
	case ErrorCloseTimeout:
		return "worker did not stop within the close timeout"
	case ErrorTransferBusy:
		return "port already has an active file transfer"
	case ErrorWorkerPanic:
		return "worker goroutine recovered from a panic"
	}

	return ""
}
