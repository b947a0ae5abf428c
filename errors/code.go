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

package errors

import (
	"sort"
	"strconv"
	"sync"
)

const (
	// UnknownError is the code of errors minted without a declared code.
	UnknownError CodeError = 0

	// UnknownMessage is the message returned for unregistered codes.
	UnknownMessage = "unknown error"
)

// Message resolves the message of one code. A package registers one
// Message function covering its whole code range.
type Message func(code CodeError) (message string)

// CodeError is a numeric error code. Each package owns one range of
// codes declared in modules.go, so a code identifies both the failing
// package and the failure kind.
type CodeError uint16

var (
	msgMut sync.RWMutex
	msgFct = make(map[CodeError]Message)
	msgKey []CodeError
)

// RegisterIdFctMessage registers the message function covering the code
// range starting at minCode. Packages call it from their error.go init.
func RegisterIdFctMessage(minCode CodeError, fct Message) {
	if fct == nil {
		return
	}

	msgMut.Lock()
	defer msgMut.Unlock()

	if _, ok := msgFct[minCode]; !ok {
		msgKey = append(msgKey, minCode)
		sort.Slice(msgKey, func(i, j int) bool {
			return msgKey[i] < msgKey[j]
		})
	}

	msgFct[minCode] = fct
}

// ExistInMapMessage reports whether a registered message function
// resolves the given code to a non-empty message. Packages use it to
// detect range collisions before registering.
func ExistInMapMessage(code CodeError) bool {
	if f := findMessage(code); f != nil {
		return f(code) != ""
	}

	return false
}

// findMessage returns the message function whose range covers code: the
// registered function with the highest min below or equal to code.
func findMessage(code CodeError) Message {
	msgMut.RLock()
	defer msgMut.RUnlock()

	var res Message

	for _, k := range msgKey {
		if k > code {
			break
		}

		res = msgFct[k]
	}

	return res
}

// Uint16 returns the code as an uint16.
func (c CodeError) Uint16() uint16 {
	return uint16(c)
}

// Int returns the code as an int.
func (c CodeError) Int() int {
	return int(c)
}

// String returns the decimal notation of the code.
func (c CodeError) String() string {
	return strconv.Itoa(c.Int())
}

// Message returns the registered message of the code, or UnknownMessage.
func (c CodeError) Message() string {
	if c == UnknownError {
		return UnknownMessage
	}

	if f := findMessage(c); f != nil {
		if m := f(c); m != "" {
			return m
		}
	}

	return UnknownMessage
}

// Error mints an Error carrying this code, its registered message and
// the given parent chain.
func (c CodeError) Error(parent ...error) Error {
	e := &ers{
		c: c.Uint16(),
		e: c.Message(),
		t: getFrame(),
	}

	e.Add(parent...)
	return e
}

// IfError mints an Error like Error, or nil when no parent is a usable
// error.
func (c CodeError) IfError(parent ...error) Error {
	if e := c.Error(parent...); e.HasParent() {
		return e
	}

	return nil
}
