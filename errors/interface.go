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

// Package errors extends the standard error with numeric codes, parent
// chains and a captured call frame.
//
// Every package of this module declares its failure codes in an error.go
// file against the ranges of modules.go and registers a message function;
// a CodeError then mints Error values carrying the code, the registered
// message, the causing errors and the frame the error was built at. The
// type stays compatible with errors.Is and errors.As through Unwrap.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// FuncMap visits one error of a chain; returning false stops the walk.
type FuncMap func(e error) bool

// Error is an error carrying a code, a parent chain and a call frame.
type Error interface {
	error

	// IsCode reports whether this error's own code equals code. Parents
	// are not consulted.
	IsCode(code CodeError) bool

	// HasCode reports whether this error or any parent carries code.
	HasCode(code CodeError) bool

	// GetCode returns this error's own code.
	GetCode() CodeError

	// CodeSlice returns the codes of this error and every parent.
	CodeSlice() []uint16

	// Add appends the given non-nil errors to the parent chain.
	Add(parent ...error)

	// HasParent reports whether the parent chain is non-empty.
	HasParent() bool

	// GetParent returns the parent chain, optionally led by this error.
	GetParent(withMainError bool) []error

	// Map visits this error then every parent until fct returns false.
	// It reports whether the walk ran to completion.
	Map(fct FuncMap) bool

	// ContainsString reports whether this error's message or any parent
	// message contains s.
	ContainsString(s string) bool

	// Is reports whether e matches this error or any parent, keeping the
	// type compatible with the standard errors.Is.
	Is(e error) bool

	// Unwrap returns the parent chain for errors.Is / errors.As.
	Unwrap() []error

	// StringError returns this error's own message without the parents.
	StringError() string

	// GetTrace returns the file:line notation of the captured frame.
	GetTrace() string
}

// Is reports whether e carries an Error anywhere in its chain.
func Is(e error) bool {
	var err Error
	return errors.As(e, &err)
}

// Get returns the Error carried by e, or nil.
func Get(e error) Error {
	var err Error
	if errors.As(e, &err) {
		return err
	}

	return nil
}

// Has reports whether e carries the given code anywhere in its chain.
func Has(e error, code CodeError) bool {
	if err := Get(e); err != nil {
		return err.HasCode(code)
	}

	return false
}

// IsCode reports whether e's own code equals the given code.
func IsCode(e error, code CodeError) bool {
	if err := Get(e); err != nil {
		return err.IsCode(code)
	}

	return false
}

// ContainsString reports whether e's message chain contains s.
func ContainsString(e error, s string) bool {
	if e == nil {
		return false
	} else if err := Get(e); err != nil {
		return err.ContainsString(s)
	}

	return strings.Contains(e.Error(), s)
}

// Make wraps a plain error into an Error with code zero; an Error passes
// through untouched and nil stays nil.
func Make(e error) Error {
	if e == nil {
		return nil
	}

	var err Error
	if errors.As(e, &err) {
		return err
	}

	return &ers{
		c: 0,
		e: e.Error(),
		t: getNilFrame(),
	}
}

// New returns an Error with the given code, message and parent chain,
// capturing the caller's frame.
func New(code uint16, message string, parent ...error) Error {
	e := &ers{
		c: code,
		e: message,
		t: getFrame(),
	}

	e.Add(parent...)
	return e
}

// Newf returns an Error with the given code and a formatted message,
// capturing the caller's frame.
func Newf(code uint16, pattern string, args ...interface{}) Error {
	return &ers{
		c: code,
		e: fmt.Sprintf(pattern, args...),
		t: getFrame(),
	}
}

// IfError returns an Error wrapping the given parents, or nil when no
// parent is a usable error.
func IfError(code uint16, message string, parent ...error) Error {
	e := &ers{
		c: code,
		e: message,
		t: getFrame(),
	}

	e.Add(parent...)

	if !e.HasParent() {
		return nil
	}

	return e
}

// NewErrorRecovered wraps a recovered panic value into an Error carrying
// the non-runtime frames of the panicking goroutine.
func NewErrorRecovered(msg string, recovered string, parent ...error) Error {
	e := &ers{
		c: 0,
		e: msg,
		t: getFrame(),
	}

	if recovered != "" {
		e.p = append(e.p, &ers{e: recovered, t: getNilFrame()})
	}

	e.Add(parent...)

	for _, f := range getFrameVendor() {
		if f == getNilFrame() {
			continue
		}

		e.e += "\n " + fmt.Sprintf("Fct: %s - File: %s - Line: %d", f.Function, f.File, f.Line)
	}

	return e
}
