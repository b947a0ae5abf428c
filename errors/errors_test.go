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

package errors_test

import (
	"errors"
	"fmt"

	liberr "github.com/jincoder/serialtool/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CodeError", func() {
	It("should resolve registered messages", func() {
		Expect(testCodeOne.Message()).To(Equal("first test failure"))
		Expect(testCodeTwo.Message()).To(Equal("second test failure"))
		Expect(liberr.UnknownError.Message()).To(Equal(liberr.UnknownMessage))
	})

	It("should mint errors carrying code and message", func() {
		err := testCodeOne.Error(nil)
		Expect(err.Error()).To(ContainSubstring("first test failure"))
		Expect(err.IsCode(testCodeOne)).To(BeTrue())
		Expect(err.IsCode(testCodeTwo)).To(BeFalse())
		Expect(err.GetCode()).To(Equal(testCodeOne))
	})

	It("should convert notations", func() {
		Expect(testCodeOne.Uint16()).To(Equal(uint16(testCodeOne)))
		Expect(testCodeOne.Int()).To(Equal(int(testCodeOne)))
		Expect(testCodeOne.String()).To(Equal(fmt.Sprintf("%d", int(testCodeOne))))
	})

	It("should mint conditionally with IfError", func() {
		Expect(testCodeOne.IfError(nil)).To(BeNil())

		err := testCodeOne.IfError(errors.New("cause"))
		Expect(err).ToNot(BeNil())
		Expect(err.HasParent()).To(BeTrue())
	})
})

var _ = Describe("Error", func() {
	It("should chain parents and report their codes", func() {
		parent := testCodeTwo.Error(nil)
		err := testCodeOne.Error(parent, errors.New("plain cause"))

		Expect(err.HasParent()).To(BeTrue())
		Expect(err.HasCode(testCodeTwo)).To(BeTrue())
		Expect(err.HasCode(testCodeOne)).To(BeTrue())
		Expect(err.CodeSlice()).To(ContainElements(uint16(testCodeOne), uint16(testCodeTwo)))
		Expect(err.GetParent(false)).To(HaveLen(2))
		Expect(err.GetParent(true)).To(HaveLen(3))
	})

	It("should skip nil and empty parents", func() {
		err := testCodeOne.Error(nil, errors.New(""))
		Expect(err.HasParent()).To(BeFalse())
	})

	It("should search messages across the chain", func() {
		err := testCodeOne.Error(errors.New("deep cause"))

		Expect(err.ContainsString("deep cause")).To(BeTrue())
		Expect(err.ContainsString("absent")).To(BeFalse())
		Expect(err.Error()).To(ContainSubstring("deep cause"))
		Expect(err.StringError()).ToNot(ContainSubstring("deep cause"))
	})

	It("should walk the chain with Map", func() {
		err := testCodeOne.Error(testCodeTwo.Error(nil))

		var seen int
		Expect(err.Map(func(e error) bool {
			seen++
			return true
		})).To(BeTrue())
		Expect(seen).To(Equal(2))

		seen = 0
		Expect(err.Map(func(e error) bool {
			seen++
			return false
		})).To(BeFalse())
		Expect(seen).To(Equal(1))
	})

	It("should stay compatible with the standard helpers", func() {
		cause := errors.New("root cause")
		err := testCodeOne.Error(cause)

		Expect(errors.Is(err, cause)).To(BeTrue())
		Expect(liberr.Is(err)).To(BeTrue())
		Expect(liberr.Is(cause)).To(BeFalse())
		Expect(liberr.Get(fmt.Errorf("wrapped: %w", err))).ToNot(BeNil())
		Expect(liberr.Has(err, testCodeOne)).To(BeTrue())
		Expect(liberr.IsCode(err, testCodeOne)).To(BeTrue())
		Expect(liberr.ContainsString(err, "root cause")).To(BeTrue())
	})

	It("should capture the construction frame", func() {
		err := liberr.New(42, "framed")
		Expect(err.GetTrace()).To(ContainSubstring("errors_test.go"))
	})

	It("should build from plain errors and formats", func() {
		Expect(liberr.Make(nil)).To(BeNil())

		plain := liberr.Make(errors.New("plain"))
		Expect(plain.GetCode()).To(Equal(liberr.UnknownError))

		formatted := liberr.Newf(7, "value %d", 13)
		Expect(formatted.Error()).To(ContainSubstring("value 13"))

		Expect(liberr.IfError(1, "none")).To(BeNil())
		Expect(liberr.IfError(1, "some", errors.New("x"))).ToNot(BeNil())
	})

	It("should wrap recovered panics with their origin", func() {
		err := liberr.NewErrorRecovered("panic in worker", "boom")
		Expect(err.Error()).To(ContainSubstring("panic in worker"))
		Expect(err.ContainsString("boom")).To(BeTrue())
	})
})
