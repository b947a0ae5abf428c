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

// Package ioutils provides the filesystem helpers shared by the capture
// logger, the settings store and the file log hooks.
package ioutils

import (
	"os"
	"path/filepath"
)

// PathCheckCreate ensures a file or directory exists at path with the
// given permissions, creating missing parent directories. An existing
// entry of the wrong kind fails with ErrorPathCheck.
func PathCheckCreate(isFile bool, path string, permFile os.FileMode, permDir os.FileMode) error {
	if path == "" {
		return ErrorParamsEmpty.Error(nil)
	}

	if st, err := os.Stat(path); err == nil {
		if st.IsDir() == isFile {
			return ErrorPathCheck.Error(nil)
		}

		return nil
	} else if !os.IsNotExist(err) {
		return ErrorPathCheck.Error(err)
	}

	if !isFile {
		if err := os.MkdirAll(path, permDir); err != nil {
			return ErrorPathCreate.Error(err)
		}

		return nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, permDir); err != nil {
			return ErrorPathCreate.Error(err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, permFile)
	if err != nil {
		return ErrorPathCreate.Error(err)
	}

	return f.Close()
}
