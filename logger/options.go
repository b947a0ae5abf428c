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

import "os"

// OptionsStd configures the standard output destination pair.
type OptionsStd struct {
	// DisableStandard drops the stdout/stderr destination entirely.
	DisableStandard bool `json:"disable_standard" mapstructure:"disable_standard"`
	// DisableColor renders entries without ANSI colors.
	DisableColor bool `json:"disable_color" mapstructure:"disable_color"`
}

// OptionsFile configures one append-mode log file destination.
type OptionsFile struct {
	// Filepath is the log file location; missing parents are created.
	Filepath string `json:"filepath" mapstructure:"filepath"`
	// FileMode is the permission of a created log file.
	FileMode os.FileMode `json:"file_mode" mapstructure:"file_mode"`
	// PathMode is the permission of created parent directories.
	PathMode os.FileMode `json:"path_mode" mapstructure:"path_mode"`
}

// Options selects the logging destinations of one Logger.
type Options struct {
	// Stdout configures the standard output pair; nil enables it with
	// defaults.
	Stdout *OptionsStd `json:"stdout" mapstructure:"stdout"`
	// LogFile configures any number of file destinations.
	LogFile []OptionsFile `json:"log_file" mapstructure:"log_file"`
}
