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

package settings

import libsiz "github.com/jincoder/serialtool/size"

// Default returns the embedded default document.
func Default() Config {
	return Config{
		SchemaVersion: SchemaVersion,
		Serial: SerialConfig{
			LastPort:           "",
			DefaultBaudrate:    115200,
			AutoScanIntervalMs: 2000,
		},
		Command: CommandConfig{
			Prefix: "",
			Suffix: "\\r\\n",
		},
		Logging: LoggingConfig{
			LogDir:       "logs",
			MaxFileBytes: 10 * libsiz.SizeMega,
			KeepFiles:    5,
			Format:       "raw",
		},
		UI: UIConfig{
			Theme: "dark",
			Font: FontsConfig{
				Proportional: FontConfig{Family: "Sans", Size: 10},
				Fixed:        FontConfig{Family: "Monospace", Size: 10},
			},
			LogMaxLines:       10000,
			HexModeDefault:    false,
			RightPanelVisible: true,
		},
		Parser: ParserConfig{
			Type:        "raw",
			Delimiters:  []string{"\r\n"},
			FixedLength: 16,
			ATColors: ATColorsConfig{
				OK:     "#4CAF50",
				Error:  "#F44336",
				URC:    "#2196F3",
				Prompt: "#FF9800",
			},
			Inspector: InspectorConfig{
				BufferSize:       libsiz.SizeMega,
				RealTimeTracking: true,
				AutoScroll:       true,
			},
		},
		Macro: MacroConfig{
			StopOnError:      false,
			BroadcastDefault: false,
			RepeatCount:      1,
			PerStepDelayMs:   0,
		},
	}
}
