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

import libatm "github.com/jincoder/serialtool/atomic"

// upgrade rewrites one document layout into the next version, preserving
// user intent.
type upgrade func(doc map[string]interface{}) map[string]interface{}

// upgrades maps a source schema version to its upgrader; the chain runs in
// version order until the document reaches SchemaVersion.
var upgrades = map[int]upgrade{
	1: upgradeV1,
}

// migrate lifts a raw document to the current schema version. Documents
// without a version marker are treated as the legacy flat layout.
func migrate(doc map[string]interface{}) map[string]interface{} {
	v := 1
	if raw, ok := doc[KeySchemaVersion]; ok {
		if i, k := libatm.Cast[int](raw); k {
			v = i
		} else if f, k := libatm.Cast[float64](raw); k {
			v = int(f)
		}
	}

	for v < SchemaVersion {
		up, ok := upgrades[v]
		if !ok {
			break
		}

		doc = up(doc)
		v++
	}

	doc[KeySchemaVersion] = SchemaVersion
	return doc
}

// upgradeV1 rewrites the legacy flat layout into the grouped layout.
func upgradeV1(doc map[string]interface{}) map[string]interface{} {
	moves := map[string][2]string{
		"last_port":         {"serial", "last_port"},
		"default_baudrate":  {"serial", "default_baudrate"},
		"auto_scan_ms":      {"serial", "auto_scan_interval_ms"},
		"prefix":            {"command", "prefix"},
		"suffix":            {"command", "suffix"},
		"log_dir":           {"logging", "log_dir"},
		"log_format":        {"logging", "format"},
		"theme":             {"ui", "theme"},
		"hex_mode":          {"ui", "hex_mode_default"},
		"parser_type":       {"parser", "type"},
		"parser_delimiters": {"parser", "delimiters"},
		"fixed_length":      {"parser", "fixed_length"},
		"stop_on_error":     {"macro", "stop_on_error"},
	}

	for legacy, dst := range moves {
		val, ok := doc[legacy]
		if !ok {
			continue
		}

		grp, gok := doc[dst[0]].(map[string]interface{})
		if !gok {
			grp = make(map[string]interface{})
		}

		if _, exists := grp[dst[1]]; !exists {
			grp[dst[1]] = val
		}

		doc[dst[0]] = grp
		delete(doc, legacy)
	}

	return doc
}
