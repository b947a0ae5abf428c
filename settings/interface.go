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

// Package settings loads, validates and persists the application
// configuration as a schema-validated JSON document.
//
// The store is backed by viper; values are addressed by the dotted keys of
// the central catalog below and decoded through safe casts that convert
// loosely-typed fields (the string "9600" becomes 9600); a group whose
// fields cannot convert at all keeps its schema defaults. A
// document failing validation is preserved as a backup, replaced by the
// embedded defaults, and flagged so the application can surface the reset
// once. Older documents carry a lower schema version and are migrated in
// order before decoding.
//
// The core data paths only read settings; writes happen on the main
// goroutine through Set, and external file edits are picked up by Watch,
// both republishing settings.changed with the changed keys.
package settings

import (
	"context"

	liberr "github.com/jincoder/serialtool/errors"
	libbus "github.com/jincoder/serialtool/eventbus"
	liblog "github.com/jincoder/serialtool/logger"
	libsiz "github.com/jincoder/serialtool/size"
)

// SchemaVersion is the layout version written by this build. Documents
// with a lower version run through the migration chain on load.
const SchemaVersion = 2

// Central key catalog. Components read configuration through these
// identifiers only.
const (
	KeySchemaVersion = "schema_version"

	KeySerialLastPort     = "serial.last_port"
	KeySerialDefaultBaud  = "serial.default_baudrate"
	KeySerialScanInterval = "serial.auto_scan_interval_ms"

	KeyCommandPrefix = "command.prefix"
	KeyCommandSuffix = "command.suffix"

	KeyLoggingDir      = "logging.log_dir"
	KeyLoggingMaxBytes = "logging.max_file_bytes"
	KeyLoggingKeep     = "logging.keep_files"
	KeyLoggingFormat   = "logging.format"

	KeyUITheme        = "ui.theme"
	KeyUIFontPropFam  = "ui.font.proportional.family"
	KeyUIFontPropSize = "ui.font.proportional.size"
	KeyUIFontFixFam   = "ui.font.fixed.family"
	KeyUIFontFixSize  = "ui.font.fixed.size"
	KeyUILogMaxLines  = "ui.log_max_lines"
	KeyUIHexDefault   = "ui.hex_mode_default"
	KeyUIRightPanel   = "ui.right_panel_visible"

	KeyParserType       = "parser.type"
	KeyParserDelimiters = "parser.delimiters"
	KeyParserFixedLen   = "parser.fixed_length"
	KeyParserColorOK    = "parser.at_colors.ok"
	KeyParserColorErr   = "parser.at_colors.error"
	KeyParserColorURC   = "parser.at_colors.urc"
	KeyParserColorPmt   = "parser.at_colors.prompt"
	KeyInspectorBuffer  = "parser.inspector.buffer_size"
	KeyInspectorTrack   = "parser.inspector.real_time_tracking"
	KeyInspectorScroll  = "parser.inspector.auto_scroll"

	KeyMacroStopOnError = "macro.stop_on_error"
	KeyMacroBroadcast   = "macro.broadcast_default"
	KeyMacroRepeat      = "macro.repeat_count"
	KeyMacroStepDelay   = "macro.per_step_delay_ms"
)

// TopicChanged is the bus topic carrying configuration deltas.
const TopicChanged = "settings.changed"

// EventChanged is the settings.changed payload.
type EventChanged struct {
	Delta map[string]interface{}
}

// SerialConfig is the serial group of the document.
type SerialConfig struct {
	LastPort           string `json:"last_port" mapstructure:"last_port"`
	DefaultBaudrate    int    `json:"default_baudrate" mapstructure:"default_baudrate" validate:"min=50"`
	AutoScanIntervalMs int    `json:"auto_scan_interval_ms" mapstructure:"auto_scan_interval_ms" validate:"min=0"`
}

// CommandConfig is the command group of the document.
type CommandConfig struct {
	Prefix string `json:"prefix" mapstructure:"prefix"`
	Suffix string `json:"suffix" mapstructure:"suffix"`
}

// LoggingConfig is the logging group of the document.
type LoggingConfig struct {
	LogDir       string      `json:"log_dir" mapstructure:"log_dir"`
	MaxFileBytes libsiz.Size `json:"max_file_bytes" mapstructure:"max_file_bytes"`
	KeepFiles    int         `json:"keep_files" mapstructure:"keep_files" validate:"min=1"`
	Format       string      `json:"format" mapstructure:"format" validate:"oneof=raw hex pcap"`
}

// FontConfig is one font selection of the ui group.
type FontConfig struct {
	Family string `json:"family" mapstructure:"family"`
	Size   int    `json:"size" mapstructure:"size" validate:"min=4,max=128"`
}

// FontsConfig is the ui.font group of the document.
type FontsConfig struct {
	Proportional FontConfig `json:"proportional" mapstructure:"proportional"`
	Fixed        FontConfig `json:"fixed" mapstructure:"fixed"`
}

// UIConfig is the ui group of the document.
type UIConfig struct {
	Theme             string      `json:"theme" mapstructure:"theme" validate:"oneof=dark light"`
	Font              FontsConfig `json:"font" mapstructure:"font"`
	LogMaxLines       int         `json:"log_max_lines" mapstructure:"log_max_lines" validate:"min=100"`
	HexModeDefault    bool        `json:"hex_mode_default" mapstructure:"hex_mode_default"`
	RightPanelVisible bool        `json:"right_panel_visible" mapstructure:"right_panel_visible"`
}

// ATColorsConfig is the parser.at_colors group of the document.
type ATColorsConfig struct {
	OK     string `json:"ok" mapstructure:"ok" validate:"hexcolor"`
	Error  string `json:"error" mapstructure:"error" validate:"hexcolor"`
	URC    string `json:"urc" mapstructure:"urc" validate:"hexcolor"`
	Prompt string `json:"prompt" mapstructure:"prompt" validate:"hexcolor"`
}

// InspectorConfig is the parser.inspector group of the document.
type InspectorConfig struct {
	BufferSize       libsiz.Size `json:"buffer_size" mapstructure:"buffer_size"`
	RealTimeTracking bool        `json:"real_time_tracking" mapstructure:"real_time_tracking"`
	AutoScroll       bool        `json:"auto_scroll" mapstructure:"auto_scroll"`
}

// ParserConfig is the parser group of the document.
type ParserConfig struct {
	Type        string          `json:"type" mapstructure:"type" validate:"oneof=auto at delimiter fixed raw"`
	Delimiters  []string        `json:"delimiters" mapstructure:"delimiters"`
	FixedLength int             `json:"fixed_length" mapstructure:"fixed_length" validate:"min=1,max=4096"`
	ATColors    ATColorsConfig  `json:"at_colors" mapstructure:"at_colors"`
	Inspector   InspectorConfig `json:"inspector" mapstructure:"inspector"`
}

// MacroConfig is the macro group of the document.
type MacroConfig struct {
	StopOnError      bool `json:"stop_on_error" mapstructure:"stop_on_error"`
	BroadcastDefault bool `json:"broadcast_default" mapstructure:"broadcast_default"`
	RepeatCount      int  `json:"repeat_count" mapstructure:"repeat_count" validate:"min=-1"`
	PerStepDelayMs   int  `json:"per_step_delay_ms" mapstructure:"per_step_delay_ms" validate:"min=0"`
}

// Config is the full typed document.
type Config struct {
	SchemaVersion int           `json:"schema_version" mapstructure:"schema_version"`
	Serial        SerialConfig  `json:"serial" mapstructure:"serial"`
	Command       CommandConfig `json:"command" mapstructure:"command"`
	Logging       LoggingConfig `json:"logging" mapstructure:"logging"`
	UI            UIConfig      `json:"ui" mapstructure:"ui"`
	Parser        ParserConfig  `json:"parser" mapstructure:"parser"`
	Macro         MacroConfig   `json:"macro" mapstructure:"macro"`
}

// Store loads, exposes and persists the configuration document.
type Store interface {
	// Load reads and validates the document, migrating older layouts. A
	// document failing validation is backed up and replaced by defaults,
	// with the reset flag raised. A missing file loads defaults silently.
	Load() liberr.Error

	// Save writes the current document to disk, creating the destination
	// directory when missing.
	Save() liberr.Error

	// Config returns the current typed document snapshot.
	Config() Config

	// Get returns the raw value of one catalog key, or nil.
	Get(key string) interface{}

	// Set stores one catalog key and publishes settings.changed carrying
	// the delta. Writes belong to the main goroutine.
	Set(key string, value interface{})

	// Watch follows external edits of the backing file until the context
	// ends, reloading and republishing settings.changed on change.
	Watch(ctx context.Context) liberr.Error

	// WasReset reports whether the last Load replaced a corrupt document
	// with defaults. Reading the flag clears it.
	WasReset() bool

	// SetBus installs the bus settings.changed is published on.
	SetBus(bus libbus.Bus)
}

// New returns a Store backed by the given JSON file path.
func New(path string, log liblog.FuncLog) Store {
	return &str{
		p: path,
		l: log,
		c: Default(),
	}
}
