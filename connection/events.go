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

import "time"

// Bus topics published by the controller and its workers. The port.packet
// payload is a parser.Packet; the other topics carry the records below.
const (
	TopicOpened       = "port.opened"
	TopicClosed       = "port.closed"
	TopicError        = "port.error"
	TopicOpenFailed   = "port.open_failed"
	TopicPacket       = "port.packet"
	TopicDataReceived = "port.data_received"
	TopicDataSent     = "port.data_sent"
)

// EventOpened is the port.opened payload.
type EventOpened struct {
	Port   string
	Config PortConfig
}

// EventClosed is the port.closed payload.
type EventClosed struct {
	Port string
}

// EventError is the port.error and port.open_failed payload.
type EventError struct {
	Port    string
	Kind    string
	Message string
}

// EventData is the port.data_received and port.data_sent payload. The
// received direction may coalesce several reads into one event; bytes are
// never reordered.
type EventData struct {
	Port  string
	Time  time.Time
	Bytes []byte
}
