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

package filetransfer

// Bus topics published by the engine.
const (
	TopicProgress  = "file.progress"
	TopicCompleted = "file.completed"
	TopicCancelled = "file.cancelled"
	TopicError     = "file.error"
)

// EventProgress is the file.progress payload.
type EventProgress struct {
	Port          string
	TotalBytes    int64
	SentBytes     int64
	ThroughputBps float64
	ETASeconds    float64
	Status        Status
}

// EventResult is the file.completed and file.cancelled payload.
type EventResult struct {
	Port    string
	Success bool
	Message string
}

// EventError is the file.error payload.
type EventError struct {
	Port    string
	Kind    string
	Message string
}
