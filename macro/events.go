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

package macro

import "github.com/google/uuid"

// Bus topics published by the runner.
const (
	TopicStarted       = "macro.started"
	TopicStepStarted   = "macro.step_started"
	TopicStepCompleted = "macro.step_completed"
	TopicFinished      = "macro.finished"
)

// EventStarted is the macro.started payload.
type EventStarted struct {
	ScriptID uuid.UUID
}

// EventStepStarted is the macro.step_started payload.
type EventStepStarted struct {
	RowIndex int
	Step     Step
}

// EventStepCompleted is the macro.step_completed payload.
type EventStepCompleted struct {
	RowIndex     int
	Success      bool
	ResponseText string
}

// EventFinished is the macro.finished payload.
type EventFinished struct {
	Success bool
}
