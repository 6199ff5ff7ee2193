// util/error.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"fmt"
	"os"
	"strings"

	"github.com/mmp/tracongen/log"
)

// ErrorLogger is a small utility class used to log errors when validating
// parsed configuration. It tracks context about what is currently being
// validated and accumulates multiple errors, making it possible to report
// every problem in a configuration file at once.
type ErrorLogger struct {
	// Tracked via Push()/Pop() calls to remember what we're looking at if
	// an error is found.
	hierarchy []string
	// Actual error messages to report.
	errors []string
}

func (e *ErrorLogger) Push(s string) {
	e.hierarchy = append(e.hierarchy, s)
}

func (e *ErrorLogger) Pop() {
	e.hierarchy = e.hierarchy[:len(e.hierarchy)-1]
}

func (e *ErrorLogger) prefix() string {
	if len(e.hierarchy) == 0 {
		return ""
	}
	return strings.Join(e.hierarchy, " / ") + ": "
}

func (e *ErrorLogger) ErrorString(s string, args ...any) {
	e.errors = append(e.errors, e.prefix()+fmt.Sprintf(s, args...))
}

func (e *ErrorLogger) Error(err error) {
	e.errors = append(e.errors, e.prefix()+err.Error())
}

func (e *ErrorLogger) HaveErrors() bool {
	return e != nil && len(e.errors) > 0
}

// Errors returns the accumulated messages, each prefixed with the
// hierarchy that was active when it was recorded.
func (e *ErrorLogger) Errors() []string {
	if e == nil {
		return nil
	}
	return e.errors
}

func (e *ErrorLogger) PrintErrors(lg *log.Logger) {
	// Two loops so they aren't interleaved with logging to stdout
	if lg != nil {
		for _, err := range e.errors {
			lg.Errorf("%+v", err)
		}
	}
	for _, err := range e.errors {
		fmt.Fprintln(os.Stderr, err)
	}
}

func (e *ErrorLogger) String() string {
	return strings.Join(e.errors, "\n")
}

// Err returns nil if no errors have been recorded and otherwise a
// *ValidationError holding all of them that matches kind under errors.Is.
func (e *ErrorLogger) Err(kind error) error {
	if !e.HaveErrors() {
		return nil
	}
	return &ValidationError{Kind: kind, Messages: DuplicateSlice(e.errors)}
}

// CheckDepth is meant to be deferred at the start of validation
// functions; it panics if the function returned with an unbalanced
// Push/Pop hierarchy.
func (e *ErrorLogger) CheckDepth(d int) {
	if e == nil || e.CurrentDepth() == d {
		return
	}

	if r := recover(); r != nil {
		// Don't give spurious warnings when there's a panic.
		panic(r)
	}

	var frames []string
	for _, f := range log.Callstack(nil) {
		frames = append(frames, f.String())
	}
	panic(fmt.Sprintf("ErrorLogger depth: initial %d, final %d\n%s", d, e.CurrentDepth(),
		strings.Join(frames, "\n")))
}

func (e *ErrorLogger) CurrentDepth() int {
	if e == nil {
		return 0
	}
	return len(e.hierarchy)
}

// ValidationError is the structured form of the messages accumulated by an
// ErrorLogger.
type ValidationError struct {
	Kind     error
	Messages []string
}

func (v *ValidationError) Error() string {
	if len(v.Messages) == 1 {
		return v.Kind.Error() + ": " + v.Messages[0]
	}
	return v.Kind.Error() + ":\n\t" + strings.Join(v.Messages, "\n\t")
}

func (v *ValidationError) Unwrap() error {
	return v.Kind
}
