package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic checks via errors.Is.
var (
	// ErrFilesystem indicates a directory listing or file read failed.
	ErrFilesystem = errors.New("filesystem error")

	// ErrParse indicates the file content is not valid YAML.
	ErrParse = errors.New("parse error")

	// ErrSetup indicates the schema could not be compiled.
	ErrSetup = errors.New("setup error")

	// ErrUnhandled indicates a failure not attributable to any single file.
	ErrUnhandled = errors.New("unhandled error")

	// ErrWorkflowsInvalid is returned when the run completed and at least one
	// workflow file failed validation.
	ErrWorkflowsInvalid = errors.New("workflows with errors")
)

// FilesystemError wraps a failed filesystem operation on Path.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() []error { return []error{ErrFilesystem, e.Err} }

// ParseError is a YAML syntax failure. Msg is already formatted for display.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Msg == "" {
		return ErrParse.Error()
	}
	return e.Msg
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// SetupError is fatal to the whole run: it is raised before any file is read.
type SetupError struct {
	Msg string
	Err error
}

func (e *SetupError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrSetup, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %v", ErrSetup, e.Msg, e.Err)
}

func (e *SetupError) Unwrap() []error { return []error{ErrSetup, e.Err} }

// UnhandledError is what the outermost run boundary turns any escaped
// failure (including a recovered panic) into.
type UnhandledError struct {
	Err error
}

func (e *UnhandledError) Error() string { return e.Err.Error() }

func (e *UnhandledError) Unwrap() []error { return []error{ErrUnhandled, e.Err} }
