package errors

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig Category = "config"
	CategoryAssets Category = "assets"
	CategorySSR    Category = "ssr"
	CategoryCLI    Category = "cli"
)

// Location represents a position in a project file.
type Location struct {
	File   string
	Line   int
	Column int
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// InertiaError is a structured error with file location, suggestions, and
// documentation. The CLI surfaces these as diagnostics; library packages
// keep their own sentinel errors.
type InertiaError struct {
	// Code is a unique error identifier (e.g., "E100").
	Code string

	// Category is the error type (config, assets, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the file position where the error occurred.
	Location *Location

	// Context contains file lines surrounding the location.
	Context []string

	// ContextStart is the line number of Context[0].
	ContextStart int

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example is a snippet showing the correct form.
	Example string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *InertiaError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *InertiaError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a file position to the error and loads surrounding
// lines from disk for context.
func (e *InertiaError) WithLocation(file string, line, column int) *InertiaError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context, e.ContextStart = readContextLines(file, line, 5)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *InertiaError) WithSuggestion(s string) *InertiaError {
	e.Suggestion = s
	return e
}

// WithExample adds an example snippet to the error.
func (e *InertiaError) WithExample(ex string) *InertiaError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *InertiaError) WithDetail(d string) *InertiaError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *InertiaError) Wrap(err error) *InertiaError {
	e.Wrapped = err
	return e
}

// New creates an InertiaError from a registered error code.
func New(code string) *InertiaError {
	template, ok := registry[code]
	if !ok {
		return &InertiaError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &InertiaError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new InertiaError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *InertiaError {
	return &InertiaError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an InertiaError.
func FromError(err error, code string) *InertiaError {
	if err == nil {
		return nil
	}
	if ie, ok := err.(*InertiaError); ok {
		return ie
	}
	return New(code).Wrap(err)
}

// FromJSONError wraps a json.Unmarshal failure, pointing the location at
// the offending byte of the document. data is the document that failed to
// parse and path is where it came from.
func FromJSONError(code, path string, data []byte, err error) *InertiaError {
	if err == nil {
		return nil
	}

	e := New(code).WithDetail(err.Error()).Wrap(err)

	var offset int64
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	default:
		return e
	}

	line, column := offsetPosition(data, offset)
	if line > 0 {
		e.Location = &Location{File: path, Line: line, Column: column}
		e.Context, e.ContextStart = contextLines(data, line, 5)
	}
	return e
}

// offsetPosition converts a byte offset (as reported by encoding/json,
// counting from 1) into a line and column.
func offsetPosition(data []byte, offset int64) (line, column int) {
	if offset < 1 || offset > int64(len(data)) {
		return 0, 0
	}
	line = 1
	lineStart := int64(0)
	for i := int64(0); i < offset-1; i++ {
		if data[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, int(offset - lineStart)
}

// readContextLines reads lines around the target line from a file.
// It returns the lines and the line number of the first one.
func readContextLines(filename string, targetLine, contextSize int) ([]string, int) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0
	}
	defer file.Close()

	return scanContext(bufio.NewScanner(file), targetLine, contextSize)
}

// contextLines is readContextLines over an in-memory document.
func contextLines(data []byte, targetLine, contextSize int) ([]string, int) {
	return scanContext(bufio.NewScanner(bytes.NewReader(data)), targetLine, contextSize)
}

func scanContext(scanner *bufio.Scanner, targetLine, contextSize int) ([]string, int) {
	startLine := targetLine - contextSize/2
	if startLine < 1 {
		startLine = 1
	}
	endLine := targetLine + contextSize/2

	var lines []string
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum >= startLine && lineNum <= endLine {
			lines = append(lines, scanner.Text())
		}
		if lineNum > endLine {
			break
		}
	}

	if len(lines) == 0 {
		return nil, 0
	}
	return lines, startLine
}
