package sendevent

import (
	"fmt"
	"strings"
)

// Kinds of errors. Use errors.Is to check the kind of an error returned by
// this package.
var (
	FormatErr   = fmt.Errorf("format error")
	DecodeErr   = fmt.Errorf("text decoding error")
	NumberErr   = fmt.Errorf("number parsing error")
	IOErr       = fmt.Errorf("io error")
	NoDeviceErr = fmt.Errorf("no device given")
	TimeErr     = fmt.Errorf("invalid time")
)

// ParseError describes a line of the log which could not be parsed. Line is
// always the original, unmodified line.
type ParseError struct {
	Kind error
	Line string
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	b.WriteString(": ")
	b.WriteString(e.Msg)
	if e.Line != "" {
		fmt.Fprintf(&b, " for line: %q", e.Line)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func formatError(line, msg string) *ParseError {
	return &ParseError{Kind: FormatErr, Line: line, Msg: msg}
}

func numberError(line, msg string, err error) *ParseError {
	return &ParseError{Kind: NumberErr, Line: line, Msg: msg, Err: err}
}
