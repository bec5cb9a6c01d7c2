package sendevent

import (
	"bufio"
	"fmt"
	"io"
)

const maxLineLength = 1024 * 1024

// LogEntryReader yields the entries of a log, one per call. It returns
// io.EOF after the last entry.
type LogEntryReader interface {
	ReadOne() (*LogEntry, error)
}

// LogReader reads a log line by line. The format is detected from the first
// line, and then used for every following line. The first line itself is
// not returned.
//
// The first error ends the stream: ReadOne returns it once and io.EOF after
// that. A LogReader can't be restarted.
type LogReader struct {
	scanner *bufio.Scanner
	format  *Format
	line    int
	done    bool
}

var _ = LogEntryReader(&LogReader{})

func NewLogReader(r io.Reader) *LogReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)
	return &LogReader{scanner: scanner}
}

// Format returns the detected format, or nil if the first line was not
// read yet.
func (l *LogReader) Format() *Format {
	return l.format
}

// Line returns the number of the line read last.
func (l *LogReader) Line() int {
	return l.line
}

func (l *LogReader) ReadOne() (*LogEntry, error) {
	if l.done {
		return nil, io.EOF
	}
	if l.format == nil {
		line, err := l.next()
		if err != nil {
			return nil, err
		}
		f, err := DetectFormat(line)
		if err != nil {
			return nil, l.fail(err)
		}
		l.format = &f
	}
	line, err := l.next()
	if err != nil {
		return nil, err
	}
	entry, err := ParseLine(line, *l.format)
	if err != nil {
		return nil, l.fail(fmt.Errorf("line %d: %w", l.line, err))
	}
	return &entry, nil
}

func (l *LogReader) next() (string, error) {
	if !l.scanner.Scan() {
		l.done = true
		if err := l.scanner.Err(); err != nil {
			return "", fmt.Errorf("%w: failed to read line %d: %w", IOErr, l.line+1, err)
		}
		return "", io.EOF
	}
	l.line++
	return l.scanner.Text(), nil
}

func (l *LogReader) fail(err error) error {
	l.done = true
	return err
}
