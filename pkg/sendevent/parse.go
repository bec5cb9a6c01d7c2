package sendevent

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/guettli/sendevent/pkg/evcodes"
)

// Format tells which optional fields the lines of a log carry. It gets
// detected from the first line and is used for all other lines.
//
//	[   1711354959.655837] /dev/input/event3: EV_KEY KEY_A DOWN
type Format struct {
	Timestamp bool
	Device    bool
}

// LogEntry is one parsed line of the log. Device is only set if the format
// has a device field. An empty device name is valid.
type LogEntry struct {
	Device    string
	HasDevice bool
	Event     Event
}

// DetectFormat looks at the first line of a log.
func DetectFormat(line string) (Format, error) {
	if line == "" {
		return Format{}, formatError(line, "empty line")
	}
	f := Format{Timestamp: line[0] == '['}
	rest := line
	if f.Timestamp {
		_, after, found := strings.Cut(line, "] ")
		if !found {
			return Format{}, formatError(line, "missing `] `")
		}
		rest = after
	}
	f.Device = strings.Contains(rest, ": ")
	return f, nil
}

// ParseLine parses one line of the log with the given format.
func ParseLine(line string, f Format) (LogEntry, error) {
	var entry LogEntry
	rest := line
	if f.Timestamp {
		tv, after, err := parseTimestamp(line)
		if err != nil {
			return entry, err
		}
		entry.Event.Time = tv
		rest = after
	} else if !utf8.ValidString(line) {
		return entry, &ParseError{Kind: DecodeErr, Line: line, Msg: "invalid utf-8"}
	}

	if f.Device {
		device, after, found := strings.Cut(rest, ": ")
		if !found {
			return entry, formatError(line, "missing device field")
		}
		entry.Device = device
		entry.HasDevice = true
		rest = after
	}

	fields := splitFields(rest)
	for i, name := range []string{"type", "code", "value"} {
		if len(fields) <= i {
			return entry, formatError(line, "missing "+name+" field")
		}
	}
	if len(fields) > 3 {
		return entry, formatError(line, "unexpected trailing field")
	}

	ev := &entry.Event
	var err error
	ev.Type, err = evcodes.ParseType(fields[0])
	if err != nil {
		return entry, numberError(line, "parsing type field", err)
	}
	ev.Code, err = evcodes.ParseCode(ev.Type, fields[1])
	if err != nil {
		return entry, numberError(line, "parsing code field", err)
	}
	ev.Value, err = evcodes.ParseValue(ev.Type, ev.Code, fields[2])
	if err != nil {
		return entry, numberError(line, "parsing value field", err)
	}
	return entry, nil
}

// parseTimestamp parses the leading "[sec.usec] " and returns the rest of
// the line.
func parseTimestamp(line string) (TimeVal, string, error) {
	var tv TimeVal
	if line == "" {
		return tv, "", formatError(line, "empty line")
	}
	if line[0] != '[' {
		return tv, "", formatError(line, "missing `[`")
	}
	if !utf8.ValidString(line[1:]) {
		return tv, "", &ParseError{Kind: DecodeErr, Line: line, Msg: "invalid utf-8"}
	}
	timestamp, rest, found := strings.Cut(line[1:], "] ")
	if !found {
		return tv, "", formatError(line, "missing `] `")
	}
	secStr, usecStr, found := strings.Cut(timestamp, ".")
	if !found {
		return tv, "", formatError(line, "missing `.` in timestamp field")
	}
	var err error
	tv.Sec, err = strconv.ParseInt(strings.TrimLeftFunc(secStr, unicode.IsSpace), 10, 64)
	if err != nil {
		return tv, "", numberError(line, "parsing time sec field", err)
	}
	tv.Usec, err = strconv.ParseInt(usecStr, 10, 64)
	if err != nil {
		return tv, "", numberError(line, "parsing time usec field", err)
	}
	return tv, rest, nil
}

// splitFields splits at single spaces and drops empty fields, so that runs
// of spaces count as one separator.
func splitFields(s string) []string {
	fields := make([]string, 0, 3)
	for _, f := range strings.Split(s, " ") {
		if f == "" {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}
