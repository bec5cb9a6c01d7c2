// Package evcodes translates the tokens of an input event log (as printed by
// getevent) into evdev type, code and value numbers, and back.
//
// A token is either a symbolic name like EV_KEY, KEY_A or DOWN, or an unsigned
// hexadecimal number like 0001 or 000001c2.
package evcodes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/holoplot/go-evdev"
)

// Values of EV_KEY events.
const (
	UP     = 0
	DOWN   = 1
	REPEAT = 2
)

// SyncType and SyncReport identify the marker event which terminates one
// atomic input report.
const (
	SyncType   = evdev.EvType(evdev.EV_SYN)
	SyncReport = evdev.EvCode(evdev.SYN_REPORT)
)

var UnknownNameErr = fmt.Errorf("unknown name")

var codeFromString = map[evdev.EvType]map[string]evdev.EvCode{
	evdev.EV_SYN: evdev.SYNFromString,
	evdev.EV_KEY: evdev.KEYFromString,
	evdev.EV_REL: evdev.RELFromString,
	evdev.EV_ABS: evdev.ABSFromString,
	evdev.EV_MSC: evdev.MSCFromString,
	evdev.EV_SW:  evdev.SWFromString,
	evdev.EV_LED: evdev.LEDFromString,
	evdev.EV_SND: evdev.SNDFromString,
	evdev.EV_REP: evdev.REPFromString,
}

var (
	keyValueFromString = map[string]int32{
		"UP":     UP,
		"DOWN":   DOWN,
		"REPEAT": REPEAT,
	}
	keyValueToString = []string{"UP", "DOWN", "REPEAT"}
)

// ParseType resolves a type token like "EV_KEY" or "0001".
func ParseType(s string) (evdev.EvType, error) {
	if t, ok := evdev.EVFromString[s]; ok {
		return t, nil
	}
	n, err := parseHex(s, 16)
	if err != nil {
		return 0, err
	}
	return evdev.EvType(n), nil
}

// ParseCode resolves a code token in the context of the event type. The same
// name means different things for different types, so "KEY_A" is only valid
// for EV_KEY.
func ParseCode(t evdev.EvType, s string) (evdev.EvCode, error) {
	if table, ok := codeFromString[t]; ok {
		if c, ok := table[s]; ok {
			return c, nil
		}
	}
	n, err := parseHex(s, 16)
	if err != nil {
		return 0, fmt.Errorf("%w (type %s)", err, TypeToken(t))
	}
	return evdev.EvCode(n), nil
}

// ParseValue resolves a value token in the context of type and code.
// Numbers are read as 32 bit two's complement, so "ffffffff" is -1.
func ParseValue(t evdev.EvType, c evdev.EvCode, s string) (int32, error) {
	if t == evdev.EV_KEY {
		if v, ok := keyValueFromString[s]; ok {
			return v, nil
		}
	}
	n, err := parseHex(s, 32)
	if err != nil {
		return 0, err
	}
	return int32(uint32(n)), nil
}

func parseHex(s string, bitSize int) (uint64, error) {
	n, err := strconv.ParseUint(s, 16, bitSize)
	if err == nil {
		return n, nil
	}
	if looksSymbolic(s) {
		return 0, fmt.Errorf("%w %q", UnknownNameErr, s)
	}
	return 0, err
}

// looksSymbolic reports whether s contains characters which can't be part
// of a hex number, but can be part of a name.
func looksSymbolic(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		switch {
		case r == '_':
			return true
		case r >= 'g' && r <= 'z', r >= 'G' && r <= 'Z':
			return true
		}
		return false
	})
}

// TypeToken is the inverse of ParseType.
func TypeToken(t evdev.EvType) string {
	name := evdev.TypeName(t)
	if v, ok := evdev.EVFromString[name]; ok && v == t {
		return name
	}
	return fmt.Sprintf("%04x", uint16(t))
}

// CodeToken is the inverse of ParseCode.
func CodeToken(t evdev.EvType, c evdev.EvCode) string {
	name := evdev.CodeName(t, c)
	if v, ok := codeFromString[t][name]; ok && v == c {
		return name
	}
	return fmt.Sprintf("%04x", uint16(c))
}

// ValueToken is the inverse of ParseValue.
func ValueToken(t evdev.EvType, c evdev.EvCode, v int32) string {
	if t == evdev.EV_KEY && v >= 0 && int(v) < len(keyValueToString) {
		return keyValueToString[v]
	}
	return fmt.Sprintf("%08x", uint32(v))
}
