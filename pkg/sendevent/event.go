package sendevent

import (
	"encoding/binary"
	"fmt"

	"github.com/guettli/sendevent/pkg/evcodes"
	"github.com/holoplot/go-evdev"
)

// EventSize is the size of an encoded event: the kernel's struct input_event
// with a 64 bit timeval.
const EventSize = 24

// Event is one raw input event.
type Event struct {
	Time  TimeVal
	Type  evdev.EvType
	Code  evdev.EvCode
	Value int32
}

// IsSync reports whether the event is a SYN_REPORT marker, which terminates
// one atomic input report.
func (ev Event) IsSync() bool {
	return ev.Type == evcodes.SyncType && ev.Code == evcodes.SyncReport
}

func (ev Event) String() string {
	return fmt.Sprintf("[%s] %s %s %s", ev.Time,
		evcodes.TypeToken(ev.Type),
		evcodes.CodeToken(ev.Type, ev.Code),
		evcodes.ValueToken(ev.Type, ev.Code, ev.Value))
}

// AppendBinary appends the encoded event in native byte order: sec, usec,
// type, code and value, without padding.
func (ev Event) AppendBinary(b []byte) ([]byte, error) {
	b = binary.NativeEndian.AppendUint64(b, uint64(ev.Time.Sec))
	b = binary.NativeEndian.AppendUint64(b, uint64(ev.Time.Usec))
	b = binary.NativeEndian.AppendUint16(b, uint16(ev.Type))
	b = binary.NativeEndian.AppendUint16(b, uint16(ev.Code))
	b = binary.NativeEndian.AppendUint32(b, uint32(ev.Value))
	return b, nil
}

func (ev Event) MarshalBinary() ([]byte, error) {
	return ev.AppendBinary(make([]byte, 0, EventSize))
}

func (ev *Event) UnmarshalBinary(data []byte) error {
	if len(data) != EventSize {
		return fmt.Errorf("failed to decode event: got %d bytes, expected %d", len(data), EventSize)
	}
	ev.Time.Sec = int64(binary.NativeEndian.Uint64(data[0:8]))
	ev.Time.Usec = int64(binary.NativeEndian.Uint64(data[8:16]))
	ev.Type = evdev.EvType(binary.NativeEndian.Uint16(data[16:18]))
	ev.Code = evdev.EvCode(binary.NativeEndian.Uint16(data[18:20]))
	ev.Value = int32(binary.NativeEndian.Uint32(data[20:24]))
	return nil
}
