package sendevent

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/guettli/sendevent/pkg/evcodes"
	"github.com/holoplot/go-evdev"
	"go.uber.org/zap"
)

type RecordCmdConfig struct {
	Debug       bool
	DevicePaths []string
	Types       []string // record only these types (and EV_SYN). All if empty.
	NoTimestamp bool
	NoDevice    bool
	Out         io.Writer
}

// FormatLine formats an event like getevent -lt does. ParseLine reads it
// back.
func FormatLine(device string, ev Event, f Format) string {
	var b strings.Builder
	if f.Timestamp {
		fmt.Fprintf(&b, "[%8d.%06d] ", ev.Time.Sec, ev.Time.Usec)
	}
	if f.Device {
		b.WriteString(device)
		b.WriteString(": ")
	}
	fmt.Fprintf(&b, "%-12s %-20s %s",
		evcodes.TypeToken(ev.Type),
		evcodes.CodeToken(ev.Type, ev.Code),
		evcodes.ValueToken(ev.Type, ev.Code, ev.Value))
	return b.String()
}

// ParseTypes resolves type tokens like "EV_KEY".
func ParseTypes(tokens []string) (mapset.Set[evdev.EvType], error) {
	types := mapset.NewSet[evdev.EvType]()
	for _, token := range tokens {
		t, err := evcodes.ParseType(token)
		if err != nil {
			return nil, fmt.Errorf("failed to parse type %q: %w", token, err)
		}
		types.Add(t)
	}
	return types, nil
}

// Recorder writes events as log lines.
type Recorder struct {
	out     io.Writer
	format  Format
	types   mapset.Set[evdev.EvType]
	started bool
}

// NewRecorder creates a Recorder. If types is not empty, only events of
// these types get recorded. SYN_REPORT markers are always recorded, since
// they terminate the reports.
func NewRecorder(out io.Writer, format Format, types mapset.Set[evdev.EvType]) *Recorder {
	return &Recorder{out: out, format: format, types: types}
}

func (r *Recorder) WriteEvent(device string, ev Event) error {
	if r.types != nil && r.types.Cardinality() > 0 && !r.types.Contains(ev.Type) && !ev.IsSync() {
		return nil
	}
	if !r.started {
		// The first line of a log only defines the format, it does not get
		// replayed.
		header := Event{Time: ev.Time, Type: evcodes.SyncType, Code: evcodes.SyncReport}
		if _, err := fmt.Fprintln(r.out, FormatLine(device, header, r.format)); err != nil {
			return fmt.Errorf("%w: failed to write log: %w", IOErr, err)
		}
		r.started = true
	}
	if _, err := fmt.Fprintln(r.out, FormatLine(device, ev, r.format)); err != nil {
		return fmt.Errorf("%w: failed to write log: %w", IOErr, err)
	}
	return nil
}

func eventFromEvdev(ev *evdev.InputEvent) Event {
	return Event{
		Time:  TimeVal{Sec: int64(ev.Time.Sec), Usec: int64(ev.Time.Usec)},
		Type:  ev.Type,
		Code:  ev.Code,
		Value: ev.Value,
	}
}

type eventOfPath struct {
	path  string
	event *evdev.InputEvent
	err   error
}

func readEvents(ctx context.Context, dev *evdev.InputDevice, path string, c chan<- eventOfPath) {
	for {
		ev, err := dev.ReadOne()
		select {
		case c <- eventOfPath{path, ev, err}:
		case <-ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}

// RecordMain reads the events of the devices until ctx is done or reading
// fails, and writes them as log.
func RecordMain(ctx context.Context, cmdconfig RecordCmdConfig) error {
	if len(cmdconfig.DevicePaths) == 0 {
		return fmt.Errorf("%w: no device to record", NoDeviceErr)
	}
	logger, err := NewLogger(cmdconfig.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	types, err := ParseTypes(cmdconfig.Types)
	if err != nil {
		return err
	}
	out := cmdconfig.Out
	if out == nil {
		out = os.Stdout
	}
	recorder := NewRecorder(out, Format{
		Timestamp: !cmdconfig.NoTimestamp,
		Device:    !cmdconfig.NoDevice,
	}, types)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	c := make(chan eventOfPath)
	for _, path := range mapset.NewSet(cmdconfig.DevicePaths...).ToSlice() {
		dev, err := evdev.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open the source device: %q %w", path, err)
		}
		defer dev.Close()
		name, _ := dev.Name()
		logger.Info("recording", zap.String("device", path), zap.String("name", name))
		go readEvents(ctx, dev, path, c)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case evOfPath := <-c:
			if evOfPath.err != nil {
				return fmt.Errorf("%w: failed to read from %q: %w", IOErr, evOfPath.path, evOfPath.err)
			}
			ev := eventFromEvdev(evOfPath.event)
			logger.Debug("read", zap.String("device", evOfPath.path), zap.Stringer("event", ev))
			if err := recorder.WriteEvent(evOfPath.path, ev); err != nil {
				return err
			}
		}
	}
}
