package sendevent

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
)

// DeviceOpener opens the device with the given name for writing.
type DeviceOpener func(name string) (io.WriteCloser, error)

// OpenDevice opens a device node write-only.
func OpenDevice(name string) (io.WriteCloser, error) {
	return os.OpenFile(name, os.O_WRONLY, 0)
}

// Clock is used for pacing. Tests use a fake clock.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

type ReplayConfig struct {
	// DefaultDevice gets used if the log has no device field.
	DefaultDevice string
	Open          DeviceOpener
	Clock         Clock
	Logger        *zap.Logger
}

// Stats summarizes a replay.
type Stats struct {
	Events  int // events written, markers included
	Markers int
	Devices int
	Slept   time.Duration
}

// Replay writes the events of the log to the devices.
//
// Events get written with a zero timestamp. The timing of the log gets
// reproduced by delaying the SYN_REPORT markers: the first marker defines
// the baseline, every later marker is written when the same time has passed
// since the baseline as in the log. Other events are written immediately,
// since they belong to the report of the next marker.
//
// Replay stops at the first error. Devices are opened on first use and
// closed when Replay returns.
func Replay(er LogEntryReader, config ReplayConfig) (stats Stats, err error) {
	r := newReplayer(config)
	defer func() {
		stats = r.stats
		err = errors.Join(err, r.closeDevices())
	}()
	for {
		entry, err := er.ReadOne()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("failed to read log: %w", err)
		}
		if err := r.replayOne(entry); err != nil {
			return stats, err
		}
	}
	r.logger.Info("replay done",
		zap.Int("events", r.stats.Events),
		zap.Int("markers", r.stats.Markers),
		zap.Int("devices", r.stats.Devices),
		zap.Duration("slept", r.stats.Slept))
	return stats, nil
}

type baseline struct {
	wall time.Time
	log  time.Duration
}

type replayer struct {
	defaultDevice string
	open          DeviceOpener
	clock         Clock
	logger        *zap.Logger
	devices       map[string]io.WriteCloser
	baseline      *baseline
	buf           []byte
	stats         Stats
}

func newReplayer(config ReplayConfig) *replayer {
	r := &replayer{
		defaultDevice: config.DefaultDevice,
		open:          config.Open,
		clock:         config.Clock,
		logger:        config.Logger,
		devices:       make(map[string]io.WriteCloser),
		buf:           make([]byte, 0, EventSize),
	}
	if r.open == nil {
		r.open = OpenDevice
	}
	if r.clock == nil {
		r.clock = systemClock{}
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

func (r *replayer) replayOne(entry *LogEntry) error {
	name := entry.Device
	if !entry.HasDevice {
		if r.defaultDevice == "" {
			return fmt.Errorf("%w: the log has no device field, and no default device was set", NoDeviceErr)
		}
		name = r.defaultDevice
	}
	logTime := entry.Event.Time
	ev := entry.Event
	ev.Time = TimeVal{}

	dev, err := r.device(name)
	if err != nil {
		return err
	}
	if !ev.IsSync() {
		return r.write(dev, name, ev)
	}

	r.stats.Markers++
	d, err := logTime.Duration()
	if err != nil {
		return fmt.Errorf("failed to pace marker: %w", err)
	}
	if r.baseline == nil {
		r.baseline = &baseline{wall: r.clock.Now(), log: d}
		return r.write(dev, name, ev)
	}
	delay := r.delay(d)
	if delay > 0 {
		r.logger.Debug("sleep", zap.Duration("delay", delay), zap.Stringer("logTime", logTime))
		r.clock.Sleep(delay)
		r.stats.Slept += delay
	}
	return r.write(dev, name, ev)
}

// delay returns how long to wait until the marker with the given log time
// is due. It is never negative.
func (r *replayer) delay(logTime time.Duration) time.Duration {
	target := logTime - r.baseline.log
	elapsed := r.clock.Now().Sub(r.baseline.wall)
	if target <= elapsed {
		return 0
	}
	return target - elapsed
}

// device returns the cached device, or opens it.
func (r *replayer) device(name string) (io.WriteCloser, error) {
	if dev, ok := r.devices[name]; ok {
		return dev, nil
	}
	dev, err := r.open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open device %q: %w", IOErr, name, err)
	}
	r.logger.Info("opened device", zap.String("device", name))
	r.devices[name] = dev
	r.stats.Devices++
	return dev, nil
}

func (r *replayer) write(w io.Writer, name string, ev Event) error {
	buf, err := ev.AppendBinary(r.buf[:0])
	if err != nil {
		return err
	}
	r.logger.Debug("write", zap.String("device", name), zap.Stringer("event", ev))
	n, err := w.Write(buf)
	if err == nil && n != len(buf) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return fmt.Errorf("%w: failed to write event to %q: %w", IOErr, name, err)
	}
	r.stats.Events++
	return nil
}

func (r *replayer) closeDevices() error {
	var errs []error
	for name, dev := range r.devices {
		if err := dev.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %q: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
