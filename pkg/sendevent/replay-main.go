package sendevent

import (
	"fmt"
	"io"
	"os"
)

type ReplayCmdConfig struct {
	Debug         bool
	Device        string // used if the log has no device field
	Path          string // read the log from stdin if empty
	DeviceMapFile string
	Stdin         io.Reader
}

func ReplayMain(cmdconfig ReplayCmdConfig) error {
	logger, err := NewLogger(cmdconfig.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	in := cmdconfig.Stdin
	if in == nil {
		in = os.Stdin
	}
	if cmdconfig.Path != "" {
		file, err := os.Open(cmdconfig.Path)
		if err != nil {
			return fmt.Errorf("failed to open %q: %w", cmdconfig.Path, err)
		}
		defer file.Close()
		in = file
	}

	open := OpenDevice
	if cmdconfig.DeviceMapFile != "" {
		m, err := LoadYamlFile(cmdconfig.DeviceMapFile)
		if err != nil {
			return err
		}
		open = m.Opener(open)
	}

	_, err = Replay(NewLogReader(in), ReplayConfig{
		DefaultDevice: cmdconfig.Device,
		Open:          open,
		Logger:        logger,
	})
	return err
}
