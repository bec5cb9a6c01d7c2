package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/guettli/sendevent/pkg/sendevent"
	"github.com/holoplot/go-evdev"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestCommands(t *testing.T) {
	names := sendevent.Map(rootCmd.Commands(), (*cobra.Command).Name)
	require.Contains(t, names, "record")
	require.Contains(t, names, "devices")
	for _, flag := range []string{"device", "path", "device-map", "debug"} {
		require.NotNil(t, rootCmd.Flags().Lookup(flag), flag)
	}
}

func TestReplay_toFile(t *testing.T) {
	dir := t.TempDir()
	device := filepath.Join(dir, "event0")
	// A regular file stands in for the device node. It must exist, since
	// devices are not created.
	require.NoError(t, os.WriteFile(device, nil, 0o600))

	logFile := filepath.Join(dir, "events.log")
	log := fmt.Sprintf(`[1.000000] %[1]s: EV_SYN SYN_REPORT 00000000
[1.000000] %[1]s: EV_KEY KEY_A DOWN
[1.000000] %[1]s: EV_SYN SYN_REPORT 00000000
[1.010000] %[1]s: EV_KEY KEY_A UP
[1.010000] %[1]s: EV_SYN SYN_REPORT 00000000
`, device)
	require.NoError(t, os.WriteFile(logFile, []byte(log), 0o600))

	rootCmd.SetArgs([]string{"--path", logFile, "--device", "", "--device-map", ""})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(device)
	require.NoError(t, err)
	require.Len(t, data, 4*sendevent.EventSize)
	var ev sendevent.Event
	require.NoError(t, ev.UnmarshalBinary(data[:sendevent.EventSize]))
	require.Equal(t, sendevent.Event{Type: evdev.EV_KEY, Code: evdev.KEY_A, Value: 1}, ev)
}

func TestReplay_noDevice(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "events.log")
	require.NoError(t, os.WriteFile(logFile, []byte("0 0 0\n0001 001e 00000001\n"), 0o600))
	rootCmd.SetArgs([]string{"--path", logFile, "--device", "", "--device-map", ""})
	err := rootCmd.Execute()
	require.ErrorIs(t, err, sendevent.NoDeviceErr)
}

func TestReplay_deviceMapFile(t *testing.T) {
	dir := t.TempDir()
	device := filepath.Join(dir, "event7")
	require.NoError(t, os.WriteFile(device, nil, 0o600))
	mapFile := filepath.Join(dir, "devices.yaml")
	require.NoError(t, os.WriteFile(mapFile, []byte(fmt.Sprintf("devices:\n  /dev/input/event3: %s\n", device)), 0o600))
	logFile := filepath.Join(dir, "events.log")
	require.NoError(t, os.WriteFile(logFile, []byte("/dev/input/event3: 0 0 0\n/dev/input/event3: 0001 001e 00000001\n"), 0o600))

	rootCmd.SetArgs([]string{"--path", logFile, "--device", "", "--device-map", mapFile})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(device)
	require.NoError(t, err)
	require.Len(t, data, sendevent.EventSize)
}
