package sendevent

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadYamlFromBytes_ok(t *testing.T) {
	yamlString := `devices:
  /dev/input/event3: /dev/input/event7
  /dev/input/event4: /dev/input/by-id/usb-keyboard-event-kbd
`
	expected := DeviceMap{
		"/dev/input/event3": "/dev/input/event7",
		"/dev/input/event4": "/dev/input/by-id/usb-keyboard-event-kbd",
	}
	actual, err := LoadYamlFromBytes([]byte(yamlString))
	require.Nil(t, err)
	require.Equal(t, expected, actual)

	actual, err = LoadYamlFromBytes([]byte(""))
	require.Nil(t, err)
	require.Empty(t, actual)
}

func TestLoadYamlFromBytes_fail(t *testing.T) {
	tests := []struct {
		yamlString string
		expected   string
	}{
		{
			`devices:
  /dev/input/event3: ""
`,
			`empty device name is not allowed`,
		},
		{
			`devices
  /dev/input/event3: /dev/input/event7
`,
			"mapping values are not allowed in this context",
		},
		{
			`devices: [a, b]`,
			"cannot unmarshal",
		},
	}
	for _, tt := range tests {
		_, err := LoadYamlFromBytes([]byte(tt.yamlString))
		require.ErrorContains(t, err, tt.expected)
	}
}

func TestLoadYamlFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devices.yaml")
	require.NoError(t, os.WriteFile(path, []byte("devices:\n  a: b\n"), 0o600))
	m, err := LoadYamlFile(path)
	require.NoError(t, err)
	require.Equal(t, DeviceMap{"a": "b"}, m)

	_, err = LoadYamlFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDeviceMap_Opener(t *testing.T) {
	var opened []string
	open := func(name string) (io.WriteCloser, error) {
		opened = append(opened, name)
		return nil, nil
	}
	m := DeviceMap{"/dev/input/event3": "/dev/input/event7"}
	mapped := m.Opener(open)
	_, _ = mapped("/dev/input/event3")
	_, _ = mapped("/dev/input/event4")
	require.Equal(t, []string{"/dev/input/event7", "/dev/input/event4"}, opened)
}

func TestReplay_deviceMap(t *testing.T) {
	devices := newFakeDevices(newFakeClock())
	m := DeviceMap{"/dev/a": "/dev/mapped"}
	log := "/dev/a: 0 0 0\n/dev/a: 0001 001e 00000001\n/dev/a: 0000 0000 00000000\n"
	_, err := Replay(NewLogReader(strings.NewReader(log)), ReplayConfig{
		Open:  m.Opener(devices.Open),
		Clock: devices.clock,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"/dev/mapped"}, devices.opens)
}
