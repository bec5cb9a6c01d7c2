package sendevent

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Yaml is the device map file. It maps the device names used in a log to
// the device nodes of this machine:
//
//	devices:
//	  /dev/input/event3: /dev/input/event7
type Yaml struct {
	Devices map[string]string `yaml:"devices"`
}

// DeviceMap replaces device names of the log by other paths before the
// device gets opened.
type DeviceMap map[string]string

var EmptyDeviceNameErr = fmt.Errorf("empty device name is not allowed")

func LoadYamlFile(yamlFile string) (DeviceMap, error) {
	data, err := os.ReadFile(yamlFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read yaml config from %q: %w", yamlFile, err)
	}
	m, err := LoadYamlFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", yamlFile, err)
	}
	return m, nil
}

func LoadYamlFromBytes(yamlBytes []byte) (DeviceMap, error) {
	y := Yaml{}
	err := yaml.Unmarshal(yamlBytes, &y)
	if err != nil {
		return nil, err
	}
	m := make(DeviceMap, len(y.Devices))
	for from, to := range y.Devices {
		if from == "" || to == "" {
			return nil, fmt.Errorf("mapping %q -> %q is invalid: %w", from, to, EmptyDeviceNameErr)
		}
		m[from] = to
	}
	return m, nil
}

// Opener wraps open, so that mapped names get opened at their new path.
// Names without a mapping are opened as they are.
func (m DeviceMap) Opener(open DeviceOpener) DeviceOpener {
	return func(name string) (io.WriteCloser, error) {
		if path, ok := m[name]; ok {
			name = path
		}
		return open(name)
	}
}
