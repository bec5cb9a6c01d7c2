package sendevent

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/holoplot/go-evdev"
)

const devInput = "/dev/input"

type DevicesCmdConfig struct {
	Types []string // list only devices capable of all these types
	Out   io.Writer
}

type DeviceInfo struct {
	Path       string
	Name       string
	Types      []evdev.EvType
	Properties []string
}

func (d DeviceInfo) String() string {
	return fmt.Sprintf("%s: %s %+v %+v", d.Path, d.Name, Map(d.Types, evdev.TypeName), d.Properties)
}

// capableOf reports whether the device supports all required types.
func (d DeviceInfo) capableOf(required mapset.Set[evdev.EvType]) bool {
	return mapset.NewSet(d.Types...).IsSuperset(required)
}

// ListDevices returns the devices in basePath which can be opened and
// support all required types.
func ListDevices(basePath string, required mapset.Set[evdev.EvType]) ([]DeviceInfo, error) {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, err
	}
	var devices []DeviceInfo
	for _, entry := range entries {
		if entry.Type()&os.ModeCharDevice == 0 {
			// not a character device file.
			continue
		}
		path := filepath.Join(basePath, entry.Name())
		d, err := evdev.OpenWithFlags(path, os.O_RDONLY)
		if err != nil {
			continue
		}
		name, _ := d.Name()
		info := DeviceInfo{
			Path:       d.Path(),
			Name:       name,
			Types:      d.CapableTypes(),
			Properties: Map(d.Properties(), evdev.PropName),
		}
		d.Close()
		if !info.capableOf(required) {
			continue
		}
		devices = append(devices, info)
	}
	return devices, nil
}

func DevicesMain(cmdconfig DevicesCmdConfig) error {
	required, err := ParseTypes(cmdconfig.Types)
	if err != nil {
		return err
	}
	out := cmdconfig.Out
	if out == nil {
		out = os.Stdout
	}
	devices, err := ListDevices(devInput, required)
	if err != nil {
		return fmt.Errorf("failed to list %q: %w", devInput, err)
	}
	if len(devices) == 0 {
		fmt.Fprintln(out, "No single device was found. It is likely that you have no permission to access /dev/input/... (`sudo` might help)")
		return nil
	}
	lines := Map(devices, DeviceInfo.String)
	_, err = fmt.Fprintln(out, strings.Join(lines, "\n"))
	return err
}

func Map[T any, S any](t []T, f func(T) S) []S {
	ret := make([]S, 0, len(t))
	for i := range t {
		ret = append(ret, f(t[i]))
	}
	return ret
}
