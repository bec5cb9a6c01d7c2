package cmd

import (
	"github.com/guettli/sendevent/pkg/sendevent"
	"github.com/spf13/cobra"
)

func init() {
	envConfig, envErr := sendevent.LoadEnvConfig()
	config := sendevent.ReplayCmdConfig{}
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if envErr != nil {
			return envErr
		}
		config.Stdin = cmd.InOrStdin()
		return sendevent.ReplayMain(config)
	}
	rootCmd.Args = cobra.NoArgs
	rootCmd.Flags().StringVar(&config.Device, "device", envConfig.Device, "Device for logs without device field ($SENDEVENT_DEVICE)")
	rootCmd.Flags().StringVar(&config.Path, "path", "", "Log file to replay. Default: stdin")
	rootCmd.Flags().StringVar(&config.DeviceMapFile, "device-map", envConfig.DeviceMap, "Yaml file which maps device names of the log to device nodes ($SENDEVENT_DEVICE_MAP)")
	rootCmd.Flags().BoolVarP(&config.Debug, "debug", "d", envConfig.Debug, "Print debug output ($SENDEVENT_DEBUG)")
}
