package cmd

import (
	"github.com/guettli/sendevent/pkg/sendevent"
	"github.com/spf13/cobra"
)

func init() {
	config := sendevent.DevicesCmdConfig{}
	devicesCmd := &cobra.Command{
		Use:   "devices",
		Short: "List the evdev devices in /dev/input",
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Out = cmd.OutOrStdout()
			return sendevent.DevicesMain(config)
		},
		Args: cobra.NoArgs,
	}
	devicesCmd.Flags().StringSliceVarP(&config.Types, "type", "t", nil, "List only devices which support this type, like EV_KEY")
	rootCmd.AddCommand(devicesCmd)
}
