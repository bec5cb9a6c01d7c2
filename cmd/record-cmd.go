package cmd

import (
	"github.com/guettli/sendevent/pkg/sendevent"
	"github.com/spf13/cobra"
)

func init() {
	config := sendevent.RecordCmdConfig{}
	recordCmd := &cobra.Command{
		Use:   "record [flags] device1 [device2 ...]",
		Short: "Read events from one or several evdev devices and print them as log, which can be replayed. Needs root permissions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config.DevicePaths = args
			config.Out = cmd.OutOrStdout()
			return sendevent.RecordMain(cmd.Context(), config)
		},
		Args: cobra.MinimumNArgs(1),
	}
	recordCmd.Flags().BoolVarP(&config.Debug, "debug", "d", false, "Print debug output")
	recordCmd.Flags().BoolVar(&config.NoTimestamp, "no-timestamp", false, "Don't write timestamps. The log gets replayed without delays")
	recordCmd.Flags().BoolVar(&config.NoDevice, "no-device", false, "Don't write the device. Replay needs --device then")
	recordCmd.Flags().StringSliceVarP(&config.Types, "type", "t", nil, "Record only events of this type, like EV_KEY. SYN_REPORT is always recorded")
	rootCmd.AddCommand(recordCmd)
}
