package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sendevent [--device DEVICE] [--path LOG]",
	Short: "sendevent replays a log of input events (like the output of `getevent -lt`) to evdev devices, with the original timing.",
	Long: `sendevent replays a log of Linux input events. https://github.com/guettli/sendevent

Lines look like this, the timestamp and the device are optional:

  [   1711354959.655837] /dev/input/event3: EV_KEY KEY_A DOWN

The first line of the log defines which fields are present. It is not replayed.`,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}
