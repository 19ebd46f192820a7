package cli

import (
	"github.com/spf13/cobra"

	"github.com/waabox/clubinho/internal/events"
	"github.com/waabox/clubinho/internal/tui"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open the interactive admin console",
	RunE: func(cmd *cobra.Command, args []string) error {
		feed := events.NewChannel(32)
		defer app.Bus.Subscribe(feed)()
		return tui.Run(app.API, app.Router, feed.C())
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
