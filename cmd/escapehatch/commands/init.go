package commands

import (
	"github.com/spf13/cobra"

	"github.com/jongio/escapehatch/cliout"
	"github.com/jongio/escapehatch/config"
)

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Write a sample configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultFileName
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.SaveSample(path); err != nil {
				return err
			}
			return cliout.Print(map[string]string{"path": path}, func() {
				cliout.Success("Wrote %s", path)
			})
		},
	}
}
