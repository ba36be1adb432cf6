package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/awantoch/procmap/loader"
	"github.com/awantoch/procmap/utils"
)

// newSampleCmd creates the 'sample' subcommand.
func newSampleCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Emit the demonstration process table as CSV",
		Run: func(cmd *cobra.Command, args []string) {
			w := os.Stdout
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					utils.Error("failed to create %s: %v", output, err)
					exit(1)
				}
				defer f.Close()
				w = f
			}
			if err := loader.WriteCSV(loader.Sample(), w); err != nil {
				utils.Error("failed to write sample: %v", err)
				exit(2)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	return cmd
}
