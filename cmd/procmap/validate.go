package main

import (
	"github.com/spf13/cobra"

	"github.com/awantoch/procmap/loader"
	"github.com/awantoch/procmap/model"
	"github.com/awantoch/procmap/table"
	"github.com/awantoch/procmap/utils"
)

// newValidateCmd creates the 'validate' subcommand.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a process table against the column contract",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			t, err := loader.Load(args[0])
			if err != nil {
				utils.Error("failed to load table: %v", err)
				exit(1)
			}
			result, err := table.Validate(t)
			if err != nil {
				utils.Error("validation failed: %v", err)
				exit(2)
			}
			utils.User("Validation OK: %s", result)
			for _, name := range model.Names(t) {
				p := model.Extract(t, name)
				s := p.Summarize()
				utils.User("  %s (%s): %d steps, %d lanes", p.Name, p.ID, s.Steps, s.Lanes)
			}
		},
	}
}
