package main

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/awantoch/procmap/utils"
)

// newHistoryCmd creates the 'history' subcommand.
func newHistoryCmd() *cobra.Command {
	var process string
	cmd := &cobra.Command{
		Use:   "history [build-id]",
		Short: "List persisted builds, or print one build's stored DOT",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			svc, err := newService(cmd)
			if err != nil {
				exit(1)
			}
			defer svc.Close()
			store := svc.Storage()
			if store == nil {
				utils.Error("no storage driver configured; set storage.driver in %s", configPath)
				exit(2)
			}

			if len(args) == 1 {
				id, err := uuid.Parse(args[0])
				if err != nil {
					utils.Error("invalid build id: %v", err)
					exit(3)
				}
				b, err := store.GetBuild(cmd.Context(), id)
				if err != nil {
					utils.Error("build lookup failed: %v", err)
					exit(3)
				}
				utils.User("%s", b.DOT)
				return
			}

			builds, err := store.ListBuilds(cmd.Context(), process)
			if err != nil {
				utils.Error("failed to list builds: %v", err)
				exit(3)
			}
			for _, b := range builds {
				utils.User("%s  %s  %s  %d nodes  %d edges  %s",
					b.ID, b.CreatedAt.Format("2006-01-02 15:04:05"), b.ProcessName,
					b.NodeCount, b.EdgeCount, b.InputHash[:12])
			}
		},
	}
	cmd.Flags().StringVarP(&process, "process", "p", "", "filter by process name")
	return cmd
}
