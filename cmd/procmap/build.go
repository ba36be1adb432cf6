package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/awantoch/procmap/api"
	"github.com/awantoch/procmap/loader"
	"github.com/awantoch/procmap/utils"
)

// newBuildCmd creates the 'build' subcommand.
func newBuildCmd() *cobra.Command {
	var (
		process     string
		format      string
		output      string
		exportRows  string
		withSummary bool
	)
	cmd := &cobra.Command{
		Use:   "build [file]",
		Short: "Compile a process table into a graph description",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			t, err := loader.Load(args[0])
			if err != nil {
				utils.Error("failed to load table: %v", err)
				exit(1)
			}
			svc, err := newService(cmd)
			if err != nil {
				exit(2)
			}
			defer svc.Close()

			res, err := svc.Build(cmd.Context(), api.BuildRequest{
				Table:   t,
				Process: process,
				Format:  format,
			})
			if err != nil {
				utils.Error("build failed: %v", err)
				exit(3)
			}
			utils.Info("%s", res.Validation)
			for _, w := range res.Graph.Warnings {
				utils.Info("recovered: %s", w)
			}

			if output != "" {
				if err := os.WriteFile(output, []byte(res.Output), 0o644); err != nil {
					utils.Error("failed to write output: %v", err)
					exit(4)
				}
				utils.User("wrote %s (%d nodes, %d edges)", output, len(res.Graph.Nodes), len(res.Graph.Edges))
			} else {
				utils.User("%s", res.Output)
			}

			if withSummary {
				data, err := utils.MarshalJSONIndent(res.Summary)
				if err != nil {
					utils.Error("failed to encode summary: %v", err)
					exit(4)
				}
				utils.User("%s", data)
			}

			if exportRows != "" {
				f, err := os.Create(exportRows)
				if err != nil {
					utils.Error("failed to create row export: %v", err)
					exit(4)
				}
				defer f.Close()
				if err := loader.WriteCSV(api.FilterProcess(t, res.Process.Name), f); err != nil {
					utils.Error("failed to export rows: %v", err)
					exit(4)
				}
			}
		},
	}
	cmd.Flags().StringVarP(&process, "process", "p", "", "process name to compile (default: first in table)")
	cmd.Flags().StringVarP(&format, "format", "f", api.FormatDOT, "output format: dot or mermaid")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the graph description to a file instead of stdout")
	cmd.Flags().StringVar(&exportRows, "export-rows", "", "also export the selected process's rows as CSV")
	cmd.Flags().BoolVar(&withSummary, "summary", false, "also print the process metadata summary as JSON")
	return cmd
}

// newService wires an api.Service from config for one command invocation.
func newService(cmd *cobra.Command) (*api.Service, error) {
	cfg, err := loadServiceConfig()
	if err != nil {
		utils.Error("failed to load config: %v", err)
		return nil, err
	}
	svc, err := api.NewService(cmd.Context(), cfg)
	if err != nil {
		utils.Error("failed to initialize service: %v", err)
		return nil, err
	}
	return svc, nil
}
