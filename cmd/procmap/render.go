package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/awantoch/procmap/api"
	"github.com/awantoch/procmap/graphviz"
	"github.com/awantoch/procmap/loader"
	"github.com/awantoch/procmap/utils"
)

// newRenderCmd creates the 'render' subcommand: build plus rasterization
// through the local Graphviz binary.
func newRenderCmd() *cobra.Command {
	var (
		process string
		format  string
		output  string
	)
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Compile a process table and rasterize it with Graphviz",
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

			res, err := svc.Build(cmd.Context(), api.BuildRequest{Table: t, Process: process})
			if err != nil {
				utils.Error("build failed: %v", err)
				exit(3)
			}

			data, url, err := svc.Render(cmd.Context(), res, format)
			if err != nil {
				// The DOT description is still valid; keep it reachable.
				var renderErr *graphviz.RenderError
				if errors.As(err, &renderErr) {
					utils.Error("layout engine failed: %v", renderErr)
					utils.User("%s", res.Output)
					exit(4)
				}
				utils.Error("render failed: %v", err)
				exit(4)
			}
			if output == "" {
				output = res.Process.Name + "." + format
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				utils.Error("failed to write %s: %v", output, err)
				exit(5)
			}
			utils.User("wrote %s", output)
			if url != "" {
				utils.User("archived: %s", url)
			}
		},
	}
	cmd.Flags().StringVarP(&process, "process", "p", "", "process name to compile (default: first in table)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "raster format: svg, png, pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <process>.<format>)")
	return cmd
}
