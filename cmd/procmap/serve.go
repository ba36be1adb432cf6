package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/awantoch/procmap/constants"
	procmaphttp "github.com/awantoch/procmap/http"
	"github.com/awantoch/procmap/telemetry"
	"github.com/awantoch/procmap/utils"
)

// newServeCmd creates the 'serve' subcommand.
func newServeCmd() *cobra.Command {
	var (
		host string
		port int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the build pipeline over HTTP",
		Run: func(cmd *cobra.Command, args []string) {
			telemetry.Init("procmap")
			svc, err := newService(cmd)
			if err != nil {
				exit(1)
			}
			defer svc.Close()

			cfg, _ := loadServiceConfig()
			if cfg != nil {
				if host == "" && cfg.HTTP.Host != "" {
					host = cfg.HTTP.Host
				}
				if port == 0 && cfg.HTTP.Port != 0 {
					port = cfg.HTTP.Port
				}
			}
			if host == "" {
				host = constants.DefaultHTTPHost
			}
			if port == 0 {
				port = constants.DefaultHTTPPort
			}

			addr := fmt.Sprintf("%s:%d", host, port)
			srv := procmaphttp.NewServer(svc)
			if err := srv.ListenAndServe(addr); err != nil {
				utils.Error("server exited: %v", err)
				exit(2)
			}
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "listen host")
	cmd.Flags().IntVar(&port, "port", 0, "listen port")
	return cmd
}
