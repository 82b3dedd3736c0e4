// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"

	"github.com/sfeek/bootstat/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		host string
		port int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve comparisons over HTTP",
		Long: `Serve runs an HTTP server answering POST /v1/compare with a comparison
report, GET /healthz and GET /metrics. It stops on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc := a.cfg.Server
			if cmd.Flags().Changed("host") {
				sc.Host = host
			}
			if cmd.Flags().Changed("port") {
				sc.Port = port
			}
			defaults, err := a.cfg.Defaults.Compare()
			if err != nil {
				return err
			}
			return server.New(sc, defaults, a.log).ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "listen on `host` (default from config, 127.0.0.1)")
	cmd.Flags().IntVar(&port, "port", 0, "listen on `port` (default from config, 8080)")
	return cmd
}
