package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rpgo/retireplan/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve projections over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.New(a.engine(), a.logger).ListenAndServe(cmd.Context(), ":"+port)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", port, "listen port (defaults to $PORT or 8080)")
	return cmd
}
