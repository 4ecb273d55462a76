package main

import (
	"github.com/spf13/cobra"

	"github.com/quanty-ai/quanty/internal/app"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			a, err := app.New(cfg, nil)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Serve(cmd.Context())
		},
	}

	cmd.Flags().String("host", "", "listen host")
	cmd.Flags().String("port", "", "listen port")
	cmd.Flags().String("history", "", "chat history database path")
	_ = opts.v.BindPFlag("server.host", cmd.Flags().Lookup("host"))
	_ = opts.v.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	_ = opts.v.BindPFlag("history.path", cmd.Flags().Lookup("history"))
	return cmd
}
