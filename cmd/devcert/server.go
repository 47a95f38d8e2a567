package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"devcert"
	"devcert/config"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve certificate API and health endpoints",
		Long: `Serve certificate API and health endpoints.

With --cert and --key the server runs TLS with issued certificate:
  devcert example.local && devcert serve --cert example.local.pem --key example.local.key`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return devcert.Run(cmd.Context(), &devcert.Config{
				Addr:     config.Addr(),
				CertFile: config.Cert(),
				KeyFile:  config.Key(),
				DBURL:    config.DBURL(),
				Dir:      config.Dir(),
			})
		},
	}

	fs := cmd.Flags()
	fs.String(config.KeyAddr, "127.0.0.1:8443", "listen address")
	fs.String(config.KeyCert, "", "TLS certificate file")
	fs.String(config.KeyKey, "", "TLS private key file")
	viper.BindPFlags(fs)

	rootCmd.AddCommand(cmd)
}
