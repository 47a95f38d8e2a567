package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"devcert/config"
	"devcert/issuer/provider"
)

var rootCmd = &cobra.Command{
	Use:   "devcert <name>",
	Short: "issue self-signed certificate for *.<name> and <name>",
	Long: `Issue self-signed certificate and RSA private key for local development.

Certificate and key are written to <name>.pem and <name>.key.`,
	Example:      "  devcert grpc-demo.go",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return createCert(cmd.Context(), cmd.OutOrStdout(), args[0], &createOpts{
			dir:    config.Dir(),
			dbURL:  config.DBURL(),
			digest: config.Digest(),
			bits:   config.Bits(),
			trust:  viper.GetBool(keyTrust),
		})
	},
}

const keyTrust = "trust"

func init() {
	cobra.OnInitialize(initConfig)

	fs := rootCmd.Flags()
	fs.StringP(config.KeyDir, "d", "", "output directory, - to write to stdout")
	fs.String(config.KeyDigest, "sha1", "signature digest; sha1, sha256, sha384, sha512")
	fs.Int(config.KeyBits, provider.DefaultKeyBits, "RSA key size")
	fs.Bool(keyTrust, false, "add certificate to system keychain as trusted root (macOS only)")
	rootCmd.PersistentFlags().String(config.KeyDB, "", "ledger database url; sqlite://devcert.db")

	viper.BindPFlags(fs)
	viper.BindPFlags(rootCmd.PersistentFlags())
}

func initConfig() {
	config.Init(".env")
}
