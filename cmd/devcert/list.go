package main

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/whitekid/goxp/fx"

	"devcert/client/common"
	"devcert/config"
	"devcert/issuer"
	"devcert/pkg/helper"
)

func init() {
	var opts listOpts

	cmd := &cobra.Command{
		Use:   "list",
		Short: "list issued certificates in ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.dbURL = config.DBURL()
			return listCert(cmd.Context(), cmd.OutOrStdout(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "filter by name")
	cmd.Flags().StringVar(&opts.status, "status", "", "filter by status; active, superseded")

	rootCmd.AddCommand(cmd)
}

type listOpts struct {
	dbURL  string
	name   string
	status string
}

type listItem struct {
	ID          string
	Name        string
	Status      common.Status
	Fingerprint string
	NotAfter    *common.Timestamp
	CertFile    string `yaml:",omitempty"`
	Created     *common.Timestamp
}

func listCert(ctx context.Context, w io.Writer, opts *listOpts) error {
	if opts.dbURL == "" {
		return errors.Wrap(issuer.ErrNoLedger, "use --db or DEVCERT_DB")
	}

	if err := helper.ValidateVars(opts.name, "omitempty,max=253", opts.status, "omitempty,oneof=active superseded"); err != nil {
		return errors.Wrap(err, "invalid filter")
	}

	ledger, err := issuer.SQLLedger(opts.dbURL)
	if err != nil {
		return err
	}

	certs, err := issuer.New(issuer.NativeProvider(), nil, ledger).ListCertificate(ctx, issuer.CertificateListOpt{
		Name:   opts.name,
		Status: common.StrToStatus(opts.status),
	})
	if err != nil {
		return err
	}

	return helper.WriteYAML(w, fx.Map(certs, func(cert *issuer.Certificate) *listItem {
		return &listItem{
			ID:          cert.ID,
			Name:        cert.Name,
			Status:      cert.Status,
			Fingerprint: cert.Fingerprint,
			NotAfter:    common.NewTimestamp(cert.NotAfter),
			CertFile:    cert.CertFile,
			Created:     common.NewTimestamp(cert.Created),
		}
	}))
}
