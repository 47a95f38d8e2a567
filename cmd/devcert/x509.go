package main

import (
	"context"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/whitekid/goxp/fx"

	"devcert/pkg/helper"
	"devcert/pkg/helper/x509x"
)

var x509cmd *cobra.Command

func init() {
	x509cmd = &cobra.Command{
		Use:   "x509",
		Short: "x509 utility commands",
	}
	rootCmd.AddCommand(x509cmd)
}

func init() {
	cmd := &cobra.Command{
		Use: "cert",
	}

	var asYAML bool
	infoCmd := &cobra.Command{
		Use:   "info cert...",
		Short: "show x509 certificate informations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, filename := range args {
				if err := certInfo(cmd.Context(), cmd.OutOrStdout(), filename, asYAML); err != nil {
					return err
				}
			}
			return nil
		},
	}
	infoCmd.Flags().BoolVar(&asYAML, "yaml", false, "output as yaml")
	cmd.AddCommand(infoCmd)

	x509cmd.AddCommand(cmd)
}

type extensionInfo struct {
	ID       string
	Critical bool `json:",omitempty" yaml:",omitempty"`
}

type certificateInfo struct {
	Version            int
	Subject            string
	Issuer             string
	SerialNumber       string
	SignatureAlgorithm string
	PublicKeyAlgorithm string
	DNSNames           []string `json:",omitempty" yaml:",omitempty"`
	IsCA               bool
	SubjectKeyId       string `json:",omitempty" yaml:",omitempty"`
	AuthorityKeyId     string `json:",omitempty" yaml:",omitempty"`
	NotBefore          time.Time
	NotAfter           time.Time
	Fingerprint        string
	Extensions         []extensionInfo
}

// certInfo show certification info
// openssl x509 -text -in <filename>
func certInfo(ctx context.Context, w io.Writer, filename string, asYAML bool) error {
	pemBytes, err := helper.ReadFile(filename)
	if err != nil {
		return err
	}

	certs, err := x509x.ParseCertificateChain(pemBytes)
	if err != nil {
		return err
	}

	if len(certs) == 0 {
		return errors.Errorf("no certificate found: %s", filename)
	}

	infos := fx.Map(certs, func(cert *x509.Certificate) *certificateInfo {
		return &certificateInfo{
			Version:            cert.Version,
			Subject:            rdnString(cert.RawSubject),
			Issuer:             rdnString(cert.RawIssuer),
			SerialNumber:       cert.SerialNumber.String(),
			SignatureAlgorithm: cert.SignatureAlgorithm.String(),
			PublicKeyAlgorithm: cert.PublicKeyAlgorithm.String(),
			DNSNames:           cert.DNSNames,
			IsCA:               cert.IsCA,
			SubjectKeyId:       x509x.FormatKeyID(cert.SubjectKeyId),
			AuthorityKeyId:     x509x.FormatKeyID(cert.AuthorityKeyId),
			NotBefore:          cert.NotBefore,
			NotAfter:           cert.NotAfter,
			Fingerprint:        x509x.Fingerprint(cert.Raw),
			Extensions: fx.Map(cert.Extensions, func(e pkix.Extension) extensionInfo {
				return extensionInfo{ID: e.Id.String(), Critical: e.Critical}
			}),
		}
	})

	for _, info := range infos {
		if asYAML {
			err = helper.WriteYAML(w, info)
		} else {
			err = helper.WriteJSON(w, info)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// rdnString subject in encoded order; C=DE,L=Munich,O=GrpcDemo,CN=*.example.com
func rdnString(raw []byte) string {
	var rdn pkix.RDNSequence
	if _, err := asn1.Unmarshal(raw, &rdn); err != nil {
		return ""
	}

	reversed := make(pkix.RDNSequence, len(rdn))
	for i, r := range rdn {
		reversed[len(rdn)-1-i] = r
	}

	// String() prints in reverse order
	return reversed.String()
}
