package main

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/pkg/errors"

	"devcert/issuer"
	"devcert/issuer/provider"
	"devcert/pkg/helper"
)

type createOpts struct {
	dir    string
	dbURL  string
	digest string
	bits   int
	trust  bool
}

// createCert issue certificate for name and write <name>.pem, <name>.key
func createCert(ctx context.Context, w io.Writer, name string, opts *createOpts) error {
	signatureAlgorithm, err := provider.ParseSignatureAlgorithm(opts.digest)
	if err != nil {
		return err
	}

	req := issuer.DefaultRequest(name)
	req.SignatureAlgorithm = signatureAlgorithm
	if opts.bits > 0 {
		req.KeyBits = opts.bits
	}

	if err := req.Validate(); err != nil {
		return err
	}

	var ledger issuer.Ledger
	if opts.dbURL != "" {
		ledger, err = issuer.SQLLedger(opts.dbURL)
		if err != nil {
			return err
		}
	}

	// PEMs go to stdout with "-"
	if opts.dir == "-" {
		w = io.Discard
	}

	fmt.Fprintln(w, "Generating public and private keys...")
	fmt.Fprintln(w, "Signing certificate...")

	cert, err := issuer.New(issuer.NativeProvider(), issuer.FileStore(opts.dir), ledger).Issue(ctx, req)
	if err != nil {
		return err
	}

	trust := helper.Execute(trustCommand(cert.CertFile)...)
	fmt.Fprintf(w, "Now run (something like) this on MacOS:\n%s\n", trust)

	if !opts.trust {
		return nil
	}

	if runtime.GOOS != "darwin" {
		return errors.Errorf("trust is not supported on %s", runtime.GOOS)
	}

	return trust.Stdout(w).Do(ctx)
}

func trustCommand(certFile string) []string {
	return []string{"sudo", "security", "add-trusted-cert", "-d", "-r", "trustRoot", "-k", "/Library/Keychains/System.keychain", certFile}
}
