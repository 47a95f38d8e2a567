package devcert

import (
	"context"

	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/whitekid/goxp/log"

	"devcert/api/endpoints"
	_ "devcert/api/health"
	v1 "devcert/api/v1"
	_ "devcert/docs"
	"devcert/issuer"
	"devcert/pkg/helper"
)

// Config server configuration
type Config struct {
	Addr     string `validate:"required"`
	CertFile string // TLS certificate; plain http if empty
	KeyFile  string
	DBURL    string // ledger database; list and get are not available if empty
	Dir      string // issued certificates are also written to Dir if not empty
}

// Run serve API until ctx is done
func Run(ctx context.Context, cfg *Config) error {
	if err := helper.ValidateStruct(cfg); err != nil {
		return err
	}

	e, err := newApp(cfg)
	if err != nil {
		return err
	}

	log.Infof("listening on %s, tls=%v", cfg.Addr, cfg.CertFile != "")
	return helper.StartEcho(ctx, e, cfg.Addr, cfg.CertFile, cfg.KeyFile)
}

func newApp(cfg *Config) (*helper.Echo, error) {
	var ledger issuer.Ledger
	if cfg.DBURL != "" {
		l, err := issuer.SQLLedger(cfg.DBURL)
		if err != nil {
			return nil, err
		}
		ledger = l
	}

	var files issuer.Store
	if cfg.Dir != "" {
		files = issuer.FileStore(cfg.Dir)
	}

	repo := issuer.New(issuer.NativeProvider(), files, ledger)

	e := helper.NewEcho()
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	endpoints.Route(e, append([]endpoints.Endpoint{v1.NewWithRepository(repo)}, endpoints.Endpoints()...)...)
	return e, nil
}
