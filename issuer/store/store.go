package store

import (
	"context"

	"github.com/pkg/errors"

	"devcert/client/common"
	"devcert/issuer/types"
)

var (
	ErrMultipleRecord = errors.New("multiple record")
)

// Interface writes issued certificate and key
type Interface interface {
	Save(ctx context.Context, name string, certPEM, keyPEM []byte) (*types.Files, error)
}

// Ledger issued certificate history
type Ledger interface {
	// CreateCertificate record certificate; older active certificates of the same name are superseded
	CreateCertificate(ctx context.Context, cert *types.Certificate) (*types.Certificate, error)
	GetCertificate(ctx context.Context, id string) (*types.Certificate, error)
	ListCertificate(ctx context.Context, opts CertificateListOpt) ([]*types.Certificate, error)
}

type CertificateListOpt struct {
	ID     string
	Name   string
	Status common.Status
}
