package issuer

import (
	"context"

	"gorm.io/gorm"

	"devcert/issuer/provider"
	"devcert/issuer/repository"
	"devcert/issuer/store"
	"devcert/issuer/types"
	"devcert/pkg/helper/gormx"
)

type (
	Interface = repository.Interface
	Provider  = provider.Interface
	Store     = store.Interface
	Ledger    = store.Ledger

	Certificate = types.Certificate
	Files       = types.Files

	IssueRequest       = provider.IssueRequest
	CertificateListOpt = store.CertificateListOpt
)

var (
	ErrInvalidName            = provider.ErrInvalidName
	ErrNoLedger               = repository.ErrNoLedger
	ErrUniqueConstraintFailed = gormx.ErrUniqueConstraintFailed
	ErrRecordNotFound         = gorm.ErrRecordNotFound
	ErrMultipleRecord         = store.ErrMultipleRecord
)

// New create issuer; files and ledger are optional
func New(provider Provider, files Store, ledger Ledger) Interface {
	return repository.New(provider, files, ledger)
}

func NativeProvider() Provider                 { return provider.Native() }
func FileStore(dir string) Store               { return store.File(dir) }
func SQLLedger(dburl string) (Ledger, error)   { return store.NewSQL(dburl) }
func DefaultRequest(name string) *IssueRequest { return provider.DefaultRequest(name) }

// IsConstraintError ledger rejected the row by a database constraint
func IsConstraintError(err error) bool { return gormx.IsSQLError(err) }

// Issue issue self-signed certificate for *.<name> and <name> with defaults
// returns PEM encoded certificate and private key
func Issue(ctx context.Context, name string) (certPEM []byte, keyPEM []byte, err error) {
	return provider.Native().Issue(ctx, provider.DefaultRequest(name))
}
