package repository

import (
	"context"

	"github.com/pkg/errors"
	"github.com/whitekid/goxp/log"

	"devcert/client/common"
	"devcert/issuer/provider"
	"devcert/issuer/store"
	"devcert/issuer/types"
	"devcert/pkg/helper/x509x"
)

var ErrNoLedger = errors.New("ledger not configured")

type Interface interface {
	// Issue issue certificate, save it to files and record it to ledger
	// files and ledger are optional
	Issue(ctx context.Context, req *provider.IssueRequest) (*types.Certificate, error)
	GetCertificate(ctx context.Context, id string) (*types.Certificate, error)
	ListCertificate(ctx context.Context, opts store.CertificateListOpt) ([]*types.Certificate, error)
}

// New create new repository; files and ledger can be nil
func New(provider provider.Interface, files store.Interface, ledger store.Ledger) Interface {
	return &repoImpl{
		provider: provider,
		files:    files,
		ledger:   ledger,
	}
}

type repoImpl struct {
	provider provider.Interface
	files    store.Interface
	ledger   store.Ledger
}

var _ Interface = (*repoImpl)(nil)

func (repo *repoImpl) Issue(ctx context.Context, req *provider.IssueRequest) (*types.Certificate, error) {
	log.Debugf("Issue(): name=%s", req.Name)

	certPEM, keyPEM, err := repo.provider.Issue(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, "fail to issue certificate")
	}

	issued, err := newCertificate(req.Name, certPEM, keyPEM)
	if err != nil {
		return nil, err
	}

	if repo.files != nil {
		files, err := repo.files.Save(ctx, req.Name, certPEM, keyPEM)
		if err != nil {
			return nil, errors.Wrap(err, "fail to save certificate")
		}

		issued.CertFile = files.CertFile
		issued.KeyFile = files.KeyFile
	}

	if repo.ledger == nil {
		log.Debugf("certificate issued: name=%s, fingerprint=%s", issued.Name, issued.Fingerprint)
		return issued, nil
	}

	created, err := repo.ledger.CreateCertificate(ctx, issued)
	if err != nil {
		return nil, errors.Wrap(err, "fail to record certificate")
	}

	log.Debugf("certificate issued: id=%s, name=%s, fingerprint=%s", created.ID, created.Name, created.Fingerprint)
	return created, nil
}

func newCertificate(name string, certPEM, keyPEM []byte) (*types.Certificate, error) {
	cert, err := x509x.ParseCertificate(certPEM)
	if err != nil {
		return nil, errors.Wrap(err, "fail to parse issued certificate")
	}

	return &types.Certificate{
		Name:               name,
		CommonName:         cert.Subject.CommonName,
		DNSNames:           cert.DNSNames,
		Serial:             cert.SerialNumber.String(),
		Fingerprint:        x509x.Fingerprint(cert.Raw),
		SignatureAlgorithm: cert.SignatureAlgorithm.String(),
		NotBefore:          cert.NotBefore,
		NotAfter:           cert.NotAfter,
		Status:             common.StatusActive,
		Cert:               certPEM,
		Key:                keyPEM,
	}, nil
}

func (repo *repoImpl) GetCertificate(ctx context.Context, id string) (*types.Certificate, error) {
	if repo.ledger == nil {
		return nil, ErrNoLedger
	}

	return repo.ledger.GetCertificate(ctx, id)
}

func (repo *repoImpl) ListCertificate(ctx context.Context, opts store.CertificateListOpt) ([]*types.Certificate, error) {
	if repo.ledger == nil {
		return nil, ErrNoLedger
	}

	return repo.ledger.ListCertificate(ctx, opts)
}
