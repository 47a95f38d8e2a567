package store

import (
	"context"

	"github.com/pkg/errors"
	"github.com/whitekid/goxp/fx"
	"github.com/whitekid/goxp/log"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"devcert/client/common"
	"devcert/issuer/store/models"
	"devcert/issuer/types"
	"devcert/pkg/helper/gormx"
)

// sqlLedgerImpl ledger on SQL database
type sqlLedgerImpl struct {
	db *gorm.DB
}

var _ Ledger = (*sqlLedgerImpl)(nil)

// NewSQL open ledger database and migrate schema
func NewSQL(dburl string) (Ledger, error) {
	db, err := gormx.Open(dburl, &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: "devcert_",
		},
	})
	if err != nil {
		return nil, err
	}

	if err := models.Migrate(db); err != nil {
		return nil, err
	}

	return &sqlLedgerImpl{
		db: db,
	}, nil
}

func (s *sqlLedgerImpl) CreateCertificate(ctx context.Context, cert *types.Certificate) (*types.Certificate, error) {
	log.Debugf("CreateCertificate(): name=%s, fingerprint=%s", cert.Name, cert.Fingerprint)

	m := &models.Certificate{
		Name:               cert.Name,
		CommonName:         cert.CommonName,
		DNSNames:           cert.DNSNames,
		Serial:             cert.Serial,
		Fingerprint:        cert.Fingerprint,
		SignatureAlgorithm: cert.SignatureAlgorithm,
		NotBefore:          cert.NotBefore,
		NotAfter:           cert.NotAfter,
		Status:             fx.Ternary(cert.Status == common.StatusNone, common.StatusActive, cert.Status).String(),
		Cert:               cert.Cert,
		Key:                cert.Key,
		CertFile:           cert.CertFile,
		KeyFile:            cert.KeyFile,
	}

	// new active row and superseding older rows are committed together
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return errors.Wrap(gormx.ConvertSQLError(err), "fail to create certificate")
		}

		if m.Status != common.StatusActive.String() {
			return nil
		}

		return supersede(tx, m.Name, m.ID)
	}); err != nil {
		return nil, err
	}

	return s.GetCertificate(ctx, m.ID)
}

func (s *sqlLedgerImpl) GetCertificate(ctx context.Context, id string) (*types.Certificate, error) {
	log.Debugf("GetCertificate(): id=%s", id)

	if id == "" {
		return nil, gorm.ErrRecordNotFound
	}

	results, err := s.ListCertificate(ctx, CertificateListOpt{ID: id})
	if err != nil {
		return nil, errors.Wrap(err, "fail to get certificate")
	}

	switch len(results) {
	case 0:
		return nil, gorm.ErrRecordNotFound
	case 1:
		return results[0], nil
	default:
		return nil, ErrMultipleRecord
	}
}

func (s *sqlLedgerImpl) ListCertificate(ctx context.Context, opts CertificateListOpt) ([]*types.Certificate, error) {
	log.Debugf("ListCertificate(): opts=%+v", opts)

	w := &models.Certificate{
		ID:     opts.ID,
		Name:   opts.Name,
		Status: opts.Status.String(),
	}

	var results []*models.Certificate
	if tx := s.db.WithContext(ctx).Order("created_at").Find(&results, w); tx.Error != nil {
		return nil, errors.Wrap(gormx.ConvertSQLError(tx.Error), "fail to list certificate")
	}

	return fx.Map(results, func(x *models.Certificate) *types.Certificate {
		return &types.Certificate{
			ID:                 x.ID,
			Name:               x.Name,
			CommonName:         x.CommonName,
			DNSNames:           x.DNSNames,
			Serial:             x.Serial,
			Fingerprint:        x.Fingerprint,
			SignatureAlgorithm: x.SignatureAlgorithm,
			NotBefore:          x.NotBefore,
			NotAfter:           x.NotAfter,
			Status:             common.StrToStatus(x.Status),
			Cert:               x.Cert,
			Key:                x.Key,
			CertFile:           x.CertFile,
			KeyFile:            x.KeyFile,
			Created:            x.CreatedAt,
		}
	}), nil
}

// supersede mark active certificates of name as superseded except exceptID
func supersede(tx *gorm.DB, name string, exceptID string) error {
	log.Debugf("supersede(): name=%s, except=%s", name, exceptID)

	tx = tx.Model(&models.Certificate{}).
		Where("name = ? AND status = ? AND id <> ?", name, common.StatusActive.String(), exceptID).
		Update("status", common.StatusSuperseded.String())
	if tx.Error != nil {
		return errors.Wrap(gormx.ConvertSQLError(tx.Error), "fail to supersede certificates")
	}

	log.Debugf("%d certificates superseded", tx.RowsAffected)
	return nil
}
