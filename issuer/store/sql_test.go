package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"devcert/client/common"
	"devcert/issuer/types"
	"devcert/pkg/helper/gormx"
	"devcert/pkg/testutils"
)

var fingerprintSeq = 0

func newTestCertificate(name string) *types.Certificate {
	fingerprintSeq++
	now := time.Now().UTC().Truncate(time.Second)

	return &types.Certificate{
		Name:               name,
		CommonName:         "*." + name,
		DNSNames:           []string{"*." + name, name},
		Serial:             "0",
		Fingerprint:        fmt.Sprintf("%064x", fingerprintSeq),
		SignatureAlgorithm: "SHA1-RSA",
		NotBefore:          now,
		NotAfter:           now.Add(315360000 * time.Second),
		Cert:               []byte("cert"),
		Key:                []byte("key"),
		CertFile:           name + ".pem",
		KeyFile:            name + ".key",
	}
}

func newSQL(t *testing.T, dburl string) *sqlLedgerImpl {
	return testutils.Must1(NewSQL(dburl)).(*sqlLedgerImpl)
}

func Test_sqlLedgerImpl_CreateCertificate(t *testing.T) {
	testutils.ForEachSQLDriver(t, func(t *testing.T, dbURL string, reset func()) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		s := newSQL(t, dbURL)
		dup := newTestCertificate("dup.example.com")
		testutils.Must1(s.CreateCertificate(ctx, dup))

		type args struct {
			cert *types.Certificate
		}
		tests := [...]struct {
			name    string
			args    args
			wantErr error
		}{
			{`valid`, args{newTestCertificate("example.com")}, nil},
			{`duplicated fingerprint`, args{dup}, gormx.ErrUniqueConstraintFailed},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := s.CreateCertificate(ctx, tt.args.cert)
				require.Truef(t, errors.Is(err, tt.wantErr), `CreateCertificate() failed: error = %+v, wantErr = %v`, err, tt.wantErr)
				if tt.wantErr != nil {
					return
				}

				require.NotEmpty(t, got.ID)
				require.Equal(t, common.StatusActive, got.Status)
				require.Equal(t, tt.args.cert.Name, got.Name)
				require.Equal(t, tt.args.cert.DNSNames, got.DNSNames)
				require.Equal(t, tt.args.cert.Key, got.Key)
				require.False(t, got.Created.IsZero())
			})
		}
	})
}

func Test_sqlLedgerImpl_GetCertificate(t *testing.T) {
	testutils.ForEachSQLDriver(t, func(t *testing.T, dbURL string, reset func()) {
		ctx := context.Background()
		s := newSQL(t, dbURL)
		created := testutils.Must1(s.CreateCertificate(ctx, newTestCertificate("example.com")))

		type args struct {
			id string
		}
		tests := [...]struct {
			name    string
			args    args
			wantErr error
		}{
			{`valid`, args{created.ID}, nil},
			{`not found`, args{"not-found"}, gorm.ErrRecordNotFound},
			{`empty`, args{""}, gorm.ErrRecordNotFound},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := s.GetCertificate(ctx, tt.args.id)
				require.Truef(t, errors.Is(err, tt.wantErr), `GetCertificate() failed: error = %+v, wantErr = %v`, err, tt.wantErr)
				if tt.wantErr != nil {
					return
				}
				require.Equal(t, created, got)
			})
		}
	})
}

func Test_sqlLedgerImpl_ListCertificate(t *testing.T) {
	testutils.ForEachSQLDriver(t, func(t *testing.T, dbURL string, reset func()) {
		ctx := context.Background()
		s := newSQL(t, dbURL)

		first := testutils.Must1(s.CreateCertificate(ctx, newTestCertificate("example.com")))
		second := testutils.Must1(s.CreateCertificate(ctx, newTestCertificate("example.com")))
		testutils.Must1(s.CreateCertificate(ctx, newTestCertificate("example.org")))

		type args struct {
			opts CertificateListOpt
		}
		tests := [...]struct {
			name    string
			args    args
			wantIDs []string
			wantLen int
		}{
			{`all`, args{CertificateListOpt{}}, nil, 3},
			{`by name`, args{CertificateListOpt{Name: "example.com"}}, []string{first.ID, second.ID}, 2},
			{`active`, args{CertificateListOpt{Name: "example.com", Status: common.StatusActive}}, []string{second.ID}, 1},
			{`superseded`, args{CertificateListOpt{Status: common.StatusSuperseded}}, []string{first.ID}, 1},
			{`by id`, args{CertificateListOpt{ID: first.ID}}, []string{first.ID}, 1},
			{`not found`, args{CertificateListOpt{Name: "example.net"}}, nil, 0},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := s.ListCertificate(ctx, tt.args.opts)
				require.NoError(t, err)
				require.Len(t, got, tt.wantLen)

				if tt.wantIDs != nil {
					ids := make([]string, len(got))
					for i, cert := range got {
						ids[i] = cert.ID
					}
					require.ElementsMatch(t, tt.wantIDs, ids)
				}
			})
		}
	})
}

func Test_sqlLedgerImpl_CreateCertificateSupersedes(t *testing.T) {
	testutils.ForEachSQLDriver(t, func(t *testing.T, dbURL string, reset func()) {
		ctx := context.Background()
		s := newSQL(t, dbURL)

		old := testutils.Must1(s.CreateCertificate(ctx, newTestCertificate("example.com")))
		other := testutils.Must1(s.CreateCertificate(ctx, newTestCertificate("example.org")))
		current := testutils.Must1(s.CreateCertificate(ctx, newTestCertificate("example.com")))

		require.Equal(t, common.StatusSuperseded, testutils.Must1(s.GetCertificate(ctx, old.ID)).Status)
		require.Equal(t, common.StatusActive, testutils.Must1(s.GetCertificate(ctx, current.ID)).Status)
		require.Equal(t, common.StatusActive, testutils.Must1(s.GetCertificate(ctx, other.ID)).Status)

		// superseded row does not supersede others
		superseded := newTestCertificate("example.org")
		superseded.Status = common.StatusSuperseded
		testutils.Must1(s.CreateCertificate(ctx, superseded))
		require.Equal(t, common.StatusActive, testutils.Must1(s.GetCertificate(ctx, other.ID)).Status)
	})
}

func Test_sqlLedgerImpl_CreateCertificateRollback(t *testing.T) {
	testutils.ForEachSQLDriver(t, func(t *testing.T, dbURL string, reset func()) {
		ctx := context.Background()
		s := newSQL(t, dbURL)

		old := testutils.Must1(s.CreateCertificate(ctx, newTestCertificate("example.com")))

		// superseding older rows fails after the new row is inserted
		require.NoError(t, s.db.Callback().Update().Before("gorm:update").Register("test:fail_update", func(tx *gorm.DB) {
			tx.AddError(errors.New("update failed"))
		}))

		_, err := s.CreateCertificate(ctx, newTestCertificate("example.com"))
		require.Error(t, err)

		got, err := s.ListCertificate(ctx, CertificateListOpt{Name: "example.com"})
		require.NoError(t, err)
		require.Len(t, got, 1, "new row is rolled back")
		require.Equal(t, old.ID, got[0].ID)
		require.Equal(t, common.StatusActive, got[0].Status)
	})
}
