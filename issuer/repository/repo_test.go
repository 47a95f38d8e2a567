package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"devcert/client/common"
	"devcert/issuer/provider"
	"devcert/issuer/store"
	"devcert/pkg/helper/x509x"
	"devcert/pkg/testutils"
)

func TestRepository(t *testing.T) {
	testutils.ForEachSQLDriver(t, func(t *testing.T, dbURL string, reset func()) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		dir := t.TempDir()
		repo := New(provider.Native(), store.File(dir), testutils.Must1(store.NewSQL(dbURL)))

		first, err := repo.Issue(ctx, provider.DefaultRequest("example.com"))
		require.NoError(t, err)
		require.NotEmpty(t, first.ID)
		require.Equal(t, "*.example.com", first.CommonName)
		require.Equal(t, []string{"*.example.com", "example.com"}, first.DNSNames)
		require.Equal(t, "0", first.Serial)
		require.Equal(t, "SHA1-RSA", first.SignatureAlgorithm)
		require.Equal(t, filepath.Join(dir, "example.com.pem"), first.CertFile)
		require.Equal(t, filepath.Join(dir, "example.com.key"), first.KeyFile)

		certBytes, err := os.ReadFile(first.CertFile)
		require.NoError(t, err)
		require.Equal(t, first.Cert, certBytes)
		cert := testutils.Must1(x509x.ParseCertificate(certBytes))
		require.Equal(t, first.Fingerprint, x509x.Fingerprint(cert.Raw))

		second, err := repo.Issue(ctx, provider.DefaultRequest("example.com"))
		require.NoError(t, err)
		require.NotEqual(t, first.Fingerprint, second.Fingerprint)

		got, err := repo.GetCertificate(ctx, first.ID)
		require.NoError(t, err)
		require.Equal(t, common.StatusSuperseded, got.Status)

		active, err := repo.ListCertificate(ctx, store.CertificateListOpt{Name: "example.com", Status: common.StatusActive})
		require.NoError(t, err)
		require.Len(t, active, 1)
		require.Equal(t, second.ID, active[0].ID)

		// key file follows the latest certificate
		keyBytes, err := os.ReadFile(second.KeyFile)
		require.NoError(t, err)
		require.Equal(t, second.Key, keyBytes)
	})
}

func TestRepositoryWithoutLedger(t *testing.T) {
	ctx := context.Background()
	repo := New(provider.Native(), nil, nil)

	type args struct {
		name string
	}
	tests := [...]struct {
		name    string
		args    args
		wantErr bool
	}{
		{`valid`, args{"example.com"}, false},
		{`invalid`, args{"*.example.com"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Issue(ctx, provider.DefaultRequest(tt.args.name))
			require.Truef(t, (err != nil) == tt.wantErr, `Issue() failed: error = %+v, wantErr = %v`, err, tt.wantErr)
			if tt.wantErr {
				require.True(t, errors.Is(err, provider.ErrInvalidName))
				return
			}

			require.Empty(t, got.ID)
			require.Empty(t, got.CertFile)
			require.Equal(t, common.StatusActive, got.Status)
		})
	}

	_, err := repo.GetCertificate(ctx, "id")
	require.ErrorIs(t, err, ErrNoLedger)
	_, err = repo.ListCertificate(ctx, store.CertificateListOpt{})
	require.ErrorIs(t, err, ErrNoLedger)
}

func TestRepositoryInvalidNameWritesNothing(t *testing.T) {
	dir := t.TempDir()
	repo := New(provider.Native(), store.File(dir), nil)

	_, err := repo.Issue(context.Background(), provider.DefaultRequest("bad name"))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}
