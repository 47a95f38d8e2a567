package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_fileStoreImpl_Save(t *testing.T) {
	type args struct {
		dir  string
		name string
	}
	tests := [...]struct {
		name    string
		args    args
		wantErr bool
	}{
		{`valid`, args{t.TempDir(), "example.com"}, false},
		{`create directory`, args{filepath.Join(t.TempDir(), "certs", "dev"), "example.com"}, false},
		{`not a directory`, args{filepath.Join(writeTempFile(t), "sub"), "example.com"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := File(tt.args.dir).Save(context.Background(), tt.args.name, []byte("cert"), []byte("key"))
			require.Truef(t, (err != nil) == tt.wantErr, `Save() failed: error = %+v, wantErr = %v`, err, tt.wantErr)
			if tt.wantErr {
				return
			}

			require.Equal(t, filepath.Join(tt.args.dir, tt.args.name+".pem"), got.CertFile)
			require.Equal(t, filepath.Join(tt.args.dir, tt.args.name+".key"), got.KeyFile)

			certBytes, err := os.ReadFile(got.CertFile)
			require.NoError(t, err)
			require.Equal(t, "cert", string(certBytes))

			stat, err := os.Stat(got.KeyFile)
			require.NoError(t, err)
			require.Equal(t, os.FileMode(0600), stat.Mode().Perm())
		})
	}
}

func Test_fileStoreImpl_SaveOverwrite(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	_, err := File(dir).Save(ctx, "example.com", []byte("old cert"), []byte("old key"))
	require.NoError(t, err)
	got, err := File(dir).Save(ctx, "example.com", []byte("new"), []byte("new"))
	require.NoError(t, err)

	keyBytes, err := os.ReadFile(got.KeyFile)
	require.NoError(t, err)
	require.Equal(t, "new", string(keyBytes))
}

func writeTempFile(t *testing.T) string {
	name := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(name, []byte("x"), 0644))
	return name
}
