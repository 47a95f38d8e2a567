package devcert

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"devcert/client"
	v1 "devcert/client/v1"
	"devcert/issuer"
	"devcert/pkg/testutils"
)

func TestApp(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()
	e, err := newApp(&Config{
		Addr:  "127.0.0.1:0",
		DBURL: "sqlite://" + filepath.Join(dir, "ledger.db"),
		Dir:   dir,
	})
	require.NoError(t, err)

	ts := httptest.NewServer(e)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	certs := client.New(ts.URL).V1().Certificates()
	created, err := certs.Issue(ctx, &v1.IssueRequest{Name: "example.local"})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "example.local.pem"))
	require.NoError(t, err)

	got, err := certs.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Fingerprint, got.Fingerprint)
}

func TestSwagger(t *testing.T) {
	e, err := newApp(&Config{Addr: "127.0.0.1:0"})
	require.NoError(t, err)

	ts := httptest.NewServer(e)
	defer ts.Close()

	type args struct {
		path string
	}
	tests := [...]struct {
		name         string
		args         args
		wantContains string
	}{
		{`index`, args{"/swagger/index.html"}, "swagger-ui"},
		{`doc`, args{"/swagger/doc.json"}, "/certificates/{certificate_id}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.args.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, http.StatusOK, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			require.Contains(t, string(body), tt.wantContains)
		})
	}
}

func TestRunTLS(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()
	certPEM, keyPEM, err := issuer.Issue(ctx, "example.local")
	require.NoError(t, err)
	files := testutils.Must1(issuer.FileStore(dir).Save(ctx, "example.local", certPEM, keyPEM))

	done := make(chan error)
	go func() {
		done <- Run(ctx, &Config{Addr: "127.0.0.1:0", CertFile: files.CertFile, KeyFile: files.KeyFile})
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		require.Fail(t, "server not stopped")
	}
}

func TestRunInvalidConfig(t *testing.T) {
	require.Error(t, Run(context.Background(), &Config{}))
	require.Error(t, Run(context.Background(), &Config{Addr: "127.0.0.1:0", DBURL: "unknown://"}))
}
