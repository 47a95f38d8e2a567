package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"devcert/pkg/testutils"
)

func TestHealth(t *testing.T) {
	ts := httptest.NewServer(testutils.NewEndpointHandler(New()))
	defer ts.Close()

	get := func(t *testing.T, method, path string) (int, string) {
		req, err := http.NewRequest(method, ts.URL+path, nil)
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var status Status
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
		return resp.StatusCode, status.Status
	}

	type args struct {
		method string
		path   string
	}
	tests := [...]struct {
		name       string
		args       args
		wantStatus int
		wantBody   string
	}{
		{`healthz`, args{http.MethodGet, "/healthz"}, http.StatusOK, "ok"},
		{`readiness`, args{http.MethodGet, "/readiness"}, http.StatusOK, "ok"},
		{`toggle readiness`, args{http.MethodPost, "/readiness/status"}, http.StatusOK, "unavailable"},
		{`not ready`, args{http.MethodGet, "/readiness"}, http.StatusServiceUnavailable, "unavailable"},
		{`still healthy`, args{http.MethodGet, "/healthz"}, http.StatusOK, "ok"},
		{`toggle back`, args{http.MethodPost, "/readiness/status"}, http.StatusOK, "ok"},
		{`ready`, args{http.MethodGet, "/readiness"}, http.StatusOK, "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := get(t, tt.args.method, tt.args.path)
			require.Equal(t, tt.wantStatus, code)
			require.Equal(t, tt.wantBody, body)
		})
	}
}
