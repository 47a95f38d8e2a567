package testutils

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net"
	"net/http"
)

// TestTLSServer serve https on 127.0.0.1 with crt/key and request it as serverName, trusting rootCrt
// returns response body
func TestTLSServer(ctx context.Context, crt, key, rootCrt []byte, serverName string, wantCode int) ([]byte, error) {
	cert, err := tls.X509KeyPair(crt, key)
	if err != nil {
		return nil, err
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	ln = tls.NewListener(ln, &tls.Config{Certificates: []tls.Certificate{cert}})
	go func() {
		handler := http.NewServeMux()
		handler.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) { fmt.Fprintf(w, "hello %s", r.TLS.ServerName) })
		http.Serve(ln, handler)
	}()

	// client
	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(rootCrt) {
		return nil, fmt.Errorf("no certificate found in root PEM")
	}

	client := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				RootCAs:    caPool,
				ServerName: serverName,
			},
		},
	}
	defer client.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("https://%s/", ln.Addr().String()), nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantCode {
		return nil, fmt.Errorf("want %d but get status %d", wantCode, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
