package v1

import (
	"context"
	"net/http"
	"net/url"

	"github.com/whitekid/goxp/log"
	"github.com/whitekid/goxp/request"

	"devcert/client/common"
)

func New(endpoint string) *Client { return WithClient(endpoint, &http.Client{}) }
func WithClient(endpoint string, client *http.Client) *Client {
	return &Client{
		endpoint: endpoint,
		client:   request.NewSession(client),
	}
}

type Client struct {
	endpoint string
	client   request.Interface
}

func (c *Client) Certificates() *CertificateService {
	return &CertificateService{client: c, endpoint: c.endpoint + "/certificates"}
}

func (c *Client) sendRequest(ctx context.Context, req *request.Request) (*request.Response, error) {
	log.Debugf("send request: %s", req.URL)

	resp, err := req.Do(ctx)
	if err != nil {
		return nil, err
	}

	if !resp.Success() {
		defer resp.Body.Close()

		var body struct {
			Message string `json:"message"`
		}
		if err := resp.JSON(&body); err != nil || body.Message == "" {
			return resp, NewHTTPError(resp.StatusCode, "failed with status %d", resp.StatusCode)
		}

		return resp, NewHTTPError(resp.StatusCode, "%s", body.Message)
	}

	return resp, nil
}

// IssueRequest certificate issue request
type IssueRequest struct {
	// base name; certificate is valid for *.<name> and <name>
	Name string `validate:"required"`

	// sha1, sha256, sha384, sha512
	Digest  string `json:",omitempty"`
	KeyBits int    `json:",omitempty" validate:"omitempty,min=1024"`
}

type Certificate struct {
	ID                 string
	Name               string
	CommonName         string
	DNSNames           []string
	Serial             string
	Fingerprint        string
	SignatureAlgorithm string
	NotBefore          *common.Timestamp
	NotAfter           *common.Timestamp
	Status             common.Status
	Cert               string            // PEM
	Key                string            `json:",omitempty"` // PEM, only returned on issue and get
	Created            *common.Timestamp `json:",omitempty"`
}

type CertificateList struct {
	Items []*Certificate
}

type CertificateListOpt struct {
	Name   string
	Status common.Status
}

type CertificateService struct {
	client   *Client
	endpoint string
}

func (svc *CertificateService) Issue(ctx context.Context, req *IssueRequest) (*Certificate, error) {
	resp, err := svc.client.sendRequest(ctx, svc.client.client.Post("%s", svc.endpoint).JSON(req))
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()
	var created Certificate
	if err := resp.JSON(&created); err != nil {
		return nil, err
	}

	return &created, nil
}

func (svc *CertificateService) Get(ctx context.Context, ID string) (*Certificate, error) {
	resp, err := svc.client.sendRequest(ctx, svc.client.client.Get("%s/%s", svc.endpoint, url.PathEscape(ID)))
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()
	var cert Certificate
	if err := resp.JSON(&cert); err != nil {
		return nil, err
	}

	return &cert, nil
}

func (svc *CertificateService) List(ctx context.Context, opts CertificateListOpt) (*CertificateList, error) {
	query := url.Values{}
	if opts.Name != "" {
		query.Set("name", opts.Name)
	}
	if opts.Status != common.StatusNone {
		query.Set("status", opts.Status.String())
	}

	endpoint := svc.endpoint
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	resp, err := svc.client.sendRequest(ctx, svc.client.client.Get("%s", endpoint))
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()
	var list CertificateList
	if err := resp.JSON(&list); err != nil {
		return nil, err
	}

	return &list, nil
}
