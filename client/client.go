package client

import (
	"net/http"

	v1 "devcert/client/v1"
)

func New(endpoint string) *Client { return WithClient(endpoint, &http.Client{}) }
func WithClient(endpoint string, client *http.Client) *Client {
	return &Client{
		endpoint: endpoint,
		v1:       v1.WithClient(endpoint+"/v1", client),
	}
}

type Client struct {
	endpoint string

	v1 *v1.Client
}

func (c *Client) V1() *v1.Client { return c.v1 }
