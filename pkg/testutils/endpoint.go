package testutils

import (
	"net/http"

	"devcert/api/endpoints"
	"devcert/pkg/helper"
)

// NewEndpointHandler http handler that serves endpoint at its own path
func NewEndpointHandler(endpoint endpoints.Endpoint) http.Handler {
	handler := helper.NewEcho()
	endpoints.Route(handler, endpoint)

	return handler
}
