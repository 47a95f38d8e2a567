package endpoints

import (
	"github.com/labstack/echo/v4"
	"github.com/whitekid/goxp/fx"
	"github.com/whitekid/goxp/log"

	"devcert/pkg/helper"
)

// Endpoint group of handlers mounted under a path
type Endpoint interface {
	PathAndName() (string, string)
	Route(g *echo.Group)
}

var endpoints []Endpoint

// Register register endpoint, usually from package init()
func Register(endpoint Endpoint) {
	if endpoint != nil {
		endpoints = append(endpoints, endpoint)
	}
}

func Endpoints() []Endpoint { return endpoints }

// Route mount endpoint handlers to e
func Route(e *helper.Echo, endpoints ...Endpoint) {
	fx.ForEach(endpoints, func(_ int, endpoint Endpoint) {
		path, name := endpoint.PathAndName()
		log.Debugf("route %s -> %s", path, name)
		endpoint.Route(e.Group(path))
	})
}
