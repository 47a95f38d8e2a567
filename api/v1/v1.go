package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/whitekid/goxp/fx"
	"github.com/whitekid/goxp/log"

	"devcert/api/endpoints"
	"devcert/client/common"
	v1 "devcert/client/v1"
	"devcert/issuer"
	"devcert/issuer/provider"
	"devcert/pkg/helper"
)

// @title    devcert
// @version  v1
// @BasePath /v1
type v1API struct {
	repository issuer.Interface
}

func NewWithRepository(repo issuer.Interface) *v1API {
	return &v1API{
		repository: repo,
	}
}

var _ endpoints.Endpoint = (*v1API)(nil)

func (app *v1API) PathAndName() (string, string) { return "/v1", "v1 handler" }

func (app *v1API) Route(e *echo.Group) {
	e.Use(handleError)

	e.POST("/certificates", app.issueCertificate)
	e.GET("/certificates", app.listCertificate)
	e.GET("/certificates/:certificate_id", app.getCertificate)
}

func handleError(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := next(c)
		if err == nil {
			return err
		}

		if _, ok := err.(*echo.HTTPError); ok {
			return err
		}

		code := http.StatusInternalServerError

		switch {
		case errors.Is(err, issuer.ErrRecordNotFound):
			code = http.StatusNotFound
		case issuer.IsConstraintError(err):
			code = http.StatusConflict
		case errors.Is(err, issuer.ErrInvalidName):
			code = http.StatusBadRequest
		case errors.Is(err, issuer.ErrNoLedger):
			code = http.StatusNotImplemented
		case helper.IsValidationError(err):
			code = http.StatusBadRequest
		default:
			log.Debugf("unhandled err=%T, %v", err, err)
		}

		return echo.NewHTTPError(code, err.Error())
	}
}

// issueCertificate issue self-signed certificate for *.<name> and <name>
//
// @Summary  issue certificate
// @Tags     certificates
// @Accept   json
// @Produce  json
// @Param    request body     v1.IssueRequest true "issue request"
// @Success  201     {object} v1.Certificate
// @Failure  400     {object} echo.HTTPError
// @Router   /certificates [post]
func (app *v1API) issueCertificate(c echo.Context) error {
	var req v1.IssueRequest

	if err := helper.Bind(c, &req); err != nil {
		return err
	}

	signatureAlgorithm, err := provider.ParseSignatureAlgorithm(req.Digest)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	issueReq := issuer.DefaultRequest(req.Name)
	issueReq.SignatureAlgorithm = signatureAlgorithm
	issueReq.KeyBits = fx.Ternary(req.KeyBits == 0, issueReq.KeyBits, req.KeyBits)

	cert, err := app.repository.Issue(c.Request().Context(), issueReq)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toCertificate(cert, true))
}

// @Summary  list certificates
// @Tags     certificates
// @Produce  json
// @Param    name   query    string false "base name"
// @Param    status query    string false "active or superseded"
// @Success  200    {object} v1.CertificateList
// @Failure  400    {object} echo.HTTPError
// @Failure  501    {object} echo.HTTPError
// @Router   /certificates [get]
func (app *v1API) listCertificate(c echo.Context) error {
	opts := issuer.CertificateListOpt{
		Name:   c.QueryParam("name"),
		Status: common.StrToStatus(c.QueryParam("status")),
	}

	if c.QueryParam("status") != "" && opts.Status == common.StatusNone {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status: "+c.QueryParam("status"))
	}

	items, err := app.repository.ListCertificate(c.Request().Context(), opts)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &v1.CertificateList{
		Items: fx.Map(items, func(cert *issuer.Certificate) *v1.Certificate { return toCertificate(cert, false) }),
	})
}

// @Summary  get certificate
// @Tags     certificates
// @Produce  json
// @Param    certificate_id path     string true "certificate id"
// @Success  200            {object} v1.Certificate
// @Failure  404            {object} echo.HTTPError
// @Router   /certificates/{certificate_id} [get]
func (app *v1API) getCertificate(c echo.Context) error {
	cert, err := app.repository.GetCertificate(c.Request().Context(), c.Param("certificate_id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toCertificate(cert, true))
}

func toCertificate(cert *issuer.Certificate, withKey bool) *v1.Certificate {
	return &v1.Certificate{
		ID:                 cert.ID,
		Name:               cert.Name,
		CommonName:         cert.CommonName,
		DNSNames:           cert.DNSNames,
		Serial:             cert.Serial,
		Fingerprint:        cert.Fingerprint,
		SignatureAlgorithm: cert.SignatureAlgorithm,
		NotBefore:          common.NewTimestamp(cert.NotBefore),
		NotAfter:           common.NewTimestamp(cert.NotAfter),
		Status:             cert.Status,
		Cert:               string(cert.Cert),
		Key:                fx.Ternary(withKey, string(cert.Key), ""),
		Created:            fx.TernaryCF(cert.Created.IsZero(), func() *common.Timestamp { return nil }, func() *common.Timestamp { return common.NewTimestamp(cert.Created) }),
	}
}
