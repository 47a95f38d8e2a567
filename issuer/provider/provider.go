package provider

import (
	"context"
	"crypto"
	"crypto/x509"
	"math/big"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/whitekid/goxp/fx"

	"devcert/pkg/helper"
)

// Interface certificate provider
type Interface interface {
	// Issue issue self-signed certificate for req.Name
	// returns PEM encoded certificate and private key
	Issue(ctx context.Context, req *IssueRequest) (certPEM []byte, keyPEM []byte, err error)
}

const (
	DefaultCountry            = "DE"
	DefaultLocality           = "Munich"
	DefaultOrganization       = "GrpcDemo"
	DefaultKeyBits            = 2048
	DefaultValidity           = 315360000 * time.Second // 10 * 365 days
	DefaultSignatureAlgorithm = x509.SHA1WithRSA
)

var supportedSignatureAlgorithms = []x509.SignatureAlgorithm{
	x509.SHA1WithRSA,
	x509.SHA256WithRSA,
	x509.SHA384WithRSA,
	x509.SHA512WithRSA,
}

// IssueRequest self-signed certificate issue request
// zero values are replaced with defaults
type IssueRequest struct {
	Name               string `validate:"required"` // base name, certificate is issued for *.<name> and <name>
	Country            string `validate:"omitempty,len=2,alpha"`
	Locality           string
	Organization       string
	KeyBits            int `validate:"omitempty,min=1024"`
	SignatureAlgorithm x509.SignatureAlgorithm
	Validity           time.Duration
	NotBefore          time.Time
}

// DefaultRequest request with all defaults for name
func DefaultRequest(name string) *IssueRequest {
	return &IssueRequest{
		Name:               name,
		Country:            DefaultCountry,
		Locality:           DefaultLocality,
		Organization:       DefaultOrganization,
		KeyBits:            DefaultKeyBits,
		SignatureAlgorithm: DefaultSignatureAlgorithm,
		Validity:           DefaultValidity,
	}
}

func (req *IssueRequest) CommonName() string { return "*." + req.Name }
func (req *IssueRequest) DNSNames() []string { return []string{req.CommonName(), req.Name} }

// Validate check request before any key is generated
func (req *IssueRequest) Validate() error {
	if err := ValidateName(req.Name); err != nil {
		return err
	}

	if err := helper.ValidateStruct(req); err != nil {
		return err
	}

	if req.SignatureAlgorithm != x509.UnknownSignatureAlgorithm && !fx.Contains(supportedSignatureAlgorithms, req.SignatureAlgorithm) {
		return errors.Errorf("unsupported signature algorithm: %s", req.SignatureAlgorithm)
	}

	if req.Validity < 0 {
		return errors.Errorf("invalid validity: %s", req.Validity)
	}

	return nil
}

func (req *IssueRequest) withDefaults() *IssueRequest {
	r := *req
	r.Country = fx.Ternary(r.Country == "", DefaultCountry, r.Country)
	r.Locality = fx.Ternary(r.Locality == "", DefaultLocality, r.Locality)
	r.Organization = fx.Ternary(r.Organization == "", DefaultOrganization, r.Organization)
	r.KeyBits = fx.Ternary(r.KeyBits == 0, DefaultKeyBits, r.KeyBits)
	r.SignatureAlgorithm = fx.Ternary(r.SignatureAlgorithm == x509.UnknownSignatureAlgorithm, DefaultSignatureAlgorithm, r.SignatureAlgorithm)
	r.Validity = fx.Ternary(r.Validity == 0, DefaultValidity, r.Validity)
	return &r
}

// Template x509 certificate template for self-signed certificate of pub
//
// extensions are given as ExtraExtensions to keep their order and encoding;
// basicConstraints, subjectKeyIdentifier, authorityKeyIdentifier, subjectAltName
func (req *IssueRequest) Template(pub crypto.PublicKey) (*x509.Certificate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r := req.withDefaults()

	rawSubject, err := r.RawSubject()
	if err != nil {
		return nil, errors.Wrap(err, "fail to encode subject")
	}

	serial := big.NewInt(0)
	extensions, err := selfSignedExtensions(pub, rawSubject, serial, r.DNSNames())
	if err != nil {
		return nil, err
	}

	notBefore := fx.TernaryCF(r.NotBefore.IsZero(), time.Now, func() time.Time { return r.NotBefore })
	notBefore = notBefore.UTC().Truncate(time.Second)

	return &x509.Certificate{
		SerialNumber:       serial,
		RawSubject:         rawSubject,
		NotBefore:          notBefore,
		NotAfter:           notBefore.Add(r.Validity),
		SignatureAlgorithm: r.SignatureAlgorithm,
		ExtraExtensions:    extensions,
	}, nil
}

// ParseSignatureAlgorithm parse digest name; sha1, sha256, SHA256-RSA, SHA256WithRSA...
// empty string returns default signature algorithm
func ParseSignatureAlgorithm(s string) (x509.SignatureAlgorithm, error) {
	digest := strings.NewReplacer("-", "", "_", "", "withrsa", "", "rsa", "").Replace(strings.ToLower(s))
	switch digest {
	case "":
		return DefaultSignatureAlgorithm, nil
	case "sha1":
		return x509.SHA1WithRSA, nil
	case "sha256":
		return x509.SHA256WithRSA, nil
	case "sha384":
		return x509.SHA384WithRSA, nil
	case "sha512":
		return x509.SHA512WithRSA, nil
	}

	return x509.UnknownSignatureAlgorithm, errors.Errorf("unsupported digest: %s", s)
}
