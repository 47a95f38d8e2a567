package provider

import (
	"context"
	"crypto/rand"
	"crypto/x509"

	"github.com/pkg/errors"
	"github.com/whitekid/goxp/log"

	"devcert/pkg/helper/x509x"
)

func Native() Interface {
	return &nativeImpl{}
}

type nativeImpl struct {
}

var _ Interface = (*nativeImpl)(nil)

// Issue generate new RSA key and self-signed certificate with it
// every call generates new key; nothing is cached
func (na *nativeImpl) Issue(ctx context.Context, req *IssueRequest) ([]byte, []byte, error) {
	log.Debugf("Issue(): req=%+v", req)

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	r := req.withDefaults()
	log.Debugf("subject=%s, bits=%d, signature=%s", r.SubjectString(), r.KeyBits, r.SignatureAlgorithm)

	privateKey, err := x509x.GenerateRSAKey(r.KeyBits)
	if err != nil {
		return nil, nil, errors.Wrap(err, "fail to generate private key")
	}

	template, err := req.Template(privateKey.Public())
	if err != nil {
		return nil, nil, errors.Wrap(err, "fail to create template")
	}

	certDerBytes, err := x509.CreateCertificate(rand.Reader, template, template, privateKey.Public(), privateKey)
	if err != nil {
		return nil, nil, errors.Wrap(err, "fail to create certificate")
	}

	return x509x.EncodeCertificateToPEM(certDerBytes), x509x.EncodePrivateKeyToPEM(privateKey), nil
}
